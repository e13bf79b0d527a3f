package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/scorepool/go/internal/rpc"
)

// MembershipChecker decides who may subscribe to a league
type MembershipChecker interface {
	IsMember(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)
}

// WebSocketHandler serves the league subscription endpoints
type WebSocketHandler struct {
	connections *ConnectionManager
	members     MembershipChecker
}

func NewWebSocketHandler(cm *ConnectionManager, members MembershipChecker) *WebSocketHandler {
	return &WebSocketHandler{connections: cm, members: members}
}

// HandleLeagueConnection subscribes a member to one league's notifications.
// Browsers cannot set headers on a websocket handshake, so the caller id is
// also accepted as the user_id query parameter.
func (h *WebSocketHandler) HandleLeagueConnection(w http.ResponseWriter, r *http.Request) {
	leagueID, err := uuid.Parse(r.URL.Query().Get("league_id"))
	if err != nil {
		http.Error(w, "league_id is required and must be a uuid", http.StatusBadRequest)
		return
	}

	rawUser := r.Header.Get(rpc.UserIDHeader)
	if rawUser == "" {
		rawUser = r.URL.Query().Get("user_id")
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		http.Error(w, "caller identity is required", http.StatusUnauthorized)
		return
	}

	ok, err := h.members.IsMember(r.Context(), leagueID, userID)
	if err != nil {
		log.Error().Err(err).Str("league_id", leagueID.String()).Msg("membership check failed")
		http.Error(w, "membership check failed", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "not a member of this league", http.StatusForbidden)
		return
	}

	// Upgrade has already replied to the client when it fails.
	if err := h.connections.UpgradeConnection(w, r, userID, leagueID); err != nil {
		log.Warn().
			Err(err).
			Str("league_id", leagueID.String()).
			Str("user_id", userID.String()).
			Msg("websocket upgrade failed")
	}
}

func (h *WebSocketHandler) HandleConnectionStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.connections.Stats()); err != nil {
		log.Error().Err(err).Msg("failed to write stats")
	}
}

func (h *WebSocketHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/league", h.HandleLeagueConnection)
	mux.HandleFunc("GET /ws/stats", h.HandleConnectionStats)
}
