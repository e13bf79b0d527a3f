package matches

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/rpc"
)

// MatchServiceName is the fully qualified connect service name.
const MatchServiceName = "scorepool.v1.MatchService"

// MatchesApp defines what the service layer needs from the matches application
type MatchesApp interface {
	FinalizeResult(ctx context.Context, actorID, matchID uuid.UUID, home, away int) (*FinalizeResult, error)
	CreateMatch(ctx context.Context, actorID uuid.UUID, req CreateMatchRequest) (*models.Match, error)
	RescheduleMatch(ctx context.Context, actorID, matchID uuid.UUID, rawKickoff string) (*models.Match, error)
	DeleteMatch(ctx context.Context, actorID, matchID uuid.UUID) error
	GetMatch(ctx context.Context, matchID uuid.UUID) (*models.Match, error)
	ListMatches(ctx context.Context, seasonID uuid.UUID, round *int) ([]models.Match, error)
}

type Match struct {
	ID         string    `json:"id"`
	SeasonID   string    `json:"season_id"`
	Round      int       `json:"round"`
	HomeTeamID string    `json:"home_team_id"`
	AwayTeamID string    `json:"away_team_id"`
	KickoffAt  time.Time `json:"kickoff_at"`
	Status     string    `json:"status"`
	HomeGoals  *int      `json:"home_goals"`
	AwayGoals  *int      `json:"away_goals"`
}

type FinalizeResultRequest struct {
	MatchID   string `json:"match_id"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

type FinalizeResultResponse struct {
	Match             *Match   `json:"match"`
	PredictionsScored int      `json:"predictions_scored"`
	LeagueIDs         []string `json:"league_ids"`
}

type CreateMatchInput struct {
	SeasonID   string `json:"season_id"`
	Round      int    `json:"round"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	KickoffAt  string `json:"kickoff_at"`
}

type MatchResponse struct {
	Match *Match `json:"match"`
}

type RescheduleMatchRequest struct {
	MatchID   string `json:"match_id"`
	KickoffAt string `json:"kickoff_at"`
}

type MatchRequest struct {
	MatchID string `json:"match_id"`
}

type DeleteMatchResponse struct{}

type ListMatchesRequest struct {
	SeasonID string `json:"season_id"`
	Round    *int   `json:"round,omitempty"`
}

type ListMatchesResponse struct {
	Matches []*Match `json:"matches"`
}

// Service implements the MatchService connect procedures
type Service struct {
	app MatchesApp
}

// NewService creates a new matches service
func NewService(app MatchesApp) *Service {
	return &Service{app: app}
}

// NewMatchServiceHandler returns the mount path and handler for svc.
func NewMatchServiceHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := rpc.NewServiceMux(MatchServiceName, opts...)
	rpc.Handle(mux, "FinalizeResult", svc.FinalizeResult)
	rpc.Handle(mux, "CreateMatch", svc.CreateMatch)
	rpc.Handle(mux, "RescheduleMatch", svc.RescheduleMatch)
	rpc.Handle(mux, "DeleteMatch", svc.DeleteMatch)
	rpc.Handle(mux, "GetMatch", svc.GetMatch)
	rpc.Handle(mux, "ListMatches", svc.ListMatches)
	return mux.Path(), mux.Handler()
}

// FinalizeResult posts a final score
func (s *Service) FinalizeResult(ctx context.Context, req *FinalizeResultRequest) (*FinalizeResultResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	matchID, err := rpc.ParseID("match_id", req.MatchID)
	if err != nil {
		return nil, err
	}

	result, err := s.app.FinalizeResult(ctx, caller, matchID, req.HomeGoals, req.AwayGoals)
	if err != nil {
		return nil, err
	}

	leagues := make([]string, len(result.LeagueIDs))
	for i, id := range result.LeagueIDs {
		leagues[i] = id.String()
	}
	return &FinalizeResultResponse{
		Match:             matchToWire(result.Match),
		PredictionsScored: result.PredictionsScored,
		LeagueIDs:         leagues,
	}, nil
}

func (s *Service) CreateMatch(ctx context.Context, req *CreateMatchInput) (*MatchResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	seasonID, err := rpc.ParseID("season_id", req.SeasonID)
	if err != nil {
		return nil, err
	}
	homeID, err := rpc.ParseID("home_team_id", req.HomeTeamID)
	if err != nil {
		return nil, err
	}
	awayID, err := rpc.ParseID("away_team_id", req.AwayTeamID)
	if err != nil {
		return nil, err
	}

	match, err := s.app.CreateMatch(ctx, caller, CreateMatchRequest{
		SeasonID:   seasonID,
		Round:      req.Round,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		Kickoff:    req.KickoffAt,
	})
	if err != nil {
		return nil, err
	}
	return &MatchResponse{Match: matchToWire(match)}, nil
}

func (s *Service) RescheduleMatch(ctx context.Context, req *RescheduleMatchRequest) (*MatchResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	matchID, err := rpc.ParseID("match_id", req.MatchID)
	if err != nil {
		return nil, err
	}

	match, err := s.app.RescheduleMatch(ctx, caller, matchID, req.KickoffAt)
	if err != nil {
		return nil, err
	}
	return &MatchResponse{Match: matchToWire(match)}, nil
}

func (s *Service) DeleteMatch(ctx context.Context, req *MatchRequest) (*DeleteMatchResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	matchID, err := rpc.ParseID("match_id", req.MatchID)
	if err != nil {
		return nil, err
	}

	if err := s.app.DeleteMatch(ctx, caller, matchID); err != nil {
		return nil, err
	}
	return &DeleteMatchResponse{}, nil
}

func (s *Service) GetMatch(ctx context.Context, req *MatchRequest) (*MatchResponse, error) {
	matchID, err := rpc.ParseID("match_id", req.MatchID)
	if err != nil {
		return nil, err
	}

	match, err := s.app.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return &MatchResponse{Match: matchToWire(match)}, nil
}

func (s *Service) ListMatches(ctx context.Context, req *ListMatchesRequest) (*ListMatchesResponse, error) {
	seasonID, err := rpc.ParseID("season_id", req.SeasonID)
	if err != nil {
		return nil, err
	}

	matches, err := s.app.ListMatches(ctx, seasonID, req.Round)
	if err != nil {
		return nil, err
	}

	out := make([]*Match, len(matches))
	for i := range matches {
		out[i] = matchToWire(&matches[i])
	}
	return &ListMatchesResponse{Matches: out}, nil
}

func matchToWire(m *models.Match) *Match {
	return &Match{
		ID:         m.ID.String(),
		SeasonID:   m.SeasonID.String(),
		Round:      m.Round,
		HomeTeamID: m.HomeTeamID.String(),
		AwayTeamID: m.AwayTeamID.String(),
		KickoffAt:  m.KickoffAt,
		Status:     string(m.Status),
		HomeGoals:  m.HomeGoals,
		AwayGoals:  m.AwayGoals,
	}
}
