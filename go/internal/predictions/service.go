package predictions

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/rpc"
)

// PredictionServiceName is the fully qualified connect service name.
const PredictionServiceName = "scorepool.v1.PredictionService"

// PredictionsApp defines what the service layer needs from the ledger
type PredictionsApp interface {
	SubmitOrUpdate(ctx context.Context, req SubmitRequest) (*models.Prediction, error)
	Withdraw(ctx context.Context, leagueID, userID, matchID uuid.UUID) error
	ListRoundPicks(ctx context.Context, leagueID, userID uuid.UUID, round int) ([]Pick, error)
	GetMyPick(ctx context.Context, leagueID, userID, matchID uuid.UUID) (*Pick, error)
	ListMatchPicks(ctx context.Context, callerID, leagueID, matchID uuid.UUID) ([]MemberPick, error)
}

type Prediction struct {
	ID        string    `json:"id"`
	LeagueID  string    `json:"league_id"`
	UserID    string    `json:"user_id"`
	MatchID   string    `json:"match_id"`
	HomeGoals int       `json:"home_goals"`
	AwayGoals int       `json:"away_goals"`
	Points    *int      `json:"points"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PickView struct {
	MatchID       string    `json:"match_id"`
	Round         int       `json:"round"`
	KickoffAt     time.Time `json:"kickoff_at"`
	Status        string    `json:"status"`
	HomeTeamID    string    `json:"home_team_id"`
	HomeTeamName  string    `json:"home_team_name"`
	AwayTeamID    string    `json:"away_team_id"`
	AwayTeamName  string    `json:"away_team_name"`
	HomeGoals     *int      `json:"home_goals"`
	AwayGoals     *int      `json:"away_goals"`
	PredictionID  string    `json:"prediction_id,omitempty"`
	PredictedHome *int      `json:"predicted_home"`
	PredictedAway *int      `json:"predicted_away"`
	Points        *int      `json:"points"`
}

type MemberPickView struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	PredictionID  string `json:"prediction_id,omitempty"`
	PredictedHome *int   `json:"predicted_home"`
	PredictedAway *int   `json:"predicted_away"`
	Points        *int   `json:"points"`
}

type SubmitPredictionRequest struct {
	LeagueID  string `json:"league_id"`
	MatchID   string `json:"match_id"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
}

type SubmitPredictionResponse struct {
	Prediction *Prediction `json:"prediction"`
}

type MatchPickRequest struct {
	LeagueID string `json:"league_id"`
	MatchID  string `json:"match_id"`
}

type WithdrawPredictionResponse struct{}

type ListRoundPicksRequest struct {
	LeagueID string `json:"league_id"`
	Round    int    `json:"round"`
}

type ListRoundPicksResponse struct {
	Picks []*PickView `json:"picks"`
}

type GetMyPickResponse struct {
	Pick *PickView `json:"pick"`
}

type ListMatchPicksResponse struct {
	Picks []*MemberPickView `json:"picks"`
}

// Service implements the PredictionService connect procedures
type Service struct {
	app PredictionsApp
}

// NewService creates a new predictions service
func NewService(app PredictionsApp) *Service {
	return &Service{app: app}
}

// NewPredictionServiceHandler returns the mount path and handler for svc.
func NewPredictionServiceHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := rpc.NewServiceMux(PredictionServiceName, opts...)
	rpc.Handle(mux, "SubmitPrediction", svc.SubmitPrediction)
	rpc.Handle(mux, "WithdrawPrediction", svc.WithdrawPrediction)
	rpc.Handle(mux, "ListRoundPicks", svc.ListRoundPicks)
	rpc.Handle(mux, "GetMyPick", svc.GetMyPick)
	rpc.Handle(mux, "ListMatchPicks", svc.ListMatchPicks)
	return mux.Path(), mux.Handler()
}

// SubmitPrediction creates or replaces the caller's prediction
func (s *Service) SubmitPrediction(ctx context.Context, req *SubmitPredictionRequest) (*SubmitPredictionResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, matchID, err := parseLeagueMatch(req.LeagueID, req.MatchID)
	if err != nil {
		return nil, err
	}

	prediction, err := s.app.SubmitOrUpdate(ctx, SubmitRequest{
		LeagueID:  leagueID,
		UserID:    caller,
		MatchID:   matchID,
		HomeGoals: req.HomeGoals,
		AwayGoals: req.AwayGoals,
	})
	if err != nil {
		return nil, err
	}
	return &SubmitPredictionResponse{Prediction: predictionToWire(prediction)}, nil
}

func (s *Service) WithdrawPrediction(ctx context.Context, req *MatchPickRequest) (*WithdrawPredictionResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, matchID, err := parseLeagueMatch(req.LeagueID, req.MatchID)
	if err != nil {
		return nil, err
	}

	if err := s.app.Withdraw(ctx, leagueID, caller, matchID); err != nil {
		return nil, err
	}
	return &WithdrawPredictionResponse{}, nil
}

func (s *Service) ListRoundPicks(ctx context.Context, req *ListRoundPicksRequest) (*ListRoundPicksResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}

	picks, err := s.app.ListRoundPicks(ctx, leagueID, caller, req.Round)
	if err != nil {
		return nil, err
	}

	out := make([]*PickView, len(picks))
	for i := range picks {
		out[i] = pickToWire(&picks[i])
	}
	return &ListRoundPicksResponse{Picks: out}, nil
}

func (s *Service) GetMyPick(ctx context.Context, req *MatchPickRequest) (*GetMyPickResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, matchID, err := parseLeagueMatch(req.LeagueID, req.MatchID)
	if err != nil {
		return nil, err
	}

	pick, err := s.app.GetMyPick(ctx, leagueID, caller, matchID)
	if err != nil {
		return nil, err
	}
	return &GetMyPickResponse{Pick: pickToWire(pick)}, nil
}

func (s *Service) ListMatchPicks(ctx context.Context, req *MatchPickRequest) (*ListMatchPicksResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, matchID, err := parseLeagueMatch(req.LeagueID, req.MatchID)
	if err != nil {
		return nil, err
	}

	picks, err := s.app.ListMatchPicks(ctx, caller, leagueID, matchID)
	if err != nil {
		return nil, err
	}

	out := make([]*MemberPickView, len(picks))
	for i, p := range picks {
		out[i] = &MemberPickView{
			UserID:        p.UserID.String(),
			DisplayName:   p.DisplayName,
			PredictionID:  optionalID(p.PredictionID),
			PredictedHome: p.PredictedHome,
			PredictedAway: p.PredictedAway,
			Points:        p.Points,
		}
	}
	return &ListMatchPicksResponse{Picks: out}, nil
}

func parseLeagueMatch(rawLeague, rawMatch string) (uuid.UUID, uuid.UUID, error) {
	leagueID, err := rpc.ParseID("league_id", rawLeague)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	matchID, err := rpc.ParseID("match_id", rawMatch)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return leagueID, matchID, nil
}

func optionalID(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func predictionToWire(p *models.Prediction) *Prediction {
	return &Prediction{
		ID:        p.ID.String(),
		LeagueID:  p.LeagueID.String(),
		UserID:    p.UserID.String(),
		MatchID:   p.MatchID.String(),
		HomeGoals: p.HomeGoals,
		AwayGoals: p.AwayGoals,
		Points:    p.Points,
		UpdatedAt: p.UpdatedAt,
	}
}

func pickToWire(p *Pick) *PickView {
	return &PickView{
		MatchID:       p.MatchID.String(),
		Round:         p.Round,
		KickoffAt:     p.KickoffAt,
		Status:        string(p.Status),
		HomeTeamID:    p.HomeTeamID.String(),
		HomeTeamName:  p.HomeTeamName,
		AwayTeamID:    p.AwayTeamID.String(),
		AwayTeamName:  p.AwayTeamName,
		HomeGoals:     p.HomeGoals,
		AwayGoals:     p.AwayGoals,
		PredictionID:  optionalID(p.PredictionID),
		PredictedHome: p.PredictedHome,
		PredictedAway: p.PredictedAway,
		Points:        p.Points,
	}
}
