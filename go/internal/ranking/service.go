package ranking

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/rpc"
)

// RankingServiceName is the fully qualified connect service name.
const RankingServiceName = "scorepool.v1.RankingService"

// RankingApp defines what the service layer needs from the ranking application
type RankingApp interface {
	OverallStandings(ctx context.Context, callerID, leagueID uuid.UUID) ([]Standing, error)
	RoundStandings(ctx context.Context, callerID, leagueID uuid.UUID, round int) ([]RoundStanding, error)
	CumulativeSeries(ctx context.Context, callerID, leagueID uuid.UUID, upTo *int, userID *uuid.UUID) ([]Series, error)
}

type StandingRow struct {
	Position         int      `json:"position"`
	UserID           string   `json:"user_id"`
	DisplayName      string   `json:"display_name"`
	Points           int      `json:"points"`
	Exact            int      `json:"exact"`
	Differential     int      `json:"differential"`
	Winner           int      `json:"winner"`
	Miss             int      `json:"miss"`
	Efficiency       *float64 `json:"efficiency,omitempty"`
	ExactRate        *float64 `json:"exact_rate,omitempty"`
	DifferentialRate *float64 `json:"differential_rate,omitempty"`
	WinnerRate       *float64 `json:"winner_rate,omitempty"`
}

type OverallStandingsRequest struct {
	LeagueID string `json:"league_id"`
}

type StandingsResponse struct {
	Standings []*StandingRow `json:"standings"`
}

type RoundStandingsRequest struct {
	LeagueID string `json:"league_id"`
	Round    int    `json:"round"`
}

type CumulativeSeriesRequest struct {
	LeagueID string `json:"league_id"`
	UpTo     *int   `json:"up_to,omitempty"`
	UserID   string `json:"user_id,omitempty"`
}

type SeriesPointRow struct {
	Round  int `json:"round"`
	Points int `json:"points"`
	Total  int `json:"total"`
}

type SeriesRow struct {
	UserID      string            `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Points      []*SeriesPointRow `json:"points"`
}

type CumulativeSeriesResponse struct {
	Series []*SeriesRow `json:"series"`
}

// Service implements the RankingService connect procedures
type Service struct {
	app RankingApp
}

// NewService creates a new ranking service
func NewService(app RankingApp) *Service {
	return &Service{app: app}
}

// NewRankingServiceHandler returns the mount path and handler for svc.
func NewRankingServiceHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := rpc.NewServiceMux(RankingServiceName, opts...)
	rpc.Handle(mux, "OverallStandings", svc.OverallStandings)
	rpc.Handle(mux, "RoundStandings", svc.RoundStandings)
	rpc.Handle(mux, "CumulativeSeries", svc.CumulativeSeries)
	return mux.Path(), mux.Handler()
}

func (s *Service) OverallStandings(ctx context.Context, req *OverallStandingsRequest) (*StandingsResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}

	standings, err := s.app.OverallStandings(ctx, caller, leagueID)
	if err != nil {
		return nil, err
	}

	out := make([]*StandingRow, len(standings))
	for i, st := range standings {
		row := breakdownRow(st.Position, st.UserID, st.DisplayName, st.Breakdown)
		row.Efficiency = &st.Efficiency
		row.ExactRate = &st.ExactRate
		row.DifferentialRate = &st.DifferentialRate
		row.WinnerRate = &st.WinnerRate
		out[i] = row
	}
	return &StandingsResponse{Standings: out}, nil
}

func (s *Service) RoundStandings(ctx context.Context, req *RoundStandingsRequest) (*StandingsResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}

	standings, err := s.app.RoundStandings(ctx, caller, leagueID, req.Round)
	if err != nil {
		return nil, err
	}

	out := make([]*StandingRow, len(standings))
	for i, st := range standings {
		out[i] = breakdownRow(st.Position, st.UserID, st.DisplayName, st.Breakdown)
	}
	return &StandingsResponse{Standings: out}, nil
}

func (s *Service) CumulativeSeries(ctx context.Context, req *CumulativeSeriesRequest) (*CumulativeSeriesResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}
	userID, err := rpc.ParseOptionalID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	series, err := s.app.CumulativeSeries(ctx, caller, leagueID, req.UpTo, userID)
	if err != nil {
		return nil, err
	}

	out := make([]*SeriesRow, len(series))
	for i, sr := range series {
		points := make([]*SeriesPointRow, len(sr.Points))
		for j, p := range sr.Points {
			points[j] = &SeriesPointRow{Round: p.Round, Points: p.Points, Total: p.Total}
		}
		out[i] = &SeriesRow{UserID: sr.UserID.String(), DisplayName: sr.DisplayName, Points: points}
	}
	return &CumulativeSeriesResponse{Series: out}, nil
}

func breakdownRow(position int, userID uuid.UUID, name string, b Breakdown) *StandingRow {
	return &StandingRow{
		Position:     position,
		UserID:       userID.String(),
		DisplayName:  name,
		Points:       b.Points,
		Exact:        b.Exact,
		Differential: b.Differential,
		Winner:       b.Winner,
		Miss:         b.Miss,
	}
}
