package leagues

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/rpc"
)

// LeagueServiceName is the fully qualified connect service name.
const LeagueServiceName = "scorepool.v1.LeagueService"

// LeaguesApp defines what the service layer needs from the leagues application
type LeaguesApp interface {
	CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error)
	JoinByCode(ctx context.Context, userID uuid.UUID, code string) (*JoinResult, error)
	ChangeRole(ctx context.Context, executorID, leagueID, targetID uuid.UUID, newRole models.LeagueRole) (*models.Membership, error)
	RemoveMember(ctx context.Context, executorID, leagueID, targetID uuid.UUID) error
	Leave(ctx context.Context, userID, leagueID uuid.UUID, newOwnerID *uuid.UUID) error
	TransferOwnership(ctx context.Context, executorID, leagueID, newOwnerID uuid.UUID) error
	GetLeague(ctx context.Context, callerID, leagueID uuid.UUID) (*models.League, error)
	ListLeaguesForUser(ctx context.Context, userID uuid.UUID, seasonID *uuid.UUID) ([]models.League, error)
	ListMembers(ctx context.Context, callerID, leagueID uuid.UUID) ([]models.Membership, error)
	RenameLeague(ctx context.Context, executorID, leagueID uuid.UUID, name string) (*models.League, error)
	DeleteLeague(ctx context.Context, executorID, leagueID uuid.UUID) error
}

type League struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	SeasonID   string    `json:"season_id"`
	InviteCode string    `json:"invite_code"`
	OwnerID    string    `json:"owner_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type Member struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name,omitempty"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// CreateLeagueInput is the wire request; the owner is the caller.
type CreateLeagueInput struct {
	Name     string `json:"name"`
	SeasonID string `json:"season_id"`
}

type LeagueResponse struct {
	League *League `json:"league"`
}

type JoinByCodeRequest struct {
	InviteCode string `json:"invite_code"`
}

type JoinByCodeResponse struct {
	League        *League `json:"league"`
	Member        *Member `json:"member"`
	AlreadyMember bool    `json:"already_member"`
}

type ChangeRoleRequest struct {
	LeagueID string `json:"league_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
}

type MemberResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	LeagueID string `json:"league_id"`
	UserID   string `json:"user_id"`
}

type LeaveRequest struct {
	LeagueID   string `json:"league_id"`
	NewOwnerID string `json:"new_owner_id,omitempty"`
}

type TransferOwnershipRequest struct {
	LeagueID   string `json:"league_id"`
	NewOwnerID string `json:"new_owner_id"`
}

type LeagueRequest struct {
	LeagueID string `json:"league_id"`
}

type ListMyLeaguesRequest struct {
	SeasonID string `json:"season_id,omitempty"`
}

type ListMyLeaguesResponse struct {
	Leagues []*League `json:"leagues"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type RenameLeagueRequest struct {
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
}

type Empty struct{}

// Service implements the LeagueService connect procedures. The executing
// user is always the authenticated caller.
type Service struct {
	app LeaguesApp
}

// NewService creates a new leagues service
func NewService(app LeaguesApp) *Service {
	return &Service{app: app}
}

// NewLeagueServiceHandler returns the mount path and handler for svc.
func NewLeagueServiceHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := rpc.NewServiceMux(LeagueServiceName, opts...)
	rpc.Handle(mux, "CreateLeague", svc.CreateLeague)
	rpc.Handle(mux, "JoinByCode", svc.JoinByCode)
	rpc.Handle(mux, "ChangeRole", svc.ChangeRole)
	rpc.Handle(mux, "RemoveMember", svc.RemoveMember)
	rpc.Handle(mux, "Leave", svc.Leave)
	rpc.Handle(mux, "TransferOwnership", svc.TransferOwnership)
	rpc.Handle(mux, "GetLeague", svc.GetLeague)
	rpc.Handle(mux, "ListMyLeagues", svc.ListMyLeagues)
	rpc.Handle(mux, "ListMembers", svc.ListMembers)
	rpc.Handle(mux, "RenameLeague", svc.RenameLeague)
	rpc.Handle(mux, "DeleteLeague", svc.DeleteLeague)
	return mux.Path(), mux.Handler()
}

// CreateLeague creates a league owned by the caller
func (s *Service) CreateLeague(ctx context.Context, req *CreateLeagueInput) (*LeagueResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	seasonID, err := rpc.ParseID("season_id", req.SeasonID)
	if err != nil {
		return nil, err
	}

	league, err := s.app.CreateLeague(ctx, CreateLeagueRequest{
		OwnerID:  caller,
		Name:     req.Name,
		SeasonID: seasonID,
	})
	if err != nil {
		return nil, err
	}
	return &LeagueResponse{League: leagueToWire(league)}, nil
}

func (s *Service) JoinByCode(ctx context.Context, req *JoinByCodeRequest) (*JoinByCodeResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.app.JoinByCode(ctx, caller, req.InviteCode)
	if err != nil {
		return nil, err
	}
	return &JoinByCodeResponse{
		League:        leagueToWire(result.League),
		Member:        memberToWire(result.Membership),
		AlreadyMember: result.AlreadyMember,
	}, nil
}

func (s *Service) ChangeRole(ctx context.Context, req *ChangeRoleRequest) (*MemberResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}
	targetID, err := rpc.ParseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	member, err := s.app.ChangeRole(ctx, caller, leagueID, targetID, models.LeagueRole(req.Role))
	if err != nil {
		return nil, err
	}
	return &MemberResponse{Member: memberToWire(member)}, nil
}

func (s *Service) RemoveMember(ctx context.Context, req *RemoveMemberRequest) (*Empty, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}
	targetID, err := rpc.ParseID("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.app.RemoveMember(ctx, caller, leagueID, targetID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *Service) Leave(ctx context.Context, req *LeaveRequest) (*Empty, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}
	newOwnerID, err := rpc.ParseOptionalID("new_owner_id", req.NewOwnerID)
	if err != nil {
		return nil, err
	}

	if err := s.app.Leave(ctx, caller, leagueID, newOwnerID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *Service) TransferOwnership(ctx context.Context, req *TransferOwnershipRequest) (*Empty, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}
	newOwnerID, err := rpc.ParseID("new_owner_id", req.NewOwnerID)
	if err != nil {
		return nil, err
	}

	if err := s.app.TransferOwnership(ctx, caller, leagueID, newOwnerID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func (s *Service) GetLeague(ctx context.Context, req *LeagueRequest) (*LeagueResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}

	league, err := s.app.GetLeague(ctx, caller, leagueID)
	if err != nil {
		return nil, err
	}
	return &LeagueResponse{League: leagueToWire(league)}, nil
}

// ListMyLeagues lists the caller's leagues, optionally for one season
func (s *Service) ListMyLeagues(ctx context.Context, req *ListMyLeaguesRequest) (*ListMyLeaguesResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	seasonID, err := rpc.ParseOptionalID("season_id", req.SeasonID)
	if err != nil {
		return nil, err
	}

	leagues, err := s.app.ListLeaguesForUser(ctx, caller, seasonID)
	if err != nil {
		return nil, err
	}

	out := make([]*League, len(leagues))
	for i := range leagues {
		out[i] = leagueToWire(&leagues[i])
	}
	return &ListMyLeaguesResponse{Leagues: out}, nil
}

func (s *Service) ListMembers(ctx context.Context, req *LeagueRequest) (*ListMembersResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}

	members, err := s.app.ListMembers(ctx, caller, leagueID)
	if err != nil {
		return nil, err
	}

	out := make([]*Member, len(members))
	for i := range members {
		out[i] = memberToWire(&members[i])
	}
	return &ListMembersResponse{Members: out}, nil
}

func (s *Service) RenameLeague(ctx context.Context, req *RenameLeagueRequest) (*LeagueResponse, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}

	league, err := s.app.RenameLeague(ctx, caller, leagueID, req.Name)
	if err != nil {
		return nil, err
	}
	return &LeagueResponse{League: leagueToWire(league)}, nil
}

func (s *Service) DeleteLeague(ctx context.Context, req *LeagueRequest) (*Empty, error) {
	caller, err := rpc.CallerID(ctx)
	if err != nil {
		return nil, err
	}
	leagueID, err := rpc.ParseID("league_id", req.LeagueID)
	if err != nil {
		return nil, err
	}

	if err := s.app.DeleteLeague(ctx, caller, leagueID); err != nil {
		return nil, err
	}
	return &Empty{}, nil
}

func leagueToWire(league *models.League) *League {
	return &League{
		ID:         league.ID.String(),
		Name:       league.Name,
		SeasonID:   league.SeasonID.String(),
		InviteCode: league.InviteCode,
		OwnerID:    league.OwnerID.String(),
		CreatedAt:  league.CreatedAt,
	}
}

func memberToWire(m *models.Membership) *Member {
	return &Member{
		UserID:      m.UserID.String(),
		DisplayName: m.DisplayName,
		Role:        string(m.Role),
		JoinedAt:    m.JoinedAt,
	}
}
