package leagues

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
)

var errSingleOwnerIndex = errors.New(`duplicate key value violates unique constraint "league_members_single_owner_idx"`)

type memberKey struct {
	league uuid.UUID
	user   uuid.UUID
}

type fakeEvent struct {
	AggregateID uuid.UUID
	Type        string
	Payload     any
	Actor       uuid.UUID
}

type fakeState struct {
	seasons map[uuid.UUID]bool
	leagues map[uuid.UUID]models.League
	members map[memberKey]models.Membership
	events  []fakeEvent
	tick    int
}

func (s *fakeState) clone() *fakeState {
	return &fakeState{
		seasons: maps.Clone(s.seasons),
		leagues: maps.Clone(s.leagues),
		members: maps.Clone(s.members),
		events:  slices.Clone(s.events),
		tick:    s.tick,
	}
}

func (s *fakeState) now() time.Time {
	s.tick++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(s.tick) * time.Second)
}

// fakeRepo keeps everything in memory. A failed WithTx restores the state
// captured when the transaction began. failOn injects an error into the
// named method.
type fakeRepo struct {
	state  *fakeState
	failOn map[string]error
	inTx   bool
}

func newFakeRepo(seasons ...uuid.UUID) *fakeRepo {
	st := &fakeState{
		seasons: map[uuid.UUID]bool{},
		leagues: map[uuid.UUID]models.League{},
		members: map[memberKey]models.Membership{},
	}
	for _, s := range seasons {
		st.seasons[s] = true
	}
	return &fakeRepo{state: st, failOn: map[string]error{}}
}

func (r *fakeRepo) WithTx(_ context.Context, fn func(repo LeaguesRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	snapshot := r.state.clone()
	if err := fn(&fakeRepo{state: r.state, failOn: r.failOn, inTx: true}); err != nil {
		*r.state = *snapshot
		return err
	}
	return nil
}

func (r *fakeRepo) SeasonExists(_ context.Context, seasonID uuid.UUID) (bool, error) {
	return r.state.seasons[seasonID], nil
}

func (r *fakeRepo) CreateLeague(_ context.Context, league NewLeague) (*models.League, error) {
	if err := r.failOn["CreateLeague"]; err != nil {
		return nil, err
	}
	for _, l := range r.state.leagues {
		if l.InviteCode == league.InviteCode {
			return nil, errInviteCodeTaken
		}
		if l.OwnerID == league.OwnerID && l.SeasonID == league.SeasonID && l.Name == league.Name {
			return nil, models.ErrDuplicateLeagueName
		}
	}
	l := models.League{
		ID:         league.ID,
		Name:       league.Name,
		SeasonID:   league.SeasonID,
		InviteCode: league.InviteCode,
		OwnerID:    league.OwnerID,
		CreatedAt:  r.state.now(),
	}
	r.state.leagues[l.ID] = l
	return &l, nil
}

func (r *fakeRepo) GetLeague(_ context.Context, id uuid.UUID) (*models.League, error) {
	l, ok := r.state.leagues[id]
	if !ok {
		return nil, fmt.Errorf("league %s: %w", id, models.ErrNotFound)
	}
	return &l, nil
}

func (r *fakeRepo) GetLeagueForUpdate(ctx context.Context, id uuid.UUID) (*models.League, error) {
	return r.GetLeague(ctx, id)
}

func (r *fakeRepo) GetLeagueByInviteCode(_ context.Context, code string) (*models.League, error) {
	for _, l := range r.state.leagues {
		if l.InviteCode == code {
			return &l, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeRepo) ListLeaguesForUser(_ context.Context, userID uuid.UUID, seasonID *uuid.UUID) ([]models.League, error) {
	var out []models.League
	for key := range r.state.members {
		if key.user != userID {
			continue
		}
		l := r.state.leagues[key.league]
		if seasonID != nil && l.SeasonID != *seasonID {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeRepo) RenameLeague(_ context.Context, id uuid.UUID, name string) (*models.League, error) {
	l, ok := r.state.leagues[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	for _, other := range r.state.leagues {
		if other.ID != id && other.OwnerID == l.OwnerID && other.SeasonID == l.SeasonID && other.Name == name {
			return nil, models.ErrDuplicateLeagueName
		}
	}
	l.Name = name
	r.state.leagues[id] = l
	return &l, nil
}

func (r *fakeRepo) UpdateLeagueOwner(_ context.Context, id, ownerID uuid.UUID) error {
	if err := r.failOn["UpdateLeagueOwner"]; err != nil {
		return err
	}
	l := r.state.leagues[id]
	l.OwnerID = ownerID
	r.state.leagues[id] = l
	return nil
}

func (r *fakeRepo) DeleteLeague(_ context.Context, id uuid.UUID) error {
	delete(r.state.leagues, id)
	for key := range r.state.members {
		if key.league == id {
			delete(r.state.members, key)
		}
	}
	return nil
}

func (r *fakeRepo) AddMember(_ context.Context, leagueID, userID uuid.UUID, role models.LeagueRole) (*models.Membership, bool, error) {
	key := memberKey{leagueID, userID}
	if _, ok := r.state.members[key]; ok {
		return nil, false, nil
	}
	if role == models.LeagueRoleOwner && r.ownerCount(leagueID) > 0 {
		return nil, false, errSingleOwnerIndex
	}
	m := models.Membership{
		ID:       uuid.New(),
		LeagueID: leagueID,
		UserID:   userID,
		Role:     role,
		JoinedAt: r.state.now(),
	}
	r.state.members[key] = m
	return &m, true, nil
}

func (r *fakeRepo) GetMember(_ context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	m, ok := r.state.members[memberKey{leagueID, userID}]
	if !ok {
		return nil, fmt.Errorf("membership: %w", models.ErrNotFound)
	}
	return &m, nil
}

func (r *fakeRepo) GetMemberForUpdate(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	return r.GetMember(ctx, leagueID, userID)
}

func (r *fakeRepo) ListMembers(_ context.Context, leagueID uuid.UUID) ([]models.Membership, error) {
	var out []models.Membership
	for key, m := range r.state.members {
		if key.league == leagueID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (r *fakeRepo) UpdateMemberRole(_ context.Context, leagueID, userID uuid.UUID, role models.LeagueRole) (*models.Membership, error) {
	if err := r.failOn["UpdateMemberRole"]; err != nil {
		return nil, err
	}
	key := memberKey{leagueID, userID}
	m, ok := r.state.members[key]
	if !ok {
		return nil, models.ErrNotFound
	}
	if role == models.LeagueRoleOwner && m.Role != models.LeagueRoleOwner && r.ownerCount(leagueID) > 0 {
		return nil, errSingleOwnerIndex
	}
	m.Role = role
	r.state.members[key] = m
	return &m, nil
}

func (r *fakeRepo) RemoveMember(_ context.Context, leagueID, userID uuid.UUID) (bool, error) {
	key := memberKey{leagueID, userID}
	if _, ok := r.state.members[key]; !ok {
		return false, nil
	}
	delete(r.state.members, key)
	return true, nil
}

func (r *fakeRepo) AppendEvent(_ context.Context, aggregateID uuid.UUID, eventType string, payload any, actor uuid.UUID) error {
	if err := r.failOn["AppendEvent"]; err != nil {
		return err
	}
	r.state.events = append(r.state.events, fakeEvent{
		AggregateID: aggregateID,
		Type:        eventType,
		Payload:     payload,
		Actor:       actor,
	})
	return nil
}

func (r *fakeRepo) ownerCount(leagueID uuid.UUID) int {
	n := 0
	for key, m := range r.state.members {
		if key.league == leagueID && m.Role == models.LeagueRoleOwner {
			n++
		}
	}
	return n
}

func (r *fakeRepo) role(leagueID, userID uuid.UUID) (models.LeagueRole, bool) {
	m, ok := r.state.members[memberKey{leagueID, userID}]
	return m.Role, ok
}

func (r *fakeRepo) eventTypes() []string {
	out := make([]string, len(r.state.events))
	for i, e := range r.state.events {
		out[i] = e.Type
	}
	return out
}

// seedLeague inserts a league with its owner and the given extra members
// directly into the store.
func (r *fakeRepo) seedLeague(seasonID, ownerID uuid.UUID, members map[uuid.UUID]models.LeagueRole) models.League {
	l := models.League{
		ID:         uuid.New(),
		Name:       "league-" + uuid.NewString()[:8],
		SeasonID:   seasonID,
		InviteCode: uuid.NewString()[:8],
		OwnerID:    ownerID,
		CreatedAt:  r.state.now(),
	}
	r.state.leagues[l.ID] = l
	r.state.members[memberKey{l.ID, ownerID}] = models.Membership{
		ID: uuid.New(), LeagueID: l.ID, UserID: ownerID, Role: models.LeagueRoleOwner, JoinedAt: r.state.now(),
	}
	for userID, role := range members {
		r.state.members[memberKey{l.ID, userID}] = models.Membership{
			ID: uuid.New(), LeagueID: l.ID, UserID: userID, Role: role, JoinedAt: r.state.now(),
		}
	}
	return l
}

// sequentialCodes hands out the given codes in order, then repeats the last.
func sequentialCodes(codes ...string) (CodeGenerator, *int) {
	calls := 0
	return func() (string, error) {
		code := codes[min(calls, len(codes)-1)]
		calls++
		return code, nil
	}, &calls
}
