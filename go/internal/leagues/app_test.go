package leagues

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/outbox"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSingleOwner(t *testing.T, repo *fakeRepo, leagueID uuid.UUID) {
	t.Helper()
	league, ok := repo.state.leagues[leagueID]
	require.True(t, ok, "league %s missing", leagueID)
	require.Equal(t, 1, repo.ownerCount(leagueID), "owner rows")
	role, ok := repo.role(leagueID, league.OwnerID)
	require.True(t, ok, "league owner has no membership")
	require.Equal(t, models.LeagueRoleOwner, role)
}

func TestCreateLeague(t *testing.T) {
	ctx := context.Background()
	seasonID, ownerID := uuid.New(), uuid.New()
	repo := newFakeRepo(seasonID)
	codes, calls := sequentialCodes("AbCd-_12")
	app := NewApp(repo, codes, DefaultConfig())

	league, err := app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: ownerID, Name: "  Bolão  ", SeasonID: seasonID})
	require.NoError(t, err)
	assert.Equal(t, "Bolão", league.Name)
	assert.Equal(t, "AbCd-_12", league.InviteCode)
	assert.Equal(t, ownerID, league.OwnerID)
	assert.Equal(t, 1, *calls)

	assertSingleOwner(t, repo, league.ID)
	assert.Equal(t, []string{outbox.EventLeagueCreated}, repo.eventTypes())
}

func TestCreateLeague_Validation(t *testing.T) {
	ctx := context.Background()
	seasonID := uuid.New()
	app := NewApp(newFakeRepo(seasonID), nil, DefaultConfig())

	_, err := app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: uuid.New(), Name: "   ", SeasonID: seasonID})
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: uuid.New(), Name: "ok", SeasonID: uuid.New()})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCreateLeague_RetriesOnInviteCodeCollision(t *testing.T) {
	ctx := context.Background()
	seasonID := uuid.New()
	repo := newFakeRepo(seasonID)
	existing := repo.seedLeague(seasonID, uuid.New(), nil)

	codes, calls := sequentialCodes(existing.InviteCode, "FRESH001")
	app := NewApp(repo, codes, DefaultConfig())

	league, err := app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: uuid.New(), Name: "second", SeasonID: seasonID})
	require.NoError(t, err)
	assert.Equal(t, "FRESH001", league.InviteCode)
	assert.Equal(t, 2, *calls)
	assert.Len(t, repo.state.leagues, 2)
	assert.Equal(t, []string{outbox.EventLeagueCreated}, repo.eventTypes())
}

func TestCreateLeague_InviteCodeExhausted(t *testing.T) {
	ctx := context.Background()
	seasonID := uuid.New()
	repo := newFakeRepo(seasonID)
	existing := repo.seedLeague(seasonID, uuid.New(), nil)

	codes, calls := sequentialCodes(existing.InviteCode)
	app := NewApp(repo, codes, DefaultConfig())

	_, err := app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: uuid.New(), Name: "never", SeasonID: seasonID})
	require.ErrorIs(t, err, models.ErrInviteCodeExhausted)
	assert.Equal(t, 10, *calls)
	assert.Len(t, repo.state.leagues, 1)
	assert.Len(t, repo.state.members, 1)
	assert.Empty(t, repo.state.events)
}

func TestCreateLeague_DuplicateName(t *testing.T) {
	ctx := context.Background()
	seasonID, ownerID := uuid.New(), uuid.New()
	repo := newFakeRepo(seasonID)
	codes, calls := sequentialCodes("CODE0001", "CODE0002")
	app := NewApp(repo, codes, DefaultConfig())

	_, err := app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: ownerID, Name: "Family", SeasonID: seasonID})
	require.NoError(t, err)

	_, err = app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: ownerID, Name: "Family", SeasonID: seasonID})
	assert.ErrorIs(t, err, models.ErrDuplicateLeagueName)
	assert.Equal(t, 2, *calls, "a name conflict is not retried")

	// another owner may reuse the name
	_, err = app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: uuid.New(), Name: "Family", SeasonID: seasonID})
	assert.NoError(t, err)
}

func TestJoinByCode(t *testing.T) {
	ctx := context.Background()
	seasonID, ownerID, userID := uuid.New(), uuid.New(), uuid.New()
	repo := newFakeRepo(seasonID)
	league := repo.seedLeague(seasonID, ownerID, nil)
	app := NewApp(repo, nil, DefaultConfig())

	_, err := app.JoinByCode(ctx, userID, "nope")
	assert.ErrorIs(t, err, models.ErrInvalidInvite)
	_, err = app.JoinByCode(ctx, userID, "  ")
	assert.ErrorIs(t, err, models.ErrInvalidInvite)

	res, err := app.JoinByCode(ctx, userID, league.InviteCode)
	require.NoError(t, err)
	assert.False(t, res.AlreadyMember)
	assert.Equal(t, models.LeagueRoleMember, res.Membership.Role)
	assert.Equal(t, league.ID, res.League.ID)

	res, err = app.JoinByCode(ctx, userID, league.InviteCode)
	require.NoError(t, err)
	assert.True(t, res.AlreadyMember)
	assert.Equal(t, models.LeagueRoleMember, res.Membership.Role)

	// the owner joining again keeps the owner role
	res, err = app.JoinByCode(ctx, ownerID, league.InviteCode)
	require.NoError(t, err)
	assert.True(t, res.AlreadyMember)
	assert.Equal(t, models.LeagueRoleOwner, res.Membership.Role)

	assert.Equal(t, []string{outbox.EventMemberJoined}, repo.eventTypes())
	assertSingleOwner(t, repo, league.ID)
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	seasonID, owner, admin, admin2, member, outsider := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	setup := func() (*fakeRepo, *App, models.League) {
		repo := newFakeRepo(seasonID)
		league := repo.seedLeague(seasonID, owner, map[uuid.UUID]models.LeagueRole{
			admin:  models.LeagueRoleLeagueAdmin,
			admin2: models.LeagueRoleLeagueAdmin,
			member: models.LeagueRoleMember,
		})
		return repo, NewApp(repo, nil, DefaultConfig()), league
	}

	tests := []struct {
		name     string
		executor uuid.UUID
		target   uuid.UUID
		role     models.LeagueRole
		wantErr  error
		wantRole models.LeagueRole
	}{
		{"owner promotes member", owner, member, models.LeagueRoleLeagueAdmin, nil, models.LeagueRoleLeagueAdmin},
		{"owner demotes admin", owner, admin, models.LeagueRoleMember, nil, models.LeagueRoleMember},
		{"admin promotes member", admin, member, models.LeagueRoleLeagueAdmin, nil, models.LeagueRoleLeagueAdmin},
		{"admin cannot demote admin", admin, admin2, models.LeagueRoleMember, models.ErrRoleNotPermitted, models.LeagueRoleLeagueAdmin},
		{"admin cannot touch owner", admin, owner, models.LeagueRoleMember, models.ErrOwnerRoleImmutable, models.LeagueRoleOwner},
		{"member cannot change roles", member, admin, models.LeagueRoleMember, models.ErrRoleNotPermitted, models.LeagueRoleLeagueAdmin},
		{"owner cannot be assigned", owner, member, models.LeagueRoleOwner, models.ErrOwnerRoleImmutable, models.LeagueRoleMember},
		{"unknown role", owner, member, models.LeagueRole("CAPTAIN"), models.ErrInvalidArgument, models.LeagueRoleMember},
		{"self", admin, admin, models.LeagueRoleMember, models.ErrSelfAction, models.LeagueRoleLeagueAdmin},
		{"executor outside league", outsider, member, models.LeagueRoleLeagueAdmin, models.ErrNotMember, models.LeagueRoleMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, app, league := setup()

			_, err := app.ChangeRole(ctx, tt.executor, league.ID, tt.target, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.state.events)
			} else {
				require.NoError(t, err)
				assert.Equal(t, []string{outbox.EventMemberRoleChanged}, repo.eventTypes())
			}

			role, ok := repo.role(league.ID, tt.target)
			require.True(t, ok)
			assert.Equal(t, tt.wantRole, role)
			assertSingleOwner(t, repo, league.ID)
		})
	}

	t.Run("missing target", func(t *testing.T) {
		_, app, league := setup()
		_, err := app.ChangeRole(ctx, owner, league.ID, outsider, models.LeagueRoleMember)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown league", func(t *testing.T) {
		_, app, _ := setup()
		_, err := app.ChangeRole(ctx, owner, uuid.New(), member, models.LeagueRoleMember)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		repo, app, league := setup()
		m, err := app.ChangeRole(ctx, owner, league.ID, member, models.LeagueRoleMember)
		require.NoError(t, err)
		assert.Equal(t, models.LeagueRoleMember, m.Role)
		assert.Empty(t, repo.state.events)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	seasonID, owner, admin, admin2, member := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	setup := func() (*fakeRepo, *App, models.League) {
		repo := newFakeRepo(seasonID)
		league := repo.seedLeague(seasonID, owner, map[uuid.UUID]models.LeagueRole{
			admin:  models.LeagueRoleLeagueAdmin,
			admin2: models.LeagueRoleLeagueAdmin,
			member: models.LeagueRoleMember,
		})
		return repo, NewApp(repo, nil, DefaultConfig()), league
	}

	tests := []struct {
		name     string
		executor uuid.UUID
		target   uuid.UUID
		wantErr  error
	}{
		{"admin removes member", admin, member, nil},
		{"owner removes admin", owner, admin, nil},
		{"owner removes member", owner, member, nil},
		{"admin cannot remove admin", admin, admin2, models.ErrRoleNotPermitted},
		{"admin cannot remove owner", admin, owner, models.ErrOwnerRoleImmutable},
		{"member cannot remove", member, admin, models.ErrRoleNotPermitted},
		{"self removal", member, member, models.ErrSelfAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, app, league := setup()

			err := app.RemoveMember(ctx, tt.executor, league.ID, tt.target)
			_, stillMember := repo.role(league.ID, tt.target)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, stillMember)
			} else {
				require.NoError(t, err)
				assert.False(t, stillMember)
				assert.Equal(t, []string{outbox.EventMemberRemoved}, repo.eventTypes())
			}
			assertSingleOwner(t, repo, league.ID)
		})
	}
}

func TestLeave(t *testing.T) {
	ctx := context.Background()
	seasonID, owner, admin, member := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	setup := func() (*fakeRepo, *App, models.League) {
		repo := newFakeRepo(seasonID)
		league := repo.seedLeague(seasonID, owner, map[uuid.UUID]models.LeagueRole{
			admin:  models.LeagueRoleLeagueAdmin,
			member: models.LeagueRoleMember,
		})
		return repo, NewApp(repo, nil, DefaultConfig()), league
	}

	t.Run("member leaves", func(t *testing.T) {
		repo, app, league := setup()
		require.NoError(t, app.Leave(ctx, member, league.ID, nil))
		_, ok := repo.role(league.ID, member)
		assert.False(t, ok)
		assert.Equal(t, []string{outbox.EventMemberLeft}, repo.eventTypes())
	})

	t.Run("owner without successor", func(t *testing.T) {
		repo, app, league := setup()
		err := app.Leave(ctx, owner, league.ID, nil)
		assert.ErrorIs(t, err, models.ErrOwnerMustTransfer)
		assertSingleOwner(t, repo, league.ID)
		assert.Empty(t, repo.state.events)
	})

	t.Run("owner names self", func(t *testing.T) {
		_, app, league := setup()
		err := app.Leave(ctx, owner, league.ID, &owner)
		assert.ErrorIs(t, err, models.ErrSelfAction)
	})

	t.Run("owner hands over and leaves", func(t *testing.T) {
		repo, app, league := setup()
		require.NoError(t, app.Leave(ctx, owner, league.ID, &member))

		_, ok := repo.role(league.ID, owner)
		assert.False(t, ok)
		assert.Equal(t, member, repo.state.leagues[league.ID].OwnerID)
		assertSingleOwner(t, repo, league.ID)
		assert.Equal(t, []string{outbox.EventOwnershipTransferred, outbox.EventMemberLeft}, repo.eventTypes())
	})

	t.Run("successor outside league", func(t *testing.T) {
		repo, app, league := setup()
		outsider := uuid.New()
		err := app.Leave(ctx, owner, league.ID, &outsider)
		assert.ErrorIs(t, err, models.ErrNotAMember)
		assertSingleOwner(t, repo, league.ID)
		assert.Equal(t, owner, repo.state.leagues[league.ID].OwnerID)
	})

	t.Run("not a member", func(t *testing.T) {
		_, app, league := setup()
		err := app.Leave(ctx, uuid.New(), league.ID, nil)
		assert.ErrorIs(t, err, models.ErrNotMember)
	})

	t.Run("owner row disagrees with league owner", func(t *testing.T) {
		repo, app, league := setup()
		l := repo.state.leagues[league.ID]
		l.OwnerID = member
		repo.state.leagues[league.ID] = l
		logs := captureLogs(t)

		for _, successor := range []*uuid.UUID{&member, nil} {
			err := app.Leave(ctx, owner, league.ID, successor)
			assert.ErrorIs(t, err, models.ErrInconsistentState)
		}

		role, ok := repo.role(league.ID, owner)
		require.True(t, ok)
		assert.Equal(t, models.LeagueRoleOwner, role)
		role, _ = repo.role(league.ID, member)
		assert.Equal(t, models.LeagueRoleMember, role)
		assert.Empty(t, repo.state.events)
		assert.Contains(t, logs.String(), `"level":"error"`)
	})

	t.Run("failure after handover rolls everything back", func(t *testing.T) {
		repo, app, league := setup()
		repo.failOn["AppendEvent"] = errors.New("outbox unavailable")

		err := app.Leave(ctx, owner, league.ID, &admin)
		require.Error(t, err)

		role, ok := repo.role(league.ID, owner)
		require.True(t, ok)
		assert.Equal(t, models.LeagueRoleOwner, role)
		role, _ = repo.role(league.ID, admin)
		assert.Equal(t, models.LeagueRoleLeagueAdmin, role)
		assertSingleOwner(t, repo, league.ID)
	})
}

func TestTransferOwnership(t *testing.T) {
	ctx := context.Background()
	seasonID, owner, admin, member := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	setup := func() (*fakeRepo, *App, models.League) {
		repo := newFakeRepo(seasonID)
		league := repo.seedLeague(seasonID, owner, map[uuid.UUID]models.LeagueRole{
			admin:  models.LeagueRoleLeagueAdmin,
			member: models.LeagueRoleMember,
		})
		return repo, NewApp(repo, nil, DefaultConfig()), league
	}

	t.Run("success", func(t *testing.T) {
		repo, app, league := setup()
		require.NoError(t, app.TransferOwnership(ctx, owner, league.ID, member))

		role, _ := repo.role(league.ID, owner)
		assert.Equal(t, models.LeagueRoleMember, role)
		role, _ = repo.role(league.ID, member)
		assert.Equal(t, models.LeagueRoleOwner, role)
		assert.Equal(t, member, repo.state.leagues[league.ID].OwnerID)
		assertSingleOwner(t, repo, league.ID)

		require.Len(t, repo.state.events, 1)
		assert.Equal(t, outbox.OwnershipTransferredPayload{
			LeagueID:        league.ID,
			PreviousOwnerID: owner,
			NewOwnerID:      member,
		}, repo.state.events[0].Payload)
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name     string
			executor uuid.UUID
			league   func(models.League) uuid.UUID
			newOwner uuid.UUID
			wantErr  error
		}{
			{"self", owner, func(l models.League) uuid.UUID { return l.ID }, owner, models.ErrSelfAction},
			{"unknown league", owner, func(models.League) uuid.UUID { return uuid.New() }, member, models.ErrNotFound},
			{"admin is not owner", admin, func(l models.League) uuid.UUID { return l.ID }, member, models.ErrRoleNotPermitted},
			{"successor outside league", owner, func(l models.League) uuid.UUID { return l.ID }, uuid.New(), models.ErrNotAMember},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo, app, league := setup()
				err := app.TransferOwnership(ctx, tt.executor, tt.league(league), tt.newOwner)
				assert.ErrorIs(t, err, tt.wantErr)
				assertSingleOwner(t, repo, league.ID)
				assert.Equal(t, owner, repo.state.leagues[league.ID].OwnerID)
				assert.Empty(t, repo.state.events)
			})
		}
	})

	t.Run("broken owner row is reported and left alone", func(t *testing.T) {
		repo, app, league := setup()
		key := memberKey{league.ID, owner}
		m := repo.state.members[key]
		m.Role = models.LeagueRoleMember
		repo.state.members[key] = m

		err := app.TransferOwnership(ctx, owner, league.ID, admin)
		assert.ErrorIs(t, err, models.ErrInconsistentState)

		assert.Equal(t, 0, repo.ownerCount(league.ID))
		role, _ := repo.role(league.ID, admin)
		assert.Equal(t, models.LeagueRoleLeagueAdmin, role)
	})

	t.Run("league names someone else as owner", func(t *testing.T) {
		repo, app, league := setup()
		l := repo.state.leagues[league.ID]
		l.OwnerID = member
		repo.state.leagues[league.ID] = l
		logs := captureLogs(t)

		err := app.TransferOwnership(ctx, owner, league.ID, admin)
		assert.ErrorIs(t, err, models.ErrInconsistentState)
		assert.NotErrorIs(t, err, models.ErrRoleNotPermitted)

		role, _ := repo.role(league.ID, owner)
		assert.Equal(t, models.LeagueRoleOwner, role)
		role, _ = repo.role(league.ID, admin)
		assert.Equal(t, models.LeagueRoleLeagueAdmin, role)
		assert.Equal(t, member, repo.state.leagues[league.ID].OwnerID)
		assert.Empty(t, repo.state.events)
		assert.Contains(t, logs.String(), "league owner does not match OWNER membership")
	})

	t.Run("store failure leaves state untouched", func(t *testing.T) {
		repo, app, league := setup()
		repo.failOn["UpdateLeagueOwner"] = errors.New("connection reset")

		err := app.TransferOwnership(ctx, owner, league.ID, member)
		require.Error(t, err)

		role, _ := repo.role(league.ID, owner)
		assert.Equal(t, models.LeagueRoleOwner, role)
		role, _ = repo.role(league.ID, member)
		assert.Equal(t, models.LeagueRoleMember, role)
		assert.Equal(t, owner, repo.state.leagues[league.ID].OwnerID)
		assertSingleOwner(t, repo, league.ID)
		assert.Empty(t, repo.state.events)
	})
}

func TestGovernanceSequencesKeepSingleOwner(t *testing.T) {
	ctx := context.Background()
	seasonID := uuid.New()
	repo := newFakeRepo(seasonID)
	app := NewApp(repo, nil, DefaultConfig())

	users := make([]uuid.UUID, 6)
	for i := range users {
		users[i] = uuid.New()
	}
	league, err := app.CreateLeague(ctx, CreateLeagueRequest{OwnerID: users[0], Name: "chaos", SeasonID: seasonID})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(7, 11))
	pick := func() uuid.UUID { return users[rng.IntN(len(users))] }
	roles := []models.LeagueRole{models.LeagueRoleMember, models.LeagueRoleLeagueAdmin, models.LeagueRoleOwner}

	for step := 0; step < 500; step++ {
		var err error
		switch rng.IntN(5) {
		case 0:
			_, err = app.JoinByCode(ctx, pick(), league.InviteCode)
		case 1:
			_, err = app.ChangeRole(ctx, pick(), league.ID, pick(), roles[rng.IntN(len(roles))])
		case 2:
			err = app.RemoveMember(ctx, pick(), league.ID, pick())
		case 3:
			successor := pick()
			err = app.Leave(ctx, pick(), league.ID, &successor)
		case 4:
			err = app.TransferOwnership(ctx, pick(), league.ID, pick())
		}

		assert.NotErrorIs(t, err, models.ErrInconsistentState, "step %d", step)
		assert.NotErrorIs(t, err, errSingleOwnerIndex, "step %d", step)
		assertSingleOwner(t, repo, league.ID)
	}
}

func TestLeagueReads(t *testing.T) {
	ctx := context.Background()
	seasonID, otherSeason, owner, member := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	repo := newFakeRepo(seasonID, otherSeason)
	first := repo.seedLeague(seasonID, owner, map[uuid.UUID]models.LeagueRole{member: models.LeagueRoleMember})
	second := repo.seedLeague(otherSeason, owner, nil)
	app := NewApp(repo, nil, DefaultConfig())

	got, err := app.GetLeague(ctx, member, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	_, err = app.GetLeague(ctx, uuid.New(), first.ID)
	assert.ErrorIs(t, err, models.ErrNotMember)
	_, err = app.GetLeague(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)

	leagues, err := app.ListLeaguesForUser(ctx, owner, nil)
	require.NoError(t, err)
	require.Len(t, leagues, 2)
	assert.Equal(t, second.ID, leagues[0].ID, "newest first")

	leagues, err = app.ListLeaguesForUser(ctx, owner, &seasonID)
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	assert.Equal(t, first.ID, leagues[0].ID)

	members, err := app.ListMembers(ctx, member, first.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)

	_, err = app.ListMembers(ctx, uuid.New(), first.ID)
	assert.ErrorIs(t, err, models.ErrNotMember)
}

func TestRenameAndDeleteLeague(t *testing.T) {
	ctx := context.Background()
	seasonID, owner, admin := uuid.New(), uuid.New(), uuid.New()
	repo := newFakeRepo(seasonID)
	league := repo.seedLeague(seasonID, owner, map[uuid.UUID]models.LeagueRole{admin: models.LeagueRoleLeagueAdmin})
	other := repo.seedLeague(seasonID, owner, nil)
	app := NewApp(repo, nil, DefaultConfig())

	_, err := app.RenameLeague(ctx, admin, league.ID, "Renamed")
	assert.ErrorIs(t, err, models.ErrRoleNotPermitted)

	_, err = app.RenameLeague(ctx, owner, league.ID, other.Name)
	assert.ErrorIs(t, err, models.ErrDuplicateLeagueName)

	_, err = app.RenameLeague(ctx, owner, league.ID, "")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	renamed, err := app.RenameLeague(ctx, owner, league.ID, " Renamed ")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", renamed.Name)

	err = app.DeleteLeague(ctx, admin, league.ID)
	assert.ErrorIs(t, err, models.ErrRoleNotPermitted)

	require.NoError(t, app.DeleteLeague(ctx, owner, league.ID))
	assert.NotContains(t, repo.state.leagues, league.ID)
	_, ok := repo.role(league.ID, admin)
	assert.False(t, ok)
	assert.Equal(t, []string{outbox.EventLeagueDeleted}, repo.eventTypes())
}

// captureLogs redirects the global logger into a buffer for the test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}
