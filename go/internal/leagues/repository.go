package leagues

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/leagues/db"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/outbox"
	outboxdb "github.com/mcdev12/scorepool/go/internal/outbox/db"
	"github.com/mcdev12/scorepool/go/internal/sqlutil"
)

const (
	constraintInviteCode = "leagues_invite_code_key"
	constraintOwnerName  = "leagues_owner_season_name_key"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateLeague(ctx context.Context, arg db.CreateLeagueParams) (db.League, error)
	DeleteLeague(ctx context.Context, id uuid.UUID) error
	DeleteMember(ctx context.Context, arg db.DeleteMemberParams) (int64, error)
	GetLeague(ctx context.Context, id uuid.UUID) (db.League, error)
	GetLeagueByInviteCode(ctx context.Context, inviteCode string) (db.League, error)
	GetLeagueForUpdate(ctx context.Context, id uuid.UUID) (db.League, error)
	GetMember(ctx context.Context, arg db.GetMemberParams) (db.LeagueMember, error)
	GetMemberForUpdate(ctx context.Context, arg db.GetMemberForUpdateParams) (db.LeagueMember, error)
	InsertMember(ctx context.Context, arg db.InsertMemberParams) (db.LeagueMember, error)
	ListLeaguesForUser(ctx context.Context, arg db.ListLeaguesForUserParams) ([]db.League, error)
	ListMembers(ctx context.Context, leagueID uuid.UUID) ([]db.ListMembersRow, error)
	RenameLeague(ctx context.Context, arg db.RenameLeagueParams) (db.League, error)
	SeasonExists(ctx context.Context, id uuid.UUID) (bool, error)
	UpdateLeagueOwner(ctx context.Context, arg db.UpdateLeagueOwnerParams) error
	UpdateMemberRole(ctx context.Context, arg db.UpdateMemberRoleParams) (db.LeagueMember, error)
}

// Repository implements league data access operations
type Repository struct {
	db      *sql.DB
	queries Querier
	events  *outbox.Writer
	inTx    bool
}

// NewRepository creates a new leagues repository
func NewRepository(queries Querier, database *sql.DB) *Repository {
	return &Repository{
		db:      database,
		queries: queries,
		events:  outbox.NewWriter(outboxdb.New(database)),
	}
}

// WithTx runs fn with a repository bound to one transaction. Called on a
// repository that is already transactional it reuses that transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(repo LeaguesRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return sqlutil.Run(ctx, r.db,
		func(tx *sql.Tx) *Repository {
			return &Repository{
				db:      r.db,
				queries: db.New(tx),
				events:  outbox.NewWriter(outboxdb.New(tx)),
				inTx:    true,
			}
		},
		func(txRepo *Repository) error { return fn(txRepo) },
	)
}

func (r *Repository) SeasonExists(ctx context.Context, seasonID uuid.UUID) (bool, error) {
	return r.queries.SeasonExists(ctx, seasonID)
}

// CreateLeague inserts the league row. Invite-code collisions report
// errInviteCodeTaken so the caller can retry with a new code.
func (r *Repository) CreateLeague(ctx context.Context, league NewLeague) (*models.League, error) {
	row, err := r.queries.CreateLeague(ctx, db.CreateLeagueParams{
		ID:         league.ID,
		Name:       league.Name,
		SeasonID:   league.SeasonID,
		InviteCode: league.InviteCode,
		OwnerID:    league.OwnerID,
	})
	if err != nil {
		switch {
		case sqlutil.IsUniqueViolation(err, constraintInviteCode):
			return nil, errInviteCodeTaken
		case sqlutil.IsUniqueViolation(err, constraintOwnerName):
			return nil, models.ErrDuplicateLeagueName
		}
		return nil, fmt.Errorf("failed to create league: %w", err)
	}
	return dbLeagueToModel(row), nil
}

// GetLeague retrieves a league by ID
func (r *Repository) GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error) {
	row, err := r.queries.GetLeague(ctx, id)
	if err != nil {
		return nil, wrapLeagueLookup(err, id)
	}
	return dbLeagueToModel(row), nil
}

// GetLeagueForUpdate retrieves a league and locks its row until the transaction ends
func (r *Repository) GetLeagueForUpdate(ctx context.Context, id uuid.UUID) (*models.League, error) {
	row, err := r.queries.GetLeagueForUpdate(ctx, id)
	if err != nil {
		return nil, wrapLeagueLookup(err, id)
	}
	return dbLeagueToModel(row), nil
}

func (r *Repository) GetLeagueByInviteCode(ctx context.Context, code string) (*models.League, error) {
	row, err := r.queries.GetLeagueByInviteCode(ctx, code)
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get league by invite code: %w", err)
	}
	return dbLeagueToModel(row), nil
}

func (r *Repository) ListLeaguesForUser(ctx context.Context, userID uuid.UUID, seasonID *uuid.UUID) ([]models.League, error) {
	rows, err := r.queries.ListLeaguesForUser(ctx, db.ListLeaguesForUserParams{
		UserID:   userID,
		SeasonID: sqlutil.ToNullUUID(seasonID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues for user: %w", err)
	}

	leagues := make([]models.League, len(rows))
	for i, row := range rows {
		leagues[i] = *dbLeagueToModel(row)
	}
	return leagues, nil
}

func (r *Repository) RenameLeague(ctx context.Context, id uuid.UUID, name string) (*models.League, error) {
	row, err := r.queries.RenameLeague(ctx, db.RenameLeagueParams{ID: id, Name: name})
	if err != nil {
		if sqlutil.IsUniqueViolation(err, constraintOwnerName) {
			return nil, models.ErrDuplicateLeagueName
		}
		return nil, wrapLeagueLookup(err, id)
	}
	return dbLeagueToModel(row), nil
}

func (r *Repository) UpdateLeagueOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := r.queries.UpdateLeagueOwner(ctx, db.UpdateLeagueOwnerParams{ID: id, OwnerID: ownerID}); err != nil {
		return fmt.Errorf("failed to update league owner: %w", err)
	}
	return nil
}

func (r *Repository) DeleteLeague(ctx context.Context, id uuid.UUID) error {
	if err := r.queries.DeleteLeague(ctx, id); err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}
	return nil
}

// AddMember inserts a membership. The bool is false when the user already
// belonged to the league, in which case no row is returned.
func (r *Repository) AddMember(ctx context.Context, leagueID, userID uuid.UUID, role models.LeagueRole) (*models.Membership, bool, error) {
	row, err := r.queries.InsertMember(ctx, db.InsertMemberParams{
		LeagueID: leagueID,
		UserID:   userID,
		Role:     db.LeagueRole(role),
	})
	if err != nil {
		if sqlutil.IsNoRows(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to insert membership: %w", err)
	}
	return dbMemberToModel(row), true, nil
}

func (r *Repository) GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	row, err := r.queries.GetMember(ctx, db.GetMemberParams{LeagueID: leagueID, UserID: userID})
	if err != nil {
		return nil, wrapMemberLookup(err, leagueID, userID)
	}
	return dbMemberToModel(row), nil
}

func (r *Repository) GetMemberForUpdate(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error) {
	row, err := r.queries.GetMemberForUpdate(ctx, db.GetMemberForUpdateParams{LeagueID: leagueID, UserID: userID})
	if err != nil {
		return nil, wrapMemberLookup(err, leagueID, userID)
	}
	return dbMemberToModel(row), nil
}

func (r *Repository) ListMembers(ctx context.Context, leagueID uuid.UUID) ([]models.Membership, error) {
	rows, err := r.queries.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	members := make([]models.Membership, len(rows))
	for i, row := range rows {
		members[i] = models.Membership{
			ID:          row.ID,
			LeagueID:    row.LeagueID,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
			Role:        models.LeagueRole(row.Role),
			JoinedAt:    row.JoinedAt,
		}
	}
	return members, nil
}

func (r *Repository) UpdateMemberRole(ctx context.Context, leagueID, userID uuid.UUID, role models.LeagueRole) (*models.Membership, error) {
	row, err := r.queries.UpdateMemberRole(ctx, db.UpdateMemberRoleParams{
		LeagueID: leagueID,
		UserID:   userID,
		Role:     db.LeagueRole(role),
	})
	if err != nil {
		return nil, wrapMemberLookup(err, leagueID, userID)
	}
	return dbMemberToModel(row), nil
}

// RemoveMember deletes a membership and reports whether one existed
func (r *Repository) RemoveMember(ctx context.Context, leagueID, userID uuid.UUID) (bool, error) {
	n, err := r.queries.DeleteMember(ctx, db.DeleteMemberParams{LeagueID: leagueID, UserID: userID})
	if err != nil {
		return false, fmt.Errorf("failed to delete membership: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) AppendEvent(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any, actor uuid.UUID) error {
	return r.events.Append(ctx, aggregateID, eventType, payload, actor)
}

func wrapLeagueLookup(err error, id uuid.UUID) error {
	if sqlutil.IsNoRows(err) {
		return fmt.Errorf("league %s: %w", id, models.ErrNotFound)
	}
	return fmt.Errorf("failed to get league %s: %w", id, err)
}

func wrapMemberLookup(err error, leagueID, userID uuid.UUID) error {
	if sqlutil.IsNoRows(err) {
		return fmt.Errorf("membership of %s in %s: %w", userID, leagueID, models.ErrNotFound)
	}
	return fmt.Errorf("failed to get membership: %w", err)
}

// dbLeagueToModel converts a database league to domain model
func dbLeagueToModel(row db.League) *models.League {
	return &models.League{
		ID:         row.ID,
		Name:       row.Name,
		SeasonID:   row.SeasonID,
		InviteCode: row.InviteCode,
		OwnerID:    row.OwnerID,
		CreatedAt:  row.CreatedAt,
	}
}

func dbMemberToModel(row db.LeagueMember) *models.Membership {
	return &models.Membership{
		ID:       row.ID,
		LeagueID: row.LeagueID,
		UserID:   row.UserID,
		Role:     models.LeagueRole(row.Role),
		JoinedAt: row.JoinedAt,
	}
}
