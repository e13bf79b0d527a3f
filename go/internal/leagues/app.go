package leagues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/outbox"
	"github.com/mcdev12/scorepool/go/internal/sqlutil"
	"github.com/rs/zerolog/log"
)

// errInviteCodeTaken marks an insert that lost the invite-code uniqueness race.
var errInviteCodeTaken = errors.New("invite code already in use")

const maxLeagueNameLength = 100

// LeaguesRepository defines what the app layer needs from the repository.
// Mutations are expected to run on the repository handed to WithTx.
type LeaguesRepository interface {
	WithTx(ctx context.Context, fn func(repo LeaguesRepository) error) error

	SeasonExists(ctx context.Context, seasonID uuid.UUID) (bool, error)
	CreateLeague(ctx context.Context, league NewLeague) (*models.League, error)
	GetLeague(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetLeagueForUpdate(ctx context.Context, id uuid.UUID) (*models.League, error)
	GetLeagueByInviteCode(ctx context.Context, code string) (*models.League, error)
	ListLeaguesForUser(ctx context.Context, userID uuid.UUID, seasonID *uuid.UUID) ([]models.League, error)
	RenameLeague(ctx context.Context, id uuid.UUID, name string) (*models.League, error)
	UpdateLeagueOwner(ctx context.Context, id, ownerID uuid.UUID) error
	DeleteLeague(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, leagueID, userID uuid.UUID, role models.LeagueRole) (*models.Membership, bool, error)
	GetMember(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error)
	GetMemberForUpdate(ctx context.Context, leagueID, userID uuid.UUID) (*models.Membership, error)
	ListMembers(ctx context.Context, leagueID uuid.UUID) ([]models.Membership, error)
	UpdateMemberRole(ctx context.Context, leagueID, userID uuid.UUID, role models.LeagueRole) (*models.Membership, error)
	RemoveMember(ctx context.Context, leagueID, userID uuid.UUID) (bool, error)

	AppendEvent(ctx context.Context, aggregateID uuid.UUID, eventType string, payload any, actor uuid.UUID) error
}

// App handles league governance: creation, joining, roles and ownership
type App struct {
	repo  LeaguesRepository
	codes CodeGenerator
	cfg   Config
}

// NewApp creates a new leagues App
func NewApp(repo LeaguesRepository, codes CodeGenerator, cfg Config) *App {
	if codes == nil {
		codes = RandomInviteCode
	}
	if cfg.InviteCodeAttempts < 1 {
		cfg.InviteCodeAttempts = DefaultConfig().InviteCodeAttempts
	}
	return &App{
		repo:  repo,
		codes: codes,
		cfg:   cfg,
	}
}

// CreateLeague creates a league and its owner membership in one transaction,
// retrying with a fresh invite code when the generated one is taken.
func (a *App) CreateLeague(ctx context.Context, req CreateLeagueRequest) (*models.League, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := a.validateCreateLeagueRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := a.repo.SeasonExists(ctx, req.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to check season: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("season %s: %w", req.SeasonID, models.ErrNotFound)
	}

	isCodeConflict := func(err error) bool { return errors.Is(err, errInviteCodeTaken) }

	league, err := sqlutil.RetryOnConflict(ctx, a.cfg.InviteCodeAttempts, isCodeConflict, models.ErrInviteCodeExhausted,
		func(ctx context.Context, attempt int) (*models.League, error) {
			code, err := a.codes()
			if err != nil {
				return nil, fmt.Errorf("failed to generate invite code: %w", err)
			}

			var created *models.League
			err = a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
				league, err := tx.CreateLeague(ctx, NewLeague{
					ID:         uuid.New(),
					Name:       req.Name,
					SeasonID:   req.SeasonID,
					InviteCode: code,
					OwnerID:    req.OwnerID,
				})
				if err != nil {
					return err
				}

				if _, _, err := tx.AddMember(ctx, league.ID, req.OwnerID, models.LeagueRoleOwner); err != nil {
					return fmt.Errorf("failed to add owner membership: %w", err)
				}

				err = tx.AppendEvent(ctx, league.ID, outbox.EventLeagueCreated, outbox.LeagueCreatedPayload{
					LeagueID: league.ID,
					SeasonID: league.SeasonID,
					OwnerID:  league.OwnerID,
					Name:     league.Name,
				}, req.OwnerID)
				if err != nil {
					return err
				}

				created = league
				return nil
			})
			if isCodeConflict(err) {
				log.Warn().Int("attempt", attempt).Msg("invite code collision, retrying")
			}
			return created, err
		})
	if err != nil {
		if errors.Is(err, models.ErrInviteCodeExhausted) {
			log.Error().Err(err).Str("owner_id", req.OwnerID.String()).Msg("invite code space exhausted")
		}
		return nil, fmt.Errorf("failed to create league: %w", err)
	}

	log.Info().
		Str("league_id", league.ID.String()).
		Str("owner_id", league.OwnerID.String()).
		Str("name", league.Name).
		Msg("created league")
	return league, nil
}

// JoinByCode adds the user as a MEMBER of the league the code resolves to.
func (a *App) JoinByCode(ctx context.Context, userID uuid.UUID, code string) (*JoinResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, models.ErrInvalidInvite
	}

	var result *JoinResult
	err := a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
		league, err := tx.GetLeagueByInviteCode(ctx, code)
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrInvalidInvite
		}
		if err != nil {
			return err
		}

		membership, created, err := tx.AddMember(ctx, league.ID, userID, models.LeagueRoleMember)
		if err != nil {
			return err
		}
		if !created {
			existing, err := tx.GetMember(ctx, league.ID, userID)
			if err != nil {
				return err
			}
			result = &JoinResult{League: league, Membership: existing, AlreadyMember: true}
			return nil
		}

		err = tx.AppendEvent(ctx, league.ID, outbox.EventMemberJoined, outbox.MembershipPayload{
			LeagueID: league.ID,
			UserID:   userID,
			Role:     string(membership.Role),
		}, userID)
		if err != nil {
			return err
		}

		result = &JoinResult{League: league, Membership: membership}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to join league: %w", err)
	}

	log.Info().
		Str("league_id", result.League.ID.String()).
		Str("user_id", userID.String()).
		Bool("already_member", result.AlreadyMember).
		Msg("join by invite code")
	return result, nil
}

// ChangeRole sets target's role to LEAGUE_ADMIN or MEMBER.
func (a *App) ChangeRole(ctx context.Context, executorID, leagueID, targetID uuid.UUID, newRole models.LeagueRole) (*models.Membership, error) {
	if !newRole.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", models.ErrInvalidArgument, newRole)
	}
	if newRole == models.LeagueRoleOwner {
		return nil, fmt.Errorf("cannot assign owner directly: %w", models.ErrOwnerRoleImmutable)
	}
	if targetID == executorID {
		return nil, fmt.Errorf("cannot change own role: %w", models.ErrSelfAction)
	}

	var updated *models.Membership
	err := a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
		executor, target, err := a.loadActorAndTarget(ctx, tx, leagueID, executorID, targetID)
		if err != nil {
			return err
		}
		if err := authorize(executor.Role, ActionChangeRole, target.Role); err != nil {
			return err
		}

		if target.Role == newRole {
			updated = target
			return nil
		}

		updated, err = tx.UpdateMemberRole(ctx, leagueID, targetID, newRole)
		if err != nil {
			return err
		}
		return tx.AppendEvent(ctx, leagueID, outbox.EventMemberRoleChanged, outbox.MembershipPayload{
			LeagueID: leagueID,
			UserID:   targetID,
			Role:     string(newRole),
		}, executorID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to change role: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("executor_id", executorID.String()).
		Str("target_id", targetID.String()).
		Str("role", string(updated.Role)).
		Msg("changed member role")
	return updated, nil
}

// RemoveMember deletes target's membership on behalf of an admin executor.
func (a *App) RemoveMember(ctx context.Context, executorID, leagueID, targetID uuid.UUID) error {
	if targetID == executorID {
		return fmt.Errorf("use leave to exit a league: %w", models.ErrSelfAction)
	}

	err := a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
		executor, target, err := a.loadActorAndTarget(ctx, tx, leagueID, executorID, targetID)
		if err != nil {
			return err
		}
		if err := authorize(executor.Role, ActionRemoveMember, target.Role); err != nil {
			return err
		}

		if _, err := tx.RemoveMember(ctx, leagueID, targetID); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, leagueID, outbox.EventMemberRemoved, outbox.MembershipPayload{
			LeagueID: leagueID,
			UserID:   targetID,
		}, executorID)
	})
	if err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("executor_id", executorID.String()).
		Str("target_id", targetID.String()).
		Msg("removed member")
	return nil
}

// Leave removes the user from the league. An owner must name a member to
// hand the league to; the handoff and the exit commit together.
func (a *App) Leave(ctx context.Context, userID, leagueID uuid.UUID, newOwnerID *uuid.UUID) error {
	err := a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
		league, err := tx.GetLeagueForUpdate(ctx, leagueID)
		if err != nil {
			return err
		}

		membership, err := tx.GetMemberForUpdate(ctx, leagueID, userID)
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotMember
		}
		if err != nil {
			return err
		}
		if err := checkOwnerBookkeeping(league, userID, membership); err != nil {
			return err
		}

		if membership.Role == models.LeagueRoleOwner {
			if newOwnerID == nil {
				return models.ErrOwnerMustTransfer
			}
			if *newOwnerID == userID {
				return fmt.Errorf("new owner must be someone else: %w", models.ErrSelfAction)
			}
			if err := a.transfer(ctx, tx, league, userID, *newOwnerID); err != nil {
				return err
			}
		}

		if _, err := tx.RemoveMember(ctx, leagueID, userID); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, leagueID, outbox.EventMemberLeft, outbox.MembershipPayload{
			LeagueID: leagueID,
			UserID:   userID,
		}, userID)
	})
	if err != nil {
		return fmt.Errorf("failed to leave league: %w", err)
	}

	log.Info().
		Str("league_id", leagueID.String()).
		Str("user_id", userID.String()).
		Msg("member left league")
	return nil
}

// TransferOwnership hands the league from its owner to an existing member.
func (a *App) TransferOwnership(ctx context.Context, executorID, leagueID, newOwnerID uuid.UUID) error {
	if newOwnerID == executorID {
		return fmt.Errorf("new owner must be someone else: %w", models.ErrSelfAction)
	}

	err := a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
		league, err := tx.GetLeagueForUpdate(ctx, leagueID)
		if err != nil {
			return err
		}
		return a.transfer(ctx, tx, league, executorID, newOwnerID)
	})
	if err != nil {
		return fmt.Errorf("failed to transfer ownership: %w", err)
	}
	return nil
}

// transfer demotes the current owner before promoting the new one so that at
// no point two OWNER rows exist. It must run inside tx.
func (a *App) transfer(ctx context.Context, tx LeaguesRepository, league *models.League, executorID, newOwnerID uuid.UUID) error {
	current, err := tx.GetMemberForUpdate(ctx, league.ID, executorID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	if err := checkOwnerBookkeeping(league, executorID, current); err != nil {
		return err
	}
	if league.OwnerID != executorID {
		return fmt.Errorf("only the owner can transfer the league: %w", models.ErrRoleNotPermitted)
	}

	if _, err := tx.GetMemberForUpdate(ctx, league.ID, newOwnerID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotAMember
		}
		return err
	}

	if _, err := tx.UpdateMemberRole(ctx, league.ID, executorID, models.LeagueRoleMember); err != nil {
		return fmt.Errorf("failed to demote owner: %w", err)
	}
	if _, err := tx.UpdateMemberRole(ctx, league.ID, newOwnerID, models.LeagueRoleOwner); err != nil {
		return fmt.Errorf("failed to promote new owner: %w", err)
	}
	if err := tx.UpdateLeagueOwner(ctx, league.ID, newOwnerID); err != nil {
		return fmt.Errorf("failed to update league owner: %w", err)
	}

	err = tx.AppendEvent(ctx, league.ID, outbox.EventOwnershipTransferred, outbox.OwnershipTransferredPayload{
		LeagueID:        league.ID,
		PreviousOwnerID: executorID,
		NewOwnerID:      newOwnerID,
	}, executorID)
	if err != nil {
		return err
	}

	log.Info().
		Str("league_id", league.ID.String()).
		Str("previous_owner_id", executorID.String()).
		Str("new_owner_id", newOwnerID.String()).
		Msg("transferred league ownership")
	return nil
}

// checkOwnerBookkeeping fails with ErrInconsistentState when the league's
// owner column and the user's OWNER membership disagree. m may be nil.
func checkOwnerBookkeeping(league *models.League, userID uuid.UUID, m *models.Membership) error {
	holdsOwnerRow := m != nil && m.Role == models.LeagueRoleOwner
	if holdsOwnerRow == (league.OwnerID == userID) {
		return nil
	}
	log.Error().
		Str("league_id", league.ID.String()).
		Str("league_owner_id", league.OwnerID.String()).
		Str("user_id", userID.String()).
		Bool("holds_owner_row", holdsOwnerRow).
		Msg("league owner does not match OWNER membership")
	return fmt.Errorf("league %s user %s: %w", league.ID, userID, models.ErrInconsistentState)
}

// GetLeague returns a league the caller belongs to
func (a *App) GetLeague(ctx context.Context, callerID, leagueID uuid.UUID) (*models.League, error) {
	league, err := a.repo.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	if err := a.requireMember(ctx, a.repo, leagueID, callerID); err != nil {
		return nil, err
	}
	return league, nil
}

// ListLeaguesForUser returns the user's leagues, newest first
func (a *App) ListLeaguesForUser(ctx context.Context, userID uuid.UUID, seasonID *uuid.UUID) ([]models.League, error) {
	leagues, err := a.repo.ListLeaguesForUser(ctx, userID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leagues: %w", err)
	}
	return leagues, nil
}

// ListMembers returns members ordered by role then name
func (a *App) ListMembers(ctx context.Context, callerID, leagueID uuid.UUID) ([]models.Membership, error) {
	if _, err := a.repo.GetLeague(ctx, leagueID); err != nil {
		return nil, fmt.Errorf("failed to get league: %w", err)
	}
	if err := a.requireMember(ctx, a.repo, leagueID, callerID); err != nil {
		return nil, err
	}

	members, err := a.repo.ListMembers(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// RenameLeague changes the league name. Owner only.
func (a *App) RenameLeague(ctx context.Context, executorID, leagueID uuid.UUID, name string) (*models.League, error) {
	name = strings.TrimSpace(name)
	if err := validateLeagueName(name); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var renamed *models.League
	err := a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
		league, err := tx.GetLeagueForUpdate(ctx, leagueID)
		if err != nil {
			return err
		}
		if league.OwnerID != executorID {
			return fmt.Errorf("only the owner can rename the league: %w", models.ErrRoleNotPermitted)
		}
		renamed, err = tx.RenameLeague(ctx, leagueID, name)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename league: %w", err)
	}

	log.Info().Str("league_id", leagueID.String()).Str("name", name).Msg("renamed league")
	return renamed, nil
}

// DeleteLeague removes the league with its memberships and predictions. Owner only.
func (a *App) DeleteLeague(ctx context.Context, executorID, leagueID uuid.UUID) error {
	err := a.repo.WithTx(ctx, func(tx LeaguesRepository) error {
		league, err := tx.GetLeagueForUpdate(ctx, leagueID)
		if err != nil {
			return err
		}
		if league.OwnerID != executorID {
			return fmt.Errorf("only the owner can delete the league: %w", models.ErrRoleNotPermitted)
		}
		if err := tx.DeleteLeague(ctx, leagueID); err != nil {
			return err
		}
		return tx.AppendEvent(ctx, leagueID, outbox.EventLeagueDeleted, outbox.LeagueDeletedPayload{LeagueID: leagueID}, executorID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete league: %w", err)
	}

	log.Info().Str("league_id", leagueID.String()).Msg("deleted league")
	return nil
}

// loadActorAndTarget resolves the league, the executor's membership and the
// target's locked membership.
func (a *App) loadActorAndTarget(ctx context.Context, tx LeaguesRepository, leagueID, executorID, targetID uuid.UUID) (*models.Membership, *models.Membership, error) {
	if _, err := tx.GetLeague(ctx, leagueID); err != nil {
		return nil, nil, err
	}

	executor, err := tx.GetMember(ctx, leagueID, executorID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil, models.ErrNotMember
	}
	if err != nil {
		return nil, nil, err
	}

	target, err := tx.GetMemberForUpdate(ctx, leagueID, targetID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil, fmt.Errorf("target membership: %w", models.ErrNotFound)
		}
		return nil, nil, err
	}
	return executor, target, nil
}

func (a *App) requireMember(ctx context.Context, repo LeaguesRepository, leagueID, userID uuid.UUID) error {
	_, err := repo.GetMember(ctx, leagueID, userID)
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrNotMember
	}
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	return nil
}

// validateCreateLeagueRequest validates create league request
func (a *App) validateCreateLeagueRequest(req CreateLeagueRequest) error {
	if req.OwnerID == uuid.Nil {
		return fmt.Errorf("%w: owner is required", models.ErrInvalidArgument)
	}
	if req.SeasonID == uuid.Nil {
		return fmt.Errorf("%w: season is required", models.ErrInvalidArgument)
	}
	return validateLeagueName(req.Name)
}

func validateLeagueName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", models.ErrInvalidArgument)
	}
	if len(name) > maxLeagueNameLength {
		return fmt.Errorf("%w: name longer than %d characters", models.ErrInvalidArgument, maxLeagueNameLength)
	}
	return nil
}
