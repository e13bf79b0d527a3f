package models

import "errors"

// Domain errors shared by the ledger, results, ranking and governance packages.
// Callers match them with errors.Is; every layer wraps them with context.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotMember           = errors.New("user is not a member of the league")
	ErrWrongSeason         = errors.New("match does not belong to the league season")
	ErrLocked              = errors.New("predictions are locked for this match")
	ErrMatchFinished       = errors.New("match already has a result")
	ErrInvalidInvite       = errors.New("invalid invite code")
	ErrInviteCodeExhausted = errors.New("could not allocate a unique invite code")
	ErrDuplicateLeagueName = errors.New("owner already has a league with this name in the season")
	ErrRoleNotPermitted    = errors.New("role does not permit this action")
	ErrOwnerRoleImmutable  = errors.New("owner role can only change through ownership transfer")
	ErrOwnerMustTransfer   = errors.New("owner must transfer ownership before leaving")
	ErrNotAMember          = errors.New("new owner must already be a member of the league")
	ErrSelfAction          = errors.New("action cannot target the executing user")

	// ErrInconsistentState means the single-owner bookkeeping was already broken
	// before the call. It is never repaired automatically.
	ErrInconsistentState = errors.New("inconsistent league ownership state")
)
