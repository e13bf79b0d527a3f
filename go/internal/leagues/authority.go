package leagues

import (
	"fmt"

	"github.com/mcdev12/scorepool/go/internal/models"
)

// Action is an administrative action one member performs on another.
type Action string

const (
	ActionChangeRole   Action = "change_role"
	ActionRemoveMember Action = "remove_member"
)

// Decision is the outcome of an authority check.
type Decision int

const (
	Deny Decision = iota
	Allow
	OwnerImmutable
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case OwnerImmutable:
		return "owner_immutable"
	default:
		return "deny"
	}
}

type authorityKey struct {
	executor models.LeagueRole
	action   Action
	target   models.LeagueRole
}

// authority lists every permitted (executor, action, target) triple. Missing
// entries deny. The owner is only reachable through ownership transfer.
var authority = map[authorityKey]Decision{
	{models.LeagueRoleOwner, ActionChangeRole, models.LeagueRoleOwner}:       OwnerImmutable,
	{models.LeagueRoleOwner, ActionChangeRole, models.LeagueRoleLeagueAdmin}: Allow,
	{models.LeagueRoleOwner, ActionChangeRole, models.LeagueRoleMember}:      Allow,

	{models.LeagueRoleLeagueAdmin, ActionChangeRole, models.LeagueRoleOwner}:       OwnerImmutable,
	{models.LeagueRoleLeagueAdmin, ActionChangeRole, models.LeagueRoleLeagueAdmin}: Deny,
	{models.LeagueRoleLeagueAdmin, ActionChangeRole, models.LeagueRoleMember}:      Allow,

	{models.LeagueRoleOwner, ActionRemoveMember, models.LeagueRoleOwner}:       OwnerImmutable,
	{models.LeagueRoleOwner, ActionRemoveMember, models.LeagueRoleLeagueAdmin}: Allow,
	{models.LeagueRoleOwner, ActionRemoveMember, models.LeagueRoleMember}:      Allow,

	{models.LeagueRoleLeagueAdmin, ActionRemoveMember, models.LeagueRoleOwner}:       OwnerImmutable,
	{models.LeagueRoleLeagueAdmin, ActionRemoveMember, models.LeagueRoleLeagueAdmin}: Deny,
	{models.LeagueRoleLeagueAdmin, ActionRemoveMember, models.LeagueRoleMember}:      Allow,
}

// Decide evaluates the authority table.
func Decide(executor models.LeagueRole, action Action, target models.LeagueRole) Decision {
	if d, ok := authority[authorityKey{executor, action, target}]; ok {
		return d
	}
	return Deny
}

// authorize turns a decision into the matching domain error.
func authorize(executor models.LeagueRole, action Action, target models.LeagueRole) error {
	switch Decide(executor, action, target) {
	case Allow:
		return nil
	case OwnerImmutable:
		return fmt.Errorf("%s on %s: %w", action, target, models.ErrOwnerRoleImmutable)
	default:
		return fmt.Errorf("%s may not %s a %s: %w", executor, action, target, models.ErrRoleNotPermitted)
	}
}
