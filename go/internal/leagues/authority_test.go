package leagues

import (
	"testing"

	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	owner, admin, member := models.LeagueRoleOwner, models.LeagueRoleLeagueAdmin, models.LeagueRoleMember

	tests := []struct {
		executor models.LeagueRole
		action   Action
		target   models.LeagueRole
		want     Decision
	}{
		{owner, ActionChangeRole, owner, OwnerImmutable},
		{owner, ActionChangeRole, admin, Allow},
		{owner, ActionChangeRole, member, Allow},
		{admin, ActionChangeRole, owner, OwnerImmutable},
		{admin, ActionChangeRole, admin, Deny},
		{admin, ActionChangeRole, member, Allow},
		{member, ActionChangeRole, owner, Deny},
		{member, ActionChangeRole, admin, Deny},
		{member, ActionChangeRole, member, Deny},

		{owner, ActionRemoveMember, owner, OwnerImmutable},
		{owner, ActionRemoveMember, admin, Allow},
		{owner, ActionRemoveMember, member, Allow},
		{admin, ActionRemoveMember, owner, OwnerImmutable},
		{admin, ActionRemoveMember, admin, Deny},
		{admin, ActionRemoveMember, member, Allow},
		{member, ActionRemoveMember, owner, Deny},
		{member, ActionRemoveMember, admin, Deny},
		{member, ActionRemoveMember, member, Deny},

		{models.LeagueRole("GUEST"), ActionRemoveMember, member, Deny},
		{owner, Action("rename"), member, Deny},
	}

	for _, tt := range tests {
		t.Run(string(tt.executor)+"/"+string(tt.action)+"/"+string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.executor, tt.action, tt.target), "got %s", Decide(tt.executor, tt.action, tt.target))
		})
	}
}

func TestAuthorizeErrors(t *testing.T) {
	assert.NoError(t, authorize(models.LeagueRoleOwner, ActionRemoveMember, models.LeagueRoleMember))
	assert.ErrorIs(t, authorize(models.LeagueRoleLeagueAdmin, ActionRemoveMember, models.LeagueRoleOwner), models.ErrOwnerRoleImmutable)
	assert.ErrorIs(t, authorize(models.LeagueRoleMember, ActionChangeRole, models.LeagueRoleMember), models.ErrRoleNotPermitted)
}
