package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/testutil"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/usecase"
)

func TestTeamService_CreateTeam(t *testing.T) {
	env := newTestEnv(t)
	f := newAccessFixture(t, env)

	detail, err := env.teams.CreateTeam(env.ctx, f.leader, f.project.ID, usecase.CreateTeamInput{
		Name: "Propulsion",
		Members: []usecase.TeamMemberInput{
			{UserID: f.member.ID, Role: entity.TeamRoleLeader},
			{UserID: f.teamLead.ID, Role: entity.TeamRoleMember},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, detail.Team.ID)
	assert.Equal(t, f.project.ID, detail.Team.ProjectID)
	assert.Len(t, detail.Members, 2)

	led, err := env.access.AuthorizeTaskCreation(env.ctx, f.member, f.project.ID)
	require.NoError(t, err, "leading the new team grants task creation")
	assert.Equal(t, entity.RoleProjectMember, led)
}

func TestTeamService_CreateTeamRejections(t *testing.T) {
	env := newTestEnv(t)
	f := newAccessFixture(t, env)
	before := testutil.CountRows(t, env.db, &model.TeamModel{})

	_, err := env.teams.CreateTeam(env.ctx, f.member, f.project.ID, usecase.CreateTeamInput{Name: "Rogue"})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = env.teams.CreateTeam(env.ctx, f.leader, f.project.ID, usecase.CreateTeamInput{Name: ""})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = env.teams.CreateTeam(env.ctx, f.leader, f.project.ID, usecase.CreateTeamInput{
		Name:    "Bad role",
		Members: []usecase.TeamMemberInput{{UserID: f.member.ID, Role: "captain"}},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = env.teams.CreateTeam(env.ctx, f.leader, f.project.ID, usecase.CreateTeamInput{
		Name:    "With outsider",
		Members: []usecase.TeamMemberInput{{UserID: f.outsider.ID, Role: entity.TeamRoleMember}},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "got %v", err)

	assert.Equal(t, before, testutil.CountRows(t, env.db, &model.TeamModel{}), "failed creations leave no team behind")
}

func TestTeamService_AddTeamMember(t *testing.T) {
	env := newTestEnv(t)
	f := newAccessFixture(t, env)

	membership, err := env.teams.AddTeamMember(env.ctx, f.admin, f.project.ID, f.team.ID, usecase.TeamMemberInput{
		UserID: f.leader.ID,
		Role:   entity.TeamRoleMember,
	})
	require.NoError(t, err)
	assert.Equal(t, f.team.ID, membership.TeamID)

	_, err = env.teams.AddTeamMember(env.ctx, f.admin, f.project.ID, f.team.ID+50, usecase.TeamMemberInput{
		UserID: f.leader.ID,
		Role:   entity.TeamRoleMember,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	_, err = env.teams.AddTeamMember(env.ctx, f.admin, f.project.ID, f.team.ID, usecase.TeamMemberInput{
		UserID: f.outsider.ID,
		Role:   entity.TeamRoleMember,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = env.teams.AddTeamMember(env.ctx, f.teamLead, f.project.ID, f.team.ID, usecase.TeamMemberInput{
		UserID: f.leader.ID,
		Role:   entity.TeamRoleMember,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "team leaders do not manage membership")
}
