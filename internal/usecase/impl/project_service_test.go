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

func TestProjectService_LeaderUpdatesMemberCannot(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	u1 := testutil.CreateTestUser(t, env.db)
	u2 := testutil.CreateTestUser(t, env.db)

	created, err := env.projects.CreateProject(env.ctx, admin, usecase.CreateProjectInput{
		Name: "P",
		Members: []usecase.ProjectMemberInput{
			{UserID: u1.ID, Role: entity.ProjectRoleLeader},
			{UserID: u2.ID, Role: entity.ProjectRoleMember},
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Members, 2)
	assert.Equal(t, admin.ID, created.Project.CreatedBy)

	_, err = env.projects.UpdateProject(env.ctx, u2, created.Project.ID, usecase.UpdateProjectInput{Name: ptr("Renamed")})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	updated, err := env.projects.UpdateProject(env.ctx, u1, created.Project.ID, usecase.UpdateProjectInput{Name: ptr("Renamed")})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, created.Project.Description, updated.Description)

	detail, err := env.projects.GetProject(env.ctx, u2, created.Project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", detail.Project.Name)
	assert.Equal(t, entity.RoleProjectMember, detail.Role)
}

func TestProjectService_CreateProject(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	staff := testutil.CreateTestUser(t, env.db)

	t.Run("staff cannot create", func(t *testing.T) {
		_, err := env.projects.CreateProject(env.ctx, staff, usecase.CreateProjectInput{Name: "Nope"})
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("name is required", func(t *testing.T) {
		_, err := env.projects.CreateProject(env.ctx, admin, usecase.CreateProjectInput{Name: "  "})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("invalid member role", func(t *testing.T) {
		_, err := env.projects.CreateProject(env.ctx, admin, usecase.CreateProjectInput{
			Name:    "Bad role",
			Members: []usecase.ProjectMemberInput{{UserID: staff.ID, Role: "owner"}},
		})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	})

	t.Run("unknown member rolls back", func(t *testing.T) {
		_, err := env.projects.CreateProject(env.ctx, admin, usecase.CreateProjectInput{
			Name: "Rollback",
			Members: []usecase.ProjectMemberInput{
				{UserID: staff.ID, Role: entity.ProjectRoleLeader},
				{UserID: staff.ID + 500, Role: entity.ProjectRoleMember},
			},
		})
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed), "got %v", err)
	})

	assert.Zero(t, testutil.CountRows(t, env.db, &model.ProjectModel{}))
	assert.Zero(t, testutil.CountRows(t, env.db, &model.ProjectMembershipModel{}))
}

func TestProjectService_ListProjects(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	staff := testutil.CreateTestUser(t, env.db)

	joined := testutil.CreateTestProject(t, env.db, "Joined", admin.ID)
	testutil.CreateTestProject(t, env.db, "Hidden", admin.ID)
	testutil.AddProjectMember(t, env.db, joined.ID, staff.ID, entity.ProjectRoleMember)

	all, err := env.projects.ListProjects(env.ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := env.projects.ListProjects(env.ctx, staff)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, joined.ID, mine[0].ID)

	_, err = env.projects.ListProjects(env.ctx, nil)
	assert.Same(t, domainerrors.ErrUnauthenticated, err)
}

func TestProjectService_GetProjectAsymmetry(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	staff := testutil.CreateTestUser(t, env.db)
	project := testutil.CreateTestProject(t, env.db, "Private", admin.ID)

	_, err := env.projects.GetProject(env.ctx, staff, project.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = env.projects.GetProject(env.ctx, staff, project.ID+1)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "non-members cannot probe for existence")

	_, err = env.projects.GetProject(env.ctx, admin, project.ID+1)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestProjectService_UpdateProjectValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	project := testutil.CreateTestProject(t, env.db, "Original", admin.ID)

	_, err := env.projects.UpdateProject(env.ctx, admin, project.ID, usecase.UpdateProjectInput{Name: ptr("")})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	updated, err := env.projects.UpdateProject(env.ctx, admin, project.ID, usecase.UpdateProjectInput{Description: ptr("new text")})
	require.NoError(t, err)
	assert.Equal(t, "Original", updated.Name)
	assert.Equal(t, "new text", updated.Description)
}

func TestProjectService_DeleteProject(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	leader := testutil.CreateTestUser(t, env.db)

	project := testutil.CreateTestProject(t, env.db, "Doomed", admin.ID)
	testutil.AddProjectMember(t, env.db, project.ID, leader.ID, entity.ProjectRoleLeader)
	team := testutil.CreateTestTeam(t, env.db, project.ID, "Crew")
	testutil.AddTeamMember(t, env.db, team.ID, leader.ID, entity.TeamRoleLeader)
	testutil.CreateTestTask(t, env.db, project.ID, leader.ID, "Work", testutil.WithTeam(team.ID))

	err := env.projects.DeleteProject(env.ctx, leader, project.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden), "only admins delete projects")

	require.NoError(t, env.projects.DeleteProject(env.ctx, admin, project.ID))

	for _, m := range []any{&model.ProjectModel{}, &model.ProjectMembershipModel{}, &model.TeamModel{}, &model.TeamMembershipModel{}, &model.TaskModel{}} {
		assert.Zero(t, testutil.CountRows(t, env.db, m))
	}

	err = env.projects.DeleteProject(env.ctx, admin, project.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
}

func TestProjectService_Members(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.CreateTestUser(t, env.db, testutil.WithRole(entity.RoleAdmin))
	leader := testutil.CreateTestUser(t, env.db)
	member := testutil.CreateTestUser(t, env.db)
	newcomer := testutil.CreateTestUser(t, env.db)

	project := testutil.CreateTestProject(t, env.db, "Crewed", admin.ID)
	testutil.AddProjectMember(t, env.db, project.ID, leader.ID, entity.ProjectRoleLeader)
	testutil.AddProjectMember(t, env.db, project.ID, member.ID, entity.ProjectRoleMember)
	team := testutil.CreateTestTeam(t, env.db, project.ID, "Crew")
	testutil.AddTeamMember(t, env.db, team.ID, member.ID, entity.TeamRoleLeader)

	t.Run("member cannot add", func(t *testing.T) {
		_, err := env.projects.AddMember(env.ctx, member, project.ID, usecase.ProjectMemberInput{UserID: newcomer.ID, Role: entity.ProjectRoleMember})
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})

	t.Run("leader adds then promotes", func(t *testing.T) {
		added, err := env.projects.AddMember(env.ctx, leader, project.ID, usecase.ProjectMemberInput{UserID: newcomer.ID, Role: entity.ProjectRoleMember})
		require.NoError(t, err)
		assert.Equal(t, entity.ProjectRoleMember, added.Role)

		_, err = env.projects.AddMember(env.ctx, leader, project.ID, usecase.ProjectMemberInput{UserID: newcomer.ID, Role: entity.ProjectRoleLeader})
		require.NoError(t, err)

		role, err := env.access.ResolveProjectRole(env.ctx, newcomer, project.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleProjectLeader, role)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := env.projects.AddMember(env.ctx, leader, project.ID, usecase.ProjectMemberInput{UserID: newcomer.ID + 100, Role: entity.ProjectRoleMember})
		assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	})

	t.Run("remove drops team memberships", func(t *testing.T) {
		require.NoError(t, env.projects.RemoveMember(env.ctx, leader, project.ID, member.ID))

		_, err := env.access.ResolveProjectRole(env.ctx, member, project.ID)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
		assert.Zero(t, testutil.CountRows(t, env.db, &model.TeamMembershipModel{}))

		err = env.projects.RemoveMember(env.ctx, leader, project.ID, member.ID)
		assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	})
}
