package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	domainerrors "github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/repository"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/errors"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/testutil"
)

func TestUserRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	repo := NewUserRepository(db)

	user := &entity.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: "hash",
		Role:         entity.RoleStaff,
		Status:       entity.StatusPending,
		Designation:  "Engineer",
		Department:   "R&D",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	_, err = repo.FindByEmail(ctx, "ADA@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound, "email match is exact")

	dup := *user
	dup.ID = 0
	dup.FirstName = "Other"
	err = repo.Create(ctx, &dup)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))

	require.NoError(t, repo.UpdateStatus(ctx, user.ID, entity.StatusSuspended))
	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSuspended, byID.Status)

	assert.ErrorIs(t, repo.UpdateStatus(ctx, 9999, entity.StatusActive), repository.ErrUserNotFound)
	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestRefreshSessionRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	repo := NewRefreshSessionRepository(db)
	user := testutil.CreateTestUser(t, db)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessions := []*entity.RefreshSession{
		{UserID: user.ID, TokenHash: "expired", ExpiresAt: now.Add(-time.Minute)},
		{UserID: user.ID, TokenHash: "boundary", ExpiresAt: now},
		{UserID: user.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)},
	}
	for _, s := range sessions {
		require.NoError(t, repo.Create(ctx, s))
		assert.NotZero(t, s.ID)
	}

	found, err := repo.FindByTokenHash(ctx, "expired")
	require.NoError(t, err, "lookup does not filter on expiry")
	assert.Equal(t, user.ID, found.UserID)
	assert.True(t, found.ExpiresAt.Equal(now.Add(-time.Minute)))

	_, err = repo.FindByTokenHash(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)

	removed, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	_, err = repo.FindByTokenHash(ctx, "boundary")
	assert.ErrorIs(t, err, repository.ErrRefreshSessionNotFound)

	removed, err = repo.DeleteByTokenHash(ctx, "live")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = repo.DeleteByTokenHash(ctx, "live")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestProjectAndMembershipRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	projects := NewProjectRepository(db)
	memberships := NewMembershipRepository(db)

	admin := testutil.CreateTestUser(t, db, testutil.WithRole(entity.RoleAdmin))
	alice := testutil.CreateTestUser(t, db)

	first := &entity.Project{Name: "Apollo", CreatedBy: admin.ID}
	second := &entity.Project{Name: "Gemini", CreatedBy: admin.ID}
	require.NoError(t, projects.Create(ctx, first))
	require.NoError(t, projects.Create(ctx, second))

	all, err := projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	require.NoError(t, memberships.Save(ctx, &entity.ProjectMembership{
		ProjectID: first.ID, UserID: alice.ID, Role: entity.ProjectRoleMember,
	}))
	require.NoError(t, memberships.Save(ctx, &entity.ProjectMembership{
		ProjectID: first.ID, UserID: alice.ID, Role: entity.ProjectRoleLeader,
	}))

	m, err := memberships.Find(ctx, first.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectRoleLeader, m.Role, "saving again changes the role")

	mine, err := projects.ListByMember(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	err = memberships.Save(ctx, &entity.ProjectMembership{ProjectID: first.ID, UserID: 9999, Role: entity.ProjectRoleMember})
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	first.Name = "Apollo 11"
	require.NoError(t, projects.Update(ctx, first))
	reloaded, err := projects.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apollo 11", reloaded.Name)

	assert.ErrorIs(t, projects.Update(ctx, &entity.Project{ID: 9999, Name: "x"}), repository.ErrProjectNotFound)

	require.NoError(t, memberships.Remove(ctx, first.ID, alice.ID))
	assert.ErrorIs(t, memberships.Remove(ctx, first.ID, alice.ID), repository.ErrMembershipNotFound)
	_, err = memberships.Find(ctx, first.ID, alice.ID)
	assert.ErrorIs(t, err, repository.ErrMembershipNotFound)
}

func TestProjectRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)

	admin := testutil.CreateTestUser(t, db, testutil.WithRole(entity.RoleAdmin))
	bob := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, "Doomed", admin.ID)
	testutil.AddProjectMember(t, db, project.ID, bob.ID, entity.ProjectRoleMember)
	team := testutil.CreateTestTeam(t, db, project.ID, "Core")
	testutil.AddTeamMember(t, db, team.ID, bob.ID, entity.TeamRoleLeader)
	testutil.CreateTestTask(t, db, project.ID, admin.ID, "t1", testutil.WithTeam(team.ID))

	require.NoError(t, NewProjectRepository(db).Delete(ctx, project.ID))

	assert.Zero(t, testutil.CountRows(t, db, &model.ProjectModel{}))
	assert.Zero(t, testutil.CountRows(t, db, &model.ProjectMembershipModel{}))
	assert.Zero(t, testutil.CountRows(t, db, &model.TeamModel{}))
	assert.Zero(t, testutil.CountRows(t, db, &model.TeamMembershipModel{}))
	assert.Zero(t, testutil.CountRows(t, db, &model.TaskModel{}))

	assert.ErrorIs(t, NewProjectRepository(db).Delete(ctx, project.ID), repository.ErrProjectNotFound)
}

func TestTeamRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	repo := NewTeamRepository(db)

	admin := testutil.CreateTestUser(t, db, testutil.WithRole(entity.RoleAdmin))
	carol := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, "P", admin.ID)
	other := testutil.CreateTestProject(t, db, "Q", admin.ID)

	team := &entity.Team{ProjectID: project.ID, Name: "Backend"}
	require.NoError(t, repo.Create(ctx, team))
	otherTeam := testutil.CreateTestTeam(t, db, other.ID, "Elsewhere")

	_, err := repo.FindInProject(ctx, project.ID, otherTeam.ID)
	assert.ErrorIs(t, err, repository.ErrTeamNotFound, "team is scoped to its project")

	require.NoError(t, repo.SaveMember(ctx, &entity.TeamMembership{TeamID: team.ID, UserID: carol.ID, Role: entity.TeamRoleMember}))
	testutil.AddTeamMember(t, db, otherTeam.ID, carol.ID, entity.TeamRoleLeader)

	ids, err := repo.LedTeamIDs(ctx, project.ID, carol.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, repo.SaveMember(ctx, &entity.TeamMembership{TeamID: team.ID, UserID: carol.ID, Role: entity.TeamRoleLeader}))
	ids, err = repo.LedTeamIDs(ctx, project.ID, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{team.ID}, ids)

	require.NoError(t, repo.RemoveMemberFromProject(ctx, project.ID, carol.ID))
	ids, err = repo.LedTeamIDs(ctx, project.ID, carol.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = repo.LedTeamIDs(ctx, other.ID, carol.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{otherTeam.ID}, ids, "other projects are untouched")
}

func TestTaskRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	repo := NewTaskRepository(db)

	admin := testutil.CreateTestUser(t, db, testutil.WithRole(entity.RoleAdmin))
	dave := testutil.CreateTestUser(t, db)
	project := testutil.CreateTestProject(t, db, "P", admin.ID)
	other := testutil.CreateTestProject(t, db, "Q", admin.ID)
	team := testutil.CreateTestTeam(t, db, project.ID, "T")

	assigned := testutil.CreateTestTask(t, db, project.ID, admin.ID, "assigned", testutil.WithAssignee(dave.ID))
	teamTask := testutil.CreateTestTask(t, db, project.ID, admin.ID, "team", testutil.WithTeam(team.ID))
	testutil.CreateTestTask(t, db, project.ID, admin.ID, "unrelated")
	foreign := testutil.CreateTestTask(t, db, other.ID, admin.ID, "foreign", testutil.WithAssignee(dave.ID))

	_, err := repo.FindInProject(ctx, project.ID, foreign.ID)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)

	all, err := repo.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	visible, err := repo.ListVisible(ctx, project.ID, dave.ID, nil)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, assigned.ID, visible[0].ID)

	visible, err = repo.ListVisible(ctx, project.ID, dave.ID, []int64{team.ID})
	require.NoError(t, err)
	require.Len(t, visible, 2)
	assert.Equal(t, teamTask.ID, visible[1].ID)

	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	assigned.Status = entity.TaskStatusDone
	assigned.AssigneeID = nil
	assigned.DueDate = &due
	require.NoError(t, repo.Update(ctx, assigned))

	reloaded, err := repo.FindInProject(ctx, project.ID, assigned.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusDone, reloaded.Status)
	assert.Nil(t, reloaded.AssigneeID, "cleared columns are written")
	require.NotNil(t, reloaded.DueDate)
	assert.True(t, reloaded.DueDate.Equal(due))

	foreign.ProjectID = project.ID
	assert.ErrorIs(t, repo.Update(ctx, foreign), repository.ErrTaskNotFound)

	require.NoError(t, repo.Delete(ctx, project.ID, assigned.ID))
	assert.ErrorIs(t, repo.Delete(ctx, project.ID, assigned.ID), repository.ErrTaskNotFound)
}

func TestTransactionManager_Rollback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	tm := NewTransactionManager(db)
	admin := testutil.CreateTestUser(t, db, testutil.WithRole(entity.RoleAdmin))

	sentinel := errors.New("boom")
	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.ProjectRepo().Create(ctx, &entity.Project{Name: "rolled back", CreatedBy: admin.ID}); err != nil {
			return err
		}

		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Zero(t, testutil.CountRows(t, db, &model.ProjectModel{}))

	err = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		return f.ProjectRepo().Create(ctx, &entity.Project{Name: "kept", CreatedBy: admin.ID})
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &model.ProjectModel{}))
}
