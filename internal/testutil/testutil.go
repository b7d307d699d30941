// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/infra/persistence/model"
)

var emailSeq atomic.Int64

// SetupTestDB creates a migrated in-memory SQLite database that is closed when the test ends.
// The pool is limited to one connection so every query sees the same database.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		TranslateError:         true,
		SkipDefaultTransaction: true,
		NowFunc:                func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// TestContext creates a context with a timeout for tests
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	return ctx
}

// UserOption customizes CreateTestUser.
type UserOption func(*model.UserModel)

// WithRole sets the system role.
func WithRole(role entity.SystemRole) UserOption {
	return func(m *model.UserModel) { m.Role = string(role) }
}

// WithStatus sets the account status.
func WithStatus(status entity.AccountStatus) UserOption {
	return func(m *model.UserModel) { m.Status = string(status) }
}

// WithEmail sets the email.
func WithEmail(email string) UserOption {
	return func(m *model.UserModel) { m.Email = email }
}

// WithPasswordHash sets the stored password hash.
func WithPasswordHash(hash string) UserOption {
	return func(m *model.UserModel) { m.PasswordHash = hash }
}

// CreateTestUser inserts an active staff user with a unique email.
func CreateTestUser(t *testing.T, db *gorm.DB, opts ...UserOption) *entity.User {
	t.Helper()

	m := &model.UserModel{
		FirstName:    "Test",
		LastName:     "User",
		Email:        fmt.Sprintf("user-%d@example.com", emailSeq.Add(1)),
		PasswordHash: "not-a-real-hash",
		Role:         string(entity.RoleStaff),
		Status:       string(entity.StatusActive),
		Designation:  "Engineer",
		Department:   "R&D",
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return &entity.User{
		ID:           m.ID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entity.SystemRole(m.Role),
		Status:       entity.AccountStatus(m.Status),
		Designation:  m.Designation,
		Department:   m.Department,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CreateTestProject inserts a project created by createdBy.
func CreateTestProject(t *testing.T, db *gorm.DB, name string, createdBy int64) *entity.Project {
	t.Helper()

	m := &model.ProjectModel{Name: name, Description: name + " description", CreatedBy: createdBy}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test project: %v", err)
	}

	return &entity.Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// AddProjectMember inserts a project membership.
func AddProjectMember(t *testing.T, db *gorm.DB, projectID, userID int64, role entity.ProjectRole) {
	t.Helper()

	m := &model.ProjectMembershipModel{ProjectID: projectID, UserID: userID, Role: string(role)}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to add project member: %v", err)
	}
}

// CreateTestTeam inserts a team in projectID.
func CreateTestTeam(t *testing.T, db *gorm.DB, projectID int64, name string) *entity.Team {
	t.Helper()

	m := &model.TeamModel{ProjectID: projectID, Name: name}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test team: %v", err)
	}

	return &entity.Team{ID: m.ID, ProjectID: m.ProjectID, Name: m.Name, CreatedAt: m.CreatedAt}
}

// AddTeamMember inserts a team membership.
func AddTeamMember(t *testing.T, db *gorm.DB, teamID, userID int64, role entity.TeamRole) {
	t.Helper()

	m := &model.TeamMembershipModel{TeamID: teamID, UserID: userID, Role: string(role)}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to add team member: %v", err)
	}
}

// TaskOption customizes CreateTestTask.
type TaskOption func(*model.TaskModel)

// WithAssignee sets the task assignee.
func WithAssignee(userID int64) TaskOption {
	return func(m *model.TaskModel) { m.AssigneeID = &userID }
}

// WithTeam sets the owning team.
func WithTeam(teamID int64) TaskOption {
	return func(m *model.TaskModel) { m.TeamID = &teamID }
}

// CreateTestTask inserts a todo task in projectID.
func CreateTestTask(t *testing.T, db *gorm.DB, projectID, createdBy int64, title string, opts ...TaskOption) *entity.Task {
	t.Helper()

	m := &model.TaskModel{
		ProjectID: projectID,
		Title:     title,
		Status:    string(entity.TaskStatusTodo),
		Priority:  string(entity.TaskPriorityMedium),
		CreatedBy: createdBy,
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := db.Create(m).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}

	return &entity.Task{
		ID:          m.ID,
		ProjectID:   m.ProjectID,
		TeamID:      m.TeamID,
		AssigneeID:  m.AssigneeID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entity.TaskStatus(m.Status),
		Priority:    entity.TaskPriority(m.Priority),
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// CountRows returns the number of rows in the table backing m.
func CountRows(t *testing.T, db *gorm.DB, m any) int64 {
	t.Helper()

	var n int64
	if err := db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}

	return n
}
