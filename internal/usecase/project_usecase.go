package usecase

import (
	"context"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// ProjectMemberInput names a user and the role they get in a project.
type ProjectMemberInput struct {
	UserID int64
	Role   entity.ProjectRole
}

// CreateProjectInput defines a new project and its initial members.
type CreateProjectInput struct {
	Name        string
	Description string
	Members     []ProjectMemberInput
}

// UpdateProjectInput is a partial project update. Nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectDetail is a project with its members and the caller's resolved role.
type ProjectDetail struct {
	Project *entity.Project
	Members []*entity.ProjectMembership
	Role    entity.ResolvedRole
}

// ProjectUsecase manages projects and their memberships.
type ProjectUsecase interface {
	CreateProject(ctx context.Context, actor *entity.User, input CreateProjectInput) (*ProjectDetail, error)
	ListProjects(ctx context.Context, actor *entity.User) ([]*entity.Project, error)
	GetProject(ctx context.Context, actor *entity.User, projectID int64) (*ProjectDetail, error)
	UpdateProject(ctx context.Context, actor *entity.User, projectID int64, input UpdateProjectInput) (*entity.Project, error)
	DeleteProject(ctx context.Context, actor *entity.User, projectID int64) error
	AddMember(ctx context.Context, actor *entity.User, projectID int64, input ProjectMemberInput) (*entity.ProjectMembership, error)
	RemoveMember(ctx context.Context, actor *entity.User, projectID, userID int64) error
}
