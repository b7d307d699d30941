package repository

import (
	"context"
	"errors"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

var (
	// ErrProjectNotFound is returned when a project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrMembershipNotFound is returned when a user is not a member of a project.
	ErrMembershipNotFound = errors.New("project membership not found")
)

// ProjectRepository persists projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, id int64) (*entity.Project, error)
	// List returns every project, newest first.
	List(ctx context.Context) ([]*entity.Project, error)
	// ListByMember returns the projects userID holds a membership in.
	ListByMember(ctx context.Context, userID int64) ([]*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id int64) error
}

// MembershipRepository persists project memberships.
type MembershipRepository interface {
	// Find returns the membership of userID in projectID.
	Find(ctx context.Context, projectID, userID int64) (*entity.ProjectMembership, error)
	// Save inserts the membership or updates its role.
	Save(ctx context.Context, membership *entity.ProjectMembership) error
	Remove(ctx context.Context, projectID, userID int64) error
	ListByProject(ctx context.Context, projectID int64) ([]*entity.ProjectMembership, error)
}
