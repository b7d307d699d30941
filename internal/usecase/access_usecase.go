package usecase

import (
	"context"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// AccessUsecase resolves what an authenticated user may do inside a project.
type AccessUsecase interface {
	// ResolveProjectRole returns RoleElevated for admins (ErrNotFound when the project is missing)
	// and the membership role for everyone else (ErrForbidden without a membership).
	ResolveProjectRole(ctx context.Context, actor *entity.User, projectID int64) (entity.ResolvedRole, error)

	// AuthorizeTaskCreation allows admins and project leaders, and members who lead a team in the project.
	AuthorizeTaskCreation(ctx context.Context, actor *entity.User, projectID int64) (entity.ResolvedRole, error)

	// AuthorizeTaskAccess loads the task (ErrNotFound first) and checks that a member is its assignee
	// or leads its team (ErrForbidden otherwise).
	AuthorizeTaskAccess(ctx context.Context, actor *entity.User, projectID, taskID int64) (entity.ResolvedRole, *entity.Task, error)
}
