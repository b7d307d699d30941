package usecase

import (
	"context"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// TeamMemberInput names a user and the role they get in a team.
type TeamMemberInput struct {
	UserID int64
	Role   entity.TeamRole
}

// CreateTeamInput defines a new team inside a project.
type CreateTeamInput struct {
	Name    string
	Members []TeamMemberInput
}

// TeamDetail is a team with the memberships written alongside it.
type TeamDetail struct {
	Team    *entity.Team
	Members []*entity.TeamMembership
}

// TeamUsecase manages teams inside a project. Team members must already be project members.
type TeamUsecase interface {
	CreateTeam(ctx context.Context, actor *entity.User, projectID int64, input CreateTeamInput) (*TeamDetail, error)
	AddTeamMember(ctx context.Context, actor *entity.User, projectID, teamID int64, input TeamMemberInput) (*entity.TeamMembership, error)
}
