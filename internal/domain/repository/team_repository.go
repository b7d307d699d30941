package repository

import (
	"context"
	"errors"

	"github.com/Minhhoang2445/ProjectManagementSystem-sub000/internal/domain/entity"
)

// ErrTeamNotFound is returned when a team does not exist in the given project.
var ErrTeamNotFound = errors.New("team not found")

// TeamRepository persists teams and team memberships.
type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	// FindInProject returns the team only if it belongs to projectID.
	FindInProject(ctx context.Context, projectID, teamID int64) (*entity.Team, error)
	// SaveMember inserts the team membership or updates its role.
	SaveMember(ctx context.Context, membership *entity.TeamMembership) error
	// RemoveMemberFromProject drops userID from every team of projectID.
	RemoveMemberFromProject(ctx context.Context, projectID, userID int64) error
	// LedTeamIDs returns the IDs of teams in projectID where userID is team_leader.
	LedTeamIDs(ctx context.Context, projectID, userID int64) ([]int64, error)
}
