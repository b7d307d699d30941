package entity

import "time"

// Team is a sub-grouping of a project's members.
type Team struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TeamRole is the role a user holds inside one team.
type TeamRole string

const (
	TeamRoleLeader TeamRole = "team_leader"
	TeamRoleMember TeamRole = "member"
)

// IsValid checks if the TeamRole is a valid value.
func (r TeamRole) IsValid() bool {
	switch r {
	case TeamRoleLeader, TeamRoleMember:
		return true
	default:
		return false
	}
}

// TeamMembership links a user to a team with a role.
type TeamMembership struct {
	TeamID    int64     `json:"teamId"`
	UserID    int64     `json:"userId"`
	Role      TeamRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
