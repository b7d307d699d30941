package entity

import "time"

// Project groups teams and tasks. Access to it is granted through ProjectMembership.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   int64     `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectRole is the role a user holds inside one project.
type ProjectRole string

const (
	ProjectRoleLeader ProjectRole = "project_leader"
	ProjectRoleMember ProjectRole = "member"
)

// IsValid checks if the ProjectRole is a valid value.
func (r ProjectRole) IsValid() bool {
	switch r {
	case ProjectRoleLeader, ProjectRoleMember:
		return true
	default:
		return false
	}
}

// ProjectMembership links a user to a project with a role.
type ProjectMembership struct {
	ProjectID int64       `json:"projectId"`
	UserID    int64       `json:"userId"`
	Role      ProjectRole `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}
