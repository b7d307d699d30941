package entity

import "fmt"

// ResolvedRole is the outcome of resolving what a user may do inside one project.
// Admins resolve to RoleElevated without any membership row being involved.
type ResolvedRole uint8

const (
	// RoleNone means no access. It is never returned together with a nil error.
	RoleNone ResolvedRole = iota
	// RoleElevated is granted by the admin system role.
	RoleElevated
	// RoleProjectLeader is granted by a project_leader membership.
	RoleProjectLeader
	// RoleProjectMember is granted by a member membership.
	RoleProjectMember
)

// ResolvedRoleFor maps a membership role to its resolved role.
func ResolvedRoleFor(role ProjectRole) ResolvedRole {
	switch role {
	case ProjectRoleLeader:
		return RoleProjectLeader
	case ProjectRoleMember:
		return RoleProjectMember
	default:
		return RoleNone
	}
}

func (r ResolvedRole) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleElevated:
		return "elevated"
	case RoleProjectLeader:
		return "project_leader"
	case RoleProjectMember:
		return "member"
	default:
		return fmt.Sprintf("ResolvedRole(%d)", uint8(r))
	}
}

// CanManageProject reports whether the role may change the project, its members, teams and tasks.
func (r ResolvedRole) CanManageProject() bool {
	switch r {
	case RoleElevated, RoleProjectLeader:
		return true
	case RoleNone, RoleProjectMember:
		return false
	default:
		return false
	}
}

// PermittedTaskFields returns the task fields the role may update.
func (r ResolvedRole) PermittedTaskFields() TaskFieldSet {
	switch r {
	case RoleElevated, RoleProjectLeader:
		return AllTaskFields
	case RoleProjectMember:
		return NewTaskFieldSet(TaskFieldStatus)
	case RoleNone:
		return 0
	default:
		return 0
	}
}
