package entity

import "slices"

// SystemRole is the account-wide privilege level.
type SystemRole string

const (
	// RoleAdmin has full access to every project and task.
	RoleAdmin SystemRole = "admin"
	// RoleStaff is a regular account; access is decided per project.
	RoleStaff SystemRole = "staff"
)

// String returns the string representation of the SystemRole.
func (r SystemRole) String() string {
	return string(r)
}

// IsValid checks if the SystemRole is a valid value.
func (r SystemRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff:
		return true
	default:
		return false
	}
}

// AccountStatus is the lifecycle state of a user account.
type AccountStatus string

const (
	StatusPending   AccountStatus = "pending"
	StatusActive    AccountStatus = "active"
	StatusSuspended AccountStatus = "suspended"
)

// AccountStatuses lists every valid status.
var AccountStatuses = []AccountStatus{StatusPending, StatusActive, StatusSuspended}

func (s AccountStatus) String() string {
	return string(s)
}

// IsValid checks if the AccountStatus is a valid value.
func (s AccountStatus) IsValid() bool {
	return slices.Contains(AccountStatuses, s)
}
