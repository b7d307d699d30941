// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// User is an account of the system. It doubles as the credential record:
// the password hash lives here and never leaves the service.
type User struct {
	ID           int64         `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	Role         SystemRole    `json:"role"`
	Status       AccountStatus `json:"status"`
	Designation  string        `json:"designation"`
	Department   string        `json:"department"`
	AvatarPath   string        `json:"avatarPath,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin system role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// IsSuspended reports whether the account is currently suspended.
func (u *User) IsSuspended() bool {
	return u != nil && u.Status == StatusSuspended
}
