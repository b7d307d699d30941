// Package model holds the GORM persistence models. They never leave the infra layer;
// repositories map them to domain entities.
package model

import "time"

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:staff"`
	Status       string `gorm:"type:varchar(20);not null;default:pending;index"`
	Designation  string `gorm:"type:varchar(100);not null"`
	Department   string `gorm:"type:varchar(100);not null"`
	AvatarPath   string `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
