package model

import "time"

// RefreshSessionModel mirrors the 'refresh_sessions' table. TokenHash is the hex SHA-256 of the opaque token.
type RefreshSessionModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index"`
	TokenHash string    `gorm:"type:char(64);not null;index"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time

	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (RefreshSessionModel) TableName() string {
	return "refresh_sessions"
}
