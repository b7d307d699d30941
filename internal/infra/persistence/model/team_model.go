package model

import "time"

// TeamModel mirrors the 'teams' table.
type TeamModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	ProjectID int64  `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time

	Project *ProjectModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (TeamModel) TableName() string {
	return "teams"
}

// TeamMembershipModel mirrors the 'team_memberships' table. One row per (team, user).
type TeamMembershipModel struct {
	TeamID    int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"primaryKey;index"`
	Role      string `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time

	Team *TeamModel `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	User *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (TeamMembershipModel) TableName() string {
	return "team_memberships"
}
