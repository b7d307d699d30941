package model

import "time"

// ProjectModel mirrors the 'projects' table.
type ProjectModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	CreatedBy   int64  `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProjectModel) TableName() string {
	return "projects"
}

// ProjectMembershipModel mirrors the 'project_memberships' table. One row per (project, user).
type ProjectMembershipModel struct {
	ProjectID int64  `gorm:"primaryKey"`
	UserID    int64  `gorm:"primaryKey;index"`
	Role      string `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time

	Project *ProjectModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	User    *UserModel    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (ProjectMembershipModel) TableName() string {
	return "project_memberships"
}
