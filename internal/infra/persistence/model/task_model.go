package model

import "time"

// TaskModel mirrors the 'tasks' table.
type TaskModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	ProjectID   int64  `gorm:"not null;index"`
	TeamID      *int64 `gorm:"index"`
	AssigneeID  *int64 `gorm:"index"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"type:varchar(20);not null;default:todo"`
	Priority    string `gorm:"type:varchar(20);not null;default:medium"`
	DueDate     *time.Time
	CreatedBy   int64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Project *ProjectModel `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Team    *TeamModel    `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
