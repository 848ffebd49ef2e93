package types

import (
	"time"

	"github.com/google/uuid"
)

type LearningProgress struct {
	ID                   uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_employee_module,priority:1" json:"employee_id"`
	Employee             *Employee  `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	ModuleID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_employee_module,priority:2" json:"module_id"`
	Status               string     `gorm:"not null;default:not_started" json:"status"`
	CompletionPercentage int        `gorm:"not null;default:0" json:"completion_percentage"`
	PerformanceScore     *float64   `json:"performance_score,omitempty"`
	TimeSpentMinutes     int        `gorm:"not null;default:0" json:"time_spent_minutes"`
	StartedAt            *time.Time `json:"started_at,omitempty"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	CreatedAt            time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningProgress) TableName() string { return "learning_progress" }

const (
	ProgressStatusNotStarted = "not_started"
	ProgressStatusInProgress = "in_progress"
	ProgressStatusCompleted  = "completed"
)
