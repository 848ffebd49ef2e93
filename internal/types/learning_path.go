package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearningPath struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee             *Employee      `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	Name                 string         `gorm:"not null" json:"name"`
	Status               string         `gorm:"not null;default:active" json:"status"`
	ModulesSequence      datatypes.JSON `gorm:"type:jsonb;column:modules_sequence" json:"modules_sequence"`
	StartDate            time.Time      `gorm:"type:date;not null" json:"start_date"`
	TargetCompletionDate *time.Time     `gorm:"type:date" json:"target_completion_date,omitempty"`
	Reasoning            string         `json:"reasoning"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (LearningPath) TableName() string { return "learning_path" }

const (
	PathStatusActive     = "active"
	PathStatusSuperseded = "superseded"
	PathStatusCompleted  = "completed"
	PathStatusPaused     = "paused"
)

// ScheduledModule is the element shape of LearningPath.ModulesSequence.
// The persisted sequence is the source of truth; week maps and milestones
// are derived from it on every load.
type ScheduledModule struct {
	ModuleID         uuid.UUID   `json:"moduleId"`
	ModuleTitle      string      `json:"moduleTitle"`
	SkillName        string      `json:"skillName"`
	WeekNumber       int         `json:"weekNumber"`
	EstimatedMinutes int         `json:"estimatedMinutes"`
	Priority         string      `json:"priority"`
	Milestone        string      `json:"milestone"`
	Prerequisites    []uuid.UUID `json:"prerequisites"`
}
