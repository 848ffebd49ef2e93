package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdaptationLog rows are append-only; they are the durable history of every
// adaptation decision made for a learner.
type AdaptationLog struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee       *Employee      `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	AdaptationType string         `gorm:"not null" json:"adaptation_type"`
	TriggerSignals datatypes.JSON `gorm:"type:jsonb;column:trigger_signals" json:"trigger_signals"`
	ActionTaken    string         `gorm:"not null" json:"action_taken"`
	Reasoning      string         `json:"reasoning"`
	Timestamp      time.Time      `gorm:"not null;default:now();index" json:"timestamp"`
}

func (AdaptationLog) TableName() string { return "adaptation_log" }

const (
	AdaptationDifficultyAdjust = "difficulty_adjust"
	AdaptationPaceChange       = "pace_change"
	AdaptationContentSwap      = "content_swap"
	AdaptationEncouragement    = "encouragement"
	AdaptationIntervention     = "intervention"
)
