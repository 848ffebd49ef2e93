package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// FeedbackSignal rows are append-only.
type FeedbackSignal struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"employee_id"`
	Employee          *Employee      `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	ModuleID          uuid.UUID      `gorm:"type:uuid;not null" json:"module_id"`
	SignalType        string         `gorm:"not null" json:"signal_type"`
	SignalValue       datatypes.JSON `gorm:"type:jsonb;column:signal_value" json:"signal_value"`
	SatisfactionScore *int           `json:"satisfaction_score,omitempty"`
	Comments          *string        `json:"comments,omitempty"`
	Timestamp         time.Time      `gorm:"not null;default:now();index" json:"timestamp"`
}

func (FeedbackSignal) TableName() string { return "feedback_signal" }

const (
	SignalTypeCompletion = "completion"
	SignalTypeStruggle   = "struggle"
	SignalTypeSkip       = "skip"
	SignalTypeTimeSpent  = "time_spent"
	SignalTypeRating     = "rating"
)
