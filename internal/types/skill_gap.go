package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SkillGap rows are derived state: recomputed and fully replaced on every
// analysis run, keyed uniquely by (employee, skill). Only deficits are
// materialized, so RequiredLevel - CurrentLevel is always positive.
type SkillGap struct {
	ID                 uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID         uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_gap_employee_skill,priority:1" json:"employee_id"`
	Employee           *Employee      `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	SkillID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_gap_employee_skill,priority:2" json:"skill_id"`
	Skill              *Skill         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	CurrentLevel       int            `gorm:"not null;default:0" json:"current_level"`
	RequiredLevel      int            `gorm:"not null" json:"required_level"`
	GapSeverity        string         `gorm:"not null" json:"gap_severity"`
	Importance         string         `gorm:"not null;default:medium" json:"importance"`
	ImportanceScore    int            `gorm:"not null;default:0" json:"importance_score"`
	Explanation        string         `json:"explanation"`
	RecommendedModules datatypes.JSON `gorm:"type:jsonb;column:recommended_modules" json:"recommended_modules"`
	EstimatedWeeks     int            `gorm:"not null;default:0" json:"estimated_weeks"`
	CreatedAt          time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (SkillGap) TableName() string { return "skill_gap" }

const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityModerate = "moderate"
	SeverityLow      = "low"
)
