package types

import (
	"time"

	"github.com/google/uuid"
)

type SkillRequirement struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RoleName      string    `gorm:"not null;uniqueIndex:idx_role_skill,priority:1" json:"role_name"`
	SkillID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_role_skill,priority:2" json:"skill_id"`
	Skill         *Skill    `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	RequiredLevel int       `gorm:"not null" json:"required_level"`
	Importance    string    `gorm:"not null;default:medium" json:"importance"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (SkillRequirement) TableName() string { return "skill_requirement" }

const (
	ImportanceCritical = "critical"
	ImportanceHigh     = "high"
	ImportanceMedium   = "medium"
	ImportanceLow      = "low"
)
