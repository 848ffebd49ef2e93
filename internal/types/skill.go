package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Skill struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name             string         `gorm:"not null;uniqueIndex" json:"name"`
	Category         string         `gorm:"not null" json:"category"`
	Subcategory      *string        `json:"subcategory,omitempty"`
	Description      *string        `json:"description,omitempty"`
	LevelDefinitions datatypes.JSON `gorm:"type:jsonb;column:level_definitions" json:"level_definitions"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (Skill) TableName() string { return "skill" }

const (
	SkillCategoryTechnical = "technical"
	SkillCategorySoft      = "soft"
	SkillCategoryDomain    = "domain"
)
