package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type LearningModule struct {
	ID                   uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title                string         `gorm:"not null" json:"title"`
	Description          *string        `json:"description,omitempty"`
	ContentType          string         `gorm:"not null" json:"content_type"`
	SkillID              *uuid.UUID     `gorm:"type:uuid;index" json:"skill_id,omitempty"`
	Skill                *Skill         `gorm:"constraint:OnDelete:SET NULL;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	DifficultyLevel      int            `gorm:"not null;default:1" json:"difficulty_level"`
	EstimatedMinutes     int            `gorm:"not null;default:30" json:"estimated_minutes"`
	LearningStyleFit     datatypes.JSON `gorm:"type:jsonb;column:learning_style_fit" json:"learning_style_fit"`
	Prerequisites        datatypes.JSON `gorm:"type:jsonb;column:prerequisites" json:"prerequisites"`
	PracticalApplication *string        `json:"practical_application,omitempty"`
	ContentURL           *string        `json:"content_url,omitempty"`
	CreatedAt            time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (LearningModule) TableName() string { return "learning_module" }

const (
	ContentTypeVideo       = "video"
	ContentTypeArticle     = "article"
	ContentTypeInteractive = "interactive"
	ContentTypeExercise    = "exercise"
	ContentTypeProject     = "project"
)
