package types

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeSkill struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_skill,priority:1" json:"employee_id"`
	Employee     *Employee `gorm:"constraint:OnDelete:CASCADE;foreignKey:EmployeeID;references:ID" json:"employee,omitempty"`
	SkillID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_employee_skill,priority:2" json:"skill_id"`
	Skill        *Skill    `gorm:"constraint:OnDelete:CASCADE;foreignKey:SkillID;references:ID" json:"skill,omitempty"`
	CurrentLevel int       `gorm:"not null;default:0" json:"current_level"`
	TargetLevel  *int      `json:"target_level,omitempty"`
	SelfAssessed bool      `gorm:"not null;default:true" json:"self_assessed"`
	LastAssessed time.Time `gorm:"not null;default:now()" json:"last_assessed"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (EmployeeSkill) TableName() string { return "employee_skill" }
