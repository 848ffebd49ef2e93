package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Employee struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email               string         `gorm:"not null;uniqueIndex" json:"email"`
	FullName            string         `gorm:"not null" json:"full_name"`
	JobRole             string         `gorm:"not null" json:"job_role"`
	Department          *string        `json:"department,omitempty"`
	ExperienceLevel     string         `gorm:"not null" json:"experience_level"`
	CareerGoals         datatypes.JSON `gorm:"type:jsonb;column:career_goals" json:"career_goals"`
	LearningPreferences datatypes.JSON `gorm:"type:jsonb;column:learning_preferences" json:"learning_preferences"`
	WeeklyLearningHours int            `gorm:"not null;default:5" json:"weekly_learning_hours"`
	MotivationDrivers   datatypes.JSON `gorm:"type:jsonb;column:motivation_drivers" json:"motivation_drivers"`
	CreatedAt           time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Employee) TableName() string { return "employee" }

// CareerGoal is the element shape of Employee.CareerGoals.
type CareerGoal struct {
	Goal      string `json:"goal"`
	Priority  string `json:"priority"`
	Timeframe string `json:"timeframe"`
}

// LearningPrefs is the shape of Employee.LearningPreferences.
type LearningPrefs struct {
	Styles        []string `json:"styles"`
	Pace          string   `json:"pace"`
	SessionLength string   `json:"sessionLength"`
	BestTimeOfDay string   `json:"bestTimeOfDay"`
}
