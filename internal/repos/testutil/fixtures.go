package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/types"
)

// SeedEmployee inserts a minimal employee row.
func SeedEmployee(tb testing.TB, tx *gorm.DB) *types.Employee {
	tb.Helper()

	row := &types.Employee{
		Email:               fmt.Sprintf("test-%s@example.com", uuid.NewString()[:8]),
		FullName:            "Test Learner",
		JobRole:             "Software Engineer",
		ExperienceLevel:     "mid",
		CareerGoals:         datatypes.JSON([]byte(`[]`)),
		LearningPreferences: datatypes.JSON([]byte(`{"styles":["hands-on"],"pace":"moderate"}`)),
		WeeklyLearningHours: 5,
		MotivationDrivers:   datatypes.JSON([]byte(`[]`)),
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed employee: %v", err)
	}
	return row
}

// SeedSkill inserts a skill with the given name and category.
func SeedSkill(tb testing.TB, tx *gorm.DB, name, category string) *types.Skill {
	tb.Helper()

	row := &types.Skill{
		Name:             name,
		Category:         category,
		LevelDefinitions: datatypes.JSON([]byte(`{}`)),
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed skill %q: %v", name, err)
	}
	return row
}

// SeedModule inserts a learning module attached to a skill.
func SeedModule(tb testing.TB, tx *gorm.DB, skillID uuid.UUID, title string, difficulty, minutes int) *types.LearningModule {
	tb.Helper()

	row := &types.LearningModule{
		Title:            title,
		ContentType:      types.ContentTypeInteractive,
		SkillID:          &skillID,
		DifficultyLevel:  difficulty,
		EstimatedMinutes: minutes,
		LearningStyleFit: datatypes.JSON([]byte(`["hands-on"]`)),
		Prerequisites:    datatypes.JSON([]byte(`[]`)),
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed module %q: %v", title, err)
	}
	return row
}

// SeedPath inserts an active learning path for the employee.
func SeedPath(tb testing.TB, tx *gorm.DB, employeeID uuid.UUID, name string) *types.LearningPath {
	tb.Helper()

	row := &types.LearningPath{
		EmployeeID:      employeeID,
		Name:            name,
		Status:          types.PathStatusActive,
		ModulesSequence: datatypes.JSON([]byte(`[]`)),
		StartDate:       time.Now().UTC().Truncate(24 * time.Hour),
		Reasoning:       "Initial plan.",
	}
	if err := tx.Create(row).Error; err != nil {
		tb.Fatalf("seed path %q: %v", name, err)
	}
	return row
}
