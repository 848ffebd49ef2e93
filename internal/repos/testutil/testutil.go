// Package testutil provides shared helpers for repo integration tests.
// Tests that need Postgres call DB or Tx and are skipped when
// TEST_POSTGRES_DSN is unset, so the unit suite stays runnable anywhere.
package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/types"
)

var (
	dbOnce sync.Once
	dbConn *gorm.DB
	dbErr  error
)

// Logger returns a development logger for test use.
func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("development")
	if err != nil {
		tb.Fatalf("logger: %v", err)
	}
	return log
}

// DB returns a shared connection to the test database, migrating the schema
// on first use. Skips the test when TEST_POSTGRES_DSN is unset.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set; skipping database test")
	}

	dbOnce.Do(func() {
		dbConn, dbErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if dbErr != nil {
			return
		}
		if err := dbConn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
			dbErr = err
			return
		}
		dbErr = dbConn.AutoMigrate(
			&types.Employee{},
			&types.Skill{},
			&types.EmployeeSkill{},
			&types.SkillRequirement{},
			&types.LearningModule{},
			&types.LearningPath{},
			&types.LearningProgress{},
			&types.FeedbackSignal{},
			&types.SkillGap{},
			&types.AdaptationLog{},
		)
	})
	if dbErr != nil {
		tb.Fatalf("test database: %v", dbErr)
	}
	return dbConn
}

// Tx begins a transaction that is rolled back when the test finishes, so
// tests never leak rows into each other.
func Tx(tb testing.TB) *gorm.DB {
	tb.Helper()

	tx := DB(tb).Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}
