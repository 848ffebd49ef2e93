package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/yungbote/skillbridge-backend/internal/app"
	redisclient "github.com/yungbote/skillbridge-backend/internal/clients/redis"
	"github.com/yungbote/skillbridge-backend/internal/db"
	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/repos"
	"github.com/yungbote/skillbridge-backend/internal/seed"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	cfg := app.Load(log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Seed catalogs
	log.Info("Applying seed catalogs from main...")
	if err := seed.Apply(context.Background(), thePG, log); err != nil {
		log.Error("Seed apply failed", "error", err)
		os.Exit(1)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	employeeRepo := repos.NewEmployeeRepo(thePG, log)
	skillRepo := repos.NewSkillRepo(thePG, log)
	employeeSkillRepo := repos.NewEmployeeSkillRepo(thePG, log)
	skillRequirementRepo := repos.NewSkillRequirementRepo(thePG, log)
	learningModuleRepo := repos.NewLearningModuleRepo(thePG, log)
	learningPathRepo := repos.NewLearningPathRepo(thePG, log)
	learningProgressRepo := repos.NewLearningProgressRepo(thePG, log)
	feedbackSignalRepo := repos.NewFeedbackSignalRepo(thePG, log)
	skillGapRepo := repos.NewSkillGapRepo(thePG, log)
	adaptationLogRepo := repos.NewAdaptationLogRepo(thePG, log)

	// Optional cache
	profileCache := redisclient.NewProfileCache(log)

	// Services
	log.Info("Setting up Services from main...")
	personaService := services.NewPersonaService(thePG, log, employeeRepo, skillRepo, employeeSkillRepo, cfg.StoreTimeout)
	skillGapService := services.NewSkillGapService(thePG, log, employeeRepo, skillRequirementRepo, employeeSkillRepo, skillGapRepo, cfg.StoreTimeout)
	recommendationService := services.NewRecommendationService(thePG, log, employeeRepo, skillGapRepo, learningModuleRepo, cfg.StoreTimeout)
	pathService := services.NewPathService(thePG, log, employeeRepo, learningPathRepo, cfg.StoreTimeout)
	adaptationService := services.NewAdaptationService(
		thePG,
		log,
		feedbackSignalRepo,
		learningProgressRepo,
		adaptationLogRepo,
		learningPathRepo,
		profileCache,
		rand.New(rand.NewSource(time.Now().UnixNano())),
		cfg.StoreTimeout,
	)
	progressService := services.NewProgressService(thePG, log, learningProgressRepo, cfg.StoreTimeout)

	_ = personaService
	_ = skillGapService
	_ = recommendationService
	_ = pathService
	_ = adaptationService
	_ = progressService

	log.Info("Curriculum engine ready",
		"max_modules_per_skill", cfg.MaxModulesPerSkill,
		"store_timeout", cfg.StoreTimeout)
}
