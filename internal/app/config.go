// Package app holds process-level configuration.
package app

import (
	"time"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/utils"
)

type Config struct {
	LogMode            string
	StoreTimeout       time.Duration
	MaxModulesPerSkill int
}

// Load reads configuration from the environment.
func Load(log *logger.Logger) Config {
	return Config{
		LogMode:            utils.GetEnv("LOG_MODE", "development", log),
		StoreTimeout:       time.Duration(utils.GetEnvAsInt("STORE_TIMEOUT_SECONDS", 10, log)) * time.Second,
		MaxModulesPerSkill: utils.GetEnvAsInt("MAX_MODULES_PER_SKILL", 3, log),
	}
}
