// Package redis holds the optional cache client. Everything here degrades
// to a no-op when REDIS_ADDR is unset, so the engine runs without redis.
package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/skillbridge-backend/internal/pkg/logger"
	"github.com/yungbote/skillbridge-backend/internal/utils"
)

const profileTTL = 5 * time.Minute

// ProfileCache caches learner profiles between feedback events. A nil
// *ProfileCache is valid and caches nothing.
type ProfileCache struct {
	client *goredis.Client
	log    *logger.Logger
}

// NewProfileCache connects to redis when REDIS_ADDR is set and the server
// answers a ping. Returns nil otherwise.
func NewProfileCache(log *logger.Logger) *ProfileCache {
	addr := utils.GetEnv("REDIS_ADDR", "", log)
	if addr == "" {
		log.Info("REDIS_ADDR not set; learner profile cache disabled")
		return nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: utils.GetEnv("REDIS_PASSWORD", "", log),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable; learner profile cache disabled", "error", err)
		return nil
	}

	log.Info("learner profile cache enabled", "addr", addr)
	return &ProfileCache{client: client, log: log.With("component", "profile_cache")}
}

func profileKey(employeeID string) string {
	return "learner_profile:" + employeeID
}

// Get loads a cached profile into dest. Returns false on miss, error, or
// when the cache is disabled.
func (c *ProfileCache) Get(ctx context.Context, employeeID string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, profileKey(employeeID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("profile cache read failed", "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.log.Warn("profile cache decode failed", "error", err)
		return false
	}
	return true
}

// Set stores a profile with a short TTL. Failures are logged, never
// propagated.
func (c *ProfileCache) Set(ctx context.Context, employeeID string, value interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("profile cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, profileKey(employeeID), raw, profileTTL).Err(); err != nil {
		c.log.Warn("profile cache write failed", "error", err)
	}
}

// Invalidate drops the cached profile after new feedback arrives.
func (c *ProfileCache) Invalidate(ctx context.Context, employeeID string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, profileKey(employeeID)).Err(); err != nil {
		c.log.Warn("profile cache invalidate failed", "error", err)
	}
}
