package config

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client
var Ctx = context.Background()

// ConnectRedis initializes the optional cache client. When REDIS_ADDR is
// unset or the server is unreachable the client stays nil and every caller
// falls back to the database.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		slog.Warn("REDIS_ADDR not set, caching disabled")
		return
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})

	if _, err := RDB.Ping(Ctx).Result(); err != nil {
		slog.Error("failed to connect to Redis, caching disabled", "error", err)
		RDB = nil
		return
	}

	slog.Info("connected to Redis", "addr", redisAddr)
}
