package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// TestRedisAddrEnv points tests at an already running Redis instead of a container
const TestRedisAddrEnv = "SKIRMISH_TEST_REDIS_ADDR"

// TestRedisConfig holds configuration for test Redis instances
type TestRedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DefaultTestRedisConfig returns the test Redis configuration from the environment,
// or nil when tests should start their own container
func DefaultTestRedisConfig() *TestRedisConfig {
	addr := os.Getenv(TestRedisAddrEnv)
	if addr == "" {
		return nil
	}

	return &TestRedisConfig{
		Addr: addr,
		DB:   15, // Use DB 15 for tests to avoid conflicts
	}
}

// CreateTestRedisClient creates a flushed Redis client for testing.
// With no config and no SKIRMISH_TEST_REDIS_ADDR it starts a throwaway container.
func CreateTestRedisClient(t *testing.T, cfg *TestRedisConfig) redis.UniversalClient {
	t.Helper()

	if cfg == nil {
		cfg = DefaultTestRedisConfig()
	}
	if cfg == nil {
		cfg = &TestRedisConfig{Addr: StartRedisContainer(t)}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	err := client.FlushDB(ctx).Err()
	require.NoError(t, err, "Failed to flush test Redis database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}
