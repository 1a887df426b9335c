package cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client *redis.Client
	ttl    = 5 * time.Minute
)

// Connect initializes the Redis-backed read cache. The cache is optional:
// when no client is connected every operation is a no-op and reads always
// miss.
func Connect(addr string) error {
	if addr == "" {
		return fmt.Errorf("redis address is empty")
	}

	c := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}

	if raw := os.Getenv("CACHE_TTL"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			ttl = time.Duration(seconds) * time.Second
		}
	}

	client = c

	return nil
}

func projectKey(projectID uint) string {
	return fmt.Sprintf("project:%d:overview", projectID)
}

// GetProjectOverview returns the cached overview payload for a project.
func GetProjectOverview(ctx context.Context, projectID uint) (string, bool) {
	if client == nil {
		return "", false
	}

	payload, err := client.Get(ctx, projectKey(projectID)).Result()

	if err == redis.Nil {
		return "", false
	}

	if err != nil {
		log.Printf("Failed to read project %d overview from cache: %v", projectID, err)
		return "", false
	}

	return payload, true
}

// SetProjectOverview stores the overview payload with the configured TTL.
func SetProjectOverview(ctx context.Context, projectID uint, payload string) {
	if client == nil {
		return
	}

	if err := client.Set(ctx, projectKey(projectID), payload, ttl).Err(); err != nil {
		log.Printf("Failed to cache project %d overview: %v", projectID, err)
	}
}

// InvalidateProject drops the project's cached overview after a state change.
func InvalidateProject(projectID uint) {
	if client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Del(ctx, projectKey(projectID)).Err(); err != nil {
		log.Printf("Failed to invalidate project %d overview: %v", projectID, err)
	}
}
