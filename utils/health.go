package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is a snapshot of the backing dependencies, surfaced on the
// health endpoint. Redis entries follow the order the clients were
// registered in.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

const healthProbeInterval = 60 * time.Second

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the most recent snapshot without blocking on a
// probe.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings Mongo and every Redis client on a fixed interval
// and keeps the snapshot current.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(healthProbeInterval)
		defer ticker.Stop()

		ctx := context.Background()
		for range ticker.C {
			redisUp := make([]bool, 0, len(redisClients))
			for _, client := range redisClients {
				redisUp = append(redisUp, client.Ping(ctx).Err() == nil)
			}

			snapshot := HealthStatus{
				Mongo:     mongoClient.Ping(ctx, nil) == nil,
				Redis:     redisUp,
				CheckedAt: time.Now(),
			}

			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}
