package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"medibook/config"
	"medibook/models"
	"medibook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeSearchCacheInvalidate = "search:invalidate"

// InitCacheWorker runs the async cache invalidation worker in background.
func InitCacheWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSearchCacheInvalidate, handleCacheInvalidationTask)

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[CacheWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CacheWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CacheWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleCacheInvalidationTask drops every cached search result. A stale page
// is worse than a recomputed one, so the whole prefix goes.
func handleCacheInvalidationTask(ctx context.Context, task *asynq.Task) error {
	var p models.CacheInvalidationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[CacheWorker] 🔴 Invalid payload: %v", err)
		return err
	}

	client := utils.GetCacheClient()
	pattern := utils.SearchCachePrefix + "*"

	var deleted int64
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Printf("[CacheWorker] ❌ Failed to delete key %s: %v", iter.Val(), err)
			return err
		}
		deleted++
	}
	if err := iter.Err(); err != nil {
		log.Printf("[CacheWorker] ❌ Scan failed: %v", err)
		return err
	}

	log.Printf("[CacheWorker] 🧹 Invalidated %d cached search result(s) (reason: %s)", deleted, p.Reason)
	return nil
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CacheWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
