// The worker consumes background scoring tasks: debounced rescores
// triggered by captured signals and weight nudges triggered by
// recorded outcomes.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"scoutscore_backend/internal/events"
	"scoutscore_backend/internal/scheduler"
	"scoutscore_backend/internal/scoring"
	"scoutscore_backend/platform/config"
	"scoutscore_backend/platform/db"
	"scoutscore_backend/platform/logger"
	"scoutscore_backend/platform/validator"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "concurrency", cfg.GetWorkerConcurrency())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.GetRedisPassword(),
		DB:       cfg.GetRedisDB(),
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Error("redis unavailable; worker cannot run", "error", err)
		panic("redis unavailable: " + err.Error())
	}
	defer redisClient.Close()

	// The worker publishes score events on its own bus; nothing
	// subscribes here, but handlers stay oblivious to which process
	// they run in.
	eventBus := events.NewInMemoryBus(log)

	val := validator.New()
	if err := scoring.RegisterValidations(val); err != nil {
		panic("failed to register validations: " + err.Error())
	}

	scoringModule, err := scoring.NewModule(pool, redisClient, nil, eventBus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize scoring module", "error", err)
		panic("failed to initialize scoring module: " + err.Error())
	}

	worker := scheduler.NewWorker(cfg, scoringModule.Service(), log)
	log.Info("worker listening for tasks")
	worker.Run(ctx)
	log.Info("worker stopped")
}
