package app

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"manifiesto_bot/internal/adapter/persistence/repository"
	"manifiesto_bot/internal/config"
	"manifiesto_bot/internal/infrastructure/database"
	"manifiesto_bot/internal/infrastructure/generation"
	"manifiesto_bot/internal/infrastructure/storage"
)

// RunWorker consumes generation jobs until ctx is cancelled.
func RunWorker(ctx context.Context, cfg *config.Config) error {
	pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	repo := repository.NewDocumentPostgresRepository(pool)

	store, err := storage.New(cfg)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}

	server := asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: cfg.WorkerCount,
		ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
			log.Printf("[generation][worker] task failed type=%s err=%v", task.Type(), err)
		}),
	})
	processor := generation.NewProcessor(repo, store, generation.NewRenderer(cfg.Location()))

	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()

	log.Printf("[generation][worker] started concurrency=%d", cfg.WorkerCount)
	if err := server.Run(processor.Handler()); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}
