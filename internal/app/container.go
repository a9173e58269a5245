// Package app wires configuration into the use cases shared by the HTTP API,
// the worker and the CLI.
package app

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"manifiesto_bot/internal/adapter/persistence/repository"
	"manifiesto_bot/internal/config"
	"manifiesto_bot/internal/domain/validation"
	"manifiesto_bot/internal/infrastructure/database"
	"manifiesto_bot/internal/infrastructure/generation"
	"manifiesto_bot/internal/infrastructure/payments"
	"manifiesto_bot/internal/infrastructure/storage"
	"manifiesto_bot/internal/usecase"
	"manifiesto_bot/internal/usecase/interfaces"
)

// Container holds the use cases exposed by the transports. Documents is nil
// when generation runs locally, since there is no document store to query.
type Container struct {
	Lifecycle usecase.ILifecycleUseCase
	Payments  usecase.IBillingPaymentUseCase
	Documents usecase.IDocumentUseCase

	closers []func()
}

// Close releases pools and clients in reverse creation order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build connects every backend selected by cfg.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{}

	sessions, paymentRepo, err := buildStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var gateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock)
	if err != nil {
		log.Printf("[app] Mercado Pago gateway not configured: %v", err)
	} else {
		gateway = mpGateway
	}
	paymentUseCase := usecase.NewBillingPaymentUseCase(paymentRepo, gateway)
	c.Payments = paymentUseCase

	generator, err := c.buildGenerator(ctx, cfg)
	if err != nil {
		c.Close()
		return nil, err
	}

	validator := validation.NewValidator(validation.WithLocation(cfg.Location()))
	resolver := usecase.NewCorrectionResolver(validator, usecase.ParseCorrectionPolicy(cfg.CorrectionPolicy))
	c.Lifecycle = usecase.NewLifecycleUseCase(
		sessions,
		generator,
		paymentUseCase,
		validator,
		resolver,
		usecase.WithGenerationTimeout(cfg.GenerationTimeout),
	)
	log.Printf("[app] ready session_store=%s generator=%s correction_policy=%s", cfg.SessionStore, cfg.Generator, resolver.Policy())
	return c, nil
}

func buildStores(ctx context.Context, cfg *config.Config) (interfaces.ISessionRepository, interfaces.IBillingPaymentRepository, error) {
	switch cfg.SessionStore {
	case config.SessionStoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSessionDynamoRepository(ddb, cfg.SessionsTable, cfg.SessionTTL),
			repository.NewBillingPaymentDynamoRepository(ddb, cfg.PaymentsTable),
			nil
	case config.SessionStoreMemory:
		return repository.NewSessionMemoryRepository(), repository.NewBillingPaymentMemoryRepository(), nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

func (c *Container) buildGenerator(ctx context.Context, cfg *config.Config) (interfaces.IDocumentGenerator, error) {
	renderer := generation.NewRenderer(cfg.Location())
	switch cfg.Generator {
	case config.GeneratorLocal:
		return generation.NewLocalGenerator(renderer, cfg.LocalOutputDir), nil
	case config.GeneratorQueue:
	default:
		return nil, fmt.Errorf("unknown generator %q", cfg.Generator)
	}

	pool, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.closers = append(c.closers, pool.Close)
	if err := database.EnsureSchema(ctx, pool); err != nil {
		return nil, err
	}
	docs := repository.NewDocumentPostgresRepository(pool)

	store, err := storage.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	client := asynq.NewClient(redisOpt(cfg))
	c.closers = append(c.closers, func() { _ = client.Close() })

	c.Documents = usecase.NewDocumentUseCase(docs, store, cfg.DownloadTTL)
	return generation.NewQueueGenerator(docs, client, cfg.MaxRetry), nil
}

func redisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
}
