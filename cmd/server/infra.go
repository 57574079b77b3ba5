package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	householdservice "govinda/internal/household/service"
	householdstore "govinda/internal/household/store"
	personservice "govinda/internal/person/service"
	"govinda/internal/person/store/cache"
	personstore "govinda/internal/person/store/person"
	"govinda/internal/platform/config"
	"govinda/internal/platform/kafka"
	"govinda/internal/platform/postgres"
	redisclient "govinda/internal/platform/redis"
	audit "govinda/pkg/platform/audit"
	auditmemory "govinda/pkg/platform/audit/store/memory"
	auditpostgres "govinda/pkg/platform/audit/store/postgres"
	"govinda/pkg/platform/audit/worker"
	txcontext "govinda/pkg/platform/tx"
)

const (
	outboxRetention     = 7 * 24 * time.Hour
	outboxPruneInterval = time.Hour
)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type outboxPruner interface {
	DeletePublishedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// infra holds the backing stores selected by configuration: PostgreSQL with
// an optional Redis person cache and Kafka relay, or in-memory stores.
type infra struct {
	persons    personservice.PersonStore
	lookup     householdservice.PersonLookup
	households householdservice.HouseholdStore
	events     audit.Store
	tx         txRunner
	outbox     worker.Outbox
	pruner     outboxPruner
	producer   *kafka.Producer
	checks     map[string]func(context.Context) error
	closers    []func()
}

func (i *infra) close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		i.closers[n]()
	}
}

func openInfra(ctx context.Context, cfg config.Server, log *slog.Logger) (*infra, error) {
	if cfg.Database.URL == "" {
		log.Warn("database.url not set, using in-memory stores")
		return memoryInfra(), nil
	}
	i := &infra{checks: map[string]func(context.Context) error{}}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	i.closers = append(i.closers, func() { _ = db.Close() })
	i.checks["postgres"] = db.PingContext
	if cfg.Database.Migrate {
		if err := postgres.Migrate(db); err != nil {
			i.close()
			return nil, err
		}
		log.Info("database migrations applied")
	}

	persons := personstore.NewPostgres(db)
	i.persons = persons
	i.lookup = persons
	i.households = householdstore.NewPostgres(db)
	events := auditpostgres.New(db)
	i.events = events
	i.outbox = events
	i.pruner = events
	i.tx = newMasterdataPostgresTx(db)

	if err := i.attachRedis(ctx, cfg.Redis, log, persons); err != nil {
		i.close()
		return nil, err
	}
	if err := i.attachKafka(ctx, cfg.Kafka, log); err != nil {
		i.close()
		return nil, err
	}
	return i, nil
}

func memoryInfra() *infra {
	persons := personstore.NewInMemory()
	households := householdstore.NewInMemory()
	events := auditmemory.NewInMemoryStore()
	return &infra{
		persons:    persons,
		lookup:     persons,
		households: households,
		events:     events,
		tx:         txcontext.NewMemoryRunner(persons, households, events),
		checks:     map[string]func(context.Context) error{},
	}
}

func (i *infra) attachRedis(ctx context.Context, cfg config.RedisConfig, log *slog.Logger, persons *personstore.PostgresStore) error {
	client, err := redisclient.New(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		return nil
	}
	i.closers = append(i.closers, func() { _ = client.Close() })
	i.checks["redis"] = client.Health
	i.persons = cache.New(persons, client, cache.WithTTL(client.CacheTTL()), cache.WithLogger(log))
	log.Info("person cache enabled", "ttl", client.CacheTTL().String())
	return nil
}

func (i *infra) attachKafka(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger) error {
	if len(cfg.Brokers) == 0 {
		log.Warn("kafka.brokers not set, change events stay in the outbox")
		return nil
	}
	producer, err := kafka.NewProducer(cfg.Brokers, cfg.Topic, log)
	if err != nil {
		return err
	}
	i.closers = append(i.closers, producer.Close)
	// -1 leaves the replication factor to the broker default.
	if err := producer.EnsureTopic(ctx, cfg.Partitions, -1); err != nil {
		return fmt.Errorf("ensure event topic: %w", err)
	}
	i.producer = producer
	i.checks["kafka"] = producer.Ping
	return nil
}

// pruneOutbox deletes delivered outbox entries past their retention.
func pruneOutbox(ctx context.Context, pruner outboxPruner, log *slog.Logger) error {
	ticker := time.NewTicker(outboxPruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := pruner.DeletePublishedBefore(ctx, time.Now().Add(-outboxRetention))
			if err != nil {
				log.WarnContext(ctx, "outbox pruning failed", "error", err)
				continue
			}
			if n > 0 {
				log.InfoContext(ctx, "outbox pruned", "deleted", n)
			}
		}
	}
}
