package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/rolandbiro/Ember/config"
	"github.com/rolandbiro/Ember/internal/application/eventhandler"
	"github.com/rolandbiro/Ember/internal/application/progression"
	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/infrastructure/catalogfile"
	"github.com/rolandbiro/Ember/internal/infrastructure/messaging"
	"github.com/rolandbiro/Ember/internal/infrastructure/metrics"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/postgres"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/redis"
	"github.com/rolandbiro/Ember/internal/ui"
	"github.com/rolandbiro/Ember/pkg/logger"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// app holds the wired collaborators for one command invocation.
type app struct {
	cfg   *config.Config
	flags *config.FeatureFlags
	log   *logger.Logger

	store   *persistence.ProfileStore
	catalog catalogfile.Result
	// catalogErr is set when the catalog could not be loaded at all.
	catalogErr error

	bus     *messaging.InMemoryEventBus
	metrics *metrics.Metrics
	feed    *eventhandler.Feed

	svc *progression.Service
}

// clock is replaced in tests.
var clock timeutil.Clock

func openApp(ctx context.Context) (*app, func(), error) {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	flags, err := config.NewFeatureFlags(cfg.Features)
	if err != nil {
		return nil, nil, fmt.Errorf("features: %w", err)
	}
	ui.SetColor(flags.IsEnabled(config.FeatureColor) && os.Getenv("NO_COLOR") == "")

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(cfg.LoggerOptions())
	log.Debug("starting ember",
		logger.String("version", Version),
		logger.String("env", string(cfg.Environment)),
		logger.String("timezone", cfg.Timezone),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. STORAGE
	// ─────────────────────────────────────────────────────────────────────────
	opts, err := storageOptions(cfg)
	if err != nil {
		return nil, nil, err
	}
	kvStore, err := persistence.Open(ctx, opts, log)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	levels := catalog.DefaultLevelTable()
	store := persistence.NewProfileStore(kvStore, cfg.KeyPrefix, levels)

	// ─────────────────────────────────────────────────────────────────────────
	// 4. CATALOG
	// ─────────────────────────────────────────────────────────────────────────
	catalogResult, catalogErr := catalogfile.Load(cfg.CatalogPath, log)
	if catalogErr != nil {
		log.Warn("catalog unavailable, running without tasks", logger.Err(catalogErr))
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. EVENT BUS + METRICS
	// ─────────────────────────────────────────────────────────────────────────
	bus := messaging.NewInMemoryEventBus(messaging.InMemoryEventBusConfig{Logger: log, WorkerPoolSize: 1})
	bus.Use(messaging.LoggingMiddleware(log))

	m := metrics.New()
	feed := eventhandler.NewFeed()
	if err := m.Subscribe(bus); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("metrics: %w", err)
	}
	if err := eventhandler.Register(bus, feed, log); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("event handlers: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. PROGRESSION SERVICE
	// ─────────────────────────────────────────────────────────────────────────
	c := clock
	if c == nil {
		c = timeutil.NewSystemClock(cfg.Location())
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	svc := progression.NewService(progression.Deps{
		Store:     store,
		Catalog:   catalogResult.Catalog,
		Levels:    levels,
		Clock:     c,
		Rand:      rand.New(rand.NewSource(seed)),
		Publisher: bus,
		Logger:    log,
	})
	if err := svc.Start(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	a := &app{
		cfg:        cfg,
		flags:      flags,
		log:        log,
		store:      store,
		catalog:    catalogResult,
		catalogErr: catalogErr,
		bus:        bus,
		metrics:    m,
		feed:       feed,
		svc:        svc,
	}

	cleanup := func() {
		if err := bus.Close(); err != nil {
			log.Warn("event bus close failed", logger.Err(err))
		}
		if err := store.Close(); err != nil {
			log.Warn("storage close failed", logger.Err(err))
		}
	}
	return a, cleanup, nil
}

// storageOptions maps configuration onto backend options.
func storageOptions(cfg *config.Config) (persistence.Options, error) {
	driver, err := persistence.ParseDriver(cfg.StorageDriver)
	if err != nil {
		return persistence.Options{}, err
	}

	rc := redis.DefaultConfig()
	rc.URL = cfg.RedisURL
	rc.Host = cfg.RedisHost
	rc.Port = cfg.RedisPort
	rc.Password = cfg.RedisPassword
	rc.DB = cfg.RedisDB
	rc.DialTimeout = cfg.ConnectTimeout

	pc := postgres.DefaultConfig()
	pc.URL = cfg.PostgresURL
	pc.ConnectTimeout = cfg.ConnectTimeout

	return persistence.Options{
		Driver:         driver,
		SQLitePath:     cfg.SQLitePath,
		Redis:          rc,
		Postgres:       pc,
		ConnectTimeout: cfg.ConnectTimeout,
	}, nil
}
