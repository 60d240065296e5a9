package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/kv"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/postgres"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/redis"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/sqlite"
	"github.com/rolandbiro/Ember/pkg/logger"
	"github.com/rolandbiro/Ember/pkg/retry"
)

// Driver names a key-value backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverRedis    Driver = "redis"
	DriverPostgres Driver = "postgres"
)

// ParseDriver accepts a driver name case-insensitively.
func ParseDriver(s string) (Driver, error) {
	switch d := Driver(strings.ToLower(strings.TrimSpace(s))); d {
	case DriverMemory, DriverSQLite, DriverRedis, DriverPostgres:
		return d, nil
	case "":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("persistence: unknown storage driver %q", s)
	}
}

// Remote reports whether the backend lives on another host.
func (d Driver) Remote() bool {
	return d == DriverRedis || d == DriverPostgres
}

// Options selects and configures the backend.
type Options struct {
	Driver     Driver
	SQLitePath string
	Redis      redis.Config
	Postgres   postgres.Config

	// ConnectTimeout bounds each remote connection attempt.
	ConnectTimeout time.Duration
}

// Open connects to the configured backend. Remote backends are retried with
// exponential backoff.
func Open(ctx context.Context, opts Options, log *logger.Logger) (kv.Store, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("persistence")

	connect := func(ctx context.Context) (kv.Store, error) {
		switch opts.Driver {
		case DriverMemory:
			return kv.NewMemory(), nil
		case DriverSQLite, "":
			path := opts.SQLitePath
			if path == "" {
				p, err := sqlite.DefaultPath()
				if err != nil {
					return nil, retry.Permanent(err)
				}
				path = p
			}
			store, err := sqlite.Open(ctx, path)
			if err != nil {
				return nil, retry.Permanent(err)
			}
			return store, nil
		case DriverRedis:
			return redis.Open(ctx, opts.Redis)
		case DriverPostgres:
			return postgres.Open(ctx, opts.Postgres)
		default:
			return nil, retry.Permanent(fmt.Errorf("persistence: unknown storage driver %q", opts.Driver))
		}
	}

	if !opts.Driver.Remote() {
		store, err := connect(ctx)
		if err != nil {
			return nil, unwrapPermanent(err)
		}
		log.Debug("storage opened", logger.String("driver", string(opts.Driver)))
		return store, nil
	}

	policy := retry.ForBackends(func(a retry.Attempt) {
		log.Warn("storage connection failed, retrying",
			logger.String("driver", string(opts.Driver)),
			logger.Int("attempt", a.N),
			logger.Duration("delay", a.Wait),
			logger.Err(a.Err),
		)
	})

	var store kv.Store
	err := policy.Do(ctx, func(ctx context.Context) error {
		attemptCtx := ctx
		if opts.ConnectTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
			defer cancel()
		}
		s, err := connect(attemptCtx)
		if err != nil {
			return err
		}
		store = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("persistence: open %s: %w", opts.Driver, unwrapPermanent(err))
	}

	log.Info("storage connected", logger.String("driver", string(opts.Driver)))
	return store, nil
}

func unwrapPermanent(err error) error {
	var p *retry.PermanentError
	if errors.As(err, &p) {
		return p.Err
	}
	return err
}
