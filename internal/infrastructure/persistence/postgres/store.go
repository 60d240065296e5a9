package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/kv"
)

const (
	selectValueSQL = `SELECT value FROM ember_kv WHERE key = $1`
	upsertValueSQL = `INSERT INTO ember_kv (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
)

// Store is a kv.Store backed by the ember_kv table.
type Store struct {
	conn *Connection
}

// Open connects, applies migrations, and returns a ready store.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	conn, err := NewConnection(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := NewMigrator(conn).Migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}

	return &Store{conn: conn}, nil
}

// Get implements kv.Store.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if s.conn.IsClosed() {
		return nil, kv.ErrClosed
	}

	var value []byte
	err := s.conn.QueryRow(ctx, selectValueSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, kv.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get %q: %w", key, err)
	}
	return value, nil
}

// SetMany implements kv.Store. The batch is queued on one transaction.
func (s *Store) SetMany(ctx context.Context, entries map[string][]byte) error {
	if s.conn.IsClosed() {
		return kv.ErrClosed
	}
	if len(entries) == 0 {
		return nil
	}

	return s.conn.WithTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		keys := kv.SortedKeys(entries)
		for _, key := range keys {
			batch.Queue(upsertValueSQL, key, entries[key])
		}

		results := tx.SendBatch(ctx, batch)
		for _, key := range keys {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return fmt.Errorf("postgres: set %q: %w", key, err)
			}
		}
		return results.Close()
	})
}

// Close implements kv.Store.
func (s *Store) Close() error {
	s.conn.Close()
	return nil
}
