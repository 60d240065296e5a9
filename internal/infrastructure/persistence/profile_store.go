// Package persistence stores the Ember profile and daily generation records
// on a pluggable key-value backend.
package persistence

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/daily"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/kv"
)

// DefaultKeyPrefix namespaces Ember keys on shared backends.
const DefaultKeyPrefix = "ember:"

const (
	profileKey    = "user"
	generationKey = "daily_generation"
)

// ProfileStore encodes domain records as JSON blobs on a kv.Store.
type ProfileStore struct {
	kv     kv.Store
	prefix string
	levels catalog.LevelTable
}

// NewProfileStore creates a store. An empty prefix selects DefaultKeyPrefix.
func NewProfileStore(store kv.Store, prefix string, levels catalog.LevelTable) *ProfileStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if levels.Len() == 0 {
		levels = catalog.DefaultLevelTable()
	}
	return &ProfileStore{kv: store, prefix: prefix, levels: levels}
}

// ProfileKey returns the full key of the profile record.
func (s *ProfileStore) ProfileKey() string { return s.prefix + profileKey }

// GenerationKey returns the full key of the daily generation record.
func (s *ProfileStore) GenerationKey() string { return s.prefix + generationKey }

// LoadProfile reads the profile. A missing record yields the defaults.
func (s *ProfileStore) LoadProfile(ctx context.Context) (*progress.Profile, error) {
	data, err := s.kv.Get(ctx, s.ProfileKey())
	if errors.Is(err, kv.ErrKeyNotFound) {
		return progress.NewProfile(), nil
	}
	if err != nil {
		return nil, shared.WrapError("persistence", "LoadProfile", shared.ErrPersistenceRead, "read profile", err)
	}

	profile := progress.NewProfile()
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, shared.WrapError("persistence", "LoadProfile", shared.ErrPersistenceRead, "decode profile", err)
	}
	profile.Normalize(s.levels)
	return profile, nil
}

// LoadGeneration reads the daily generation record. A missing record yields nil.
func (s *ProfileStore) LoadGeneration(ctx context.Context) (*daily.Generation, error) {
	data, err := s.kv.Get(ctx, s.GenerationKey())
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, shared.WrapError("persistence", "LoadGeneration", shared.ErrPersistenceRead, "read generation", err)
	}

	var g daily.Generation
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, shared.WrapError("persistence", "LoadGeneration", shared.ErrPersistenceRead, "decode generation", err)
	}
	return &g, nil
}

// Commit writes the profile and, when non-nil, the generation in one batch.
func (s *ProfileStore) Commit(ctx context.Context, profile *progress.Profile, generation *daily.Generation) error {
	entries := make(map[string][]byte, 2)

	if profile != nil {
		data, err := json.Marshal(profile)
		if err != nil {
			return shared.WrapError("persistence", "Commit", shared.ErrPersistenceWrite, "encode profile", err)
		}
		entries[s.ProfileKey()] = data
	}

	if generation != nil {
		data, err := json.Marshal(generation)
		if err != nil {
			return shared.WrapError("persistence", "Commit", shared.ErrPersistenceWrite, "encode generation", err)
		}
		entries[s.GenerationKey()] = data
	}

	if len(entries) == 0 {
		return nil
	}

	if err := s.kv.SetMany(ctx, entries); err != nil {
		return shared.WrapError("persistence", "Commit", shared.ErrPersistenceWrite, "write records", err)
	}
	return nil
}

// Close closes the underlying backend.
func (s *ProfileStore) Close() error {
	return s.kv.Close()
}
