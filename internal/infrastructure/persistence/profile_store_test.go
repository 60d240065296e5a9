package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/daily"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/internal/infrastructure/persistence/kv"
	"github.com/rolandbiro/Ember/pkg/logger"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

func sampleProfile() *progress.Profile {
	p := progress.NewProfile()
	p.Name = "Ada"
	p.Currency = 250
	p.Level = 2
	p.CurrentStreak = 3
	p.LongestStreak = 5
	last := timeutil.NewDate(2026, 10, 13)
	p.LastActiveDate = &last
	p.EarnedBadgeIDs.Add("first_light")
	p.CategoryCompletions[catalog.CategoryBreathe] = 4
	p.TotalTasksCompleted = 4
	return p
}

func TestProfileStore_DefaultsWhenEmpty(t *testing.T) {
	store := NewProfileStore(kv.NewMemory(), "", catalog.LevelTable{})
	ctx := context.Background()

	p, err := store.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, progress.NewProfile(), p)

	g, err := store.LoadGeneration(ctx)
	require.NoError(t, err)
	assert.Nil(t, g)
}

func TestProfileStore_RoundTrip(t *testing.T) {
	store := NewProfileStore(kv.NewMemory(), "test:", catalog.DefaultLevelTable())
	ctx := context.Background()

	profile := sampleProfile()
	note := "slept well"
	gen := &daily.Generation{
		Date:    timeutil.NewDate(2026, 10, 14),
		TaskIDs: []string{"box_breathing", "short_walk"},
		Completions: []daily.CompletionRecord{{
			TaskID:      "short_walk",
			CompletedAt: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
			Note:        &note,
		}},
	}

	require.NoError(t, store.Commit(ctx, profile, gen))

	gotProfile, err := store.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, gotProfile)

	gotGen, err := store.LoadGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen.Date, gotGen.Date)
	assert.Equal(t, gen.TaskIDs, gotGen.TaskIDs)
	require.Len(t, gotGen.Completions, 1)
	assert.Equal(t, note, *gotGen.Completions[0].Note)
}

func TestProfileStore_MissingFieldsTakeDefaults(t *testing.T) {
	mem := kv.NewMemory()
	store := NewProfileStore(mem, "", catalog.DefaultLevelTable())
	mem.Put(store.ProfileKey(), []byte(`{"name":"Ada","currency":120}`))

	p, err := store.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, 120, p.Currency)
	assert.Equal(t, progress.DefaultPace, p.Pace)
	assert.True(t, p.StreakFreezeAvailable)
	assert.True(t, p.Notifications.DailyReminders)
	assert.Nil(t, p.LastActiveDate)
}

func TestProfileStore_CorruptRecordIsReadFailure(t *testing.T) {
	mem := kv.NewMemory()
	store := NewProfileStore(mem, "", catalog.DefaultLevelTable())
	mem.Put(store.ProfileKey(), []byte(`{not json`))
	mem.Put(store.GenerationKey(), []byte(`[]`))

	_, err := store.LoadProfile(context.Background())
	assert.ErrorIs(t, err, shared.ErrPersistenceRead)

	_, err = store.LoadGeneration(context.Background())
	assert.ErrorIs(t, err, shared.ErrPersistenceRead)
}

func TestProfileStore_BackendFailures(t *testing.T) {
	mem := kv.NewMemory()
	store := NewProfileStore(mem, "", catalog.DefaultLevelTable())
	ctx := context.Background()
	boom := errors.New("io error")

	mem.FailReads(boom)
	_, err := store.LoadProfile(ctx)
	assert.ErrorIs(t, err, shared.ErrPersistenceRead)
	assert.ErrorIs(t, err, boom)

	mem.FailWrites(boom)
	err = store.Commit(ctx, sampleProfile(), nil)
	assert.ErrorIs(t, err, shared.ErrPersistenceWrite)
	assert.True(t, shared.IsPersistence(err))
	assert.Zero(t, mem.Writes())
}

func TestProfileStore_CommitIsOneBatch(t *testing.T) {
	mem := kv.NewMemory()
	store := NewProfileStore(mem, "", catalog.DefaultLevelTable())

	gen := &daily.Generation{Date: timeutil.NewDate(2026, 10, 14), TaskIDs: []string{"a"}}
	require.NoError(t, store.Commit(context.Background(), sampleProfile(), gen))
	assert.Equal(t, 1, mem.Writes())
}

func TestProfileStore_SQLiteBackend(t *testing.T) {
	ctx := context.Background()
	opts := Options{Driver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "ember.db")}

	backend, err := Open(ctx, opts, logger.Nop())
	require.NoError(t, err)

	store := NewProfileStore(backend, "", catalog.DefaultLevelTable())
	profile := sampleProfile()
	require.NoError(t, store.Commit(ctx, profile, nil))
	require.NoError(t, store.Close())

	backend, err = Open(ctx, opts, logger.Nop())
	require.NoError(t, err)
	defer backend.Close()

	got, err := NewProfileStore(backend, "", catalog.DefaultLevelTable()).LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, got)
}

func TestParseDriver(t *testing.T) {
	tests := []struct {
		in      string
		want    Driver
		wantErr bool
	}{
		{"", DriverSQLite, false},
		{"SQLite", DriverSQLite, false},
		{"redis", DriverRedis, false},
		{" postgres ", DriverPostgres, false},
		{"memory", DriverMemory, false},
		{"mongo", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDriver(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mongo"}, nil)
	assert.Error(t, err)
	assert.True(t, DriverRedis.Remote())
	assert.False(t, DriverSQLite.Remote())
}
