package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelTable_For(t *testing.T) {
	table := DefaultLevelTable()

	tests := []struct {
		currency int
		level    int
		name     string
	}{
		{0, 1, "Spark"},
		{199, 1, "Spark"},
		{200, 2, "Flicker"},
		{499, 2, "Flicker"},
		{500, 3, "Glow"},
		{1000, 4, "Warmth"},
		{2000, 5, "Radiance"},
		{3500, 6, "Blaze"},
		{5500, 7, "Brilliance"},
		{8000, 8, "Ember Master"},
		{100000, 8, "Ember Master"},
	}

	for _, tt := range tests {
		got := table.For(tt.currency)
		assert.Equal(t, tt.level, got.Level, "currency %d", tt.currency)
		assert.Equal(t, tt.name, got.Name, "currency %d", tt.currency)
	}
}

func TestLevelTable_Monotonic(t *testing.T) {
	table := DefaultLevelTable()
	prev := table.For(0).Level
	assert.Equal(t, 1, prev)

	for c := 0; c <= 9000; c += 7 {
		lvl := table.For(c).Level
		assert.GreaterOrEqual(t, lvl, prev, "currency %d", c)
		prev = lvl
	}
}

func TestLevelTable_Progress(t *testing.T) {
	table := DefaultLevelTable()

	assert.Equal(t, 0.0, table.Progress(0))
	assert.InDelta(t, 0.5, table.Progress(100), 1e-9)
	assert.InDelta(t, 0.5, table.Progress(350), 1e-9)
	assert.Equal(t, 0.0, table.Progress(500))
	assert.Equal(t, 1.0, table.Progress(8000))
	assert.Equal(t, 1.0, table.Progress(12000))
}

func TestNewLevelTable_Validation(t *testing.T) {
	_, err := NewLevelTable(nil)
	assert.Error(t, err)

	_, err = NewLevelTable([]LevelEntry{{Level: 1, Required: 10}})
	assert.ErrorContains(t, err, "require 0")

	_, err = NewLevelTable([]LevelEntry{{Level: 1, Required: 0}, {Level: 2, Required: 0}})
	assert.ErrorContains(t, err, "must exceed")

	table, err := NewLevelTable([]LevelEntry{{Level: 1, Name: "a"}, {Level: 2, Name: "b", Required: 10}})
	require.NoError(t, err)
	assert.Equal(t, 2, table.Max().Level)

	_, ok := table.Next(2)
	assert.False(t, ok)
}
