package catalogfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
)

func TestLoadDefault(t *testing.T) {
	res, err := LoadDefault(logger.Nop())
	require.NoError(t, err)
	assert.Empty(t, res.Rejected)
	assert.False(t, res.Degraded())
	assert.Equal(t, "embedded", res.Source)

	assert.ElementsMatch(t, catalog.AllCategories(), res.Catalog.Categories())
	for _, task := range res.Catalog.Tasks() {
		assert.GreaterOrEqual(t, task.Reward, catalog.MinTaskReward, task.ID)
		assert.LessOrEqual(t, task.Reward, catalog.MaxTaskReward, task.ID)
	}

	walk, ok := res.Catalog.Task("short_walk")
	require.True(t, ok)
	assert.Equal(t, catalog.UITimedActivity, walk.UIKind)
	assert.Equal(t, 300, walk.DurationSeconds)
}

func TestDecode_PartialJSON(t *testing.T) {
	doc := `{
		"version": "2",
		"tasks": [
			{"id": "ok_one", "category": "breathe", "title": "One", "description": "", "uiType": "simple_choice", "stardustReward": 40},
			{"id": "bad_reward", "category": "move", "title": "Bad", "uiType": "simple_choice", "stardustReward": "many"},
			{"id": "no_reward", "category": "move", "title": "Missing", "uiType": "simple_choice"},
			{"id": "bad_category", "category": "sleep", "title": "Sleep", "uiType": "simple_choice", "stardustReward": 30},
			{"id": "ok_one", "category": "move", "title": "Dup", "uiType": "simple_choice", "stardustReward": 30},
			{"id": "ok_two", "category": "mindful", "title": "Two", "uiType": "timed_activity", "duration": 60, "stardustReward": 50}
		]
	}`

	res, err := Decode(strings.NewReader(doc), FormatJSON, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "2", res.Catalog.Version())
	assert.Equal(t, 2, res.Catalog.Len())

	indices := make([]int, 0, len(res.Rejected))
	for _, r := range res.Rejected {
		indices = append(indices, r.Index)
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4}, indices)
}

func TestDecode_YAML(t *testing.T) {
	doc := `
version: "y1"
tasks:
  - id: calm
    category: breathe
    title: Calm
    uiType: slider_choice
    stardustReward: 35
    slider:
      min: 1
      max: 5
      minLabel: Low
      maxLabel: High
  - id: broken
    category: move
    title: [not, a, string]
    uiType: simple_choice
    stardustReward: 30
  - id: pick
    category: reflect
    title: Pick
    uiType: multi_select
    stardustReward: 45
    options:
      - id: a
        text: A
      - id: b
        text: B
`
	res, err := Decode(strings.NewReader(doc), FormatYAML, logger.Nop())
	require.NoError(t, err)
	require.Len(t, res.Rejected, 1)
	assert.Equal(t, 1, res.Rejected[0].Index)

	calm, ok := res.Catalog.Task("calm")
	require.True(t, ok)
	require.NotNil(t, calm.Slider)
	assert.Equal(t, 5, calm.Slider.Max)
	assert.Equal(t, "High", calm.Slider.MaxLabel)

	pick, ok := res.Catalog.Task("pick")
	require.True(t, ok)
	assert.True(t, pick.HasOption("b"))
}

func TestDecode_BrokenEnvelope(t *testing.T) {
	res, err := Decode(strings.NewReader(`{"tasks": 7}`), FormatJSON, logger.Nop())
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrCatalogLoad)
	assert.True(t, res.Degraded())

	res, err = Decode(strings.NewReader("version: [unclosed"), FormatYAML, nil)
	require.Error(t, err)
	assert.True(t, res.Degraded())
}

func TestDecode_WarnsOnSkippedEntries(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Output: &buf, Level: logger.LevelDebug, Format: logger.FormatJSON})

	_, err := Decode(strings.NewReader(`{"tasks":[{"id":"x"}]}`), FormatJSON, log)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "catalog entry skipped")
	assert.Contains(t, buf.String(), "catalog has no usable tasks")
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"), logger.Nop())
	assert.ErrorIs(t, err, shared.ErrCatalogLoad)

	path := filepath.Join(dir, "tasks.yml")
	require.NoError(t, os.WriteFile(path, []byte("version: v\ntasks:\n  - {id: a, category: move, title: A, uiType: simple_choice, stardustReward: 30}\n"), 0o600))

	res, err := LoadFile(path, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, path, res.Source)
	assert.Equal(t, 1, res.Catalog.Len())
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("b.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("b.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("tasks"))
}
