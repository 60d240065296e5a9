package daily

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

func testCatalog(t *testing.T, perCategory int, categories ...catalog.Category) *catalog.Catalog {
	t.Helper()
	var tasks []catalog.TaskDefinition
	for _, c := range categories {
		for i := 0; i < perCategory; i++ {
			tasks = append(tasks, catalog.TaskDefinition{
				ID:       fmt.Sprintf("%s_%d", c, i),
				Category: c,
				Title:    string(c),
				UIKind:   catalog.UISimpleChoice,
				Reward:   40,
			})
		}
	}
	cat, rejected := catalog.New("test", tasks)
	require.Empty(t, rejected)
	return cat
}

func categoriesOf(set Set) map[catalog.Category]int {
	out := map[catalog.Category]int{}
	for _, inst := range set.Instances() {
		out[inst.Definition.Category]++
	}
	return out
}

func TestGenerate_DistinctCategories(t *testing.T) {
	cat := testCatalog(t, 4, catalog.AllCategories()...)

	for seed := int64(0); seed < 50; seed++ {
		sel := NewSelector(rand.New(rand.NewSource(seed)))
		set := sel.Generate(cat, progress.PaceActive.DailyTaskCount())

		require.Equal(t, 3, set.Len(), "seed %d", seed)
		assert.Len(t, categoriesOf(set), 3, "seed %d", seed)
	}
}

func TestGenerate_FillsWhenCategoriesExhausted(t *testing.T) {
	cat := testCatalog(t, 3, catalog.CategoryBreathe, catalog.CategoryMove)

	for seed := int64(0); seed < 20; seed++ {
		sel := NewSelector(rand.New(rand.NewSource(seed)))
		set := sel.Generate(cat, 3)

		require.Equal(t, 3, set.Len())
		assert.Len(t, categoriesOf(set), 2)

		seen := map[string]bool{}
		for _, id := range set.TaskIDs() {
			assert.False(t, seen[id], "duplicate %s", id)
			seen[id] = true
		}
	}
}

func TestGenerate_SmallCatalog(t *testing.T) {
	cat := testCatalog(t, 1, catalog.CategoryReflect)
	sel := NewSelector(rand.New(rand.NewSource(1)))

	set := sel.Generate(cat, 3)
	assert.Equal(t, []string{"reflect_0"}, set.TaskIDs())

	assert.Zero(t, sel.Generate(catalog.Empty(), 2).Len())
}

func TestGenerate_DeterministicForSeed(t *testing.T) {
	cat := testCatalog(t, 3, catalog.AllCategories()...)

	a := NewSelector(rand.New(rand.NewSource(42))).Generate(cat, 3)
	b := NewSelector(rand.New(rand.NewSource(42))).Generate(cat, 3)
	assert.Equal(t, a.TaskIDs(), b.TaskIDs())
}

func TestSelectForToday_SameDayCache(t *testing.T) {
	cat := testCatalog(t, 3, catalog.AllCategories()...)
	sel := NewSelector(rand.New(rand.NewSource(7)))
	today := timeutil.NewDate(2026, 10, 14)

	first := sel.SelectForToday(cat, progress.PaceActive, today, nil)
	require.True(t, first.Fresh)

	record := first.Set.Generation(today, false)
	second := sel.SelectForToday(cat, progress.PaceActive, today, &record)

	assert.False(t, second.Fresh)
	assert.Equal(t, first.Set.TaskIDs(), second.Set.TaskIDs())

	third := sel.SelectForToday(cat, progress.PaceActive, today.AddDays(1), &record)
	assert.True(t, third.Fresh)
}

func TestSelectForToday_RestoresCompletionState(t *testing.T) {
	cat := testCatalog(t, 2, catalog.AllCategories()...)
	sel := NewSelector(rand.New(rand.NewSource(3)))
	today := timeutil.NewDate(2026, 10, 14)

	sel1 := sel.SelectForToday(cat, progress.PaceSteady, today, nil)
	set := sel1.Set
	target := set.TaskIDs()[0]
	inst, ok := set.Find(target)
	require.True(t, ok)

	note := "felt calmer"
	at := time.Date(2026, 10, 14, 21, 30, 0, 0, time.UTC)
	require.NoError(t, inst.Complete(at, []string{"yes"}, &note))

	record := set.Generation(today, false)
	restored := sel.SelectForToday(cat, progress.PaceSteady, today, &record)

	got, ok := restored.Set.Find(target)
	require.True(t, ok)
	assert.True(t, got.Completed)
	assert.True(t, at.Equal(got.CompletedAt))
	assert.Equal(t, []string{"yes"}, got.SelectedOptionIDs)
	require.NotNil(t, got.Note)
	assert.Equal(t, note, *got.Note)
	assert.Equal(t, 1, restored.Set.CompletedCount())
}

func TestSelectForToday_StaleIdsRegenerate(t *testing.T) {
	cat := testCatalog(t, 2, catalog.AllCategories()...)
	sel := NewSelector(rand.New(rand.NewSource(3)))
	today := timeutil.NewDate(2026, 10, 14)

	record := &Generation{Date: today, TaskIDs: []string{"retired_task"}}
	got := sel.SelectForToday(cat, progress.PaceSteady, today, record)

	assert.True(t, got.Fresh)
	assert.Equal(t, 2, got.Set.Len())
}

func TestDrawBonus(t *testing.T) {
	cat := testCatalog(t, 1, catalog.CategoryBreathe, catalog.CategoryMove, catalog.CategoryMindful)
	sel := NewSelector(rand.New(rand.NewSource(9)))

	set := sel.Generate(cat, 2)
	bonus, ok := sel.DrawBonus(cat, set)
	require.True(t, ok)
	assert.False(t, set.Contains(bonus.ID))

	inst := NewInstance(bonus)
	inst.Bonus = true
	set.Append(inst)

	_, ok = sel.DrawBonus(cat, set)
	assert.False(t, ok)
}

func TestInstance_CompleteIsWriteOnce(t *testing.T) {
	inst := NewInstance(catalog.TaskDefinition{ID: "a"})
	require.NotEmpty(t, inst.ID)

	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	require.NoError(t, inst.Complete(at, nil, nil))

	err := inst.Complete(at.Add(time.Hour), []string{"x"}, nil)
	assert.True(t, shared.IsInvalidOperation(err))
	assert.Equal(t, at, inst.CompletedAt)
	assert.Empty(t, inst.SelectedOptionIDs)
}

func TestSet_AllCompleted(t *testing.T) {
	var empty Set
	assert.False(t, empty.AllCompleted())

	set := NewSet(NewInstance(catalog.TaskDefinition{ID: "a"}), NewInstance(catalog.TaskDefinition{ID: "b"}))
	a, _ := set.Find("a")
	require.NoError(t, a.Complete(time.Now(), nil, nil))
	assert.False(t, set.AllCompleted())

	b, _ := set.Find("b")
	require.NoError(t, b.Complete(time.Now(), nil, nil))
	assert.True(t, set.AllCompleted())
}
