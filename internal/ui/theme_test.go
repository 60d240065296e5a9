package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
)

func TestProgressBar(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	assert.Equal(t, "█████░░░░░", ProgressBar(0.5, 10))
	assert.Equal(t, "░░░░", ProgressBar(-1, 4))
	assert.Equal(t, "████", ProgressBar(2, 4))
	assert.Empty(t, ProgressBar(0.5, 0))
}

func TestPlainStyles(t *testing.T) {
	SetColor(false)
	defer SetColor(true)

	assert.Equal(t, "Level: 3", LabelValue("Level", 3))
	assert.Equal(t, "🔥 Ember", Heading(IconEmber, "Ember"))
	assert.Equal(t, "Today", Heading("", "Today"))
	assert.Equal(t, "40 ✦", Stardust(40))
}

func TestCategoryIcon(t *testing.T) {
	for _, c := range catalog.AllCategories() {
		assert.NotEqual(t, "•", CategoryIcon(c), c)
	}
	assert.Equal(t, "•", CategoryIcon("unknown"))
	assert.True(t, strings.Contains(CheckBox(true), IconDone))
}
