// Package ui holds the terminal styles shared by the CLI commands.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
)

const (
	IconEmber   = "🔥"
	IconSparkle = "✨"
	IconDone    = "✅"
	IconTodo    = "○"
	IconBadge   = "🏅"
	IconStreak  = "📅"
	IconFreeze  = "❄️"
	IconBonus   = "➕"
	IconWarn    = "⚠️"
	IconError   = "🧯"
)

var (
	cPrimary = lipgloss.Color("208") // ember orange
	cAccent  = lipgloss.Color("203") // coral
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // amber
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // stardust
)

var (
	Title lipgloss.Style
	H2    lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Gold  lipgloss.Style
	Panel lipgloss.Style
)

func init() {
	SetColor(true)
}

// SetColor switches between the themed and the plain style set.
func SetColor(enabled bool) {
	if !enabled {
		plain := lipgloss.NewStyle()
		Title, H2, Muted, Key, Good, Warn, Bad, Gold = plain, plain, plain, plain, plain, plain, plain, plain
		Panel = plain
		return
	}

	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2 = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cPrimary).Padding(0, 1)
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Stardust formats a currency amount.
func Stardust(n int) string {
	return Gold.Render(fmt.Sprintf("%d ✦", n))
}

// ProgressBar renders p in [0, 1] as a bar of the given width.
func ProgressBar(p float64, width int) string {
	if width <= 0 {
		return ""
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	filled := int(p*float64(width) + 0.5)
	return Gold.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

// CategoryIcon returns the glyph shown next to tasks of a category.
func CategoryIcon(c catalog.Category) string {
	switch c {
	case catalog.CategoryBreathe:
		return "🌬️"
	case catalog.CategoryReflect:
		return "📝"
	case catalog.CategoryGratitude:
		return "🙏"
	case catalog.CategoryMove:
		return "🚶"
	case catalog.CategoryMindful:
		return "🧘"
	default:
		return "•"
	}
}

// CheckBox renders a completion marker.
func CheckBox(done bool) string {
	if done {
		return Good.Render(IconDone)
	}
	return Muted.Render(IconTodo)
}
