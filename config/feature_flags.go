package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags manages feature toggles for the CLI.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool
}

// Predefined feature flag names.
const (
	FeatureCelebrations = "ui.celebrations" // level-up, badge and streak messages after a command
	FeatureColor        = "ui.color"        // styled terminal output
	FeatureBonusTasks   = "daily.bonus"     // "one more task" after finishing the day
)

// NewFeatureFlags returns the defaults with overrides applied.
// Overrides use the Config.Features syntax: "name=bool" pairs separated by
// commas; a bare name enables the feature, a leading "-" disables it.
func NewFeatureFlags(overrides string) (*FeatureFlags, error) {
	ff := &FeatureFlags{features: make(map[string]*Feature)}
	ff.initializeDefaults()

	parsed, err := ParseFeatureOverrides(overrides)
	if err != nil {
		return nil, err
	}
	for name, enabled := range parsed {
		f, ok := ff.features[name]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q", name)
		}
		f.Enabled = enabled
	}
	return ff, nil
}

func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeatureCelebrations] = &Feature{
		Name:        FeatureCelebrations,
		Description: "Show celebrations for milestones",
		Enabled:     true,
	}
	ff.features[FeatureColor] = &Feature{
		Name:        FeatureColor,
		Description: "Colored terminal output",
		Enabled:     true,
	}
	ff.features[FeatureBonusTasks] = &Feature{
		Name:        FeatureBonusTasks,
		Description: "Allow an extra task once the day is complete",
		Enabled:     true,
	}
}

// ParseFeatureOverrides parses "a=true,-b,c" into name to enabled.
func ParseFeatureOverrides(raw string) (map[string]bool, error) {
	out := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, value, hasValue := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		enabled := true

		switch {
		case hasValue:
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("feature %q: invalid value %q", name, value)
			}
			enabled = b
		case strings.HasPrefix(name, "-"):
			name = strings.TrimPrefix(name, "-")
			enabled = false
		}

		if name == "" {
			return nil, fmt.Errorf("invalid feature override %q", part)
		}
		out[name] = enabled
	}
	return out, nil
}

// IsEnabled checks if a feature is enabled. Unknown features are disabled.
func (ff *FeatureFlags) IsEnabled(name string) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	f, ok := ff.features[name]
	return ok && f.Enabled
}

// SetEnabled overrides a feature at runtime.
func (ff *FeatureFlags) SetEnabled(name string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if f, ok := ff.features[name]; ok {
		f.Enabled = enabled
	}
}

// All returns a copy of every feature sorted by name.
func (ff *FeatureFlags) All() []Feature {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	out := make([]Feature, 0, len(ff.features))
	for _, f := range ff.features {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
