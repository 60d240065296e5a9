// Package metrics provides Prometheus counters for Ember engine events.
package metrics

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rolandbiro/Ember/internal/domain/shared"
)

// Metrics holds all Prometheus metrics for the engine.
type Metrics struct {
	TasksCompleted    *prometheus.CounterVec
	StardustGranted   *prometheus.CounterVec
	LevelUps          prometheus.Counter
	BadgesEarned      *prometheus.CounterVec
	StreakTransitions *prometheus.CounterVec
	DailyGenerations  prometheus.Counter
	Assessments       *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		TasksCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ember_tasks_completed_total",
				Help: "Completed daily tasks by category.",
			},
			[]string{"category"},
		),
		StardustGranted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ember_stardust_granted_total",
				Help: "Stardust credited by source.",
			},
			[]string{"source"},
		),
		LevelUps: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ember_level_ups_total",
				Help: "Level increases.",
			},
		),
		BadgesEarned: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ember_badges_earned_total",
				Help: "Badges awarded by id.",
			},
			[]string{"badge"},
		),
		StreakTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ember_streak_transitions_total",
				Help: "Streak transitions by outcome.",
			},
			[]string{"outcome"},
		),
		DailyGenerations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ember_daily_generations_total",
				Help: "Freshly generated daily task sets.",
			},
		),
		Assessments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ember_assessments_total",
				Help: "Scored questionnaires by burnout level.",
			},
			[]string{"burnout"},
		),
		registry: reg,
	}

	reg.MustRegister(m.TasksCompleted)
	reg.MustRegister(m.StardustGranted)
	reg.MustRegister(m.LevelUps)
	reg.MustRegister(m.BadgesEarned)
	reg.MustRegister(m.StreakTransitions)
	reg.MustRegister(m.DailyGenerations)
	reg.MustRegister(m.Assessments)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Subscribe wires the counters to engine events.
func (m *Metrics) Subscribe(bus shared.EventSubscriber) error {
	return bus.SubscribeAll(m.Observe)
}

// Observe updates counters for a single event. Unknown events are ignored.
func (m *Metrics) Observe(event shared.Event) error {
	switch e := event.(type) {
	case shared.TaskCompletedEvent:
		m.TasksCompleted.WithLabelValues(e.Category).Inc()
	case shared.RewardGrantedEvent:
		m.StardustGranted.WithLabelValues(e.Source).Add(float64(e.Amount))
	case shared.LevelUpEvent:
		m.LevelUps.Inc()
	case shared.BadgeEarnedEvent:
		m.BadgesEarned.WithLabelValues(e.BadgeID).Inc()
	case shared.StreakUpdatedEvent:
		m.StreakTransitions.WithLabelValues(e.Outcome).Inc()
	case shared.DailyGeneratedEvent:
		m.DailyGenerations.Inc()
	case shared.AssessmentRecordedEvent:
		m.Assessments.WithLabelValues(e.Burnout).Inc()
	}
	return nil
}

// Sample is one gathered counter value.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// String renders the sample in exposition style.
func (s Sample) String() string {
	if s.Labels == "" {
		return s.Name + " " + formatValue(s.Value)
	}
	return s.Name + "{" + s.Labels + "} " + formatValue(s.Value)
}

// Snapshot gathers all non-zero counters, sorted by name and labels.
func (m *Metrics) Snapshot() ([]Sample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}

	var out []Sample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			value := metric.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				labels = append(labels, lp.GetName()+"=\""+lp.GetValue()+"\"")
			}
			out = append(out, Sample{
				Name:   mf.GetName(),
				Labels: strings.Join(labels, ","),
				Value:  value,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
