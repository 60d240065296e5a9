// Package progression contains the Ember engine: the single entry point
// through which the profile and today's task set change.
//
// Every mutating operation works on a copy of the state, commits the copy
// with one Store.Commit and only then swaps it in and publishes events.
// A rejected or failed operation leaves the in-memory state untouched.
package progression

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rolandbiro/Ember/internal/domain/catalog"
	"github.com/rolandbiro/Ember/internal/domain/daily"
	"github.com/rolandbiro/Ember/internal/domain/progress"
	"github.com/rolandbiro/Ember/internal/domain/shared"
	"github.com/rolandbiro/Ember/pkg/logger"
	"github.com/rolandbiro/Ember/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES
// ══════════════════════════════════════════════════════════════════════════════

// Store persists the profile and today's generation record.
type Store interface {
	LoadProfile(ctx context.Context) (*progress.Profile, error)
	LoadGeneration(ctx context.Context) (*daily.Generation, error)

	// Commit writes both records atomically. A nil record is left as stored.
	Commit(ctx context.Context, profile *progress.Profile, generation *daily.Generation) error
}

// Deps contains the collaborators of the Service.
type Deps struct {
	Store   Store
	Catalog *catalog.Catalog

	// Levels defaults to catalog.DefaultLevelTable().
	Levels catalog.LevelTable

	// Badges defaults to catalog.DefaultBadges().
	Badges []catalog.BadgeDefinition

	// Clock defaults to the system clock in local time.
	Clock timeutil.Clock

	// Rand defaults to a time-seeded source.
	Rand daily.Shuffler

	// Publisher is optional.
	Publisher shared.EventPublisher

	Logger *logger.Logger
}

// ══════════════════════════════════════════════════════════════════════════════
// SERVICE
// ══════════════════════════════════════════════════════════════════════════════

// Service owns the profile and today's set. All operations are serialized.
type Service struct {
	mu sync.Mutex

	store     Store
	catalog   *catalog.Catalog
	ledger    *progress.Ledger
	evaluator *progress.Evaluator
	selector  *daily.Selector
	clock     timeutil.Clock
	publisher shared.EventPublisher
	log       *logger.Logger

	profile *progress.Profile
	today   daily.Set
	date    timeutil.Date
	// record is the last generation known to be persisted.
	record *daily.Generation
}

// NewService creates the engine. Call Start before using it.
func NewService(deps Deps) *Service {
	if deps.Catalog == nil {
		deps.Catalog = catalog.Empty()
	}
	if deps.Clock == nil {
		deps.Clock = timeutil.NewSystemClock(time.Local)
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}

	return &Service{
		store:     deps.Store,
		catalog:   deps.Catalog,
		ledger:    progress.NewLedger(deps.Levels),
		evaluator: progress.NewEvaluator(deps.Badges),
		selector:  daily.NewSelector(deps.Rand),
		clock:     deps.Clock,
		publisher: deps.Publisher,
		log:       deps.Logger.WithComponent("progression"),
		profile:   progress.NewProfile(),
	}
}

// Start loads persisted state and refreshes today's set. Read failures fall
// back to defaults so the engine stays usable.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.store.LoadProfile(ctx)
	if err != nil {
		s.log.Warn("profile unreadable, starting from defaults", logger.Err(err))
		profile = progress.NewProfile()
	}
	profile.Normalize(s.ledger.Levels())
	s.profile = profile

	record, err := s.store.LoadGeneration(ctx)
	if err != nil {
		s.log.Warn("daily generation unreadable, regenerating", logger.Err(err))
		record = nil
	}
	s.record = record

	if _, err := s.refreshLocked(ctx); err != nil {
		s.log.Warn("daily refresh failed on start", logger.Err(err))
	}
	return nil
}

// CatalogAvailable reports whether any task definitions are loaded.
func (s *Service) CatalogAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.catalog.IsEmpty()
}

// Catalog returns the current catalog.
func (s *Service) Catalog() *catalog.Catalog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// ReplaceCatalog swaps the catalog, e.g. after a successful retry, and fills
// today's set if it is empty.
func (s *Service) ReplaceCatalog(ctx context.Context, cat *catalog.Catalog) error {
	if cat == nil {
		cat = catalog.Empty()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.catalog = cat
	s.log.Info("catalog replaced", logger.String("version", cat.Version()), logger.Int("tasks", cat.Len()))

	if s.today.Len() > 0 {
		return nil
	}
	_, err := s.refreshLocked(ctx)
	return err
}

// GetProfile returns a copy of the profile.
func (s *Service) GetProfile() progress.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.profile.Clone()
}

// GetTodaysTasks returns copies of today's task instances in order.
func (s *Service) GetTodaysTasks() []daily.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.today.Instances()
}

// Summary is a read model of the profile's progress.
type Summary struct {
	Profile  progress.Profile
	Level    catalog.LevelEntry
	Next     *catalog.LevelEntry
	Progress float64
	// ToNext is the currency still missing for the next level.
	ToNext int

	Date           timeutil.Date
	CompletedToday int
	TotalToday     int
}

// Summary returns the profile with level progress and today's counts.
func (s *Service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	levels := s.ledger.Levels()
	current := levels.For(s.profile.Currency)

	sum := Summary{
		Profile:        *s.profile.Clone(),
		Level:          current,
		Progress:       levels.Progress(s.profile.Currency),
		Date:           s.date,
		CompletedToday: s.today.CompletedCount(),
		TotalToday:     s.today.Len(),
	}
	if next, ok := levels.Next(current.Level); ok {
		sum.Next = &next
		sum.ToNext = next.Required - s.profile.Currency
	}
	return sum
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// commitLocked persists the working copies and swaps them in on success.
// A nil set leaves today's set and record unchanged.
func (s *Service) commitLocked(ctx context.Context, op string, profile *progress.Profile, set *daily.Set, allDoneGranted bool, events *shared.EventCollector) error {
	var record *daily.Generation
	if set != nil {
		g := set.Generation(s.date, allDoneGranted)
		record = &g
	}

	if err := s.store.Commit(ctx, profile, record); err != nil {
		s.log.Error("commit failed", logger.Operation(op), logger.Err(err))
		return shared.WrapError("progression", op, shared.ErrPersistenceWrite, "state not saved", err)
	}

	if profile != nil {
		s.profile = profile
	}
	if set != nil {
		s.today = *set
		s.record = record
	}

	if events != nil {
		if err := events.PublishAll(s.publisher); err != nil {
			s.log.Warn("event publish failed", logger.Operation(op), logger.Err(err))
		}
	}
	return nil
}

// levelTracker remembers the highest level crossed during one operation.
type levelTracker struct {
	from    int
	highest *catalog.LevelEntry
}

func (t *levelTracker) observe(c progress.Credit) {
	if c.LevelUp == nil {
		return
	}
	if t.highest == nil || c.LevelUp.Level > t.highest.Level {
		up := *c.LevelUp
		t.highest = &up
	}
}

func (t *levelTracker) record(events *shared.EventCollector, at time.Time) {
	if t.highest == nil {
		return
	}
	events.Record(shared.LevelUpEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventLevelUp, at),
		OldLevel:  t.from,
		NewLevel:  t.highest.Level,
		Name:      t.highest.Name,
	})
}

func (s *Service) grant(p *progress.Profile, amount int, source, taskID string, levels *levelTracker, events *shared.EventCollector, at time.Time) error {
	credit, err := s.ledger.Grant(p, amount)
	if err != nil {
		return err
	}
	levels.observe(credit)
	events.Record(shared.RewardGrantedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventRewardGranted, at),
		Amount:    amount,
		NewTotal:  credit.Currency,
		Source:    source,
		TaskID:    taskID,
	})
	return nil
}

func badgeEvent(b *catalog.BadgeDefinition, at time.Time) shared.Event {
	return shared.BadgeEarnedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventBadgeEarned, at),
		BadgeID:   b.ID,
		Name:      b.Name,
	}
}
