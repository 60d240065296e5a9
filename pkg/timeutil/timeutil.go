// Package timeutil provides calendar utilities for Ember.
// All day arithmetic is done on civil dates in an explicit location, so
// streaks and daily generations never depend on the process time zone.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// Clock is the injectable time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock and reports it in Location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a clock for the given location (nil means Local).
func NewSystemClock(loc *time.Location) SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return SystemClock{Location: loc}
}

// Now returns the current time in the clock's location.
func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// FixedClock always returns the same instant until moved. Used in tests.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedClock creates a clock frozen at t.
func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{now: t}
}

// Now returns the frozen instant.
func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d.
func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// AdvanceDays moves the clock forward by n calendar days, keeping wall time.
func (c *FixedClock) AdvanceDays(n int) {
	c.mu.Lock()
	c.now = c.now.AddDate(0, 0, n)
	c.mu.Unlock()
}

// ══════════════════════════════════════════════════════════════════════════════
// DATE (civil calendar date)
// ══════════════════════════════════════════════════════════════════════════════

// FormatDate is the standard date format (YYYY-MM-DD).
const FormatDate = "2006-01-02"

// Date is a calendar day without time of day or location.
// The zero value means "no date".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// NewDate builds a normalized date (month/day overflow is carried).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(FormatDate, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// In returns local midnight of the date in loc.
func (d Date) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// DaysUntil returns the signed number of calendar days from d to other.
// Computed in UTC so DST transitions never produce 23 or 25 hour days.
func (d Date) DaysUntil(other Date) int {
	a := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	b := time.Date(other.Year, other.Month, other.Day, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.DaysUntil(other) > 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.DaysUntil(other) < 0 }

// Equal reports whether both dates name the same day.
func (d Date) Equal(other Date) bool { return d == other }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DAY HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// StartOfDay returns local midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	return DateOf(t).In(t.Location())
}

// EndOfDay returns the last nanosecond of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// IsSameDay checks if two times fall on the same calendar day in loc.
func IsSameDay(t1, t2 time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	return DateOf(t1.In(loc)) == DateOf(t2.In(loc))
}

// DaysBetween returns the number of local midnights crossed from t1 to t2
// in loc. A t2 earlier than t1 yields 0.
func DaysBetween(t1, t2 time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	days := DateOf(t1.In(loc)).DaysUntil(DateOf(t2.In(loc)))
	if days < 0 {
		return 0
	}
	return days
}

// WeekKey returns the ISO-8601 week identifier of t, e.g. "2026-W42".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// LoadLocation resolves an IANA zone name. Empty means Local.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

// FormatTime is the wall-clock format used for reminder times (HH:MM).
const FormatTime = "15:04"

// ValidClockTime reports whether s is a HH:MM wall-clock time.
func ValidClockTime(s string) bool {
	_, err := time.Parse(FormatTime, s)
	return err == nil
}
