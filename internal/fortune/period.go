package fortune

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// Period is the granularity at which a new fortune becomes available.
type Period string

const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// Periods lists every period in display order.
var Periods = []Period{Daily, Weekly, Monthly, Yearly}

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// ParsePeriod converts user or wire input into a Period.
func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

// ReferenceZone is the civil timezone every bucket is computed in.
const ReferenceZone = "Asia/Seoul"

// Calendar buckets instants into period keys in a fixed location, never the
// host's local zone.
type Calendar struct {
	loc *time.Location
}

// NewCalendar returns a Calendar anchored to loc.
func NewCalendar(loc *time.Location) *Calendar {
	return &Calendar{loc: loc}
}

// LoadCalendar resolves an IANA zone name and returns a Calendar for it.
func LoadCalendar(name string) (*Calendar, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return NewCalendar(loc), nil
}

// DefaultCalendar returns the Asia/Seoul calendar. Seoul has had no DST since
// 1988, so a fixed +09:00 zone is an exact stand-in if tzdata is unavailable.
func DefaultCalendar() *Calendar {
	c, err := LoadCalendar(ReferenceZone)
	if err != nil {
		return NewCalendar(time.FixedZone("KST", 9*60*60))
	}
	return c
}

// Location returns the reference location.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Key returns the bucket key of the period instance containing now.
//
//	daily   2006-01-02
//	weekly  2006-W01-02  (civil date of the Monday starting the week)
//	monthly 2006-01
//	yearly  2006
func (c *Calendar) Key(period Period, now time.Time) (string, error) {
	start, err := c.Start(period, now)
	if err != nil {
		return "", err
	}
	switch period {
	case Daily:
		return start.Format(time.DateOnly), nil
	case Weekly:
		return fmt.Sprintf("%04d-W%02d-%02d", start.Year(), int(start.Month()), start.Day()), nil
	case Monthly:
		return start.Format("2006-01"), nil
	default:
		return start.Format("2006"), nil
	}
}

// Start returns the reference-zone midnight at which the bucket containing now began.
func (c *Calendar) Start(period Period, now time.Time) (time.Time, error) {
	t := now.In(c.loc)
	y, m, d := t.Date()
	switch period {
	case Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, c.loc), nil
	case Weekly:
		return time.Date(y, m, d+mondayOffset(t.Weekday()), 0, 0, 0, 0, c.loc), nil
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, c.loc), nil
	case Yearly:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, c.loc), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
}

// Boundary returns the instant the bucket containing now expires, which is
// also the start of the next bucket.
func (c *Calendar) Boundary(period Period, now time.Time) (time.Time, error) {
	start, err := c.Start(period, now)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := start.Date()
	switch period {
	case Daily:
		return time.Date(y, m, d+1, 0, 0, 0, 0, c.loc), nil
	case Weekly:
		return time.Date(y, m, d+7, 0, 0, 0, 0, c.loc), nil
	case Monthly:
		return time.Date(y, m+1, 1, 0, 0, 0, 0, c.loc), nil
	default:
		return time.Date(y+1, time.January, 1, 0, 0, 0, 0, c.loc), nil
	}
}

// mondayOffset is the day delta from a weekday back to the Monday on or before it.
func mondayOffset(wd time.Weekday) int {
	if wd == time.Sunday {
		return -6
	}
	return int(time.Monday - wd)
}
