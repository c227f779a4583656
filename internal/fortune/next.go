package fortune

import (
	"fmt"
	"time"
)

// NextReveal describes when the current bucket of a period expires.
type NextReveal struct {
	Period    Period
	Boundary  time.Time
	Remaining time.Duration
	Label     string
}

// Next computes the expiry of the bucket containing now.
func (c *Calendar) Next(period Period, now time.Time) (NextReveal, error) {
	boundary, err := c.Boundary(period, now)
	if err != nil {
		return NextReveal{}, err
	}
	return NextReveal{
		Period:    period,
		Boundary:  boundary,
		Remaining: boundary.Sub(now),
		Label:     boundaryLabel(period, c.loc.String()),
	}, nil
}

func boundaryLabel(period Period, zone string) string {
	switch period {
	case Daily:
		return fmt.Sprintf("내일 00:00 (%s)", zone)
	case Weekly:
		return fmt.Sprintf("다음 주 월요일 00:00 (%s)", zone)
	case Monthly:
		return fmt.Sprintf("다음 달 1일 00:00 (%s)", zone)
	default:
		return fmt.Sprintf("내년 1월 1일 00:00 (%s)", zone)
	}
}

// Countdown renders Remaining floored to whole minutes, switching to a day
// count once more than 24 hours are left.
func (n NextReveal) Countdown() string {
	minutes := int64(n.Remaining / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	if n.Remaining > 24*time.Hour {
		return fmt.Sprintf("%d일 %d시간 %d분 남음", minutes/(24*60), (minutes/60)%24, minutes%60)
	}
	return fmt.Sprintf("%d시간 %d분 남음", minutes/60, minutes%60)
}

// String combines the label and the countdown.
func (n NextReveal) String() string {
	return n.Label + " · " + n.Countdown()
}
