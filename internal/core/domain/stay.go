package domain

import (
	"time"
)

const DateLayout = "2006-01-02"

// StayWindow is a pair of calendar dates. Both ends are normalised to
// midnight UTC so night counts never depend on the caller's time zone.
type StayWindow struct {
	Start time.Time
	End   time.Time
}

func NewStayWindow(start, end time.Time) (StayWindow, error) {
	w := StayWindow{Start: truncateDate(start), End: truncateDate(end)}
	if w.End.Before(w.Start) {
		return StayWindow{}, NewValidationError("end_date", "end date must not be before start date")
	}
	return w, nil
}

func ParseStayWindow(start, end string) (StayWindow, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return StayWindow{}, NewValidationError("start_date", "must be a YYYY-MM-DD date")
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return StayWindow{}, NewValidationError("end_date", "must be a YYYY-MM-DD date")
	}
	return NewStayWindow(s, e)
}

const secondsPerDay = 24 * 60 * 60

// Nights is end minus start in days, with a same-day stay counting as one
// night. Both ends sit on UTC midnight, so the Unix difference is an exact
// multiple of a day for any span.
func (w StayWindow) Nights() int {
	n := int((w.End.Unix() - w.Start.Unix()) / secondsPerDay)
	if n < 1 {
		return 1
	}
	return n
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
