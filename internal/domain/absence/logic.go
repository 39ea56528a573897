package absence

import (
	"errors"
	"fmt"
	"time"
)

// LongThresholdDays is the length above which an absence is flagged as long.
const LongThresholdDays = 7

var (
	ErrNotFound     = errors.New("absence: not found")
	ErrInvalidRange = errors.New("absence: end date before start date")
)

// InvalidRangeError carries the offending dates. It matches ErrInvalidRange.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("absence: end date %s is before start date %s", e.End.Format(time.DateOnly), e.Start.Format(time.DateOnly))
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

type Duration struct {
	Days         int  `json:"durationDays"`
	LongDuration bool `json:"longDuration"`
}

// ResolveDuration counts whole calendar days, both ends included. Time of day
// is ignored and dates are read in the start date's location.
func ResolveDuration(a Absence) (Duration, error) {
	days, err := calendarDays(a.StartDate, a.EndDate)
	if err != nil {
		return Duration{}, err
	}
	return Duration{Days: days, LongDuration: days > LongThresholdDays}, nil
}

// ValidateRange is the write-time check for a start/end pair.
func ValidateRange(start, end time.Time) error {
	_, err := calendarDays(start, end)
	return err
}

func calendarDays(start, end time.Time) (int, error) {
	s := dateOf(start, start.Location())
	e := dateOf(end, start.Location())
	if e.Before(s) {
		return 0, &InvalidRangeError{Start: start, End: end}
	}
	days := int(e.Sub(s).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days, nil
}

// dateOf maps t to midnight UTC of its calendar date in loc, so that day
// arithmetic never crosses a DST shift.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
