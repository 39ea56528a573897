package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusOngoing  Status = "ongoing"
	StatusPast     Status = "past"
)

var (
	ErrNotFound      = errors.New("event: not found")
	ErrInvalidWindow = errors.New("event: start must be before end")
)

type Duration struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// NewDuration breaks d down into whole days, hours and minutes. Seconds are
// dropped and negative spans collapse to zero.
func NewDuration(d time.Duration) Duration {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Minute)
	return Duration{Days: total / (24 * 60), Hours: total / 60 % 24, Minutes: total % 60}
}

// String renders "1d 2h 30m", omitting zero parts; an empty span is "0m".
func (d Duration) String() string {
	var parts []string
	if d.Days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", d.Days))
	}
	if d.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", d.Hours))
	}
	if d.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", d.Minutes))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}

type Resolution struct {
	Status   Status   `json:"status"`
	Duration Duration `json:"duration"`
}

// ResolveStatus places now against the event window. Both boundaries belong
// to ongoing.
func ResolveStatus(ev Event, now time.Time) Resolution {
	res := Resolution{Duration: NewDuration(ev.EndDateTime.Sub(ev.StartDateTime))}
	switch {
	case now.Before(ev.StartDateTime):
		res.Status = StatusUpcoming
	case now.After(ev.EndDateTime):
		res.Status = StatusPast
	default:
		res.Status = StatusOngoing
	}
	return res
}

// IsActive reports whether the event is upcoming or ongoing.
func IsActive(ev Event, now time.Time) bool {
	return !ev.EndDateTime.Before(now)
}

func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidWindow
	}
	return nil
}
