package attendance

import (
	"errors"
	"time"

	"hrconsole/internal/domain/auth"
)

type Status string

const (
	StatusWorking  Status = "working"
	StatusComplete Status = "complete"
)

var (
	ErrNotFound        = errors.New("attendance: entry not found")
	ErrForbidden       = auth.ErrForbidden
	ErrAlreadyClosed   = errors.New("attendance: exit already recorded")
	ErrExitBeforeEntry = errors.New("attendance: exit must be after entry")
)

type Resolution struct {
	Status Status `json:"status"`
}

func ResolveStatus(e Entry) Resolution {
	if e.ExitTime == nil {
		return Resolution{Status: StatusWorking}
	}
	return Resolution{Status: StatusComplete}
}

// RecordExit closes an open entry. An exit at or before the entry time is
// rejected, never clamped.
func RecordExit(e Entry, actor *auth.Actor, at time.Time) (Entry, error) {
	if err := auth.RequireMutate(actor, e); err != nil {
		return e, err
	}
	if e.ExitTime != nil {
		return e, ErrAlreadyClosed
	}
	if !at.After(e.EntryTime) {
		return e, ErrExitBeforeEntry
	}
	out := e
	exit := at
	out.ExitTime = &exit
	return out, nil
}

// WorkedDuration is exit minus entry; zero for an open entry.
func WorkedDuration(e Entry) time.Duration {
	if e.ExitTime == nil {
		return 0
	}
	return e.ExitTime.Sub(e.EntryTime)
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
