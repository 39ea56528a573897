package notifications

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"hrconsole/internal/domain/attendance"
	"hrconsole/internal/domain/core"
	"hrconsole/internal/domain/event"
	"hrconsole/internal/domain/leave"
	"hrconsole/internal/platform/metrics"
)

// Sources fetches the collections the aggregate reads. Implementations may
// pre-filter; Aggregate re-applies every predicate.
type Sources interface {
	Employees(ctx context.Context) ([]core.Employee, error)
	Leaves(ctx context.Context) ([]leave.LeaveRequest, error)
	Attendance(ctx context.Context) ([]attendance.Entry, error)
	Events(ctx context.Context, now time.Time) ([]event.Event, error)
}

type Clock func() time.Time

type Summary struct {
	Items       []Descriptor `json:"items"`
	Total       int          `json:"total"`
	Degraded    []string     `json:"degraded,omitempty"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

type Service struct {
	Sources Sources
	Metrics *metrics.Collector
	Clock   Clock
}

func New(sources Sources, collector *metrics.Collector) *Service {
	return &Service{Sources: sources, Metrics: collector, Clock: time.Now}
}

// Refresh fetches the four collections concurrently and aggregates them once
// all have answered. A failed fetch counts as an empty collection.
func (s *Service) Refresh(ctx context.Context) Summary {
	now := s.Clock()
	var (
		c      Collections
		failed [4]bool
	)

	// Fetch errors are absorbed, so the group never cancels a sibling.
	var g errgroup.Group
	g.Go(func() error {
		items, err := s.Sources.Employees(ctx)
		c.Employees, failed[0] = items, degrade(CategoryEmployees, err)
		return nil
	})
	g.Go(func() error {
		items, err := s.Sources.Leaves(ctx)
		c.Leaves, failed[1] = items, degrade(CategoryLeaves, err)
		return nil
	})
	g.Go(func() error {
		items, err := s.Sources.Attendance(ctx)
		c.Attendance, failed[2] = items, degrade(CategoryAttendance, err)
		return nil
	})
	g.Go(func() error {
		items, err := s.Sources.Events(ctx, now)
		c.Events, failed[3] = items, degrade(CategoryEvents, err)
		return nil
	})
	_ = g.Wait()

	var degraded []string
	for i, category := range []string{CategoryEmployees, CategoryLeaves, CategoryAttendance, CategoryEvents} {
		if failed[i] {
			degraded = append(degraded, category)
		}
	}
	if failed[0] {
		c.Employees = nil
	}
	if failed[1] {
		c.Leaves = nil
	}
	if failed[2] {
		c.Attendance = nil
	}
	if failed[3] {
		c.Events = nil
	}

	items := Aggregate(c, now)
	s.Metrics.RecordRefresh(degraded)
	return Summary{Items: items, Total: Total(items), Degraded: degraded, GeneratedAt: now}
}

func degrade(category string, err error) bool {
	if err == nil {
		return false
	}
	slog.Warn("notification fetch failed", "category", category, "err", err)
	return true
}
