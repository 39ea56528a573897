package attendance

import (
	"context"
	"log/slog"
	"time"

	"hrconsole/internal/domain/audit"
	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/refresh"
	"hrconsole/internal/platform/db"
)

const entityType = "attendance_entry"

type Service struct {
	Store StoreAPI
	Audit audit.Recorder
	Bus   refresh.Publisher
	Now   func() time.Time
}

func NewService(store StoreAPI, auditSvc audit.Recorder, bus refresh.Publisher) *Service {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Service{Store: store, Audit: auditSvc, Bus: bus, Now: time.Now}
}

func (s *Service) List(ctx context.Context, filter ListFilter, page db.Page) ([]Entry, error) {
	return s.Store.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	return s.Store.Get(ctx, id)
}

// Create clocks in. A zero EntryTime means now.
func (s *Service) Create(ctx context.Context, actor *auth.Actor, in Input) (Entry, error) {
	if actor == nil {
		return Entry{}, auth.ErrUnauthenticated
	}
	at := in.EntryTime
	if at.IsZero() {
		at = s.Now().UTC()
	}
	e := Entry{
		Ownership:  auth.Ownership{CreatedBy: actor.ID},
		EmployeeID: in.EmployeeID,
		Date:       dateOf(at),
		EntryTime:  at,
	}
	created, err := s.Store.Create(ctx, e)
	if err != nil {
		return Entry{}, err
	}
	s.record(ctx, actor, "attendance.create", created.ID, nil, created)
	s.Bus.Publish("attendance.create")
	return created, nil
}

// RecordExit closes the entry at the given time, or now when at is zero.
func (s *Service) RecordExit(ctx context.Context, actor *auth.Actor, id string, at time.Time) (Entry, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if at.IsZero() {
		at = s.Now().UTC()
	}
	next, err := RecordExit(current, actor, at)
	if err != nil {
		return current, err
	}
	if err := s.Store.SaveExit(ctx, next); err != nil {
		return current, err
	}
	s.record(ctx, actor, "attendance.exit", id, map[string]any{"exitTime": nil}, map[string]any{"exitTime": next.ExitTime})
	s.Bus.Publish("attendance.exit")
	return next, nil
}

func (s *Service) Delete(ctx context.Context, actor *auth.Actor, id string) error {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "attendance.delete", id, current, nil)
	s.Bus.Publish("attendance.delete")
	return nil
}

func (s *Service) record(ctx context.Context, actor *auth.Actor, action, id string, before, after any) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, actor.ID, action, entityType, id, before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
