package event

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"hrconsole/internal/domain/audit"
	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/refresh"
	"hrconsole/internal/platform/db"
)

const entityType = "event"

var ErrTitleRequired = errors.New("event: title is required")

type Service struct {
	Store StoreAPI
	Audit audit.Recorder
	Bus   refresh.Publisher
}

func NewService(store StoreAPI, auditSvc audit.Recorder, bus refresh.Publisher) *Service {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Service{Store: store, Audit: auditSvc, Bus: bus}
}

func (s *Service) List(ctx context.Context, filter ListFilter, page db.Page) ([]Event, error) {
	return s.Store.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id string) (Event, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *auth.Actor, in Input) (Event, error) {
	if actor == nil {
		return Event{}, auth.ErrUnauthenticated
	}
	if err := validate(in); err != nil {
		return Event{}, err
	}
	ev := Event{Ownership: auth.Ownership{CreatedBy: actor.ID}}
	apply(&ev, in)
	created, err := s.Store.Create(ctx, ev)
	if err != nil {
		return Event{}, err
	}
	s.record(ctx, actor, "event.create", created.ID, nil, created)
	s.Bus.Publish("event.create")
	return created, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.Actor, id string, in Input) (Event, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return Event{}, err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return Event{}, err
	}
	if err := validate(in); err != nil {
		return Event{}, err
	}
	next := current
	apply(&next, in)
	if err := s.Store.Update(ctx, next); err != nil {
		return Event{}, err
	}
	s.record(ctx, actor, "event.update", id, current, next)
	s.Bus.Publish("event.update")
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
	s.record(ctx, actor, "event.delete", id, current, nil)
	s.Bus.Publish("event.delete")
	return nil
}

func validate(in Input) error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	return ValidateWindow(in.StartDateTime, in.EndDateTime)
}

func apply(ev *Event, in Input) {
	ev.Title = strings.TrimSpace(in.Title)
	ev.Description = strings.TrimSpace(in.Description)
	ev.StartDateTime = in.StartDateTime
	ev.EndDateTime = in.EndDateTime
}

func (s *Service) record(ctx context.Context, actor *auth.Actor, action, id string, before, after any) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, actor.ID, action, entityType, id, before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
