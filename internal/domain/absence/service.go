package absence

import (
	"context"
	"log/slog"
	"strings"

	"hrconsole/internal/domain/audit"
	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/refresh"
	"hrconsole/internal/platform/db"
)

const entityType = "absence"

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

func (s *Service) List(ctx context.Context, filter ListFilter, page db.Page) ([]Absence, error) {
	return s.Store.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id string) (Absence, error) {
	return s.Store.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, actor *auth.Actor, in Input) (Absence, error) {
	if actor == nil {
		return Absence{}, auth.ErrUnauthenticated
	}
	if err := ValidateRange(in.StartDate, in.EndDate); err != nil {
		return Absence{}, err
	}
	a := Absence{Ownership: auth.Ownership{CreatedBy: actor.ID}}
	apply(&a, in)
	created, err := s.Store.Create(ctx, a)
	if err != nil {
		return Absence{}, err
	}
	s.record(ctx, actor, "absence.create", created.ID, nil, created)
	s.Bus.Publish("absence.create")
	return created, nil
}

func (s *Service) Update(ctx context.Context, actor *auth.Actor, id string, in Input) (Absence, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return Absence{}, err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return Absence{}, err
	}
	if err := ValidateRange(in.StartDate, in.EndDate); err != nil {
		return Absence{}, err
	}
	next := current
	apply(&next, in)
	if err := s.Store.Update(ctx, next); err != nil {
		return Absence{}, err
	}
	s.record(ctx, actor, "absence.update", id, current, next)
	s.Bus.Publish("absence.update")
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
	s.record(ctx, actor, "absence.delete", id, current, nil)
	s.Bus.Publish("absence.delete")
	return nil
}

func apply(a *Absence, in Input) {
	a.EmployeeID = in.EmployeeID
	a.StartDate = in.StartDate
	a.EndDate = in.EndDate
	a.Justified = in.Justified
	a.Reason = strings.TrimSpace(in.Reason)
}

func (s *Service) record(ctx context.Context, actor *auth.Actor, action, id string, before, after any) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, actor.ID, action, entityType, id, before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
