package leave

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"hrconsole/internal/domain/audit"
	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/refresh"
	"hrconsole/internal/platform/db"
)

const entityType = "leave_request"

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

func (s *Service) List(ctx context.Context, filter ListFilter, page db.Page) ([]LeaveRequest, error) {
	return s.Store.List(ctx, filter, page)
}

func (s *Service) Get(ctx context.Context, id string) (LeaveRequest, error) {
	return s.Store.Get(ctx, id)
}

// Create stores a new pending request owned by the actor.
func (s *Service) Create(ctx context.Context, actor *auth.Actor, in Input) (LeaveRequest, error) {
	if actor == nil {
		return LeaveRequest{}, auth.ErrUnauthenticated
	}
	if _, err := CalculateDays(in.StartDate, in.EndDate); err != nil {
		return LeaveRequest{}, err
	}
	req := LeaveRequest{
		Ownership:  auth.Ownership{CreatedBy: actor.ID},
		EmployeeID: in.EmployeeID,
		StartDate:  in.StartDate,
		EndDate:    in.EndDate,
		Reason:     strings.TrimSpace(in.Reason),
		Status:     StatusPending,
	}
	created, err := s.Store.Create(ctx, req)
	if err != nil {
		return LeaveRequest{}, err
	}
	s.record(ctx, actor, "leave.request.create", created.ID, nil, created)
	s.Bus.Publish("leave.create")
	return created, nil
}

// Update edits a pending request. Ownership is checked before state.
func (s *Service) Update(ctx context.Context, actor *auth.Actor, id string, in Input) (LeaveRequest, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return LeaveRequest{}, err
	}
	if current.Status != StatusPending {
		return LeaveRequest{}, ErrInvalidState
	}
	if _, err := CalculateDays(in.StartDate, in.EndDate); err != nil {
		return LeaveRequest{}, err
	}
	next := current
	next.EmployeeID = in.EmployeeID
	next.StartDate = in.StartDate
	next.EndDate = in.EndDate
	next.Reason = strings.TrimSpace(in.Reason)
	if err := s.Store.Update(ctx, next); err != nil {
		return LeaveRequest{}, err
	}
	s.record(ctx, actor, "leave.request.update", id, current, next)
	s.Bus.Publish("leave.update")
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
	s.record(ctx, actor, "leave.request.delete", id, current, nil)
	s.Bus.Publish("leave.delete")
	return nil
}

func (s *Service) Approve(ctx context.Context, actor *auth.Actor, id string) (LeaveRequest, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	next, err := Approve(current, actor, s.Now().UTC())
	if err != nil {
		return current, err
	}
	return s.saveDecision(ctx, actor, "leave.request.approve", current, next)
}

func (s *Service) Refuse(ctx context.Context, actor *auth.Actor, id, reason string) (LeaveRequest, error) {
	current, err := s.Store.Get(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}
	next, err := Refuse(current, actor, reason, s.Now().UTC())
	if err != nil {
		return current, err
	}
	return s.saveDecision(ctx, actor, "leave.request.refuse", current, next)
}

func (s *Service) saveDecision(ctx context.Context, actor *auth.Actor, action string, current, next LeaveRequest) (LeaveRequest, error) {
	if err := s.Store.SaveDecision(ctx, next); err != nil {
		return current, err
	}
	s.record(ctx, actor, action, next.ID, map[string]any{"status": current.Status}, map[string]any{
		"status":        next.Status,
		"refusalReason": next.RefusalReason,
	})
	s.Bus.Publish(action)
	return next, nil
}

func (s *Service) record(ctx context.Context, actor *auth.Actor, action, id string, before, after any) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, actor.ID, action, entityType, id, before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
