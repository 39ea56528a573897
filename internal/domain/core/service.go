package core

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

var (
	ErrNameRequired  = errors.New("core: name is required")
	ErrInvalidStatus = errors.New("core: status must be active or inactive")
)

// Transactor runs fn in a transaction that stores pick up from ctx.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(context.Context) error) error
}

type Service struct {
	Store StoreAPI
	Audit audit.Recorder
	Bus   refresh.Publisher
	Tx    Transactor
}

func NewService(store StoreAPI, auditSvc audit.Recorder, bus refresh.Publisher) *Service {
	if bus == nil {
		bus = refresh.Nop{}
	}
	return &Service{Store: store, Audit: auditSvc, Bus: bus}
}

func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter, page db.Page) ([]Employee, error) {
	return s.Store.ListEmployees(ctx, filter, page)
}

func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.Store.GetEmployee(ctx, id)
}

// DisplayName satisfies auth.NameLookup.
func (s *Service) DisplayName(ctx context.Context, userID string) (string, error) {
	return s.Store.DisplayName(ctx, userID)
}

func (s *Service) CreateEmployee(ctx context.Context, actor *auth.Actor, in EmployeeInput) (Employee, error) {
	if actor == nil {
		return Employee{}, auth.ErrUnauthenticated
	}
	in, err := normalizeEmployee(in)
	if err != nil {
		return Employee{}, err
	}
	emp := Employee{Ownership: auth.Ownership{CreatedBy: actor.ID}}
	applyEmployee(&emp, in)
	created, err := s.Store.CreateEmployee(ctx, emp)
	if err != nil {
		return Employee{}, err
	}
	s.record(ctx, actor, "employee.create", "employee", created.ID, nil, created)
	s.Bus.Publish("employee.create")
	return created, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, actor *auth.Actor, id string, in EmployeeInput) (Employee, error) {
	current, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return Employee{}, err
	}
	in, err = normalizeEmployee(in)
	if err != nil {
		return Employee{}, err
	}
	next := current
	applyEmployee(&next, in)
	if err := s.Store.UpdateEmployee(ctx, next); err != nil {
		return Employee{}, err
	}
	s.record(ctx, actor, "employee.update", "employee", id, current, next)
	s.Bus.Publish("employee.update")
	return next, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, actor *auth.Actor, id string) error {
	current, err := s.Store.GetEmployee(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return err
	}
	if err := s.Store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actor, "employee.delete", "employee", id, current, nil)
	s.Bus.Publish("employee.delete")
	return nil
}

func (s *Service) ListDepartments(ctx context.Context, page db.Page) ([]Department, error) {
	return s.Store.ListDepartments(ctx, page)
}

func (s *Service) CreateDepartment(ctx context.Context, actor *auth.Actor, in DepartmentInput) (Department, error) {
	if actor == nil {
		return Department{}, auth.ErrUnauthenticated
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Department{}, ErrNameRequired
	}
	dep := Department{Ownership: auth.Ownership{CreatedBy: actor.ID}, Name: name, ManagerID: strings.TrimSpace(in.ManagerID)}
	created, err := s.Store.CreateDepartment(ctx, dep)
	if err != nil {
		return Department{}, err
	}
	s.record(ctx, actor, "department.create", "department", created.ID, nil, created)
	return created, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, actor *auth.Actor, id string, in DepartmentInput) (Department, error) {
	current, err := s.Store.GetDepartment(ctx, id)
	if err != nil {
		return Department{}, err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return Department{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Department{}, ErrNameRequired
	}
	next := current
	next.Name = name
	next.ManagerID = strings.TrimSpace(in.ManagerID)
	if err := s.Store.UpdateDepartment(ctx, next); err != nil {
		return Department{}, err
	}
	s.record(ctx, actor, "department.update", "department", id, current, next)
	return next, nil
}

func (s *Service) DeleteDepartment(ctx context.Context, actor *auth.Actor, id string) error {
	current, err := s.Store.GetDepartment(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.RequireMutate(actor, current); err != nil {
		return err
	}
	return s.withinTx(ctx, func(ctx context.Context) error {
		inUse, err := s.Store.DepartmentHasEmployees(ctx, id)
		if err != nil {
			return err
		}
		if inUse {
			return ErrDepartmentInUse
		}
		if err := s.Store.DeleteDepartment(ctx, id); err != nil {
			return err
		}
		s.record(ctx, actor, "department.delete", "department", id, current, nil)
		return nil
	})
}

func (s *Service) withinTx(ctx context.Context, fn func(context.Context) error) error {
	if s.Tx == nil {
		return fn(ctx)
	}
	return s.Tx.WithinTx(ctx, fn)
}

func normalizeEmployee(in EmployeeInput) (EmployeeInput, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	if in.FirstName == "" || in.LastName == "" {
		return in, ErrNameRequired
	}
	switch in.Status {
	case "":
		in.Status = EmployeeActive
	case EmployeeActive, EmployeeInactive:
	default:
		return in, ErrInvalidStatus
	}
	return in, nil
}

func applyEmployee(emp *Employee, in EmployeeInput) {
	emp.UserID = strings.TrimSpace(in.UserID)
	emp.FirstName = in.FirstName
	emp.LastName = in.LastName
	emp.Email = in.Email
	emp.Phone = strings.TrimSpace(in.Phone)
	emp.DepartmentID = strings.TrimSpace(in.DepartmentID)
	emp.Status = in.Status
}

func (s *Service) record(ctx context.Context, actor *auth.Actor, action, entity, id string, before, after any) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.Record(ctx, actor.ID, action, entity, id, before, after); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
