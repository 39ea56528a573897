package notifications

import (
	"context"
	"time"

	"hrconsole/internal/domain/attendance"
	"hrconsole/internal/domain/core"
	"hrconsole/internal/domain/event"
	"hrconsole/internal/domain/leave"
	"hrconsole/internal/platform/db"
)

// StoreSources reads straight from the entity stores, fetching only the rows
// each kind counts.
type StoreSources struct {
	CoreStore       core.StoreAPI
	LeaveStore      leave.StoreAPI
	AttendanceStore attendance.StoreAPI
	EventStore      event.StoreAPI
}

func (s StoreSources) Employees(ctx context.Context) ([]core.Employee, error) {
	return s.CoreStore.ListEmployees(ctx, core.EmployeeFilter{Status: core.EmployeeInactive}, db.Page{})
}

func (s StoreSources) Leaves(ctx context.Context) ([]leave.LeaveRequest, error) {
	return s.LeaveStore.List(ctx, leave.ListFilter{Status: leave.StatusPending}, db.Page{})
}

func (s StoreSources) Attendance(ctx context.Context) ([]attendance.Entry, error) {
	return s.AttendanceStore.List(ctx, attendance.ListFilter{OpenOnly: true}, db.Page{})
}

func (s StoreSources) Events(ctx context.Context, now time.Time) ([]event.Event, error) {
	return s.EventStore.List(ctx, event.ListFilter{ActiveAt: &now}, db.Page{})
}
