package notifications

import (
	"fmt"
	"time"

	"hrconsole/internal/domain/attendance"
	"hrconsole/internal/domain/core"
	"hrconsole/internal/domain/event"
	"hrconsole/internal/domain/leave"
)

// Descriptor is one badge line. It is derived on every refresh and never stored.
type Descriptor struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

type Collections struct {
	Employees  []core.Employee
	Leaves     []leave.LeaveRequest
	Attendance []attendance.Entry
	Events     []event.Event
}

// Aggregate counts the records needing attention and returns one descriptor
// per non-empty kind, always in the order employees, leaves, attendance, events.
func Aggregate(c Collections, now time.Time) []Descriptor {
	var inactive, pending, open, active int
	for _, emp := range c.Employees {
		if emp.Status == core.EmployeeInactive {
			inactive++
		}
	}
	for _, req := range c.Leaves {
		if req.Status == leave.StatusPending {
			pending++
		}
	}
	for _, e := range c.Attendance {
		if attendance.ResolveStatus(e).Status == attendance.StatusWorking {
			open++
		}
	}
	for _, ev := range c.Events {
		if event.IsActive(ev, now) {
			active++
		}
	}

	out := make([]Descriptor, 0, 4)
	out = appendNonZero(out, KindEmployeesInactive, inactive, "inactive employee", "inactive employees")
	out = appendNonZero(out, KindLeavesPending, pending, "pending leave request", "pending leave requests")
	out = appendNonZero(out, KindAttendanceOpen, open, "open attendance entry", "open attendance entries")
	out = appendNonZero(out, KindEventsActive, active, "active event", "active events")
	return out
}

func Total(ds []Descriptor) int {
	total := 0
	for _, d := range ds {
		total += d.Count
	}
	return total
}

func appendNonZero(out []Descriptor, kind Kind, count int, singular, plural string) []Descriptor {
	if count == 0 {
		return out
	}
	noun := plural
	if count == 1 {
		noun = singular
	}
	return append(out, Descriptor{Kind: kind, Count: count, Message: fmt.Sprintf("%d %s", count, noun)})
}
