package leave

import (
	"time"

	"hrconsole/internal/domain/auth"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRefused  Status = "refused"
)

type LeaveRequest struct {
	auth.Ownership
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       time.Time  `json:"endDate"`
	Reason        string     `json:"reason"`
	Status        Status     `json:"status"`
	RefusalReason string     `json:"refusalReason,omitempty"`
	DecidedBy     string     `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type ListFilter struct {
	EmployeeID string
	Status     Status
}

// Input is the editable part of a request.
type Input struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}
