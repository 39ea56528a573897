package absence

import (
	"time"

	"hrconsole/internal/domain/auth"
)

type Absence struct {
	auth.Ownership
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Justified  bool      `json:"justified"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ListFilter struct {
	EmployeeID string
	Justified  *bool
}

type Input struct {
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	Justified  bool
	Reason     string
}
