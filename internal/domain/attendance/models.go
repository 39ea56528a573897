package attendance

import (
	"time"

	"hrconsole/internal/domain/auth"
)

type Entry struct {
	auth.Ownership
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	Date       time.Time  `json:"date"`
	EntryTime  time.Time  `json:"entryTime"`
	ExitTime   *time.Time `json:"exitTime,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type ListFilter struct {
	EmployeeID string
	OpenOnly   bool
}

type Input struct {
	EmployeeID string
	EntryTime  time.Time
}
