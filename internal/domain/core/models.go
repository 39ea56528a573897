package core

import (
	"time"

	"hrconsole/internal/domain/auth"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
)

type Employee struct {
	auth.Ownership
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	DepartmentID string         `json:"departmentId"`
	Status       EmployeeStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (e Employee) DisplayName() string {
	return joinName(e.FirstName, e.LastName)
}

type Department struct {
	auth.Ownership
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ManagerID string    `json:"managerId"`
	CreatedAt time.Time `json:"createdAt"`
}

type EmployeeFilter struct {
	DepartmentID string
	Status       EmployeeStatus
}

type EmployeeInput struct {
	UserID       string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	DepartmentID string
	Status       EmployeeStatus
}

type DepartmentInput struct {
	Name      string
	ManagerID string
}
