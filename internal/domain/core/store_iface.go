package core

import (
	"context"

	"hrconsole/internal/platform/db"
)

type StoreAPI interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter, page db.Page) ([]Employee, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) error
	DeleteEmployee(ctx context.Context, id string) error
	DisplayName(ctx context.Context, userID string) (string, error)

	ListDepartments(ctx context.Context, page db.Page) ([]Department, error)
	GetDepartment(ctx context.Context, id string) (Department, error)
	CreateDepartment(ctx context.Context, dep Department) (Department, error)
	UpdateDepartment(ctx context.Context, dep Department) error
	DepartmentHasEmployees(ctx context.Context, id string) (bool, error)
	DeleteDepartment(ctx context.Context, id string) error
}
