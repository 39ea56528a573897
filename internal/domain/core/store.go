package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrconsole/internal/platform/db"
)

var (
	ErrEmployeeNotFound   = errors.New("core: employee not found")
	ErrDepartmentNotFound = errors.New("core: department not found")
	ErrDepartmentInUse    = errors.New("core: department still has employees")
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

const selectEmployee = `
    SELECT id,
           COALESCE(user_id, ''),
           first_name, last_name, email,
           COALESCE(phone, ''),
           COALESCE(department_id::text, ''),
           status, created_by, created_at, updated_at
    FROM employees`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	var status string
	err := row.Scan(&emp.ID, &emp.UserID, &emp.FirstName, &emp.LastName, &emp.Email, &emp.Phone,
		&emp.DepartmentID, &status, &emp.CreatedBy, &emp.CreatedAt, &emp.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrEmployeeNotFound
	}
	emp.Status = EmployeeStatus(status)
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context, filter EmployeeFilter, page db.Page) ([]Employee, error) {
	query := selectEmployee + " WHERE 1 = 1"
	var args []any
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		query += fmt.Sprintf(" AND department_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY last_name, first_name, id"
	clause, pageArgs := page.Clause(len(args) + 1)
	query += clause
	args = append(args, pageArgs...)

	rows, err := db.QueryerFromContext(ctx, s.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return scanEmployee(db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, selectEmployee+" WHERE id = $1", id))
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO employees (user_id, first_name, last_name, email, phone, department_id, status, created_by)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id, created_at, updated_at
  `,
		nullIfEmpty(emp.UserID), emp.FirstName, emp.LastName, emp.Email, nullIfEmpty(emp.Phone),
		nullIfEmpty(emp.DepartmentID), string(emp.Status), emp.CreatedBy,
	).Scan(&emp.ID, &emp.CreatedAt, &emp.UpdatedAt)
	return emp, err
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	cmd, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, `
    UPDATE employees
    SET user_id = $1,
        first_name = $2,
        last_name = $3,
        email = $4,
        phone = $5,
        department_id = $6,
        status = $7,
        updated_at = now()
    WHERE id = $8
  `,
		nullIfEmpty(emp.UserID), emp.FirstName, emp.LastName, emp.Email, nullIfEmpty(emp.Phone),
		nullIfEmpty(emp.DepartmentID), string(emp.Status), emp.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	cmd, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// DisplayName resolves a user id to the name of the employee linked to it.
func (s *Store) DisplayName(ctx context.Context, userID string) (string, error) {
	var first, last string
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    SELECT first_name, last_name
    FROM employees
    WHERE user_id = $1
    ORDER BY created_at
    LIMIT 1
  `, userID).Scan(&first, &last)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEmployeeNotFound
	}
	if err != nil {
		return "", err
	}
	return joinName(first, last), nil
}

func (s *Store) ListDepartments(ctx context.Context, page db.Page) ([]Department, error) {
	clause, args := page.Clause(1)
	rows, err := db.QueryerFromContext(ctx, s.DB).Query(ctx, `
    SELECT id, name, COALESCE(manager_id::text, ''), created_by, created_at
    FROM departments
    ORDER BY name, id`+clause, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Department
	for rows.Next() {
		var dep Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.ManagerID, &dep.CreatedBy, &dep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) GetDepartment(ctx context.Context, id string) (Department, error) {
	var dep Department
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    SELECT id, name, COALESCE(manager_id::text, ''), created_by, created_at
    FROM departments
    WHERE id = $1
  `, id).Scan(&dep.ID, &dep.Name, &dep.ManagerID, &dep.CreatedBy, &dep.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Department{}, ErrDepartmentNotFound
	}
	return dep, err
}

func (s *Store) CreateDepartment(ctx context.Context, dep Department) (Department, error) {
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO departments (name, manager_id, created_by)
    VALUES ($1,$2,$3)
    RETURNING id, created_at
  `, dep.Name, nullIfEmpty(dep.ManagerID), dep.CreatedBy).Scan(&dep.ID, &dep.CreatedAt)
	return dep, err
}

func (s *Store) UpdateDepartment(ctx context.Context, dep Department) error {
	cmd, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, `
    UPDATE departments SET name = $1, manager_id = $2 WHERE id = $3
  `, dep.Name, nullIfEmpty(dep.ManagerID), dep.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func (s *Store) DepartmentHasEmployees(ctx context.Context, id string) (bool, error) {
	var count int
	if err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE department_id = $1", id).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id string) error {
	cmd, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDepartmentNotFound
	}
	return nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
