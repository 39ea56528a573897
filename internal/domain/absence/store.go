package absence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrconsole/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

const selectAbsence = `
    SELECT id, employee_id, start_date, end_date, justified, COALESCE(reason, ''), created_by, created_at
    FROM absences`

func scanAbsence(row pgx.Row) (Absence, error) {
	var a Absence
	err := row.Scan(&a.ID, &a.EmployeeID, &a.StartDate, &a.EndDate, &a.Justified, &a.Reason, &a.CreatedBy, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Absence{}, ErrNotFound
	}
	return a, err
}

func (s *Store) List(ctx context.Context, filter ListFilter, page db.Page) ([]Absence, error) {
	query := selectAbsence + " WHERE 1 = 1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Justified != nil {
		args = append(args, *filter.Justified)
		query += fmt.Sprintf(" AND justified = $%d", len(args))
	}
	query += " ORDER BY start_date DESC, id"
	clause, pageArgs := page.Clause(len(args) + 1)
	query += clause
	args = append(args, pageArgs...)

	rows, err := db.QueryerFromContext(ctx, s.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Absence
	for rows.Next() {
		a, err := scanAbsence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Absence, error) {
	return scanAbsence(db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, selectAbsence+" WHERE id = $1", id))
}

func (s *Store) Create(ctx context.Context, a Absence) (Absence, error) {
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO absences (employee_id, start_date, end_date, justified, reason, created_by)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, a.EmployeeID, a.StartDate, a.EndDate, a.Justified, a.Reason, a.CreatedBy).Scan(&a.ID, &a.CreatedAt)
	return a, err
}

func (s *Store) Update(ctx context.Context, a Absence) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, `
    UPDATE absences
    SET employee_id = $1, start_date = $2, end_date = $3, justified = $4, reason = $5
    WHERE id = $6
  `, a.EmployeeID, a.StartDate, a.EndDate, a.Justified, a.Reason, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, "DELETE FROM absences WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
