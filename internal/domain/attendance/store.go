package attendance

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

const selectEntry = `
    SELECT id, employee_id, work_date, entry_time, exit_time, created_by, created_at
    FROM attendance_entries`

func scanEntry(row pgx.Row) (Entry, error) {
	var e Entry
	err := row.Scan(&e.ID, &e.EmployeeID, &e.Date, &e.EntryTime, &e.ExitTime, &e.CreatedBy, &e.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

func (s *Store) List(ctx context.Context, filter ListFilter, page db.Page) ([]Entry, error) {
	query := selectEntry + " WHERE 1 = 1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.OpenOnly {
		query += " AND exit_time IS NULL"
	}
	query += " ORDER BY entry_time DESC, id"
	clause, pageArgs := page.Clause(len(args) + 1)
	query += clause
	args = append(args, pageArgs...)

	rows, err := db.QueryerFromContext(ctx, s.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	return scanEntry(db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, selectEntry+" WHERE id = $1", id))
}

func (s *Store) Create(ctx context.Context, e Entry) (Entry, error) {
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO attendance_entries (employee_id, work_date, entry_time, created_by)
    VALUES ($1,$2,$3,$4)
    RETURNING id, created_at
  `, e.EmployeeID, e.Date, e.EntryTime, e.CreatedBy).Scan(&e.ID, &e.CreatedAt)
	return e, err
}

// SaveExit only closes entries that are still open.
func (s *Store) SaveExit(ctx context.Context, e Entry) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, `
    UPDATE attendance_entries SET exit_time = $1 WHERE id = $2 AND exit_time IS NULL
  `, e.ExitTime, e.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyClosed
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, "DELETE FROM attendance_entries WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
