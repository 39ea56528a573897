package event

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

const selectEvent = `
    SELECT id, title, COALESCE(description, ''), start_at, end_at, created_by, created_at
    FROM events`

func scanEvent(row pgx.Row) (Event, error) {
	var ev Event
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.StartDateTime, &ev.EndDateTime, &ev.CreatedBy, &ev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	return ev, err
}

func (s *Store) List(ctx context.Context, filter ListFilter, page db.Page) ([]Event, error) {
	query := selectEvent + " WHERE 1 = 1"
	var args []any
	if filter.ActiveAt != nil {
		args = append(args, *filter.ActiveAt)
		query += fmt.Sprintf(" AND end_at >= $%d", len(args))
	}
	query += " ORDER BY start_at, id"
	clause, pageArgs := page.Clause(len(args) + 1)
	query += clause
	args = append(args, pageArgs...)

	rows, err := db.QueryerFromContext(ctx, s.DB).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (Event, error) {
	return scanEvent(db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, selectEvent+" WHERE id = $1", id))
}

func (s *Store) Create(ctx context.Context, ev Event) (Event, error) {
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO events (title, description, start_at, end_at, created_by)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, created_at
  `, ev.Title, ev.Description, ev.StartDateTime, ev.EndDateTime, ev.CreatedBy).Scan(&ev.ID, &ev.CreatedAt)
	return ev, err
}

func (s *Store) Update(ctx context.Context, ev Event) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, `
    UPDATE events
    SET title = $1, description = $2, start_at = $3, end_at = $4
    WHERE id = $5
  `, ev.Title, ev.Description, ev.StartDateTime, ev.EndDateTime, ev.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, "DELETE FROM events WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
