package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"hrconsole/internal/platform/db"
)

type Store struct {
	DB db.Queryer
}

func NewStore(q db.Queryer) *Store {
	return &Store{DB: q}
}

const selectRequest = `
    SELECT id, employee_id, start_date, end_date, reason, status,
           COALESCE(refusal_reason, ''), COALESCE(decided_by, ''), decided_at, created_by, created_at
    FROM leave_requests`

func scanRequest(row pgx.Row) (LeaveRequest, error) {
	var req LeaveRequest
	var status string
	err := row.Scan(&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Reason, &status,
		&req.RefusalReason, &req.DecidedBy, &req.DecidedAt, &req.CreatedBy, &req.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return LeaveRequest{}, ErrNotFound
	}
	if err != nil {
		return LeaveRequest{}, err
	}
	req.Status = Status(status)
	if err := ValidateStatus(req); err != nil {
		slog.Warn("leave request has inconsistent status", "id", req.ID, "status", status, "err", err)
	}
	return req, nil
}

func (s *Store) List(ctx context.Context, filter ListFilter, page db.Page) ([]LeaveRequest, error) {
	query := selectRequest + " WHERE 1 = 1"
	var args []any
	if filter.EmployeeID != "" {
		args = append(args, filter.EmployeeID)
		query += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
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

	var out []LeaveRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (LeaveRequest, error) {
	return scanRequest(db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, selectRequest+" WHERE id = $1", id))
}

func (s *Store) Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error) {
	err := db.QueryerFromContext(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO leave_requests (employee_id, start_date, end_date, reason, status, created_by)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id, created_at
  `, req.EmployeeID, req.StartDate, req.EndDate, req.Reason, string(req.Status), req.CreatedBy).Scan(&req.ID, &req.CreatedAt)
	return req, err
}

// Update rewrites the editable fields of a pending request. created_by is never touched.
func (s *Store) Update(ctx context.Context, req LeaveRequest) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, `
    UPDATE leave_requests
    SET employee_id = $1, start_date = $2, end_date = $3, reason = $4
    WHERE id = $5 AND status = $6
  `, req.EmployeeID, req.StartDate, req.EndDate, req.Reason, req.ID, string(StatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

// SaveDecision persists an approve/refuse outcome. The status guard keeps two
// concurrent deciders from both succeeding.
func (s *Store) SaveDecision(ctx context.Context, req LeaveRequest) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, refusal_reason = NULLIF($2, ''), decided_by = $3, decided_at = $4
    WHERE id = $5 AND status = $6
  `, string(req.Status), req.RefusalReason, req.DecidedBy, req.DecidedAt, req.ID, string(StatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := db.QueryerFromContext(ctx, s.DB).Exec(ctx, "DELETE FROM leave_requests WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
