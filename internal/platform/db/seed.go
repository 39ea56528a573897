package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"hrconsole/internal/platform/config"
)

// Seed makes sure the configured administrator has an employee record, so
// ownership denials on records they created can name them. It is a no-op
// when SEED_ADMIN_USER_ID is unset.
func Seed(ctx context.Context, q Queryer, cfg config.Config) error {
	userID := strings.TrimSpace(cfg.SeedAdminUserID)
	if userID == "" {
		return nil
	}
	return ensureAdminEmployee(ctx, q, userID, cfg.SeedAdminName, cfg.SeedAdminEmail)
}

func ensureAdminEmployee(ctx context.Context, q Queryer, userID, name, email string) error {
	var id string
	err := q.QueryRow(ctx, "SELECT id FROM employees WHERE user_id = $1", userID).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	first, last := splitName(name)
	if strings.TrimSpace(email) == "" {
		email = userID + "@localhost"
	}
	_, err = q.Exec(ctx, `
    INSERT INTO employees (user_id, first_name, last_name, email, status, created_by)
    VALUES ($1,$2,$3,$4,'active',$1)
  `, userID, first, last, email)
	return err
}

func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "System", "Administrator"
	}
	first, last, found := strings.Cut(name, " ")
	if !found {
		return first, ""
	}
	return first, strings.TrimSpace(last)
}
