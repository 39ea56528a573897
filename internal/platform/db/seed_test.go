package db

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"

	"hrconsole/internal/platform/config"
)

func TestSeedSkipsWithoutAdmin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	if err := Seed(context.Background(), mock, config.Config{}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no statements expected: %v", err)
	}
}

func TestSeedCreatesAdminEmployeeOnce(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	cfg := config.Config{SeedAdminUserID: "admin", SeedAdminName: "Ada King Lovelace"}
	mock.ExpectQuery("SELECT id FROM employees WHERE user_id").WithArgs("admin").WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec("INSERT INTO employees").WithArgs("admin", "Ada", "King Lovelace", "admin@localhost").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT id FROM employees WHERE user_id").WithArgs("admin").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("emp-1"))

	for i := 0; i < 2; i++ {
		if err := Seed(context.Background(), mock, cfg); err != nil {
			t.Fatalf("seed run %d: %v", i, err)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
