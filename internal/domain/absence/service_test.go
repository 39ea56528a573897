package absence

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"

	"hrconsole/internal/domain/auth"
)

var absenceColumns = []string{"id", "employee_id", "start_date", "end_date", "justified", "reason", "created_by", "created_at"}

func newMockService(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return NewService(NewStore(mock), nil, nil), mock
}

func TestUpdateForeignAbsenceDenied(t *testing.T) {
	svc, mock := newMockService(t)
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM absences WHERE id").
		WithArgs("ab-1").
		WillReturnRows(pgxmock.NewRows(absenceColumns).
			AddRow("ab-1", "e1", day(2024, 4, 2), day(2024, 4, 3), false, "flu", "u2", created))

	actor := &auth.Actor{ID: "u1", Role: auth.RoleStandard}
	_, err := svc.Update(context.Background(), actor, "ab-1", Input{EmployeeID: "e1", StartDate: day(2024, 4, 2), EndDate: day(2024, 4, 4)})
	var denied *auth.DeniedError
	if !errors.As(err, &denied) || denied.OwnerID != "u2" {
		t.Fatalf("expected denial naming u2, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no write may follow a denial: %v", err)
	}
}

func TestCreateStampsCreator(t *testing.T) {
	svc, mock := newMockService(t)
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO absences").
		WithArgs("e1", day(2024, 4, 2), day(2024, 4, 11), true, "surgery", "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("ab-7", created))

	actor := &auth.Actor{ID: "u1", Role: auth.RoleStandard}
	a, err := svc.Create(context.Background(), actor, Input{EmployeeID: "e1", StartDate: day(2024, 4, 2), EndDate: day(2024, 4, 11), Justified: true, Reason: " surgery "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.ID != "ab-7" || a.CreatedBy != "u1" {
		t.Fatalf("unexpected absence: %+v", a)
	}
	d, _ := ResolveDuration(a)
	if d.Days != 10 || !d.LongDuration {
		t.Fatalf("expected 10 long days, got %+v", d)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRejectsInvertedRangeBeforeWrite(t *testing.T) {
	svc, mock := newMockService(t)
	actor := &auth.Actor{ID: "u1"}
	_, err := svc.Create(context.Background(), actor, Input{StartDate: day(2024, 4, 5), EndDate: day(2024, 4, 1)})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store use: %v", err)
	}
}

func TestElevatedDeletesAnyAbsence(t *testing.T) {
	svc, mock := newMockService(t)
	created := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM absences WHERE id").
		WithArgs("ab-1").
		WillReturnRows(pgxmock.NewRows(absenceColumns).
			AddRow("ab-1", "e1", day(2024, 4, 2), day(2024, 4, 3), false, "", "u2", created))
	mock.ExpectExec("DELETE FROM absences").WithArgs("ab-1").WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := svc.Delete(context.Background(), &auth.Actor{ID: "boss", Role: auth.RoleElevated}, "ab-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
