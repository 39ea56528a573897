package audit

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"

	"hrconsole/internal/platform/db"
	"hrconsole/internal/requestctx"
)

func TestRecordCarriesRequestID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec("INSERT INTO audit_events").
		WithArgs("u1", "leave.approve", "leave_request", "lr-1", []byte(nil), []byte(`{"status":"approved"}`), "req-42").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	svc := New(mock)
	ctx := requestctx.WithRequestID(context.Background(), "req-42")
	if err := svc.Record(ctx, "u1", "leave.approve", "leave_request", "lr-1", nil, map[string]string{"status": "approved"}); err != nil {
		t.Fatalf("record error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListAppliesFilterAndPage(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	query := regexp.QuoteMeta("FROM audit_events WHERE 1 = 1 AND entity_type = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3")
	mock.ExpectQuery(query).
		WithArgs("absence", 10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "actor_id", "action", "entity_type", "entity_id", "request_id", "created_at", "before_json", "after_json"}).
			AddRow("a1", "u1", "absence.create", "absence", "ab-1", "req-1", now, []byte(nil), []byte(`{}`)))

	svc := New(mock)
	events, err := svc.List(context.Background(), Filter{EntityType: "absence"}, db.Page{Limit: 10})
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(events) != 1 || events[0].Action != "absence.create" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
