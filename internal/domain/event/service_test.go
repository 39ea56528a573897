package event

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"

	"hrconsole/internal/domain/auth"
	"hrconsole/internal/domain/refresh"
	"hrconsole/internal/platform/db"
)

var eventColumns = []string{"id", "title", "description", "start_at", "end_at", "created_by", "created_at"}

func TestListActiveFilter(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := start.Add(time.Hour)
	mock.ExpectQuery("FROM events WHERE 1 = 1 AND end_at >= \\$1 ORDER BY start_at, id$").
		WithArgs(now).
		WillReturnRows(pgxmock.NewRows(eventColumns).AddRow("ev-1", "offsite", "", start, end, "u1", start))

	out, err := NewStore(mock).List(context.Background(), ListFilter{ActiveAt: &now}, db.Page{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || ResolveStatus(out[0], now).Status != StatusOngoing {
		t.Fatalf("unexpected events: %+v", out)
	}
}

func TestServiceUpdateChecksOwnerBeforeWindow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("FROM events WHERE id").
		WithArgs("ev-1").
		WillReturnRows(pgxmock.NewRows(eventColumns).AddRow("ev-1", "offsite", "", start, end, "u2", start))

	svc := NewService(NewStore(mock), nil, nil)
	_, err = svc.Update(context.Background(), &auth.Actor{ID: "u1"}, "ev-1", Input{Title: "x", StartDateTime: end, EndDateTime: start})
	if !errors.Is(err, auth.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestServiceCreateValidatesAndSignals(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	bus := refresh.NewBus()
	signals, cancel := bus.Subscribe()
	defer cancel()
	svc := NewService(NewStore(mock), nil, bus)
	actor := &auth.Actor{ID: "u1"}

	if _, err := svc.Create(context.Background(), actor, Input{Title: " ", StartDateTime: start, EndDateTime: end}); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Create(context.Background(), actor, Input{Title: "a", StartDateTime: end, EndDateTime: end}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	mock.ExpectQuery("INSERT INTO events").
		WithArgs("offsite", "", start, end, "u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("ev-2", start))
	ev, err := svc.Create(context.Background(), actor, Input{Title: "offsite", StartDateTime: start, EndDateTime: end})
	if err != nil || ev.ID != "ev-2" {
		t.Fatalf("create: %+v %v", ev, err)
	}
	select {
	case sig := <-signals:
		if sig.Reason != "event.create" {
			t.Fatalf("unexpected signal %q", sig.Reason)
		}
	default:
		t.Fatal("expected a refresh signal")
	}
}
