package absencehandler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrconsole/internal/domain/absence"
	"hrconsole/internal/domain/auth"
	"hrconsole/internal/platform/db"
	"hrconsole/internal/transport/http/middleware"
)

type memStore struct {
	rows []absence.Absence
}

func (m *memStore) List(context.Context, absence.ListFilter, db.Page) ([]absence.Absence, error) {
	return m.rows, nil
}

func (m *memStore) Get(_ context.Context, id string) (absence.Absence, error) {
	for _, a := range m.rows {
		if a.ID == id {
			return a, nil
		}
	}
	return absence.Absence{}, absence.ErrNotFound
}

func (m *memStore) Create(_ context.Context, a absence.Absence) (absence.Absence, error) {
	a.ID = uuid.NewString()
	m.rows = append(m.rows, a)
	return a, nil
}

func (m *memStore) Update(context.Context, absence.Absence) error { return nil }

func (m *memStore) Delete(context.Context, string) error { return nil }

func post(t *testing.T, r http.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/absences", bytes.NewReader(raw))
	req = req.WithContext(middleware.WithActor(req.Context(), &auth.Actor{ID: "u1", Role: auth.RoleStandard}))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateReportsDuration(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(absence.NewService(&memStore{}, nil, nil), nil).RegisterRoutes(r)

	tests := []struct {
		name     string
		start    string
		end      string
		wantDays int
		wantLong bool
	}{
		{name: "same day", start: "2024-03-04", end: "2024-03-04", wantDays: 1},
		{name: "ten days", start: "2024-03-01", end: "2024-03-10", wantDays: 10, wantLong: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := post(t, r, map[string]any{"employeeId": "e1", "startDate": tc.start, "endDate": tc.end})
			if rec.Code != http.StatusCreated {
				t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
			}
			var body struct {
				Data struct {
					DurationDays int  `json:"durationDays"`
					LongDuration bool `json:"longDuration"`
					CanEdit      bool `json:"canEdit"`
				} `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Data.DurationDays != tc.wantDays || body.Data.LongDuration != tc.wantLong || !body.Data.CanEdit {
				t.Fatalf("unexpected row: %+v", body.Data)
			}
		})
	}
}

func TestCreateRejectsInvertedRange(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(absence.NewService(&memStore{}, nil, nil), nil).RegisterRoutes(r)

	rec := post(t, r, map[string]any{"employeeId": "e1", "startDate": "2024-03-10", "endDate": "2024-03-01"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error.Code != "invalid_range" {
		t.Fatalf("expected invalid_range, got %q", body.Error.Code)
	}
}
