package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestValidatorDates(t *testing.T) {
	t.Parallel()
	v := NewValidator()
	day, ok := v.Date("startDate", " 2024-03-04 ")
	if !ok || !day.Equal(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v ok=%t", day, ok)
	}
	if _, ok := v.DateTime("startDateTime", "2024-03-04"); ok {
		t.Fatal("a bare date is not a timestamp")
	}
	if _, ok := v.Date("endDate", ""); ok {
		t.Fatal("empty date must be rejected")
	}
	issues := v.Issues()
	if len(issues) != 2 || issues[0].Field != "endDate" || issues[1].Field != "startDateTime" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestValidatorBool(t *testing.T) {
	t.Parallel()
	v := NewValidator()
	if _, ok := v.Bool("open", ""); ok || v.HasIssues() {
		t.Fatal("absent flag is neither set nor an error")
	}
	if value, ok := v.Bool("open", "true"); !ok || !value {
		t.Fatal("expected true")
	}
	if _, ok := v.Bool("open", "maybe"); ok {
		t.Fatal("malformed flag must not be reported as set")
	}

	rec := httptest.NewRecorder()
	if !v.Reject(rec, "req-1") {
		t.Fatal("expected rejection")
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "must be true or false") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}
