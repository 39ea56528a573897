package event

import (
	"errors"
	"testing"
	"time"
)

var (
	start = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	end   = time.Date(2024, 6, 11, 11, 30, 0, 0, time.UTC)
	party = Event{ID: "ev-1", Title: "offsite", StartDateTime: start, EndDateTime: end}
)

func TestResolveStatusBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		now  time.Time
		want Status
	}{
		{start.Add(-time.Nanosecond), StatusUpcoming},
		{start, StatusOngoing},
		{start.Add(3 * time.Hour), StatusOngoing},
		{end, StatusOngoing},
		{end.Add(time.Nanosecond), StatusPast},
	}
	for _, tc := range cases {
		if got := ResolveStatus(party, tc.now).Status; got != tc.want {
			t.Fatalf("at %s expected %s, got %s", tc.now, tc.want, got)
		}
	}
}

func TestResolveStatusDuration(t *testing.T) {
	t.Parallel()

	res := ResolveStatus(party, start)
	if res.Duration != (Duration{Days: 1, Hours: 2, Minutes: 30}) {
		t.Fatalf("unexpected duration: %+v", res.Duration)
	}
	if got := res.Duration.String(); got != "1d 2h 30m" {
		t.Fatalf("unexpected duration string %q", got)
	}
}

func TestDurationString(t *testing.T) {
	t.Parallel()

	cases := map[time.Duration]string{
		0:                            "0m",
		45 * time.Second:             "0m",
		90 * time.Minute:             "1h 30m",
		48 * time.Hour:               "2d",
		24*time.Hour + 5*time.Minute: "1d 5m",
		-time.Hour:                   "0m",
	}
	for in, want := range cases {
		if got := NewDuration(in).String(); got != want {
			t.Fatalf("%s: expected %q, got %q", in, want, got)
		}
	}
}

func TestResolveStatusMonotonic(t *testing.T) {
	t.Parallel()

	rank := map[Status]int{StatusUpcoming: 0, StatusOngoing: 1, StatusPast: 2}
	prev := -1
	for now := start.Add(-2 * time.Hour); now.Before(end.Add(2 * time.Hour)); now = now.Add(7 * time.Minute) {
		r := rank[ResolveStatus(party, now).Status]
		if r < prev {
			t.Fatalf("status went backwards at %s", now)
		}
		prev = r
		if IsActive(party, now) != (r < 2) {
			t.Fatalf("IsActive disagrees with status at %s", now)
		}
	}
	if prev != 2 {
		t.Fatal("sampling never reached past")
	}
}

func TestValidateWindow(t *testing.T) {
	t.Parallel()

	if err := ValidateWindow(start, end); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateWindow(start, start); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow for empty window, got %v", err)
	}
	if err := ValidateWindow(end, start); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow for inverted window, got %v", err)
	}
}
