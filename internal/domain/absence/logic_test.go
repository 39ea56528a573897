package absence

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		days  int
		long  bool
	}{
		{"same day", day(2024, 5, 1), day(2024, 5, 1), 1, false},
		{"week is not long", day(2024, 5, 1), day(2024, 5, 7), 7, false},
		{"eight days is long", day(2024, 5, 1), day(2024, 5, 8), 8, true},
		{"ten days", day(2024, 5, 1), day(2024, 5, 10), 10, true},
		{"time of day ignored", time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC), time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC), 2, false},
		{"month boundary", day(2024, 2, 28), day(2024, 3, 1), 3, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveDuration(Absence{StartDate: tc.start, EndDate: tc.end})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Days != tc.days || got.LongDuration != tc.long {
				t.Fatalf("expected %d/%v, got %+v", tc.days, tc.long, got)
			}
		})
	}
}

func TestResolveDurationAcrossDST(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("tz data unavailable: %v", err)
	}
	start := time.Date(2024, 3, 30, 0, 0, 0, 0, loc)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)
	got, err := ResolveDuration(Absence{StartDate: start, EndDate: end})
	if err != nil || got.Days != 3 {
		t.Fatalf("expected 3 days across DST, got %+v (%v)", got, err)
	}
}

func TestResolveDurationInvertedRange(t *testing.T) {
	t.Parallel()

	start, end := day(2024, 5, 10), day(2024, 5, 9)
	_, err := ResolveDuration(Absence{StartDate: start, EndDate: end})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
	var rangeErr *InvalidRangeError
	if !errors.As(err, &rangeErr) || !rangeErr.Start.Equal(start) || !rangeErr.End.Equal(end) {
		t.Fatalf("expected offending dates in error, got %v", err)
	}
	if err := ValidateRange(start, end); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("ValidateRange: expected ErrInvalidRange, got %v", err)
	}
	if err := ValidateRange(end, start); err != nil {
		t.Fatalf("ValidateRange: unexpected error %v", err)
	}
}
