package entity

import (
	"testing"
	"time"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"plain forward", d(2024, time.March, 15), 1, d(2024, time.April, 15)},
		{"plain backward", d(2024, time.March, 15), -1, d(2024, time.February, 15)},
		{"clamps jan 31 to leap feb", d(2024, time.January, 31), 1, d(2024, time.February, 29)},
		{"clamps jan 31 to non-leap feb", d(2023, time.January, 31), 1, d(2023, time.February, 28)},
		{"clamps mar 31 back to feb", d(2024, time.March, 31), -1, d(2024, time.February, 29)},
		{"clamps may 31 to june 30", d(2024, time.May, 31), 1, d(2024, time.June, 30)},
		{"year rollover forward", d(2024, time.December, 31), 1, d(2025, time.January, 31)},
		{"year rollover backward", d(2024, time.January, 15), -1, d(2023, time.December, 15)},
		{"several months at once", d(2024, time.January, 31), 3, d(2024, time.April, 30)},
		{"zero months", d(2024, time.March, 15), 0, d(2024, time.March, 15)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AddMonths(tc.in, tc.n)
			if !got.Equal(tc.want) {
				t.Errorf("AddMonths(%s, %d) = %s, want %s",
					tc.in.Format(time.DateOnly), tc.n,
					got.Format(time.DateOnly), tc.want.Format(time.DateOnly))
			}
		})
	}
}

func TestAddMonthsDoesNotRoundTrip(t *testing.T) {
	// Clamping loses the original day of month: Jan 31 -> Feb 29 -> Mar 29.
	got := AddMonths(AddMonths(d(2024, time.January, 31), 1), 1)
	if !got.Equal(d(2024, time.March, 29)) {
		t.Errorf("expected 2024-03-29, got %s", got.Format(time.DateOnly))
	}
}

func TestBeginningOfMonth(t *testing.T) {
	got := BeginningOfMonth(time.Date(2024, time.March, 17, 14, 30, 5, 0, time.UTC))
	if !got.Equal(d(2024, time.March, 1)) {
		t.Errorf("expected 2024-03-01, got %s", got)
	}
}

func TestDateOnly(t *testing.T) {
	got := DateOnly(time.Date(2024, time.March, 17, 23, 59, 59, 999, time.UTC))
	if !got.Equal(d(2024, time.March, 17)) {
		t.Errorf("expected 2024-03-17 midnight, got %s", got)
	}
}
