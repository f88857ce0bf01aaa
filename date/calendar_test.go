package date

import (
	"testing"
	"time"
)

func TestMonthsBetween(t *testing.T) {
	testCases := []struct {
		name string
		a, b Date
		want int
	}{
		{name: "same day", a: New(2025, time.January, 15), b: New(2025, time.January, 15), want: 0},
		{name: "one full month", a: New(2025, time.January, 15), b: New(2025, time.February, 15), want: 1},
		{name: "one day short of a month", a: New(2025, time.January, 15), b: New(2025, time.February, 14), want: 0},
		{name: "a year", a: New(2024, time.March, 1), b: New(2025, time.March, 1), want: 12},
		{name: "end before start", a: New(2025, time.June, 1), b: New(2025, time.May, 1), want: 0},
		{name: "ten years", a: New(2015, time.January, 1), b: New(2025, time.January, 1), want: 120},
		{name: "crossing year boundary", a: New(2024, time.November, 20), b: New(2025, time.January, 10), want: 1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MonthsBetween(tc.a, tc.b); got != tc.want {
				t.Errorf("MonthsBetween(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	testCases := []struct {
		name string
		d    Date
		n    int
		want Date
	}{
		{name: "plain", d: New(2025, time.January, 10), n: 3, want: New(2025, time.April, 10)},
		{name: "year roll", d: New(2024, time.November, 5), n: 4, want: New(2025, time.March, 5)},
		{name: "clamped to short month", d: New(2025, time.January, 31), n: 1, want: New(2025, time.February, 28)},
		{name: "leap february", d: New(2024, time.January, 31), n: 1, want: New(2024, time.February, 29)},
		{name: "360 months", d: New(2015, time.January, 1), n: 360, want: New(2045, time.January, 1)},
		{name: "negative", d: New(2025, time.March, 15), n: -3, want: New(2024, time.December, 15)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.AddMonths(tc.n); got != tc.want {
				t.Errorf("%v.AddMonths(%d) = %v, want %v", tc.d, tc.n, got, tc.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	a := New(2025, time.January, 1)
	if got := DaysBetween(a, New(2026, time.January, 1)); got != 365 {
		t.Errorf("DaysBetween over 2025 = %d, want 365", got)
	}
	if got := DaysBetween(a, a); got != 0 {
		t.Errorf("DaysBetween(a, a) = %d, want 0", got)
	}
	if got := DaysBetween(a, New(2024, time.December, 31)); got != -1 {
		t.Errorf("DaysBetween backwards = %d, want -1", got)
	}
}

func TestBusinessDaysBetween(t *testing.T) {
	// 2025-01-06 is a Monday.
	monday := New(2025, time.January, 6)
	testCases := []struct {
		name string
		a, b Date
		want int
	}{
		{name: "same day", a: monday, b: monday, want: 0},
		{name: "one week", a: monday, b: monday.Add(7), want: 5},
		{name: "over a weekend", a: New(2025, time.January, 10), b: New(2025, time.January, 13), want: 1}, // Fri -> Mon
		{name: "backwards", a: monday, b: monday.Add(-7), want: 0},
		// 2025 has 261 weekdays; the count excludes Jan 1 2025 (Wed) and
		// includes Jan 1 2026 (Thu), which cancel out.
		{name: "full year", a: New(2025, time.January, 1), b: New(2026, time.January, 1), want: 261},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BusinessDaysBetween(tc.a, tc.b); got != tc.want {
				t.Errorf("BusinessDaysBetween(%v, %v) = %d, want %d", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
