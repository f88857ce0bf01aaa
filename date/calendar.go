package date

import "time"

// This file holds the calendar arithmetic used by the financial engine:
// calendar-month counting for loan amortization, business-day counting for
// the Brazilian 252-day accrual convention, and plain day counting for
// cash-flow timing.

// AddMonths returns the date n calendar months later, preserving the
// day-of-month where possible. When the target month is shorter, the day is
// clamped to the last day of that month (e.g. Jan 31 + 1 month = Feb 28).
func (d Date) AddMonths(n int) Date {
	months := int(d.m) - 1 + n
	y := d.y + months/12
	m := time.Month(months%12 + 1)
	if months < 0 {
		// Go's integer division truncates toward zero.
		y = d.y + (months-11)/12
		m = time.Month((months%12+12)%12 + 1)
	}
	day := d.d
	if last := daysIn(y, m); day > last {
		day = last
	}
	return New(y, m, day)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthsBetween counts the full calendar months elapsed from a to b: the
// difference in calendar months, decremented by one when b's day-of-month
// precedes a's (a full month has not yet elapsed), floored at zero.
func MonthsBetween(a, b Date) int {
	if b.Before(a) {
		return 0
	}
	months := (b.y-a.y)*12 + int(b.m) - int(a.m)
	if b.d < a.d {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// DaysBetween counts the calendar days from a to b. It is negative when b is
// before a.
func DaysBetween(a, b Date) int {
	return int(b.time().Sub(a.time()) / Day)
}

// BusinessDaysBetween counts the business days (Monday to Friday) in the
// interval (a, b]. It returns zero when b is not after a.
//
// National holidays are not subtracted: positions are estimates refreshed
// daily, and the error of a handful of days is well below the uncertainty of
// the reference rates themselves.
func BusinessDaysBetween(a, b Date) int {
	if !b.After(a) {
		return 0
	}
	count := 0
	for d := a.Add(1); !d.After(b); d = d.Add(1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}
