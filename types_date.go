package carteira

import (
	"time"

	"github.com/andrelq/carteira/date"
)

// Date is the day-granular date used everywhere in the engine, re-exported
// from the date subpackage for the convenience of callers.
type Date = date.Date

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date { return date.New(year, month, day) }

// ParseDate parses a Date from a string, leniently (accepts "2025-7-1").
func ParseDate(s string) (Date, error) { return date.Parse(s) }

// Today returns the current date. It is the only place the engine's callers
// should read the clock; computations themselves take an explicit date.
func Today() Date { return date.Today() }
