package carteira

import (
	"math"
	"testing"
	"time"

	"github.com/andrelq/carteira/date"
)

// almost fails the test unless got is within tol of want.
func almost(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", label, got, want, tol)
	}
}

// rate is a helper for tests to take the address of a contracted rate.
func rate(v float64) *float64 { return &v }

// pow1p computes (1+rate)^years, the discount factor used by the solver.
func pow1p(rate, years float64) float64 { return math.Pow(1+rate, years) }

// on is a shorthand for building dates in tests.
func on(y int, m time.Month, d int) date.Date { return date.New(y, m, d) }
