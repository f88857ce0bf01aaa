package carteira

import (
	"math"
	"slices"

	"github.com/andrelq/carteira/date"
)

// CashFlow is one dated, signed amount: negative for money invested, positive
// for money returned. Cash flows are an ephemeral input to the return solver,
// never a persisted entity.
type CashFlow struct {
	Date   date.Date `json:"date"`
	Amount float64   `json:"amount"`
}

const (
	xirrTolerance  = 1e-6
	xirrIterations = 100
	xirrExpansions = 20
)

// XIRR finds the annual discount rate that zeroes the net present value of
// the given cash flows, with times measured in calendar days over 365 from
// the earliest flow.
//
// The boolean is false when the rate is undefined: fewer than two flows, no
// sign change among the amounts, or no bracketing interval found after
// expansion. That outcome is distinct from "not computable" elsewhere in the
// engine: the inputs are individually valid, the system of flows just has no
// solution.
func XIRR(flows []CashFlow) (float64, bool) {
	if len(flows) < 2 {
		return 0, false
	}
	var hasInflow, hasOutflow bool
	for _, f := range flows {
		if f.Amount > 0 {
			hasInflow = true
		}
		if f.Amount < 0 {
			hasOutflow = true
		}
	}
	if !hasInflow || !hasOutflow {
		return 0, false
	}

	sorted := slices.Clone(flows)
	slices.SortStableFunc(sorted, func(a, b CashFlow) int { return a.Date.Compare(b.Date) })

	origin := sorted[0].Date
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		years[i] = float64(date.DaysBetween(origin, f.Date)) / 365
	}

	npv := func(rate float64) float64 {
		var sum float64
		for i, f := range sorted {
			sum += f.Amount / math.Pow(1+rate, years[i])
		}
		return sum
	}

	// Bracket the root, doubling the upper bound until the NPV changes sign.
	low, high := -0.9999, 1.0
	npvLow, npvHigh := npv(low), npv(high)
	for tries := 0; npvLow*npvHigh > 0; tries++ {
		if tries >= xirrExpansions {
			return 0, false
		}
		high *= 2
		npvHigh = npv(high)
	}

	for iter := 0; iter < xirrIterations; iter++ {
		mid := (low + high) / 2
		npvMid := npv(mid)
		if math.Abs(npvMid) < xirrTolerance {
			return mid, true
		}
		if npvLow*npvMid < 0 {
			high = mid
		} else {
			low, npvLow = mid, npvMid
		}
	}
	return (low + high) / 2, true
}
