package carteira

import (
	"fmt"
	"math"
	"strings"

	"github.com/andrelq/carteira/date"
	"github.com/google/uuid"
)

// Index is the reference index a fixed-income holding accrues against.
type Index string

const (
	CDI        Index = "CDI"
	Selic      Index = "SELIC"
	IPCA       Index = "IPCA"
	IGPM       Index = "IGP-M"
	PreFixed   Index = "PRE"
	IndexOther Index = "OUTRO"
)

// ParseIndex parses a reference index name, leniently.
func ParseIndex(s string) (Index, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CDI":
		return CDI, nil
	case "SELIC":
		return Selic, nil
	case "IPCA":
		return IPCA, nil
	case "IGP-M", "IGPM":
		return IGPM, nil
	case "PRE", "PREFIXADO", "PRE-FIXADO":
		return PreFixed, nil
	case "OUTRO", "OTHER", "":
		return IndexOther, nil
	default:
		return IndexOther, fmt.Errorf("unknown reference index %q", s)
	}
}

// InstrumentType is the kind of fixed-income paper.
type InstrumentType string

const (
	TypeCDB     InstrumentType = "CDB"
	TypeLCI     InstrumentType = "LCI"
	TypeLCA     InstrumentType = "LCA"
	TypeTesouro InstrumentType = "TESOURO"
	TypeOther   InstrumentType = "OUTRO"
)

// ParseInstrumentType parses a fixed-income instrument type, leniently.
func ParseInstrumentType(s string) (InstrumentType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CDB":
		return TypeCDB, nil
	case "LCI":
		return TypeLCI, nil
	case "LCA":
		return TypeLCA, nil
	case "TESOURO", "TESOURO-DIRETO", "TD":
		return TypeTesouro, nil
	case "OUTRO", "OTHER", "":
		return TypeOther, nil
	default:
		return TypeOther, fmt.Errorf("unknown instrument type %q", s)
	}
}

// ValueSource identifies which alternative won when valuing a holding.
type ValueSource int

const (
	// ValueEstimated means the amount was projected by compounding the
	// derived daily rate over the elapsed days.
	ValueEstimated ValueSource = iota
	// ValueManual means the user-supplied current value was used verbatim.
	ValueManual
)

func (s ValueSource) String() string {
	switch s {
	case ValueManual:
		return "manual"
	default:
		return "estimated"
	}
}

// Valuation is a current value tagged with where it came from.
type Valuation struct {
	Amount float64
	Source ValueSource
}

// FixedIncomePosition represents one fixed-income holding.
//
// ContractedRate is a pointer because its absence is meaningful: a CDB "at
// CDI" with no stated rate accrues at the CDI reference alone, which is not
// the same contract as "CDI + 0".
type FixedIncomePosition struct {
	ID                 uuid.UUID
	Name               string
	Type               InstrumentType
	Principal          float64
	ApplicationDate    date.Date
	Index              Index
	ContractedRate     *float64 // percent; meaning depends on the index
	ManualCurrentValue float64  // when positive, always wins over the estimate
}

// percentOfCDIThreshold splits the two readings of a CDI contracted rate:
// values of 20 or more are "X% of CDI", smaller ones are "CDI + X%". A CDB
// is sold at "110% of CDI" or "CDI + 2", never at "20% of CDI", so the split
// is unambiguous in practice.
const percentOfCDIThreshold = 20

// usesBusinessDays reports whether the holding accrues on the Brazilian
// 252-business-day convention rather than calendar days.
func (p FixedIncomePosition) usesBusinessDays() bool {
	switch p.Index {
	case CDI, Selic:
		return true
	}
	switch p.Type {
	case TypeCDB, TypeLCI, TypeLCA, TypeTesouro:
		return true
	}
	return false
}

// annualRate derives the effective annual rate (percent) from the index and
// the contracted rate. The boolean is false when no rate can be derived.
func (p FixedIncomePosition) annualRate(rates ReferenceRates) (float64, bool) {
	switch p.Index {
	case PreFixed:
		if p.ContractedRate == nil {
			return 0, false
		}
		return *p.ContractedRate, true
	case Selic:
		if p.ContractedRate != nil {
			return *p.ContractedRate, true
		}
		return rates.Selic, true
	case CDI:
		if p.ContractedRate == nil {
			return rates.CDI, true
		}
		r := *p.ContractedRate
		if r >= percentOfCDIThreshold {
			return r / 100 * rates.CDI, true
		}
		return rates.CDI + r, true
	case IPCA, IGPM:
		var spread float64
		if p.ContractedRate != nil {
			spread = *p.ContractedRate
		}
		return rates.Inflation + spread, true
	default:
		if p.ContractedRate != nil {
			return *p.ContractedRate, true
		}
		return 0, false
	}
}

// CurrentValue projects the holding's value at the given date by compounding
// the derived daily rate over the elapsed days since application. A positive
// ManualCurrentValue always wins, unchanged. The boolean is false when the
// value is not computable (missing principal, application date or rate, or a
// non-finite derived rate); callers must then skip the holding in totals.
func (p FixedIncomePosition) CurrentValue(asOf date.Date, rates ReferenceRates) (Valuation, bool) {
	if p.ManualCurrentValue > 0 {
		return Valuation{Amount: p.ManualCurrentValue, Source: ValueManual}, true
	}
	if p.Principal <= 0 || p.ApplicationDate.IsZero() {
		return Valuation{}, false
	}

	basis := 365
	days := date.DaysBetween(p.ApplicationDate, asOf)
	if p.usesBusinessDays() {
		basis = 252
		days = date.BusinessDaysBetween(p.ApplicationDate, asOf)
	}
	if days <= 0 {
		return Valuation{Amount: p.Principal, Source: ValueEstimated}, true
	}

	annual, ok := p.annualRate(rates)
	if !ok || math.IsNaN(annual) || math.IsInf(annual, 0) {
		return Valuation{}, false
	}

	daily := annual / 100 / float64(basis)
	amount := p.Principal * math.Pow(1+daily, float64(days))
	return Valuation{Amount: amount, Source: ValueEstimated}, true
}
