package carteira

import (
	"math"
	"testing"
	"time"
)

func TestFixedIncome_ManualValueAlwaysWins(t *testing.T) {
	p := FixedIncomePosition{
		Name:               "old CDB",
		Type:               TypeCDB,
		Principal:          10000,
		ApplicationDate:    on(2010, time.January, 4),
		Index:              CDI,
		ContractedRate:     rate(150), // an extreme estimate, irrelevant
		ManualCurrentValue: 10500.42,
	}
	v, ok := p.CurrentValue(on(2026, time.January, 5), DefaultRates())
	if !ok {
		t.Fatal("CurrentValue() not computable")
	}
	if v.Amount != 10500.42 {
		t.Errorf("Amount = %v, want the manual 10500.42 unchanged", v.Amount)
	}
	if v.Source != ValueManual {
		t.Errorf("Source = %v, want manual", v.Source)
	}
}

func TestFixedIncome_NotComputable(t *testing.T) {
	testCases := []struct {
		name string
		p    FixedIncomePosition
	}{
		{name: "zero principal", p: FixedIncomePosition{ApplicationDate: on(2025, time.January, 2), Index: CDI}},
		{name: "missing application date", p: FixedIncomePosition{Principal: 1000, Index: CDI}},
		{name: "other index without rate", p: FixedIncomePosition{Principal: 1000, ApplicationDate: on(2025, time.January, 2), Index: IndexOther}},
		{name: "pre-fixed without rate", p: FixedIncomePosition{Principal: 1000, ApplicationDate: on(2025, time.January, 2), Index: PreFixed}},
		{name: "non-finite rate", p: FixedIncomePosition{Principal: 1000, ApplicationDate: on(2025, time.January, 2), Index: PreFixed, ContractedRate: rate(math.NaN())}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := tc.p.CurrentValue(on(2025, time.June, 2), DefaultRates()); ok {
				t.Error("CurrentValue() computable, want not computable")
			}
		})
	}
}

func TestFixedIncome_PrincipalAtDayZero(t *testing.T) {
	p := FixedIncomePosition{
		Type:            TypeCDB,
		Principal:       5000,
		ApplicationDate: on(2025, time.March, 10),
		Index:           CDI,
	}
	v, ok := p.CurrentValue(on(2025, time.March, 10), DefaultRates())
	if !ok {
		t.Fatal("CurrentValue() not computable")
	}
	if v.Amount != 5000 {
		t.Errorf("Amount at d=0 = %v, want exactly the principal", v.Amount)
	}
	// An earlier asOf must not discount the principal either.
	v, _ = p.CurrentValue(on(2025, time.March, 1), DefaultRates())
	if v.Amount != 5000 {
		t.Errorf("Amount before application = %v, want the principal", v.Amount)
	}
}

func TestFixedIncome_MonotonicInTime(t *testing.T) {
	p := FixedIncomePosition{
		Type:            TypeCDB,
		Principal:       10000,
		ApplicationDate: on(2024, time.January, 2),
		Index:           CDI,
		ContractedRate:  rate(110),
	}
	prev := 0.0
	for m := 0; m <= 24; m++ {
		v, ok := p.CurrentValue(on(2024, time.January, 2).AddMonths(m), DefaultRates())
		if !ok {
			t.Fatalf("CurrentValue() not computable at month %d", m)
		}
		if v.Amount < prev {
			t.Fatalf("value decreased at month %d: %v < %v", m, v.Amount, prev)
		}
		prev = v.Amount
	}
}

func TestFixedIncome_CDIClassification(t *testing.T) {
	rates := DefaultRates()
	base := FixedIncomePosition{
		Type:            TypeCDB,
		Principal:       10000,
		ApplicationDate: on(2025, time.January, 2),
		Index:           CDI,
	}

	percentOf := base
	percentOf.ContractedRate = rate(110) // 110% of CDI
	spread := base
	spread.ContractedRate = rate(2) // CDI + 2%

	gotPercentOf, ok := percentOf.annualRate(rates)
	if !ok {
		t.Fatal("annualRate() for 110% of CDI not derivable")
	}
	gotSpread, ok := spread.annualRate(rates)
	if !ok {
		t.Fatal("annualRate() for CDI+2 not derivable")
	}

	almost(t, "110% of CDI", gotPercentOf, 1.10*rates.CDI, 1e-9)
	almost(t, "CDI + 2", gotSpread, rates.CDI+2, 1e-9)
	if gotPercentOf == gotSpread {
		t.Error("both classifications produced the same rate; the threshold is not routing")
	}

	// No contracted rate at all: the CDI reference alone.
	none, ok := base.annualRate(rates)
	if !ok {
		t.Fatal("annualRate() for plain CDI not derivable")
	}
	almost(t, "plain CDI", none, rates.CDI, 1e-9)
}

func TestFixedIncome_AnnualRateByIndex(t *testing.T) {
	rates := ReferenceRates{CDI: 12.65, Selic: 12.25, Inflation: 4.5}
	testCases := []struct {
		name  string
		index Index
		rate  *float64
		want  float64
	}{
		{name: "pre-fixed", index: PreFixed, rate: rate(13.5), want: 13.5},
		{name: "selic stated", index: Selic, rate: rate(12.4), want: 12.4},
		{name: "selic fallback", index: Selic, rate: nil, want: 12.25},
		{name: "ipca plus 6", index: IPCA, rate: rate(6), want: 10.5},
		{name: "ipca alone", index: IPCA, rate: nil, want: 4.5},
		{name: "igpm plus 5", index: IGPM, rate: rate(5), want: 9.5},
		{name: "other with rate", index: IndexOther, rate: rate(9), want: 9},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := FixedIncomePosition{Principal: 1, ApplicationDate: on(2025, time.January, 2), Index: tc.index, ContractedRate: tc.rate}
			got, ok := p.annualRate(rates)
			if !ok {
				t.Fatal("annualRate() not derivable")
			}
			almost(t, "annualRate", got, tc.want, 1e-9)
		})
	}
}

func TestFixedIncome_DayCountBasis(t *testing.T) {
	testCases := []struct {
		name         string
		p            FixedIncomePosition
		wantBusiness bool
	}{
		{name: "CDI index", p: FixedIncomePosition{Index: CDI}, wantBusiness: true},
		{name: "SELIC index", p: FixedIncomePosition{Index: Selic}, wantBusiness: true},
		{name: "CDB paper on IPCA", p: FixedIncomePosition{Type: TypeCDB, Index: IPCA}, wantBusiness: true},
		{name: "LCI paper", p: FixedIncomePosition{Type: TypeLCI, Index: IPCA}, wantBusiness: true},
		{name: "tesouro paper", p: FixedIncomePosition{Type: TypeTesouro, Index: PreFixed}, wantBusiness: true},
		{name: "other on IPCA", p: FixedIncomePosition{Type: TypeOther, Index: IPCA}, wantBusiness: false},
		{name: "other pre-fixed", p: FixedIncomePosition{Type: TypeOther, Index: PreFixed}, wantBusiness: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.usesBusinessDays(); got != tc.wantBusiness {
				t.Errorf("usesBusinessDays() = %v, want %v", got, tc.wantBusiness)
			}
		})
	}
}

func TestFixedIncome_CompoundsDaily(t *testing.T) {
	// A pre-fixed 12% a.a. paper on the calendar basis, one year out.
	p := FixedIncomePosition{
		Type:            TypeOther,
		Principal:       10000,
		ApplicationDate: on(2025, time.January, 1),
		Index:           PreFixed,
		ContractedRate:  rate(12),
	}
	v, ok := p.CurrentValue(on(2026, time.January, 1), DefaultRates())
	if !ok {
		t.Fatal("CurrentValue() not computable")
	}
	want := 10000 * math.Pow(1+0.12/365, 365)
	almost(t, "one year of daily compounding", v.Amount, want, 1e-6)
	if v.Source != ValueEstimated {
		t.Errorf("Source = %v, want estimated", v.Source)
	}
}
