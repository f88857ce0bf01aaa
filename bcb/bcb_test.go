package bcb

import (
	"math"
	"testing"

	"github.com/andrelq/carteira/date"
)

func TestParseLast(t *testing.T) {
	body := []byte(`[{"data":"29/08/2025","valor":"14.90"}]`)

	value, updated, err := parseLast(SeriesCDI, body)
	if err != nil {
		t.Fatalf("parseLast: %v", err)
	}
	if math.Abs(value-14.90) > 1e-9 {
		t.Errorf("value: got %v, want 14.90", value)
	}
	if updated != date.New(2025, 8, 29) {
		t.Errorf("updated: got %v, want 2025-08-29", updated)
	}
}

func TestParseLastKeepsNewestObservation(t *testing.T) {
	body := []byte(`[{"data":"28/08/2025","valor":"14.85"},{"data":"29/08/2025","valor":"14.90"}]`)

	value, updated, err := parseLast(SeriesCDI, body)
	if err != nil {
		t.Fatalf("parseLast: %v", err)
	}
	if value != 14.90 || updated != date.New(2025, 8, 29) {
		t.Errorf("got %v at %v, want the last observation", value, updated)
	}
}

func TestParseLastErrors(t *testing.T) {
	testCases := []struct {
		name string
		body string
	}{
		{"empty list", `[]`},
		{"not json", `<html>erro</html>`},
		{"bad value", `[{"data":"29/08/2025","valor":"n/d"}]`},
		{"bad date", `[{"data":"2025-08-29","valor":"14.90"}]`},
		{"out of range date", `[{"data":"45/13/2025","valor":"14.90"}]`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := parseLast(SeriesIPCA12mo, []byte(tc.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseBCBDate(t *testing.T) {
	d, err := parseBCBDate("01/02/2025")
	if err != nil {
		t.Fatalf("parseBCBDate: %v", err)
	}
	if d != date.New(2025, 2, 1) {
		t.Errorf("got %v, want 2025-02-01 (day first)", d)
	}
}
