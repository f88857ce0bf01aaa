package cmd

import (
	"testing"

	"github.com/andrelq/carteira"
)

func TestParseFlows(t *testing.T) {
	flows, err := parseFlows([]string{"2024-01-15:-10000", "2025-08-30:11700"})
	if err != nil {
		t.Fatalf("parseFlows: %v", err)
	}
	if len(flows) != 2 {
		t.Fatalf("got %d flows, want 2", len(flows))
	}
	if flows[0].Date != carteira.NewDate(2024, 1, 15) || flows[0].Amount != -10000 {
		t.Errorf("first flow: got %+v", flows[0])
	}
	if flows[1].Amount != 11700 {
		t.Errorf("second flow: got %+v", flows[1])
	}
}

func TestParseFlowsErrors(t *testing.T) {
	bad := [][]string{
		{},
		{"2024-01-15"},
		{"2024-01-15:abc"},
		{"15/01/2024:-10000"},
	}
	for _, args := range bad {
		if _, err := parseFlows(args); err == nil {
			t.Errorf("parseFlows(%v): expected an error", args)
		}
	}
}
