package target

import (
	"math"
	"testing"
)

func TestResolvePresets(t *testing.T) {
	tests := []struct {
		size   int64
		preset Preset
		want   Budget
	}{
		{2_000_000, Same, 2_000_000},
		{2_000_000, Large, 1_500_000},
		{2_000_000, Medium, 1_000_000},
		{2_000_000, Small, 500_000},
		{1001, Medium, 501}, // 500.5 rounds up
		{1001, Large, 751},  // 750.75
		{1001, Small, 250},  // 250.25
		{3, Small, 1},       // 0.75
		{2_000_000, Preset("huge"), 2_000_000},
	}
	for _, tt := range tests {
		if got := Resolve(tt.size, tt.preset, 0); got != tt.want {
			t.Errorf("Resolve(%d, %s) = %d, want %d", tt.size, tt.preset, got, tt.want)
		}
	}
}

func TestResolveCustom(t *testing.T) {
	tests := []struct {
		kb   float64
		want Budget
	}{
		{100, 102_400},
		{0.5, 512},
		{1.3, 1331}, // 1331.2
		{0, None},
		{-4, None},
		{math.NaN(), None},
		{math.Inf(1), None},
	}
	for _, tt := range tests {
		if got := Resolve(50_000, Custom, tt.kb); got != tt.want {
			t.Errorf("Resolve(custom, %v) = %d, want %d", tt.kb, got, tt.want)
		}
	}
}

func TestResolveUnknownOriginal(t *testing.T) {
	for _, p := range Presets() {
		if got := Resolve(0, p, 100); got != None {
			t.Errorf("Resolve(0, %s) = %d, want None", p, got)
		}
		if got := Resolve(-1, p, 100); got != None {
			t.Errorf("Resolve(-1, %s) = %d, want None", p, got)
		}
	}
}

func TestBudgetConstrained(t *testing.T) {
	if None.Constrained() {
		t.Error("None should be unconstrained")
	}
	if !Budget(1).Constrained() {
		t.Error("1 byte should be constrained")
	}
}

func TestParsePreset(t *testing.T) {
	p, err := ParsePreset(" Medium ")
	if err != nil || p != Medium {
		t.Fatalf("ParsePreset(Medium) = %q, %v", p, err)
	}
	if _, err := ParsePreset("gigantic"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
