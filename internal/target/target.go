// Package target turns size presets into byte budgets.
package target

import (
	"fmt"
	"math"
	"strings"
)

// Budget is a maximum output size in bytes. Zero means unconstrained.
type Budget int64

// None is the unconstrained budget.
const None Budget = 0

// Constrained reports whether b limits the output size.
func (b Budget) Constrained() bool { return b > 0 }

// Preset selects how a budget is derived from the original file size.
type Preset string

const (
	Same   Preset = "same"
	Large  Preset = "large"
	Medium Preset = "medium"
	Small  Preset = "small"
	Custom Preset = "custom"
)

// presetDef describes one size preset.
type presetDef struct {
	Label string
	Ratio float64 // fraction of the original size; unused for custom
}

// Built-in presets.
var presets = map[Preset]presetDef{
	Same:   {Label: "Same as original", Ratio: 1.0},
	Large:  {Label: "Large (75%)", Ratio: 0.75},
	Medium: {Label: "Medium (50%)", Ratio: 0.5},
	Small:  {Label: "Small (25%)", Ratio: 0.25},
	Custom: {Label: "Custom (KB)"},
}

var order = []Preset{Same, Large, Medium, Small, Custom}

// Presets returns all preset names in display order.
func Presets() []Preset {
	out := make([]Preset, len(order))
	copy(out, order)
	return out
}

// Label returns the display label of p.
func (p Preset) Label() string {
	if d, ok := presets[p]; ok {
		return d.Label
	}
	return string(p)
}

// ParsePreset returns the preset named s (case-insensitive).
func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presets[p]; ok {
		return p, nil
	}
	names := make([]string, len(order))
	for i, o := range order {
		names[i] = string(o)
	}
	return "", fmt.Errorf("unknown size preset %q (want one of %s)", s, strings.Join(names, ", "))
}

// Resolve maps an original size and a preset to a budget. customKB is only
// read for the custom preset. An unknown original size (<= 0) yields None
// for every preset, and an unknown preset keeps the original size.
func Resolve(originalSize int64, p Preset, customKB float64) Budget {
	if originalSize <= 0 {
		return None
	}
	if p == Custom {
		if customKB <= 0 || math.IsNaN(customKB) || math.IsInf(customKB, 0) {
			return None
		}
		return Budget(math.Round(customKB * 1024))
	}
	d, ok := presets[p]
	if !ok {
		return Budget(originalSize)
	}
	return Budget(math.Round(float64(originalSize) * d.Ratio))
}
