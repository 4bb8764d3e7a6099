// Package policy holds the stock and spacing reference data that drives
// crate layout: plywood sheet limits, lumber cross-sections, the
// weight-classed skid sizing table, the cleat gauge table, and the
// instance caps imposed by the downstream CAD assembly.
//
// A StockPolicy is immutable once loaded. Runs never mutate it, so a
// single policy value may be shared across concurrent engine runs
// without locking.
//
// All linear values are inches; weights are pounds.
package policy

import (
	"sort"

	"github.com/autocrate/autocrate/pkg/errors"
)

// CrossSection is a lumber cross-section: thickness off the mounting
// face and member width on the face.
type CrossSection struct {
	Thickness float64 `toml:"thickness" json:"thickness"`
	Width     float64 `toml:"width" json:"width"`
}

// SkidClass maps a product weight band to skid lumber.
// Classes are matched in table order; the first class whose MaxWeight
// is at or above the product weight wins. A zero MaxWeight means the
// class is unbounded and catches everything heavier.
type SkidClass struct {
	MaxWeight float64 `toml:"max_weight" json:"max_weight"`
	Height    float64 `toml:"height" json:"height"`
	Width     float64 `toml:"width" json:"width"`
	Callout   string  `toml:"callout" json:"callout"`
	MaxPitch  float64 `toml:"max_pitch" json:"max_pitch"`
}

// CleatGauge maps a product weight band to the cleat cross-section used
// uniformly across a panel. Matching follows the same first-fit rule as
// SkidClass.
type CleatGauge struct {
	MaxWeight float64 `toml:"max_weight" json:"max_weight"`
	Thickness float64 `toml:"thickness" json:"thickness"`
	Width     float64 `toml:"width" json:"width"`
	Callout   string  `toml:"callout" json:"callout"`
}

// StockPolicy is the complete reference data set for one run.
type StockPolicy struct {
	// Plywood sheet stock limits.
	SheetMaxWidth      float64 `toml:"sheet_max_width" json:"sheet_max_width"`
	SheetMaxHeight     float64 `toml:"sheet_max_height" json:"sheet_max_height"`
	SheathingThickness float64 `toml:"sheathing_thickness" json:"sheathing_thickness"`

	// Floorboard lumber stock.
	FloorboardThickness float64   `toml:"floorboard_thickness" json:"floorboard_thickness"`
	StandardBoardWidths []float64 `toml:"standard_board_widths" json:"standard_board_widths"`
	MinCustomBoardWidth float64   `toml:"min_custom_board_width" json:"min_custom_board_width"`
	MinForcedBoardWidth float64   `toml:"min_forced_board_width" json:"min_forced_board_width"`
	MaxMiddleGap        float64   `toml:"max_middle_gap" json:"max_middle_gap"`

	// Structural spacing rules.
	MaxFillerPitch float64 `toml:"max_filler_pitch" json:"max_filler_pitch"`

	// Sizing tables, ordered by ascending MaxWeight.
	LightDutySkid SkidClass    `toml:"light_duty_skid" json:"light_duty_skid"`
	SkidTable     []SkidClass  `toml:"skid_table" json:"skid_table"`
	CleatTable    []CleatGauge `toml:"cleat_table" json:"cleat_table"`

	// Instance caps. The layout engine itself is unbounded; these caps
	// reflect the downstream CAD assembly's fixed slot pools and are
	// enforced only at the serialization boundary.
	FloorboardSlots int `toml:"floorboard_slots" json:"floorboard_slots"`
	SheetSlots      int `toml:"sheet_slots" json:"sheet_slots"`
	SpliceSlots     int `toml:"splice_slots" json:"splice_slots"`
	FillerSlots     int `toml:"filler_slots" json:"filler_slots"`
	MaxSkidCount    int `toml:"max_skid_count" json:"max_skid_count"`
}

// Default returns the built-in stock policy. The numeric values follow
// the crating practice the tool was written against: 48x96 plywood
// sheets, dimensional lumber actual sizes, 24 in maximum unsupported
// span between cleats, and the CAD template's slot pools.
func Default() *StockPolicy {
	return &StockPolicy{
		SheetMaxWidth:      48,
		SheetMaxHeight:     96,
		SheathingThickness: 0.25,

		FloorboardThickness: 1.5,
		StandardBoardWidths: []float64{5.5, 7.25, 9.25, 11.25},
		MinCustomBoardWidth: 2.5,
		MinForcedBoardWidth: 0.25,
		MaxMiddleGap:        0.25,

		MaxFillerPitch: 24,

		// 3x4 on edge, only offered for light loads when the caller
		// allows it.
		LightDutySkid: SkidClass{
			MaxWeight: 500,
			Height:    3.5,
			Width:     2.5,
			Callout:   "3x4 (oriented for 3.5 H)",
			MaxPitch:  30,
		},
		SkidTable: []SkidClass{
			{MaxWeight: 4500, Height: 3.5, Width: 3.5, Callout: "4x4", MaxPitch: 30},
			{MaxWeight: 20000, Height: 3.5, Width: 5.5, Callout: "4x6", MaxPitch: 24},
			{MaxWeight: 0, Height: 3.5, Width: 5.5, Callout: "4x6 (defaulted)", MaxPitch: 24},
		},
		CleatTable: []CleatGauge{
			{MaxWeight: 500, Thickness: 0.75, Width: 2.5, Callout: "1x3"},
			{MaxWeight: 4500, Thickness: 0.75, Width: 3.5, Callout: "1x4"},
			{MaxWeight: 0, Thickness: 1.5, Width: 3.5, Callout: "2x4"},
		},

		FloorboardSlots: 20,
		SheetSlots:      4,
		SpliceSlots:     4,
		FillerSlots:     10,
		MaxSkidCount:    12,
	}
}

// SelectSkid picks the skid lumber class for a product weight.
// The light-duty class is used only when allowLight is set and the
// weight falls within its band.
func (p *StockPolicy) SelectSkid(weight float64, allowLight bool) SkidClass {
	if allowLight && weight < p.LightDutySkid.MaxWeight {
		return p.LightDutySkid
	}
	for _, c := range p.SkidTable {
		if c.MaxWeight == 0 || weight <= c.MaxWeight {
			return c
		}
	}
	// Validate guarantees a catch-all row, so this is unreachable on a
	// validated policy.
	return p.SkidTable[len(p.SkidTable)-1]
}

// SelectCleat picks the cleat gauge for a product weight.
func (p *StockPolicy) SelectCleat(weight float64) CleatGauge {
	for _, g := range p.CleatTable {
		if g.MaxWeight == 0 || weight <= g.MaxWeight {
			return g
		}
	}
	return p.CleatTable[len(p.CleatTable)-1]
}

// SortedBoardWidths returns the standard floorboard widths in
// descending order, the order the greedy fill consumes them in.
func (p *StockPolicy) SortedBoardWidths() []float64 {
	out := make([]float64, len(p.StandardBoardWidths))
	copy(out, p.StandardBoardWidths)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return out
}

// Validate checks the policy for internal consistency. Every value the
// layout engine divides by or counts against must be positive.
func (p *StockPolicy) Validate() error {
	switch {
	case p.SheetMaxWidth <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "sheet_max_width must be positive, got %.3f", p.SheetMaxWidth)
	case p.SheetMaxHeight <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "sheet_max_height must be positive, got %.3f", p.SheetMaxHeight)
	case p.SheathingThickness <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "sheathing_thickness must be positive, got %.3f", p.SheathingThickness)
	case p.FloorboardThickness <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "floorboard_thickness must be positive, got %.3f", p.FloorboardThickness)
	case len(p.StandardBoardWidths) == 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "standard_board_widths must not be empty")
	case p.MinCustomBoardWidth <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "min_custom_board_width must be positive, got %.3f", p.MinCustomBoardWidth)
	case p.MinForcedBoardWidth <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "min_forced_board_width must be positive, got %.3f", p.MinForcedBoardWidth)
	case p.MaxMiddleGap < 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "max_middle_gap cannot be negative, got %.3f", p.MaxMiddleGap)
	case p.MaxFillerPitch <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "max_filler_pitch must be positive, got %.3f", p.MaxFillerPitch)
	case len(p.SkidTable) == 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "skid_table must not be empty")
	case len(p.CleatTable) == 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "cleat_table must not be empty")
	case p.FloorboardSlots <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "floorboard_slots must be positive, got %d", p.FloorboardSlots)
	case p.SheetSlots <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "sheet_slots must be positive, got %d", p.SheetSlots)
	case p.SpliceSlots <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "splice_slots must be positive, got %d", p.SpliceSlots)
	case p.FillerSlots <= 0:
		return errors.New(errors.ErrCodeInvalidPolicy, "filler_slots must be positive, got %d", p.FillerSlots)
	case p.MaxSkidCount < 2:
		return errors.New(errors.ErrCodeInvalidPolicy, "max_skid_count must be at least 2, got %d", p.MaxSkidCount)
	}
	for _, w := range p.StandardBoardWidths {
		if w <= 0 {
			return errors.New(errors.ErrCodeInvalidPolicy, "standard board width must be positive, got %.3f", w)
		}
	}
	if err := validateSkidClass(p.LightDutySkid); err != nil {
		return err
	}
	for _, c := range p.SkidTable {
		if err := validateSkidClass(c); err != nil {
			return err
		}
	}
	if last := p.SkidTable[len(p.SkidTable)-1]; last.MaxWeight != 0 {
		return errors.New(errors.ErrCodeInvalidPolicy, "skid_table must end with a catch-all row (max_weight = 0)")
	}
	for _, g := range p.CleatTable {
		if g.Thickness <= 0 || g.Width <= 0 {
			return errors.New(errors.ErrCodeInvalidPolicy, "cleat gauge %q must have positive cross-section", g.Callout)
		}
	}
	if last := p.CleatTable[len(p.CleatTable)-1]; last.MaxWeight != 0 {
		return errors.New(errors.ErrCodeInvalidPolicy, "cleat_table must end with a catch-all row (max_weight = 0)")
	}
	return nil
}

func validateSkidClass(c SkidClass) error {
	if c.Height <= 0 || c.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidPolicy, "skid class %q must have positive cross-section", c.Callout)
	}
	if c.MaxPitch <= 0 {
		return errors.New(errors.ErrCodeInvalidPolicy, "skid class %q must have positive max_pitch", c.Callout)
	}
	return nil
}
