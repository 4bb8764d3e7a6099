// Package layout computes the geometric layout of a crate: the overall
// envelope, the shipping base (skids and floorboards), and the five
// reinforced plywood panels. Everything here is pure arithmetic over
// the immutable spec and policy inputs; a layout is computed once per
// run and never mutated afterwards.
//
// All linear values are inches.
package layout

import (
	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// eps absorbs float drift in stock-width comparisons. Matches the
// tolerance used when fitting lumber against a remaining span.
const eps = 0.001

// Envelope holds the resolved outside dimensions of the crate and the
// interior spans the base layout works against. The crate is symmetric
// about the width axis and rests on the ground plane at its base.
type Envelope struct {
	// Outside dimensions including the panel assemblies.
	OverallWidth  float64
	OverallLength float64
	OverallHeight float64

	// Interior spans between opposing panel assemblies. The skid and
	// floorboard layouts live inside these.
	InteriorWidth  float64
	InteriorLength float64

	// PanelThickness is the full panel assembly thickness: plywood
	// sheathing plus the cleat framework standing off it.
	PanelThickness float64
}

// ResolveEnvelope derives the crate envelope from the product, its
// clearances, and the stock policy.
//
// The contract:
//
//	overall width  = product width  + 2*side clearance + 2*panel thickness
//	overall length = product length + 2*end clearance  + 2*panel thickness
//	overall height = product height + top clearance + floorboard thickness + panel thickness
//
// where panel thickness is the sheathing plus the cleat gauge selected
// for the product weight.
func ResolveEnvelope(s *spec.CrateSpec, p *policy.StockPolicy) (Envelope, error) {
	if err := s.Validate(); err != nil {
		return Envelope{}, err
	}
	if err := p.Validate(); err != nil {
		return Envelope{}, err
	}

	gauge := p.SelectCleat(s.Product.Weight)
	panel := p.SheathingThickness + gauge.Thickness

	env := Envelope{
		InteriorWidth:  s.Product.Width + 2*s.Clearance.Side,
		InteriorLength: s.Product.Length + 2*s.Clearance.End,
		PanelThickness: panel,
	}
	env.OverallWidth = env.InteriorWidth + 2*panel
	env.OverallLength = env.InteriorLength + 2*panel
	env.OverallHeight = s.Product.Height + s.Clearance.Above + p.FloorboardThickness + panel

	if env.InteriorWidth <= 0 || env.InteriorLength <= 0 {
		return Envelope{}, errors.New(errors.ErrCodeInvalidSpec,
			"resolved interior span is not positive (%.3f x %.3f)", env.InteriorWidth, env.InteriorLength)
	}
	return env, nil
}
