// Package spec defines the validated input object for one engine run:
// the product envelope, the clearance allowances around it, and the
// per-run options. Inputs are immutable once validated.
//
// All linear values are inches; weights are pounds.
package spec

import (
	"github.com/autocrate/autocrate/pkg/errors"
)

// ProductSpec describes the contents envelope being crated.
type ProductSpec struct {
	Length float64 `toml:"length" json:"length"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	Weight float64 `toml:"weight" json:"weight"`
}

// ClearanceSpec describes the air gaps designed around the product.
type ClearanceSpec struct {
	// Side is the clearance between the product and each side panel.
	Side float64 `toml:"side" json:"side"`
	// End is the clearance between the product and each end panel.
	End float64 `toml:"end" json:"end"`
	// Above is the clearance between the product top and the top panel.
	Above float64 `toml:"above" json:"above"`
	// Ground is how far the end panels stop short of the ground plane.
	Ground float64 `toml:"ground" json:"ground"`
}

// Options are the per-run layout switches.
type Options struct {
	// AllowLightSkids permits the rotated 3x4 skid class for light
	// loads.
	AllowLightSkids bool `toml:"allow_light_skids" json:"allow_light_skids"`
	// ForceSmallBoard closes a sub-minimum floorboard remainder with a
	// narrow custom board instead of leaving a gap.
	ForceSmallBoard bool `toml:"force_small_board" json:"force_small_board"`
}

// CrateSpec is the single upstream input object for one run.
type CrateSpec struct {
	Product   ProductSpec   `toml:"product" json:"product"`
	Clearance ClearanceSpec `toml:"clearance" json:"clearance"`
	Options   Options       `toml:"options" json:"options"`
}

// Validate checks the spec for physical plausibility. It returns an
// INVALID_SPEC error naming the first offending field; no layout work
// happens after a validation failure.
func (s *CrateSpec) Validate() error {
	switch {
	case s.Product.Length <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "product length must be positive, got %.3f", s.Product.Length)
	case s.Product.Width <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "product width must be positive, got %.3f", s.Product.Width)
	case s.Product.Height <= 0:
		return errors.New(errors.ErrCodeInvalidSpec, "product height must be positive, got %.3f", s.Product.Height)
	case s.Product.Weight < 0:
		return errors.New(errors.ErrCodeInvalidSpec, "product weight cannot be negative, got %.3f", s.Product.Weight)
	case s.Clearance.Side < 0:
		return errors.New(errors.ErrCodeInvalidSpec, "side clearance cannot be negative, got %.3f", s.Clearance.Side)
	case s.Clearance.End < 0:
		return errors.New(errors.ErrCodeInvalidSpec, "end clearance cannot be negative, got %.3f", s.Clearance.End)
	case s.Clearance.Above < 0:
		return errors.New(errors.ErrCodeInvalidSpec, "clearance above product cannot be negative, got %.3f", s.Clearance.Above)
	case s.Clearance.Ground < 0:
		return errors.New(errors.ErrCodeInvalidSpec, "ground clearance cannot be negative, got %.3f", s.Clearance.Ground)
	}
	return nil
}
