package layout

import (
	"math"

	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// SkidLayout describes the longitudinal support beams under the crate.
// Skids run the full interior length and are spaced evenly across the
// interior width, symmetric about X=0, with the outermost skids flush
// with the crate sides.
type SkidLayout struct {
	// Lumber cross-section and the callout it was selected from.
	Height  float64
	Width   float64
	Length  float64
	Callout string

	// MaxPitch is the policy spacing rule the layout was solved
	// against, kept for the serialized output.
	MaxPitch float64

	Count int
	// Pitch is the centerline-to-centerline spacing.
	Pitch float64
	// FirstX is the centerline of the first skid.
	FirstX float64
	// OriginOffset is the left face of the first skid, the master
	// origin the CAD pattern instances from.
	OriginOffset float64
}

// BuildSkids solves the skid count and pitch for the crate base.
//
// The lumber class comes from the policy's weight-banded skid table.
// The count is the minimum n >= 2 such that the centerline span
// divided into n-1 gaps keeps every gap at or under the class's
// maximum pitch; ties therefore always resolve to the cheaper (lower)
// count. Fails with LAYOUT_INFEASIBLE when the crate is too narrow for
// two skids or the required count exceeds the policy cap.
func BuildSkids(env Envelope, s *spec.CrateSpec, p *policy.StockPolicy) (SkidLayout, error) {
	class := p.SelectSkid(s.Product.Weight, s.Options.AllowLightSkids)

	sk := SkidLayout{
		Height:   class.Height,
		Width:    class.Width,
		Length:   env.InteriorLength,
		Callout:  class.Callout,
		MaxPitch: class.MaxPitch,
	}

	span := env.InteriorWidth - class.Width // centerline span at full width
	if span < class.Width-eps {
		// Two flush skids would overlap.
		return SkidLayout{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"skids: interior width %.3f cannot carry two %s skids", env.InteriorWidth, class.Callout)
	}

	count := int(math.Ceil(span/class.MaxPitch-eps)) + 1
	if count < 2 {
		count = 2
	}
	if count > p.MaxSkidCount {
		return SkidLayout{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"skids: %d required to hold pitch under %.1f, cap is %d", count, class.MaxPitch, p.MaxSkidCount)
	}

	sk.Count = count
	sk.Pitch = span / float64(count-1)
	sk.FirstX = -span / 2
	sk.OriginOffset = sk.FirstX - class.Width/2
	return sk, nil
}
