package layout

import (
	"math"

	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// Floorboard is one transverse deck board. Position is the board's
// leading edge measured from the crate end along the length axis.
type Floorboard struct {
	Width  float64
	YPos   float64
	Custom bool // cut to width rather than standard stock
}

// FloorboardSet is the full deck layout. The board list is ordered by
// position and dynamically sized; the CAD slot cap applies only when
// the set is serialized.
type FloorboardSet struct {
	BoardLength    float64
	BoardThickness float64

	// UsableSpan is the run of deck between the end panel assemblies.
	UsableSpan  float64
	StartOffset float64

	// MiddleGap is the designed gap left when the remainder is too
	// narrow for any board but within the allowed gap.
	MiddleGap float64
	// CustomWidth is the width of the cut-to-fit closing board, zero
	// when every board is standard stock.
	CustomWidth float64

	Boards []Floorboard
}

// ActiveCount returns the number of boards in the deck.
func (f *FloorboardSet) ActiveCount() int { return len(f.Boards) }

// BuildFloorboards lays the deck across the usable length span.
//
// Standard widths are consumed greedily, widest first. The remainder
// is closed by, in order of preference: a custom board at or above the
// policy minimum; a forced narrow board when the run options allow it;
// a designed middle gap within the policy bound; or, as a last resort,
// splitting the final standard board and the remainder into two equal
// custom boards so coverage stays exact. The gap, when present, sits
// after the middle board of the run.
func BuildFloorboards(env Envelope, s *spec.CrateSpec, p *policy.StockPolicy) (FloorboardSet, error) {
	set := FloorboardSet{
		BoardLength:    env.InteriorWidth,
		BoardThickness: p.FloorboardThickness,
		StartOffset:    env.PanelThickness,
		UsableSpan:     env.InteriorLength - 2*env.PanelThickness,
	}
	if set.UsableSpan <= eps {
		return FloorboardSet{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"floorboards: no usable span between end panels (%.3f)", set.UsableSpan)
	}

	stock := p.SortedBoardWidths()
	var widths []float64
	var custom []bool
	remaining := set.UsableSpan
	for {
		fit := 0.0
		for _, w := range stock {
			if w <= remaining+eps {
				fit = w
				break
			}
		}
		if fit == 0 {
			break
		}
		widths = append(widths, fit)
		custom = append(custom, false)
		remaining -= fit
	}

	switch {
	case remaining <= eps:
		// Standard stock closed the span exactly.
	case remaining >= p.MinCustomBoardWidth-eps:
		set.CustomWidth = remaining
		widths = append(widths, remaining)
		custom = append(custom, true)
	case s.Options.ForceSmallBoard && remaining >= p.MinForcedBoardWidth-eps:
		set.CustomWidth = remaining
		widths = append(widths, remaining)
		custom = append(custom, true)
	case remaining <= p.MaxMiddleGap+eps:
		set.MiddleGap = remaining
	default:
		// Sliver: too wide for a gap, too narrow for a board. Split the
		// last standard board plus the sliver into two equal customs so
		// the deck still covers the span exactly.
		if len(widths) == 0 {
			return FloorboardSet{}, errors.New(errors.ErrCodeLayoutInfeasible,
				"floorboards: span %.3f too small for any board", set.UsableSpan)
		}
		half := (widths[len(widths)-1] + remaining) / 2
		widths[len(widths)-1] = half
		custom[len(custom)-1] = true
		widths = append(widths, half)
		custom = append(custom, true)
		set.CustomWidth = half
	}

	gapAfter := -1
	if set.MiddleGap > eps {
		gapAfter = int(math.Ceil(float64(len(widths))/2)) - 1
	}
	y := set.StartOffset
	set.Boards = make([]Floorboard, len(widths))
	for i, w := range widths {
		set.Boards[i] = Floorboard{Width: w, YPos: y, Custom: custom[i]}
		y += w
		if i == gapAfter {
			y += set.MiddleGap
		}
	}
	return set, nil
}
