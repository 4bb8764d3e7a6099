package layout

import (
	"math"
	"sort"

	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/policy"
)

// CleatRole distinguishes the three structural jobs a cleat does.
type CleatRole string

const (
	// RoleEdge cleats form the panel's perimeter frame.
	RoleEdge CleatRole = "edge"
	// RoleSplice cleats back a seam between two sheets.
	RoleSplice CleatRole = "splice"
	// RoleFiller cleats hold interior spans under the spacing limit.
	RoleFiller CleatRole = "filler"
)

// Orientation is the long axis of a cleat or seam on the panel face.
type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Cleat is one structural strip on a panel, positioned by its
// lower-left corner on the panel face.
type Cleat struct {
	Role        CleatRole
	Orientation Orientation
	Thickness   float64
	Width       float64
	Length      float64
	X           float64
	Y           float64
}

// FillerGroup summarises the filler pattern for the serializer. The
// whole pattern is suppressed as a group when no interior span exceeds
// the spacing limit.
type FillerGroup struct {
	Count      int
	Length     float64
	Pitch      float64 // largest resulting sub-span, zero when suppressed
	Suppressed bool
}

// placeCleats builds the full cleat set for one panel face: the
// four-member perimeter frame, one splice cleat per seam, and filler
// cleats along the vertical framing axis wherever the clear span
// between adjacent vertical members exceeds maxPitch.
//
// Vertical edge cleats run the full panel height; horizontal edge
// cleats fit between them. Splice and filler cleats span the clear run
// between the bounding edge cleats, never the gross panel dimension.
func placeCleats(w, h float64, seams []Seam, g policy.CleatGauge, maxPitch float64, fillerCap int) ([]Cleat, FillerGroup, error) {
	cw := g.Width
	clearW := math.Max(w-2*cw, 0)
	clearH := math.Max(h-2*cw, 0)

	cleats := []Cleat{
		{Role: RoleEdge, Orientation: Vertical, Thickness: g.Thickness, Width: cw, Length: h, X: 0, Y: 0},
		{Role: RoleEdge, Orientation: Vertical, Thickness: g.Thickness, Width: cw, Length: h, X: w - cw, Y: 0},
		{Role: RoleEdge, Orientation: Horizontal, Thickness: g.Thickness, Width: cw, Length: clearW, X: cw, Y: 0},
		{Role: RoleEdge, Orientation: Horizontal, Thickness: g.Thickness, Width: cw, Length: clearW, X: cw, Y: h - cw},
	}

	// One splice cleat per seam, centered on it.
	vertCenters := []float64{cw / 2, w - cw/2}
	for _, s := range seams {
		c := Cleat{Role: RoleSplice, Thickness: g.Thickness, Width: cw, Orientation: s.Orientation}
		if s.Orientation == Vertical {
			c.Length = clearH
			c.X = s.Position - cw/2
			c.Y = cw
			vertCenters = append(vertCenters, s.Position)
		} else {
			c.Length = clearW
			c.X = cw
			c.Y = s.Position - cw/2
		}
		cleats = append(cleats, c)
	}

	// Fillers between adjacent vertical members.
	sort.Float64s(vertCenters)
	group := FillerGroup{Suppressed: true, Length: clearH}
	for i := 1; i < len(vertCenters); i++ {
		span := vertCenters[i] - vertCenters[i-1]
		if span <= maxPitch+eps {
			continue
		}
		n := int(math.Ceil(span/maxPitch-eps)) - 1
		pitch := span / float64(n+1)
		if pitch < cw {
			return nil, FillerGroup{}, errors.New(errors.ErrCodeLayoutInfeasible,
				"filler pitch %.3f narrower than the cleat member (%.3f)", pitch, cw)
		}
		for k := 1; k <= n; k++ {
			center := vertCenters[i-1] + float64(k)*pitch
			cleats = append(cleats, Cleat{
				Role:        RoleFiller,
				Orientation: Vertical,
				Thickness:   g.Thickness,
				Width:       cw,
				Length:      clearH,
				X:           center - cw/2,
				Y:           cw,
			})
		}
		group.Count += n
		group.Suppressed = false
		if pitch > group.Pitch {
			group.Pitch = pitch
		}
	}
	if group.Count > fillerCap {
		return nil, FillerGroup{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"%d filler cleats required, cap is %d (check max_filler_pitch)", group.Count, fillerCap)
	}
	if group.Suppressed {
		group.Length = 0
	}
	return cleats, group, nil
}
