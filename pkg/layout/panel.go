package layout

import (
	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// PanelName identifies one of the five crate panels.
type PanelName string

const (
	PanelFront PanelName = "front"
	PanelBack  PanelName = "back"
	PanelLeft  PanelName = "left"
	PanelRight PanelName = "right"
	PanelTop   PanelName = "top"
)

// PanelNames is the canonical panel ordering used everywhere a panel
// sequence is produced or serialized.
var PanelNames = []PanelName{PanelFront, PanelBack, PanelLeft, PanelRight, PanelTop}

// Panel is one reinforced plywood face of the crate. Width and Height
// are the face dimensions; for the top panel, Height runs along the
// crate length. Depth is the assembly thickness (sheathing plus cleat
// standoff).
type Panel struct {
	Name   PanelName
	Width  float64
	Height float64
	Depth  float64

	Sheathing float64 // plywood thickness
	Gauge     policy.CleatGauge

	Sheets  []Sheet
	Seams   []Seam
	Cleats  []Cleat
	Fillers FillerGroup
}

// CleatsByRole returns the panel's cleats with the given role, in
// placement order.
func (p *Panel) CleatsByRole(role CleatRole) []Cleat {
	var out []Cleat
	for _, c := range p.Cleats {
		if c.Role == role {
			out = append(out, c)
		}
	}
	return out
}

// BuildPanels computes the five panels of the sandwich assembly.
//
// The left and right (end) panels are sandwiched between the front and
// back panels, so their face width is the overall length minus both
// panel assemblies, and the front/back width covers them at the full
// overall width. End panels sit on the skids rather than reaching the
// ground, trading the ground clearance for the skid height. The top
// panel covers every vertical panel.
func BuildPanels(env Envelope, s *spec.CrateSpec, p *policy.StockPolicy) ([]Panel, error) {
	gauge := p.SelectCleat(s.Product.Weight)
	skid := p.SelectSkid(s.Product.Weight, s.Options.AllowLightSkids)

	heightBase := p.FloorboardThickness + s.Product.Height + s.Clearance.Above
	endHeight := heightBase + skid.Height - s.Clearance.Ground
	endFaceWidth := env.OverallLength - 2*env.PanelThickness

	faces := []struct {
		name PanelName
		w, h float64
	}{
		{PanelFront, env.OverallWidth, heightBase},
		{PanelBack, env.OverallWidth, heightBase},
		{PanelLeft, endFaceWidth, endHeight},
		{PanelRight, endFaceWidth, endHeight},
		{PanelTop, env.OverallWidth, env.OverallLength},
	}

	panels := make([]Panel, 0, len(faces))
	for _, f := range faces {
		pn, err := buildPanel(f.name, f.w, f.h, gauge, p)
		if err != nil {
			return nil, err
		}
		panels = append(panels, pn)
	}
	return panels, nil
}

func buildPanel(name PanelName, w, h float64, gauge policy.CleatGauge, p *policy.StockPolicy) (Panel, error) {
	if w <= 0 || h <= 0 {
		return Panel{}, errors.New(errors.ErrCodeLayoutInfeasible,
			"%s panel face is degenerate (%.3f x %.3f)", name, w, h)
	}

	pn := Panel{
		Name:      name,
		Width:     w,
		Height:    h,
		Depth:     p.SheathingThickness + gauge.Thickness,
		Sheathing: p.SheathingThickness,
		Gauge:     gauge,
	}
	pn.Sheets, pn.Seams = partitionSheets(w, h, p.SheetMaxWidth, p.SheetMaxHeight)

	cleats, fillers, err := placeCleats(w, h, pn.Seams, gauge, p.MaxFillerPitch, p.FillerSlots)
	if err != nil {
		return Panel{}, errors.Wrap(errors.GetCode(err), err, "%s panel", name)
	}
	pn.Cleats = cleats
	pn.Fillers = fillers
	return pn, nil
}
