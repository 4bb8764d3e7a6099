package layout

import (
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// CrateLayout is the complete computed layout for one run: envelope,
// shipping base, and the five panels, in canonical panel order.
type CrateLayout struct {
	Spec     *spec.CrateSpec
	Envelope Envelope
	Skids    SkidLayout
	Floor    FloorboardSet
	Panels   []Panel
}

// Build computes the full crate layout from a validated spec and
// policy. The base and panel engines both consume the resolved
// envelope and are otherwise independent.
func Build(s *spec.CrateSpec, p *policy.StockPolicy) (*CrateLayout, error) {
	env, err := ResolveEnvelope(s, p)
	if err != nil {
		return nil, err
	}

	skids, err := BuildSkids(env, s, p)
	if err != nil {
		return nil, err
	}
	floor, err := BuildFloorboards(env, s, p)
	if err != nil {
		return nil, err
	}
	panels, err := BuildPanels(env, s, p)
	if err != nil {
		return nil, err
	}

	return &CrateLayout{
		Spec:     s,
		Envelope: env,
		Skids:    skids,
		Floor:    floor,
		Panels:   panels,
	}, nil
}
