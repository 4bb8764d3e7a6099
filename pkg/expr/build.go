package expr

import (
	"strconv"

	"github.com/autocrate/autocrate/pkg/buildinfo"
	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/layout"
	"github.com/autocrate/autocrate/pkg/policy"
)

// panelPrefixes maps the canonical panel order to the expression name
// prefixes the CAD template patterns against.
var panelPrefixes = map[layout.PanelName]string{
	layout.PanelFront: "FP",
	layout.PanelBack:  "BP",
	layout.PanelLeft:  "LP",
	layout.PanelRight: "RP",
	layout.PanelTop:   "TP",
}

// Build flattens a computed crate layout into the ordered expression
// set. Every geometric, count, and material attribute needed to
// rebuild the instanced geometry appears exactly once; instanced
// components are padded out to their policy slot caps with suppression
// flags so the downstream assembly always finds every name.
//
// Fails with CAPACITY_EXCEEDED when a layout needs more instances than
// a slot cap provides, reporting required versus available.
func Build(l *layout.CrateLayout, p *policy.StockPolicy) (*Set, error) {
	s := NewSet()

	s.Comment("NX Expressions - crate base and panel layout")
	s.Comment("Generator: autocrate %s", buildinfo.Version)
	s.Blank()

	buildInputs(s, l)
	buildEnvelope(s, l)
	buildSkids(s, l)
	if err := buildFloorboards(s, l, p); err != nil {
		return nil, err
	}
	for _, pn := range l.Panels {
		if err := buildPanel(s, &pn, p); err != nil {
			return nil, err
		}
	}
	s.Comment("End of Expressions")

	if err := s.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func buildInputs(s *Set, l *layout.CrateLayout) {
	in := l.Spec
	s.Comment("--- USER INPUTS ---")
	s.Number("lbm", "product_weight", in.Product.Weight, 3)
	s.Number("Inch", "product_length_input", in.Product.Length, 3)
	s.Number("Inch", "product_width_input", in.Product.Width, 3)
	s.Number("Inch", "product_height_input", in.Product.Height, 3)
	s.Number("Inch", "clearance_side_input", in.Clearance.Side, 3)
	s.Number("Inch", "clearance_end_input", in.Clearance.End, 3)
	s.Number("Inch", "clearance_above_input", in.Clearance.Above, 3)
	s.Number("Inch", "clearance_ground_input", in.Clearance.Ground, 3)
	s.Flag("BOOL_Allow_Light_Skids", in.Options.AllowLightSkids)
	s.Flag("BOOL_Force_Small_Floorboard", in.Options.ForceSmallBoard)
	s.Blank()
}

func buildEnvelope(s *Set, l *layout.CrateLayout) {
	s.Comment("--- CALCULATED CRATE DIMENSIONS ---")
	s.Number("Inch", "crate_overall_width_OD", l.Envelope.OverallWidth, 3)
	s.Number("Inch", "crate_overall_length_OD", l.Envelope.OverallLength, 3)
	s.Number("Inch", "crate_overall_height_OD", l.Envelope.OverallHeight, 3)
	s.Number("Inch", "crate_panel_assembly_thickness", l.Envelope.PanelThickness, 3)
	s.Blank()
}

func buildSkids(s *Set, l *layout.CrateLayout) {
	sk := l.Skids
	s.Comment("--- SKID PARAMETERS ---")
	s.String("Skid_Lumber_Callout", sk.Callout)
	s.Number("Inch", "Skid_Actual_Height", sk.Height, 3)
	s.Number("Inch", "Skid_Actual_Width", sk.Width, 3)
	s.Number("Inch", "Skid_Actual_Length", sk.Length, 3)
	s.Number("Inch", "RULE_Skid_Max_Spacing", sk.MaxPitch, 3)
	s.Int("CALC_Skid_Count", sk.Count)
	s.Number("Inch", "CALC_Skid_Pitch", sk.Pitch, 4)
	s.Number("Inch", "X_Master_Skid_Origin_Offset", sk.OriginOffset, 4)
	s.Blank()
}

func buildFloorboards(s *Set, l *layout.CrateLayout, p *policy.StockPolicy) error {
	fb := l.Floor
	if n := fb.ActiveCount(); n > p.FloorboardSlots {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"floorboards: %d required, %d slots available", n, p.FloorboardSlots)
	}
	s.Comment("--- FLOORBOARD PARAMETERS ---")
	s.Number("Inch", "FB_Board_Actual_Length", fb.BoardLength, 3)
	s.Number("Inch", "FB_Board_Actual_Thickness", fb.BoardThickness, 3)
	s.Number("Inch", "CALC_FB_Actual_Middle_Gap", fb.MiddleGap, 4)
	s.Number("Inch", "CALC_FB_Center_Custom_Board_Width", fb.CustomWidth, 4)
	s.Number("Inch", "CALC_FB_Start_Y_Offset_Abs", fb.StartOffset, 3)
	s.Int("CALC_FB_Active_Count", fb.ActiveCount())
	s.Comment("Floorboard instance data")
	for i := 0; i < p.FloorboardSlots; i++ {
		prefix := instName("FB_Inst", i+1)
		if i < len(fb.Boards) {
			b := fb.Boards[i]
			s.Flag(prefix+"_Suppress_Flag", false)
			s.Number("Inch", prefix+"_Actual_Width", b.Width, 4)
			s.Number("Inch", prefix+"_Y_Pos_Abs", b.YPos, 4)
		} else {
			// Suppressed slots carry sentinel geometry the CAD sketch
			// tolerates; only the flag is meaningful.
			s.Flag(prefix+"_Suppress_Flag", true)
			s.Number("Inch", prefix+"_Actual_Width", 0.0001, 4)
			s.Number("Inch", prefix+"_Y_Pos_Abs", 0, 4)
		}
	}
	s.Blank()
	return nil
}

func buildPanel(s *Set, pn *layout.Panel, p *policy.StockPolicy) error {
	pre := panelPrefixes[pn.Name]
	if len(pn.Sheets) > p.SheetSlots {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"%s panel: %d sheets required, %d slots available", pn.Name, len(pn.Sheets), p.SheetSlots)
	}
	splices := pn.CleatsByRole(layout.RoleSplice)
	if len(splices) > p.SpliceSlots {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"%s panel: %d splice cleats required, %d slots available", pn.Name, len(splices), p.SpliceSlots)
	}
	fillers := pn.CleatsByRole(layout.RoleFiller)

	s.Comment("--- %s PANEL ---", pre)
	s.Number("Inch", "PANEL_"+pre+"_Assy_Overall_Width", pn.Width, 3)
	s.Number("Inch", "PANEL_"+pre+"_Assy_Overall_Height", pn.Height, 3)
	s.Number("Inch", "PANEL_"+pre+"_Assy_Overall_Depth", pn.Depth, 3)

	s.Comment("Plywood sheathing")
	s.Number("Inch", pre+"_Plywood_Thickness", pn.Sheathing, 3)
	s.Int(pre+"_Sheet_Count", len(pn.Sheets))
	for i := 0; i < p.SheetSlots; i++ {
		prefix := instName(pre+"_Sheet", i+1)
		if i < len(pn.Sheets) {
			sh := pn.Sheets[i]
			s.Flag(prefix+"_Suppress_Flag", false)
			s.Number("Inch", prefix+"_Width", sh.Width, 3)
			s.Number("Inch", prefix+"_Height", sh.Height, 3)
			s.Number("Inch", prefix+"_X_Pos", sh.X, 4)
			s.Number("Inch", prefix+"_Y_Pos", sh.Y, 4)
		} else {
			s.Flag(prefix+"_Suppress_Flag", true)
			s.Number("Inch", prefix+"_Width", 0.0001, 3)
			s.Number("Inch", prefix+"_Height", 0.0001, 3)
			s.Number("Inch", prefix+"_X_Pos", 0, 4)
			s.Number("Inch", prefix+"_Y_Pos", 0, 4)
		}
	}

	s.Comment("Cleat material")
	s.String(pre+"_Cleat_Callout", pn.Gauge.Callout)
	s.Number("Inch", pre+"_Cleat_Thickness", pn.Gauge.Thickness, 3)
	s.Number("Inch", pre+"_Cleat_Member_Width", pn.Gauge.Width, 3)

	s.Comment("Edge cleats (perimeter frame)")
	s.Number("Inch", pre+"_Edge_Vertical_Cleat_Length", pn.Height, 3)
	s.Int(pre+"_Edge_Vertical_Cleat_Count", 2)
	s.Number("Inch", pre+"_Edge_Horizontal_Cleat_Length", edgeHorizontalLength(pn), 3)
	s.Int(pre+"_Edge_Horizontal_Cleat_Count", 2)

	s.Comment("Splice cleats (one per sheet seam)")
	s.Int(pre+"_Splice_Cleat_Count", len(splices))
	for i := 0; i < p.SpliceSlots; i++ {
		prefix := instName(pre+"_Splice", i+1)
		if i < len(splices) {
			c := splices[i]
			s.Flag(prefix+"_Suppress_Flag", false)
			s.String(prefix+"_Orientation", string(c.Orientation))
			s.Number("Inch", prefix+"_Center_Pos", cleatCenter(c), 4)
			s.Number("Inch", prefix+"_Length", c.Length, 3)
		} else {
			s.Flag(prefix+"_Suppress_Flag", true)
			s.String(prefix+"_Orientation", "none")
			s.Number("Inch", prefix+"_Center_Pos", 0, 4)
			s.Number("Inch", prefix+"_Length", 0.0001, 3)
		}
	}

	s.Comment("Filler cleats (intermediate supports)")
	s.Flag(pre+"_Inter_Cleat_Suppress_Flag", pn.Fillers.Suppressed)
	s.Int(pre+"_Inter_Cleat_Count", pn.Fillers.Count)
	s.Number("Inch", pre+"_Inter_Cleat_Length", pn.Fillers.Length, 3)
	s.Number("Inch", pre+"_Inter_Cleat_Pitch", pn.Fillers.Pitch, 4)
	for i := 0; i < p.FillerSlots; i++ {
		name := instName(pre+"_Inter_Cleat", i+1) + "_Center_Pos"
		if i < len(fillers) {
			s.Number("Inch", name, cleatCenter(fillers[i]), 4)
		} else {
			s.Number("Inch", name, 0, 4)
		}
	}
	s.Blank()
	return nil
}

// cleatCenter returns the centerline coordinate of a cleat along its
// placement axis: X for vertical members, Y for horizontal ones. For a
// splice cleat this is exactly the seam coordinate.
func cleatCenter(c layout.Cleat) float64 {
	if c.Orientation == layout.Vertical {
		return c.X + c.Width/2
	}
	return c.Y + c.Width/2
}

func instName(prefix string, i int) string {
	return prefix + "_" + strconv.Itoa(i)
}

func edgeHorizontalLength(pn *layout.Panel) float64 {
	for _, c := range pn.Cleats {
		if c.Role == layout.RoleEdge && c.Orientation == layout.Horizontal {
			return c.Length
		}
	}
	return 0
}
