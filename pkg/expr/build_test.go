package expr

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/layout"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

func testLayout(t *testing.T) (*layout.CrateLayout, *policy.StockPolicy) {
	t.Helper()
	s := &spec.CrateSpec{
		Product:   spec.ProductSpec{Length: 100, Width: 40, Height: 50, Weight: 300},
		Clearance: spec.ClearanceSpec{Side: 2.5, End: 2.5, Above: 2, Ground: 1},
	}
	p := policy.Default()
	l, err := layout.Build(s, p)
	if err != nil {
		t.Fatalf("layout.Build() error = %v", err)
	}
	return l, p
}

func TestBuild(t *testing.T) {
	l, p := testLayout(t)

	set, err := Build(l, p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Spot-check the groups: inputs, envelope, skids, floorboards, and
	// one name per panel.
	wantNames := []string{
		"product_weight",
		"product_width_input",
		"BOOL_Allow_Light_Skids",
		"crate_overall_width_OD",
		"crate_panel_assembly_thickness",
		"Skid_Lumber_Callout",
		"CALC_Skid_Count",
		"CALC_Skid_Pitch",
		"X_Master_Skid_Origin_Offset",
		"CALC_FB_Active_Count",
		"FB_Inst_1_Suppress_Flag",
		"PANEL_FP_Assy_Overall_Width",
		"PANEL_BP_Assy_Overall_Height",
		"LP_Sheet_Count",
		"RP_Cleat_Callout",
		"TP_Inter_Cleat_Suppress_Flag",
	}
	for _, name := range wantNames {
		if _, ok := set.Lookup(name); !ok {
			t.Errorf("missing expression %q", name)
		}
	}

	// Values carried through from the layout.
	if v, _ := set.Lookup("CALC_Skid_Count"); v != strconv.Itoa(l.Skids.Count) {
		t.Errorf("CALC_Skid_Count = %s, want %d", v, l.Skids.Count)
	}
	if v, _ := set.Lookup("crate_overall_width_OD"); v != "47.000" {
		t.Errorf("crate_overall_width_OD = %s, want 47.000", v)
	}
	if v, _ := set.Lookup("Skid_Lumber_Callout"); v != `"4x4"` {
		t.Errorf("Skid_Lumber_Callout = %s", v)
	}
}

func TestBuildPadsSlots(t *testing.T) {
	l, p := testLayout(t)

	set, err := Build(l, p)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	// Every floorboard slot exists even beyond the active count, padded
	// with a suppress flag and sentinel geometry.
	active := l.Floor.ActiveCount()
	for i := 1; i <= p.FloorboardSlots; i++ {
		prefix := "FB_Inst_" + strconv.Itoa(i)
		flag, ok := set.Lookup(prefix + "_Suppress_Flag")
		if !ok {
			t.Fatalf("missing %s_Suppress_Flag", prefix)
		}
		if i <= active && flag != "0" {
			t.Errorf("%s_Suppress_Flag = %s, want 0 (active)", prefix, flag)
		}
		if i > active {
			if flag != "1" {
				t.Errorf("%s_Suppress_Flag = %s, want 1 (suppressed)", prefix, flag)
			}
			if w, _ := set.Lookup(prefix + "_Actual_Width"); w != "0.0001" {
				t.Errorf("%s_Actual_Width = %s, want sentinel 0.0001", prefix, w)
			}
		}
	}

	// Unused splice slots carry the "none" orientation sentinel.
	if v, _ := set.Lookup("FP_Splice_" + strconv.Itoa(p.SpliceSlots) + "_Orientation"); v != `"none"` {
		t.Errorf("last FP splice orientation = %s, want quoted none", v)
	}
}

func TestBuildDeterministic(t *testing.T) {
	l, p := testLayout(t)

	first, err := Build(l, p)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Build(l, p)
	if err != nil {
		t.Fatal(err)
	}

	a, _ := first.Render()
	b, _ := second.Render()
	if !bytes.Equal(a, b) {
		t.Error("identical layouts rendered differently")
	}
}

func TestBuildFloorboardCapacity(t *testing.T) {
	l, p := testLayout(t)
	p.FloorboardSlots = l.Floor.ActiveCount() - 1

	_, err := Build(l, p)
	if err == nil {
		t.Fatal("Build() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Errorf("error code = %v, want CAPACITY_EXCEEDED", errors.GetCode(err))
	}
}

func TestBuildSheetCapacity(t *testing.T) {
	l, p := testLayout(t)
	p.SheetSlots = 1 // end panels need three sheets

	_, err := Build(l, p)
	if err == nil {
		t.Fatal("Build() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeCapacityExceeded) {
		t.Errorf("error code = %v, want CAPACITY_EXCEEDED", errors.GetCode(err))
	}
}
