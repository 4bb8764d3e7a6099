package policy

import (
	"testing"

	"github.com/autocrate/autocrate/pkg/errors"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestSelectSkid(t *testing.T) {
	p := Default()

	tests := []struct {
		name       string
		weight     float64
		allowLight bool
		callout    string
	}{
		{"light load without light skids", 300, false, "4x4"},
		{"light load with light skids", 300, true, "3x4 (oriented for 3.5 H)"},
		{"light boundary excluded", 500, true, "4x4"},
		{"mid band", 4500, false, "4x4"},
		{"heavy band", 4501, false, "4x6"},
		{"top of heavy band", 20000, false, "4x6"},
		{"beyond all bands", 25000, false, "4x6 (defaulted)"},
		{"allow light ignored when heavy", 8000, true, "4x6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.SelectSkid(tt.weight, tt.allowLight)
			if got.Callout != tt.callout {
				t.Errorf("SelectSkid(%v, %v).Callout = %q, want %q", tt.weight, tt.allowLight, got.Callout, tt.callout)
			}
		})
	}
}

func TestSelectSkidDimensions(t *testing.T) {
	p := Default()

	// The rotated light-duty skid is taller than wide.
	light := p.SelectSkid(100, true)
	if light.Height != 3.5 || light.Width != 2.5 {
		t.Errorf("light skid = %.1fx%.1f, want 3.5x2.5", light.Height, light.Width)
	}

	heavy := p.SelectSkid(10000, false)
	if heavy.Width != 5.5 {
		t.Errorf("heavy skid width = %v, want 5.5", heavy.Width)
	}
	if heavy.MaxPitch != 24 {
		t.Errorf("heavy skid max pitch = %v, want 24", heavy.MaxPitch)
	}
}

func TestSelectCleat(t *testing.T) {
	p := Default()

	tests := []struct {
		weight  float64
		callout string
	}{
		{100, "1x3"},
		{500, "1x3"},
		{501, "1x4"},
		{4500, "1x4"},
		{4501, "2x4"},
		{50000, "2x4"},
	}

	for _, tt := range tests {
		got := p.SelectCleat(tt.weight)
		if got.Callout != tt.callout {
			t.Errorf("SelectCleat(%v).Callout = %q, want %q", tt.weight, got.Callout, tt.callout)
		}
	}
}

func TestSortedBoardWidths(t *testing.T) {
	p := Default()
	got := p.SortedBoardWidths()

	want := []float64{11.25, 9.25, 7.25, 5.5}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedBoardWidths()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// The policy's own slice is untouched.
	if p.StandardBoardWidths[0] != 5.5 {
		t.Errorf("StandardBoardWidths mutated: %v", p.StandardBoardWidths)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StockPolicy)
	}{
		{"zero sheet width", func(p *StockPolicy) { p.SheetMaxWidth = 0 }},
		{"zero sheathing", func(p *StockPolicy) { p.SheathingThickness = 0 }},
		{"no board widths", func(p *StockPolicy) { p.StandardBoardWidths = nil }},
		{"negative board width", func(p *StockPolicy) { p.StandardBoardWidths = []float64{5.5, -1} }},
		{"negative middle gap", func(p *StockPolicy) { p.MaxMiddleGap = -0.1 }},
		{"zero filler pitch", func(p *StockPolicy) { p.MaxFillerPitch = 0 }},
		{"empty skid table", func(p *StockPolicy) { p.SkidTable = nil }},
		{"skid table without catch-all", func(p *StockPolicy) {
			p.SkidTable = []SkidClass{{MaxWeight: 4500, Height: 3.5, Width: 3.5, Callout: "4x4", MaxPitch: 30}}
		}},
		{"skid class without pitch", func(p *StockPolicy) { p.SkidTable[0].MaxPitch = 0 }},
		{"cleat table without catch-all", func(p *StockPolicy) {
			p.CleatTable = []CleatGauge{{MaxWeight: 500, Thickness: 0.75, Width: 2.5, Callout: "1x3"}}
		}},
		{"degenerate cleat gauge", func(p *StockPolicy) { p.CleatTable[0].Width = 0 }},
		{"zero floorboard slots", func(p *StockPolicy) { p.FloorboardSlots = 0 }},
		{"skid cap below two", func(p *StockPolicy) { p.MaxSkidCount = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidPolicy) {
				t.Errorf("error code = %v, want INVALID_POLICY", errors.GetCode(err))
			}
		})
	}
}
