package layout

import (
	"testing"

	"github.com/autocrate/autocrate/pkg/errors"
	"github.com/autocrate/autocrate/pkg/policy"
	"github.com/autocrate/autocrate/pkg/spec"
)

// floorEnv builds an envelope whose usable deck span is exactly usable.
func floorEnv(usable float64) Envelope {
	return Envelope{
		InteriorWidth:  45,
		InteriorLength: usable + 2,
		PanelThickness: 1,
	}
}

func floorSpec(force bool) *spec.CrateSpec {
	return &spec.CrateSpec{
		Product: spec.ProductSpec{Length: 1, Width: 1, Height: 1, Weight: 300},
		Options: spec.Options{ForceSmallBoard: force},
	}
}

// deckCoverage sums board widths plus the designed gap.
func deckCoverage(set FloorboardSet) float64 {
	total := set.MiddleGap
	for _, b := range set.Boards {
		total += b.Width
	}
	return total
}

func TestBuildFloorboards(t *testing.T) {
	p := policy.Default()

	tests := []struct {
		name    string
		usable  float64
		force   bool
		widths  []float64
		customs int
		gap     float64
	}{
		{
			name:   "standard stock closes exactly",
			usable: 20.5,
			widths: []float64{11.25, 9.25},
		},
		{
			name:   "descending first fit",
			usable: 16.75,
			widths: []float64{11.25, 5.5},
		},
		{
			name:    "custom board closes the remainder",
			usable:  14.25,
			widths:  []float64{11.25, 3},
			customs: 1,
		},
		{
			name:    "forced small board",
			usable:  11.75,
			force:   true,
			widths:  []float64{11.25, 0.5},
			customs: 1,
		},
		{
			name:   "sub-gap remainder becomes a middle gap",
			usable: 20.7,
			widths: []float64{11.25, 9.25},
			gap:    0.2,
		},
		{
			name:    "sliver redistributes into two equal customs",
			usable:  11.75,
			widths:  []float64{5.875, 5.875},
			customs: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := BuildFloorboards(floorEnv(tt.usable), floorSpec(tt.force), p)
			if err != nil {
				t.Fatalf("BuildFloorboards() error = %v", err)
			}

			if set.ActiveCount() != len(tt.widths) {
				t.Fatalf("ActiveCount() = %d, want %d", set.ActiveCount(), len(tt.widths))
			}
			for i, w := range tt.widths {
				if !near(set.Boards[i].Width, w) {
					t.Errorf("board %d width = %v, want %v", i, set.Boards[i].Width, w)
				}
			}

			customs := 0
			for _, b := range set.Boards {
				if b.Custom {
					customs++
				}
			}
			if customs != tt.customs {
				t.Errorf("custom boards = %d, want %d", customs, tt.customs)
			}
			if !near(set.MiddleGap, tt.gap) {
				t.Errorf("MiddleGap = %v, want %v", set.MiddleGap, tt.gap)
			}

			// The deck always covers the span exactly.
			if !near(deckCoverage(set), tt.usable) {
				t.Errorf("coverage = %v, want %v", deckCoverage(set), tt.usable)
			}
		})
	}
}

func TestBuildFloorboardsPositions(t *testing.T) {
	p := policy.Default()

	// Two boards with a 0.2 gap after the first.
	set, err := BuildFloorboards(floorEnv(20.7), floorSpec(false), p)
	if err != nil {
		t.Fatalf("BuildFloorboards() error = %v", err)
	}

	if !near(set.StartOffset, 1) {
		t.Errorf("StartOffset = %v, want panel thickness 1", set.StartOffset)
	}
	if !near(set.Boards[0].YPos, 1) {
		t.Errorf("board 0 YPos = %v, want 1", set.Boards[0].YPos)
	}
	// The gap sits between the two boards.
	want := 1 + 11.25 + 0.2
	if !near(set.Boards[1].YPos, want) {
		t.Errorf("board 1 YPos = %v, want %v", set.Boards[1].YPos, want)
	}
	// The last board lands flush against the far panel.
	end := set.Boards[1].YPos + set.Boards[1].Width
	if !near(end, set.StartOffset+set.UsableSpan) {
		t.Errorf("deck end = %v, want %v", end, set.StartOffset+set.UsableSpan)
	}
}

func TestBuildFloorboardsBoardLength(t *testing.T) {
	p := policy.Default()
	set, err := BuildFloorboards(floorEnv(20.5), floorSpec(false), p)
	if err != nil {
		t.Fatalf("BuildFloorboards() error = %v", err)
	}
	if !near(set.BoardLength, 45) {
		t.Errorf("BoardLength = %v, want interior width 45", set.BoardLength)
	}
	if !near(set.BoardThickness, p.FloorboardThickness) {
		t.Errorf("BoardThickness = %v, want %v", set.BoardThickness, p.FloorboardThickness)
	}
}

func TestBuildFloorboardsCoverageSweep(t *testing.T) {
	// Exact coverage (or a within-bound gap) must hold across arbitrary
	// spans, including ones that don't land on stock boundaries.
	p := policy.Default()
	for usable := 6.0; usable < 120; usable += 1.37 {
		set, err := BuildFloorboards(floorEnv(usable), floorSpec(false), p)
		if err != nil {
			t.Fatalf("usable %.2f: BuildFloorboards() error = %v", usable, err)
		}
		if !near(deckCoverage(set), usable) {
			t.Errorf("usable %.2f: coverage = %v", usable, deckCoverage(set))
		}
		if set.MiddleGap > p.MaxMiddleGap+eps {
			t.Errorf("usable %.2f: gap %v exceeds bound", usable, set.MiddleGap)
		}
	}
}

func TestBuildFloorboardsInfeasible(t *testing.T) {
	p := policy.Default()

	tests := []struct {
		name   string
		usable float64
	}{
		{"span smaller than any board", 0.5},
		{"no span between end panels", -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFloorboards(floorEnv(tt.usable), floorSpec(false), p)
			if err == nil {
				t.Fatal("BuildFloorboards() = nil, want error")
			}
			if !errors.Is(err, errors.ErrCodeLayoutInfeasible) {
				t.Errorf("error code = %v, want LAYOUT_INFEASIBLE", errors.GetCode(err))
			}
		})
	}
}
