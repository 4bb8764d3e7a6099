package layout

import "math"

// Sheet is one rectangular plywood piece of a panel, positioned by its
// lower-left corner on the panel face.
type Sheet struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Seam is a boundary between two adjacent sheets. A vertical seam is a
// line of constant X; a horizontal seam a line of constant Y.
type Seam struct {
	Orientation Orientation
	Position    float64
}

// partitionSheets splits a panel face into the minimum number of equal
// sheets such that every piece fits the stock limits. Width splits
// first, then height, so a face exceeding both limits yields a grid.
// Sheets are ordered column-major (left to right, bottom to top) and
// seams are ordered vertical-before-horizontal, each ascending.
func partitionSheets(w, h, maxW, maxH float64) ([]Sheet, []Seam) {
	nx, ny := 1, 1
	if w > maxW+eps {
		nx = int(math.Ceil(w / maxW))
	}
	if h > maxH+eps {
		ny = int(math.Ceil(h / maxH))
	}
	segW := w / float64(nx)
	segH := h / float64(ny)

	sheets := make([]Sheet, 0, nx*ny)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			sheets = append(sheets, Sheet{
				X:      float64(ix) * segW,
				Y:      float64(iy) * segH,
				Width:  segW,
				Height: segH,
			})
		}
	}

	seams := make([]Seam, 0, nx+ny-2)
	for ix := 1; ix < nx; ix++ {
		seams = append(seams, Seam{Orientation: Vertical, Position: float64(ix) * segW})
	}
	for iy := 1; iy < ny; iy++ {
		seams = append(seams, Seam{Orientation: Horizontal, Position: float64(iy) * segH})
	}
	return sheets, seams
}
