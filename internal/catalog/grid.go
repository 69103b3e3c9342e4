package catalog

import (
	"fmt"
	"math"
)

// TextBandRatio is the largest share of a cell height a single text band may take.
const TextBandRatio = 0.15

// DefaultLineHeight is the text band height in points when none is configured.
const DefaultLineHeight = 10.0

// GridConfig is the requested grid shape.
type GridConfig struct {
	Rows       int
	Cols       int
	LineHeight float64 // points reserved for one line of label or note text
}

// CellRegions holds the stacked sub-regions of one cell: image on top, then
// label, then note. A disabled band has zero height.
type CellRegions struct {
	Cell  Rect `json:"cell"`
	Image Rect `json:"image"`
	Label Rect `json:"label"`
	Note  Rect `json:"note"`
}

// GridLayout is the fixed cell geometry shared by every cell on every page.
type GridLayout struct {
	Rows       int     `json:"rows"`
	Cols       int     `json:"cols"`
	CellW      float64 `json:"cell_w"`
	CellH      float64 `json:"cell_h"`
	LabelBandH float64 `json:"label_band_h"`
	NoteBandH  float64 `json:"note_band_h"`

	origin   Rect        // usable region
	relative CellRegions // regions relative to the cell top-left
}

// Capacity returns the number of cells on one page.
func (g GridLayout) Capacity() int {
	return g.Rows * g.Cols
}

// ImageH returns the height of the image region of every cell.
func (g GridLayout) ImageH() float64 {
	return g.relative.Image.H
}

// Relative returns the cell sub-regions with the cell top-left at (0, 0).
func (g GridLayout) Relative() CellRegions {
	return g.relative
}

// NewGridLayout divides the usable region into rows x cols equal cells and
// reserves label and note bands when enabled.
func NewGridLayout(usable Rect, gc GridConfig, hasLabels, hasNotes bool) (GridLayout, error) {
	if !validShape(gc.Rows, gc.Cols) {
		return GridLayout{}, fmt.Errorf("%w: grid %dx%d", ErrInvalidGeometry, gc.Rows, gc.Cols)
	}
	if !finite(usable.X, usable.Y, usable.W, usable.H, gc.LineHeight) {
		return GridLayout{}, fmt.Errorf("%w: non-finite usable area %+v or line height %v", ErrInvalidGeometry, usable, gc.LineHeight)
	}
	if usable.W <= 0 || usable.H <= 0 {
		return GridLayout{}, fmt.Errorf("%w: usable area %.2fx%.2f", ErrInvalidGeometry, usable.W, usable.H)
	}
	lineH := gc.LineHeight
	if lineH <= 0 {
		lineH = DefaultLineHeight
	}

	cellW := usable.W / float64(gc.Cols)
	cellH := usable.H / float64(gc.Rows)

	var labelH, noteH float64
	if hasLabels {
		labelH = min(TextBandRatio*cellH, lineH)
	}
	if hasNotes {
		noteH = min(TextBandRatio*cellH, lineH)
	}
	imageH := cellH - labelH - noteH
	if imageH <= 0 {
		return GridLayout{}, fmt.Errorf("%w: image region height %.2f in %.2fx%.2f cell", ErrInvalidGeometry, imageH, cellW, cellH)
	}

	return GridLayout{
		Rows:       gc.Rows,
		Cols:       gc.Cols,
		CellW:      cellW,
		CellH:      cellH,
		LabelBandH: labelH,
		NoteBandH:  noteH,
		origin:     usable,
		relative: CellRegions{
			Cell:  Rect{0, 0, cellW, cellH},
			Image: Rect{0, 0, cellW, imageH},
			Label: Rect{0, imageH, cellW, labelH},
			Note:  Rect{0, imageH + labelH, cellW, noteH},
		},
	}, nil
}

// Cell returns the absolute sub-regions for the cell at row, col.
func (g GridLayout) Cell(row, col int) CellRegions {
	dx := g.origin.X + float64(col)*g.CellW
	dy := g.origin.Y + float64(row)*g.CellH
	return CellRegions{
		Cell:  offset(g.relative.Cell, dx, dy),
		Image: offset(g.relative.Image, dx, dy),
		Label: offset(g.relative.Label, dx, dy),
		Note:  offset(g.relative.Note, dx, dy),
	}
}

func offset(r Rect, dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// validShape reports whether rows x cols is at least one cell and fits in an int.
func validShape(rows, cols int) bool {
	return rows >= 1 && cols >= 1 && rows <= math.MaxInt/cols
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
