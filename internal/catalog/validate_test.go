package catalog

import (
	"strings"
	"testing"
)

func validationFixture(t *testing.T) (PageGeometry, GridLayout) {
	t.Helper()
	geometry, err := NewPageGeometry(PageConfig{Width: 200, Height: 200, Margins: UniformMargins(0)})
	if err != nil {
		t.Fatalf("geometry: %v", err)
	}
	grid, err := NewGridLayout(geometry.Usable, GridConfig{Rows: 2, Cols: 2}, false, false)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return geometry, grid
}

func TestValidate_OutsideUsable(t *testing.T) {
	geometry, grid := validationFixture(t)
	ins := []Instruction{
		NewPage(0),
		DrawImage(0, 1, "a.jpg", Rect{X: 150, Y: 0, W: 60, H: 50}),
	}
	warnings := Validate(ins, geometry, grid)
	found := false
	for _, w := range warnings {
		if w.Index == 1 && w.Severity == "error" && strings.Contains(w.Message, "usable region") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected usable region error, got %v", warnings)
	}
}

func TestValidate_Overlap(t *testing.T) {
	geometry, grid := validationFixture(t)
	ins := []Instruction{
		NewPage(0),
		DrawImage(0, 0, "a.jpg", Rect{X: 0, Y: 0, W: 100, H: 100}),
		DrawImage(0, 1, "b.jpg", Rect{X: 90, Y: 0, W: 100, H: 100}),
		NewPage(1),
		DrawImage(1, 4, "c.jpg", Rect{X: 0, Y: 0, W: 100, H: 100}),
	}
	warnings := Validate(ins, geometry, grid)
	var overlaps int
	for _, w := range warnings {
		if strings.Contains(w.Message, "overlaps") {
			overlaps++
			if w.PageNumber != 1 {
				t.Errorf("overlap reported on page %d", w.PageNumber)
			}
		}
	}
	if overlaps != 1 {
		t.Errorf("expected 1 overlap, got %d: %v", overlaps, warnings)
	}
}

func TestValidate_WrongCell(t *testing.T) {
	geometry, grid := validationFixture(t)
	// record 3 belongs to cell (1,1) but is drawn in (0,0)
	ins := []Instruction{NewPage(0), DrawImage(0, 3, "d.jpg", Rect{X: 10, Y: 10, W: 50, H: 50})}
	warnings := Validate(ins, geometry, grid)
	if len(warnings) != 1 || !strings.Contains(warnings[0].Message, "its cell") {
		t.Errorf("expected one cell warning, got %v", warnings)
	}
}
