package catalog

import "fmt"

// ValidationWarning describes a layout issue found in an instruction stream.
type ValidationWarning struct {
	PageNumber int    `json:"page_number"` // 1-based
	Index      int    `json:"index"`       // record index, -1 for page level
	Message    string `json:"message"`
	Severity   string `json:"severity"` // "error" or "warning"
}

func (w ValidationWarning) String() string {
	return fmt.Sprintf("page %d record %d: %s (%s)", w.PageNumber, w.Index, w.Message, w.Severity)
}

// Validate checks that every drawn rect stays inside the usable region and
// its own cell, and that no two drawn rects on a page overlap.
func Validate(ins []Instruction, geometry PageGeometry, grid GridLayout) []ValidationWarning {
	var warnings []ValidationWarning
	const eps = 0.01

	var page []Instruction
	flush := func() {
		warnings = append(warnings, validateOverlaps(page, eps)...)
		page = page[:0]
	}

	for _, in := range ins {
		if in.Op == OpNewPage {
			flush()
			continue
		}
		if !geometry.Usable.Contains(in.Rect, eps) {
			warnings = append(warnings, ValidationWarning{
				PageNumber: in.Page + 1,
				Index:      in.Index,
				Message:    fmt.Sprintf("%s rect %+v extends past usable region %+v", in.Op, in.Rect, geometry.Usable),
				Severity:   "error",
			})
		}
		if grid.Capacity() > 0 && in.Index >= 0 {
			slot := in.Index % grid.Capacity()
			cell := grid.Cell(slot/grid.Cols, slot%grid.Cols).Cell
			if !cell.Contains(in.Rect, eps) {
				warnings = append(warnings, ValidationWarning{
					PageNumber: in.Page + 1,
					Index:      in.Index,
					Message:    fmt.Sprintf("%s rect %+v extends past its cell %+v", in.Op, in.Rect, cell),
					Severity:   "error",
				})
			}
		}
		if in.Rect.W <= 0 || in.Rect.H <= 0 {
			warnings = append(warnings, ValidationWarning{
				PageNumber: in.Page + 1,
				Index:      in.Index,
				Message:    fmt.Sprintf("%s rect has non-positive size %.2fx%.2f", in.Op, in.Rect.W, in.Rect.H),
				Severity:   "warning",
			})
		}
		page = append(page, in)
	}
	flush()
	return warnings
}

// validateOverlaps checks all pairs of drawn rects on one page.
func validateOverlaps(page []Instruction, eps float64) []ValidationWarning {
	var warnings []ValidationWarning
	for i := 0; i < len(page); i++ {
		for j := i + 1; j < len(page); j++ {
			if page[i].Rect.Overlaps(page[j].Rect, eps) {
				warnings = append(warnings, ValidationWarning{
					PageNumber: page[i].Page + 1,
					Index:      page[i].Index,
					Message:    fmt.Sprintf("%s of record %d overlaps %s of record %d", page[i].Op, page[i].Index, page[j].Op, page[j].Index),
					Severity:   "error",
				})
			}
		}
	}
	return warnings
}
