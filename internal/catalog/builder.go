package catalog

import (
	"fmt"
	"iter"
	"slices"
)

// SkippedRecord is a record that produced no output because it could not be fitted.
type SkippedRecord struct {
	Index int    `json:"index"`
	Page  int    `json:"page"`
	Ref   string `json:"ref"`
	Err   error  `json:"-"`
}

// Builder turns image records into render instructions. It holds no mutable
// state after construction, so Instructions may be iterated any number of
// times and PageInstructions may be called from several goroutines.
type Builder struct {
	records  []ImageRecord
	geometry PageGeometry
	grid     GridLayout
}

// NewBuilder validates the page and grid. It fails with ErrInvalidGeometry
// before any page is planned. Label and note bands are reserved only when at
// least one record has a label or note respectively.
func NewBuilder(records []ImageRecord, gc GridConfig, pc PageConfig) (*Builder, error) {
	geometry, err := NewPageGeometry(pc)
	if err != nil {
		return nil, err
	}
	hasLabels, hasNotes := hasText(records)
	grid, err := NewGridLayout(geometry.Usable, gc, hasLabels, hasNotes)
	if err != nil {
		return nil, fmt.Errorf("grid %dx%d on %.2fx%.2f page: %w", gc.Rows, gc.Cols, geometry.Width, geometry.Height, err)
	}
	return &Builder{
		records:  slices.Clone(records),
		geometry: geometry,
		grid:     grid,
	}, nil
}

// Geometry returns the validated page geometry.
func (b *Builder) Geometry() PageGeometry { return b.geometry }

// Grid returns the cell layout.
func (b *Builder) Grid() GridLayout { return b.grid }

// Records returns the input records.
func (b *Builder) Records() []ImageRecord { return b.records }

// PageCount returns the number of pages Instructions will start.
func (b *Builder) PageCount() int {
	return PageCount(len(b.records), b.grid.Rows, b.grid.Cols)
}

// Pages returns the page plans.
func (b *Builder) Pages() iter.Seq[PagePlan] {
	return Paginate(b.records, b.grid.Rows, b.grid.Cols)
}

// Instructions yields NewPage followed by the draw instructions of each page.
func (b *Builder) Instructions() iter.Seq[Instruction] {
	return func(yield func(Instruction) bool) {
		for plan := range b.Pages() {
			for _, in := range b.PageInstructions(plan) {
				if !yield(in) {
					return
				}
			}
		}
	}
}

// PageInstructions computes the instructions of a single page. A cell whose
// image cannot be fitted emits nothing.
func (b *Builder) PageInstructions(plan PagePlan) []Instruction {
	out := make([]Instruction, 0, 1+3*len(plan.Cells))
	out = append(out, NewPage(plan.PageIndex))
	for _, pr := range plan.Cells {
		regions := b.grid.Cell(pr.Row, pr.Col)
		rect, err := Fit(pr.Record.Width, pr.Record.Height, regions.Image)
		if err != nil {
			continue
		}
		out = append(out, DrawImage(plan.PageIndex, pr.Index, pr.Record.Ref, rect))
		if pr.Record.Label != "" && b.grid.LabelBandH > 0 {
			out = append(out, DrawText(plan.PageIndex, pr.Index, pr.Record.Label, RoleLabel, regions.Label))
		}
		if pr.Record.Note != "" && b.grid.NoteBandH > 0 {
			out = append(out, DrawText(plan.PageIndex, pr.Index, pr.Record.Note, RoleNote, regions.Note))
		}
	}
	return out
}

// Skipped lists the records that Instructions leaves out, in input order.
func (b *Builder) Skipped() []SkippedRecord {
	var skipped []SkippedRecord
	capacity := b.grid.Capacity()
	for i, r := range b.records {
		if _, err := Fit(r.Width, r.Height, b.grid.Relative().Image); err != nil {
			skipped = append(skipped, SkippedRecord{Index: i, Page: i / capacity, Ref: r.Ref, Err: err})
		}
	}
	return skipped
}
