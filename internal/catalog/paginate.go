package catalog

import "iter"

// PlacedRecord is a record assigned to a grid cell.
type PlacedRecord struct {
	Index  int         `json:"index"` // position in the input list
	Row    int         `json:"row"`
	Col    int         `json:"col"`
	Record ImageRecord `json:"record"`
}

// PagePlan is the assignment of records to cells for one page.
type PagePlan struct {
	PageIndex int            `json:"page_index"`
	Cells     []PlacedRecord `json:"cells"`
}

// PageCount returns how many pages n records need on a rows x cols grid.
func PageCount(n, rows, cols int) int {
	if n <= 0 || !validShape(rows, cols) {
		return 0
	}
	capacity := rows * cols
	return (n + capacity - 1) / capacity
}

// Paginate fills pages left to right, top to bottom. The last page may be
// partial and empty input yields no pages. rows and cols must be >= 1.
func Paginate(records []ImageRecord, rows, cols int) iter.Seq[PagePlan] {
	return func(yield func(PagePlan) bool) {
		if !validShape(rows, cols) {
			return
		}
		capacity := rows * cols
		for start := 0; start < len(records); start += capacity {
			end := min(start+capacity, len(records))
			plan := PagePlan{
				PageIndex: start / capacity,
				Cells:     make([]PlacedRecord, 0, end-start),
			}
			for i := start; i < end; i++ {
				slot := i % capacity
				plan.Cells = append(plan.Cells, PlacedRecord{
					Index:  i,
					Row:    slot / cols,
					Col:    slot % cols,
					Record: records[i],
				})
			}
			if !yield(plan) {
				return
			}
		}
	}
}
