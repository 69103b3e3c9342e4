package catalog

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// LowResDPIThreshold is the effective resolution below which a placement is flagged.
const LowResDPIThreshold = 150.0

// Report summarises a catalog build for quality checks.
type Report struct {
	ID         string       `json:"id"`
	Title      string       `json:"title,omitempty"`
	PageCount  int          `json:"page_count"`
	ImageCount int          `json:"image_count"`
	Skipped    []ReportSkip `json:"skipped,omitempty"`
	Pages      []ReportPage `json:"pages"`
	Warnings   []string     `json:"warnings"`
}

// ReportSkip describes a record left out of the catalog.
type ReportSkip struct {
	Index  int    `json:"index"`
	Ref    string `json:"ref"`
	Reason string `json:"reason"`
}

// ReportPage describes one page of the catalog.
type ReportPage struct {
	PageNumber int           `json:"page_number"`
	Images     []ReportImage `json:"images"`
}

// ReportImage describes one image placement.
type ReportImage struct {
	Index        int     `json:"index"`
	Ref          string  `json:"ref"`
	Row          int     `json:"row"`
	Col          int     `json:"col"`
	Rect         Rect    `json:"rect"`
	EffectiveDPI float64 `json:"effective_dpi"`
	LowRes       bool    `json:"low_res"`
}

// NewReport walks the builder's pages and collects placements, skipped
// records and layout warnings.
func NewReport(b *Builder, title string) *Report {
	report := &Report{
		ID:       uuid.New().String(),
		Title:    title,
		Pages:    make([]ReportPage, 0, b.PageCount()),
		Warnings: []string{},
	}

	var all []Instruction
	for plan := range b.Pages() {
		ins := b.PageInstructions(plan)
		all = append(all, ins...)
		report.Pages = append(report.Pages, buildReportPage(plan, ins))
	}
	report.PageCount = len(report.Pages)

	for _, s := range b.Skipped() {
		report.Skipped = append(report.Skipped, ReportSkip{Index: s.Index, Ref: s.Ref, Reason: s.Err.Error()})
		report.Warnings = append(report.Warnings, fmt.Sprintf("Page %d: skipped %s: %v", s.Page+1, s.Ref, s.Err))
	}
	for _, w := range Validate(all, b.Geometry(), b.Grid()) {
		report.Warnings = append(report.Warnings, "Layout: "+w.String())
	}
	for _, rp := range report.Pages {
		report.ImageCount += len(rp.Images)
		for _, img := range rp.Images {
			if img.LowRes {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("Page %d, %s: effective DPI %.0f is below %d",
						rp.PageNumber, img.Ref, img.EffectiveDPI, int(LowResDPIThreshold)))
			}
		}
	}
	return report
}

func buildReportPage(plan PagePlan, ins []Instruction) ReportPage {
	cells := make(map[int]PlacedRecord, len(plan.Cells))
	for _, c := range plan.Cells {
		cells[c.Index] = c
	}
	rp := ReportPage{PageNumber: plan.PageIndex + 1, Images: []ReportImage{}}
	for _, in := range ins {
		if in.Op != OpDrawImage {
			continue
		}
		c := cells[in.Index]
		dpi := EffectiveDPI(c.Record.Width, in.Rect.W)
		rp.Images = append(rp.Images, ReportImage{
			Index:        in.Index,
			Ref:          in.Ref,
			Row:          c.Row,
			Col:          c.Col,
			Rect:         in.Rect,
			EffectiveDPI: dpi,
			LowRes:       dpi > 0 && dpi < LowResDPIThreshold,
		})
	}
	return rp
}

// EffectiveDPI returns the print resolution of naturalW pixels drawn across
// widthPt points, rounded to one decimal.
func EffectiveDPI(naturalW int, widthPt float64) float64 {
	if naturalW <= 0 || widthPt <= 0 {
		return 0
	}
	dpi := float64(naturalW) / (widthPt / 72.0)
	return math.Round(dpi*10) / 10
}
