// Package render turns catalog instruction streams into documents.
package render

import (
	"context"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/kozaktomas/image-catalog/internal/catalog"
)

// Document is everything a renderer needs: page geometry, metadata and the
// ordered instruction stream.
type Document struct {
	Title    string
	Author   string
	Keywords string
	Created  time.Time

	Geometry     catalog.PageGeometry
	Grid         catalog.GridLayout
	PageCount    int
	Instructions iter.Seq[catalog.Instruction]
}

// Metadata holds the descriptive fields of a document.
type Metadata struct {
	Title    string
	Author   string
	Keywords string
	Created  time.Time
}

// NewDocument wraps a builder's output with metadata.
func NewDocument(b *catalog.Builder, meta Metadata) Document {
	created := meta.Created
	if created.IsZero() {
		created = time.Now()
	}
	return Document{
		Title:        meta.Title,
		Author:       meta.Author,
		Keywords:     meta.Keywords,
		Created:      created,
		Geometry:     b.Geometry(),
		Grid:         b.Grid(),
		PageCount:    b.PageCount(),
		Instructions: b.Instructions(),
	}
}

// Renderer consumes a document and writes the result to w.
type Renderer interface {
	Render(ctx context.Context, doc Document, w io.Writer) error
}

// Format names accepted by New.
const (
	FormatPDF      = "pdf"
	FormatLatex    = "tex"
	FormatLatexPDF = "latex-pdf"
	FormatJSON     = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatPDF, FormatLatex, FormatLatexPDF, FormatJSON}

// Options tune the renderers.
type Options struct {
	Borders bool // draw cell outlines
}

// New returns the renderer for a format name.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case FormatPDF:
		return &PDFRenderer{Borders: opts.Borders}, nil
	case FormatLatex:
		return &LatexRenderer{Borders: opts.Borders}, nil
	case FormatLatexPDF:
		return &LatexRenderer{Borders: opts.Borders, Compile: true}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// cellOf returns the cell rectangle holding record index.
func cellOf(grid catalog.GridLayout, index int) catalog.Rect {
	slot := index % grid.Capacity()
	return grid.Cell(slot/grid.Cols, slot%grid.Cols).Cell
}
