package render

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/kozaktomas/image-catalog/internal/catalog"
)

// jsonDocument is the JSON form of a rendered catalog.
type jsonDocument struct {
	Title        string                `json:"title,omitempty"`
	Author       string                `json:"author,omitempty"`
	Keywords     string                `json:"keywords,omitempty"`
	Created      time.Time             `json:"created"`
	Page         catalog.PageGeometry  `json:"page"`
	Grid         catalog.GridLayout    `json:"grid"`
	PageCount    int                   `json:"page_count"`
	Instructions []catalog.Instruction `json:"instructions"`
}

// JSONRenderer writes the instruction stream as a JSON document.
type JSONRenderer struct{}

// Render implements Renderer.
func (JSONRenderer) Render(ctx context.Context, doc Document, w io.Writer) error {
	out := jsonDocument{
		Title:        doc.Title,
		Author:       doc.Author,
		Keywords:     doc.Keywords,
		Created:      doc.Created,
		Page:         doc.Geometry,
		Grid:         doc.Grid,
		PageCount:    doc.PageCount,
		Instructions: []catalog.Instruction{},
	}
	for in := range doc.Instructions {
		if err := ctx.Err(); err != nil {
			return err
		}
		out.Instructions = append(out.Instructions, in)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
