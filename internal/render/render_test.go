package render

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kozaktomas/image-catalog/internal/catalog"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func testDocument(t *testing.T, records []catalog.ImageRecord, rows, cols int) Document {
	t.Helper()
	b, err := catalog.NewBuilder(records, catalog.GridConfig{Rows: rows, Cols: cols}, catalog.PageConfig{
		Width: 612, Height: 792, Margins: catalog.UniformMargins(36),
	})
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	return NewDocument(b, Metadata{Title: "Survey – Jiří", Author: "tester", Created: fixedTime})
}

func TestNew(t *testing.T) {
	for _, format := range Formats {
		if _, err := New(format, Options{}); err != nil {
			t.Errorf("New(%q): %v", format, err)
		}
	}
	if _, err := New("docx", Options{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPDFRenderer(t *testing.T) {
	dir := t.TempDir()
	records := []catalog.ImageRecord{
		{Ref: writePNG(t, dir, "a.png", 40, 30), Width: 40, Height: 30, Label: "A"},
		{Ref: writePNG(t, dir, "b.png", 30, 40), Width: 30, Height: 40, Note: "a longer note that should wrap inside the band"},
		{Ref: filepath.Join(dir, "missing.png"), Width: 10, Height: 10, Label: "gone"},
		{Ref: writePNG(t, dir, "c.png", 10, 10), Width: 10, Height: 10},
		{Ref: writePNG(t, dir, "d.png", 10, 10), Width: 10, Height: 10},
	}
	doc := testDocument(t, records, 2, 2)

	var buf bytes.Buffer
	r := &PDFRenderer{Borders: true}
	if err := r.Render(context.Background(), doc, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-") {
		t.Errorf("output is not a PDF: %q", out[:min(len(out), 16)])
	}
	if !strings.Contains(out, "/Count 2") {
		t.Error("expected two pages in page tree")
	}
}

func TestPDFRenderer_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&PDFRenderer{}).Render(context.Background(), testDocument(t, nil, 3, 3), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "%PDF-") {
		t.Error("expected a PDF for an empty catalog")
	}
}

func TestPDFRenderer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	records := []catalog.ImageRecord{{Ref: "x.png", Width: 1, Height: 1}}
	err := (&PDFRenderer{}).Render(ctx, testDocument(t, records, 1, 1), &bytes.Buffer{})
	if err == nil {
		t.Error("expected context error")
	}
}

func TestLatexRenderer_Source(t *testing.T) {
	records := []catalog.ImageRecord{
		{Ref: "/photos/a.jpg", Width: 400, Height: 300, Label: "50% off & more"},
		{Ref: "/photos/b.jpg", Width: 300, Height: 400, Note: "note_1"},
		{Ref: "/photos/c.jpg", Width: 300, Height: 400},
	}
	doc := testDocument(t, records, 1, 2)

	var buf bytes.Buffer
	if err := (&LatexRenderer{Borders: true}).Render(context.Background(), doc, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	tex := buf.String()

	for _, want := range []string{
		`\documentclass{article}`,
		`paperwidth=612.00pt`,
		`\includegraphics[width=`,
		`{/photos/a.jpg}`,
		`50\% off \& more`,
		`note\_1`,
		`Page 2 / 2`,
		`Created Mar 09, 2024 at 14:05:00`,
		`\end{document}`,
	} {
		if !strings.Contains(tex, want) {
			t.Errorf("expected tex to contain %q", want)
		}
	}
	if n := strings.Count(tex, `\begin{tikzpicture}`); n != 2 {
		t.Errorf("expected 2 pictures, got %d", n)
	}
	if n := strings.Count(tex, `\newpage`); n != 1 {
		t.Errorf("expected 1 page break, got %d", n)
	}
	if n := strings.Count(tex, `rectangle`); n != 3 {
		t.Errorf("expected 3 cell borders, got %d", n)
	}
}

func TestLatexRenderer_FlipsY(t *testing.T) {
	records := []catalog.ImageRecord{{Ref: "/a.jpg", Width: 100, Height: 100}}
	doc := testDocument(t, records, 1, 1)
	data, err := (&LatexRenderer{}).buildData(context.Background(), doc)
	if err != nil {
		t.Fatalf("buildData: %v", err)
	}
	if len(data.Pages) != 1 || len(data.Pages[0].Images) != 1 {
		t.Fatalf("expected one image on one page, got %+v", data.Pages)
	}
	img := data.Pages[0].Images[0]
	// 540x720 usable area, square image is 540 wide and centered vertically
	if math.Abs(img.W-540) > 0.01 || math.Abs(img.H-540) > 0.01 {
		t.Errorf("expected 540x540 image, got %.2fx%.2f", img.W, img.H)
	}
	wantY := 792 - (36 + 90) - 540.0
	if math.Abs(img.Y-wantY) > 0.01 {
		t.Errorf("expected TikZ Y %.2f, got %.2f", wantY, img.Y)
	}
	if !data.Pages[0].IsLast {
		t.Error("last page should be marked")
	}
}

func TestJSONRenderer(t *testing.T) {
	records := []catalog.ImageRecord{
		{Ref: "a.jpg", Width: 4, Height: 3, Label: "A"},
		{Ref: "b.jpg", Width: 0, Height: 3},
	}
	doc := testDocument(t, records, 1, 2)

	var buf bytes.Buffer
	if err := (JSONRenderer{}).Render(context.Background(), doc, &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	var got jsonDocument
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.PageCount != 1 {
		t.Errorf("expected 1 page, got %d", got.PageCount)
	}
	// new page, image and label of record 0; record 1 is skipped
	if len(got.Instructions) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(got.Instructions))
	}
	if got.Instructions[1].Op != catalog.OpDrawImage || got.Instructions[2].Role != catalog.RoleLabel {
		t.Errorf("unexpected instructions %+v", got.Instructions)
	}
	if !got.Created.Equal(fixedTime) {
		t.Errorf("expected created %v, got %v", fixedTime, got.Created)
	}
}

func TestToCP1252(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"café", "caf\xe9"},
		{"Jiří", "Ji" + "r" + "\xed"},
		{"日本", "??"},
		{"€5", "\x805"},
	}
	for _, tt := range tests {
		if got := toCP1252(tt.in); got != tt.want {
			t.Errorf("toCP1252(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLatexEscape(t *testing.T) {
	got := latexEscape(`a_b & {c} #1 $2 ~ ^ \`)
	want := `a\_b \& \{c\} \#1 \$2 \textasciitilde{} \textasciicircum{} \textbackslash{}`
	if got != want {
		t.Errorf("latexEscape = %q, want %q", got, want)
	}
}
