package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kozaktomas/image-catalog/internal/catalog"
)

const (
	fontFamily    = "Helvetica"
	textFontSize  = 8.0
	chromeFontSz  = 10.0
	footerFontSz  = 8.0
	jpegQuality   = 90
	missingLabel  = "[image unavailable]"
	timestampFmt  = "Jan 02, 2006 at 15:04:05"
	pageNumberFmt = "Page %d / {nb}"
)

// Image types the PDF writer embeds without re-encoding.
var nativeImageTypes = map[string]string{
	".jpg":  "JPG",
	".jpeg": "JPG",
	".png":  "PNG",
	".gif":  "GIF",
}

// PDFRenderer writes a PDF with the core Helvetica font. The title runs in the
// top margin and page numbers with the creation time in the bottom margin.
type PDFRenderer struct {
	Borders bool
}

// Render implements Renderer.
func (r *PDFRenderer) Render(ctx context.Context, doc Document, w io.Writer) error {
	g := doc.Geometry
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	pdf.SetMargins(g.Margins.Left, g.Margins.Top, g.Margins.Right)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetCreator("image-catalog", false)
	pdf.SetCreationDate(doc.Created)
	if doc.Title != "" {
		pdf.SetTitle(toCP1252(doc.Title), false)
	}
	if doc.Author != "" {
		pdf.SetAuthor(toCP1252(doc.Author), false)
	}
	if doc.Keywords != "" {
		pdf.SetKeywords(toCP1252(doc.Keywords), false)
	}
	pdf.SetHeaderFunc(func() { r.header(pdf, doc) })
	pdf.SetFooterFunc(func() { r.footer(pdf, doc) })

	images := make(map[string]bool)
	for in := range doc.Instructions {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch in.Op {
		case catalog.OpNewPage:
			pdf.AddPage()
		case catalog.OpDrawImage:
			r.drawImage(pdf, images, in)
			if r.Borders && doc.Grid.Capacity() > 0 {
				cell := cellOf(doc.Grid, in.Index)
				pdf.SetLineWidth(0.5)
				pdf.Rect(cell.X, cell.Y, cell.W, cell.H, "D")
			}
		case catalog.OpDrawText:
			drawText(pdf, in)
		}
		if err := pdf.Error(); err != nil {
			return fmt.Errorf("failed to render page %d: %w", in.Page+1, err)
		}
	}

	if pdf.PageNo() == 0 {
		// An empty catalog still produces a valid one-page document.
		pdf.AddPage()
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func (r *PDFRenderer) header(pdf *fpdf.Fpdf, doc Document) {
	if doc.Title == "" {
		return
	}
	g := doc.Geometry
	pdf.SetFont(fontFamily, "B", chromeFontSz)
	pdf.SetXY(g.Margins.Left, max(g.Margins.Top/2-chromeFontSz/2, 0))
	pdf.CellFormat(g.Usable.W, chromeFontSz, toCP1252(doc.Title), "", 0, "L", false, 0, "")
}

func (r *PDFRenderer) footer(pdf *fpdf.Fpdf, doc Document) {
	g := doc.Geometry
	y := g.Height - g.Margins.Bottom/2 - footerFontSz/2
	pdf.SetFont(fontFamily, "I", footerFontSz)
	pdf.SetXY(g.Margins.Left, y)
	pdf.CellFormat(g.Usable.W/2, footerFontSz, fmt.Sprintf(pageNumberFmt, pdf.PageNo()), "", 0, "L", false, 0, "")
	pdf.CellFormat(g.Usable.W/2, footerFontSz, "Created "+doc.Created.Format(timestampFmt), "", 0, "R", false, 0, "")
}

// drawImage embeds the image once and places it. A file fpdf cannot read is
// replaced by its name so one bad file does not fail the document.
func (r *PDFRenderer) drawImage(pdf *fpdf.Fpdf, registered map[string]bool, in catalog.Instruction) {
	if !registered[in.Ref] {
		if err := registerImage(pdf, in.Ref); err != nil {
			log.Printf("WARNING: failed to embed image %s: %v", in.Ref, err)
			pdf.ClearError()
			drawPlaceholder(pdf, in)
			return
		}
		registered[in.Ref] = true
	}
	pdf.ImageOptions(in.Ref, in.Rect.X, in.Rect.Y, in.Rect.W, in.Rect.H, false, fpdf.ImageOptions{}, 0, "")
}

// registerImage adds the image under its path. Formats the PDF writer cannot
// embed are decoded and re-encoded as JPEG.
func registerImage(pdf *fpdf.Fpdf, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if tp, ok := nativeImageTypes[ext]; ok {
		pdf.RegisterImageOptions(path, fpdf.ImageOptions{ImageType: tp})
		return pdf.Error()
	}

	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	pdf.RegisterImageOptionsReader(path, fpdf.ImageOptions{ImageType: "JPG"}, &buf)
	return pdf.Error()
}

func drawPlaceholder(pdf *fpdf.Fpdf, in catalog.Instruction) {
	name := filepath.Base(in.Ref)
	if name == "." || name == "" {
		name = missingLabel
	}
	pdf.SetFont(fontFamily, "", textFontSize)
	pdf.SetXY(in.Rect.X, in.Rect.Y+in.Rect.H/2-textFontSize/2)
	pdf.CellFormat(in.Rect.W, textFontSize, toCP1252(name), "", 0, "C", false, 0, "")
}

// drawText writes a label (bold, one centered line) or a note (italic,
// wrapped) inside its band, dropping lines that do not fit.
func drawText(pdf *fpdf.Fpdf, in catalog.Instruction) {
	style := "B"
	if in.Role == catalog.RoleNote {
		style = "I"
	}
	size := min(textFontSize, in.Rect.H*0.8)
	if size <= 0 {
		return
	}
	pdf.SetFont(fontFamily, style, size)
	lineH := size * 1.2
	maxLines := max(int(in.Rect.H/lineH), 1)

	txt := toCP1252(in.Text)
	lines := pdf.SplitText(txt, in.Rect.W)
	if in.Role == catalog.RoleLabel && len(lines) > 1 {
		lines = lines[:1]
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	lineH = min(lineH, in.Rect.H/float64(len(lines)))
	for i, line := range lines {
		pdf.SetXY(in.Rect.X, in.Rect.Y+float64(i)*lineH)
		pdf.CellFormat(in.Rect.W, lineH, line, "", 0, "C", false, 0, "")
	}
}
