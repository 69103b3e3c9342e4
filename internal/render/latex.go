package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"text/template"

	"github.com/kozaktomas/image-catalog/internal/catalog"
)

//go:embed templates/catalog.tex
var templateFS embed.FS

// latexBox is a rectangle in TikZ coordinates (points from the page bottom-left).
type latexBox struct {
	X, Y, W, H float64
}

type latexImage struct {
	latexBox
	Path string
}

type latexText struct {
	W       float64
	CX, Top float64
	Text    string
	Font    string
}

type latexPage struct {
	Number  int
	IsLast  bool
	Images  []latexImage
	Texts   []latexText
	Borders []latexBox
}

// latexData is the root data passed to the template.
type latexData struct {
	PageW, PageH float64
	Title        string
	Author       string
	Keywords     string
	Created      string
	PageCount    int
	HeaderX      float64
	HeaderY      float64
	FooterLeftX  float64
	FooterRightX float64
	FooterY      float64
	Pages        []latexPage
}

// LatexRenderer writes a TikZ document. With Compile set it runs lualatex and
// writes the resulting PDF instead of the source.
type LatexRenderer struct {
	Borders bool
	Compile bool
}

// Render implements Renderer.
func (r *LatexRenderer) Render(ctx context.Context, doc Document, w io.Writer) error {
	data, err := r.buildData(ctx, doc)
	if err != nil {
		return err
	}
	tex, err := executeTemplate(data)
	if err != nil {
		return err
	}
	if !r.Compile {
		_, err := w.Write(tex)
		return err
	}

	pdfData, err := compileLatex(ctx, tex)
	if err != nil {
		return err
	}
	_, err = w.Write(pdfData)
	return err
}

// buildData converts the instruction stream from top-left page coordinates to
// TikZ coordinates.
func (r *LatexRenderer) buildData(ctx context.Context, doc Document) (latexData, error) {
	g := doc.Geometry
	flipY := func(y, h float64) float64 { return g.Height - y - h }

	data := latexData{
		PageW:        g.Width,
		PageH:        g.Height,
		Title:        doc.Title,
		Author:       doc.Author,
		Keywords:     doc.Keywords,
		Created:      doc.Created.Format(timestampFmt),
		PageCount:    doc.PageCount,
		HeaderX:      g.Margins.Left,
		HeaderY:      g.Height - g.Margins.Top/2,
		FooterLeftX:  g.Margins.Left,
		FooterRightX: g.Width - g.Margins.Right,
		FooterY:      g.Margins.Bottom / 2,
	}

	for in := range doc.Instructions {
		if err := ctx.Err(); err != nil {
			return latexData{}, err
		}
		if in.Op == catalog.OpNewPage {
			data.Pages = append(data.Pages, latexPage{Number: in.Page + 1})
			continue
		}
		if len(data.Pages) == 0 {
			return latexData{}, fmt.Errorf("%s before first page", in.Op)
		}
		page := &data.Pages[len(data.Pages)-1]
		rect := in.Rect

		switch in.Op {
		case catalog.OpDrawImage:
			abs, err := filepath.Abs(in.Ref)
			if err != nil {
				abs = in.Ref
			}
			page.Images = append(page.Images, latexImage{
				latexBox: latexBox{X: rect.X, Y: flipY(rect.Y, rect.H), W: rect.W, H: rect.H},
				Path:     filepath.ToSlash(abs),
			})
			if r.Borders && doc.Grid.Capacity() > 0 {
				cell := cellOf(doc.Grid, in.Index)
				page.Borders = append(page.Borders, latexBox{X: cell.X, Y: flipY(cell.Y, cell.H), W: cell.W, H: cell.H})
			}
		case catalog.OpDrawText:
			font := `\bfseries\scriptsize`
			if in.Role == catalog.RoleNote {
				font = `\itshape\scriptsize`
			}
			page.Texts = append(page.Texts, latexText{
				W:    rect.W,
				CX:   rect.X + rect.W/2,
				Top:  g.Height - rect.Y,
				Text: in.Text,
				Font: font,
			})
		}
	}

	if len(data.Pages) == 0 {
		data.Pages = append(data.Pages, latexPage{Number: 1})
		data.PageCount = max(data.PageCount, 1)
	}
	data.Pages[len(data.Pages)-1].IsLast = true
	return data, nil
}

func executeTemplate(data latexData) ([]byte, error) {
	funcMap := template.FuncMap{
		"latexEscape": latexEscape,
	}
	tmpl, err := template.New("catalog.tex").Funcs(funcMap).ParseFS(templateFS, "templates/catalog.tex")
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// compileLatex writes the source to a temp dir and runs lualatex, returning the PDF bytes.
func compileLatex(ctx context.Context, tex []byte) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "catalog-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	texPath := filepath.Join(tmpDir, "catalog.tex")
	if err := os.WriteFile(texPath, tex, 0600); err != nil {
		return nil, fmt.Errorf("failed to write tex file: %w", err)
	}

	// Two passes: remember picture positions resolve on the second.
	for pass := range 2 {
		cmd := exec.CommandContext(ctx, "lualatex", //nolint:gosec
			"-interaction=nonstopmode",
			"-output-directory="+tmpDir,
			texPath,
		)
		cmd.Dir = tmpDir
		output, err := cmd.CombinedOutput()
		if err != nil {
			return nil, fmt.Errorf("lualatex pass %d failed: %w\n%s", pass+1, err, string(output))
		}
	}

	pdfData, err := os.ReadFile(filepath.Join(tmpDir, "catalog.pdf")) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	return pdfData, nil
}
