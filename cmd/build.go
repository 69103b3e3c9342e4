package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kozaktomas/image-catalog/internal/catalog"
	"github.com/kozaktomas/image-catalog/internal/config"
	"github.com/kozaktomas/image-catalog/internal/render"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build <output>",
	Short: "Render a contact sheet from a folder or CSV of images",
	Long: `Render images into a paginated contact sheet.

Images come from a folder (--input, optionally filtered with --filter) or a CSV
file with path,label,note columns (--from-csv). Labels default to file names.

Examples:
  image-catalog build catalog.pdf -i ./photos -r 4 -c 3 --title "Field survey"
  image-catalog build catalog.tex --format tex --from-csv images.csv
  image-catalog build - --format json -i ./photos > layout.json`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	cfg := config.Load()
	addLayoutFlags(buildCmd, cfg)
	buildCmd.Flags().String("format", render.FormatPDF, "Output format: "+strings.Join(render.Formats, ", "))
	buildCmd.Flags().Bool("borders", false, "Draw cell outlines")
	buildCmd.Flags().String("title", cfg.Document.Title, "Document title")
	buildCmd.Flags().String("author", cfg.Document.Author, "Document author")
	buildCmd.Flags().String("keywords", cfg.Document.Keywords, "Document keywords")
	buildCmd.Flags().String("report", "", "Write a JSON layout report to this file")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()
	output := args[0]

	renderer, err := render.New(mustGetString(cmd, "format"), render.Options{Borders: mustGetBool(cmd, "borders")})
	if err != nil {
		return err
	}

	entries, err := readEntries(cmd)
	if err != nil {
		return err
	}
	records, err := loadRecords(ctx, cmd, entries)
	if err != nil {
		return err
	}

	// Geometry is checked before anything is written.
	b, err := newBuilder(cmd, cfg, records)
	if err != nil {
		return err
	}
	verbose := mustGetBool(cmd, "verbose")
	skipped := logSkipped(b, verbose)

	title := mustGetString(cmd, "title")
	if reportPath := mustGetString(cmd, "report"); reportPath != "" {
		if err := writeReport(catalog.NewReport(b, title), reportPath); err != nil {
			return err
		}
	}

	doc := render.NewDocument(b, render.Metadata{
		Title:    title,
		Author:   mustGetString(cmd, "author"),
		Keywords: mustGetString(cmd, "keywords"),
	})
	if err := writeOutput(output, func(w io.Writer) error {
		return renderer.Render(ctx, doc, w)
	}); err != nil {
		return err
	}

	if !mustGetBool(cmd, "quiet") && output != "-" {
		fmt.Printf("Wrote %s: %d image(s) on %d page(s)", output, len(records)-skipped, b.PageCount())
		if skipped > 0 {
			fmt.Printf(", %d skipped", skipped)
		}
		fmt.Println()
	}
	return nil
}

// writeOutput writes to path, or stdout for "-". A failed render removes the partial file.
func writeOutput(path string, write func(io.Writer) error) error {
	if path == "-" {
		return write(os.Stdout)
	}
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}
	return nil
}

func writeReport(report *catalog.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
