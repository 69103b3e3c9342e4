package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kozaktomas/image-catalog/internal/catalog"
	"github.com/kozaktomas/image-catalog/internal/config"
	"github.com/kozaktomas/image-catalog/internal/images"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// addLayoutFlags registers the input and layout flags shared by build and layout.
// Defaults come from the environment (see config.Load).
func addLayoutFlags(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().StringP("input", "i", "", "Path to image folder")
	cmd.Flags().String("from-csv", "", "Create catalog from a CSV file (path,label,note)")
	cmd.MarkFlagsMutuallyExclusive("input", "from-csv")
	cmd.MarkFlagsOneRequired("input", "from-csv")

	cmd.Flags().StringP("filter", "f", "", "Keep only image files whose name matches this regular expression")
	cmd.Flags().Bool("no-labels", false, "Do not default labels to file names")
	cmd.Flags().IntP("rows", "r", cfg.Layout.Rows, "Number of grid rows per page")
	cmd.Flags().IntP("cols", "c", cfg.Layout.Cols, "Number of grid columns per page")
	cmd.Flags().String("page-size", cfg.Layout.PageSize, "Named page size (see 'sizes')")
	cmd.Flags().String("orientation", cfg.Layout.Orientation, "Page orientation: portrait or landscape")
	cmd.Flags().Float64("margin", cfg.Layout.MarginPt, "Page margin on every side in points")
	cmd.Flags().Float64("line-height", cfg.Layout.LineHeight, "Height of one label or note line in points")
	cmd.Flags().Int("concurrency", cfg.Concurrency, "Number of workers reading image headers")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	cmd.Flags().BoolP("quiet", "q", false, "Quiet output")
}

// readEntries lists the images named by --input or --from-csv.
func readEntries(cmd *cobra.Command) ([]images.Entry, error) {
	var entries []images.Entry
	if csvPath := mustGetString(cmd, "from-csv"); csvPath != "" {
		f, err := os.Open(csvPath) //nolint:gosec
		if err != nil {
			return nil, fmt.Errorf("failed to open csv: %w", err)
		}
		defer f.Close()
		entries, err = images.ReadCSV(f, filepath.Dir(csvPath))
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		entries, err = images.Scan(mustGetString(cmd, "input"), mustGetString(cmd, "filter"))
		if err != nil {
			return nil, err
		}
	}

	if !mustGetBool(cmd, "no-labels") {
		images.DefaultLabels(entries)
	}
	return entries, nil
}

// loadRecords reads the image headers, showing a progress bar unless quiet.
func loadRecords(ctx context.Context, cmd *cobra.Command, entries []images.Entry) ([]catalog.ImageRecord, error) {
	var onDone func()
	quiet := mustGetBool(cmd, "quiet")
	if !quiet && len(entries) > 0 {
		bar := progressbar.NewOptions(len(entries),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Reading images"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("images"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionFullWidth(),
		)
		defer fmt.Fprintln(os.Stderr)
		onDone = func() { _ = bar.Add(1) }
	}
	return images.Probe(ctx, entries, mustGetInt(cmd, "concurrency"), onDone)
}

// newBuilder validates the page and grid flags against the records.
func newBuilder(cmd *cobra.Command, cfg *config.Config, records []catalog.ImageRecord) (*catalog.Builder, error) {
	width, height, err := cfg.PageSize(mustGetString(cmd, "page-size"))
	if err != nil {
		return nil, err
	}
	orientation, err := catalog.ParseOrientation(mustGetString(cmd, "orientation"))
	if err != nil {
		return nil, err
	}

	b, err := catalog.NewBuilder(records,
		catalog.GridConfig{
			Rows:       mustGetInt(cmd, "rows"),
			Cols:       mustGetInt(cmd, "cols"),
			LineHeight: mustGetFloat64(cmd, "line-height"),
		},
		catalog.PageConfig{
			Width:       width,
			Height:      height,
			Margins:     catalog.UniformMargins(mustGetFloat64(cmd, "margin")),
			Orientation: orientation,
		},
	)
	if errors.Is(err, catalog.ErrInvalidGeometry) {
		return nil, fmt.Errorf("layout does not fit the page: %w", err)
	}
	return b, err
}

// logSkipped reports records the layout leaves out.
func logSkipped(b *catalog.Builder, verbose bool) int {
	skipped := b.Skipped()
	for _, s := range skipped {
		if verbose {
			log.Printf("WARNING: skipping %s (page %d): %v", s.Ref, s.Page+1, s.Err)
		}
	}
	if len(skipped) > 0 && !verbose {
		log.Printf("WARNING: skipped %d unreadable image(s), use --verbose for details", len(skipped))
	}
	return len(skipped)
}
