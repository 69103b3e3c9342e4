package cmd

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/kozaktomas/image-catalog/internal/catalog"
	"github.com/kozaktomas/image-catalog/internal/config"
	"github.com/spf13/cobra"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Show how images would be laid out without rendering",
	Long: `Plan the contact sheet and print the page plans, or with --json the
render instructions, without writing a document.

Example:
  image-catalog layout -i ./photos -r 2 -c 2`,
	Args: cobra.NoArgs,
	RunE: runLayout,
}

func init() {
	addLayoutFlags(layoutCmd, config.Load())
	layoutCmd.Flags().Bool("json", false, "Print render instructions as JSON")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	entries, err := readEntries(cmd)
	if err != nil {
		return err
	}
	records, err := loadRecords(cmd.Context(), cmd, entries)
	if err != nil {
		return err
	}
	b, err := newBuilder(cmd, cfg, records)
	if err != nil {
		return err
	}

	// Skip warnings go to stderr, so stdout stays valid JSON under --json.
	skipped := logSkipped(b, mustGetBool(cmd, "verbose"))

	if mustGetBool(cmd, "json") {
		data, err := catalog.MarshalInstructions(slices.Collect(b.Instructions()))
		if err != nil {
			return fmt.Errorf("failed to encode instructions: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	g, grid := b.Geometry(), b.Grid()
	fmt.Printf("Page:   %.2f x %.2f pt, usable %.2f x %.2f pt\n", g.Width, g.Height, g.Usable.W, g.Usable.H)
	fmt.Printf("Grid:   %d x %d, cell %.2f x %.2f pt (image %.2f, label %.2f, note %.2f)\n",
		grid.Rows, grid.Cols, grid.CellW, grid.CellH, grid.ImageH(), grid.LabelBandH, grid.NoteBandH)
	fmt.Printf("Images: %d on %d page(s), %d skipped\n", len(records), b.PageCount(), skipped)

	for plan := range b.Pages() {
		fmt.Printf("\nPage %d\n", plan.PageIndex+1)
		for _, c := range plan.Cells {
			fmt.Printf("  [%d,%d] %-40s %5dx%-5d %s\n", c.Row, c.Col, filepath.Base(c.Record.Ref), c.Record.Width, c.Record.Height, c.Record.Label)
		}
	}
	return nil
}
