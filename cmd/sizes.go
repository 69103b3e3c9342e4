package cmd

import (
	"fmt"

	"github.com/kozaktomas/image-catalog/internal/config"
	"github.com/spf13/cobra"
)

var sizesCmd = &cobra.Command{
	Use:   "sizes",
	Short: "List the named page sizes",
	Args:  cobra.NoArgs,
	RunE:  runSizes,
}

func init() {
	rootCmd.AddCommand(sizesCmd)
}

func runSizes(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	for _, name := range cfg.PageSizeNames() {
		w, h, err := cfg.PageSize(name)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %8.2f x %8.2f pt (%6.1f x %6.1f mm)\n", name, w, h, w/72*25.4, h/72*25.4)
	}
	return nil
}
