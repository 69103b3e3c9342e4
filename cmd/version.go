package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Stamped with -ldflags "-X github.com/kozaktomas/image-catalog/cmd.Version=...".
var (
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the catalog tool version and build stamp",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "image-catalog %s (commit %s, built %s, %s %s/%s)\n",
			Version, CommitSHA, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
