package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Flag defaults are read from the environment in init(), so the optional .env
// file has to be loaded during package variable initialization.
var _ = loadDotEnv()

var rootCmd = &cobra.Command{
	Use:   "image-catalog",
	Short: "Lay out images as a paginated contact sheet",
	Long: `Image Catalog arranges a folder (or CSV list) of images into a grid of
rows x columns per page, with optional labels and notes, and renders the
result as a PDF, LaTeX source or a JSON list of placement instructions.`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func loadDotEnv() bool {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
	return true
}
