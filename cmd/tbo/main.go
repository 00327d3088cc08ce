package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tbo-go/internal/app"
	"tbo-go/internal/config"
)

func main() {
	// A missing .env is normal.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var verbose bool

// newApp reads the config and creates a TBOApp. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "import", "serve").
func newApp(operation string) (*app.TBOApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	opts := app.Options{Level: slog.LevelInfo, Echo: verbose}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	a, err := app.NewTBOApp(cfg, operation, opts)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:          "tbo",
	Short:        "Tweet bookmark organizer",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging, echoed to stderr")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(folderCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(nativeCmd)
}
