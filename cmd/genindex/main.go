// Command genindex regenerates the static download page of a directory.
package main

import (
	"context"
	"os"

	"github.com/eddy5885/learning-SheetJS/internal/indexgen"
	"github.com/eddy5885/learning-SheetJS/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dir      string
	output   string
	title    string
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "genindex",
		Short: "Generate an index.html listing the files of a directory",
		Long: `genindex lists every entry of a directory (skipping hidden entries and
the index page itself) and overwrites an HTML page with a download link
per entry.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.Flags().StringVarP(&dir, "dir", "d", "frontend", "Directory to index")
	rootCmd.Flags().StringVarP(&output, "output", "o", indexgen.DefaultOutput, "Index file name inside the directory")
	rootCmd.Flags().StringVar(&title, "title", "", "Page title suffix (default: directory name)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level")

	if err := rootCmd.Execute(); err != nil {
		logger.ErrorLog(context.Background(), "genindex failed: %v", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := logger.InitLogging("", logLevel); err != nil {
		return err
	}
	ctx := cmd.Context()

	res, err := indexgen.Generate(indexgen.Options{
		Dir:    dir,
		Output: output,
		Title:  title,
	})
	if err != nil {
		return err
	}

	logger.DebugLog(ctx, "indexed entries: %v", res.Files)
	logger.InfoLog(ctx, "generated %s with %d entries", res.Path, len(res.Files))
	return nil
}
