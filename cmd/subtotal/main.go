// Package main provides the CLI entry point for subtotal-go.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ukaji3/subtotal-go/pkg/subtotal"
)

var (
	outputPath string
	sheetName  string
	quiet      bool
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "subtotal [input.xlsx]",
		Short: "Sort and subtotal headerless xlsx sheets",
		Long: `subtotal-go groups consecutive rows sharing a first-column key, sorts each
group by the second column, appends a highlighted per-group subtotal row, and
closes the sheet with a grand-total row. Formatting, dimensions, and merged
ranges are carried over from the source file.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <input>_处理后.xlsx)")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to process (default: first sheet)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress logging")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log per-block details")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	out := outputPath
	if out == "" {
		out = subtotal.BuildDefaultOutPath(inputPath)
	}

	logger := newLogger()

	opts := subtotal.Options{
		SheetName: sheetName,
		Logger:    &logger,
	}

	if err := subtotal.Process(inputPath, out, opts); err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	fmt.Println("done:", out)
	return nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.Disabled
	} else if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
