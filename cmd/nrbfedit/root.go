package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFile string
	output     io.Writer
	logJSON    bool
	logger     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nrbfedit",
	Short: "Inspect and edit .NET Binary Format (NRBF) files",
	Long: `nrbfedit is a command-line tool for viewing and editing
.NET Binary Format (NRBF) serialized object graphs.

It can display the record graph, resolve and edit individual fields
by path, and diff two documents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = os.Stdout
		}

		handlerOpts := &slog.HandlerOptions{Level: slog.LevelWarn}
		if logJSON {
			logger = slog.New(slog.NewJSONHandler(os.Stderr, handlerOpts))
		} else {
			logger = slog.New(slog.NewTextHandler(os.Stderr, handlerOpts))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit structured logs as JSON instead of text")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(treeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
