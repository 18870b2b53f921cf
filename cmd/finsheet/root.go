// Package main provides the entry point for the finsheet CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for finsheet.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finsheet",
		Short: "Extract and validate financial statements from filings",
		Long: `finsheet locates the balance sheet, income statement, and cash flow
statement inside a PDF or HTML filing, recovers their tables, and runs a
suite of accounting checks across the three statements.

Results are written as a JSON report and, optionally, an xlsx workbook
with one sheet per statement.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-file", "", "Also write logs to the given file")

	// Add subcommands
	cmd.AddCommand(NewProcessCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
