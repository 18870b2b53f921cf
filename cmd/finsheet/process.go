package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/finsheet/finsheet"
	"github.com/finsheet/finsheet/config"
	"github.com/finsheet/finsheet/logging"
	"github.com/finsheet/finsheet/report"
	"github.com/finsheet/finsheet/validate"
)

// NewProcessCmd creates the process command.
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [filing]",
		Short: "Extract and validate financial statements from a filing",
		Long: `Process locates each configured financial statement inside a PDF or
HTML filing, recovers its table, classifies it, and runs the accounting
checks across the extracted statements.

Examples:
  # Process a 10-K and write the JSON report next to it
  finsheet process 10k.pdf

  # Skip the table of contents and front matter
  finsheet process --min-page 40 10k.pdf

  # Extract a single statement by its page title
  finsheet process --search-text "CONSOLIDATED BALANCE SHEETS" 10k.pdf

  # Also write an xlsx workbook with one sheet per statement
  finsheet process --xlsx 10k.xlsx 10k.pdf

  # Use a custom configuration file
  finsheet process -c myconfig.yaml 10k.pdf

Configuration file (.finsheet.yaml) example:
  search:
    min_page: 40
  validation:
    tolerance: 0.02`,
		Args: cobra.ExactArgs(1),
		RunE: runProcessCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .finsheet.yaml in current or home directory)")
	cmd.Flags().StringP("out", "o", "",
		"Write the JSON report to the given path (default: <filing>.json)")
	cmd.Flags().String("xlsx", "",
		"Also write an xlsx workbook to the given path")
	cmd.Flags().Int("min-page", 0,
		"Only search for statements at or after this page")
	cmd.Flags().String("search-text", "",
		"Extract a single statement whose page contains this phrase")
	cmd.Flags().Float64("tolerance", 0,
		"Relative tolerance for validation checks (0 keeps the default)")

	return cmd
}

// runProcessCmd executes the process command.
func runProcessCmd(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFile, _ := cmd.Flags().GetString("log-file")
	logger := logging.New(verbose, logFile)
	defer logger.Sync()

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}

	proc := finsheet.Open(args[0]).
		WithConfig(cfg).
		WithLogger(logger)

	if minPage, _ := cmd.Flags().GetInt("min-page"); minPage > 0 {
		proc.MinPage(minPage)
	}
	if phrase, _ := cmd.Flags().GetString("search-text"); phrase != "" {
		proc.SearchText(phrase)
	}
	if tol, _ := cmd.Flags().GetFloat64("tolerance"); tol > 0 {
		proc.Tolerance(tol)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	bundle, err := proc.Process(ctx)
	if err != nil {
		return fmt.Errorf("processing %s: %w", args[0], err)
	}

	printSummary(cmd, bundle)

	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = strings.TrimSuffix(args[0], ".pdf")
		outPath = strings.TrimSuffix(outPath, ".html")
		outPath = strings.TrimSuffix(outPath, ".htm") + ".json"
	}
	if err := bundle.SaveJSON(outPath); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", outPath)

	if xlsxPath, _ := cmd.Flags().GetString("xlsx"); xlsxPath != "" {
		if err := bundle.SaveWorkbook(xlsxPath); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Workbook written to %s\n", xlsxPath)
	}
	return nil
}

// loadConfig resolves the configuration file per the --config flag. An
// explicit path must exist; the default locations are optional.
func loadConfig(cmd *cobra.Command, logger *zap.Logger) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	path := config.Find(explicit)
	if path == "" {
		if explicit != "" {
			return nil, fmt.Errorf("configuration file %s not found", explicit)
		}
		return config.Default(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.Default(), nil
		}
		return nil, err
	}
	logger.Debug("loaded configuration", zap.String("path", path))
	return cfg, nil
}

// printSummary writes the extraction results and check outcomes to the
// command's stdout, coloring pass and fail lines.
func printSummary(cmd *cobra.Command, bundle *report.Bundle) {
	out := cmd.OutOrStdout()
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	bold := color.New(color.Bold)

	bold.Fprintf(out, "Statements (%d)\n", len(bundle.Statements))
	for _, stmt := range bundle.Statements {
		fmt.Fprintf(out, "  %-20s page %-4d %d rows\n",
			stmt.Name, stmt.PageNumber, len(stmt.Rows))
	}

	bold.Fprintln(out, "\nChecks")
	ids := make([]string, 0, len(bundle.Validation.ChecklistResults))
	for id := range bundle.Validation.ChecklistResults {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if bundle.Validation.ChecklistResults[id] {
			pass.Fprintf(out, "  PASS  %s\n", id)
		} else {
			fail.Fprintf(out, "  FAIL  %s\n", id)
		}
	}

	s := bundle.Validation.Summary
	bold.Fprintf(out, "\n%d/%d checks passed (%.1f%%)\n",
		s.PassedChecks, s.TotalChecks, s.PassRate)

	if totals := bundle.Validation.BalanceSheetTotals; totals != nil {
		bold.Fprintln(out, "\nBalance sheet totals")
		printTotal(out, "Assets", totals.Assets, pass, fail)
		printTotal(out, "Liabilities + equity", totals.LiabilitiesEquity, pass, fail)
	}
}

func printTotal(out io.Writer, label string, tc validate.TotalCheck, pass, fail *color.Color) {
	line := fmt.Sprintf("  %-22s calculated %.0f, reported %.0f (diff %.0f)\n",
		label, tc.Calculated, tc.Reported, tc.Difference)
	if tc.Matches {
		pass.Fprint(out, line)
	} else {
		fail.Fprint(out, line)
	}
}
