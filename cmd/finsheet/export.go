package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finsheet/finsheet/reader"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [filing.pdf]",
		Short: "Export pages or embedded images from a PDF filing",
		Long: `Export writes selected pages as single-page PDFs, or the images embedded
in those pages, to an output directory. Embedded images are the input for
OCR when a filing has no text layer.

Examples:
  # Export pages 40 through 45 as single-page PDFs
  finsheet export --pages 40-45 10k.pdf

  # Export the images embedded in pages 40 and 42
  finsheet export --images --pages 40,42 -d scans 10k.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("pages", "p", "",
		"Pages to export, as a comma-separated list of numbers and ranges (e.g. 40-45,60)")
	cmd.Flags().StringP("dir", "d", "export",
		"Output directory (created if missing)")
	cmd.Flags().Bool("images", false,
		"Export embedded images instead of pages")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	spec, _ := cmd.Flags().GetString("pages")
	pages, err := parsePages(spec)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("dir")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	images, _ := cmd.Flags().GetBool("images")
	if images {
		err = reader.ExportImages(args[0], outDir, pages)
	} else {
		err = reader.ExportPages(args[0], outDir, pages)
	}
	if err != nil {
		return fmt.Errorf("exporting from %s: %w", args[0], err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", outDir)
	return nil
}

// parsePages expands a page selection like "40-45,60" into page numbers.
// An empty spec selects all pages.
func parsePages(spec string) ([]int, error) {
	if spec == "" {
		return nil, nil
	}
	var pages []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if from, to, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(from))
			if err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			end, err := strconv.Atoi(strings.TrimSpace(to))
			if err != nil || end < start {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
			for n := start; n <= end; n++ {
				pages = append(pages, n)
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q", part)
		}
		pages = append(pages, n)
	}
	return pages, nil
}
