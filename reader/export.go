package reader

import (
	"fmt"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpumodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ExportPages writes each listed page of src as a standalone single-page
// PDF into outDir, named by pdfcpu's page-extraction convention.
func ExportPages(src, outDir string, pageNumbers []int) error {
	if len(pageNumbers) == 0 {
		return nil
	}
	if err := api.ExtractPagesFile(src, outDir, selection(pageNumbers), pdfcpumodel.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("reader: export pages from %s: %w", src, err)
	}
	return nil
}

// ExportImages extracts the embedded images of the listed pages into
// outDir. Scanned filings embed each page as one image; the OCR fallback
// consumes these files.
func ExportImages(src, outDir string, pageNumbers []int) error {
	if len(pageNumbers) == 0 {
		return nil
	}
	if err := api.ExtractImagesFile(src, outDir, selection(pageNumbers), pdfcpumodel.NewDefaultConfiguration()); err != nil {
		return fmt.Errorf("reader: export images from %s: %w", src, err)
	}
	return nil
}

func selection(pageNumbers []int) []string {
	sel := make([]string, len(pageNumbers))
	for i, n := range pageNumbers {
		sel[i] = strconv.Itoa(n)
	}
	return sel
}
