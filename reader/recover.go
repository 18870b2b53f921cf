package reader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/finsheet/finsheet/model"
	"github.com/finsheet/finsheet/ocr"
)

// OCRRecoverer recovers page text by exporting the page's embedded
// images and running them through a Recognizer. It satisfies the
// pipeline's TextRecoverer interface.
type OCRRecoverer struct {
	client  ocr.Recognizer
	workDir string
}

// NewOCRRecoverer wraps client for page text recovery. workDir holds
// the exported page images; when empty, a temporary directory is used
// per page and removed afterwards.
func NewOCRRecoverer(client ocr.Recognizer, workDir string) *OCRRecoverer {
	return &OCRRecoverer{client: client, workDir: workDir}
}

// RecoverText exports the images embedded in the given page of the
// document's source file, prepares each for recognition, and returns
// the concatenated text.
func (r *OCRRecoverer) RecoverText(ctx context.Context, doc *model.Document, pageNumber int) (string, error) {
	if doc.Source == "" {
		return "", fmt.Errorf("reader: document has no source path")
	}

	dir := r.workDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "finsheet-ocr-*")
		if err != nil {
			return "", fmt.Errorf("reader: ocr workdir: %w", err)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}

	if err := ExportImages(doc.Source, dir, []int{pageNumber}); err != nil {
		return "", fmt.Errorf("reader: export page %d images: %w", pageNumber, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reader: read ocr workdir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	// pdfcpu names images by page and object number, so lexical order
	// matches reading order within a page.
	sort.Strings(names)

	var parts []string
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return "", fmt.Errorf("reader: read image %s: %w", name, err)
		}
		prepared, err := PrepareImage(data)
		if err != nil {
			// Non-image payloads (ICC profiles, masks) are skipped.
			continue
		}
		text, err := r.client.RecognizeImage(prepared)
		if err != nil {
			return "", fmt.Errorf("reader: recognize %s: %w", name, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}
