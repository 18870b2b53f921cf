package model

import (
	"sort"
	"strings"
	"sync"
)

// Document represents a decoded PDF document. It is immutable once loaded;
// the only mutable state is the per-page text cache, which belongs to the
// pipeline invocation that owns the document and is discarded with it.
type Document struct {
	Source string // Originating file path, if known
	Pages  []*Page
}

// NewDocument creates a new empty document
func NewDocument() *Document {
	return &Document{
		Pages: make([]*Page, 0),
	}
}

// AddPage adds a page to the document and assigns its 1-based number
func (d *Document) AddPage(page *Page) {
	page.Number = len(d.Pages) + 1
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed), or nil if out of range
func (d *Document) GetPage(number int) *Page {
	if number < 1 || number > len(d.Pages) {
		return nil
	}
	return d.Pages[number-1]
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// PageText returns the extracted text of a page by number. The text is
// assembled from the page's fragments on first access and cached.
func (d *Document) PageText(number int) string {
	page := d.GetPage(number)
	if page == nil {
		return ""
	}
	return page.Text()
}

// Page represents a single page in a PDF document
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	Fragments []TextFragment // Positioned text runs
	Lines     []Line         // Ruled lines and thin rectangles

	// OCRText holds recognized text for pages without a text layer.
	// When set it takes precedence over fragment assembly in Text.
	OCRText string

	textOnce sync.Once
	text     string
}

// NewPage creates a new page with given dimensions
func NewPage(width, height float64) *Page {
	return &Page{
		Width:  width,
		Height: height,
	}
}

// Text returns the page's text content. For pages with a text layer the
// fragments are ordered top-to-bottom, left-to-right and joined with spaces
// and newlines. The result is computed once and cached.
func (p *Page) Text() string {
	p.textOnce.Do(func() {
		if p.OCRText != "" {
			p.text = p.OCRText
			return
		}
		p.text = assembleText(p.Fragments)
	})
	return p.text
}

// HasTextLayer reports whether the page carries any positioned text
func (p *Page) HasTextLayer() bool {
	return len(p.Fragments) > 0
}

// assembleText orders fragments into reading order and joins them. Fragments
// whose baselines are within half a typical line height are treated as the
// same line.
func assembleText(fragments []TextFragment) string {
	if len(fragments) == 0 {
		return ""
	}

	sorted := make([]TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y != sorted[j].BBox.Y {
			return sorted[i].BBox.Y > sorted[j].BBox.Y
		}
		return sorted[i].BBox.X < sorted[j].BBox.X
	})

	var sb strings.Builder
	lineY := sorted[0].BBox.Y
	for i, frag := range sorted {
		if i > 0 {
			if lineY-frag.BBox.Y > frag.BBox.Height/2 {
				sb.WriteString("\n")
				lineY = frag.BBox.Y
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(frag.Text)
	}
	return sb.String()
}
