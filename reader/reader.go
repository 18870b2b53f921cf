package reader

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/finsheet/finsheet/model"
)

// ErrEmptyDocument is returned for a PDF with no pages. An undecodable or
// empty document is the one terminal condition for a run; everything
// downstream degrades per page instead.
var ErrEmptyDocument = errors.New("reader: document has no pages")

// Default page dimensions in points, used when a page carries no MediaBox
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

// Reader reads a PDF file and exposes it as a model.Document
type Reader struct {
	file *os.File
	pdf  *pdf.Reader
	path string
}

// Open opens a PDF file for reading. The caller must Close the reader.
func Open(path string) (*Reader, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reader: open %s: %w", path, err)
	}
	return &Reader{file: f, pdf: r, path: path}, nil
}

// Close closes the underlying file
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// Path returns the path the reader was opened with
func (r *Reader) Path() string {
	return r.path
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Document decodes every page into the extraction model. Pages that fail
// to decode are kept as empty pages so page numbering stays aligned with
// the source document.
func (r *Reader) Document() (*model.Document, error) {
	total := r.pdf.NumPage()
	if total == 0 {
		return nil, ErrEmptyDocument
	}

	doc := model.NewDocument()
	doc.Source = r.path

	for i := 1; i <= total; i++ {
		p := r.pdf.Page(i)

		width, height := float64(defaultPageWidth), float64(defaultPageHeight)
		page := model.NewPage(width, height)

		if !p.V.IsNull() {
			if w, h, ok := mediaBox(p.V); ok {
				page.Width, page.Height = w, h
			}
			content := p.Content()
			page.Fragments = buildFragments(content.Text)
			page.Lines = buildLines(content.Rect)
		}
		doc.AddPage(page)
	}
	return doc, nil
}

// mediaBox reads a page's MediaBox into width and height
func mediaBox(v pdf.Value) (width, height float64, ok bool) {
	mb := v.Key("MediaBox")
	if mb.Kind() != pdf.Array || mb.Len() != 4 {
		return 0, 0, false
	}
	width = mb.Index(2).Float64() - mb.Index(0).Float64()
	height = mb.Index(3).Float64() - mb.Index(1).Float64()
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	return width, height, true
}

// buildFragments merges per-character text elements into runs. Characters
// on the same baseline merge while the horizontal gap stays small relative
// to the font size; a gap wider than the run threshold starts a new
// fragment, which is what lets the table strategies see cell boundaries.
func buildFragments(texts []pdf.Text) []model.TextFragment {
	var fragments []model.TextFragment
	var run *model.TextFragment
	var runEnd float64

	for _, t := range texts {
		if t.S == "" {
			continue
		}

		if run != nil && sameBaseline(run.BBox.Y, t.Y, t.FontSize) {
			gap := t.X - runEnd
			if gap <= wordGap(t.FontSize) {
				if gap > charGap(t.FontSize) {
					run.Text += " "
				}
				run.Text += t.S
				runEnd = t.X + t.W
				run.BBox.Width = runEnd - run.BBox.X
				continue
			}
		}

		if run != nil {
			fragments = append(fragments, *run)
		}
		run = &model.TextFragment{
			Text:     t.S,
			BBox:     model.BBox{X: t.X, Y: t.Y, Width: t.W, Height: t.FontSize},
			FontSize: t.FontSize,
			FontName: t.Font,
		}
		runEnd = t.X + t.W
	}
	if run != nil {
		fragments = append(fragments, *run)
	}
	return fragments
}

// maxRuleThickness is the widest filled rectangle still treated as a
// drawn table rule rather than a shaded region.
const maxRuleThickness = 2.5

// buildLines normalizes drawn rectangles into ruled lines. Table borders
// are usually painted as thin filled rectangles, one per rule; a rectangle
// thin along one axis becomes a line along the other, centered in its
// thickness. Rectangles thick in both directions (cell shading, logos)
// are not rules and are dropped.
func buildLines(rects []pdf.Rect) []model.Line {
	var lines []model.Line
	for _, r := range rects {
		w := r.Max.X - r.Min.X
		h := r.Max.Y - r.Min.Y
		switch {
		case h <= maxRuleThickness && w > h:
			y := (r.Min.Y + r.Max.Y) / 2
			lines = append(lines, model.Line{
				Start:  model.Point{X: r.Min.X, Y: y},
				End:    model.Point{X: r.Max.X, Y: y},
				Width:  h,
				IsRect: true,
			})
		case w <= maxRuleThickness && h > w:
			x := (r.Min.X + r.Max.X) / 2
			lines = append(lines, model.Line{
				Start:  model.Point{X: x, Y: r.Min.Y},
				End:    model.Point{X: x, Y: r.Max.Y},
				Width:  w,
				IsRect: true,
			})
		}
	}
	return lines
}

// sameBaseline allows sub-point jitter between characters of one run
func sameBaseline(a, b, fontSize float64) bool {
	tolerance := fontSize * 0.2
	if tolerance < 0.5 {
		tolerance = 0.5
	}
	return math.Abs(a-b) <= tolerance
}

// charGap is the widest gap still treated as intra-word kerning
func charGap(fontSize float64) float64 {
	return fontSize * 0.12
}

// wordGap is the widest gap still treated as a space inside one run.
// Anything wider separates table cells.
func wordGap(fontSize float64) float64 {
	return fontSize * 1.5
}
