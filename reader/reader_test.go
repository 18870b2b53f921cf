package reader

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/ledongthuc/pdf"
)

func char(s string, x, y, w, size float64) pdf.Text {
	return pdf.Text{Font: "Helvetica", FontSize: size, X: x, Y: y, W: w, S: s}
}

func TestBuildFragments_MergesRun(t *testing.T) {
	texts := []pdf.Text{
		char("C", 100, 700, 7, 10),
		char("a", 107, 700, 5, 10),
		char("s", 112, 700, 5, 10),
		char("h", 117, 700, 5, 10),
	}

	got := buildFragments(texts)
	if len(got) != 1 {
		t.Fatalf("got %d fragments, want 1", len(got))
	}
	if got[0].Text != "Cash" {
		t.Errorf("Text = %q, want \"Cash\"", got[0].Text)
	}
	if got[0].BBox.X != 100 || got[0].BBox.Width != 22 {
		t.Errorf("BBox = %+v, want X=100 Width=22", got[0].BBox)
	}
}

func TestBuildFragments_SpaceWithinRun(t *testing.T) {
	// A one-space gap stays inside the run with an inserted space
	texts := []pdf.Text{
		char("Net", 100, 700, 18, 10),
		char("income", 121.5, 700, 36, 10),
	}

	got := buildFragments(texts)
	if len(got) != 1 {
		t.Fatalf("got %d fragments, want 1", len(got))
	}
	if got[0].Text != "Net income" {
		t.Errorf("Text = %q, want \"Net income\"", got[0].Text)
	}
}

func TestBuildFragments_WideGapSplitsCells(t *testing.T) {
	// A gutter-sized gap means a new table cell, not a space
	texts := []pdf.Text{
		char("Revenues", 72, 700, 48, 10),
		char("100,085", 400, 700, 42, 10),
	}

	got := buildFragments(texts)
	if len(got) != 2 {
		t.Fatalf("got %d fragments, want 2", len(got))
	}
	if got[1].Text != "100,085" || got[1].BBox.X != 400 {
		t.Errorf("fragment 1 = %+v", got[1])
	}
}

func TestBuildFragments_BaselineChangeSplits(t *testing.T) {
	texts := []pdf.Text{
		char("Revenues", 72, 700, 48, 10),
		char("Cost", 72, 685, 24, 10),
	}

	got := buildFragments(texts)
	if len(got) != 2 {
		t.Fatalf("got %d fragments, want 2", len(got))
	}
}

func TestBuildFragments_JitterWithinRun(t *testing.T) {
	// Sub-point baseline jitter from superscript-free kerning stays merged
	texts := []pdf.Text{
		char("1", 100, 700, 5, 10),
		char("0", 105, 700.8, 5, 10),
	}

	if got := buildFragments(texts); len(got) != 1 {
		t.Fatalf("got %d fragments, want 1", len(got))
	}
}

func TestBuildFragments_Empty(t *testing.T) {
	if got := buildFragments(nil); got != nil {
		t.Errorf("buildFragments(nil) = %v, want nil", got)
	}
}

func TestPrepareImage_UpscalesSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 600, 800))
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	out, err := PrepareImage(buf.Bytes())
	if err != nil {
		t.Fatalf("PrepareImage() failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != minOCRWidth {
		t.Errorf("width = %d, want %d", bounds.Dx(), minOCRWidth)
	}
	if bounds.Dy() != 2400 {
		t.Errorf("height = %d, want 2400 (aspect ratio not preserved)", bounds.Dy())
	}
}

func TestPrepareImage_RejectsGarbage(t *testing.T) {
	if _, err := PrepareImage([]byte("not an image")); err == nil {
		t.Error("PrepareImage() accepted non-image data")
	}
}

func rect(x0, y0, x1, y1 float64) pdf.Rect {
	return pdf.Rect{Min: pdf.Point{X: x0, Y: y0}, Max: pdf.Point{X: x1, Y: y1}}
}

func TestBuildLines_RuledPage(t *testing.T) {
	// Three horizontal and two vertical rules drawn as thin filled
	// rectangles, plus a shaded block that must not become a rule.
	rects := []pdf.Rect{
		rect(72, 699.5, 540, 700.5),
		rect(72, 679.5, 540, 680.5),
		rect(72, 659.5, 540, 660.5),
		rect(71.5, 660, 72.5, 700),
		rect(539.5, 660, 540.5, 700),
		rect(200, 400, 300, 450),
	}

	lines := buildLines(rects)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}

	var horizontal, vertical int
	for _, l := range lines {
		if !l.IsRect {
			t.Errorf("line %+v missing IsRect", l)
		}
		switch {
		case l.IsHorizontal(1.0):
			horizontal++
			if l.Start.X != 72 || l.End.X != 540 {
				t.Errorf("horizontal span = %v..%v, want 72..540", l.Start.X, l.End.X)
			}
		case l.IsVertical(1.0):
			vertical++
		}
	}
	if horizontal != 3 || vertical != 2 {
		t.Errorf("got %d horizontal and %d vertical rules, want 3 and 2", horizontal, vertical)
	}
}

func TestBuildLines_CentersThickness(t *testing.T) {
	lines := buildLines([]pdf.Rect{rect(72, 699, 540, 701)})
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Start.Y != 700 || lines[0].End.Y != 700 {
		t.Errorf("rule Y = %v..%v, want centered at 700", lines[0].Start.Y, lines[0].End.Y)
	}
	if lines[0].Width != 2 {
		t.Errorf("rule thickness = %v, want 2", lines[0].Width)
	}
}

func TestBuildLines_SkipsShadedBlocks(t *testing.T) {
	lines := buildLines([]pdf.Rect{rect(100, 100, 200, 150)})
	if len(lines) != 0 {
		t.Errorf("got %d lines from a shaded block, want 0", len(lines))
	}
}
