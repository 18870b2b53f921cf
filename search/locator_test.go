package search

import (
	"errors"
	"testing"

	"github.com/finsheet/finsheet/model"
)

// pageWithText builds a single-fragment page so Text() returns the given
// string.
func pageWithText(text string) *model.Page {
	page := model.NewPage(612, 792)
	page.Fragments = []model.TextFragment{
		{Text: text, BBox: model.BBox{X: 72, Y: 700, Width: 400, Height: 12}},
	}
	return page
}

// buildDocument creates an n-page document with filler text, overriding
// specific pages with the provided content.
func buildDocument(n int, overrides map[int]string) *model.Document {
	doc := model.NewDocument()
	for i := 1; i <= n; i++ {
		text := "General discussion of business operations and risk factors."
		if override, ok := overrides[i]; ok {
			text = override
		}
		doc.AddPage(pageWithText(text))
	}
	return doc
}

func TestLocate_FirstMatchAtOrAfterMinPage(t *testing.T) {
	// Page 24 is the first match at or after page 10; page 3 also matches
	// but sits below the minimum and must be skipped.
	doc := buildDocument(50, map[int]string{
		3:  "Consolidated Statements of Income ... see page 24",
		24: "CONSOLIDATED STATEMENTS OF INCOME (in thousands)",
		31: "CONSOLIDATED STATEMENTS OF INCOME continued",
	})

	got, err := Locate(doc, Query{Phrase: "CONSOLIDATED STATEMENTS OF INCOME", MinPage: 10})
	if err != nil {
		t.Fatalf("Locate() failed: %v", err)
	}
	if got != 24 {
		t.Errorf("Locate() = %d, want 24", got)
	}
}

func TestLocate_CaseInsensitive(t *testing.T) {
	doc := buildDocument(10, map[int]string{
		7: "consolidated balance sheets as of december 31",
	})

	got, err := Locate(doc, Query{Phrase: "CONSOLIDATED BALANCE SHEETS", MinPage: 1})
	if err != nil {
		t.Fatalf("Locate() failed: %v", err)
	}
	if got != 7 {
		t.Errorf("Locate() = %d, want 7", got)
	}
}

func TestLocate_NeverBelowMinPage(t *testing.T) {
	doc := buildDocument(20, map[int]string{
		5: "CONSOLIDATED BALANCE SHEETS",
	})

	_, err := Locate(doc, Query{Phrase: "CONSOLIDATED BALANCE SHEETS", MinPage: 10})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Locate() error = %v, want ErrNoMatch", err)
	}
}

func TestLocate_ExcludePhrase(t *testing.T) {
	doc := buildDocument(30, map[int]string{
		12: "INDEX ... CONSOLIDATED STATEMENTS OF CASH FLOWS ... 28",
		28: "CONSOLIDATED STATEMENTS OF CASH FLOWS",
	})

	got, err := Locate(doc, Query{
		Phrase:  "CONSOLIDATED STATEMENTS OF CASH FLOWS",
		MinPage: 10,
		Exclude: DefaultExclude,
	})
	if err != nil {
		t.Fatalf("Locate() failed: %v", err)
	}
	if got != 28 {
		t.Errorf("Locate() = %d, want 28 (page 12 is an index page)", got)
	}
}

func TestLocate_NoMatch(t *testing.T) {
	doc := buildDocument(10, nil)

	_, err := Locate(doc, Query{Phrase: "STATEMENT OF CHANGES IN EQUITY", MinPage: 1})
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Locate() error = %v, want ErrNoMatch", err)
	}
}

func TestLocate_InvalidQuery(t *testing.T) {
	doc := buildDocument(5, nil)

	if _, err := Locate(doc, Query{Phrase: "", MinPage: 1}); err == nil {
		t.Error("Locate() with empty phrase should fail")
	}
	if _, err := Locate(doc, Query{Phrase: "x", MinPage: 0}); err == nil {
		t.Error("Locate() with MinPage 0 should fail")
	}
}
