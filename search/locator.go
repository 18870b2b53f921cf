// Package search locates pages inside a document by phrase.
//
// Financial statements are found by scanning page text for a target phrase
// (e.g. "CONSOLIDATED BALANCE SHEETS") starting at a minimum page index. The
// minimum bound is a deliberate design constraint: annual reports repeat
// statement titles in the table of contents and index pages at the front of
// the document, and bounding the search skips those false positives.
package search

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/finsheet/finsheet/model"
)

// ErrNoMatch is returned when no page at or after the minimum index contains
// the target phrase. It is a recoverable condition, not a failure of the
// document as a whole.
var ErrNoMatch = errors.New("search: no matching page")

// DefaultExclude is the exclusion phrase carried over from the reference
// tooling: pages that mention an index are table-of-contents entries, not
// the statement itself.
const DefaultExclude = "INDEX"

// Query describes a page search
type Query struct {
	// Phrase is matched case-insensitively as a substring of page text
	Phrase string

	// MinPage is the lowest 1-based page index to inspect. Must be >= 1.
	MinPage int

	// Exclude, when non-empty, disqualifies any page containing it
	// (case-insensitive). Used to skip index/table-of-contents pages.
	Exclude string
}

// Locate scans pages in increasing index order from q.MinPage and returns
// the index of the first page whose text contains q.Phrase. Pages below
// MinPage are never inspected, even if they would match. Returns ErrNoMatch
// if no page in range matches.
func Locate(doc *model.Document, q Query) (int, error) {
	if q.Phrase == "" {
		return 0, fmt.Errorf("search: empty phrase")
	}
	if q.MinPage < 1 {
		return 0, fmt.Errorf("search: minimum page %d out of range", q.MinPage)
	}

	folder := cases.Fold()
	phrase := folder.String(q.Phrase)
	exclude := ""
	if q.Exclude != "" {
		exclude = folder.String(q.Exclude)
	}

	for n := q.MinPage; n <= doc.PageCount(); n++ {
		text := folder.String(doc.PageText(n))
		if text == "" {
			continue
		}
		if !strings.Contains(text, phrase) {
			continue
		}
		if exclude != "" && strings.Contains(text, exclude) {
			continue
		}
		return n, nil
	}

	return 0, ErrNoMatch
}
