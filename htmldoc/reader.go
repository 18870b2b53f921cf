// Package htmldoc ingests HTML filings. SEC 10-K and 10-Q documents
// frequently ship as HTML rather than PDF; this package parses their
// <table> markup into model tables so classification and validation run
// over them unchanged.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/finsheet/finsheet/model"
)

// Reader provides access to the tables of an HTML filing
type Reader struct {
	doc    *html.Node
	title  string
	tables []*model.Table
}

// Open opens an HTML file for reading
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parsing HTML: %w", err)
	}

	reader := &Reader{doc: doc}
	reader.walk(doc)
	return reader, nil
}

// Title returns the document title, if the head carried one
func (r *Reader) Title() string {
	return r.title
}

// Tables returns every <table> in document order. Cells spanning columns
// repeat their text across each spanned position, matching the convention
// of the geometric extraction strategies.
func (r *Reader) Tables() []*model.Table {
	return r.tables
}

func (r *Reader) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "title":
			if r.title == "" {
				r.title = textContent(n)
			}
		case "table":
			if t := parseTable(n); t != nil {
				r.tables = append(r.tables, t)
			}
			return // nested tables are layout artifacts, skip their contents
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

// parseTable converts one <table> element. Returns nil for tables with no
// rows.
func parseTable(n *html.Node) *model.Table {
	table := &model.Table{Strategy: "html"}

	var visitRows func(*html.Node)
	visitRows = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if node.Data == "tr" {
				if row := parseRow(node); len(row) > 0 {
					table.Rows = append(table.Rows, row)
				}
				return
			}
			if node.Data == "table" && node != n {
				return // nested layout table
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visitRows(c)
		}
	}
	visitRows(n)

	if len(table.Rows) == 0 {
		return nil
	}
	return table
}

// parseRow flattens the <td>/<th> cells of one row; a colspan attribute
// repeats the cell across the spanned positions.
func parseRow(tr *html.Node) []model.Cell {
	var cells []model.Cell
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		text := strings.TrimSpace(textContent(c))
		span := colspan(c)
		for i := 0; i < span; i++ {
			cells = append(cells, model.Cell{Text: text, RowSpan: 1, ColSpan: span})
		}
	}
	return cells
}

func colspan(n *html.Node) int {
	for _, attr := range n.Attr {
		if attr.Key == "colspan" {
			if span, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && span > 1 {
				return span
			}
		}
	}
	return 1
}

// textContent collects the text beneath a node, separating block-level
// children with single spaces.
func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(node *html.Node) {
		if node.Type == html.TextNode {
			text := strings.TrimSpace(node.Data)
			if text != "" {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(text)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}
