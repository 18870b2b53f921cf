// Package model provides the intermediate representation (IR) for extracted
// financial statement content.
//
// This package defines the data structures the extraction pipeline operates
// on. A decoded PDF becomes a [Document] of [Page] values, each carrying the
// positioned text fragments and ruled lines that table detection consumes.
// Table detection produces [Table] values, and the selector rectangularizes
// the winning candidate into a [Statement] (the canonical table
// representation used by classification and validation).
//
// # Document Structure
//
// The [Document] type is immutable once loaded; the only mutable state it
// owns is a per-page text cache populated lazily on first access:
//
//	doc := model.NewDocument()
//	doc.AddPage(page)
//	text := doc.PageText(1)
//
// # Tables
//
// A [Table] is a grid of [Cell] values detected on a page. Spanning cells
// repeat their text across the spanned positions so every row keeps the same
// column count. [TableGrid] holds the raw row/column boundaries a detection
// strategy produced.
//
// # Statements
//
// A [Statement] is the selected, rectangular table tagged with a
// [StatementType] and a source page. Its row maps always carry every header
// key; missing cells are empty strings, never omitted.
//
// # Geometry
//
// Geometric primitives support position calculations in PDF coordinate
// space (origin bottom-left, Y increasing upward):
//
//   - [BBox] - bounding box with containment, intersection, and union
//   - [Point] - 2D point
//   - [Line] - a ruled line or thin rectangle from the page's graphics
package model
