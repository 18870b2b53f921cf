// Package reader adapts PDF files into the document model.
//
// Text runs with coordinates come from the embedded PDF text layer; pages
// without one are flagged so the pipeline can route them through OCR.
// Page export and embedded-image extraction are delegated to pdfcpu.
package reader
