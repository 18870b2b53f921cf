// Package finsheet extracts financial statements from SEC-style filings
// and validates them against standard accounting checks.
//
// The entry point is Open, which returns a Processor configured with
// library defaults. Options chain fluently and Process runs the full
// pipeline: locate each statement page, recover table geometry, classify
// the statement, and validate balance sheet, income statement, and cash
// flow figures against each other.
//
// Basic usage:
//
//	bundle, err := finsheet.Open("10k.pdf").Process(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bundle.SaveJSON("10k.json")
//
// With options:
//
//	bundle, err := finsheet.Open("10k.pdf").
//	    MinPage(40).
//	    WithLogger(logger).
//	    Process(ctx)
//
// HTML filings are handled transparently: paths ending in .htm or .html
// are parsed with the HTML reader instead of the PDF reader.
package finsheet

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/finsheet/finsheet/classify"
	"github.com/finsheet/finsheet/config"
	"github.com/finsheet/finsheet/htmldoc"
	"github.com/finsheet/finsheet/model"
	"github.com/finsheet/finsheet/pipeline"
	"github.com/finsheet/finsheet/reader"
	"github.com/finsheet/finsheet/report"
	"github.com/finsheet/finsheet/tables"
	"github.com/finsheet/finsheet/validate"
)

// Processor extracts and validates financial statements from a single
// filing. Construct one with Open and configure it with the chainable
// option methods before calling Process.
type Processor struct {
	path      string
	cfg       config.Config
	log       *zap.Logger
	recoverer pipeline.TextRecoverer
}

// Open prepares a Processor for the filing at path. The file is not
// touched until Process is called.
func Open(path string) *Processor {
	return &Processor{
		path: path,
		cfg:  *config.Default(),
		log:  zap.NewNop(),
	}
}

// WithConfig replaces the full configuration. The config is copied, so
// later fluent calls do not mutate the caller's value.
func (p *Processor) WithConfig(cfg *config.Config) *Processor {
	if cfg != nil {
		p.cfg = *cfg
	}
	return p
}

// WithLogger sets the logger used by the pipeline. The default is a
// no-op logger.
func (p *Processor) WithLogger(log *zap.Logger) *Processor {
	if log != nil {
		p.log = log
	}
	return p
}

// WithTextRecoverer sets the recoverer used for pages without a text
// layer, typically an OCR-backed implementation.
func (p *Processor) WithTextRecoverer(r pipeline.TextRecoverer) *Processor {
	p.recoverer = r
	return p
}

// MinPage restricts statement searches to pages at or after n. Filings
// often repeat statement titles in the index, so skipping front matter
// avoids false positives.
func (p *Processor) MinPage(n int) *Processor {
	p.cfg.Search.MinPage = n
	return p
}

// SearchText replaces the configured statement queries with a single
// phrase. The resulting statement is named after the phrase and still
// classified by content.
func (p *Processor) SearchText(phrase string) *Processor {
	p.cfg.Search.Statements = []config.StatementQuery{
		{Name: phrase, Phrase: phrase},
	}
	return p
}

// Tolerance sets the relative tolerance used by validation checks.
func (p *Processor) Tolerance(t float64) *Processor {
	p.cfg.Validation.Tolerance = t
	return p
}

// Process runs the extraction and validation pipeline and returns the
// resulting bundle. PDF filings go through the geometric table
// strategies; HTML filings use the markup tables directly.
func (p *Processor) Process(ctx context.Context) (*report.Bundle, error) {
	switch strings.ToLower(filepath.Ext(p.path)) {
	case ".htm", ".html":
		return p.processHTML(ctx)
	default:
		return p.processPDF(ctx)
	}
}

func (p *Processor) processPDF(ctx context.Context) (*report.Bundle, error) {
	r, err := reader.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.path, err)
	}
	defer r.Close()

	doc, err := r.Document()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	pl := pipeline.New(
		pipeline.WithConfig(&p.cfg),
		pipeline.WithLogger(p.log),
		pipeline.WithTextRecoverer(p.recoverer),
	)
	return pl.Run(ctx, doc)
}

// processHTML extracts every table from the markup and validates the
// set. HTML tables carry explicit cell boundaries, so no geometry
// strategy is needed. Tables below the configured minimum shape are
// layout scaffolding and are skipped; everything else is retained,
// classified or not.
func (p *Processor) processHTML(ctx context.Context) (*report.Bundle, error) {
	hr, err := htmldoc.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.path, err)
	}

	classifier := classify.NewClassifier()
	var statements []*model.Statement
	for i, t := range hr.Tables() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		repaired, err := tables.Repair(t)
		if err != nil {
			p.log.Debug("skipping irregular table",
				zap.Int("table", i+1), zap.Error(err))
			continue
		}
		if repaired.RowCount() < p.cfg.Extraction.MinRows ||
			repaired.ColCount() < p.cfg.Extraction.MinCols {
			continue
		}
		stmt := tables.Canonicalize(repaired)
		stmt.Type = classifier.Classify(stmt)
		if stmt.Type != model.Unclassified {
			stmt.Name = stmt.Type.String()
		} else {
			stmt.Name = fmt.Sprintf("Table %d", i+1)
		}
		statements = append(statements, stmt)
	}

	engine := validate.NewEngineWithTolerance(p.cfg.Validation.Tolerance)
	rep := engine.Validate(statements)
	return report.NewBundle(p.path, statements, rep), nil
}

// Must panics if err is non-nil, otherwise returns val. It keeps
// short scripts free of error plumbing:
//
//	bundle := finsheet.Must(finsheet.Open("10k.pdf").Process(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
