// Package pipeline orchestrates one document run: locate each statement's
// page, extract table candidates with every strategy, select and
// canonicalize the best one, classify it, then validate the collected
// statements.
//
// Stages run sequentially because each depends on the previous stage's
// output; the extraction strategies within a stage are independent over
// the immutable page data and run concurrently. Every per-page and
// per-statement failure is recoverable: it is logged and the run
// continues. Only an empty document aborts the run.
package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/finsheet/finsheet/classify"
	"github.com/finsheet/finsheet/config"
	"github.com/finsheet/finsheet/model"
	"github.com/finsheet/finsheet/report"
	"github.com/finsheet/finsheet/search"
	"github.com/finsheet/finsheet/tables"
	"github.com/finsheet/finsheet/validate"
)

// ErrEmptyDocument is returned when the document has no pages. This is
// the one terminal condition for a run.
var ErrEmptyDocument = errors.New("pipeline: document has no pages")

// TextRecoverer recovers text for a page without an embedded text layer,
// typically by OCR over the page's exported image.
type TextRecoverer interface {
	RecoverText(ctx context.Context, doc *model.Document, pageNumber int) (string, error)
}

// Pipeline runs documents through extraction and validation. A Pipeline
// is safe for sequential reuse across documents; it holds no per-document
// state.
type Pipeline struct {
	cfg        *config.Config
	log        *zap.Logger
	classifier *classify.Classifier
	engine     *validate.Engine
	recoverer  TextRecoverer
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithConfig overrides the default configuration
func WithConfig(cfg *config.Config) Option {
	return func(p *Pipeline) {
		if cfg != nil {
			p.cfg = cfg
		}
	}
}

// WithLogger sets the pipeline logger
func WithLogger(log *zap.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithTextRecoverer enables text recovery for pages without a text layer
func WithTextRecoverer(r TextRecoverer) Option {
	return func(p *Pipeline) {
		p.recoverer = r
	}
}

// New creates a pipeline with the given options
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        config.Default(),
		log:        zap.NewNop(),
		classifier: classify.NewClassifier(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.engine = validate.NewEngineWithTolerance(p.cfg.Validation.Tolerance)
	return p
}

// Run processes one document and returns its result bundle. Statements
// whose page or table cannot be found are omitted from the bundle; their
// validation rules then fail closed.
func (p *Pipeline) Run(ctx context.Context, doc *model.Document) (*report.Bundle, error) {
	if doc == nil || doc.PageCount() == 0 {
		return nil, ErrEmptyDocument
	}

	p.recoverMissingText(ctx, doc)

	var statements []*model.Statement
	minPage := p.cfg.Search.MinPage
	if minPage < 1 {
		minPage = 1
	}

	for _, q := range p.cfg.Search.Statements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		stmt, pageNum, err := p.extractStatement(ctx, doc, q, minPage)
		if err != nil {
			p.log.Warn("statement not extracted",
				zap.String("statement", q.Name),
				zap.String("phrase", q.Phrase),
				zap.Error(err))
			continue
		}

		p.log.Info("statement extracted",
			zap.String("statement", q.Name),
			zap.Int("page", pageNum),
			zap.String("type", stmt.Type.String()),
			zap.Int("rows", len(stmt.Rows)))

		statements = append(statements, stmt)
		// Statements appear in document order; start the next search
		// after this page
		minPage = pageNum + 1
	}

	rep := p.engine.Validate(statements)
	p.log.Info("validation complete",
		zap.Int("total", rep.Summary.TotalChecks),
		zap.Int("passed", rep.Summary.PassedChecks),
		zap.Float64("pass_rate", rep.Summary.PassRate))

	return report.NewBundle(doc.Source, statements, rep), nil
}

// extractStatement locates one statement's page and reduces it to a
// canonical statement.
func (p *Pipeline) extractStatement(ctx context.Context, doc *model.Document, q config.StatementQuery, minPage int) (*model.Statement, int, error) {
	pageNum, err := search.Locate(doc, search.Query{
		Phrase:  q.Phrase,
		MinPage: minPage,
		Exclude: p.cfg.Search.Exclude,
	})
	if err != nil {
		return nil, 0, err
	}

	page := doc.GetPage(pageNum)
	candidates := p.extractCandidates(ctx, page)

	table, err := tables.Select(candidates, p.cfg.Selection)
	if err != nil {
		return nil, 0, err
	}

	stmt := tables.Canonicalize(table)
	stmt.Name = q.Name
	stmt.Type = p.classifier.Classify(stmt)
	return stmt, pageNum, nil
}

// extractCandidates runs every strategy concurrently against one page.
// Each strategy writes only its own slot, so no locking is needed; a
// strategy that cannot handle the page contributes nothing.
func (p *Pipeline) extractCandidates(ctx context.Context, page *model.Page) []*model.Table {
	strategies := tables.All()
	results := make([][]*model.Table, len(strategies))

	g, _ := errgroup.WithContext(ctx)
	for i, s := range strategies {
		i, s := i, s
		g.Go(func() error {
			if err := s.Configure(p.cfg.Extraction); err != nil {
				return err
			}
			found, err := s.Extract(page)
			if err != nil {
				p.log.Warn("strategy failed",
					zap.String("strategy", s.Name()),
					zap.Int("page", page.Number),
					zap.Error(err))
				return nil
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.log.Warn("candidate extraction incomplete", zap.Error(err))
	}

	var candidates []*model.Table
	for _, found := range results {
		candidates = append(candidates, found...)
	}
	return candidates
}

// recoverMissingText routes pages without a text layer through the
// configured recoverer. Recovery failures leave the page empty; the
// locator then simply never matches it.
func (p *Pipeline) recoverMissingText(ctx context.Context, doc *model.Document) {
	if p.recoverer == nil {
		return
	}
	for _, page := range doc.Pages {
		if page.HasTextLayer() || page.OCRText != "" {
			continue
		}
		text, err := p.recoverer.RecoverText(ctx, doc, page.Number)
		if err != nil {
			p.log.Warn("text recovery failed", zap.Int("page", page.Number), zap.Error(err))
			continue
		}
		page.OCRText = text
	}
}
