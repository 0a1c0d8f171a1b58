package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/dahyuniiiiii/Aigent/ai"
	"github.com/dahyuniiiiii/Aigent/core"
	"github.com/dahyuniiiiii/Aigent/storage"
	"github.com/dahyuniiiiii/Aigent/summary"
)

// Pipeline orchestrates ingestion of meeting summaries: it parses sources
// into utterances, derives stable identifiers, embeds the texts, and
// upserts the resulting documents into the store in one batch per source.
type Pipeline struct {
	docs     storage.DocumentRepository
	embedder ai.Embedder
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for bulk ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(docs storage.DocumentRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if docs == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		docs:     docs,
		embedder: provider.Embedder(),
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Ingest parses one summary source and upserts its documents.
// Returns the number of documents written. A source yielding no valid
// lines leaves the store untouched and reports zero, not an error.
//
// Identifiers are derived from the source timestamp and line position, so
// ingesting the same source again overwrites the same records in place.
func (p *Pipeline) Ingest(ctx context.Context, src summary.Source) (int, error) {
	ts := src.Timestamp()
	if ts == "" {
		p.logger.Warn("source has no extractable timestamp, using unknown date bucket", "source", src.Name)
	}

	lines := summary.ParseLines(src.Text)
	if len(lines) == 0 {
		p.logger.Info("source has no valid lines, nothing to ingest", "source", src.Name)
		return 0, nil
	}

	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding %d lines from %s: %w", len(texts), src.Name, err)
	}
	if len(vectors) != len(lines) {
		return 0, fmt.Errorf("embedding result mismatch for %s: expected %d, received %d",
			src.Name, len(lines), len(vectors))
	}

	date := core.DateOf(ts)
	docs := make([]*core.Document, len(lines))
	for i, line := range lines {
		docs[i] = &core.Document{
			ID:     core.DocumentID(ts, line.Index),
			Date:   date,
			Text:   line.Text,
			Vector: vectors[i],
		}
	}

	if err := p.docs.UpsertDocuments(ctx, docs...); err != nil {
		return 0, fmt.Errorf("upserting %d documents from %s: %w", len(docs), src.Name, err)
	}

	p.logger.Info("ingested source", "source", src.Name, "documents", len(docs), "date", date)
	return len(docs), nil
}

// IngestAll ingests every source over the worker pool and reports
// per-source outcomes. Failing sources do not stop the rest; the store
// only ever grows by upsert, so re-running a bulk ingest is idempotent.
func (p *Pipeline) IngestAll(ctx context.Context, sources []summary.Source) *Report {
	report := &Report{Results: make([]SourceResult, len(sources))}

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		if err := p.pool.Submit(func() {
			defer wg.Done()
			count, err := p.Ingest(ctx, src)
			report.Results[i] = SourceResult{Source: src.Name, Documents: count, Err: err}
		}); err != nil {
			// Pool rejected the task (released or overloaded); record and move on.
			report.Results[i] = SourceResult{Source: src.Name, Err: err}
			wg.Done()
		}
	}
	wg.Wait()

	for _, res := range report.Results {
		report.Documents += res.Documents
	}
	return report
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// SourceResult is the outcome of ingesting one source.
type SourceResult struct {
	Source    string
	Documents int
	Err       error
}

// Report aggregates the outcomes of a bulk ingestion run.
type Report struct {
	Documents int
	Results   []SourceResult
}

// Failed returns the results of sources that could not be ingested.
func (r *Report) Failed() []SourceResult {
	var failed []SourceResult
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
