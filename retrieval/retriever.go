package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dahyuniiiiii/Aigent/ai"
	"github.com/dahyuniiiiii/Aigent/core"
	"github.com/dahyuniiiiii/Aigent/storage"
)

// DefaultTopK is the number of documents retrieved when the caller does not
// specify a limit.
const DefaultTopK = 4

// Retriever performs semantic retrieval over stored meeting documents.
// A question is embedded with the same model used at ingestion time and
// matched against stored vectors by cosine similarity.
type Retriever struct {
	docs     storage.DocumentRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Retriever.
type Option func(*Retriever) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Retriever) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRetriever creates a new retriever.
func NewRetriever(docs storage.DocumentRepository, provider ai.Provider, opts ...Option) (*Retriever, error) {
	if docs == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	r := &Retriever{
		docs:     docs,
		embedder: provider.Embedder(),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Search embeds the question and returns the most similar documents with
// their scores, best first. A limit of zero or less falls back to
// DefaultTopK. An empty store yields an empty result, not an error.
func (r *Retriever) Search(ctx context.Context, question string, limit int) ([]*core.SearchResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}
	if limit <= 0 {
		limit = DefaultTopK
	}

	vector, err := r.embedder.EmbedText(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	results, err := r.docs.FindSimilar(ctx, vector, limit)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	r.logger.Debug("semantic search complete", "question", question, "limit", limit, "hits", len(results))
	return results, nil
}

// RetrieveContext returns the texts of the most similar documents, best
// first. The result is never nil; an empty store yields an empty slice.
func (r *Retriever) RetrieveContext(ctx context.Context, question string, limit int) ([]string, error) {
	results, err := r.Search(ctx, question, limit)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Document.Text
	}
	return texts, nil
}

// BuildContext joins retrieved texts into a single context block, one
// document per line.
func BuildContext(texts []string) string {
	return strings.Join(texts, "\n")
}
