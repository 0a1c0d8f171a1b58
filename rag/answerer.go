package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dahyuniiiiii/Aigent/ai"
	"github.com/dahyuniiiiii/Aigent/retrieval"
)

// Result is the outcome of answering a question.
//
// Retrieval problems abort the operation and surface as an error from
// Answer. Generation problems do not: the retrieved context is still
// useful, so the Result carries it along with GenerationErr and the caller
// decides how to degrade.
type Result struct {
	Answer        string
	Context       []string
	GenerationErr error
}

// Answerer combines semantic retrieval with LLM generation to answer
// questions about stored meeting summaries.
type Answerer struct {
	retriever *retrieval.Retriever
	generator ai.Generator
	topK      int
	logger    *slog.Logger
}

// Option configures an Answerer.
type Option func(*Answerer) error

// WithTopK sets how many documents are retrieved as context.
// Default is retrieval.DefaultTopK.
func WithTopK(k int) Option {
	return func(a *Answerer) error {
		if k > 0 {
			a.topK = k
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Answerer) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAnswerer creates a new answerer.
func NewAnswerer(retriever *retrieval.Retriever, provider ai.Provider, opts ...Option) (*Answerer, error) {
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	a := &Answerer{
		retriever: retriever,
		generator: provider.Generator(),
		topK:      retrieval.DefaultTopK,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Answer retrieves context for the question, builds a prompt, and asks the
// generator. Retrieval failures are returned as an error. Generation
// failures are reported inside the Result, with the retrieved context
// intact, so the caller can fall back gracefully.
func (a *Answerer) Answer(ctx context.Context, question string) (*Result, error) {
	contextTexts, err := a.retriever.RetrieveContext(ctx, question, a.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	prompt := BuildPrompt(contextTexts, question)

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		a.logger.Error("answer generation failed", "question", question, "error", err)
		return &Result{Context: contextTexts, GenerationErr: err}, nil
	}

	a.logger.Info("answered question", "question", question, "context_documents", len(contextTexts))
	return &Result{Answer: answer, Context: contextTexts}, nil
}
