package aigent

import (
	"log/slog"

	"github.com/dahyuniiiiii/Aigent/ai"
	"github.com/dahyuniiiiii/Aigent/ai/openai"
	"github.com/dahyuniiiiii/Aigent/ingestion"
	"github.com/dahyuniiiiii/Aigent/rag"
	"github.com/dahyuniiiiii/Aigent/retrieval"
	"github.com/dahyuniiiiii/Aigent/storage"
	"github.com/dahyuniiiiii/Aigent/storage/badger"
)

// Engine bundles the document store and AI provider behind one handle and
// acts as the factory for pipelines, retrievers, and answerers.
type Engine struct {
	backend  *badger.Backend
	docs     storage.DocumentRepository
	provider ai.Provider
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI service configuration used to build the default
// OpenAI-compatible provider.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies an already constructed AI provider, bypassing the
// default OpenAI-compatible one. Mainly useful for tests.
func WithProvider(provider ai.Provider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// NewEngine opens the document store at filePath and wires up the AI
// provider.
func NewEngine(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	docs := badger.NewDocumentRepository(backend)

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			docs.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Engine{
		backend:  backend,
		docs:     docs,
		provider: provider,
		logger:   slog.Default(),
	}, nil
}

func (e *Engine) Close() error {
	if err := e.provider.Close(); err != nil {
		e.logger.Error("error closing AI provider", "err", err)
	}

	if err := e.docs.Close(); err != nil {
		e.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (e *Engine) DocumentRepository() storage.DocumentRepository {
	return e.docs
}

func (e *Engine) Provider() ai.Provider {
	return e.provider
}

func (e *Engine) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(e.docs, e.provider, opts...)
}

func (e *Engine) NewRetriever(opts ...retrieval.Option) (*retrieval.Retriever, error) {
	return retrieval.NewRetriever(e.docs, e.provider, opts...)
}

func (e *Engine) NewAnswerer(opts ...rag.Option) (*rag.Answerer, error) {
	retriever, err := e.NewRetriever()
	if err != nil {
		return nil, err
	}
	return rag.NewAnswerer(retriever, e.provider, opts...)
}
