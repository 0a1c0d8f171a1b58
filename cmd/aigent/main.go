package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	aigent "github.com/dahyuniiiiii/Aigent"
	"github.com/dahyuniiiiii/Aigent/ai"
	"github.com/dahyuniiiiii/Aigent/ai/openai"
	"github.com/dahyuniiiiii/Aigent/ingestion"
	"github.com/dahyuniiiiii/Aigent/rag"
	"github.com/dahyuniiiiii/Aigent/server"
	"github.com/dahyuniiiiii/Aigent/storage/badger"
	"github.com/dahyuniiiiii/Aigent/summary"
	"github.com/dahyuniiiiii/Aigent/watcher"
)

func dbFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		EnvVars:  []string{"AIGENT_DB"},
		Required: true,
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			EnvVars: []string{"AIGENT_EMBEDDING_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "generator-host",
			Usage:   "Generation service host URL",
			EnvVars: []string{"AIGENT_GENERATOR_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"AIGENT_EMBEDDING_MODEL"},
			Value:   "all-minilm",
		},
		&cli.StringFlag{
			Name:    "generator-model",
			Usage:   "Generation model name",
			EnvVars: []string{"AIGENT_GENERATOR_MODEL"},
			Value:   "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "API key for the AI services",
			EnvVars: []string{"AIGENT_API_KEY"},
		},
	}
}

func buildAIConfig(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithGeneratorHost(c.String("generator-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithGeneratorModel(c.String("generator-model")),
		ai.WithAPIKey(c.String("api-key")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func main() {
	// Optional .env file for local development; missing is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "aigent",
		Usage:  "Meeting summary question answering over a local vector store",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				EnvVars: []string{"AIGENT_LOG_LEVEL"},
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP server, optionally watching a directory for new summaries",
				Action: serveCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "HTTP listen address",
						EnvVars: []string{"AIGENT_ADDR"},
						Value:   ":8000",
					},
					&cli.StringFlag{
						Name:    "watch-dir",
						Usage:   "Directory to watch for new meeting summary files",
						EnvVars: []string{"AIGENT_WATCH_DIR"},
					},
					&cli.StringFlag{
						Name:    "static-dir",
						Usage:   "Directory holding the web UI",
						EnvVars: []string{"AIGENT_STATIC_DIR"},
						Value:   "static",
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of context documents retrieved per question",
						Value: 4,
					},
				}, aiFlags()...),
			},
			{
				Name:   "ingest",
				Usage:  "Ingest every meeting summary file in a directory",
				Action: ingestCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory containing meeting summary .txt files",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of sources ingested concurrently",
					},
				}, aiFlags()...),
			},
			{
				Name:      "query",
				Usage:     "Answer a question from the stored meeting summaries",
				ArgsUsage: "QUESTION",
				Action:    queryCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of context documents retrieved",
						Value: 4,
					},
					&cli.BoolFlag{
						Name:  "show-context",
						Usage: "Print the retrieved context documents before the answer",
					},
				}, aiFlags()...),
			},
			{
				Name:   "export",
				Usage:  "Dump all stored documents as JSON",
				Action: exportCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, or - for stdout",
						Value:   "-",
					},
					&cli.BoolFlag{
						Name:  "vectors",
						Usage: "Include embedding vectors in the dump",
					},
				},
			},
			{
				Name:   "reembed",
				Usage:  "Re-embed all stored documents, e.g. after switching embedding models",
				Action: reembedCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to embed per request",
						Value: 100,
					},
				}, aiFlags()...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}

func serveCommand(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	aiConfig, err := buildAIConfig(c)
	if err != nil {
		return err
	}

	engine, err := aigent.NewEngine(c.String("db"), aigent.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	answerer, err := engine.NewAnswerer(rag.WithTopK(c.Int("top-k")))
	if err != nil {
		return err
	}

	srv, err := server.NewServer(c.String("addr"), answerer, engine.DocumentRepository(),
		server.WithStaticDir(c.String("static-dir")))
	if err != nil {
		return err
	}

	if watchDir := c.String("watch-dir"); watchDir != "" {
		pipeline, err := engine.NewIngestionPipeline()
		if err != nil {
			return err
		}
		defer pipeline.Release()

		// Catch up on files that appeared while the server was down.
		sources, err := summary.LoadDir(watchDir)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", watchDir, err)
		}
		report := pipeline.IngestAll(ctx, sources)
		slog.Info("initial ingestion complete",
			"sources", len(sources), "documents", report.Documents, "failed", len(report.Failed()))

		w, err := watcher.NewWatcher(watchDir, pipeline)
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Error("watcher stopped", "error", err)
			}
		}()
	}

	return srv.Start(ctx)
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := buildAIConfig(c)
	if err != nil {
		return err
	}

	engine, err := aigent.NewEngine(c.String("db"), aigent.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	var pipelineOpts []ingestion.Option
	if size := c.Int("pool-size"); size > 0 {
		pipelineOpts = append(pipelineOpts, ingestion.WithPoolSize(size))
	}

	pipeline, err := engine.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	sources, err := summary.LoadDir(c.String("dir"))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", c.String("dir"), err)
	}
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "No summary files found.")
		return nil
	}

	report := pipeline.IngestAll(ctx, sources)

	fmt.Fprintf(os.Stderr, "Ingested %d documents from %d sources\n", report.Documents, len(sources))
	for _, failed := range report.Failed() {
		fmt.Fprintf(os.Stderr, "  failed: %s: %v\n", failed.Source, failed.Err)
	}
	if len(report.Failed()) > 0 {
		return fmt.Errorf("%d sources failed", len(report.Failed()))
	}
	return nil
}

func queryCommand(c *cli.Context) error {
	ctx := context.Background()

	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("question is required")
	}

	aiConfig, err := buildAIConfig(c)
	if err != nil {
		return err
	}

	engine, err := aigent.NewEngine(c.String("db"), aigent.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	answerer, err := engine.NewAnswerer(rag.WithTopK(c.Int("top-k")))
	if err != nil {
		return err
	}

	result, err := answerer.Answer(ctx, question)
	if err != nil {
		return err
	}

	if c.Bool("show-context") {
		fmt.Fprintln(os.Stderr, "Context:")
		for _, text := range result.Context {
			fmt.Fprintf(os.Stderr, "  - %s\n", text)
		}
		fmt.Fprintln(os.Stderr)
	}

	if result.GenerationErr != nil {
		return fmt.Errorf("answer generation failed: %w", result.GenerationErr)
	}

	fmt.Println(result.Answer)
	return nil
}

type exportedDocument struct {
	ID       string    `json:"id"`
	Date     string    `json:"date"`
	Document string    `json:"document"`
	Vector   []float32 `json:"vector,omitempty"`
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewDocumentRepository(backend)
	defer repo.Close()

	docs, err := repo.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan documents: %w", err)
	}

	exported := make([]exportedDocument, len(docs))
	for i, doc := range docs {
		exported[i] = exportedDocument{ID: doc.ID, Date: doc.Date, Document: doc.Text}
		if c.Bool("vectors") {
			exported[i].Vector = doc.Vector
		}
	}

	out := os.Stdout
	if path := c.String("output"); path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exported)
}

func reembedCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := buildAIConfig(c)
	if err != nil {
		return err
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo := badger.NewDocumentRepository(backend)
	defer repo.Close()

	docs, err := repo.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan documents: %w", err)
	}
	if len(docs) == 0 {
		fmt.Fprintln(os.Stderr, "No documents to re-embed.")
		return nil
	}

	batchSize := c.Int("batch-size")
	if batchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}

	fmt.Fprintf(os.Stderr, "Re-embedding %d documents with %s\n", len(docs), c.String("embedding-model"))

	for start := 0; start < len(docs); start += batchSize {
		end := min(start+batchSize, len(docs))
		batch := docs[start:end]

		texts := make([]string, len(batch))
		for i, doc := range batch {
			texts[i] = doc.Text
		}

		vectors, err := embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding batch at %d: %w", start, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedding result mismatch at %d: expected %d, received %d",
				start, len(batch), len(vectors))
		}

		for i, doc := range batch {
			doc.Vector = vectors[i]
		}
		if err := repo.UpsertDocuments(ctx, batch...); err != nil {
			return fmt.Errorf("upserting batch at %d: %w", start, err)
		}

		fmt.Fprintf(os.Stderr, "  %d/%d\n", end, len(docs))
	}

	return nil
}
