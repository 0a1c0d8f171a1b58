package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dahyuniiiiii/Aigent/core"
	"github.com/dahyuniiiiii/Aigent/rag"
	"github.com/dahyuniiiiii/Aigent/storage"
)

// FallbackAnswer is returned to clients when answer generation fails.
const FallbackAnswer = "The AI service is currently unavailable. Please try again shortly."

// Server exposes the question answering and store inspection endpoints
// over HTTP.
type Server struct {
	router    *chi.Mux
	addr      string
	answerer  *rag.Answerer
	docs      storage.DocumentRepository
	staticDir string
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithStaticDir serves the web UI from the given directory.
// Default is no static serving.
func WithStaticDir(dir string) Option {
	return func(s *Server) error {
		s.staticDir = dir
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates an HTTP server for the given answerer and document
// repository.
func NewServer(addr string, answerer *rag.Answerer, docs storage.DocumentRepository, opts ...Option) (*Server, error) {
	if answerer == nil {
		return nil, ErrAnswererRequired
	}
	if docs == nil {
		return nil, ErrRepositoryRequired
	}

	s := &Server{
		addr:     addr,
		answerer: answerer,
		docs:     docs,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", s.health)
	router.Post("/rag_answer", s.ragAnswer)
	router.Get("/vector_check", s.vectorCheck)

	if s.staticDir != "" {
		router.Get("/", s.index)
		router.Handle("/static/*", http.StripPrefix("/static/",
			http.FileServer(http.Dir(s.staticDir))))
	}

	s.router = router
	return s, nil
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server starting", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type answerRequest struct {
	Question string `json:"question"`
}

type answerResponse struct {
	Answer string `json:"answer"`
}

type documentEntry struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	Date     string `json:"date"`
}

type vectorCheckResponse struct {
	Count     int             `json:"count"`
	Documents []documentEntry `json:"documents"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) ragAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "question must not be empty"})
		return
	}

	result, err := s.answerer.Answer(r.Context(), req.Question)
	if err != nil {
		s.logger.Error("answering question failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "retrieval failed"})
		return
	}

	if result.GenerationErr != nil {
		// Degrade to a fixed answer; the client still gets a 200 with usable text.
		writeJSON(w, http.StatusOK, answerResponse{Answer: FallbackAnswer})
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{Answer: result.Answer})
}

func (s *Server) vectorCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date := r.URL.Query().Get("date")

	var (
		stored []*core.Document
		err    error
	)
	if date != "" {
		stored, err = s.docs.GetDocumentsByDate(ctx, date)
	} else {
		stored, err = s.docs.ScanAll(ctx)
	}
	if err != nil {
		s.logger.Error("listing documents failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "listing documents failed"})
		return
	}

	entries := make([]documentEntry, len(stored))
	for i, doc := range stored {
		entries[i] = documentEntry{ID: doc.ID, Document: doc.Text, Date: doc.Date}
	}

	writeJSON(w, http.StatusOK, vectorCheckResponse{Count: len(entries), Documents: entries})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
