// Package api is the HTTP surface: one generation endpoint, a status
// endpoint and the corpus embeddings rebuild trigger.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/muse/internal/bus"
	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/corpus"
	"github.com/MikeSquared-Agency/muse/internal/llm"
	"github.com/MikeSquared-Agency/muse/internal/trends"
)

// Generator is the slice of the orchestrator the API needs.
type Generator interface {
	Generate(ctx context.Context, input campaign.Input) (campaign.Generated, error)
}

// GeneratorFactory builds the orchestrator for one request. Both override
// strings are usually empty, in which case implementations should return
// the shared default generator.
type GeneratorFactory func(apiKey, model string) Generator

// RebuildFunc re-embeds the corpus and returns how many references were
// updated. Wired up in main so the API stays ignorant of the embedder.
type RebuildFunc func(ctx context.Context) (int, error)

// Publisher emits run events to the bus. Nil means no bus configured.
type Publisher interface {
	Publish(subject string, data any) error
}

type Server struct {
	router     *chi.Mux
	port       int
	generators GeneratorFactory
	corpus     *corpus.Corpus
	trends     *trends.Cache
	rebuild    RebuildFunc
	publisher  Publisher
	logger     *slog.Logger
}

func NewServer(port int, generators GeneratorFactory, corp *corpus.Corpus, trendCache *trends.Cache, rebuild RebuildFunc, publisher Publisher, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:     router,
		port:       port,
		generators: generators,
		corpus:     corp,
		trends:     trendCache,
		rebuild:    rebuild,
		publisher:  publisher,
		logger:     logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/muse/status", s.status)
	router.Post("/api/generate", s.generate)
	router.Post("/api/v1/corpus/embeddings/rebuild", s.rebuildEmbeddings)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	var refreshed string
	if t := s.trends.RefreshedAt(); !t.IsZero() {
		refreshed = t.Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agent":            "muse",
		"status":           "ready",
		"corpus_size":      s.corpus.Size(),
		"corpus_embedded":  s.corpus.EmbeddedCount(),
		"trends":           s.trends.Size(),
		"trends_refreshed": refreshed,
	})
}

// generateRequest is the brief plus optional per-request model overrides.
type generateRequest struct {
	campaign.Input
	APIKey string `json:"apiKey,omitempty"`
	Model  string `json:"model,omitempty"`
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return
	}
	input := req.Input

	start := time.Now()
	result, err := s.generators(req.APIKey, req.Model).Generate(r.Context(), input)
	if err != nil {
		var genErr *llm.GenerationError
		switch {
		case errors.Is(err, campaign.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.As(err, &genErr), errors.Is(err, llm.ErrNoAPIKey):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.publishRunEvent(input, result, time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) rebuildEmbeddings(w http.ResponseWriter, r *http.Request) {
	if s.rebuild == nil {
		writeError(w, http.StatusServiceUnavailable, "embeddings not configured")
		return
	}

	updated, err := s.rebuild(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("rebuild failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"updated": updated,
		"total":   s.corpus.Size(),
	})
}

// publishRunEvent is fail-soft: a bus problem never affects the response.
func (s *Server) publishRunEvent(input campaign.Input, result campaign.Generated, duration time.Duration) {
	if s.publisher == nil {
		return
	}

	event := bus.RunEvent{
		RunID:        result.RunID,
		Brand:        input.Brand,
		Industry:     input.Industry,
		CampaignName: result.CampaignName,
		DurationMS:   duration.Milliseconds(),
	}
	if result.BraveryScores != nil {
		event.BraveryScore = result.BraveryScores.TotalScore
	}
	if result.Evaluation != nil {
		event.OverallScore = result.Evaluation.OverallScore
	}

	if err := s.publisher.Publish(bus.SubjectGenerated, event); err != nil {
		s.logger.Warn("failed to publish run event", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
