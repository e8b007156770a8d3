package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
)

// Classifier is the pipeline surface the API exposes.
type Classifier interface {
	ClassifyDepression(ctx context.Context, summary string) (classifier.DepressionVerdict, error)
	ClassifyEmotion(ctx context.Context, summary string) (classifier.EmotionVerdict, error)
	Assess(ctx context.Context, summary string) (classifier.Assessment, error)
	ConfidenceEnabled() bool
}

type Server struct {
	router     *chi.Mux
	port       int
	oracle     string
	classifier Classifier
	logger     *slog.Logger
	srv        *http.Server
}

func NewServer(port int, apiToken, oracle string, c Classifier, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:     router,
		port:       port,
		oracle:     oracle,
		classifier: c,
		logger:     logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/moodwatch/status", s.status)
	router.Get("/api/v1/schemas/emotion", s.emotionSchema)

	router.Group(func(r chi.Router) {
		r.Use(BearerAuthMiddleware(apiToken))
		r.Post("/api/v1/classify/depression", s.classifyDepression)
		r.Post("/api/v1/classify/emotion", s.classifyEmotion)
		r.Post("/api/v1/assess", s.assess)
	})

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("API server starting", "addr", addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	profile := "label"
	if s.classifier.ConfidenceEnabled() {
		profile = "label+confidence"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"agent":           "moodwatch",
		"oracle":          s.oracle,
		"emotion_profile": profile,
	})
}

func (s *Server) emotionSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := classifier.EmotionSchema(s.classifier.ConfidenceEnabled())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
