package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/moodwatch/internal/classifier"
)

const maxBodyBytes = 1 << 20

// ClassifyRequest is the body of every classification endpoint.
type ClassifyRequest struct {
	Summary string `json:"summary"`
}

type DepressionResponse struct {
	ID string `json:"id"`
	classifier.DepressionVerdict
	Display string `json:"display"`
}

type EmotionResponse struct {
	ID string `json:"id"`
	classifier.EmotionVerdict
}

type AssessResponse struct {
	ID         string                       `json:"id"`
	Depression classifier.DepressionVerdict `json:"depression"`
	Emotion    classifier.EmotionVerdict    `json:"emotion"`
	Display    string                       `json:"display"`
}

// classifyDepression handles POST /api/v1/classify/depression
func (s *Server) classifyDepression(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.readSummary(w, r)
	if !ok {
		return
	}

	v, err := s.classifier.ClassifyDepression(r.Context(), summary)
	if err != nil {
		s.writeClassifyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DepressionResponse{
		ID:                uuid.NewString(),
		DepressionVerdict: v,
		Display:           v.Render(),
	})
}

// classifyEmotion handles POST /api/v1/classify/emotion
func (s *Server) classifyEmotion(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.readSummary(w, r)
	if !ok {
		return
	}

	v, err := s.classifier.ClassifyEmotion(r.Context(), summary)
	if err != nil {
		s.writeClassifyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, EmotionResponse{ID: uuid.NewString(), EmotionVerdict: v})
}

// assess handles POST /api/v1/assess
func (s *Server) assess(w http.ResponseWriter, r *http.Request) {
	summary, ok := s.readSummary(w, r)
	if !ok {
		return
	}

	a, err := s.classifier.Assess(r.Context(), summary)
	if err != nil {
		s.writeClassifyError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AssessResponse{
		ID:         uuid.NewString(),
		Depression: a.Depression,
		Emotion:    a.Emotion,
		Display:    a.Depression.Render(),
	})
}

func (s *Server) readSummary(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req ClassifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %v", err))
		return "", false
	}
	if strings.TrimSpace(req.Summary) == "" {
		writeError(w, http.StatusBadRequest, "summary is required")
		return "", false
	}
	return req.Summary, true
}

func (s *Server) writeClassifyError(w http.ResponseWriter, err error) {
	if errors.Is(err, classifier.ErrOracleUnavailable) {
		s.logger.Warn("classification failed", "error", err)
		writeError(w, http.StatusBadGateway, classifier.ErrOracleUnavailable.Error())
		return
	}
	s.logger.Error("classification failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
