package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/pipeline"
)

// Analyzer grades a thesis text. Satisfied by *pipeline.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*model.StrengthReport, error)
}

// maxBodyBytes bounds the request body; theses are short documents.
const maxBodyBytes = 1 << 20

type handler struct {
	analyzer Analyzer
	origins  []string
	log      *zap.Logger
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyze accepts either a JSON body {"text": ...} or raw text,
// depending on Content-Type.
func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "read request body: " + err.Error()})
		return
	}

	text := string(body)
	if r.Header.Get("Content-Type") == "application/json" {
		var req analyzeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}
		text = req.Text
	}

	report, err := h.analyzer.Analyze(r.Context(), text)
	if err != nil {
		var tooShort *pipeline.ErrTextTooShort
		if errors.As(err, &tooShort) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		h.log.Error("analysis failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	h.log.Info("thesis analyzed",
		zap.Float64("score", report.OverallScore),
		zap.String("grade", report.Grade),
		zap.Bool("degraded", report.Degraded),
		zap.Duration("elapsed", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, report)
}

func (h *handler) preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// withCORS sets the CORS headers for configured origins on every response.
func (h *handler) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && h.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) originAllowed(origin string) bool {
	for _, allowed := range h.origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
