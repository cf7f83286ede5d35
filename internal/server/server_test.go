package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quantfold/thesisgrade/internal/model"
	"github.com/quantfold/thesisgrade/internal/pipeline"
)

type stubAnalyzer struct {
	err error
}

func (s *stubAnalyzer) Analyze(_ context.Context, text string) (*model.StrengthReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(strings.TrimSpace(text)) < 50 {
		return nil, &pipeline.ErrTextTooShort{Got: len(text), Min: 50}
	}
	return &model.StrengthReport{OverallScore: 67, Grade: "C"}, nil
}

func newTestServer(a Analyzer) http.Handler {
	srv := New(a, model.ServerConfig{
		Addr:           ":0",
		AllowedOrigins: []string{"http://localhost:5173"},
	}, nil)
	return srv.Handler()
}

const longThesis = "Revenue grew 20% per the 10-K and we expect continued expansion through 2027."

func TestHealthz(t *testing.T) {
	h := newTestServer(&stubAnalyzer{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAnalyzeRawText(t *testing.T) {
	h := newTestServer(&stubAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(longThesis))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var report model.StrengthReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if report.Grade != "C" {
		t.Errorf("grade = %s, want C", report.Grade)
	}
}

func TestAnalyzeJSONBody(t *testing.T) {
	h := newTestServer(&stubAnalyzer{})

	body, _ := json.Marshal(map[string]string{"text": longThesis})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestAnalyzeShortTextReturns400(t *testing.T) {
	h := newTestServer(&stubAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("too short"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if !strings.Contains(resp.Error, "too short") {
		t.Errorf("error = %q", resp.Error)
	}
}

func TestAnalyzeInternalErrorReturns500(t *testing.T) {
	h := newTestServer(&stubAnalyzer{err: errors.New("segmenter unreachable")})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(longThesis))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "segmenter unreachable") {
		t.Errorf("body should carry the failure reason, got %s", rec.Body.String())
	}
}

func TestAnalyzeInvalidJSONReturns400(t *testing.T) {
	h := newTestServer(&stubAnalyzer{})

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCORSAllowedOrigin(t *testing.T) {
	h := newTestServer(&stubAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow-origin = %q", got)
	}
}

func TestCORSUnknownOrigin(t *testing.T) {
	h := newTestServer(&stubAnalyzer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("allow-origin should be unset, got %q", got)
	}
}
