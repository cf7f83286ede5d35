package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClientSegment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/segment" {
			t.Errorf("path = %s, want /segment", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req segmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Text == "" {
			t.Error("empty text in request")
		}

		resp := segmentResponse{
			Sentences: []string{"Acme reported revenue growth.", "We expect more in 2027."},
			Entities: []Entity{
				{Text: "Acme", Label: LabelOrg},
				{Text: "2027", Label: LabelDate},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	sentences, entities, err := client.Segment(context.Background(), "Acme reported revenue growth. We expect more in 2027.")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}
	if len(sentences) != 2 {
		t.Errorf("sentences = %d, want 2", len(sentences))
	}
	if len(entities) != 2 || entities[0].Label != LabelOrg {
		t.Errorf("entities = %+v", entities)
	}
}

func TestClientSegmentServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	if _, _, err := client.Segment(context.Background(), "some text"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestClientPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("path = %s, want /healthz", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestClientPingUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second)
	if err := client.Ping(context.Background()); err == nil {
		t.Error("expected error for unreachable sidecar")
	}
}

func TestStripHTML(t *testing.T) {
	html := `<html><head><script>var x = 1;</script><style>.a{}</style></head>
<body><h1>Thesis</h1><p>Revenue grew 20% in 2025.</p><noscript>enable js</noscript></body></html>`

	text := StripHTML(html)

	if !strings.Contains(text, "Thesis") || !strings.Contains(text, "Revenue grew 20% in 2025.") {
		t.Errorf("visible text missing: %q", text)
	}
	if strings.Contains(text, "var x") || strings.Contains(text, ".a{}") || strings.Contains(text, "enable js") {
		t.Errorf("script/style/noscript leaked: %q", text)
	}
}
