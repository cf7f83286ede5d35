package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewProxyFuncExplicit(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "http://sproxy.local:3128")

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	u, err := fn(req)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u.Host != "proxy.local:3128" {
		t.Errorf("http proxy = %s", u.Host)
	}

	req = httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	u, err = fn(req)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u.Host != "sproxy.local:3128" {
		t.Errorf("https proxy = %s", u.Host)
	}
}

func TestNewProxyFuncFallsBackToHTTPProxy(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "")

	req := httptest.NewRequest(http.MethodGet, "https://example.com", nil)
	u, err := fn(req)
	if err != nil {
		t.Fatalf("proxy func: %v", err)
	}
	if u.Host != "proxy.local:3128" {
		t.Errorf("proxy = %s", u.Host)
	}
}
