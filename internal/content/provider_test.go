package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"golos/internal/i18n"
)

var threeDigits = regexp.MustCompile(`\b[1-9]\d{2}\b`)

func newTestProvider(t *testing.T, handler http.HandlerFunc, cfg Config) (*Provider, *Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.URL = server.URL
	store := NewStore()
	return NewProvider(cfg, store), store
}

func TestGenerateSuccess(t *testing.T) {
	var query string
	p, store := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","text":"X","errorCode":0}`))
	}, DefaultConfig())

	status := p.Generate(context.Background())

	if status != i18n.T("status_created") {
		t.Errorf("Expected status '%s', got '%s'", i18n.T("status_created"), status)
	}
	if store.Text() != "X" {
		t.Errorf("Expected current text 'X', got '%s'", store.Text())
	}
	if !strings.Contains(query, "type=paragraph") || !strings.Contains(query, "number=3") {
		t.Errorf("Unexpected query '%s'", query)
	}
}

func TestGenerateFallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":"error","text":"","errorCode":11}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<html>not json</html>`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				time.Sleep(200 * time.Millisecond)
				w.Write([]byte(`{"status":"success","text":"late"}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Timeout = 50 * time.Millisecond
			p, store := newTestProvider(t, tt.handler, cfg)

			status := p.Generate(context.Background())

			if status != i18n.T("status_created_local") {
				t.Errorf("Expected status '%s', got '%s'", i18n.T("status_created_local"), status)
			}
			text := store.Text()
			if !strings.HasPrefix(text, i18n.T("local_title")) {
				t.Errorf("Expected local placeholder text, got '%s'", text)
			}
			if !threeDigits.MatchString(text) {
				t.Errorf("Expected a 3-digit number in '%s'", text)
			}
		})
	}
}

func TestGenerateNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	cfg := DefaultConfig()
	cfg.URL = server.URL
	store := NewStore()
	store.Set("old")

	status := NewProvider(cfg, store).Generate(context.Background())

	if status != i18n.T("status_created_local") {
		t.Errorf("Expected local status, got '%s'", status)
	}
	if store.Text() == "old" {
		t.Error("Expected current text to be overwritten")
	}
}

func TestGenerateBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	cfg := DefaultConfig()
	cfg.BreakerFailures = 2
	cfg.BreakerCooldown = time.Hour
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}, cfg)

	for i := 0; i < 5; i++ {
		if status := p.Generate(context.Background()); status != i18n.T("status_created_local") {
			t.Fatalf("call %d: expected local status, got '%s'", i, status)
		}
	}

	if got := calls.Load(); got != 2 {
		t.Errorf("Expected 2 requests before breaker opened, got %d", got)
	}
}

func TestLocalText(t *testing.T) {
	for i := 0; i < 20; i++ {
		text := LocalText()
		lines := strings.Split(text, "\n")
		if len(lines) != 5 {
			t.Fatalf("Expected 5 paragraphs, got %d", len(lines))
		}
		if !threeDigits.MatchString(lines[4]) {
			t.Errorf("Expected a 3-digit number in '%s'", lines[4])
		}
	}
}
