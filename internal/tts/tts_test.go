package tts

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"
)

type mockSynthesizer struct {
	name  string
	audio []byte
	err   error
	calls int
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	m.calls++
	return m.audio, m.err
}

func (m *mockSynthesizer) Name() string {
	return m.name
}

func TestSplitText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "   ", 10, nil},
		{"short", "привет мир", 100, []string{"привет мир"}},
		{"wrap on words", "один два три", 8, []string{"один два", "три"}},
		{"long word", "абвгдеёжз", 4, []string{"абвг", "деёж", "з"}},
		{"newlines", "a\nb\nc", 100, []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %d chunks %q, got %d %q", len(tt.want), tt.want, len(got), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk %d: expected %q, got %q", i, tt.want[i], got[i])
				}
				if n := utf8.RuneCountInString(got[i]); n > tt.limit {
					t.Errorf("chunk %d longer than limit: %d", i, n)
				}
			}
		})
	}
}

func TestGoogleSynthesize(t *testing.T) {
	var mu sync.Mutex
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query().Get("q"))
		mu.Unlock()

		if r.URL.Query().Get("tl") != "ru" {
			http.Error(w, "bad lang", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("[" + r.URL.Query().Get("idx") + "]"))
	}))
	defer server.Close()

	g := NewGoogle(server.URL, 0)
	text := strings.Repeat("слово ", 40) // 240 рун, три запроса

	audio, err := g.Synthesize(context.Background(), text, "ru")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if !bytes.Equal(audio, []byte("[0][1][2]")) {
		t.Errorf("Expected concatenated chunks, got %q", audio)
	}
	if len(queries) != 3 {
		t.Fatalf("Expected 3 requests, got %d", len(queries))
	}
	if !strings.HasPrefix(queries[0], "слово слово") {
		t.Errorf("Unexpected first chunk %q", queries[0])
	}
}

func TestGoogleSynthesizeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := NewGoogle(server.URL, 0)
	if _, err := g.Synthesize(context.Background(), "текст", "ru"); err == nil {
		t.Error("Expected error on HTTP 429")
	}
	if _, err := g.Synthesize(context.Background(), "", "ru"); err == nil {
		t.Error("Expected error on empty text")
	}
}

func TestOpenAISynthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/speech" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("mp3"))
	}))
	defer server.Close()

	o, err := NewOpenAI(Config{OpenAIKey: "sk-test", OpenAIBaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}

	audio, err := o.Synthesize(context.Background(), "привет", "ru")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(audio) != "mp3" {
		t.Errorf("Expected 'mp3', got %q", audio)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantName string
		wantErr  bool
	}{
		{"default is google", Config{}, "google", false},
		{"openai without key", Config{Provider: ProviderOpenAI}, "", true},
		{"unknown provider", Config{Provider: "espeak"}, "", true},
		{"openai with google fallback", Config{Provider: ProviderOpenAI, Fallback: ProviderGoogle, OpenAIKey: "k"}, "openai (fallback: google)", false},
		{"unusable fallback ignored", Config{Provider: ProviderGoogle, Fallback: ProviderOpenAI}, "google", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.Name() != tt.wantName {
				t.Errorf("Expected name '%s', got '%s'", tt.wantName, s.Name())
			}
		})
	}
}

func TestFallback(t *testing.T) {
	primary := &mockSynthesizer{name: "primary", err: errors.New("down")}
	fallback := &mockSynthesizer{name: "fallback", audio: []byte("ok")}

	audio, err := NewWithFallback(primary, fallback).Synthesize(context.Background(), "x", "ru")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if string(audio) != "ok" || primary.calls != 1 || fallback.calls != 1 {
		t.Errorf("Unexpected result %q, calls %d/%d", audio, primary.calls, fallback.calls)
	}

	// Отменённый контекст не переключает на резервный движок
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewWithFallback(primary, fallback).Synthesize(ctx, "x", "ru"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if fallback.calls != 1 {
		t.Errorf("Expected fallback not to be called again, got %d calls", fallback.calls)
	}
}
