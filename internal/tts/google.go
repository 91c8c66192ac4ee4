package tts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultGoogleURL = "https://translate.google.com/translate_tts"
	DefaultTimeout   = 15 * time.Second

	// maxChunkRunes - максимальная длина текста в одном запросе.
	maxChunkRunes = 100

	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
)

// Google реализует Synthesizer через Google Translate TTS.
type Google struct {
	baseURL    string
	httpClient *http.Client
}

// NewGoogle создаёт синтезатор Google Translate TTS.
func NewGoogle(baseURL string, timeout time.Duration) *Google {
	if baseURL == "" {
		baseURL = DefaultGoogleURL
	}
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Google{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name возвращает название движка.
func (g *Google) Name() string {
	return "google"
}

// Synthesize запрашивает MP3 по частям и склеивает кадры.
func (g *Google) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	chunks := SplitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("пустой текст")
	}

	var audio bytes.Buffer
	for i, chunk := range chunks {
		if err := g.fetch(ctx, &audio, chunk, lang, i, len(chunks)); err != nil {
			return nil, err
		}
	}
	return audio.Bytes(), nil
}

func (g *Google) fetch(ctx context.Context, w io.Writer, chunk, lang string, idx, total int) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("client", "tw-ob")
	params.Set("tl", lang)
	params.Set("q", chunk)
	params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))
	params.Set("idx", strconv.Itoa(idx))
	params.Set("total", strconv.Itoa(total))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("google tts error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read audio: %w", err)
	}
	return nil
}

// SplitText делит текст на части не длиннее limit рун по границам слов.
// Слово длиннее limit режется по рунам.
func SplitText(text string, limit int) []string {
	var chunks []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, string(current))
			current = current[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > limit {
			flush()
			chunks = append(chunks, string(w[:limit]))
			w = w[limit:]
		}

		need := len(w)
		if len(current) > 0 {
			need++ // пробел
		}
		if len(current)+need > limit {
			flush()
		}
		if len(current) > 0 {
			current = append(current, ' ')
		}
		current = append(current, w...)
	}
	flush()

	return chunks
}
