// Package tts предоставляет абстракцию для облачных движков синтеза речи.
package tts

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Provider тип движка синтеза.
type Provider string

const (
	// ProviderGoogle - Google Translate TTS, не требует ключа.
	ProviderGoogle Provider = "google"
	// ProviderOpenAI - OpenAI Speech API.
	ProviderOpenAI Provider = "openai"
)

// Synthesizer - интерфейс для движков синтеза речи.
type Synthesizer interface {
	// Synthesize возвращает MP3 для текста на языке lang ("ru", "en").
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)

	// Name возвращает название движка (для логирования).
	Name() string
}

// Config содержит настройки для создания синтезатора.
type Config struct {
	Provider Provider
	Fallback Provider // пусто - без резервного движка
	Timeout  time.Duration

	GoogleURL string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	OpenAIVoice   string
	OpenAISpeed   float64
}

// New создаёт синтезатор по конфигурации.
func New(cfg Config) (Synthesizer, error) {
	primary, err := create(cfg.Provider, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Fallback == "" || cfg.Fallback == cfg.Provider {
		return primary, nil
	}

	fallback, err := create(cfg.Fallback, cfg)
	if err != nil {
		log.Printf("Резервный движок TTS недоступен: %v", err)
		return primary, nil
	}

	return NewWithFallback(primary, fallback), nil
}

func create(p Provider, cfg Config) (Synthesizer, error) {
	switch p {
	case ProviderGoogle, "":
		return NewGoogle(cfg.GoogleURL, cfg.Timeout), nil
	case ProviderOpenAI:
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("неизвестный движок TTS: %s", p)
	}
}

// fallbackSynthesizer пробует основной движок, затем резервный.
type fallbackSynthesizer struct {
	primary  Synthesizer
	fallback Synthesizer
}

// NewWithFallback создаёт синтезатор с резервным движком.
func NewWithFallback(primary, fallback Synthesizer) Synthesizer {
	return &fallbackSynthesizer{primary: primary, fallback: fallback}
}

func (f *fallbackSynthesizer) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	audio, err := f.primary.Synthesize(ctx, text, lang)
	if err == nil {
		return audio, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	log.Printf("TTS: %s не сработал (%v), пробуем %s", f.primary.Name(), err, f.fallback.Name())
	return f.fallback.Synthesize(ctx, text, lang)
}

func (f *fallbackSynthesizer) Name() string {
	return fmt.Sprintf("%s (fallback: %s)", f.primary.Name(), f.fallback.Name())
}
