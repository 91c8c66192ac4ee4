package tts

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// OpenAI реализует Synthesizer через OpenAI Speech API.
// Язык определяется моделью по самому тексту.
type OpenAI struct {
	client *openai.Client
	model  string
	voice  string
	speed  float64
}

// NewOpenAI создаёт синтезатор OpenAI.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	o := &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
		voice:  cfg.OpenAIVoice,
		speed:  cfg.OpenAISpeed,
	}
	if o.model == "" {
		o.model = string(openai.TTSModel1)
	}
	if o.voice == "" {
		o.voice = string(openai.VoiceAlloy)
	}
	if o.speed == 0 {
		o.speed = 1.0
	}
	return o, nil
}

// Name возвращает название движка.
func (o *OpenAI) Name() string {
	return "openai"
}

// Synthesize возвращает MP3 для текста.
func (o *OpenAI) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(o.model),
		Input:          text,
		Voice:          openai.SpeechVoice(o.voice),
		Speed:          o.speed,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}
