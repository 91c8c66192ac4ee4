// Package app содержит основную логику приложения.
package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"

	"golos/internal/audio"
	"golos/internal/config"
	"golos/internal/content"
	"golos/internal/dispatch"
	"golos/internal/export"
	"golos/internal/i18n"
	"golos/internal/models"
	"golos/internal/notify"
	"golos/internal/speech"
	"golos/internal/speech/vosk"
	"golos/internal/tts"
	"golos/internal/voice"
)

// App представляет главное приложение.
type App struct {
	mu         sync.Mutex
	config     *config.Config
	store      *content.Store
	speaker    *voice.Speaker
	notifier   *notify.Notifier
	dispatcher *dispatch.Dispatcher
	recognizer speech.Recognizer
	closed     bool
}

// New создаёт новое приложение.
func New(cfg *config.Config) (*App, error) {
	if err := audio.Init(); err != nil {
		return nil, fmt.Errorf("ошибка инициализации PortAudio: %w", err)
	}

	synth, err := tts.New(tts.Config{
		Provider:    tts.Provider(cfg.TTS.Provider),
		Fallback:    tts.Provider(cfg.TTS.Fallback),
		Timeout:     cfg.TTS.Timeout,
		GoogleURL:   cfg.TTS.GoogleURL,
		OpenAIKey:   cfg.TTS.OpenAIKey,
		OpenAIModel: cfg.TTS.OpenAIModel,
		OpenAIVoice: cfg.TTS.OpenAIVoice,
		OpenAISpeed: cfg.TTS.OpenAISpeed,
	})
	if err != nil {
		audio.Terminate()
		return nil, err
	}
	log.Printf("Синтез речи: %s", synth.Name())

	store := content.NewStore()
	provider := content.NewProvider(content.Config{
		URL:             cfg.Content.URL,
		Type:            cfg.Content.Type,
		Number:          cfg.Content.Number,
		Timeout:         cfg.Content.Timeout,
		BreakerFailures: cfg.Content.BreakerFailures,
		BreakerCooldown: cfg.Content.BreakerCooldown,
	}, store)

	speaker := voice.New(synth, audio.NewPlayer(), cfg.TTS.Language, os.Stdout)
	notifier := notify.New(cfg.Notifications)

	return &App{
		config:     cfg,
		store:      store,
		speaker:    speaker,
		notifier:   notifier,
		dispatcher: dispatch.New(store, provider, export.New(store, cfg.OutputDir), speaker, notifier),
	}, nil
}

// Run приветствует пользователя и слушает команды до выхода или отмены ctx.
func (a *App) Run(ctx context.Context) {
	a.speaker.Speak(ctx, i18n.T("app_started"))
	a.listen(ctx)
}

func (a *App) listen(ctx context.Context) {
	rec, err := a.loadRecognizer()
	if err != nil {
		msg := fmt.Sprintf("%s: %v", i18n.T("error_model_load"), err)
		log.Printf("Ошибка: %v", err)
		a.notifier.Error(msg)
		a.speaker.Speak(ctx, msg)
		return
	}

	capture, err := audio.OpenCapture(a.config.Audio.SampleRate, a.config.Audio.ChunkFrames)
	if err != nil {
		log.Printf("Ошибка микрофона: %v", err)
		a.notifier.Error(i18n.T("error_microphone"))
		a.speaker.Speak(ctx, i18n.T("error_microphone"))
		return
	}

	dispatch.PrintHelp(os.Stdout, a.dispatcher.Commands())

	if err := speech.Listen(ctx, capture, rec, capture.ChunkSize(), a.dispatcher.Handler(ctx)); err != nil {
		log.Printf("Прослушивание прервано: %v", err)
	}
}

func (a *App) loadRecognizer() (speech.Recognizer, error) {
	modelPath, err := models.Find(a.config.ModelDir)
	if err != nil {
		return nil, err
	}
	log.Printf("Используется модель: %s", modelPath)

	rec, err := vosk.New(modelPath, a.config.Audio.SampleRate)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.recognizer = rec
	a.mu.Unlock()
	return rec, nil
}

// Close освобождает ресурсы приложения.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true

	a.dispatcher.Close()
	a.speaker.Close()

	if a.recognizer != nil {
		a.recognizer.Close()
		a.recognizer = nil
	}

	if err := audio.Terminate(); err != nil {
		log.Printf("Ошибка завершения PortAudio: %v", err)
	}
}
