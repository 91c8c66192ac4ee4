// Package vosk реализует speech.Recognizer через Vosk.
package vosk

import (
	"fmt"
	"os"
	"sync"

	voskapi "github.com/alphacep/vosk-api/go"
	"github.com/bytedance/sonic"
)

// Recognizer - потоковый распознаватель Vosk.
type Recognizer struct {
	mu         sync.Mutex
	model      *voskapi.VoskModel
	recognizer *voskapi.VoskRecognizer
}

// result структура для парсинга JSON результата от Vosk.
type result struct {
	Text string `json:"text"`
}

func init() {
	// Отключаем подробный лог Kaldi
	voskapi.SetLogLevel(-1)
}

// New загружает модель из modelPath и создаёт распознаватель.
func New(modelPath string, sampleRate int) (*Recognizer, error) {
	// Проверяем существование директории модели
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("модель Vosk не найдена: %s", modelPath)
	}

	model, err := voskapi.NewModel(modelPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки модели Vosk: %w", err)
	}

	rec, err := voskapi.NewRecognizer(model, float64(sampleRate))
	if err != nil {
		model.Free()
		return nil, fmt.Errorf("ошибка создания распознавателя: %w", err)
	}

	return &Recognizer{
		model:      model,
		recognizer: rec,
	}, nil
}

// Name возвращает название движка.
func (r *Recognizer) Name() string {
	return "vosk"
}

// Accept передаёт блок PCM16 в Vosk. При конце фразы возвращает её текст.
func (r *Recognizer) Accept(pcm []byte) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recognizer == nil {
		return "", false, fmt.Errorf("распознаватель закрыт")
	}

	switch r.recognizer.AcceptWaveform(pcm) {
	case 0:
		return "", false, nil
	case 1:
		var res result
		if err := sonic.UnmarshalString(r.recognizer.Result(), &res); err != nil {
			return "", false, fmt.Errorf("ошибка разбора результата Vosk: %w", err)
		}
		return res.Text, true, nil
	default:
		return "", false, fmt.Errorf("ошибка обработки аудио Vosk")
	}
}

// Close освобождает ресурсы.
func (r *Recognizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recognizer != nil {
		r.recognizer.Free()
		r.recognizer = nil
	}

	if r.model != nil {
		r.model.Free()
		r.model = nil
	}
}
