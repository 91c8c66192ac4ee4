// Package models управляет моделями распознавания речи.
package models

// ModelInfo информация о модели Vosk.
type ModelInfo struct {
	ID       string // Уникальный идентификатор: "vosk-ru-small"
	Language string // Язык модели: "ru"
	Name     string // Отображаемое имя: "Russian Small"
	Filename string // Имя директории после распаковки
	URL      string // URL для скачивания
	Size     int64  // Размер архива в байтах
}

// ModelsPage - страница со списком всех моделей Vosk.
const ModelsPage = "https://alphacephei.com/vosk/models"

// Registry известные модели.
var Registry = []ModelInfo{
	{
		ID:       "vosk-ru-small",
		Language: "ru",
		Name:     "Russian Small",
		Filename: "vosk-model-small-ru-0.22",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-ru-0.22.zip",
		Size:     45 * 1024 * 1024,
	},
	{
		ID:       "vosk-ru",
		Language: "ru",
		Name:     "Russian Large",
		Filename: "vosk-model-ru-0.42",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-ru-0.42.zip",
		Size:     1800 * 1024 * 1024,
	},
	{
		ID:       "vosk-en-small",
		Language: "en",
		Name:     "English Small",
		Filename: "vosk-model-small-en-us-0.15",
		URL:      "https://alphacephei.com/vosk/models/vosk-model-small-en-us-0.15.zip",
		Size:     40 * 1024 * 1024,
	},
}

// GetModel возвращает модель по ID.
func GetModel(id string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.ID == id {
			return m, true
		}
	}
	return ModelInfo{}, false
}

// DefaultModel возвращает рекомендуемую (первую) модель для языка.
func DefaultModel(lang string) (ModelInfo, bool) {
	for _, m := range Registry {
		if m.Language == lang {
			return m, true
		}
	}
	return ModelInfo{}, false
}
