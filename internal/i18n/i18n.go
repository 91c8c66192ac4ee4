// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = RU // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "Голос",
		"app_started": "Ассистент запущен. Ожидаю команд.",
		"app_ready":   "Готов к приему команд... Произнесите:",

		// Command keywords (substring match, lowercase)
		"cmd_create":    "создать",
		"cmd_read":      "прочесть",
		"cmd_save_html": "сохранить",
		"cmd_save_text": "текст",
		"cmd_stop":      "стоп",
		"cmd_exit":      "выход",

		// Command help
		"help_create":    "загрузить новый текст",
		"help_read":      "озвучить текст",
		"help_save_html": "сохранить как HTML",
		"help_save_text": "сохранить как TXT",
		"help_stop":      "остановить чтение",
		"help_exit":      "завершить работу",

		// Statuses
		"status_created":       "Текст успешно создан",
		"status_created_local": "Текст создан локально",
		"status_no_text":       "Текст не создан",
		"status_saved_html":    "Файл сохранён как HTML",
		"status_saved_text":    "Файл сохранён как текст",
		"status_nothing_saved": "Нет текста для сохранения",
		"status_save_failed":   "Не удалось сохранить файл",
		"status_stopped":       "Чтение остановлено",
		"status_goodbye":       "До свидания!",

		// Local placeholder text
		"local_title":    "Локально сгенерированный текст",
		"local_reason":   "Это текст создан локально, так как сервис генерации текста недоступен.",
		"local_offline":  "Голосовой ассистент продолжает работать в автономном режиме.",
		"local_commands": "Вы можете использовать команды: прочесть, сохранить или текст.",
		"local_number":   "Случайное число: %d",

		// Errors
		"error_model_load":    "Ошибка загрузки модели",
		"error_model_missing": "ОШИБКА: Папка '%s' не существует!",
		"error_model_hint":    "Скачайте модель с %s",
		"error_model_unpack":  "Распакуйте архив так, чтобы файлы модели находились в папке '%s'",
		"error_microphone":    "Не удалось открыть микрофон",

		// Notifications
		"notify_error": "Ошибка",
	},

	EN: {
		// App
		"app_name":    "Golos",
		"app_started": "Assistant started. Waiting for commands.",
		"app_ready":   "Ready for commands... Say:",

		// Command keywords (substring match, lowercase)
		"cmd_create":    "create",
		"cmd_read":      "read",
		"cmd_save_html": "save",
		"cmd_save_text": "text",
		"cmd_stop":      "stop",
		"cmd_exit":      "exit",

		// Command help
		"help_create":    "fetch new text",
		"help_read":      "read the text aloud",
		"help_save_html": "save as HTML",
		"help_save_text": "save as TXT",
		"help_stop":      "stop reading",
		"help_exit":      "quit",

		// Statuses
		"status_created":       "Text created",
		"status_created_local": "Text created locally",
		"status_no_text":       "No text yet",
		"status_saved_html":    "Saved as HTML",
		"status_saved_text":    "Saved as text",
		"status_nothing_saved": "Nothing to save",
		"status_save_failed":   "Could not save the file",
		"status_stopped":       "Reading stopped",
		"status_goodbye":       "Goodbye!",

		// Local placeholder text
		"local_title":    "Locally generated text",
		"local_reason":   "This text was created locally because the text service is unavailable.",
		"local_offline":  "The voice assistant keeps working offline.",
		"local_commands": "You can use the commands: read, save or text.",
		"local_number":   "Random number: %d",

		// Errors
		"error_model_load":    "Model loading error",
		"error_model_missing": "ERROR: directory '%s' does not exist!",
		"error_model_hint":    "Download a model from %s",
		"error_model_unpack":  "Unpack the archive so the model files end up in '%s'",
		"error_microphone":    "Could not open the microphone",

		// Notifications
		"notify_error": "Error",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language.
// Unknown languages are ignored.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; ok {
		current = lang
	}
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
