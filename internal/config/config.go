// Package config предоставляет конфигурацию приложения.
//
// Настройки читаются из необязательного config.json рядом с бинарником
// (или в текущей директории) и переопределяются переменными окружения
// с префиксом GOLOS_ (например, GOLOS_TTS_PROVIDER=openai).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix - префикс переменных окружения.
const EnvPrefix = "GOLOS"

// ContentConfig хранит настройки сервиса генерации текста.
type ContentConfig struct {
	URL             string        `mapstructure:"url"`
	Type            string        `mapstructure:"type"`
	Number          int           `mapstructure:"number"`
	Timeout         time.Duration `mapstructure:"timeout"`
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerCooldown time.Duration `mapstructure:"breaker_cooldown"`
}

// TTSConfig хранит настройки синтеза речи.
type TTSConfig struct {
	Provider    string        `mapstructure:"provider"` // google, openai
	Fallback    string        `mapstructure:"fallback"` // провайдер на случай ошибки основного
	Language    string        `mapstructure:"language"`
	Timeout     time.Duration `mapstructure:"timeout"`
	GoogleURL   string        `mapstructure:"google_url"`
	OpenAIKey   string        `mapstructure:"openai_key"`
	OpenAIModel string        `mapstructure:"openai_model"`
	OpenAIVoice string        `mapstructure:"openai_voice"`
	OpenAISpeed float64       `mapstructure:"openai_speed"`
}

// AudioConfig хранит настройки захвата звука.
type AudioConfig struct {
	SampleRate  int `mapstructure:"sample_rate"`
	ChunkFrames int `mapstructure:"chunk_frames"`
}

// Config хранит настройки приложения.
type Config struct {
	ModelDir      string        `mapstructure:"model_dir"`
	OutputDir     string        `mapstructure:"output_dir"`
	UILanguage    string        `mapstructure:"ui_language"`
	Notifications bool          `mapstructure:"notifications"`
	Content       ContentConfig `mapstructure:"content"`
	TTS           TTSConfig     `mapstructure:"tts"`
	Audio         AudioConfig   `mapstructure:"audio"`

	path string
}

// Path возвращает путь к прочитанному файлу конфигурации (пусто, если файла нет).
func (c *Config) Path() string {
	return c.path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("model_dir", "model")
	v.SetDefault("output_dir", "output")
	v.SetDefault("ui_language", "ru")
	v.SetDefault("notifications", false)

	v.SetDefault("content.url", "https://fish-text.ru/get")
	v.SetDefault("content.type", "paragraph")
	v.SetDefault("content.number", 3)
	v.SetDefault("content.timeout", 5*time.Second)
	v.SetDefault("content.breaker_failures", 3)
	v.SetDefault("content.breaker_cooldown", time.Minute)

	v.SetDefault("tts.provider", "google")
	v.SetDefault("tts.fallback", "")
	v.SetDefault("tts.language", "ru")
	v.SetDefault("tts.timeout", 15*time.Second)
	v.SetDefault("tts.google_url", "https://translate.google.com/translate_tts")
	v.SetDefault("tts.openai_key", "")
	v.SetDefault("tts.openai_model", "tts-1")
	v.SetDefault("tts.openai_voice", "alloy")
	v.SetDefault("tts.openai_speed", 1.0)

	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("audio.chunk_frames", 4096)
}

// Load загружает конфигурацию.
// dirs - директории поиска config.json; по умолчанию директория бинарника и ".".
func Load(dirs ...string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	if len(dirs) == 0 {
		dirs = defaultDirs()
	}
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	cfg.path = v.ConfigFileUsed()

	if cfg.TTS.OpenAIKey == "" {
		cfg.TTS.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("некорректная частота дискретизации: %d", c.Audio.SampleRate)
	}
	if c.Audio.ChunkFrames <= 0 {
		return fmt.Errorf("некорректный размер блока: %d", c.Audio.ChunkFrames)
	}
	if c.Content.Number <= 0 {
		return fmt.Errorf("некорректное число абзацев: %d", c.Content.Number)
	}
	return nil
}

// defaultDirs возвращает директорию бинарника и текущую директорию.
func defaultDirs() []string {
	dirs := []string{}

	execPath, err := os.Executable()
	if err == nil {
		// Резолвим симлинки
		execPath, err = filepath.EvalSymlinks(execPath)
		if err == nil {
			dirs = append(dirs, filepath.Dir(execPath))
		}
	}

	return append(dirs, ".")
}
