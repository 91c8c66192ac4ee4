// Голос - голосовой ассистент для работы с текстом.
//
// Слушает микрофон, распознаёт русские команды через Vosk и озвучивает
// ответы: создать, прочесть, сохранить, текст, стоп, выход.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golos/internal/app"
	"golos/internal/config"
	"golos/internal/i18n"
	"golos/internal/models"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Ошибка конфигурации: %v", err)
		return 1
	}
	i18n.SetLanguage(i18n.Language(cfg.UILanguage))

	log.Printf("Голос %s запускается...", Version)
	if cfg.Path() != "" {
		log.Printf("Конфигурация: %s", cfg.Path())
	}

	if _, err := os.Stat(cfg.ModelDir); os.IsNotExist(err) {
		printModelHint(cfg)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg)
	if err != nil {
		log.Printf("Ошибка инициализации: %v", err)
		return 1
	}
	defer application.Close()

	application.Run(ctx)
	return 0
}

func printModelHint(cfg *config.Config) {
	url := models.ModelsPage
	if m, ok := models.DefaultModel(cfg.UILanguage); ok {
		url = m.URL
	}

	fmt.Printf(i18n.T("error_model_missing")+"\n", cfg.ModelDir)
	fmt.Printf(i18n.T("error_model_hint")+"\n", url)
	fmt.Printf(i18n.T("error_model_unpack")+"\n", cfg.ModelDir)
}
