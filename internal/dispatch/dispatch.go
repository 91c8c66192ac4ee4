// Package dispatch сопоставляет распознанные фразы с командами и выполняет их.
package dispatch

import (
	"context"
	"log"
	"sync"

	"golos/internal/content"
	"golos/internal/i18n"
	"golos/internal/notify"
	"golos/internal/speech"
	"golos/internal/voice"
)

// Generator создаёт новый текст и возвращает статус.
type Generator interface {
	Generate(ctx context.Context) string
}

// Exporter сохраняет текущий текст и возвращает статус.
type Exporter interface {
	SaveHTML() string
	SaveText() string
}

// Dispatcher выполняет голосовые команды.
type Dispatcher struct {
	commands  []Command
	store     *content.Store
	generator Generator
	exporter  Exporter
	speaker   *voice.Speaker
	notifier  *notify.Notifier

	mu      sync.Mutex
	reading *voice.Task
}

// New создаёт Dispatcher с командами текущего языка.
func New(store *content.Store, generator Generator, exporter Exporter, speaker *voice.Speaker, notifier *notify.Notifier) *Dispatcher {
	if notifier == nil {
		notifier = notify.New(false)
	}
	return &Dispatcher{
		commands:  Commands(),
		store:     store,
		generator: generator,
		exporter:  exporter,
		speaker:   speaker,
		notifier:  notifier,
	}
}

// Commands возвращает команды диспетчера.
func (d *Dispatcher) Commands() []Command {
	return d.commands
}

// Handler возвращает обработчик фраз для speech.Listen.
func (d *Dispatcher) Handler(ctx context.Context) speech.Handler {
	return func(utterance string) bool {
		return d.Handle(ctx, utterance)
	}
}

// Handle выполняет команду из фразы. Возвращает false после команды выхода.
// Фразы без команд игнорируются.
func (d *Dispatcher) Handle(ctx context.Context, utterance string) bool {
	action := Match(utterance, d.commands)
	if action == ActionNone {
		return true
	}
	log.Printf("Команда: %s", action)

	switch action {
	case ActionCreate:
		d.report(ctx, d.generator.Generate(ctx))
	case ActionRead:
		d.read(ctx)
	case ActionSaveHTML:
		d.report(ctx, d.exporter.SaveHTML())
	case ActionSaveText:
		d.report(ctx, d.exporter.SaveText())
	case ActionStop:
		d.speaker.Stop()
		d.report(ctx, i18n.T("status_stopped"))
	case ActionExit:
		d.report(ctx, i18n.T("status_goodbye"))
		return false
	}
	return true
}

// read озвучивает текущий текст в фоне, чтобы распознавание продолжалось.
func (d *Dispatcher) read(ctx context.Context) {
	text := d.store.Text()
	if text == "" {
		text = i18n.T("status_no_text")
	}

	task := d.speaker.SpeakAsync(ctx, content.StripTags(text))

	d.mu.Lock()
	d.reading = task
	d.mu.Unlock()
}

// report озвучивает статус и дублирует его уведомлением.
func (d *Dispatcher) report(ctx context.Context, status string) {
	d.notifier.Status(status)
	d.speaker.Speak(ctx, status)
}

// Close отменяет фоновое чтение и ждёт его завершения.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	task := d.reading
	d.reading = nil
	d.mu.Unlock()

	if task != nil {
		task.Cancel()
		task.Wait()
	}
}
