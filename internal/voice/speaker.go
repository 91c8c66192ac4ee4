// Package voice озвучивает текст: синтез, временный файл и воспроизведение.
//
// Одновременно звучит не более одной фразы: новый запрос отменяет
// текущий и дожидается его завершения, прежде чем начать.
package voice

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"golos/internal/tts"
)

// Player воспроизводит аудио файл до конца или до отмены ctx.
type Player interface {
	Play(ctx context.Context, path string) error
}

// Task - handle одного озвучивания.
type Task struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

// ID возвращает идентификатор задачи (для логирования).
func (t *Task) ID() string {
	return t.id
}

// Cancel запрашивает остановку озвучивания.
func (t *Task) Cancel() {
	t.cancel()
}

// Wait ждёт завершения озвучивания.
func (t *Task) Wait() {
	<-t.done
}

// Done закрывается после завершения озвучивания.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Speaker озвучивает фразы по одной.
type Speaker struct {
	synth  tts.Synthesizer
	player Player
	lang   string
	out    io.Writer

	mu      sync.Mutex
	current *Task
	playing atomic.Bool
}

// New создаёт Speaker. Если озвучить не удалось, текст печатается в out.
func New(synth tts.Synthesizer, player Player, lang string, out io.Writer) *Speaker {
	if out == nil {
		out = os.Stdout
	}
	return &Speaker{
		synth:  synth,
		player: player,
		lang:   lang,
		out:    out,
	}
}

// Speak озвучивает текст и ждёт окончания.
func (s *Speaker) Speak(ctx context.Context, text string) {
	s.SpeakAsync(ctx, text).Wait()
}

// SpeakAsync озвучивает текст в фоне и сразу возвращает handle.
func (s *Speaker) SpeakAsync(ctx context.Context, text string) *Task {
	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task{
		id:     uuid.NewString(),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	s.mu.Lock()
	prev := s.current
	s.current = t
	s.mu.Unlock()

	if prev != nil {
		prev.Cancel()
	}

	go func() {
		defer close(t.done)
		defer cancel()

		if prev != nil {
			prev.Wait()
		}
		s.run(taskCtx, t, text)

		s.mu.Lock()
		if s.current == t {
			s.current = nil
		}
		s.mu.Unlock()
	}()

	return t
}

// Stop отменяет текущее озвучивание.
func (s *Speaker) Stop() {
	s.mu.Lock()
	t := s.current
	s.mu.Unlock()

	if t != nil {
		t.Cancel()
	}
}

// IsPlaying возвращает true, пока фраза синтезируется или звучит.
func (s *Speaker) IsPlaying() bool {
	return s.playing.Load()
}

// Close отменяет текущее озвучивание и ждёт его завершения.
func (s *Speaker) Close() {
	s.mu.Lock()
	t := s.current
	s.mu.Unlock()

	if t != nil {
		t.Cancel()
		t.Wait()
	}
}

func (s *Speaker) run(ctx context.Context, t *Task, text string) {
	if ctx.Err() != nil || strings.TrimSpace(text) == "" {
		return
	}

	s.playing.Store(true)
	defer s.playing.Store(false)

	if err := s.play(ctx, text); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("Ошибка TTS [%s]: %v", t.id, err)
		fmt.Fprintln(s.out, text)
		return
	}

	if ctx.Err() != nil {
		log.Printf("Озвучивание [%s] остановлено", t.id)
	}
}

func (s *Speaker) play(ctx context.Context, text string) error {
	audio, err := s.synth.Synthesize(ctx, text, s.lang)
	if err != nil {
		return fmt.Errorf("синтез (%s): %w", s.synth.Name(), err)
	}

	f, err := os.CreateTemp("", "golos-*.mp3")
	if err != nil {
		return fmt.Errorf("временный файл: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return fmt.Errorf("временный файл: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("временный файл: %w", err)
	}

	return s.player.Play(ctx, path)
}
