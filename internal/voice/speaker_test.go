package voice

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeSynth struct {
	err error
}

func (f *fakeSynth) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("mp3:" + text), nil
}

func (f *fakeSynth) Name() string {
	return "fake"
}

// fakePlayer "играет" duration или до отмены и следит за пересечениями.
type fakePlayer struct {
	duration atomic.Int64
	err      error

	active  atomic.Int32
	overlap atomic.Bool
	started chan string

	mu    sync.Mutex
	paths []string
	texts []string
}

func newFakePlayer(d time.Duration) *fakePlayer {
	p := &fakePlayer{started: make(chan string, 16)}
	p.duration.Store(int64(d))
	return p
}

func (p *fakePlayer) Play(ctx context.Context, path string) error {
	if p.active.Add(1) > 1 {
		p.overlap.Store(true)
	}
	defer p.active.Add(-1)

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.paths = append(p.paths, path)
	p.texts = append(p.texts, string(data))
	p.mu.Unlock()
	p.started <- string(data)

	if p.err != nil {
		return p.err
	}

	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(p.duration.Load())):
	}
	return nil
}

func waitStarted(t *testing.T, p *fakePlayer) string {
	t.Helper()
	select {
	case s := <-p.started:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("playback did not start")
		return ""
	}
}

func TestSpeak(t *testing.T) {
	player := newFakePlayer(10 * time.Millisecond)
	s := New(&fakeSynth{}, player, "ru", &bytes.Buffer{})

	s.Speak(context.Background(), "привет")

	if len(player.texts) != 1 || player.texts[0] != "mp3:привет" {
		t.Fatalf("Unexpected playback %v", player.texts)
	}
	if s.IsPlaying() {
		t.Error("Expected idle state after Speak")
	}
	if _, err := os.Stat(player.paths[0]); !os.IsNotExist(err) {
		t.Errorf("Expected temp file to be removed, stat error = %v", err)
	}
}

func TestSpeakReplacesActive(t *testing.T) {
	player := newFakePlayer(time.Hour)
	s := New(&fakeSynth{}, player, "ru", &bytes.Buffer{})

	first := s.SpeakAsync(context.Background(), "первая")
	waitStarted(t, player)
	if !s.IsPlaying() {
		t.Fatal("Expected playing state during playback")
	}

	player.duration.Store(int64(10 * time.Millisecond))
	second := s.SpeakAsync(context.Background(), "вторая")

	select {
	case <-first.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("first playback was not cancelled")
	}
	second.Wait()

	if player.overlap.Load() {
		t.Error("Playbacks overlapped")
	}
	if s.IsPlaying() {
		t.Error("Expected idle state after both finished")
	}
	if len(player.texts) != 2 || player.texts[1] != "mp3:вторая" {
		t.Errorf("Unexpected playback order %v", player.texts)
	}
}

func TestSpeakManyNeverOverlaps(t *testing.T) {
	player := newFakePlayer(5 * time.Millisecond)
	s := New(&fakeSynth{}, player, "ru", &bytes.Buffer{})

	var tasks []*Task
	for i := 0; i < 10; i++ {
		tasks = append(tasks, s.SpeakAsync(context.Background(), "фраза"))
	}
	for _, task := range tasks {
		task.Wait()
	}

	if player.overlap.Load() {
		t.Error("Playbacks overlapped")
	}
	if s.IsPlaying() {
		t.Error("Expected idle state")
	}
}

func TestStop(t *testing.T) {
	player := newFakePlayer(time.Hour)
	s := New(&fakeSynth{}, player, "ru", &bytes.Buffer{})

	task := s.SpeakAsync(context.Background(), "длинный текст")
	waitStarted(t, player)

	s.Stop()

	select {
	case <-task.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not cancel playback")
	}
	if s.IsPlaying() {
		t.Error("Expected idle state after Stop")
	}
}

func TestSpeakErrorsPrintText(t *testing.T) {
	tests := []struct {
		name   string
		synth  *fakeSynth
		player *fakePlayer
	}{
		{"synthesis error", &fakeSynth{err: errors.New("no network")}, newFakePlayer(0)},
		{"playback error", &fakeSynth{}, &fakePlayer{err: errors.New("no device"), started: make(chan string, 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			s := New(tt.synth, tt.player, "ru", &out)

			s.Speak(context.Background(), "Текст создан локально")

			if out.String() != "Текст создан локально\n" {
				t.Errorf("Expected text to be printed, got %q", out.String())
			}
			if s.IsPlaying() {
				t.Error("Expected idle state after error")
			}
		})
	}
}

func TestSpeakEmptyText(t *testing.T) {
	player := newFakePlayer(0)
	var out bytes.Buffer
	s := New(&fakeSynth{}, player, "ru", &out)

	s.Speak(context.Background(), "  ")

	if len(player.texts) != 0 || out.Len() != 0 {
		t.Errorf("Expected nothing for empty text, got %v %q", player.texts, out.String())
	}
}

func TestClose(t *testing.T) {
	player := newFakePlayer(time.Hour)
	s := New(&fakeSynth{}, player, "ru", &bytes.Buffer{})

	task := s.SpeakAsync(context.Background(), "фоновое чтение")
	waitStarted(t, player)

	s.Close()

	select {
	case <-task.Done():
	default:
		t.Fatal("Close returned before playback finished")
	}
}
