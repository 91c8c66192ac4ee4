package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gordonklaus/portaudio"
	"github.com/hajimehoshi/go-mp3"
)

const (
	// playbackChannels - go-mp3 всегда выдаёт стерео.
	playbackChannels = 2
	// playbackFrames - размер блока воспроизведения (~23ms при 44.1kHz).
	playbackFrames = 1024
)

// Player воспроизводит MP3 файлы через устройство вывода по умолчанию.
type Player struct{}

// NewPlayer создаёт Player. PortAudio должен быть инициализирован.
func NewPlayer() *Player {
	return &Player{}
}

// Play воспроизводит файл до конца или до отмены ctx.
// Отмена проверяется между блоками и не считается ошибкой.
func (p *Player) Play(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("ошибка декодирования MP3: %w", err)
	}

	buffer := make([]int16, playbackFrames*playbackChannels)
	stream, err := portaudio.OpenDefaultStream(0, playbackChannels, float64(dec.SampleRate()), playbackFrames, buffer)
	if err != nil {
		return fmt.Errorf("ошибка открытия устройства вывода: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("ошибка запуска воспроизведения: %w", err)
	}
	defer stream.Stop()

	raw := make([]byte, len(buffer)*2)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := io.ReadFull(dec, raw)
		if n > 0 {
			samples := readPCM16(buffer, raw[:n])
			// Хвост последнего блока заполняем тишиной
			clear(buffer[samples:])
			if werr := stream.Write(); werr != nil && !errors.Is(werr, portaudio.OutputUnderflowed) {
				return fmt.Errorf("ошибка воспроизведения: %w", werr)
			}
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("ошибка декодирования MP3: %w", err)
		}
	}
}
