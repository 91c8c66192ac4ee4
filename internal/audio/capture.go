package audio

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Capture читает аудио с микрофона блоками (блокирующий режим PortAudio).
type Capture struct {
	mu     sync.Mutex
	stream *portaudio.Stream
	buffer []int16
	closed bool
}

// OpenCapture открывает и запускает поток с микрофона по умолчанию.
func OpenCapture(sampleRate, frames int) (*Capture, error) {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	if frames <= 0 {
		frames = FramesPerBuffer
	}

	c := &Capture{
		buffer: make([]int16, frames*Channels),
	}

	stream, err := portaudio.OpenDefaultStream(
		Channels,            // input channels
		0,                   // output channels
		float64(sampleRate), // sample rate
		frames,              // frames per buffer
		c.buffer,            // buffer
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия аудиопотока: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, fmt.Errorf("ошибка запуска аудиопотока: %w", err)
	}

	c.stream = stream
	return c, nil
}

// ChunkSize возвращает размер одного блока в байтах.
func (c *Capture) ChunkSize() int {
	return len(c.buffer) * 2
}

// Read читает один блок PCM16 в p. Переполнение входного буфера не считается ошибкой.
func (c *Capture) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, io.EOF
	}

	if err := c.stream.Read(); err != nil && !errors.Is(err, portaudio.InputOverflowed) {
		return 0, err
	}

	return putPCM16(p, c.buffer), nil
}

// Close останавливает и закрывает поток. Повторный вызов ничего не делает.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	stopErr := c.stream.Stop()
	closeErr := c.stream.Close()
	return errors.Join(stopErr, closeErr)
}
