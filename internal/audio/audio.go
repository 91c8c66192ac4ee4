// Package audio предоставляет захват звука с микрофона и воспроизведение MP3.
package audio

import (
	"encoding/binary"

	"github.com/gordonklaus/portaudio"
)

const (
	// SampleRate - частота дискретизации (требование Vosk модели).
	SampleRate = 16000
	// Channels - количество каналов захвата (mono).
	Channels = 1
	// FramesPerBuffer - размер блока захвата.
	FramesPerBuffer = 4096
)

// Init инициализирует PortAudio. Вызывается один раз до открытия потоков.
func Init() error {
	return portaudio.Initialize()
}

// Terminate освобождает PortAudio.
func Terminate() error {
	return portaudio.Terminate()
}

// putPCM16 записывает сэмплы в dst как little-endian int16.
// Возвращает число записанных байт.
func putPCM16(dst []byte, samples []int16) int {
	n := 0
	for _, s := range samples {
		if n+2 > len(dst) {
			break
		}
		binary.LittleEndian.PutUint16(dst[n:], uint16(s))
		n += 2
	}
	return n
}

// readPCM16 читает little-endian int16 сэмплы из src в dst.
// Возвращает число прочитанных сэмплов.
func readPCM16(dst []int16, src []byte) int {
	n := len(src) / 2
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = int16(binary.LittleEndian.Uint16(src[i*2:]))
	}
	return n
}
