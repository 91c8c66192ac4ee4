// Package speech предоставляет потоковое распознавание команд с микрофона.
package speech

// Source - источник аудио (PCM16 little-endian, mono).
type Source interface {
	// Read читает очередной блок. Ноль байт означает конец потока.
	Read(p []byte) (int, error)

	// Close освобождает поток и устройство.
	Close() error
}

// Recognizer - интерфейс для потоковых движков распознавания речи.
type Recognizer interface {
	// Accept принимает очередной блок PCM16.
	// final=true означает конец фразы; text - распознанная фраза.
	Accept(pcm []byte) (text string, final bool, err error)

	// Close освобождает ресурсы движка.
	Close()

	// Name возвращает название движка (для логирования).
	Name() string
}

// Handler обрабатывает распознанную фразу.
// Возвращает false, если прослушивание нужно завершить.
type Handler func(utterance string) bool
