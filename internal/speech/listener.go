package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// Listen читает src блоками по chunk байт и передаёт фразы в handle.
// Завершается, когда источник вернул ноль байт или io.EOF, при отмене ctx
// или когда handle вернул false. src закрывается ровно один раз при любом выходе.
func Listen(ctx context.Context, src Source, rec Recognizer, chunk int, handle Handler) error {
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Printf("Ошибка при закрытии аудиопотока: %v", cerr)
		}
	}()

	if chunk <= 0 {
		return fmt.Errorf("некорректный размер блока: %d", chunk)
	}

	buf := make([]byte, chunk)
	for {
		if ctx.Err() != nil {
			return nil
		}

		n, err := src.Read(buf)
		if n == 0 {
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("ошибка чтения аудио: %w", err)
			}
			return nil
		}

		text, final, err := rec.Accept(buf[:n])
		if err != nil {
			return fmt.Errorf("ошибка распознавания (%s): %w", rec.Name(), err)
		}
		if !final {
			continue
		}

		command := strings.ToLower(strings.TrimSpace(text))
		if command == "" {
			continue
		}
		log.Printf("Распознано: %s", command)

		if !handle(command) {
			return nil
		}
	}
}
