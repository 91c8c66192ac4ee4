package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrNotFound возвращается, если в директории нет модели.
var ErrNotFound = errors.New("модель Vosk не найдена")

// confDir - поддиректория с конфигурацией внутри распакованной модели.
const confDir = "conf"

// Find возвращает путь к модели внутри dir.
// Если файлы модели лежат прямо в dir (есть dir/conf), возвращается сам dir,
// иначе берётся первая по имени поддиректория.
func Find(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("не удалось прочитать директорию моделей: %w", err)
	}

	// Распакованная модель содержит conf/ как поддиректорию
	if _, err := os.Stat(filepath.Join(dir, confDir)); err == nil {
		return dir, nil
	}

	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, e.Name())
		}
	}

	if len(subdirs) > 0 {
		sort.Strings(subdirs)
		return filepath.Join(dir, subdirs[0]), nil
	}

	return "", ErrNotFound
}
