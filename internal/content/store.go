// Package content хранит текущий текст и получает новый текст из сети.
package content

import (
	"regexp"
	"sync"
)

// Store хранит текущий текст. Пустой по умолчанию.
type Store struct {
	mu   sync.RWMutex
	text string
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{}
}

// Text возвращает текущий текст.
func (s *Store) Text() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.text
}

// Set заменяет текущий текст.
func (s *Store) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// Empty возвращает true если текст не задан.
func (s *Store) Empty() bool {
	return s.Text() == ""
}

var tagPattern = regexp.MustCompile(`<[^<]+?>`)

// StripTags удаляет HTML теги из текста.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}
