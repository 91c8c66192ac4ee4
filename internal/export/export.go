// Package export сохраняет текущий текст в файлы HTML и TXT.
package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golos/internal/content"
	"golos/internal/i18n"
)

const (
	HTMLFile = "output.html"
	TextFile = "output.txt"
)

// Exporter сохраняет содержимое Store в директорию dir.
type Exporter struct {
	store *content.Store
	dir   string
}

// New создаёт Exporter.
func New(store *content.Store, dir string) *Exporter {
	return &Exporter{store: store, dir: dir}
}

// HTMLPath возвращает путь к HTML файлу.
func (e *Exporter) HTMLPath() string {
	return filepath.Join(e.dir, HTMLFile)
}

// TextPath возвращает путь к текстовому файлу.
func (e *Exporter) TextPath() string {
	return filepath.Join(e.dir, TextFile)
}

// SaveHTML сохраняет текст, оборачивая каждую строку в <p>.
func (e *Exporter) SaveHTML() string {
	text := e.store.Text()
	if text == "" {
		return i18n.T("status_nothing_saved")
	}

	if err := e.write(e.HTMLPath(), RenderHTML(text)); err != nil {
		log.Printf("Ошибка сохранения HTML: %v", err)
		return i18n.T("status_save_failed")
	}
	return i18n.T("status_saved_html")
}

// SaveText сохраняет текст без HTML тегов.
func (e *Exporter) SaveText() string {
	text := e.store.Text()
	if text == "" {
		return i18n.T("status_nothing_saved")
	}

	if err := e.write(e.TextPath(), content.StripTags(text)); err != nil {
		log.Printf("Ошибка сохранения текста: %v", err)
		return i18n.T("status_save_failed")
	}
	return i18n.T("status_saved_text")
}

// RenderHTML возвращает HTML документ с абзацем на каждую строку текста.
func RenderHTML(text string) string {
	return "<html><body><p>" + strings.ReplaceAll(text, "\n", "</p><p>") + "</p></body></html>"
}

func (e *Exporter) write(path, data string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию: %w", err)
	}
	return os.WriteFile(path, []byte(data), 0644)
}
