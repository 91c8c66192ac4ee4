// Package notify предоставляет системные уведомления.
package notify

import (
	"github.com/gen2brain/beeep"

	"golos/internal/i18n"
)

// maxMessage - максимальная длина текста уведомления в рунах.
const maxMessage = 100

// Notifier отправляет системные уведомления.
type Notifier struct {
	enabled bool
	send    func(title, message string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// Enabled возвращает true если уведомления включены.
func (n *Notifier) Enabled() bool {
	return n.enabled
}

// Status показывает статус выполненной команды.
func (n *Notifier) Status(msg string) {
	n.notify(i18n.T("app_name"), msg)
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("app_name")+": "+i18n.T("notify_error"), msg)
}

func (n *Notifier) notify(title, message string) {
	if !n.enabled {
		return
	}
	if r := []rune(message); len(r) > maxMessage {
		message = string(r[:maxMessage]) + "..."
	}
	// Игнорируем ошибки уведомлений - они не критичны
	_ = n.send(title, message)
}
