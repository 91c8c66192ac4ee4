package content

import (
	"fmt"
	"math/rand"
	"strings"

	"golos/internal/i18n"
)

// LocalText собирает текст-заглушку, когда сервис недоступен.
// Последний абзац содержит случайное трёхзначное число.
func LocalText() string {
	paragraphs := []string{
		i18n.T("local_title"),
		i18n.T("local_reason"),
		i18n.T("local_offline"),
		i18n.T("local_commands"),
		fmt.Sprintf(i18n.T("local_number"), 100+rand.Intn(900)),
	}
	return strings.Join(paragraphs, "\n")
}
