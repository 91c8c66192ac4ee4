package dispatch

import (
	"fmt"
	"io"
	"strings"

	"golos/internal/i18n"
)

// Action - действие, соответствующее голосовой команде.
type Action int

const (
	ActionNone Action = iota
	ActionCreate
	ActionRead
	ActionSaveHTML
	ActionSaveText
	ActionStop
	ActionExit
)

// String возвращает имя действия (для логирования).
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionRead:
		return "read"
	case ActionSaveHTML:
		return "save-html"
	case ActionSaveText:
		return "save-text"
	case ActionStop:
		return "stop"
	case ActionExit:
		return "exit"
	default:
		return "none"
	}
}

// Command связывает ключевое слово с действием.
type Command struct {
	Action  Action
	Keyword string
	Help    string
}

// Commands возвращает команды текущего языка в порядке приоритета.
func Commands() []Command {
	return []Command{
		{ActionCreate, i18n.T("cmd_create"), i18n.T("help_create")},
		{ActionRead, i18n.T("cmd_read"), i18n.T("help_read")},
		{ActionSaveHTML, i18n.T("cmd_save_html"), i18n.T("help_save_html")},
		{ActionSaveText, i18n.T("cmd_save_text"), i18n.T("help_save_text")},
		{ActionStop, i18n.T("cmd_stop"), i18n.T("help_stop")},
		{ActionExit, i18n.T("cmd_exit"), i18n.T("help_exit")},
	}
}

// Match возвращает действие первой команды, ключевое слово которой
// содержится во фразе.
func Match(utterance string, commands []Command) Action {
	for _, c := range commands {
		if c.Keyword != "" && strings.Contains(utterance, c.Keyword) {
			return c.Action
		}
	}
	return ActionNone
}

// PrintHelp выводит список команд.
func PrintHelp(w io.Writer, commands []Command) {
	fmt.Fprintf(w, "\n%s\n", i18n.T("app_ready"))
	for _, c := range commands {
		fmt.Fprintf(w, "- '%s' - %s\n", c.Keyword, c.Help)
	}
	fmt.Fprintln(w)
}
