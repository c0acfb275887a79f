package prompt

import (
	"context"

	"github.com/raphi011/inkwell/internal/log"
	"github.com/raphi011/inkwell/internal/term"
	"github.com/raphi011/inkwell/internal/ui/render"
)

// confirmAnswer is the effect of one key press on a confirmation prompt.
type confirmAnswer struct {
	confirmed bool
	done      bool
	cancelled bool
}

func confirmKey(ev term.KeyEvent) confirmAnswer {
	if ev.IsCtrlC() {
		return confirmAnswer{done: true, cancelled: true}
	}
	switch ev.Key {
	case "y", "Y":
		return confirmAnswer{confirmed: true, done: true}
	case "n", "N":
		return confirmAnswer{done: true}
	case "q", term.KeyEscape:
		return confirmAnswer{done: true, cancelled: true}
	case term.KeyEnter:
		// Default to no
		return confirmAnswer{done: true}
	}
	return confirmAnswer{}
}

// Confirm asks a yes/no question and returns the answer. The default answer
// is "no" if the user presses enter. ok is false if the prompt was cancelled
// or the terminal is not interactive.
func Confirm(ctx context.Context, t *render.Terminal, question string) (confirmed, ok bool) {
	l := log.FromContext(ctx)

	scope, err := t.EnterRawMode()
	if err != nil {
		l.Debug("confirm: raw mode unavailable", "err", err)
		return false, false
	}
	defer scope.Close()

	prompt := render.StaticLines{{
		render.Styled(question, t.Style("select.title")),
		render.Styled(" [y/N] ", t.Style("select.instructions")),
	}}
	if err := t.Print(prompt); err != nil {
		return false, false
	}

	for {
		if ctx.Err() != nil {
			_ = t.WriteString("\r\n")
			return false, false
		}
		ev, err := scope.ReadKey()
		if err != nil {
			l.Debug("confirm: input ended", "err", err)
			_ = t.WriteString("\r\n")
			return false, false
		}
		a := confirmKey(ev)
		if !a.done {
			continue
		}
		answer := "no"
		if a.confirmed {
			answer = "yes"
		}
		if a.cancelled {
			answer = ""
		}
		_ = t.WriteString(answer + "\r\n")
		return a.confirmed, !a.cancelled
	}
}
