package viewer

import "github.com/gogpu/presenter/internal/actions"

// hexEntry collects a typed #rrggbb color for one gradient endpoint.
type hexEntry struct {
	kind   actions.Kind
	digits string
}

func (e *hexEntry) active() bool {
	return e.kind != 0
}

// begin starts entry for kind, which is SetStartColor or SetEndColor.
func (e *hexEntry) begin(kind actions.Kind) {
	e.kind = kind
	e.digits = ""
}

// input appends the hex digits among chars, up to six.
func (e *hexEntry) input(chars []rune) {
	for _, r := range chars {
		if len(e.digits) == 6 {
			return
		}
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f':
			e.digits += string(r)
		case r >= 'A' && r <= 'F':
			e.digits += string(r - 'A' + 'a')
		}
	}
}

func (e *hexEntry) backspace() {
	if e.digits != "" {
		e.digits = e.digits[:len(e.digits)-1]
	}
}

// commit ends entry and returns the command setting the typed color. It
// reports false when fewer than six digits were typed; entry stays open.
func (e *hexEntry) commit() (actions.Command, bool) {
	if !e.active() || len(e.digits) != 6 {
		return actions.Command{}, false
	}
	cmd := actions.Command{Kind: e.kind, Name: "#" + e.digits}
	e.cancel()
	return cmd, true
}

func (e *hexEntry) cancel() {
	e.kind = 0
	e.digits = ""
}

// prompt is the status line shown while entry is open.
func (e *hexEntry) prompt() string {
	which := "end"
	if e.kind == actions.SetStartColor {
		which = "start"
	}
	return which + " color #" + e.digits + "_  (Enter to apply, Esc to cancel)"
}
