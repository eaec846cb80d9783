package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/glyphwalk"
)

// step is one script instruction: either an event or a run of ticks.
type step struct {
	event glyphwalk.Event
	ticks int
}

// parseScript reads a whitespace separated key script.
//
//	a+      press and hold a
//	a-      release a
//	a       tap a (press then release)
//	t, t*N  one or N ticks
//	_       space
//	<       backspace
//	left    move the cursor left (also "right", "Backspace", "space")
func parseScript(src string) ([]step, error) {
	var steps []step
	for _, tok := range strings.Fields(src) {
		switch {
		case tok == "t":
			steps = append(steps, step{ticks: 1})
		case strings.HasPrefix(tok, "t*"):
			n, err := strconv.Atoi(tok[2:])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("bad tick count %q", tok)
			}
			steps = append(steps, step{ticks: n})
		case tok == "_":
			steps = append(steps, step{event: glyphwalk.Press(glyphwalk.KeySpace)})
		case tok == "<":
			steps = append(steps, step{event: glyphwalk.Press(glyphwalk.KeyBackspace)})
		case len(tok) == 2 && (tok[1] == '+' || tok[1] == '-'):
			ev, ok := glyphwalk.ParseKey(tok[:1])
			if !ok || ev.Kind != glyphwalk.KeySymbol {
				return nil, fmt.Errorf("bad key %q", tok)
			}
			if tok[1] == '-' {
				ev = glyphwalk.KeyUp(ev.Symbol)
			}
			steps = append(steps, step{event: ev})
		default:
			ev, ok := glyphwalk.ParseKey(tok)
			if !ok {
				return nil, fmt.Errorf("unknown key %q", tok)
			}
			steps = append(steps, step{event: ev})
			if ev.Kind == glyphwalk.KeySymbol {
				steps = append(steps, step{event: glyphwalk.KeyUp(ev.Symbol)})
			}
		}
	}
	return steps, nil
}
