package annotation

import (
	"log/slog"
	"strings"
)

// Indicator returns the blockquote prefix for a nesting level: ">" for level
// 1 (or less), ">-" for level 2, ">- -" for level 3, and so on with one more
// " -" per additional level.
func Indicator(level int) string {
	if level <= 1 {
		return ">"
	}

	return ">-" + strings.Repeat(" -", level-2)
}

// Tracker computes the nesting level of each tag line in a single forward
// pass over one document.
//
// Create instances with [NewTracker]. A Tracker must not be shared between
// documents.
type Tracker struct {
	logger      *slog.Logger
	stack       *Stack[struct{}]
	diagnostics []Diagnostic
}

// NewTracker creates a [Tracker] with an empty stack.
func NewTracker(opts ...Option) *Tracker {
	o := newOptions(opts)

	return &Tracker{
		logger: o.logger,
		stack:  NewStack[struct{}](o.recovery),
	}
}

// Track applies ev to the stack and returns its nesting level. An opening
// tag is one level deeper than the open tags before it. A closing tag takes
// the level it was opened at, computed before it is popped.
func (t *Tracker) Track(ev Event) int {
	if !ev.Closing {
		t.stack.Push(ev.Tag, struct{}{})

		return t.stack.Depth()
	}

	level := t.stack.Depth()

	res := t.stack.Close(ev.Tag)
	if !res.Matched {
		t.report(mismatch(ev, res))
	}

	return level
}

// Depth returns the number of currently open tags.
func (t *Tracker) Depth() int {
	return t.stack.Depth()
}

// Finish reports any tags left open and returns all diagnostics collected
// during the pass.
func (t *Tracker) Finish() []Diagnostic {
	if t.stack.Depth() > 0 {
		t.report(unclosed(t.stack.Names()))
	}

	return t.diagnostics
}

func (t *Tracker) report(d Diagnostic) {
	t.diagnostics = append(t.diagnostics, d)
	d.log(t.logger)
}
