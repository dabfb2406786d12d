package annotation

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrInvalidOption indicates an invalid configuration value.
var ErrInvalidOption = errors.New("invalid option")

// DiagnosticKind classifies a [Diagnostic].
type DiagnosticKind string

const (
	// KindMismatchedClose is a closing tag that does not match the innermost
	// open tag.
	KindMismatchedClose DiagnosticKind = "mismatched-close"
	// KindUnclosed reports tags still open at the end of the input.
	KindUnclosed DiagnosticKind = "unclosed"
)

// Diagnostic is a non-fatal structural problem found while processing a
// document.
type Diagnostic struct {
	Kind DiagnosticKind
	// Tag is the offending closing tag for [KindMismatchedClose].
	Tag string
	// Expected is the innermost open tag, or "none".
	Expected string
	// Unclosed lists the tags left open, outermost first, for [KindUnclosed].
	Unclosed []string
	// Line is the 1-based source line, or 0 for end-of-input diagnostics.
	Line int
}

// String formats the diagnostic for humans.
func (d Diagnostic) String() string {
	switch d.Kind {
	case KindMismatchedClose:
		return fmt.Sprintf("line %d: closing tag </%s> doesn't match expected </%s>",
			d.Line, d.Tag, d.Expected)
	case KindUnclosed:
		return "unclosed tags at end of file: " + strings.Join(d.Unclosed, ", ")
	}

	return string(d.Kind)
}

// log writes d as a warning to logger.
func (d Diagnostic) log(logger *slog.Logger) {
	switch d.Kind {
	case KindMismatchedClose:
		logger.Warn("mismatched closing tag",
			slog.Int("line", d.Line),
			slog.String("tag", d.Tag),
			slog.String("expected", d.Expected),
		)
	case KindUnclosed:
		logger.Warn("unclosed tags at end of file",
			slog.Any("tags", d.Unclosed),
		)
	}
}

func mismatch(ev Event, res CloseResult) Diagnostic {
	return Diagnostic{
		Kind:     KindMismatchedClose,
		Line:     ev.Line,
		Tag:      ev.Tag,
		Expected: res.Expected,
	}
}

func unclosed(names []string) Diagnostic {
	return Diagnostic{
		Kind:     KindUnclosed,
		Unclosed: names,
	}
}
