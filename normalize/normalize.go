package normalize

import (
	"strings"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

// Line is a tag line as written by [Normalize].
type Line struct {
	Text   string
	Number int
	Depth  int
}

// Result holds the output of [Normalize].
type Result struct {
	// Lines holds every output line with its original line ending.
	Lines []string
	// Rewritten holds the tag lines, in document order, without line
	// endings.
	Rewritten   []Line
	Diagnostics []annotation.Diagnostic
	// Changed reports whether any line differs from the input.
	Changed bool
}

// Bytes returns the complete normalized document.
func (r *Result) Bytes() []byte {
	return []byte(strings.Join(r.Lines, ""))
}

// Normalize rewrites every blockquote tag line in src as its nesting
// indicator followed by the tag. Mismatched and unclosed tags are reported as
// diagnostics and never stop the pass.
func Normalize(src []byte, opts ...annotation.Option) *Result {
	tracker := annotation.NewTracker(opts...)
	res := &Result{}

	for i, raw := range annotation.SplitLines(src) {
		body, eol := cutEOL(raw)

		ev, ok := annotation.ParseTagLine(body, i+1)
		if !ok || ev.Syntax != annotation.SyntaxBlockquote {
			res.Lines = append(res.Lines, raw)

			continue
		}

		depth := tracker.Track(ev)
		text := annotation.Indicator(depth) + " " + ev.Raw

		if text != body {
			res.Changed = true
		}

		res.Lines = append(res.Lines, text+eol)
		res.Rewritten = append(res.Rewritten, Line{Number: i + 1, Depth: depth, Text: text})
	}

	res.Diagnostics = tracker.Finish()

	return res
}

func cutEOL(line string) (string, string) {
	if body, ok := strings.CutSuffix(line, "\r\n"); ok {
		return body, "\r\n"
	}

	if body, ok := strings.CutSuffix(line, "\n"); ok {
		return body, "\n"
	}

	return line, ""
}
