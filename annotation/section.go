package annotation

import "strings"

// Preamble is the section name used before the first level-2 heading.
const Preamble = "(preamble)"

const headingPrefix = "## "

// Sections tracks the level-2 heading enclosing the current line.
type Sections struct {
	current string
	seen    bool
}

// Current returns the current section name, or [Preamble] before any heading
// has been observed.
func (s *Sections) Current() string {
	if !s.seen {
		return Preamble
	}

	return s.current
}

// Observe updates the current section when line is a level-2 heading and
// reports whether it was one. Headings must start at the first column.
func (s *Sections) Observe(line string) bool {
	title, ok := HeadingText(line)
	if !ok {
		return false
	}

	s.current = title
	s.seen = true

	return true
}

// HeadingText returns the trimmed title of a level-2 heading line.
func HeadingText(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, headingPrefix)
	if !ok {
		return "", false
	}

	return strings.TrimSpace(rest), true
}
