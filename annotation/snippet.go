package annotation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSnippetBudget is the default maximum snippet length in runes,
	// not counting the [Ellipsis].
	DefaultSnippetBudget = 50
	// Ellipsis marks a truncated snippet.
	Ellipsis = "..."

	snippetWindow = 9
)

var (
	boldExpr = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	linkExpr = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// Snippet returns a short plain-text excerpt of the prose following the tag
// at lines[start].
//
// At most nine following lines are scanned, stopping early at the next tag
// line. Blank lines and lines starting with "#" are skipped. Bold markers are
// removed and markdown links are replaced by their text. Collected lines are
// joined with single spaces and truncated to budget runes at a word boundary,
// with [Ellipsis] appended when truncated. Returns "" when no prose is found.
func Snippet(lines []string, start, budget int) string {
	var (
		parts     []string
		collected int
	)

	end := min(start+1+snippetWindow, len(lines))

	for i := start + 1; i < end; i++ {
		line := strings.TrimSpace(lines[i])

		if IsTagLine(line) {
			break
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		clean := strings.TrimSpace(CleanInline(line))
		if clean == "" {
			continue
		}

		parts = append(parts, clean)

		collected += utf8.RuneCountInString(clean)
		if collected >= budget {
			break
		}
	}

	return Truncate(strings.Join(parts, " "), budget)
}

// CleanInline strips bold markers and replaces markdown links with their
// visible text.
func CleanInline(s string) string {
	s = boldExpr.ReplaceAllString(s, "${1}")

	return linkExpr.ReplaceAllString(s, "${1}")
}

// Truncate shortens s to at most budget runes. A truncated result is cut back
// to the last whole word and ends with [Ellipsis]. A single word longer than
// budget is cut mid-word, since there is no boundary to fall back to.
func Truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}

	cut := runes[:budget]

	if runes[budget] != ' ' {
		if i := lastSpace(cut); i > 0 {
			cut = cut[:i]
		}
	}

	return strings.TrimRight(string(cut), " ") + Ellipsis
}

func lastSpace(rs []rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == ' ' {
			return i
		}
	}

	return -1
}
