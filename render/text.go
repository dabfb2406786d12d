package render

import (
	"strings"
	"unicode/utf8"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

// Mermaid node labels cannot contain double quotes, and parentheses or
// brackets change the node shape.
var (
	mindmapLabel = strings.NewReplacer(`"`, "'", "(", "[", ")", "]")
	flowLabel    = strings.NewReplacer(`"`, "'", "[", "(", "]", ")")
)

// head returns the first n runes of s.
func head(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return string([]rune(s)[:n])
}

// abbrev returns the first n runes of s followed by an ellipsis when s is
// longer.
func abbrev(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	return head(s, n) + annotation.Ellipsis
}

// lines accumulates output lines.
type lines []string

func (l *lines) add(ss ...string) {
	*l = append(*l, ss...)
}

func (l lines) String() string {
	return strings.Join(l, "\n")
}
