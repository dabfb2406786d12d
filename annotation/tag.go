package annotation

import (
	"regexp"
	"strings"
)

var (
	// Backticked tag anywhere on a blockquote line, e.g. >- `<tag a="b">`.
	quotedTagExpr = regexp.MustCompile("`<(/?)([a-zA-Z][\\w-]*)([^>]*)>`")
	// A line that is exactly one tag.
	bareTagExpr = regexp.MustCompile(`^<(/?)([a-zA-Z][\w-]*)([^>]*)>\s*$`)
	attrExpr    = regexp.MustCompile(`(\w+)=["']([^"']*)["']`)
)

// Syntax identifies the surface form of a recognized tag line.
type Syntax int

const (
	// SyntaxBlockquote is a blockquote line carrying a backticked tag.
	SyntaxBlockquote Syntax = iota + 1
	// SyntaxBare is a line consisting of a single unquoted tag.
	SyntaxBare
)

// String returns the syntax name.
func (s Syntax) String() string {
	switch s {
	case SyntaxBlockquote:
		return "blockquote"
	case SyntaxBare:
		return "bare"
	}

	return "none"
}

// Event is a single recognized tag line. Events are values and are not
// modified after [ParseTagLine] returns them.
type Event struct {
	Attributes map[string]string
	Tag        string
	// Raw is the exact matched tag text, including backticks for
	// [SyntaxBlockquote] lines.
	Raw     string
	Line    int
	Syntax  Syntax
	Closing bool
}

// IsTagLine reports whether line is an annotation tag line in either syntax.
func IsTagLine(line string) bool {
	_, ok := ParseTagLine(line, 0)

	return ok
}

// IsBlockquote reports whether line, ignoring surrounding whitespace, starts
// with a blockquote marker.
func IsBlockquote(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), ">")
}

// ParseTagLine recognizes line as an annotation tag line and extracts its
// tag name, polarity and attributes. lineNum is recorded on the returned
// [Event] as-is. The second return value is false when line is not a tag
// line; in that case the line should be treated as ordinary prose.
func ParseTagLine(line string, lineNum int) (Event, bool) {
	trimmed := strings.TrimSpace(line)

	var (
		m      []string
		syntax Syntax
	)

	if strings.HasPrefix(trimmed, ">") {
		m = quotedTagExpr.FindStringSubmatch(trimmed)
		syntax = SyntaxBlockquote
	} else {
		m = bareTagExpr.FindStringSubmatch(trimmed)
		syntax = SyntaxBare
	}

	if m == nil {
		return Event{}, false
	}

	return Event{
		Tag:        m[2],
		Closing:    m[1] == "/",
		Attributes: ParseAttributes(m[3]),
		Raw:        m[0],
		Line:       lineNum,
		Syntax:     syntax,
	}, true
}

// ParseAttributes extracts key="value" and key='value' pairs from the
// attribute region of a tag. Pairs that do not match are skipped. Values are
// not validated or converted. An empty map is returned when nothing matches.
func ParseAttributes(region string) map[string]string {
	attrs := map[string]string{}

	for _, m := range attrExpr.FindAllStringSubmatch(region, -1) {
		attrs[m[1]] = m[2]
	}

	return attrs
}
