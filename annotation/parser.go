package annotation

import (
	"log/slog"
	"strings"
)

// SplitLines splits src into lines, keeping each line's terminator. A final
// line without a terminator is kept; an empty src yields no lines.
func SplitLines(src []byte) []string {
	if len(src) == 0 {
		return nil
	}

	lines := strings.SplitAfter(string(src), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// Parse builds a [Document] from annotated markdown source.
func Parse(src []byte, opts ...Option) *Document {
	lines := SplitLines(src)
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, "\r\n")
	}

	return ParseLines(lines, opts...)
}

// ParseLines builds a [Document] from lines without terminators.
//
// Level-2 headings set the section of the nodes that follow. Opening tags
// create nodes under the innermost open node. Closing tags close the
// innermost node; mismatches are reported as diagnostics and resolved using
// the configured [Recovery].
func ParseLines(lines []string, opts ...Option) *Document {
	o := newOptions(opts)

	b := &builder{
		lines:  lines,
		doc:    newDocument(o.name),
		stack:  NewStack[*Node](o.recovery),
		logger: o.logger,
		budget: o.snippetBudget,
	}

	for i, line := range lines {
		b.line(i, line)
	}

	if b.stack.Depth() > 0 {
		b.report(unclosed(b.stack.Names()))
	}

	return b.doc
}

// builder holds the state of one forward pass over a document.
type builder struct {
	logger   *slog.Logger
	doc      *Document
	stack    *Stack[*Node]
	sections Sections
	lines    []string
	budget   int
}

func (b *builder) line(i int, line string) {
	if b.sections.Observe(line) {
		return
	}

	ev, ok := ParseTagLine(line, i+1)
	if !ok {
		return
	}

	if ev.Closing {
		res := b.stack.Close(ev.Tag)
		if !res.Matched {
			b.report(mismatch(ev, res))
		}

		return
	}

	node := &Node{
		Tag:        ev.Tag,
		Attributes: ev.Attributes,
		Scope:      ev.Attributes["scope"],
		Snippet:    Snippet(b.lines, i, b.budget),
		Section:    b.sections.Current(),
		Line:       ev.Line,
	}

	b.doc.index(node)

	if _, parent, ok := b.stack.Top(); ok {
		parent.Children = append(parent.Children, node)
	} else {
		b.doc.Roots = append(b.doc.Roots, node)
	}

	b.stack.Push(ev.Tag, node)
	b.doc.categorize(node)
}

func (b *builder) report(d Diagnostic) {
	b.doc.Diagnostics = append(b.doc.Diagnostics, d)
	d.log(b.logger)
}
