package render

import (
	"fmt"
	"strings"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

const mindmapSnippet = 30

// Mindmap renders the annotation hierarchy as a fenced Mermaid mindmap rooted
// at the document name.
func Mindmap(doc *annotation.Document) string {
	var out lines

	out.add("```mermaid", "mindmap", fmt.Sprintf("  root((%s))", doc.Name))

	for depth, n := range doc.All() {
		label := n.Tag
		if n.Snippet != "" {
			label = n.Tag + ": " + mindmapLabel.Replace(abbrev(n.Snippet, mindmapSnippet))
		}

		if n.Scope != "" {
			label = fmt.Sprintf("%s [%s]", label, n.Scope)
		}

		out.add(strings.Repeat("    ", depth) + label)
	}

	out.add("```")

	return out.String()
}
