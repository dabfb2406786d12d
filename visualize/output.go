package visualize

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lossyrob/phased-agent-workflow/annotation"
	"github.com/lossyrob/phased-agent-workflow/render"
)

// Output identifies one rendering of a document.
type Output string

// Renderings, in printing order.
const (
	OutputMindmap Output = "mindmap"
	OutputMarkmap Output = "markmap"
	OutputByTag   Output = "by-tag"
	OutputFlow    Output = "flow"
	OutputSummary Output = "summary"
	OutputTree    Output = "tree"
	OutputSchema  Output = "schema"
)

// Outputs lists every [Output] in printing order.
var Outputs = []Output{
	OutputMindmap, OutputMarkmap, OutputByTag, OutputFlow,
	OutputSummary, OutputTree, OutputSchema,
}

// DefaultOutputs is printed when no output is selected.
var DefaultOutputs = []Output{OutputMindmap, OutputMarkmap, OutputFlow, OutputSummary}

// Title returns the section header for o.
func (o Output) Title() string {
	switch o {
	case OutputMindmap:
		return "MINDMAP (Mermaid)"
	case OutputMarkmap:
		return "MINDMAP (Markmap - Interactive)"
	case OutputByTag:
		return "MINDMAP (Markmap - By Tag)"
	case OutputFlow:
		return "FLOW SKELETON"
	case OutputSummary:
		return "STRUCTURE SUMMARY"
	case OutputTree:
		return "ANNOTATION TREE"
	case OutputSchema:
		return "TREE SCHEMA"
	}

	return strings.ToUpper(string(o))
}

// file describes one file written to the output directory.
type file struct {
	output Output
	suffix string
	note   string
}

var files = []file{
	{output: OutputMindmap, suffix: "-mindmap.mmd"},
	{output: OutputMarkmap, suffix: "-by-section.mm.md", note: "by section - shows document structure"},
	{output: OutputByTag, suffix: "-by-tag.mm.md", note: "by tag - shows fragmentation with ⚠️"},
	{output: OutputFlow, suffix: "-flow.mmd"},
	{output: OutputSummary, suffix: "-summary.yaml"},
}

// BaseName returns the output file prefix for the input at path: its file
// name without extension, with every ".agent" removed.
func BaseName(path string) string {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	return strings.ReplaceAll(stem, ".agent", "")
}

// AgentName returns the display name for the input at path: its
// [BaseName] with hyphens replaced by spaces.
func AgentName(path string) string {
	return strings.ReplaceAll(BaseName(path), "-", " ")
}

// Render returns the text of output o for doc. The tree output is encoded
// in format.
func Render(doc *annotation.Document, o Output, format render.Format) (string, error) {
	switch o {
	case OutputMindmap:
		return render.Mindmap(doc), nil
	case OutputMarkmap:
		return render.MarkmapBySection(doc), nil
	case OutputByTag:
		return render.MarkmapByTag(doc), nil
	case OutputFlow:
		return render.Flow(doc), nil
	case OutputSummary:
		return render.Summary(doc), nil
	case OutputTree:
		b, err := render.Export(doc, format)
		if err != nil {
			return "", err
		}

		return strings.TrimSuffix(string(b), "\n"), nil

	case OutputSchema:
		b, err := json.MarshalIndent(render.TreeSchema(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("%w: %w", render.ErrMarshal, err)
		}

		return string(b), nil
	}

	return "", fmt.Errorf("%w: output %q", annotation.ErrInvalidOption, o)
}
