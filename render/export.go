package render

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

var (
	// ErrMarshal indicates the tree export could not be serialized.
	ErrMarshal = errors.New("marshal tree")

	// ErrInvalidFormat indicates an unknown tree export format.
	ErrInvalidFormat = errors.New("invalid tree format")
)

// Format selects the tree export encoding.
type Format string

// Tree export formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists every supported [Format].
var Formats = []Format{FormatYAML, FormatJSON}

// ParseFormat returns the [Format] named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYAML, FormatJSON:
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Tree is the serializable form of an [annotation.Document].
type Tree struct {
	Name        string           `json:"name"                  yaml:"name"`
	Nodes       []TreeNode       `json:"nodes"                 yaml:"nodes"`
	Sections    []string         `json:"sections"              yaml:"sections"`
	Fragmented  []string         `json:"fragmented,omitempty"  yaml:"fragmented,omitempty"`
	Diagnostics []TreeDiagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// TreeNode is the serializable form of an [annotation.Node].
type TreeNode struct {
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Tag        string            `json:"tag"                  yaml:"tag"`
	Scope      annotation.Scope  `json:"scope"                yaml:"scope"`
	Snippet    string            `json:"snippet,omitempty"    yaml:"snippet,omitempty"`
	Section    string            `json:"section"              yaml:"section"`
	Children   []TreeNode        `json:"children,omitempty"   yaml:"children,omitempty"`
	Line       int               `json:"line"                 yaml:"line"`
}

// TreeDiagnostic is the serializable form of an [annotation.Diagnostic].
type TreeDiagnostic struct {
	Kind     annotation.DiagnosticKind `json:"kind"               yaml:"kind"`
	Tag      string                    `json:"tag,omitempty"      yaml:"tag,omitempty"`
	Expected string                    `json:"expected,omitempty" yaml:"expected,omitempty"`
	Unclosed []string                  `json:"unclosed,omitempty" yaml:"unclosed,omitempty"`
	Line     int                       `json:"line,omitempty"     yaml:"line,omitempty"`
}

// NewTree converts doc into its serializable form.
func NewTree(doc *annotation.Document) *Tree {
	t := &Tree{
		Name:       doc.Name,
		Nodes:      treeNodes(doc.Roots),
		Sections:   doc.Sections,
		Fragmented: doc.Fragmented(),
	}

	if t.Nodes == nil {
		t.Nodes = []TreeNode{}
	}

	if t.Sections == nil {
		t.Sections = []string{}
	}

	for _, d := range doc.Diagnostics {
		t.Diagnostics = append(t.Diagnostics, TreeDiagnostic{
			Kind:     d.Kind,
			Tag:      d.Tag,
			Expected: d.Expected,
			Unclosed: d.Unclosed,
			Line:     d.Line,
		})
	}

	return t
}

func treeNodes(nodes []*annotation.Node) []TreeNode {
	if len(nodes) == 0 {
		return nil
	}

	out := make([]TreeNode, 0, len(nodes))

	for _, n := range nodes {
		tn := TreeNode{
			Tag:      n.Tag,
			Scope:    n.ScopeClass(),
			Snippet:  n.Snippet,
			Section:  n.Section,
			Line:     n.Line,
			Children: treeNodes(n.Children),
		}

		if len(n.Attributes) > 0 {
			tn.Attributes = n.Attributes
		}

		out = append(out, tn)
	}

	return out
}

// ExportYAML serializes doc as a YAML tree.
func ExportYAML(doc *annotation.Document) ([]byte, error) {
	b, err := yaml.MarshalWithOptions(NewTree(doc), yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	return b, nil
}

// ExportJSON serializes doc as an indented JSON tree.
func ExportJSON(doc *annotation.Document) ([]byte, error) {
	b, err := json.MarshalIndent(NewTree(doc), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshal, err)
	}

	return append(b, '\n'), nil
}

// Export serializes doc in the given format.
func Export(doc *annotation.Document, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return ExportYAML(doc)
	case FormatJSON:
		return ExportJSON(doc)
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
}
