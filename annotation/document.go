package annotation

import (
	"iter"
	"slices"
)

// Known tag names.
const (
	TagWorkflowStep       = "workflow-step"
	TagHandoffInstruction = "handoff-instruction"
	TagGuardrail          = "guardrail"
	TagDecisionFramework  = "decision-framework"
	TagArtifactFormat     = "artifact-format"
	TagArtifact           = "artifact"
	TagQualityGate        = "quality-gate"
)

// Scope classifies a node's applicability.
type Scope string

// Known scopes. Any other value of the scope attribute, or its absence, is
// [ScopeUnspecified].
const (
	ScopeReusable    Scope = "reusable"
	ScopePhaseBound  Scope = "phase-bound"
	ScopeWorkflow    Scope = "workflow"
	ScopeUnspecified Scope = "unspecified"
)

// Node is an annotation in the document tree. A node is owned by its parent,
// or by [Document.Roots] when it has none.
type Node struct {
	Attributes map[string]string
	Tag        string
	// Scope is the raw value of the scope attribute, or "" when absent.
	Scope string
	// Snippet is a short excerpt of the prose following the opening tag.
	Snippet string
	// Section is the enclosing level-2 heading, or [Preamble].
	Section  string
	Children []*Node
	// Line is the 1-based line of the opening tag.
	Line int
}

// ScopeClass returns the classified scope of n.
func (n *Node) ScopeClass() Scope {
	switch s := Scope(n.Scope); s {
	case ScopeReusable, ScopePhaseBound, ScopeWorkflow:
		return s
	}

	return ScopeUnspecified
}

// TaggedNode pairs a node with its tag name in a section index.
type TaggedNode struct {
	Node *Node
	Tag  string
}

// Document is the parsed form of one annotated markdown file. It is built by
// [Parse] and is read-only afterwards.
type Document struct {
	// TagSections maps a tag name to the sections it appears in, without
	// duplicates, in order of first appearance.
	TagSections map[string][]string
	// SectionTags maps a section to every node opened in it, in document
	// order.
	SectionTags map[string][]TaggedNode

	// Name labels the document in rendered output.
	Name string

	// Roots holds the top-level nodes in document order.
	Roots []*Node

	// Tags lists tag names in order of first appearance.
	Tags []string
	// Sections lists section names containing at least one node, in order
	// of first appearance.
	Sections []string

	// Categorized nodes, in document order.
	WorkflowSteps      []*Node
	Handoffs           []*Node
	Guardrails         []*Node
	DecisionFrameworks []*Node
	Artifacts          []*Node
	QualityGates       []*Node

	Diagnostics []Diagnostic
}

func newDocument(name string) *Document {
	return &Document{
		Name:        name,
		TagSections: map[string][]string{},
		SectionTags: map[string][]TaggedNode{},
	}
}

// Categorized returns every categorized node: guardrails, workflow steps,
// decision frameworks, artifacts, quality gates, then handoffs.
func (d *Document) Categorized() []*Node {
	var all []*Node

	all = append(all, d.Guardrails...)
	all = append(all, d.WorkflowSteps...)
	all = append(all, d.DecisionFrameworks...)
	all = append(all, d.Artifacts...)
	all = append(all, d.QualityGates...)
	all = append(all, d.Handoffs...)

	return all
}

// Fragmented returns the tags that appear in more than one section, in order
// of first appearance.
func (d *Document) Fragmented() []string {
	var tags []string

	for _, tag := range d.Tags {
		if len(d.TagSections[tag]) > 1 {
			tags = append(tags, tag)
		}
	}

	return tags
}

// CountInSection returns how many nodes with the given tag were opened in
// section.
func (d *Document) CountInSection(section, tag string) int {
	n := 0

	for _, tn := range d.SectionTags[section] {
		if tn.Tag == tag {
			n++
		}
	}

	return n
}

// All yields every node with its depth (1 for roots) in depth-first document
// order.
func (d *Document) All() iter.Seq2[int, *Node] {
	return walk(d.Roots, 1)
}

// Walk yields n and its descendants in depth-first document order, with
// depths relative to n (0 for n itself).
func (n *Node) Walk() iter.Seq2[int, *Node] {
	return walk([]*Node{n}, 0)
}

// walk traverses nodes pre-order using an explicit work list.
func walk(nodes []*Node, base int) iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		type item struct {
			node  *Node
			depth int
		}

		work := make([]item, 0, len(nodes))
		for i := len(nodes) - 1; i >= 0; i-- {
			work = append(work, item{node: nodes[i], depth: base})
		}

		for len(work) > 0 {
			it := work[len(work)-1]
			work = work[:len(work)-1]

			if !yield(it.depth, it.node) {
				return
			}

			for i := len(it.node.Children) - 1; i >= 0; i-- {
				work = append(work, item{node: it.node.Children[i], depth: it.depth + 1})
			}
		}
	}
}

// index records n in the tag and section indices.
func (d *Document) index(n *Node) {
	if _, ok := d.TagSections[n.Tag]; !ok {
		d.Tags = append(d.Tags, n.Tag)
	}

	if !slices.Contains(d.TagSections[n.Tag], n.Section) {
		d.TagSections[n.Tag] = append(d.TagSections[n.Tag], n.Section)
	}

	if _, ok := d.SectionTags[n.Section]; !ok {
		d.Sections = append(d.Sections, n.Section)
	}

	d.SectionTags[n.Section] = append(d.SectionTags[n.Section], TaggedNode{Tag: n.Tag, Node: n})
}

// categorize appends n to its category list, if any.
func (d *Document) categorize(n *Node) {
	switch n.Tag {
	case TagWorkflowStep:
		d.WorkflowSteps = append(d.WorkflowSteps, n)
	case TagHandoffInstruction:
		d.Handoffs = append(d.Handoffs, n)
	case TagGuardrail:
		d.Guardrails = append(d.Guardrails, n)
	case TagDecisionFramework:
		d.DecisionFrameworks = append(d.DecisionFrameworks, n)
	case TagArtifactFormat, TagArtifact:
		d.Artifacts = append(d.Artifacts, n)
	case TagQualityGate:
		d.QualityGates = append(d.QualityGates, n)
	}
}
