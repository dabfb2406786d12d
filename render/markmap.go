package render

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

const (
	markmapSnippet = 35
	byTagSnippet   = 40
)

// MarkmapBySection renders a Markmap outline with one "##" heading per
// section, sorted by name. Within a section, a tag that occurs once is listed
// directly; repeated tags are grouped under a "### tag (n)" heading. Children
// are nested below their parent.
func MarkmapBySection(doc *annotation.Document) string {
	var out lines

	out.add("# " + doc.Name)

	for _, section := range sortedSections(doc) {
		out.add("", "## "+section)

		var (
			order  []string
			groups = map[string][]*annotation.Node{}
		)

		for _, tn := range doc.SectionTags[section] {
			if _, ok := groups[tn.Tag]; !ok {
				order = append(order, tn.Tag)
			}

			groups[tn.Tag] = append(groups[tn.Tag], tn.Node)
		}

		for _, tag := range order {
			nodes := groups[tag]
			if len(nodes) > 1 {
				out.add(fmt.Sprintf("### %s (%d)", tag, len(nodes)))
			}

			for _, n := range nodes {
				for depth, d := range n.Walk() {
					out.add(strings.Repeat("  ", depth) + "- " + markmapLabel(d))
				}
			}
		}
	}

	return out.String()
}

func markmapLabel(n *annotation.Node) string {
	label := n.Tag
	if n.Snippet != "" {
		label += ": " + abbrev(n.Snippet, markmapSnippet)
	}

	if n.Scope != "" {
		label += " `[" + n.Scope + "]`"
	}

	return label
}

// MarkmapByTag renders a Markmap outline with one "##" heading per tag,
// sorted by name and suffixed with a warning marker when the tag spans more
// than one section. Nodes are grouped under "### @section" headings in order
// of first appearance.
func MarkmapByTag(doc *annotation.Document) string {
	var out lines

	out.add(fmt.Sprintf("# %s (by tag type)", doc.Name))

	for _, tag := range slices.Sorted(slices.Values(doc.Tags)) {
		total := 0
		for _, section := range doc.TagSections[tag] {
			total += doc.CountInSection(section, tag)
		}

		marker := ""
		if len(doc.TagSections[tag]) > 1 {
			marker = " ⚠️"
		}

		out.add("", fmt.Sprintf("## %s (%d)%s", tag, total, marker))

		for _, section := range doc.Sections {
			if !slices.Contains(doc.TagSections[tag], section) {
				continue
			}

			out.add("### @" + section)

			for _, tn := range doc.SectionTags[section] {
				if tn.Tag != tag {
					continue
				}

				label := "(no content)"
				if tn.Node.Snippet != "" {
					label = head(tn.Node.Snippet, byTagSnippet)
				}

				if tn.Node.Scope != "" {
					label += " `[" + tn.Node.Scope + "]`"
				}

				out.add("- " + label)
			}
		}
	}

	return out.String()
}

func sortedSections(doc *annotation.Document) []string {
	return slices.Sorted(slices.Values(doc.Sections))
}
