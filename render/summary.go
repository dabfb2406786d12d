package render

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

const (
	summarySnippet = 40
	summarySection = 25
)

// ScopeCounts tallies categorized nodes by classified scope.
type ScopeCounts map[annotation.Scope]int

// CountScopes classifies every categorized node in doc.
func CountScopes(doc *annotation.Document) ScopeCounts {
	counts := ScopeCounts{
		annotation.ScopeReusable:    0,
		annotation.ScopePhaseBound:  0,
		annotation.ScopeWorkflow:    0,
		annotation.ScopeUnspecified: 0,
	}

	for _, n := range doc.Categorized() {
		counts[n.ScopeClass()]++
	}

	return counts
}

// Gaps returns the structural gaps detected in doc, in reporting order.
func Gaps(doc *annotation.Document) []string {
	var gaps []string

	if len(doc.Guardrails) == 0 {
		gaps = append(gaps, "WARNING: No guardrails found")
	}

	if len(doc.WorkflowSteps) == 0 {
		gaps = append(gaps, "WARNING: No workflow steps found")
	}

	if len(doc.Handoffs) == 0 {
		gaps = append(gaps, "WARNING: No handoff instructions found")
	}

	if len(doc.QualityGates) == 0 {
		gaps = append(gaps, "NOTE: No quality gates found (may be intentional)")
	}

	scopes := CountScopes(doc)
	if scopes[annotation.ScopeUnspecified] > scopes[annotation.ScopeReusable]+scopes[annotation.ScopePhaseBound] {
		gaps = append(gaps, "NOTE: Most annotations lack scope classification")
	}

	for _, tag := range doc.Fragmented() {
		switch tag {
		case annotation.TagGuardrail, annotation.TagWorkflowStep, annotation.TagDecisionFramework:
			gaps = append(gaps, fmt.Sprintf(
				"NOTE: <%s> spread across %d sections - consider consolidation",
				tag, len(doc.TagSections[tag]),
			))
		}
	}

	return gaps
}

// Summary renders a YAML structure summary of doc: category counts, scope
// breakdown, per-category listings, fragmentation report, per-section tag
// counts and gap detection. The output is a valid YAML document.
func Summary(doc *annotation.Document) string {
	var out lines

	out.add(
		"# Structure Summary: "+doc.Name,
		"",
		"counts:",
		fmt.Sprintf("  guardrails: %d", len(doc.Guardrails)),
		fmt.Sprintf("  workflow_steps: %d", len(doc.WorkflowSteps)),
		fmt.Sprintf("  decision_frameworks: %d", len(doc.DecisionFrameworks)),
		fmt.Sprintf("  artifacts: %d", len(doc.Artifacts)),
		fmt.Sprintf("  quality_gates: %d", len(doc.QualityGates)),
		fmt.Sprintf("  handoffs: %d", len(doc.Handoffs)),
		"",
	)

	scopes := CountScopes(doc)
	out.add(
		"scope_breakdown:",
		fmt.Sprintf("  reusable: %d", scopes[annotation.ScopeReusable]),
		fmt.Sprintf("  phase_bound: %d", scopes[annotation.ScopePhaseBound]),
		fmt.Sprintf("  workflow: %d", scopes[annotation.ScopeWorkflow]),
		fmt.Sprintf("  unspecified: %d", scopes[annotation.ScopeUnspecified]),
		"",
	)

	listing(&out, "guardrails", doc.Guardrails)
	out.add("")
	listing(&out, "workflow_steps", doc.WorkflowSteps)
	out.add("")
	listing(&out, "decision_frameworks", doc.DecisionFrameworks)
	out.add("")
	listing(&out, "handoffs", doc.Handoffs)
	out.add("")
	listing(&out, "artifacts", doc.Artifacts)
	out.add("")
	listing(&out, "quality_gates", doc.QualityGates)

	out.add(
		"",
		"# Fragmentation Analysis",
		"# Tags appearing in multiple sections may indicate scattered/duplicated content",
		"",
	)

	fragmented := doc.Fragmented()
	if len(fragmented) == 0 {
		out.add("fragmented_tags: none  # All tag types are consolidated")
	} else {
		slices.SortStableFunc(fragmented, func(a, b string) int {
			return cmp.Compare(len(doc.TagSections[b]), len(doc.TagSections[a]))
		})

		out.add("fragmented_tags:")

		for _, tag := range fragmented {
			out.add(fmt.Sprintf("  %s: # appears in %d sections", tag, len(doc.TagSections[tag])))

			for _, section := range doc.TagSections[tag] {
				out.add(fmt.Sprintf("    %s: %dx", strconv.Quote(section), doc.CountInSection(section, tag)))
			}
		}
	}

	out.add("", "# Section Overview")

	if len(doc.Sections) == 0 {
		out.add("sections: {}")
	} else {
		out.add("sections:")
	}

	for _, section := range sortedSections(doc) {
		counts := map[string]int{}
		for _, tn := range doc.SectionTags[section] {
			counts[tn.Tag]++
		}

		out.add(fmt.Sprintf("  %s:", strconv.Quote(section)))

		for _, tag := range slices.Sorted(maps.Keys(counts)) {
			out.add(fmt.Sprintf("    %s: %d", tag, counts[tag]))
		}
	}

	out.add("", "# Gap Detection", "potential_gaps:")

	gaps := Gaps(doc)
	if len(gaps) == 0 {
		out.add("  - None detected")
	}

	for _, gap := range gaps {
		out.add("  - " + strconv.Quote(gap))
	}

	return out.String()
}

func listing(out *lines, name string, nodes []*annotation.Node) {
	if len(nodes) == 0 {
		out.add(name + ": []")

		return
	}

	out.add(name + ":")

	for _, n := range nodes {
		item := "(no content)"
		if n.Snippet != "" {
			item = head(n.Snippet, summarySnippet)
		}

		if n.Scope != "" {
			item += " [" + n.Scope + "]"
		}

		item += " @" + abbrev(n.Section, summarySection)

		out.add("  - " + strconv.Quote(item))
	}
}
