package render

import (
	"fmt"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

const flowSnippet = 40

// Flow renders a Mermaid flowchart skeleton. Workflow steps are chained in
// document order and the last step fans out to every handoff. Phase-bound
// steps and handoffs get their own node classes.
func Flow(doc *annotation.Document) string {
	var out lines

	out.add("```mermaid", "flowchart TD")

	if len(doc.WorkflowSteps) == 0 && len(doc.Handoffs) == 0 {
		out.add("    start([Start]) --> no_workflow[No workflow steps found]", "```")

		return out.String()
	}

	steps := make([]string, 0, len(doc.WorkflowSteps))

	for i, step := range doc.WorkflowSteps {
		id := fmt.Sprintf("step%d", i+1)
		steps = append(steps, id)

		class := ""
		if step.ScopeClass() == annotation.ScopePhaseBound {
			class = ":::phasebound"
		}

		out.add(fmt.Sprintf("    %s[\"%s\"]%s", id, flowText(step, "Step", i+1), class))
	}

	handoffs := make([]string, 0, len(doc.Handoffs))

	for i, handoff := range doc.Handoffs {
		id := fmt.Sprintf("handoff%d", i+1)
		handoffs = append(handoffs, id)

		out.add(fmt.Sprintf("    %s([\"%s\"]):::handoff", id, flowText(handoff, "Handoff", i+1)))
	}

	out.add("", "    %% Sequential flow - refine with decision points")

	for i := 1; i < len(steps); i++ {
		out.add(fmt.Sprintf("    %s --> %s", steps[i-1], steps[i]))
	}

	if len(steps) > 0 && len(handoffs) > 0 {
		out.add("", "    %% Handoffs - add conditions as needed")

		last := steps[len(steps)-1]
		for _, id := range handoffs {
			out.add(fmt.Sprintf("    %s --> %s", last, id))
		}
	}

	out.add(
		"",
		"    %% Styling",
		"    classDef phasebound fill:#f9f,stroke:#333,stroke-width:2px",
		"    classDef handoff fill:#bbf,stroke:#333,stroke-width:2px",
		"```",
	)

	return out.String()
}

// flowText returns the node label for n, falling back to "<kind> <i>".
// The result never contains double quotes or square brackets.
func flowText(n *annotation.Node, kind string, i int) string {
	label := fmt.Sprintf("%s %d", kind, i)
	if n.Snippet != "" {
		label = head(n.Snippet, flowSnippet)
	}

	return flowLabel.Replace(label)
}
