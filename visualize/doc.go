// Package visualize renders annotated agent prompt files.
//
// A [Visualizer] parses one file into an [annotation.Document] and either
// prints the selected renderings, separated by a horizontal rule when there
// is more than one, or writes the standard set of five files to an output
// directory:
//
//	<base>-mindmap.mmd       Mermaid mindmap
//	<base>-by-section.mm.md  Markmap outline by section
//	<base>-by-tag.mm.md      Markmap outline by tag
//	<base>-flow.mmd          Mermaid flowchart skeleton
//	<base>-summary.yaml      structure summary
//
// where <base> is the file name without its extension and ".agent" infix.
package visualize
