// Package render turns a parsed [annotation.Document] into text.
//
// Every renderer is a pure function of the document:
//
//   - [Mindmap] emits a Mermaid mindmap of the annotation hierarchy.
//   - [MarkmapBySection] emits a Markmap outline grouped by document section.
//   - [MarkmapByTag] emits a Markmap outline grouped by tag, flagging tags
//     spread across several sections.
//   - [Flow] emits a Mermaid flowchart skeleton of workflow steps and handoffs.
//   - [Summary] emits a YAML structure summary with counts, scope breakdown,
//     fragmentation report and gap detection.
//   - [ExportYAML] and [ExportJSON] serialize the whole tree, and
//     [TreeSchema] describes that export as JSON Schema.
package render
