// Package normalize rewrites the nesting indicators of blockquoted annotation
// tag lines so that they reflect the true nesting depth.
//
// A top-level tag line is written as
//
//	> `<tag>`
//
// and each further level adds a continuation marker:
//
//	>- `<tag>`
//	>- - `<tag>`
//
// Only blockquote tag lines are rewritten. Prose, headings and bare tag lines
// pass through byte for byte, including their line endings. Any indicator the
// line carried before is discarded, so normalizing a normalized document is a
// no-op.
//
// [Normalize] is the pure transformation. A [Normalizer] applies it to a file
// in one of three [Mode]s: rewriting the file, listing the rewritten lines, or
// printing the whole result.
package normalize
