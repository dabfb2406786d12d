// Package annotation parses pseudo-XML annotation tags embedded in markdown
// documents.
//
// Annotations are written as blockquoted, backticked tags whose blockquote
// prefix encodes the nesting depth:
//
//	> `<guardrail scope="reusable">`
//	Never push to main.
//	>- `<workflow-step>`
//	Run the tests.
//	>- `</workflow-step>`
//	> `</guardrail>`
//
// A bare tag line (a line holding exactly one tag and nothing else) is also
// recognized, which covers tags written inside raw or fenced blocks.
//
// The package provides the pieces shared by the nesting normalizer and the
// visualization generator:
//
//   - [ParseTagLine] and [IsTagLine] recognize a single line.
//   - [Stack] tracks open tags and recovers from mismatched closings.
//   - [Tracker] computes the nesting level of each tag line.
//   - [Sections] follows the level-2 heading that encloses each line.
//   - [Snippet] extracts a short label from the prose after a tag.
//   - [Parse] builds a [Document] holding the annotation tree and its
//     section indices.
//
// Malformed nesting never fails a parse. Problems are reported as
// [Diagnostic] values and logged as warnings, and the parse continues using
// the configured [Recovery] policy.
package annotation
