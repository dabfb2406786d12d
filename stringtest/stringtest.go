// Package stringtest builds multi-line test fixtures with explicit line
// endings.
package stringtest

import "strings"

// JoinLF joins lines with LF line endings, without a trailing terminator.
//
//	stringtest.JoinLF("a", "b") // -> "a\nb"
func JoinLF(lines ...string) string {
	return strings.Join(lines, "\n")
}

// JoinCRLF joins lines with CRLF line endings, without a trailing terminator.
//
//	stringtest.JoinCRLF("a", "b") // -> "a\r\nb"
func JoinCRLF(lines ...string) string {
	return strings.Join(lines, "\r\n")
}

// Doc joins lines into a document where every line, including the last,
// ends with LF. Use it for markdown fixtures read by line-oriented code.
//
//	stringtest.Doc("## Intro", "text") // -> "## Intro\ntext\n"
func Doc(lines ...string) string {
	if len(lines) == 0 {
		return ""
	}

	return JoinLF(lines...) + "\n"
}
