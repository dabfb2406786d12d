package annotation

import (
	"fmt"
	"strings"
)

// Recovery selects how a [Stack] handles a closing tag that does not match
// the innermost open tag.
type Recovery string

const (
	// RecoverSearch removes the nearest open entry with the closing tag's
	// name, searching from the top down. Entries above it stay open. When no
	// entry has that name the stack is left unchanged.
	RecoverSearch Recovery = "search"
	// RecoverIgnore leaves the stack unchanged.
	RecoverIgnore Recovery = "ignore"
)

// Recoveries lists the supported [Recovery] policies.
var Recoveries = []Recovery{RecoverSearch, RecoverIgnore}

// ParseRecovery returns the [Recovery] named by s.
func ParseRecovery(s string) (Recovery, error) {
	r := Recovery(strings.ToLower(s))
	switch r {
	case RecoverSearch, RecoverIgnore:
		return r, nil
	}

	return "", fmt.Errorf("%w: unknown recovery policy %q", ErrInvalidOption, s)
}

// Stack is an ordered set of open tag names, each paired with a value of
// type T. The normalizer uses it with empty values; the tree builder pairs
// each name with the node being built.
//
// The zero value is an empty stack using [RecoverSearch].
type Stack[T any] struct {
	recovery Recovery
	entries  []stackEntry[T]
}

type stackEntry[T any] struct {
	value T
	name  string
}

// NewStack creates an empty [Stack] using the given recovery policy.
func NewStack[T any](recovery Recovery) *Stack[T] {
	return &Stack[T]{recovery: recovery}
}

// CloseResult describes the outcome of [Stack.Close].
type CloseResult struct {
	// Expected is the innermost open tag when Close was called, or "none"
	// when the stack was empty.
	Expected string
	// Matched is true when the closing tag matched the innermost open tag.
	Matched bool
	// Recovered is true when a mismatched closing tag was resolved by
	// removing a deeper entry.
	Recovered bool
}

// Depth returns the number of open tags.
func (s *Stack[T]) Depth() int {
	return len(s.entries)
}

// Push opens a tag.
func (s *Stack[T]) Push(name string, value T) {
	s.entries = append(s.entries, stackEntry[T]{name: name, value: value})
}

// Top returns the innermost open tag and its value.
func (s *Stack[T]) Top() (string, T, bool) {
	if len(s.entries) == 0 {
		var zero T

		return "", zero, false
	}

	e := s.entries[len(s.entries)-1]

	return e.name, e.value, true
}

// Close closes the tag called name. A matching innermost entry is popped;
// otherwise the stack's [Recovery] policy applies.
func (s *Stack[T]) Close(name string) CloseResult {
	top, _, ok := s.Top()
	if !ok {
		return CloseResult{Expected: "none"}
	}

	if top == name {
		s.entries = s.entries[:len(s.entries)-1]

		return CloseResult{Expected: top, Matched: true}
	}

	res := CloseResult{Expected: top}

	if s.recovery == RecoverIgnore {
		return res
	}

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].name == name {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			res.Recovered = true

			break
		}
	}

	return res
}

// Names returns the open tag names, outermost first.
func (s *Stack[T]) Names() []string {
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.name
	}

	return names
}
