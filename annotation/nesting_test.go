package annotation_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

func TestIndicator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		level int
		want  string
	}{
		"zero":  {level: 0, want: ">"},
		"one":   {level: 1, want: ">"},
		"two":   {level: 2, want: ">-"},
		"three": {level: 3, want: ">- -"},
		"four":  {level: 4, want: ">- - -"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, annotation.Indicator(tc.level))
		})
	}
}

func events(t *testing.T, lines ...string) []annotation.Event {
	t.Helper()

	evs := make([]annotation.Event, 0, len(lines))

	for i, line := range lines {
		ev, ok := annotation.ParseTagLine(line, i+1)
		require.True(t, ok, "line %d is not a tag line: %q", i+1, line)

		evs = append(evs, ev)
	}

	return evs
}

func TestTracker(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lines      []string
		wantLevels []int
		wantDiags  []annotation.Diagnostic
	}{
		"well nested": {
			lines: []string{
				"> `<guardrail>`",
				"> `<workflow-step>`",
				"> `</workflow-step>`",
				"> `</guardrail>`",
			},
			wantLevels: []int{1, 2, 2, 1},
		},
		"siblings": {
			lines: []string{
				"> `<a>`",
				"> `<b>`",
				"> `</b>`",
				"> `<c>`",
				"> `</c>`",
				"> `</a>`",
			},
			wantLevels: []int{1, 2, 2, 2, 2, 1},
		},
		"unclosed artifact": {
			lines: []string{
				"> `<artifact>`",
			},
			wantLevels: []int{1},
			wantDiags: []annotation.Diagnostic{
				{Kind: annotation.KindUnclosed, Unclosed: []string{"artifact"}},
			},
		},
		"stray closing tag": {
			lines: []string{
				"> `</guardrail>`",
			},
			wantLevels: []int{0},
			wantDiags: []annotation.Diagnostic{
				{Kind: annotation.KindMismatchedClose, Line: 1, Tag: "guardrail", Expected: "none"},
			},
		},
		"mismatch expects the open tag": {
			lines: []string{
				"> `<artifact>`",
				"> `</guardrail>`",
			},
			wantLevels: []int{1, 1},
			wantDiags: []annotation.Diagnostic{
				{Kind: annotation.KindMismatchedClose, Line: 2, Tag: "guardrail", Expected: "artifact"},
				{Kind: annotation.KindUnclosed, Unclosed: []string{"artifact"}},
			},
		},
		"recovery keeps inner tags open": {
			lines: []string{
				"> `<a>`",
				"> `<b>`",
				"> `<c>`",
				"> `</b>`",
				"> `</c>`",
				"> `</a>`",
			},
			wantLevels: []int{1, 2, 3, 3, 2, 1},
			wantDiags: []annotation.Diagnostic{
				{Kind: annotation.KindMismatchedClose, Line: 4, Tag: "b", Expected: "c"},
			},
		},
		"crossed closings recover": {
			lines: []string{
				"> `<a>`",
				"> `<b>`",
				"> `</a>`",
				"> `</b>`",
			},
			wantLevels: []int{1, 2, 2, 1},
			wantDiags: []annotation.Diagnostic{
				{Kind: annotation.KindMismatchedClose, Line: 3, Tag: "a", Expected: "b"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tr := annotation.NewTracker(annotation.WithLogger(nil))

			var levels []int
			for _, ev := range events(t, tc.lines...) {
				levels = append(levels, tr.Track(ev))
			}

			assert.Equal(t, tc.wantLevels, levels)
			assert.Equal(t, tc.wantDiags, tr.Finish())
		})
	}
}

func TestTrackerWellNestedEndsEmpty(t *testing.T) {
	t.Parallel()

	tr := annotation.NewTracker(annotation.WithLogger(nil))

	tags := []string{"a", "b", "c", "d"}
	for _, tag := range tags {
		tr.Track(annotation.Event{Tag: tag})
	}

	assert.Equal(t, len(tags), tr.Depth())

	for i := len(tags) - 1; i >= 0; i-- {
		tr.Track(annotation.Event{Tag: tags[i], Closing: true})
	}

	assert.Equal(t, 0, tr.Depth())
	assert.Empty(t, tr.Finish())
}

func TestTrackerLogsDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, nil))
	tr := annotation.NewTracker(annotation.WithLogger(logger))

	tr.Track(annotation.Event{Tag: "guardrail", Closing: true, Line: 4})
	tr.Track(annotation.Event{Tag: "artifact", Line: 5})
	tr.Finish()

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="mismatched closing tag" line=4 tag=guardrail expected=none`)
	assert.Contains(t, out, `msg="unclosed tags at end of file" tags=[artifact]`)
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	mismatch := annotation.Diagnostic{
		Kind:     annotation.KindMismatchedClose,
		Line:     12,
		Tag:      "guardrail",
		Expected: "none",
	}
	assert.Equal(t, "line 12: closing tag </guardrail> doesn't match expected </none>", mismatch.String())

	open := annotation.Diagnostic{
		Kind:     annotation.KindUnclosed,
		Unclosed: []string{"guardrail", "artifact"},
	}
	assert.Equal(t, "unclosed tags at end of file: guardrail, artifact", open.String())
}
