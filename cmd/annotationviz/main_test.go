package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lossyrob/phased-agent-workflow/stringtest"
	"github.com/lossyrob/phased-agent-workflow/visualize"
)

// These tests install the default slog logger and must not run in parallel.

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeAgent(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "paw-review.agent.md")
	require.NoError(t, os.WriteFile(path, []byte(stringtest.Doc(
		"## Steps",
		"> `<workflow-step scope=\"phase-bound\">`",
		"Collect context.",
		"> `</workflow-step>`",
		"> `<workflow-step>`",
		"Draft review.",
		"> `</workflow-step>`",
		"> `<handoff-instruction>`",
		"Hand off.",
		"> `</handoff-instruction>`",
	)), 0o600))

	return path
}

func TestAnnotationViz(t *testing.T) {
	path := writeAgent(t)

	stdout, _, err := execute(t, "--flow", path)
	require.NoError(t, err)

	assert.Equal(t, stringtest.Doc(
		"```mermaid",
		"flowchart TD",
		`    step1["Collect context."]:::phasebound`,
		`    step2["Draft review."]`,
		`    handoff1(["Hand off."]):::handoff`,
		"",
		"    %% Sequential flow - refine with decision points",
		"    step1 --> step2",
		"",
		"    %% Handoffs - add conditions as needed",
		"    step2 --> handoff1",
		"",
		"    %% Styling",
		"    classDef phasebound fill:#f9f,stroke:#333,stroke-width:2px",
		"    classDef handoff fill:#bbf,stroke:#333,stroke-width:2px",
		"```",
	), stdout)
}

func TestAnnotationVizDefault(t *testing.T) {
	stdout, _, err := execute(t, writeAgent(t))
	require.NoError(t, err)

	for _, title := range []string{
		"### MINDMAP (Mermaid) ###",
		"### MINDMAP (Markmap - Interactive) ###",
		"### FLOW SKELETON ###",
		"### STRUCTURE SUMMARY ###",
	} {
		assert.Contains(t, stdout, title)
	}

	assert.Contains(t, stdout, "  root((paw review))")
	assert.Equal(t, 3, strings.Count(stdout, strings.Repeat("=", 60)))
}

func TestAnnotationVizOutputDir(t *testing.T) {
	path := writeAgent(t)
	dir := t.TempDir()

	stdout, _, err := execute(t, "-o", dir, path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "Generated:\n"))

	for _, name := range []string{
		"paw-review-mindmap.mmd",
		"paw-review-by-section.mm.md",
		"paw-review-by-tag.mm.md",
		"paw-review-flow.mmd",
		"paw-review-summary.yaml",
	} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}

func TestAnnotationVizUsageErrors(t *testing.T) {
	path := writeAgent(t)

	tcs := map[string]struct {
		wantErr error
		args    []string
	}{
		"no file":              {},
		"two files":            {args: []string{path, path}},
		"output with selector": {args: []string{"-o", t.TempDir(), "--summary", path}},
		"bad recovery":         {args: []string{"--recovery", "guess", path}},
		"missing file": {
			args:    []string{filepath.Join(t.TempDir(), "missing.md")},
			wantErr: visualize.ErrFileNotFound,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := execute(t, tc.args...)
			require.Error(t, err)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}

			assert.Empty(t, stdout)
		})
	}
}
