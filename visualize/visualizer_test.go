package visualize_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lossyrob/phased-agent-workflow/annotation"
	"github.com/lossyrob/phased-agent-workflow/render"
	"github.com/lossyrob/phased-agent-workflow/stringtest"
	"github.com/lossyrob/phased-agent-workflow/visualize"
)

var agent = stringtest.Doc(
	"# Review Agent",
	"## Rules",
	"> `<guardrail scope=\"reusable\">`",
	"Never approve without tests.",
	"> `</guardrail>`",
	"## Flow",
	"> `<workflow-step>`",
	"Read the diff.",
	"> `</workflow-step>`",
	"> `<handoff-instruction>`",
	"Return findings.",
	"> `</handoff-instruction>`",
)

func writeAgent(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "code-review.agent.md")
	require.NoError(t, os.WriteFile(path, []byte(agent), 0o600))

	return path
}

func quiet() visualize.Option {
	return visualize.WithLogger(slog.New(slog.DiscardHandler))
}

func TestNames(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		path      string
		wantBase  string
		wantAgent string
	}{
		"agent infix": {
			path:      "agents/code-review.agent.md",
			wantBase:  "code-review",
			wantAgent: "code review",
		},
		"plain markdown": {
			path:      "notes.md",
			wantBase:  "notes",
			wantAgent: "notes",
		},
		"no extension": {
			path:      "/tmp/PAW-Spec",
			wantBase:  "PAW-Spec",
			wantAgent: "PAW Spec",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.wantBase, visualize.BaseName(tc.path))
			assert.Equal(t, tc.wantAgent, visualize.AgentName(tc.path))
		})
	}
}

func TestRunDefaultOutputs(t *testing.T) {
	t.Parallel()

	path := writeAgent(t)

	var out bytes.Buffer
	require.NoError(t, visualize.NewVisualizer(quiet()).Run(path, &out))

	got := out.String()

	sections := strings.Split(got, "\n============================================================\n\n")
	require.Len(t, sections, 4)

	assert.True(t, strings.HasPrefix(sections[0], "### MINDMAP (Mermaid) ###\n\n```mermaid\nmindmap\n  root((code review))\n"))
	assert.True(t, strings.HasPrefix(sections[1], "### MINDMAP (Markmap - Interactive) ###\n\n# code review\n"))
	assert.True(t, strings.HasPrefix(sections[2], "### FLOW SKELETON ###\n\n```mermaid\nflowchart TD\n"))
	assert.True(t, strings.HasPrefix(sections[3], "### STRUCTURE SUMMARY ###\n\n# Structure Summary: code review\n"))
	assert.True(t, strings.HasSuffix(got, "  - \"NOTE: Most annotations lack scope classification\"\n"))
}

func TestRunSingleOutput(t *testing.T) {
	t.Parallel()

	path := writeAgent(t)

	var out bytes.Buffer
	v := visualize.NewVisualizer(quiet(), visualize.WithOutputs(visualize.OutputMindmap))
	require.NoError(t, v.Run(path, &out))

	doc, err := v.Parse(path)
	require.NoError(t, err)

	assert.Equal(t, render.Mindmap(doc)+"\n", out.String())
}

func TestRunNilLogger(t *testing.T) {
	t.Parallel()

	path := writeAgent(t)

	var out bytes.Buffer
	v := visualize.NewVisualizer(visualize.WithLogger(nil), visualize.WithOutputs(visualize.OutputFlow))
	require.NoError(t, v.Run(path, &out))

	assert.True(t, strings.HasPrefix(out.String(), "```mermaid\nflowchart TD\n"))
}

func TestRunTree(t *testing.T) {
	t.Parallel()

	path := writeAgent(t)

	tcs := map[string]struct {
		format    render.Format
		unmarshal func([]byte, any) error
	}{
		"yaml": {format: render.FormatYAML, unmarshal: yaml.Unmarshal},
		"json": {format: render.FormatJSON, unmarshal: json.Unmarshal},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			v := visualize.NewVisualizer(quiet(),
				visualize.WithOutputs(visualize.OutputTree),
				visualize.WithTreeFormat(tc.format),
			)
			require.NoError(t, v.Run(path, &out))

			var tree render.Tree
			require.NoError(t, tc.unmarshal(out.Bytes(), &tree))

			assert.Equal(t, "code review", tree.Name)
			assert.Equal(t, []string{"Rules", "Flow"}, tree.Sections)
			require.Len(t, tree.Nodes, 3)
			assert.Equal(t, "guardrail", tree.Nodes[0].Tag)
		})
	}
}

func TestRunSchema(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	v := visualize.NewVisualizer(quiet(), visualize.WithOutputs(visualize.OutputSchema))
	require.NoError(t, v.Run(writeAgent(t), &out))

	var schema map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &schema))
	assert.Equal(t, "http://json-schema.org/draft-07/schema#", schema["$schema"])
}

func TestRunOutputDir(t *testing.T) {
	t.Parallel()

	path := writeAgent(t)
	dir := filepath.Join(t.TempDir(), "viz", "nested")

	var out bytes.Buffer

	v := visualize.NewVisualizer(quiet(), visualize.WithOutputDir(dir))
	require.NoError(t, v.Run(path, &out))

	want := []string{
		"code-review-mindmap.mmd",
		"code-review-by-section.mm.md",
		"code-review-by-tag.mm.md",
		"code-review-flow.mmd",
		"code-review-summary.yaml",
	}

	assert.Equal(t, stringtest.Doc(
		"Generated:",
		"  "+filepath.Join(dir, want[0]),
		"  "+filepath.Join(dir, want[1])+" (by section - shows document structure)",
		"  "+filepath.Join(dir, want[2])+" (by tag - shows fragmentation with ⚠️)",
		"  "+filepath.Join(dir, want[3]),
		"  "+filepath.Join(dir, want[4]),
	), out.String())

	doc, err := v.Parse(path)
	require.NoError(t, err)

	renders := []string{
		render.Mindmap(doc),
		render.MarkmapBySection(doc),
		render.MarkmapByTag(doc),
		render.Flow(doc),
		render.Summary(doc),
	}

	for i, name := range want {
		got, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, renders[i]+"\n", string(got), name)
	}
}

func TestRunErrors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	missing := filepath.Join(t.TempDir(), "missing.md")
	err := visualize.NewVisualizer(quiet()).Run(missing, &out)
	require.ErrorIs(t, err, visualize.ErrFileNotFound)

	err = visualize.NewVisualizer(quiet(),
		visualize.WithOutputDir(t.TempDir()),
		visualize.WithOutputs(visualize.OutputFlow),
	).Run(writeAgent(t), &out)
	require.ErrorIs(t, err, visualize.ErrConflictingOutputs)

	assert.Empty(t, out.String())
}

func TestConfig(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		args      []string
		want      []visualize.Output
		wantErr   error
		flagError bool
	}{
		"defaults": {},
		"selectors keep printing order": {
			args: []string{"--summary", "--schema", "--mindmap", "--by-tag"},
			want: []visualize.Output{
				visualize.OutputMindmap, visualize.OutputByTag,
				visualize.OutputSummary, visualize.OutputSchema,
			},
		},
		"ignore recovery": {
			args: []string{"--recovery", "IGNORE", "--tree", "--tree-format", "json"},
			want: []visualize.Output{visualize.OutputTree},
		},
		"bad recovery": {
			args:    []string{"--recovery", "guess"},
			wantErr: annotation.ErrInvalidOption,
		},
		"bad tree format": {
			args:    []string{"--tree-format", "toml"},
			wantErr: render.ErrInvalidFormat,
		},
		"bad snippet budget": {
			args:    []string{"--snippet-budget", "0"},
			wantErr: annotation.ErrInvalidOption,
		},
		"output with selector": {
			args:      []string{"-o", "out", "--flow"},
			wantErr:   visualize.ErrConflictingOutputs,
			flagError: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := visualize.NewConfig()

			cmd := &cobra.Command{Use: "test"}
			cfg.RegisterFlags(cmd.Flags())
			require.NoError(t, cfg.RegisterCompletions(cmd))
			require.NoError(t, cmd.ParseFlags(tc.args))

			if tc.flagError {
				require.Error(t, cmd.ValidateFlagGroups())
			}

			_, err := cfg.NewVisualizer()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.Selected())
		})
	}
}

func TestConfigRecovery(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "crossed.md")
	require.NoError(t, os.WriteFile(path, []byte(stringtest.Doc(
		"> `<a>`",
		">- `<b>`",
		"> `</a>`",
		"> `</b>`",
		"> `<c>`",
	)), 0o600))

	roots := map[string]int{"search": 2, "ignore": 1}

	for recovery, want := range roots {
		cfg := visualize.NewConfig()

		cmd := &cobra.Command{Use: "test"}
		cfg.RegisterFlags(cmd.Flags())
		require.NoError(t, cmd.ParseFlags([]string{"--recovery", recovery}))

		v, err := cfg.NewVisualizer(quiet())
		require.NoError(t, err)

		doc, err := v.Parse(path)
		require.NoError(t, err)
		assert.Len(t, doc.Roots, want, recovery)
	}
}
