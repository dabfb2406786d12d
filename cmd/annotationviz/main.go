// Package main provides the CLI entry point for annotationviz, a tool that
// generates mindmaps, flowcharts and structure summaries from annotated
// agent prompt files.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lossyrob/phased-agent-workflow/log"
	"github.com/lossyrob/phased-agent-workflow/version"
	"github.com/lossyrob/phased-agent-workflow/visualize"
)

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := visualize.NewConfig()
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "annotationviz [flags] <file.md>",
		Short: "Generate visualizations from an annotated agent prompt",
		Long: `annotationviz parses the annotation tags of a markdown agent prompt and
renders the resulting tree.

Without selectors it prints the Mermaid mindmap, the Markmap outline by
section, the flow skeleton and the YAML structure summary. With -o it writes
the mindmap, both Markmap outlines, the flow skeleton and the summary to the
given directory instead.

View Markmap files with the markmap.markmap-vscode extension, or convert them
with: npx markmap-cli file.mm.md -o file.html`,
		Version:       version.String(),
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return logCfg.SetDefault(stderr)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, args[0], stdout)
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr == nil {
		completionErr = logCfg.RegisterCompletions(rootCmd)
	}

	if completionErr != nil {
		fmt.Fprintf(stderr, "register completions: %v\n", completionErr)
	}

	return rootCmd
}

func run(cfg *visualize.Config, path string, stdout io.Writer) error {
	v, err := cfg.NewVisualizer()
	if err != nil {
		return err
	}

	return v.Run(path, stdout)
}
