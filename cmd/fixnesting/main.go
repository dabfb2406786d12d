// Package main provides the CLI entry point for fixnesting, a tool that
// rewrites the nesting indicators of blockquoted annotation tags in a
// markdown file so that they match the actual tag nesting.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lossyrob/phased-agent-workflow/log"
	"github.com/lossyrob/phased-agent-workflow/normalize"
	"github.com/lossyrob/phased-agent-workflow/version"
)

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cfg := normalize.NewConfig()
	logCfg := log.NewConfig()

	rootCmd := &cobra.Command{
		Use:   "fixnesting [flags] <file.md>",
		Short: "Fix annotation tag nesting indicators in a markdown file",
		Long: `fixnesting rewrites blockquoted annotation tag lines so that their nesting
indicator reflects the real depth of the tag:

  > ` + "`<tag>`" + `        level 1
  >- ` + "`<tag>`" + `       level 2
  >- - ` + "`<tag>`" + `     level 3

By default the file is rewritten in place. Mismatched and unclosed tags are
reported as warnings and never stop processing.`,
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

func run(cfg *normalize.Config, path string, stdout io.Writer) error {
	n, err := cfg.NewNormalizer()
	if err != nil {
		return err
	}

	_, err = n.Run(path, stdout)

	return err
}
