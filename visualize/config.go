package visualize

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lossyrob/phased-agent-workflow/annotation"
	"github.com/lossyrob/phased-agent-workflow/render"
)

// Flags holds CLI flag names for visualizer configuration.
type Flags struct {
	Mindmap       string
	Markmap       string
	ByTag         string
	Flow          string
	Summary       string
	Tree          string
	TreeFormat    string
	Schema        string
	Output        string
	Recovery      string
	SnippetBudget string
}

// Config holds CLI flag values for visualizer configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewVisualizer] to create a
// [Visualizer].
type Config struct {
	Flags         Flags
	Output        string
	TreeFormat    string
	Recovery      string
	SnippetBudget int
	Mindmap       bool
	Markmap       bool
	ByTag         bool
	Flow          bool
	Summary       bool
	Tree          bool
	Schema        bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Mindmap:       "mindmap",
		Markmap:       "markmap",
		ByTag:         "by-tag",
		Flow:          "flow",
		Summary:       "summary",
		Tree:          "tree",
		TreeFormat:    "tree-format",
		Schema:        "schema",
		Output:        "output",
		Recovery:      "recovery",
		SnippetBudget: "snippet-budget",
	}

	return &Config{Flags: f}
}

// RegisterFlags adds visualizer flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.Mindmap, c.Flags.Mindmap, false, "print the mermaid mindmap")
	flags.BoolVar(&c.Markmap, c.Flags.Markmap, false, "print the markmap outline by section")
	flags.BoolVar(&c.ByTag, c.Flags.ByTag, false, "print the markmap outline by tag")
	flags.BoolVar(&c.Flow, c.Flags.Flow, false, "print the flow skeleton")
	flags.BoolVar(&c.Summary, c.Flags.Summary, false, "print the YAML structure summary")
	flags.BoolVar(&c.Tree, c.Flags.Tree, false, "print the annotation tree")
	flags.StringVar(&c.TreeFormat, c.Flags.TreeFormat, string(render.FormatYAML),
		fmt.Sprintf("annotation tree format, one of: %s", formatStrings()))
	flags.BoolVar(&c.Schema, c.Flags.Schema, false, "print the JSON Schema of the annotation tree")
	flags.StringVarP(&c.Output, c.Flags.Output, "o", "",
		"directory to write the mindmap, markmap, flow and summary files to")
	flags.StringVar(&c.Recovery, c.Flags.Recovery, string(annotation.RecoverSearch),
		fmt.Sprintf("mismatched closing tag recovery, one of: %s", recoveryStrings()))
	flags.IntVar(&c.SnippetBudget, c.Flags.SnippetBudget, annotation.DefaultSnippetBudget,
		"maximum snippet length in characters")
}

// RegisterCompletions registers shell completions for visualizer flags on
// cmd and marks the output directory as exclusive with the selectors.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.TreeFormat,
		cobra.FixedCompletions(formatStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.TreeFormat, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Recovery,
		cobra.FixedCompletions(recoveryStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Recovery, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.Output,
		func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveFilterDirs
		})
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Output, err)
	}

	err = cmd.RegisterFlagCompletionFunc(c.Flags.SnippetBudget, cobra.NoFileCompletions)
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.SnippetBudget, err)
	}

	for _, selector := range c.selectorFlags() {
		cmd.MarkFlagsMutuallyExclusive(c.Flags.Output, selector)
	}

	cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return []string{"md"}, cobra.ShellCompDirectiveFilterFileExt
	}

	return nil
}

// Selected returns the outputs selected by flag values, in printing order.
func (c *Config) Selected() []Output {
	set := map[Output]bool{
		OutputMindmap: c.Mindmap,
		OutputMarkmap: c.Markmap,
		OutputByTag:   c.ByTag,
		OutputFlow:    c.Flow,
		OutputSummary: c.Summary,
		OutputTree:    c.Tree,
		OutputSchema:  c.Schema,
	}

	var selected []Output

	for _, o := range Outputs {
		if set[o] {
			selected = append(selected, o)
		}
	}

	return selected
}

// NewVisualizer creates a [Visualizer] using this [Config].
func (c *Config) NewVisualizer(opts ...Option) (*Visualizer, error) {
	recovery, err := annotation.ParseRecovery(c.Recovery)
	if err != nil {
		return nil, err
	}

	format, err := render.ParseFormat(c.TreeFormat)
	if err != nil {
		return nil, err
	}

	if c.SnippetBudget < 1 {
		return nil, fmt.Errorf("%w: %s must be positive, got %d",
			annotation.ErrInvalidOption, c.Flags.SnippetBudget, c.SnippetBudget)
	}

	selected := c.Selected()
	if c.Output != "" && len(selected) > 0 {
		return nil, ErrConflictingOutputs
	}

	base := []Option{
		WithOutputs(selected...),
		WithOutputDir(c.Output),
		WithTreeFormat(format),
		WithParseOptions(
			annotation.WithRecovery(recovery),
			annotation.WithSnippetBudget(c.SnippetBudget),
		),
	}

	return NewVisualizer(append(base, opts...)...), nil
}

func (c *Config) selectorFlags() []string {
	return []string{
		c.Flags.Mindmap, c.Flags.Markmap, c.Flags.ByTag, c.Flags.Flow,
		c.Flags.Summary, c.Flags.Tree, c.Flags.Schema,
	}
}

func formatStrings() []string {
	out := make([]string, 0, len(render.Formats))
	for _, f := range render.Formats {
		out = append(out, string(f))
	}

	return out
}

func recoveryStrings() []string {
	out := make([]string, 0, len(annotation.Recoveries))
	for _, r := range annotation.Recoveries {
		out = append(out, string(r))
	}

	return out
}
