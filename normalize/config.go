package normalize

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

// Flags holds CLI flag names for normalizer configuration.
type Flags struct {
	DryRun  string
	Preview string
}

// Config holds CLI flag values for normalizer configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewNormalizer] to create a
// [Normalizer].
type Config struct {
	Flags   Flags
	DryRun  bool
	Preview bool
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	return &Config{
		Flags: Flags{
			DryRun:  "dry-run",
			Preview: "preview",
		},
	}
}

// RegisterFlags adds normalizer flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.DryRun, c.Flags.DryRun, false,
		"print only the rewritten tag lines with their depth; do not modify the file")
	flags.BoolVar(&c.Preview, c.Flags.Preview, false,
		"print the full rewritten file; do not modify the file")
}

// RegisterCompletions marks the mode flags as mutually exclusive on cmd and
// completes the positional argument with markdown files.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	cmd.MarkFlagsMutuallyExclusive(c.Flags.DryRun, c.Flags.Preview)

	cmd.ValidArgsFunction = func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		return []string{"md"}, cobra.ShellCompDirectiveFilterFileExt
	}

	return nil
}

// Mode returns the [Mode] selected by the flag values.
func (c *Config) Mode() (Mode, error) {
	switch {
	case c.DryRun && c.Preview:
		return 0, fmt.Errorf("%w: --%s and --%s", ErrConflictingModes, c.Flags.DryRun, c.Flags.Preview)
	case c.DryRun:
		return ModeDryRun, nil
	case c.Preview:
		return ModePreview, nil
	}

	return ModeWrite, nil
}

// NewNormalizer creates a [Normalizer] using this [Config].
func (c *Config) NewNormalizer(opts ...annotation.Option) (*Normalizer, error) {
	mode, err := c.Mode()
	if err != nil {
		return nil, err
	}

	return NewNormalizer(mode, opts...), nil
}
