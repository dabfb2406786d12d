package annotation

import "log/slog"

// Option configures parsing and tracking.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	name          string
	recovery      Recovery
	snippetBudget int
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:        slog.Default(),
		recovery:      RecoverSearch,
		snippetBudget: DefaultSnippetBudget,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithLogger sets the logger that receives diagnostics. A nil logger
// discards them. The default is [slog.Default].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}

		o.logger = logger
	}
}

// WithRecovery sets the mismatched closing tag policy. The default is
// [RecoverSearch].
func WithRecovery(r Recovery) Option {
	return func(o *options) {
		o.recovery = r
	}
}

// WithName sets the [Document.Name] produced by [Parse].
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithSnippetBudget sets the maximum snippet length in runes. Values less
// than 1 use [DefaultSnippetBudget].
func WithSnippetBudget(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultSnippetBudget
		}

		o.snippetBudget = n
	}
}
