package visualize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lossyrob/phased-agent-workflow/annotation"
	"github.com/lossyrob/phased-agent-workflow/render"
)

var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrReadInput indicates the input file could not be read.
	ErrReadInput = errors.New("read input")

	// ErrWriteOutput indicates a rendering could not be written.
	ErrWriteOutput = errors.New("write output")

	// ErrConflictingOutputs indicates an output directory was combined with
	// output selectors.
	ErrConflictingOutputs = errors.New("output directory cannot be combined with output selectors")
)

const rule = "============================================================"

// Option configures a [Visualizer].
type Option func(*Visualizer)

// WithOutputs selects the renderings to print. An empty selection prints
// [DefaultOutputs].
func WithOutputs(outputs ...Output) Option {
	return func(v *Visualizer) {
		v.outputs = outputs
	}
}

// WithOutputDir makes [Visualizer.Run] write the standard file set to dir
// instead of printing.
func WithOutputDir(dir string) Option {
	return func(v *Visualizer) {
		v.outputDir = dir
	}
}

// WithTreeFormat sets the encoding of [OutputTree]. The default is
// [render.FormatYAML].
func WithTreeFormat(f render.Format) Option {
	return func(v *Visualizer) {
		v.treeFormat = f
	}
}

// WithParseOptions sets options passed to [annotation.Parse].
func WithParseOptions(opts ...annotation.Option) Option {
	return func(v *Visualizer) {
		v.parseOpts = opts
	}
}

// WithLogger sets the logger for progress messages and diagnostics. A nil
// logger discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Visualizer) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}

		v.logger = logger
	}
}

// Visualizer renders annotated files.
// Create instances with [NewVisualizer].
type Visualizer struct {
	logger     *slog.Logger
	outputDir  string
	treeFormat render.Format
	outputs    []Output
	parseOpts  []annotation.Option
}

// NewVisualizer creates a new [Visualizer].
func NewVisualizer(opts ...Option) *Visualizer {
	v := &Visualizer{
		logger:     slog.Default(),
		treeFormat: render.FormatYAML,
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Parse reads and parses the file at path, naming the document after it.
func (v *Visualizer) Parse(path string) (*annotation.Document, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	opts := append([]annotation.Option{annotation.WithLogger(v.logger)}, v.parseOpts...)
	opts = append(opts, annotation.WithName(AgentName(path)))

	doc := annotation.Parse(src, opts...)

	v.logger.Debug("parsed document",
		slog.String("path", path),
		slog.Int("roots", len(doc.Roots)),
		slog.Int("sections", len(doc.Sections)),
		slog.Int("diagnostics", len(doc.Diagnostics)),
	)

	return doc, nil
}

// Run parses the file at path and prints the selected renderings to w, or
// writes the standard file set and lists the written files on w when an
// output directory is configured.
func (v *Visualizer) Run(path string, w io.Writer) error {
	if v.outputDir != "" && len(v.outputs) > 0 {
		return ErrConflictingOutputs
	}

	doc, err := v.Parse(path)
	if err != nil {
		return err
	}

	if v.outputDir != "" {
		return v.writeFiles(doc, BaseName(path), w)
	}

	return v.print(doc, w)
}

func (v *Visualizer) print(doc *annotation.Document, w io.Writer) error {
	outputs := v.outputs
	if len(outputs) == 0 {
		outputs = DefaultOutputs
	}

	var sb strings.Builder

	for i, o := range outputs {
		text, err := Render(doc, o, v.treeFormat)
		if err != nil {
			return err
		}

		if i > 0 {
			sb.WriteString("\n" + rule + "\n\n")
		}

		if len(outputs) > 1 {
			sb.WriteString("### " + o.Title() + " ###\n\n")
		}

		sb.WriteString(text + "\n")
	}

	_, err := io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}

func (v *Visualizer) writeFiles(doc *annotation.Document, base string, w io.Writer) error {
	err := os.MkdirAll(v.outputDir, 0o755)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	var sb strings.Builder

	sb.WriteString("Generated:\n")

	for _, f := range files {
		text, err := Render(doc, f.output, v.treeFormat)
		if err != nil {
			return err
		}

		path := filepath.Join(v.outputDir, base+f.suffix)

		err = os.WriteFile(path, []byte(text+"\n"), 0o644)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

		v.logger.Debug("wrote file", slog.String("path", path))

		if f.note != "" {
			fmt.Fprintf(&sb, "  %s (%s)\n", path, f.note)
		} else {
			fmt.Fprintf(&sb, "  %s\n", path)
		}
	}

	_, err = io.WriteString(w, sb.String())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
