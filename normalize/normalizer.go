package normalize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lossyrob/phased-agent-workflow/annotation"
)

var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrReadInput indicates the input file could not be read.
	ErrReadInput = errors.New("read input")

	// ErrWriteOutput indicates the normalized output could not be written.
	ErrWriteOutput = errors.New("write output")

	// ErrConflictingModes indicates more than one output mode was selected.
	ErrConflictingModes = errors.New("cannot use both")
)

// Mode selects what a [Normalizer] does with its result.
type Mode int

const (
	// ModeWrite replaces the file with the normalized content and prints a
	// one-line report.
	ModeWrite Mode = iota
	// ModeDryRun prints each rewritten tag line with its depth.
	ModeDryRun
	// ModePreview prints the complete normalized content.
	ModePreview
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeDryRun:
		return "dry-run"
	case ModePreview:
		return "preview"
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Normalizer normalizes annotation nesting in files.
// Create instances with [NewNormalizer].
type Normalizer struct {
	opts []annotation.Option
	mode Mode
}

// NewNormalizer creates a [Normalizer] for mode. The options configure the
// underlying [annotation.Tracker].
func NewNormalizer(mode Mode, opts ...annotation.Option) *Normalizer {
	return &Normalizer{mode: mode, opts: opts}
}

// Run normalizes the file at path and reports to w according to the
// [Mode]. The complete result is computed before the file is touched, and
// the file is only replaced when its content changes.
func (n *Normalizer) Run(path string, w io.Writer) (*Result, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	res := Normalize(src, n.opts...)

	switch n.mode {
	case ModeDryRun:
		for _, l := range res.Rewritten {
			_, err = fmt.Fprintf(w, "L%4d (depth=%d): %s\n", l.Number, l.Depth, l.Text)
			if err != nil {
				return res, fmt.Errorf("%w: %w", ErrWriteOutput, err)
			}
		}

	case ModePreview:
		_, err = w.Write(res.Bytes())
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}

	default:
		if res.Changed {
			err = replaceFile(path, res.Bytes())
			if err != nil {
				return res, err
			}
		}

		_, err = fmt.Fprintf(w, "Processed %d XML annotation lines in %s\n", len(res.Rewritten), path)
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}

	return res, nil
}

// replaceFile atomically replaces path with data, keeping its permissions.
// A symlinked path is resolved so the link target is rewritten and the link
// itself survives.
func replaceFile(path string, data []byte) error {
	path, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmp.Name())
	}()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(info.Mode().Perm())
	}

	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}

	return nil
}
