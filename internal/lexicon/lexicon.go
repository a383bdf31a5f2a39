// Package lexicon loads the reference list of known-correct names used by
// the name-correction stage.
//
// The lexicon is loaded once at startup and treated as immutable for the
// process's lifetime; the pipeline only ever borrows it read-only, so
// concurrent generation calls need no locking.
//
// Two sources are provided: a plain-text file with one name per line (the
// default) and a PostgreSQL table for deployments that share one lexicon
// across instances.
package lexicon

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Source provides the name lexicon.
type Source interface {
	// Names returns all lexicon entries in their stored order.
	// An empty slice is a valid result — the name stage then passes all
	// tokens through unchanged.
	Names(ctx context.Context) ([]string, error)
}

// FileSource reads the lexicon from a plain-text file: one name per line,
// blank lines and lines starting with "#" skipped.
type FileSource struct {
	// Path is the location of the lexicon file.
	Path string
}

var _ Source = FileSource{}

// Names opens the file at Path and parses it with [ReadFrom].
func (s FileSource) Names(ctx context.Context) ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %q: %w", s.Path, err)
	}
	defer f.Close()

	names, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %q: %w", s.Path, err)
	}
	return names, nil
}

// ReadFrom parses a one-name-per-line lexicon from r. Surrounding
// whitespace is trimmed; blank lines and "#" comments are skipped.
// Useful in tests where lexicons are built from string literals.
func ReadFrom(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return names, nil
}

// Static is a fixed in-memory lexicon, mainly for tests and benchmarks.
type Static []string

var _ Source = Static(nil)

// Names returns the slice as-is.
func (s Static) Names(ctx context.Context) ([]string, error) {
	return s, nil
}
