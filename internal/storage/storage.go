// Package storage reads and writes the CLI's source, output and config
// files. Locations are afs URLs, so a plain path, file:// and the
// remote schemes afs registers all work; "-" is standard input or
// output.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/viant/afs"
)

// Stdio names standard input for Load and standard output for Save.
const Stdio = "-"

// fileMode is the permission of files Save creates.
const fileMode os.FileMode = 0o644

// Store moves whole files through an afs service.
// A zero Store is not usable; call New.
type Store struct {
	fs     afs.Service
	stdin  io.Reader
	stdout io.Writer
}

// New returns a store backed by the default afs service and the
// process's standard streams.
func New() *Store {
	return &Store{fs: afs.New(), stdin: os.Stdin, stdout: os.Stdout}
}

// WithStdio returns a copy of s that uses in and out for Stdio.
func (s *Store) WithStdio(in io.Reader, out io.Writer) *Store {
	c := *s
	c.stdin, c.stdout = in, out
	return &c
}

// Load returns the content at url.
func (s *Store) Load(ctx context.Context, url string) ([]byte, error) {
	if url == Stdio {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	ok, err := s.fs.Exists(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", url, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, os.ErrNotExist)
	}
	data, err := s.fs.DownloadWithURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return data, nil
}

// Save replaces the content at url with data.
func (s *Store) Save(ctx context.Context, url string, data []byte) error {
	if url == Stdio {
		if _, err := s.stdout.Write(data); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	if err := s.fs.Upload(ctx, url, fileMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save %s: %w", url, err)
	}
	return nil
}
