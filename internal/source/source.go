// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/log"
)

// Stdin is the location that reads the document from standard input.
const Stdin = "-"

// Blob is a fetched, not yet decoded, document.
type Blob struct {
	Location string
	Data     []byte
	ModTime  time.Time
	// Format is implied by the location; FormatAuto for stdin.
	Format beam.Format
}

// Fetcher reads documents. The zero value is not usable; use New.
type Fetcher struct {
	Stdin io.Reader
	// NewS3 returns the client used for s3:// locations. region is the
	// ?region= override from the location, empty when absent.
	NewS3 func(ctx context.Context, region string) (ObjectGetter, error)
}

// New returns a Fetcher reading os.Stdin and building S3 clients from the
// s3.* settings.
func New() *Fetcher {
	return &Fetcher{
		Stdin: os.Stdin,
		NewS3: DefaultS3,
	}
}

// Fetch reads location with a default Fetcher.
func Fetch(ctx context.Context, location string) (Blob, error) {
	return New().Fetch(ctx, location)
}

// Load fetches and resolves location with a default Fetcher.
func Load(ctx context.Context, location string, override beam.Format) (beam.Config, error) {
	return New().Load(ctx, location, override)
}

// IsS3 reports whether location names an S3 object.
func IsS3(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

// Fetch reads the raw document at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) (Blob, error) {
	log.Tracef("fetch: location=%s", location)

	switch {
	case location == Stdin:
		return f.fetchStdin()
	case IsS3(location):
		return f.fetchS3(ctx, location)
	default:
		return fetchFile(location)
	}
}

// Load fetches location and resolves it. A non-auto override beats the
// format implied by the location.
func (f *Fetcher) Load(ctx context.Context, location string, override beam.Format) (beam.Config, error) {
	blob, err := f.Fetch(ctx, location)
	if err != nil {
		return beam.Config{}, err
	}
	return blob.Resolve(override)
}

// Resolve decodes and resolves the blob. override wins over b.Format unless
// it is FormatAuto.
func (b Blob) Resolve(override beam.Format) (beam.Config, error) {
	format := b.Format
	if override != beam.FormatAuto {
		format = override
	}
	return beam.ParseAt(b.Location, b.Data, format)
}

func (f *Fetcher) fetchStdin() (Blob, error) {
	if f.Stdin == nil {
		return Blob{}, &beam.IOError{Path: Stdin, Err: fmt.Errorf("no stdin available")}
	}
	data, err := io.ReadAll(f.Stdin)
	if err != nil {
		return Blob{}, &beam.IOError{Path: Stdin, Err: err}
	}
	if err := beam.CheckText(Stdin, data); err != nil {
		return Blob{}, err
	}
	return Blob{Location: Stdin, Data: data, ModTime: time.Now(), Format: beam.FormatAuto}, nil
}

func fetchFile(path string) (Blob, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Blob{}, &beam.IOError{Path: path, Err: err}
	}
	if info.IsDir() {
		return Blob{}, &beam.IOError{Path: path, Err: fmt.Errorf("is a directory")}
	}

	// #nosec G304 -- the path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		return Blob{}, &beam.IOError{Path: path, Err: err}
	}
	if err := beam.CheckText(path, data); err != nil {
		return Blob{}, err
	}

	return Blob{
		Location: path,
		Data:     data,
		ModTime:  info.ModTime(),
		Format:   beam.FormatFromPath(path),
	}, nil
}
