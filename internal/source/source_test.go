// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package source

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/cacheutil"
)

const beamTOML = `beam_height = 600.0
beam_width = 300.0
rebar_diameter = 19.0
[num_rebar]
top_1 = 3
`

const beamYAML = `beam_height: 600
beam_width: 300
rebar_diameter: 19
num_rebar:
  bottom_1: 2
`

// fakeS3 serves objects from memory and records requests.
type fakeS3 struct {
	objects  map[string]string
	modified time.Time
	calls    []s3v2.GetObjectInput
	err      error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	f.calls = append(f.calls, *in)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3v2.GetObjectOutput{
		Body:         io.NopCloser(strings.NewReader(body)),
		LastModified: awsv2.Time(f.modified),
	}, nil
}

func newTestFetcher(t *testing.T, s3 *fakeS3) (*Fetcher, *[]string) {
	t.Helper()
	t.Setenv(cacheutil.DirEnvVar, t.TempDir())
	t.Setenv(cacheutil.EnabledEnvVar, "")

	var regions []string
	return &Fetcher{
		Stdin: strings.NewReader(beamTOML),
		NewS3: func(_ context.Context, region string) (ObjectGetter, error) {
			regions = append(regions, region)
			return s3, nil
		},
	}, &regions
}

func TestFetch_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b1.yaml")
	require.NoError(t, os.WriteFile(path, []byte(beamYAML), 0o600))
	f, _ := newTestFetcher(t, &fakeS3{})

	blob, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, blob.Location)
	assert.Equal(t, beam.FormatYAML, blob.Format)
	assert.Equal(t, beamYAML, string(blob.Data))
	assert.False(t, blob.ModTime.IsZero())
}

func TestFetch_FileErrors(t *testing.T) {
	dir := t.TempDir()
	f, _ := newTestFetcher(t, &fakeS3{})

	_, err := f.Fetch(context.Background(), filepath.Join(dir, "missing.toml"))
	var ioErr *beam.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = f.Fetch(context.Background(), dir)
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, dir, ioErr.Path)
}

func TestFetch_Stdin(t *testing.T) {
	f, _ := newTestFetcher(t, &fakeS3{})

	cfg, err := f.Load(context.Background(), Stdin, beam.FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), cfg.NumRebar().Top1())
}

func TestFetch_StdinOverride(t *testing.T) {
	f, _ := newTestFetcher(t, &fakeS3{})
	f.Stdin = strings.NewReader(beamYAML)

	_, err := f.Load(context.Background(), Stdin, beam.FormatAuto)
	assert.True(t, beam.IsParseError(err), "YAML read as TOML")

	f.Stdin = strings.NewReader(beamYAML)
	cfg, err := f.Load(context.Background(), Stdin, beam.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), cfg.NumRebar().Bottom1())
}

func TestFetch_StdinErrors(t *testing.T) {
	f, _ := newTestFetcher(t, &fakeS3{})
	f.Stdin = iotest.ErrReader(errors.New("closed"))

	_, err := f.Fetch(context.Background(), Stdin)
	assert.True(t, beam.IsIOError(err))

	f.Stdin = nil
	_, err = f.Fetch(context.Background(), Stdin)
	assert.True(t, beam.IsIOError(err))
}

func TestFetch_S3(t *testing.T) {
	modified := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s3 := &fakeS3{objects: map[string]string{"drawings/beams/b1.toml": beamTOML}, modified: modified}
	f, regions := newTestFetcher(t, s3)

	blob, err := f.Fetch(context.Background(), "s3://drawings/beams/b1.toml?region=ap-northeast-1")
	require.NoError(t, err)

	assert.Equal(t, beamTOML, string(blob.Data))
	assert.Equal(t, beam.FormatTOML, blob.Format)
	assert.Equal(t, modified, blob.ModTime)
	assert.Equal(t, []string{"ap-northeast-1"}, *regions)
	require.Len(t, s3.calls, 1)
	assert.Nil(t, s3.calls[0].VersionId)
}

func TestFetch_S3VersionedIsCached(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{"drawings/b1.yaml": beamYAML}, modified: time.Now()}
	f, _ := newTestFetcher(t, s3)
	loc := "s3://drawings/b1.yaml?version=v42"

	first, err := f.Load(context.Background(), loc, beam.FormatAuto)
	require.NoError(t, err)
	second, err := f.Load(context.Background(), loc, beam.FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	require.Len(t, s3.calls, 1, "second read served from cache")
	assert.Equal(t, "v42", awsv2.ToString(s3.calls[0].VersionId))

	// Unversioned reads always go to S3.
	_, err = f.Fetch(context.Background(), "s3://drawings/b1.yaml")
	require.NoError(t, err)
	_, err = f.Fetch(context.Background(), "s3://drawings/b1.yaml")
	require.NoError(t, err)
	assert.Len(t, s3.calls, 3)
}

func TestFetch_S3Errors(t *testing.T) {
	tests := []struct {
		name     string
		location string
		s3       *fakeS3
	}{
		{"missing key", "s3://drawings/", &fakeS3{}},
		{"missing bucket", "s3:///b1.toml", &fakeS3{}},
		{"no such object", "s3://drawings/none.toml", &fakeS3{objects: map[string]string{}}},
		{"api failure", "s3://drawings/b1.toml", &fakeS3{err: errors.New("AccessDenied")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, _ := newTestFetcher(t, tt.s3)

			_, err := f.Fetch(context.Background(), tt.location)

			var ioErr *beam.IOError
			require.ErrorAs(t, err, &ioErr)
			assert.Equal(t, tt.location, ioErr.Path)
		})
	}
}

func TestFetch_InvalidUTF8IsIOError(t *testing.T) {
	const garbled = "beam_height = 600.0\nlabel = \"\xff\xfe\"\n"

	path := filepath.Join(t.TempDir(), "b1.toml")
	require.NoError(t, os.WriteFile(path, []byte(garbled), 0o600))
	s3 := &fakeS3{objects: map[string]string{"drawings/b1.toml": garbled}, modified: time.Now()}
	f, _ := newTestFetcher(t, s3)
	f.Stdin = strings.NewReader(garbled)

	for _, location := range []string{path, Stdin, "s3://drawings/b1.toml?version=v1"} {
		t.Run(location, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), location)

			var ioErr *beam.IOError
			require.ErrorAs(t, err, &ioErr)
			assert.Equal(t, location, ioErr.Path)
			assert.ErrorIs(t, err, beam.ErrInvalidUTF8)
		})
	}

	_, ok := cacheutil.Read([]string{"s3", "drawings"}, "b1.toml@v1")
	assert.False(t, ok, "undecodable objects are not cached")
}

func TestFetch_S3ClientError(t *testing.T) {
	f, _ := newTestFetcher(t, &fakeS3{})
	f.NewS3 = func(context.Context, string) (ObjectGetter, error) {
		return nil, errors.New("no credentials")
	}

	_, err := f.Fetch(context.Background(), "s3://drawings/b1.toml")
	assert.True(t, beam.IsIOError(err))
	assert.Contains(t, err.Error(), "no credentials")
}

func TestParseS3(t *testing.T) {
	loc, err := ParseS3("s3://drawings/floor-2/b7.hcl?version=abc&region=eu-west-1")
	require.NoError(t, err)
	assert.Equal(t, S3Location{Bucket: "drawings", Key: "floor-2/b7.hcl", Version: "abc", Region: "eu-west-1"}, loc)

	_, err = ParseS3("https://drawings/b7.hcl")
	assert.Error(t, err)
}

func TestLoad_ParseErrorCarriesLocation(t *testing.T) {
	s3 := &fakeS3{objects: map[string]string{"drawings/bad.toml": "beam_height = 1\n"}}
	f, _ := newTestFetcher(t, s3)

	_, err := f.Load(context.Background(), "s3://drawings/bad.toml", beam.FormatAuto)

	var perr *beam.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "s3://drawings/bad.toml", perr.Path)
	assert.Equal(t, beam.KeyBeamWidth, perr.Key)
}

func TestIsS3(t *testing.T) {
	assert.True(t, IsS3("s3://b/k"))
	assert.False(t, IsS3("beams/s3.toml"))
	assert.False(t, IsS3(Stdin))
}
