// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	awsx "github.com/rcbeam/rcbeam/internal/aws"
	"github.com/rcbeam/rcbeam/internal/beam"
	"github.com/rcbeam/rcbeam/internal/cacheutil"
	"github.com/rcbeam/rcbeam/internal/config"
	"github.com/rcbeam/rcbeam/internal/log"
)

const s3Scheme = "s3://"

// ObjectGetter is the slice of the S3 API a Fetcher needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// S3Location is a parsed s3://bucket/key[?version=ID&region=R] location.
type S3Location struct {
	Bucket  string
	Key     string
	Version string
	Region  string
}

// ParseS3 splits an s3:// location into its parts. Bucket and key are
// required.
func ParseS3(location string) (S3Location, error) {
	u, err := url.Parse(location)
	if err != nil {
		return S3Location{}, err
	}
	if u.Scheme != "s3" {
		return S3Location{}, fmt.Errorf("not an s3 location: %s", location)
	}

	loc := S3Location{
		Bucket:  u.Host,
		Key:     strings.TrimPrefix(u.Path, "/"),
		Version: u.Query().Get("version"),
		Region:  u.Query().Get("region"),
	}
	if loc.Bucket == "" {
		return S3Location{}, fmt.Errorf("missing bucket in %s", location)
	}
	if loc.Key == "" || strings.HasSuffix(loc.Key, "/") {
		return S3Location{}, fmt.Errorf("missing object key in %s", location)
	}
	return loc, nil
}

// cacheKey identifies one immutable object version.
func (l S3Location) cacheKey() string {
	return l.Key + "@" + l.Version
}

func (l S3Location) cacheDirs() []string {
	return []string{"s3", l.Bucket}
}

// DefaultS3 builds an S3 client from the s3.region, s3.profile and
// s3.endpoint settings. A non-empty region argument wins over s3.region.
func DefaultS3(ctx context.Context, region string) (ObjectGetter, error) {
	if region == "" {
		region, _ = config.GetString("s3.region", "")
	}
	profile, _ := config.GetString("s3.profile", "")
	endpoint, _ := config.GetString("s3.endpoint", "")

	var opts []awsx.Option
	if region != "" {
		opts = append(opts, awsx.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, awsx.WithProfile(profile))
	}
	if endpoint != "" {
		opts = append(opts, awsx.WithEndpoint(endpoint))
	}

	client, err := awsx.NewS3Client(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return client, nil
}

// PurgeCache drops cached objects older than the cache.clean setting (hours).
func PurgeCache() error {
	cleanHours, _ := config.GetInt("cache.clean")
	return cacheutil.Purge(cleanHours)
}

func (f *Fetcher) fetchS3(ctx context.Context, location string) (Blob, error) {
	loc, err := ParseS3(location)
	if err != nil {
		return Blob{}, &beam.IOError{Path: location, Err: err}
	}
	format := beam.FormatFromPath(loc.Key)

	if loc.Version != "" {
		if err := PurgeCache(); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}
		if entry, ok := cacheutil.Read(loc.cacheDirs(), loc.cacheKey()); ok {
			if err := beam.CheckText(location, entry.Data); err != nil {
				return Blob{}, err
			}
			return Blob{Location: location, Data: entry.Data, ModTime: entry.ModTime, Format: format}, nil
		}
	}

	if f.NewS3 == nil {
		return Blob{}, &beam.IOError{Path: location, Err: fmt.Errorf("no S3 client available")}
	}
	svc, err := f.NewS3(ctx, loc.Region)
	if err != nil {
		return Blob{}, &beam.IOError{Path: location, Err: err}
	}

	input := &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	}
	if loc.Version != "" {
		input.VersionId = awsv2.String(loc.Version)
	}

	result, err := svc.GetObject(ctx, input)
	if err != nil {
		return Blob{}, &beam.IOError{Path: location, Err: fmt.Errorf("failed to get S3 object: %w", err)}
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return Blob{}, &beam.IOError{Path: location, Err: fmt.Errorf("failed to read S3 object body: %w", err)}
	}
	if err := beam.CheckText(location, data); err != nil {
		return Blob{}, err
	}
	log.Debugf("s3 object read: bucket=%s, key=%s, version=%s, bytes=%d", loc.Bucket, loc.Key, loc.Version, len(data))

	if loc.Version != "" {
		if err := cacheutil.Write(loc.cacheDirs(), loc.cacheKey(), data); err != nil {
			log.WithError(err).Error("error writing to cache")
		}
	}

	modTime := time.Now()
	if result.LastModified != nil {
		modTime = *result.LastModified
	}
	return Blob{Location: location, Data: data, ModTime: modTime, Format: format}, nil
}
