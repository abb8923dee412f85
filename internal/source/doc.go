// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source fetches beam documents from the places operators keep them:
// local files, stdin ("-") and S3 objects (s3://bucket/key). Versioned S3
// reads (s3://bucket/key?version=ID) are immutable and cached on disk.
//
// Every fetch failure is a *beam.IOError carrying the location, so callers
// classify errors the same way whatever the origin.
package source
