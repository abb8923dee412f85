// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws builds AWS SDK v2 configuration and S3 clients for reading beam
// documents stored in buckets. S3-compatible stores are reached by setting an
// endpoint override.
package aws
