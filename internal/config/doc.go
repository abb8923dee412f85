// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for rcbeam's own
// settings (not beam documents). Settings are a YAML document located by
// RCBEAM_CFG_FILE or in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/rcbeam.yaml or $HOME/.config/rcbeam.yaml
//   - macOS: $HOME/Library/Application Support/rcbeam.yaml
//   - Windows: %APPDATA%/rcbeam.yaml
//
// RCBEAM_CFG_* environment variables override file values. A double
// underscore separates key levels: RCBEAM_CFG_S3__PROFILE sets s3.profile.
package config
