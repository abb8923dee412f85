// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package watcher reports changes to configuration files on disk. It backs
// the watch command.
package watcher
