// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ compares resolved beam configurations and renders the
// differences. It also offers a small terminal picker for choosing the two
// configurations to compare.
package differ
