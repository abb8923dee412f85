// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/rcbeam/rcbeam/internal/beam"
)

// Identical is printed when two configurations resolve to the same document.
const Identical = "The configs are identical."

// Options tune the rendered diff.
type Options struct {
	// Ignore lists dotted keys dropped from both sides before comparing.
	Ignore []string
	// Coloring adds ANSI colors to the changed lines.
	Coloring bool
}

// Configs compares two resolved configurations and writes the difference to
// w. If w is nil, os.Stdout is used.
func Configs(w io.Writer, left, right beam.Config, opts Options) (bool, error) {
	l, err := json.Marshal(left.Values())
	if err != nil {
		return false, fmt.Errorf("failed to marshal config: %w", err)
	}
	r, err := json.Marshal(right.Values())
	if err != nil {
		return false, fmt.Errorf("failed to marshal config: %w", err)
	}
	return Diff(w, l, r, opts)
}

// Diff compares two JSON documents and writes an ASCII diff, or Identical,
// to w. It reports whether the documents differ.
func Diff(w io.Writer, left, right []byte, opts Options) (bool, error) {
	log.Debugf("diff: len(left)=%d len(right)=%d", len(left), len(right))

	if w == nil {
		w = os.Stdout
	}

	var ldoc, rdoc map[string]interface{}
	if err := json.Unmarshal(left, &ldoc); err != nil {
		return false, fmt.Errorf("failed to unmarshal left config: %w", err)
	}
	if err := json.Unmarshal(right, &rdoc); err != nil {
		return false, fmt.Errorf("failed to unmarshal right config: %w", err)
	}

	for _, key := range opts.Ignore {
		if key = strings.TrimSpace(key); key != "" {
			drop(ldoc, key)
			drop(rdoc, key)
		}
	}

	delta := gojsondiff.New().CompareObjects(ldoc, rdoc)
	if !delta.Modified() {
		_, err := fmt.Fprintln(w, Identical)
		return false, err
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Coloring,
	}

	diffString, err := formatter.NewAsciiFormatter(ldoc, config).Format(delta)
	if err != nil {
		return true, err
	}

	_, err = fmt.Fprint(w, diffString)
	return true, err
}

// drop removes a dotted key from doc. Missing keys are ignored.
func drop(doc map[string]interface{}, key string) {
	head, rest, nested := strings.Cut(key, ".")
	if !nested {
		delete(doc, head)
		return
	}
	if child, ok := doc[head].(map[string]interface{}); ok {
		drop(child, rest)
	}
}
