// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"":        log.ErrorLevel,
		"bogus":   log.ErrorLevel,
		"trace":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInitLoggerTo(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "debug")
	t.Cleanup(func() { InitLoggerTo(&bytes.Buffer{}, "error") })

	Debugf("loaded %s", "beam.toml")
	Tracef("not shown")
	WithError(errors.New("boom")).Warn("careful")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], " D loaded beam.toml")
	assert.Contains(t, lines[1], " W careful error=boom")
}

func TestTracef(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "TRACE")
	t.Cleanup(func() { InitLoggerTo(&bytes.Buffer{}, "error") })

	Tracef("resolved %d docs", 2)
	Infof("hello")

	out := buf.String()
	assert.Contains(t, out, " T resolved 2 docs")
	assert.Contains(t, out, " I hello")
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	InitLoggerTo(&buf, "")
	t.Cleanup(func() { InitLoggerTo(&bytes.Buffer{}, "error") })

	Debugf("quiet")
	Warnf("quiet too")
	Errorf("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, " E loud")
}
