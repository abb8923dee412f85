// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

import (
	"errors"
	"os"

	"github.com/rcbeam/rcbeam/internal/log"
)

// Load reads the document at path, decodes it in the format implied by the
// path's extension and returns the resolved Config. Read failures are
// returned as *IOError and decode failures as *ParseError.
func Load(path string) (Config, error) {
	doc, err := LoadDocument(path, FormatAuto)
	if err != nil {
		return Config{}, err
	}
	return doc.Resolve(), nil
}

// LoadDocument reads and decodes the document at path without resolving
// defaults. FormatAuto picks the format from the path.
func LoadDocument(path string, f Format) (*Document, error) {
	// #nosec G304 -- the path is supplied by the operator.
	data, err := os.ReadFile(path)
	if err != nil {
		log.Debugf("read err: path=%s, err=%v", path, err)
		return nil, &IOError{Path: path, Err: err}
	}
	if err := CheckText(path, data); err != nil {
		return nil, err
	}
	log.Debugf("read config: path=%s, bytes=%d", path, len(data))

	f = resolveFormat(f, path)
	doc, err := Decode(data, f)
	if err != nil {
		return nil, withPath(err, path)
	}
	log.Debugf("decoded config: path=%s, format=%s", path, f)
	return doc, nil
}

// Parse decodes and resolves data in format f.
func Parse(data []byte, f Format) (Config, error) {
	doc, err := Decode(data, f)
	if err != nil {
		return Config{}, err
	}
	return doc.Resolve(), nil
}

// ParseAt is Parse for data that was read from path. The path selects the
// format when f is FormatAuto and is recorded in any *ParseError.
func ParseAt(path string, data []byte, f Format) (Config, error) {
	cfg, err := Parse(data, resolveFormat(f, path))
	if err != nil {
		return Config{}, withPath(err, path)
	}
	return cfg, nil
}

func withPath(err error, path string) error {
	var perr *ParseError
	if errors.As(err, &perr) && perr.Path == "" {
		perr.Path = path
	}
	return err
}
