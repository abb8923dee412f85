// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidUTF8 is the cause of an *IOError for a document that is not
// UTF-8 text.
var ErrInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// IOError reports that a configuration document could not be opened or read.
type IOError struct {
	// Path is the location that was being read (file path, "-" or s3 URL).
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CheckText returns an *IOError when data read from path is not valid UTF-8.
func CheckText(path string, data []byte) error {
	if !utf8.Valid(data) {
		return &IOError{Path: path, Err: ErrInvalidUTF8}
	}
	return nil
}

// ParseError reports that a document is not valid syntax or does not match
// the schema. Key, Line and Column are set when they can be derived.
type ParseError struct {
	Path   string
	Key    string
	Line   int
	Column int
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Key != "" {
		msg = fmt.Sprintf("%s: %s", e.Key, msg)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return "parse " + msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsIOError reports whether err is or wraps an *IOError.
func IsIOError(err error) bool {
	var e *IOError
	return errors.As(err, &e)
}

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var e *ParseError
	return errors.As(err, &e)
}

func missingKey(key string) *ParseError {
	return &ParseError{Key: key, Msg: "missing required key"}
}

func wrongType(key, want string, got any) *ParseError {
	return &ParseError{Key: key, Msg: fmt.Sprintf("expected %s, found %s", want, describe(got))}
}

// describe names the dynamic type of a decoded value the way a document
// author would recognise it.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "integer"
	case float32, float64:
		return "float"
	case map[string]any:
		return "table"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
