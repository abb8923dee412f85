// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// yamlLineRegex pulls the line number out of yaml.v3 error text such as
// "yaml: line 3: mapping values are not allowed in this context".
var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Decode parses data in format f into a Document. FormatAuto is treated as
// TOML. Syntax errors and schema violations are returned as *ParseError.
func Decode(data []byte, f Format) (*Document, error) {
	var (
		tree map[string]any
		err  error
	)

	switch f {
	case FormatAuto, FormatTOML:
		tree, err = decodeTOML(data)
	case FormatYAML, FormatJSON:
		tree, err = decodeYAML(data)
	case FormatHCL:
		tree, err = decodeHCL(data)
	default:
		return nil, &ParseError{Msg: fmt.Sprintf("unsupported format %s", f)}
	}
	if err != nil {
		return nil, err
	}

	return fromTree(tree)
}

func decodeTOML(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		perr := &ParseError{Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
			perr.Key = strings.Join(derr.Key(), ".")
			perr.Msg = derr.Error()
		}
		return nil, perr
	}
	return tree, nil
}

// decodeYAML also serves JSON documents, which are valid YAML.
func decodeYAML(data []byte) (map[string]any, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		perr := &ParseError{Err: err}
		if m := yamlLineRegex.FindStringSubmatch(err.Error()); m != nil {
			perr.Line, _ = strconv.Atoi(m[1])
		}
		return nil, perr
	}
	return normalize(tree).(map[string]any), nil
}

// normalize converts the map[any]any values yaml.v3 produces for mappings
// with non-string keys into map[string]any so the schema walker only deals
// with one map shape.
func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		for k, e := range t {
			if e != nil {
				t[k] = normalize(e)
			}
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			if e != nil {
				e = normalize(e)
			}
			m[fmt.Sprint(k)] = e
		}
		return m
	case []any:
		for i, e := range t {
			if e != nil {
				t[i] = normalize(e)
			}
		}
		return t
	default:
		return v
	}
}
