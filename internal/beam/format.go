// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package beam

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the syntax of a configuration document.
type Format int

const (
	// FormatAuto asks the loader to pick a format from the path.
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
	FormatJSON
	FormatHCL
)

var formatNames = map[Format]string{
	FormatAuto: "auto",
	FormatTOML: "toml",
	FormatYAML: "yaml",
	FormatJSON: "json",
	FormatHCL:  "hcl",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extensions lists the file extensions recognised as configuration documents.
var Extensions = []string{".toml", ".yaml", ".yml", ".json", ".hcl"}

// FormatFromPath picks a format from the extension of path. Anything without
// a recognised extension is TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	case ".hcl":
		return FormatHCL
	default:
		return FormatTOML
	}
}

// ParseFormat converts a --format flag value into a Format. The empty string
// means FormatAuto.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FormatAuto, nil
	}
	if s == "yml" {
		return FormatYAML, nil
	}
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return FormatAuto, fmt.Errorf("unknown format %q", s)
}

// resolveFormat replaces FormatAuto with the format implied by path.
func resolveFormat(f Format, path string) Format {
	if f == FormatAuto {
		return FormatFromPath(path)
	}
	return f
}
