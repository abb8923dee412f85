// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rcbeam/rcbeam/internal/beam"
)

// ResolveDir returns dir as an absolute path. It returns an error if the fs
// entry does not exist, is empty or is not a directory.
func ResolveDir(dir string) (string, error) {
	if dir == "" {
		return "", os.ErrInvalid
	}

	// Relative paths are taken from the working directory.
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return filepath.Clean(dir), nil
}

// ExpandLocations turns command arguments into config locations. A directory
// is replaced by the config documents directly inside it, in name order.
// Stdin ("-"), s3:// locations and paths that cannot be stat'd are passed
// through untouched so that loading reports them.
func ExpandLocations(args []string) ([]string, error) {
	var locations []string

	for _, arg := range args {
		if arg == "-" || strings.HasPrefix(arg, "s3://") {
			locations = append(locations, arg)
			continue
		}

		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			locations = append(locations, arg)
			continue
		}

		docs, err := ConfigFiles(arg)
		if err != nil {
			return nil, err
		}
		locations = append(locations, docs...)
	}

	return locations, nil
}

// ConfigFiles lists the config documents directly inside dir, sorted by
// name. Hidden files are skipped.
func ConfigFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if slices.Contains(beam.Extensions, strings.ToLower(filepath.Ext(name))) {
			files = append(files, filepath.Join(dir, name))
		}
	}

	return files, nil
}
