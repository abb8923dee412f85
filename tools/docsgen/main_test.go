package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestFlags_SortedAndVisible(t *testing.T) {
	cmd := &cli.Command{
		Name: "show",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output format", Value: "text"},
			&cli.BoolFlag{Name: "color", Aliases: []string{"c"}, Usage: "enable color"},
			&cli.BoolFlag{Name: "tldr", Hidden: true},
		},
	}

	got := flags(cmd)
	require.Len(t, got, 2)
	assert.Equal(t, "color", got[0].ID)
	assert.Equal(t, "--color, -c", got[0].Syntax)
	assert.Empty(t, got[0].Default)
	assert.Equal(t, "output", got[1].ID)
	assert.Equal(t, "--output, -o", got[1].Syntax)
	assert.Equal(t, "output format", got[1].Usage)
}

func TestGenerate(t *testing.T) {
	app := &cli.Command{
		Name: "rcbeam",
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "check beam configs",
				UsageText: "rcbeam check [flags] <config>...",
				Flags:     []cli.Flag{&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "only report failures"}},
			},
		},
	}
	extras := Extras{Subcommands: map[string]SubcommandExtras{
		"check": {
			Description: "Resolves every config.",
			Examples:    []Example{{Command: "rcbeam check beams/", Description: "Check a directory."}},
			Notes:       []string{"Exit code 4 means a parse error."},
		},
	}}

	dir := filepath.Join(t.TempDir(), "commands")
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, generate(app, extras, dir, "1.2.3", now))

	data, err := os.ReadFile(filepath.Join(dir, "check.md"))
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "# rcbeam check")
	assert.Contains(t, page, "rcbeam check [flags] <config>...")
	assert.Contains(t, page, "Resolves every config.")
	assert.Contains(t, page, "| `--quiet, -q` | only report failures |")
	assert.Contains(t, page, "rcbeam check beams/")
	assert.Contains(t, page, "- Exit code 4 means a parse error.")
	assert.Contains(t, page, "1.2.3, March 1, 2026")
}
