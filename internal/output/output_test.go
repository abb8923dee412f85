// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v2"

	"github.com/rcbeam/rcbeam/internal/attrs"
)

const rowsJSON = `[
  {"file": "b2.toml", "beam_height": 450, "beam_width": 250, "rebar_diameter": 16,
   "num_rebar": {"top_1": 2}, "layer_name": {"concrete": "RC大梁"}, "total": 2},
  {"file": "b1.toml", "beam_height": 600, "beam_width": 300, "rebar_diameter": 19.5,
   "num_rebar": {"top_1": 3}, "layer_name": {"concrete": "BEAM"}, "total": 5}
]`

// runWith runs a throwaway command carrying the global output flags and
// calls fn from its action.
func runWith(t *testing.T, args []string, fn func(cmd *cli.Command) error) {
	t.Helper()
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "color"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.IntFlag{Name: "padding", Value: 2},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "titles"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return fn(cmd)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func mustAttrs(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set(spec))
	require.NoError(t, al.SetGlobalTransformSpec())
	return al
}

func TestSortDataset(t *testing.T) {
	testData := func() []map[string]interface{} {
		return []map[string]interface{}{
			{"file": "b3.toml", "dia": 19.5, "concrete": "beam"},
			{"file": "b1.toml", "dia": 19.0, "concrete": "BEAM"},
			{"file": "B2.toml", "dia": 22.0, "concrete": "beam"},
		}
	}

	tests := []struct {
		name      string
		spec      string
		wantOrder []string
	}{
		{"no spec keeps order", "", []string{"b3.toml", "b1.toml", "B2.toml"}},
		{"ascending text", "file", []string{"b1.toml", "B2.toml", "b3.toml"}},
		{"descending text", "-file", []string{"b3.toml", "B2.toml", "b1.toml"}},
		{"case sensitive", "!file", []string{"B2.toml", "b1.toml", "b3.toml"}},
		{"fractional numbers", "dia", []string{"b1.toml", "b3.toml", "B2.toml"}},
		{"descending numbers", "-dia", []string{"B2.toml", "b3.toml", "b1.toml"}},
		{"multiple fields", "!concrete,-dia", []string{"b1.toml", "B2.toml", "b3.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testData()
			SortDataset(data, tt.spec)

			var got []string
			for _, row := range data {
				got = append(got, row["file"].(string))
			}
			assert.Equal(t, tt.wantOrder, got)
		})
	}
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		empty []string
		want  string
	}{
		{"nil", nil, nil, ""},
		{"nil with empty value", nil, []string{"-"}, "-"},
		{"empty string with empty value", "", []string{"-"}, "-"},
		{"string", "RC鉄筋", nil, "RC鉄筋"},
		{"whole float", 600.0, nil, "600"},
		{"fractional float", 19.5, nil, "19.5"},
		{"zero float", 0.0, []string{"-"}, "0"},
		{"int", 3, nil, "3"},
		{"uint32", uint32(7), nil, "7"},
		{"bool false", false, nil, "false"},
		{"map", map[string]interface{}{"top_1": 3}, nil, `{"top_1":3}`},
		{"empty map", map[string]interface{}{}, []string{"-"}, "-"},
		{"slice", []interface{}{"a", 1}, nil, `["a",1]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value, tt.empty...))
		})
	}
}

func TestSliceDiceSpit_Text(t *testing.T) {
	var buf bytes.Buffer
	runWith(t, []string{"--titles", "--sort", "file"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(*bytes.NewBufferString(rowsJSON), mustAttrs(t, "file,height,dia,concrete"), cmd, &buf)
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"file", "height", "dia", "concrete"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"b1.toml", "600", "19.5", "BEAM"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"b2.toml", "450", "16", "RC大梁"}, strings.Fields(lines[2]))
	assert.NotContains(t, buf.String(), "\x1b[", "no color when not a terminal")
}

func TestSliceDiceSpit_FilterAndTransform(t *testing.T) {
	var buf bytes.Buffer
	runWith(t, []string{"--filter", "height>500"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(*bytes.NewBufferString(rowsJSON), mustAttrs(t, "file,concrete::l"), cmd, &buf)
	})

	assert.Equal(t, []string{"b1.toml", "beam"}, strings.Fields(buf.String()))
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	var buf bytes.Buffer
	runWith(t, []string{"--output", "json", "--sort", "-total"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(*bytes.NewBufferString(rowsJSON), mustAttrs(t, "file,total,!height"), cmd, &buf)
	})

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []map[string]interface{}{
		{"file": "b1.toml", "total": 5.0},
		{"file": "b2.toml", "total": 2.0},
	}, got)
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	var buf bytes.Buffer
	runWith(t, []string{"--output", "yaml", "--filter", "concrete=BEAM"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(*bytes.NewBufferString(rowsJSON), mustAttrs(t, "file,top_1"), cmd, &buf)
	})

	var got []map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "b1.toml", got[0]["file"])
	assert.EqualValues(t, 3, got[0]["top_1"])
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	var buf bytes.Buffer
	runWith(t, []string{"--output", "raw", "--filter", "height>9999"}, func(cmd *cli.Command) error {
		return SliceDiceSpit(*bytes.NewBufferString(rowsJSON), mustAttrs(t, "file"), cmd, &buf)
	})

	assert.Equal(t, rowsJSON, buf.String(), "raw skips filtering")
}

func TestTableWriter_HeaderFooterAndEmpty(t *testing.T) {
	var buf bytes.Buffer
	runWith(t, nil, func(cmd *cli.Command) error {
		TableWriter(nil, mustAttrs(t, "file"), cmd, &buf)
		return nil
	})
	assert.Empty(t, buf.String())

	runWith(t, nil, func(cmd *cli.Command) error {
		cmd.Metadata = map[string]interface{}{"header": "beams", "footer": "2 configs"}
		TableWriter([]map[string]interface{}{{"file": "b1.toml"}, {"file": nil}}, mustAttrs(t, "file"), cmd, &buf)
		return nil
	})
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "beams\n"))
	assert.Contains(t, out, "b1.toml")
	assert.Contains(t, out, "-")
	assert.True(t, strings.HasSuffix(out, "2 configs\n"))
}

func TestColorEnabled(t *testing.T) {
	runWith(t, []string{"--color"}, func(cmd *cli.Command) error {
		assert.True(t, ColorEnabled(cmd, &bytes.Buffer{}))
		return nil
	})
	runWith(t, []string{"--color=false"}, func(cmd *cli.Command) error {
		assert.False(t, ColorEnabled(cmd, &bytes.Buffer{}))
		return nil
	})
	runWith(t, nil, func(cmd *cli.Command) error {
		assert.False(t, ColorEnabled(cmd, &bytes.Buffer{}))
		return nil
	})
}

func TestGetColors(t *testing.T) {
	header, even, odd := getColors("colors")

	assert.NotNil(t, header)
	assert.NotNil(t, even)
	assert.NotNil(t, odd)
}

type schemaFixture struct {
	Height float64 `toml:"height" required:"true"`
	Gap    float64 `toml:"gap,omitempty" default:"80.0"`
	Counts struct {
		Top uint32 `toml:"top" default:"0"`
	} `toml:"counts" required:"true"`
	Label    string `toml:"label"`
	Ignored  string `toml:"-"`
	Untagged string
}

func TestSchema(t *testing.T) {
	tags := Schema(reflect.TypeOf(schemaFixture{}))

	var got []string
	for _, tag := range tags {
		got = append(got, tag.print())
	}
	assert.Equal(t, []string{
		"height,float,required",
		"gap,float,default=80.0",
		"counts,table,required",
		"counts.top,unsigned integer,default=0",
		"label,string",
	}, got)
}

func TestSchemaRows(t *testing.T) {
	rows := SchemaRows(reflect.TypeOf(&schemaFixture{}))

	require.Len(t, rows, 5)
	assert.Equal(t, map[string]interface{}{
		"key": "counts.top", "type": "unsigned integer", "required": false, "default": "0",
	}, rows[3])
}

func TestDumpSchema(t *testing.T) {
	var buf bytes.Buffer
	DumpSchema(reflect.TypeOf(schemaFixture{}), []string{"file"}, map[string]string{"top": "counts.top"}, &buf)

	out := buf.String()
	assert.Contains(t, out, "--attrs")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, []string{"counts.top (top)", "file", "gap", "height", "label"}, lines[len(lines)-5:])
	assert.NotContains(t, out, "counts\n", "tables are not attributes")
}

func TestEmit_SchemaJSON(t *testing.T) {
	var buf bytes.Buffer
	runWith(t, []string{"--output", "json"}, func(cmd *cli.Command) error {
		return Emit(SchemaRows(reflect.TypeOf(schemaFixture{})), mustAttrs(t, "key,type"), cmd, &buf)
	})

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, map[string]interface{}{"key": "height", "type": "float"}, got[0])
}

func BenchmarkSortDataset(b *testing.B) {
	for i := 0; i < b.N; i++ {
		data := []map[string]interface{}{
			{"file": "c", "dia": 22.0},
			{"file": "a", "dia": 19.0},
			{"file": "b", "dia": 16.0},
		}
		SortDataset(data, "-dia,file")
	}
}
