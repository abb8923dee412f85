// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// schemaTag is a document key discovered from a struct field tag.
type schemaTag struct {
	Kind     string
	Name     string
	Required bool
	Default  string
}

// print renders the tag into its display form.
func (t schemaTag) print() string {
	parts := []string{t.Name, t.Kind}
	if t.Required {
		parts = append(parts, "required")
	}
	if t.Default != "" {
		parts = append(parts, "default="+t.Default)
	}
	return strings.Join(parts, ",")
}

// NewTag builds a schemaTag from the serialization tag of field, prefixing
// the name with holder for nested tables. Fields without the tag, or tagged
// "-", yield an empty Name.
func NewTag(holder string, field reflect.StructField, tagKey string) schemaTag {
	tag := schemaTag{}

	value, ok := field.Tag.Lookup(tagKey)
	if !ok {
		return tag
	}
	name, _, _ := strings.Cut(value, ",")
	if name == "" || name == "-" {
		return tag
	}

	if holder != "" {
		name = holder + "." + name
	}
	tag.Name = name
	tag.Kind = kindName(field.Type)
	tag.Required = field.Tag.Get("required") == "true"
	tag.Default = field.Tag.Get("default")

	return tag
}

func kindName(typ reflect.Type) string {
	switch typ.Kind() {
	case reflect.Float32, reflect.Float64:
		return "float"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "unsigned integer"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "integer"
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "table"
	case reflect.Ptr:
		return kindName(typ.Elem())
	default:
		return typ.Kind().String()
	}
}

// maxSchemaDepth limits the depth of schema walking to prevent infinite
// recursion.
const maxSchemaDepth = 2

// Schema returns the document keys of typ, in declaration order, described
// by their toml tags.
func Schema(typ reflect.Type) []schemaTag {
	return dumpSchemaWalker("", typ, 0)
}

// SchemaRows returns the schema of typ as rows with key, type, required and
// default columns, ready for Emit.
func SchemaRows(typ reflect.Type) []map[string]interface{} {
	tags := Schema(typ)
	rows := make([]map[string]interface{}, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, map[string]interface{}{
			"key":      tag.Name,
			"type":     tag.Kind,
			"required": tag.Required,
			"default":  tag.Default,
		})
	}
	return rows
}

// DumpSchema writes a sorted list of the paths usable with --attrs,
// --filter and --sort for rows built from typ. extras names additional row
// keys and aliases maps short names onto paths. If w is nil, os.Stdout is
// used.
func DumpSchema(typ reflect.Type, extras []string, aliases map[string]string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Attributes available to the --attrs, --filter and --sort flags. Short
names are shown in parentheses. For the full document use --output=raw.`)
	fmt.Fprintln(w, "")

	short := make(map[string]string, len(aliases))
	for name, path := range aliases {
		short[path] = name
	}

	names := append([]string(nil), extras...)
	for _, tag := range Schema(typ) {
		if tag.Kind == "table" {
			continue
		}
		names = append(names, tag.Name)
	}
	if len(names) == 0 {
		log.Debugf("no tags found for type: %s", typ.Name())
		return
	}
	sort.Strings(names)

	for _, name := range names {
		if s, ok := short[name]; ok && s != name {
			fmt.Fprintf(w, "%s (%s)\n", name, s)
		} else {
			fmt.Fprintln(w, name)
		}
	}
}

// dumpSchemaWalker recursively walks a struct type discovering toml tags.
// A nested struct contributes a table entry followed by its own keys.
func dumpSchemaWalker(holder string, typ reflect.Type, depth int) []schemaTag {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	tags := make([]schemaTag, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tag := NewTag(holder, field, "toml")
		if tag.Name == "" {
			continue
		}
		log.Debugf("schema tag: %s", tag.print())
		tags = append(tags, tag)

		if tag.Kind == "table" && depth < maxSchemaDepth {
			tags = append(tags, dumpSchemaWalker(tag.Name, field.Type, depth+1)...)
		}
	}

	return tags
}
