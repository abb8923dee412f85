// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rcbeam/rcbeam/internal/log"
)

// Aliases maps the short column names accepted by --attrs to paths in a
// resolved beam row. Names not listed are used as paths verbatim.
var Aliases = map[string]string{
	"height":   "beam_height",
	"width":    "beam_width",
	"dia":      "rebar_diameter",
	"gap":      "gap_between_rebar",
	"cover":    "cover_depth",
	"top_1":    "num_rebar.top_1",
	"top_2":    "num_rebar.top_2",
	"top_3":    "num_rebar.top_3",
	"bottom_1": "num_rebar.bottom_1",
	"bottom_2": "num_rebar.bottom_2",
	"bottom_3": "num_rebar.bottom_3",
	"concrete": "layer_name.concrete",
	"rebar":    "layer_name.rebar",
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Attr represents each of the columns to be included in the output.
type Attr struct {
	// The gjson path to extract from the row object.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output. This is also used as the column title when
	// output=text.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result. Strings take time, case and length transforms; numbers
// take the n (thousands separators) transform.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		if f, ok := value.(float64); ok && strings.Contains(a.TransformSpec, "n") {
			return humanize.Commaf(f)
		}
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// Convert UTC time to local or time ago.
	if strings.ContainsAny(a.TransformSpec, "tT") {
		if t, err := time.Parse(time.RFC3339, result); err == nil {
			local := t.In(time.Local)
			if strings.Contains(a.TransformSpec, "T") {
				result = humanize.Time(local)
				log.Tracef("time ago: result=%s", result)
			} else {
				result = local.Format("2006-01-02T15:04:05MST")
				log.Tracef("time local: result=%s", result)
			}
		}
	}

	// The last case transformation wins. This lets an attr's own spec override
	// a global one prepended to it: --attrs '*::U,concrete::l' is lower case.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Length transformations count runes so layer names in Japanese are not
	// cut mid-character. The last length in the spec wins, as with case.
	if a.TransformSpec != "" {
		match := lengthRegex.FindAllString(a.TransformSpec, -1)
		if len(match) != 0 {
			l, _ := strconv.Atoi(match[len(match)-1])
			abs := int(math.Abs(float64(l)))
			runes := []rune(result)
			if len(runes) > abs {
				if l < 0 {
					lr := max(abs/2-1, 0)
					result = string(runes[:lr]) + ".." + string(runes[len(runes)-lr:])
					log.Tracef("length middle: result=%s", result)
				} else {
					result = string(runes[:l])
					log.Tracef("length trunc: result=%s", result)
				}
			}
		}
	}

	return result
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Set parses each spec from --attrs and adds it to the AttrList.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		pathIdx = iota
		outputIdx
		transformIdx
	)

	// There are three : delimited fields in each spec. The first is the column
	// name or path to extract from the row. The second is the key to use in
	// the output. The third is the transformation spec to apply to the output
	// value. The latter two are optional. The output key defaults to the name
	// as typed, or to the last section of a dotted path.
	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")

		// A leading ! keeps the attr for filtering and sorting only.
		attr.Key = strings.TrimSpace(fields[pathIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("empty attribute in spec %q", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		if len(fields) == 1 || fields[outputIdx] == "" {
			segments := strings.Split(strings.TrimPrefix(attr.Key, "."), ".")
			attr.OutputKey = segments[len(segments)-1]
		} else {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// If the attr already exists in the list (because it is a default for
		// a command or the user double-entered it), apply the OutputKey, Include
		// and TransformSpec to the existing Attr.
		path := resolvePath(attr.Key)
		for i := range *a {
			if (*a)[i].Key == path || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		attr.Key = path
		*a = append(*a, attr)
		log.Tracef("attr appended: key=%s, outputKey=%s, spec=%s", attr.Key, attr.OutputKey, attr.TransformSpec)
	}

	return nil
}

// resolvePath maps a column name onto its row path. A leading '.' forces the
// remainder to be taken as a literal path.
func resolvePath(key string) string {
	if strings.HasPrefix(key, ".") {
		return key[1:]
	}
	if p, ok := Aliases[key]; ok {
		return p
	}
	return key
}

// SetGlobalTransformSpec inserts a global transform spec at the front of all
// attrs in the list.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// If there is more than one global spec, take the first.
	for attr := range *a {
		if (*a)[attr].Key == "*" {
			spec = (*a)[attr].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}
	log.Debugf("global spec: spec=%s", spec)

	for attr := range *a {
		(*a)[attr].TransformSpec = spec + "," + (*a)[attr].TransformSpec
	}

	return nil
}

// String returns a string representation of the AttrList. This matches the
// format of the original --attrs flag.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }
