// Package template expands ${...} placeholders in strings and structured
// values against a substitution context of capture groups, path segments,
// nested data fields, generated identifiers, and the original input.
package template

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context carries the values available to one substitution call. It is read
// only; every field is optional. NewID overrides the identifier source for
// ${uuid}, which keeps tests deterministic.
type Context struct {
	Captures []string
	Path     []string
	Data     map[string]interface{}
	Input    string
	NewID    func() string
}

var placeholderRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// SubstituteString expands the placeholder forms ${N}, ${path.N}, ${uuid},
// ${input}, and ${data.dotted.path} in template. Out-of-bounds capture or
// path indices and missing data paths yield the empty string; unknown
// placeholder forms are left verbatim. Each ${uuid} occurrence gets a
// distinct identifier.
func SubstituteString(template string, ctx Context) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		key := m[2 : len(m)-1]

		if n, err := strconv.Atoi(key); err == nil {
			if n >= 0 && n < len(ctx.Captures) {
				return ctx.Captures[n]
			}
			return ""
		}
		if rest, ok := strings.CutPrefix(key, "path."); ok {
			if n, err := strconv.Atoi(rest); err == nil && n >= 0 && n < len(ctx.Path) {
				return ctx.Path[n]
			}
			return ""
		}
		if key == "uuid" {
			if ctx.NewID != nil {
				return ctx.NewID()
			}
			return GenerateID()
		}
		if key == "input" {
			return ctx.Input
		}
		if rest, ok := strings.CutPrefix(key, "data."); ok {
			return stringify(lookup(ctx.Data, strings.Split(rest, ".")))
		}
		return m
	})
}

// SubstituteValue recurses through a structured value: map keys and string
// leaves are each substituted independently, slice elements are substituted
// in place, and non-string scalars pass through unchanged.
func SubstituteValue(value interface{}, ctx Context) interface{} {
	switch v := value.(type) {
	case string:
		return SubstituteString(v, ctx)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[SubstituteString(k, ctx)] = SubstituteValue(val, ctx)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = SubstituteValue(val, ctx)
		}
		return out
	default:
		return value
	}
}

// GenerateID returns a collision-resistant identifier built from the current
// time in base36 and a random fragment. Not cryptographically unique.
func GenerateID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + uuid.NewString()[:8]
}

// ParsePath splits a slash-delimited path into its segments, ignoring empty
// segments from leading, trailing, or duplicate slashes.
func ParsePath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// lookup walks a dotted key path through nested string-keyed maps. Any
// missing key or non-map intermediate yields nil.
func lookup(data map[string]interface{}, keys []string) interface{} {
	var cur interface{} = data
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		if cur, ok = m[k]; !ok {
			return nil
		}
	}
	return cur
}

// stringify renders a leaf value: strings verbatim, numbers and booleans in
// plain textual form, nil as empty, anything structured as canonical JSON.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	}
}
