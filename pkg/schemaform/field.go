package schemaform

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
)

// Schema extensions read by the builder.
const (
	WeightExtension      = "x-weight"
	PlaceholderExtension = "x-placeholder"
	EnumTitlesExtension  = "x-enum-titles"
)

const textAreaThreshold = 255

// Field is one schema property on its way to becoming a widget.
type Field struct {
	// Path holds property names from the form root, the last being the
	// field's own name.
	Path     []string
	Schema   *openapi3.Schema
	Required bool
	// InRow marks fields that belong to a multi-row template. Their names are
	// row keys rather than full input names.
	InRow bool
}

// Name returns the property name.
func (f Field) Name() string {
	if len(f.Path) == 0 {
		return ""
	}
	return f.Path[len(f.Path)-1]
}

// UID returns a tree-unique identifier derived from the path.
func (f Field) UID() string {
	if f.InRow {
		return f.Name()
	}
	return strings.Join(f.Path, "-")
}

// InputName returns the submitted name, "a[b][c]" for nested properties.
func (f Field) InputName() string {
	if f.InRow || len(f.Path) == 0 {
		return f.Name()
	}
	var b strings.Builder
	b.WriteString(f.Path[0])
	for _, part := range f.Path[1:] {
		b.WriteString("[" + part + "]")
	}
	return b.String()
}

// Is reports whether the schema declares typ.
func (f Field) Is(typ string) bool {
	return schemaIs(f.Schema, typ)
}

// Format returns the lower-cased schema format.
func (f Field) Format() string {
	if f.Schema == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(f.Schema.Format))
}

// Items returns the array item schema, if any.
func (f Field) Items() *openapi3.Schema {
	if f.Schema == nil || f.Schema.Items == nil {
		return nil
	}
	return f.Schema.Items.Value
}

// Title returns the schema title or a humanised property name.
func (f Field) Title() string {
	if f.Schema != nil && strings.TrimSpace(f.Schema.Title) != "" {
		return strings.TrimSpace(f.Schema.Title)
	}
	return humanize(f.Name())
}

// Extension returns a string extension value.
func (f Field) Extension(key string) string {
	if f.Schema == nil {
		return ""
	}
	raw, ok := f.Schema.Extensions[key]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			return strings.TrimSpace(s)
		}
		return strings.Trim(strings.TrimSpace(string(v)), `"`)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Weight returns the x-weight extension, 0 when absent or malformed.
func (f Field) Weight() int {
	raw := f.Extension(WeightExtension)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int(n)
}

// Children returns the object properties of s as fields under f, in
// alphabetical order.
func (f Field) Children(s *openapi3.Schema) []Field {
	if s == nil || len(s.Properties) == 0 {
		return nil
	}
	required := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		required[name] = struct{}{}
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Field, 0, len(names))
	for _, name := range names {
		ref := s.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, req := required[name]
		out = append(out, Field{
			Path:     append(append([]string(nil), f.Path...), name),
			Schema:   ref.Value,
			Required: req,
			InRow:    f.InRow,
		})
	}
	return out
}

func schemaIs(s *openapi3.Schema, typ string) bool {
	if s == nil || s.Type == nil {
		return false
	}
	for _, t := range s.Type.Slice() {
		if t == typ {
			return true
		}
	}
	return false
}

// humanize turns "first_name" or "firstName" into "First name".
func humanize(name string) string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}
	var prev rune
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.' || unicode.IsSpace(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	if len(words) == 0 {
		return ""
	}
	out := strings.Join(words, " ")
	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
