package schemaform

import (
	"strings"

	"github.com/goliatone/go-formwidget/pkg/widget"
)

// Flatten turns a nested JSON object into widget names as produced by the
// builder: {"owner": {"email": "x"}} becomes {"owner[email]": "x"}. Lists
// are kept whole since multi-row widgets bind them directly.
func Flatten(values map[string]any) map[string]any {
	out := make(map[string]any, len(values))
	flattenInto(out, "", values)
	return out
}

func flattenInto(dest map[string]any, prefix string, values map[string]any) {
	for key, value := range values {
		name := key
		if prefix != "" {
			name = prefix + "[" + key + "]"
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(dest, name, nested)
			continue
		}
		dest[name] = value
	}
}

// Collect rebuilds the nested request payload from the values held by the
// tree. Containers and buttons contribute nothing; nil values are skipped.
func Collect(root widget.Widget) map[string]any {
	out := make(map[string]any)
	if root == nil {
		return out
	}
	for _, w := range widget.Descendants(root) {
		if !holdsValue(w) {
			continue
		}
		value := w.Val()
		if value == nil {
			continue
		}
		setPath(out, nameSegments(w.Name()), value)
	}
	return out
}

func holdsValue(w widget.Widget) bool {
	for _, kind := range w.Core().Kinds() {
		switch kind {
		case "container", "button", "static-text", "html":
			return false
		}
	}
	return true
}

func nameSegments(name string) []string {
	name = strings.NewReplacer("[", ".", "]", "").Replace(name)
	parts := strings.Split(name, ".")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func setPath(dest map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}
	for _, key := range path[:len(path)-1] {
		next, ok := dest[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			dest[key] = next
		}
		dest = next
	}
	dest[path[len(path)-1]] = value
}
