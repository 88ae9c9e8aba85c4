package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwidget/pkg/widget"
)

// ErrorMapping splits a server error payload into messages keyed by widget
// name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps error paths (JSON pointers, dotted or bracketed such
// as "rows[0][a]") onto the names of widgets in root. A path resolves to the
// widget with the longest matching name, so row errors land on their
// multi-row widget. Unknown paths become form-level errors.
func MapErrorPayload(root widget.Widget, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	names := make(map[string]string)
	if root != nil {
		collectWidgetPaths(root, names)
	}

	for _, rawPath := range sortedPayloadKeys(payload) {
		messages := normalizeMessages(payload[rawPath])
		if len(messages) == 0 {
			continue
		}
		name, ok := resolveErrorPath(rawPath, names)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], messages...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// resolveErrorPath returns the name of the widget whose path is the longest
// prefix of raw. Envelope segments such as "body" and row indexes are
// ignored when that yields a longer match.
func resolveErrorPath(raw string, names map[string]string) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	best, bestLen := "", 0
	for _, candidate := range pathCandidates(splitErrorPath(raw)) {
		for end := len(candidate); end > bestLen; end-- {
			if name, ok := names[strings.Join(candidate[:end], ".")]; ok {
				best, bestLen = name, end
				break
			}
		}
	}
	return best, best != ""
}

// splitErrorPath breaks JSON pointers ("/rows/1/a"), JSONPath ("$.rows[1].a"),
// dotted and bracketed ("rows[1][a]") paths into segments.
func splitErrorPath(path string) []string {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		switch r {
		case '.', '/', '[', ']', '#', '$':
			return true
		}
		return false
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, pointerUnescaper.Replace(part))
		}
	}
	return out
}

func pathCandidates(segments []string) [][]string {
	unwrapped := segments
	for len(unwrapped) > 0 {
		if _, ok := wrapperSegments[strings.ToLower(unwrapped[0])]; !ok {
			break
		}
		unwrapped = unwrapped[1:]
	}
	return [][]string{segments, unwrapped, withoutIndexes(segments), withoutIndexes(unwrapped)}
}

func withoutIndexes(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err != nil {
			out = append(out, segment)
		}
	}
	return out
}

// collectWidgetPaths indexes every widget name by its dotted path form.
func collectWidgetPaths(root widget.Widget, dest map[string]string) {
	for _, w := range append([]widget.Widget{root}, widget.Descendants(root)...) {
		name := strings.TrimSpace(w.Name())
		if name == "" {
			continue
		}
		if path := strings.Join(splitErrorPath(name), "."); path != "" {
			dest[path] = name
		}
	}
}

func sortedPayloadKeys(payload map[string][]string) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
