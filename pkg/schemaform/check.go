package schemaform

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Issue is a document problem with an optional location.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s (%s)", i.Message, i.Path)
}

// Check validates the document with kin-openapi and reports operations
// whose request body cannot become a form.
func (d *Document) Check(ctx context.Context) []Issue {
	if d == nil || d.Spec == nil {
		return []Issue{{Message: "document is empty"}}
	}
	var issues []Issue
	if err := d.Spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		issues = append(issues, issueFromError(err))
	}
	ops := d.Operations()
	for _, id := range d.OperationIDs() {
		op := ops[id]
		if op.Schema == nil {
			continue
		}
		if !schemaIs(op.Schema, "object") && len(op.Schema.Properties) == 0 {
			issues = append(issues, Issue{
				Path:    "#/paths/" + escapePointer(op.Path) + "/" + strings.ToLower(op.Method) + "/requestBody",
				Message: fmt.Sprintf("operation %q request body is not an object", id),
			})
		}
	}
	return issues
}

func issueFromError(err error) Issue {
	msg := strings.TrimSpace(err.Error())
	path := extractJSONPointer(msg)
	if path != "" {
		msg = strings.TrimSpace(strings.Replace(msg, " at "+path, "", 1))
	}
	return Issue{Path: path, Field: fieldPathFromPointer(path), Message: msg}
}

func extractJSONPointer(message string) string {
	if idx := strings.LastIndex(message, " at "); idx >= 0 {
		return trimPointer(message[idx+4:])
	}
	if idx := strings.LastIndex(message, "#/"); idx >= 0 {
		return trimPointer(message[idx:])
	}
	return ""
}

func trimPointer(pointer string) string {
	return strings.TrimSpace(strings.TrimRight(pointer, ".)];,"))
}

// fieldPathFromPointer turns "#/properties/a/items/properties/b" into "a.b".
func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(pointer), "#"), "/")
	if trimmed == "" {
		return ""
	}
	parts := strings.Split(trimmed, "/")
	var out []string
	for idx := 0; idx < len(parts); idx++ {
		if parts[idx] == "properties" && idx+1 < len(parts) {
			out = append(out, unescapePointer(parts[idx+1]))
			idx++
		}
	}
	return strings.Join(out, ".")
}

func escapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

func unescapePointer(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
}
