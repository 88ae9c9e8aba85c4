package render

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

// HiddenField is a hidden input emitted before the widget tree.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken carries a request forgery token under the backend's input name,
// for example "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField carries a record version for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// Element renders the field as an input of type hidden.
func (f HiddenField) Element() *htmltree.Element {
	return htmltree.New("input").
		SetAttr("type", "hidden").
		SetAttr("name", f.Name).
		SetAttr("value", f.Value)
}

// MergeHiddenFields returns a copy of base with fields applied. Empty names
// are ignored and later fields win on collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			out[name] = field.Value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields orders fields by name for deterministic output.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: strings.TrimSpace(name), Value: fields[name]})
	}
	return result
}

// FormPayload maps posted form values onto the names of root's widgets, in
// the shape each widget's SetVal accepts. Disabled widgets are skipped since
// browsers do not post them. Checkbox groups and row tables missing from
// form are bound empty; other absent fields are left out.
func FormPayload(root widget.Widget, form url.Values) map[string]any {
	out := map[string]any{}
	if root == nil {
		return out
	}
	for _, w := range append([]widget.Widget{root}, widget.Descendants(root)...) {
		if !w.Core().Enabled() {
			continue
		}
		name := w.Name()
		switch w.(type) {
		case *widget.Container, *widget.Card, *widget.Button, *widget.HTML:
		case *widget.Checkboxes:
			out[name] = append([]string{}, form[name+"[]"]...)
		case *widget.MultiRowList:
			out[name] = widget.FormList(form, name)
		case *widget.MultiRow:
			out[name] = widget.FormValues(form, name)
		case *widget.Checkbox:
			if vals, ok := form[name]; ok {
				out[name] = append([]string(nil), vals...)
			}
		default:
			if vals, ok := form[name]; ok && len(vals) > 0 {
				out[name] = vals[0]
			}
		}
	}
	return out
}

// BindForm applies posted form values to root. See FormPayload.
func BindForm(root widget.Widget, form url.Values) error {
	return ApplyValues(root, FormPayload(root, form))
}
