package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formwidget/pkg/widget"
)

const (
	JSONName        = "json"
	jsonContentType = "application/json"
)

// Node is the JSON description of a widget and its subtree.
type Node struct {
	UID       string            `json:"uid"`
	Kind      string            `json:"kind"`
	Kinds     []string          `json:"kinds,omitempty"`
	Name      string            `json:"name"`
	Weight    int               `json:"weight"`
	FormArea  string            `json:"form_area"`
	Label     string            `json:"label,omitempty"`
	Value     any               `json:"value,omitempty"`
	Required  bool              `json:"required,omitempty"`
	Hidden    bool              `json:"hidden,omitempty"`
	Disabled  bool              `json:"disabled,omitempty"`
	Replaces  string            `json:"replaces,omitempty"`
	Assets    []string          `json:"assets,omitempty"`
	JSModules []string          `json:"js_modules,omitempty"`
	Errors    []string          `json:"errors,omitempty"`
	Children  []Node            `json:"children,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

// Document is the JSON renderer payload.
type Document struct {
	FormErrors []string      `json:"form_errors,omitempty"`
	Hidden     []HiddenField `json:"hidden,omitempty"`
	Root       Node          `json:"root"`
}

// JSONRenderer describes the tree as JSON for API clients that render the
// form themselves.
type JSONRenderer struct {
	cfg    config
	indent bool
}

// NewJSON constructs a JSON renderer. Options configure the translator and
// locale used for validation messages.
func NewJSON(options ...Option) *JSONRenderer {
	return &JSONRenderer{cfg: newConfig(options)}
}

// Indented returns a copy of the renderer that emits indented JSON.
func (r *JSONRenderer) Indented() *JSONRenderer {
	clone := *r
	clone.indent = true
	return &clone
}

func (r *JSONRenderer) Name() string { return JSONName }

func (r *JSONRenderer) ContentType() string { return jsonContentType }

func (r *JSONRenderer) Render(ctx context.Context, root widget.Widget, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNilWidget
	}

	fields, formErrors, err := prepare(root, opts, r.cfg.translator, r.cfg.localeFor(opts))
	if err != nil {
		return nil, err
	}
	doc := Document{
		FormErrors: formErrors,
		Hidden:     SortedHiddenFields(MergeHiddenFields(nil, opts.Hidden...)),
		Root:       describe(root, fields),
	}

	var payload []byte
	if r.indent {
		payload, err = json.MarshalIndent(doc, "", "  ")
	} else {
		payload, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("render: encode json: %w", err)
	}
	return payload, nil
}

// Describe builds the JSON node for w and its subtree.
func Describe(w widget.Widget) Node {
	return describe(w, nil)
}

func describe(w widget.Widget, fields map[string][]string) Node {
	b := w.Core()
	node := Node{
		UID:       b.UID(),
		Kind:      b.Kind(),
		Kinds:     b.Kinds(),
		Name:      b.Name(),
		Weight:    b.Weight(),
		FormArea:  b.FormArea(),
		Label:     b.Label(),
		Value:     w.Val(),
		Required:  b.Required(),
		Hidden:    b.Hidden(),
		Disabled:  !b.Enabled(),
		Replaces:  b.Replaces(),
		Assets:    b.Assets(),
		JSModules: b.JSModules(),
		Errors:    fields[b.Name()],
		Data:      copyStringMap(b.Data()),
	}
	for _, child := range b.Children() {
		node.Children = append(node.Children, describe(child, fields))
	}
	return node
}
