package render

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

// ErrNilWidget is returned when a renderer receives no root widget.
var ErrNilWidget = errors.New("render: root widget is required")

// Renderer converts a widget tree into a byte representation (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, root widget.Widget, opts Options) ([]byte, error)
}

// prepare applies request values and validation to root and returns the
// field and form level messages to surface.
func prepare(root widget.Widget, opts Options, t i18n.Translator, locale string) (map[string][]string, []string, error) {
	if len(opts.Values) > 0 {
		if err := ApplyValues(root, opts.Values); err != nil {
			return nil, nil, err
		}
	}

	fields := make(map[string][]string, len(opts.Errors))
	for name, messages := range opts.Errors {
		if clean := normalizeMessages(messages); len(clean) > 0 {
			fields[name] = clean
		}
	}
	if opts.Validate {
		fe, err := widget.ValidateAll(root)
		if err != nil {
			return nil, nil, err
		}
		if t == nil {
			t = i18n.Default()
		}
		for name, messages := range fe.Messages(t, locale) {
			fields[name] = normalizeMessages(append(fields[name], messages...))
		}
	}
	if len(fields) == 0 {
		fields = nil
	}
	return fields, MergeFormErrors(opts.FormErrors), nil
}

// ApplyValues sets values keyed by widget name on root and its descendants.
// Widgets whose name is absent from values keep their current value.
func ApplyValues(root widget.Widget, values map[string]any) error {
	if root == nil {
		return ErrNilWidget
	}
	for _, w := range append([]widget.Widget{root}, widget.Descendants(root)...) {
		raw, ok := values[w.Name()]
		if !ok {
			continue
		}
		if err := w.SetVal(raw); err != nil {
			return fmt.Errorf("render: apply value to %q: %w", w.UID(), err)
		}
	}
	return nil
}
