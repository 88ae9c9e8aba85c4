package prompt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits a JSON object keyed by widget name.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatForm emits the urlencoded body a browser would post for
	// the rendered form.
	OutputFormatForm OutputFormat = "form"
	// OutputFormatPretty emits one "name=value" line per field.
	OutputFormatPretty OutputFormat = "pretty"
)

// Renderer fills a widget tree on the terminal and renders the collected
// submission. It implements render.Renderer.
type Renderer struct {
	filler *Filler
	format OutputFormat
}

// NewRenderer wraps filler. An empty format selects JSON.
func NewRenderer(filler *Filler, format OutputFormat) *Renderer {
	if filler == nil {
		filler = New()
	}
	if format == "" {
		format = OutputFormatJSON
	}
	return &Renderer{filler: filler, format: format}
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string {
	switch r.format {
	case OutputFormatForm:
		return "application/x-www-form-urlencoded"
	case OutputFormatPretty:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render applies opts.Values as prompt defaults, asks for every field and
// serializes the result.
func (r *Renderer) Render(ctx context.Context, root widget.Widget, opts render.Options) ([]byte, error) {
	if root == nil {
		return nil, ErrNilWidget
	}
	if len(opts.Values) > 0 {
		if err := render.ApplyValues(root, opts.Values); err != nil {
			return nil, err
		}
	}
	if err := r.filler.Fill(ctx, root); err != nil {
		return nil, err
	}
	switch r.format {
	case OutputFormatForm:
		return []byte(FormValues(root).Encode()), nil
	case OutputFormatPretty:
		return []byte(pretty(Values(root))), nil
	default:
		out, err := json.Marshal(Values(root))
		if err != nil {
			return nil, fmt.Errorf("prompt: encode values: %w", err)
		}
		return out, nil
	}
}

// Values returns the bound value of every field widget keyed by name.
// Layout widgets and nil values are left out.
func Values(root widget.Widget) map[string]any {
	out := map[string]any{}
	for _, w := range fields(root) {
		if v := w.Val(); v != nil {
			out[w.Name()] = v
		}
	}
	return out
}

// FormValues encodes the tree the way the HTML renderer's inputs post it:
// checkbox groups and lists as name[], row tables as name[column][].
func FormValues(root widget.Widget) url.Values {
	out := url.Values{}
	for _, w := range fields(root) {
		name := w.Name()
		switch v := w.(type) {
		case *widget.Checkbox:
			if v.Checked() {
				out.Set(name, "true")
			} else {
				out.Set(name, "")
			}
		case *widget.Checkboxes:
			vals, _ := v.Val().([]string)
			out[name+"[]"] = append([]string(nil), vals...)
		case *widget.MultiRowList:
			for _, item := range v.Items() {
				out.Add(name+"[]", display(item))
			}
		case *widget.MultiRow:
			cells, err := v.NewRow()
			if err != nil {
				continue
			}
			for _, row := range v.Rows() {
				for _, cell := range cells {
					out.Add(name+"["+cell.Name()+"][]", display(row[cell.Name()]))
				}
			}
		default:
			out.Set(name, display(w.Val()))
		}
	}
	return out
}

func fields(root widget.Widget) []widget.Widget {
	if root == nil {
		return nil
	}
	var out []widget.Widget
	for _, w := range append([]widget.Widget{root}, widget.Descendants(root)...) {
		switch w.(type) {
		case *widget.Container, *widget.Card, *widget.Button, *widget.HTML:
			continue
		}
		out = append(out, w)
	}
	return out
}

func pretty(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		writePretty(&b, key, values[key])
	}
	return b.String()
}

func writePretty(b *strings.Builder, prefix string, value any) {
	switch v := value.(type) {
	case []map[string]any:
		for idx, row := range v {
			keys := make([]string, 0, len(row))
			for key := range row {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				writePretty(b, fmt.Sprintf("%s[%d].%s", prefix, idx, key), row[key])
			}
		}
	case []any:
		for idx, item := range v {
			writePretty(b, fmt.Sprintf("%s[%d]", prefix, idx), item)
		}
	default:
		fmt.Fprintf(b, "%s=%s\n", prefix, display(v))
	}
}
