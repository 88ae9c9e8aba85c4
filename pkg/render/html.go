package render

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

const (
	HTMLName        = "html"
	htmlContentType = "text/html; charset=utf-8"
)

// HTMLRenderer renders a widget tree to markup through widget.Renderable.
type HTMLRenderer struct {
	cfg config
}

// New constructs an HTML renderer.
func New(options ...Option) *HTMLRenderer {
	return &HTMLRenderer{cfg: newConfig(options)}
}

func (r *HTMLRenderer) Name() string { return HTMLName }

func (r *HTMLRenderer) ContentType() string { return htmlContentType }

// Render emits form-level errors, hidden inputs and then the root wrapper.
func (r *HTMLRenderer) Render(ctx context.Context, root widget.Widget, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if root == nil {
		return nil, ErrNilWidget
	}

	locale := r.cfg.localeFor(opts)
	fields, formErrors, err := prepare(root, opts, r.cfg.translator, locale)
	if err != nil {
		return nil, err
	}
	classes, err := r.cfg.resolveClasses(opts)
	if err != nil {
		return nil, err
	}

	rc := &widget.RenderContext{
		Translator: r.cfg.translator,
		Locale:     locale,
		Errors:     fields,
		Classes:    classes,
	}

	out := htmltree.Tagless()
	if len(formErrors) > 0 {
		box := htmltree.New("div").SetAttr("class", rc.Class("form_errors", "form-errors alert alert-danger"))
		for _, message := range formErrors {
			box.Append(htmltree.New("div").SetAttr("class", rc.Class("message", "message")).Text(message))
		}
		out.Append(box)
	}
	for _, field := range SortedHiddenFields(MergeHiddenFields(nil, opts.Hidden...)) {
		out.Append(field.Element())
	}

	el, err := widget.Renderable(root, rc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out.Append(el)

	markup, err := out.Render()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return []byte(markup), nil
}
