package widget_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func render(t *testing.T, w widget.Widget, rc *widget.RenderContext) string {
	t.Helper()
	out, err := widget.Render(w, rc)
	if err != nil {
		t.Fatalf("render %s: %v", w.UID(), err)
	}
	return out
}

func TestRender_TextWrapper(t *testing.T) {
	w := text("name", widget.Options{Label: "Name", Value: "x"})

	want := `<div data-cid="text" data-uid="name" data-weight="0" data-form-area="body" data-hidden="false" data-enabled="true" class="widget widget-text widget-uid-name form-group">` +
		`<label for="name">Name</label>` +
		`<input type="text" id="name" name="name" value="x" class="form-control"/>` +
		`<div class="widget-messages"></div>` +
		`</div>`
	if got := render(t, w, nil); got != want {
		t.Fatalf("unexpected markup:\nwant %s\ngot  %s", want, got)
	}
}

func TestRender_FixedPartOrder(t *testing.T) {
	w := text("email", widget.Options{Label: "Email", Help: "We never share it", LabelHidden: true})
	rc := &widget.RenderContext{Errors: map[string][]string{"email": {"Bad address"}}}
	out := render(t, w, rc)

	parts := []string{
		`<label for="email" class="sr-only">Email</label>`,
		`<input type="text" id="email"`,
		`<small class="help-block form-text text-muted">We never share it</small>`,
		`<div class="widget-messages"><div class="message">Bad address</div></div>`,
	}
	last := -1
	for _, part := range parts {
		idx := strings.Index(out, part)
		if idx < 0 {
			t.Fatalf("missing %q in %s", part, out)
		}
		if idx < last {
			t.Fatalf("part %q out of order in %s", part, out)
		}
		last = idx
	}
	if !strings.Contains(out, "has-error") {
		t.Fatalf("expected has-error class in %s", out)
	}
}

func TestRender_Metadata(t *testing.T) {
	root := widget.NewContainer("root", widget.ContainerOptions{})
	child := root.AppendChild(text("a", widget.Options{
		Replaces:  "old",
		Assets:    []string{"a.css", "b.css"},
		JSModules: []string{"mod"},
		Data:      map[string]string{"role": "x"},
		Disabled:  true,
		Hidden:    true,
	}))

	out := render(t, child, nil)
	for _, attr := range []string{
		`data-parent-uid="root"`,
		`data-replaces="old"`,
		`data-assets="a.css,b.css"`,
		`data-js-modules="mod"`,
		`data-role="x"`,
		`data-enabled="false"`,
		`data-hidden="true"`,
		`data-weight="100"`,
		`hidden sr-only`,
		` disabled=""`,
	} {
		if !strings.Contains(out, attr) {
			t.Fatalf("missing %s in %s", attr, out)
		}
	}
}

func TestRender_KindChainSignature(t *testing.T) {
	email := widget.NewText("e", widget.TextOptions{Type: widget.TextEmail})
	if out := render(t, email, nil); !strings.Contains(out, `class="widget widget-email widget-text widget-uid-e form-group"`) {
		t.Fatalf("unexpected email signature: %s", out)
	}

	boxes := widget.NewCheckboxes("c", widget.CheckboxesOptions{})
	if out := render(t, boxes, nil); !strings.Contains(out, `class="widget widget-checkboxes widget-uid-c form-group"`) {
		t.Fatalf("expected checkboxes chain to be disabled: %s", out)
	}
}

func TestRender_EmptyElementYieldsBareWrapper(t *testing.T) {
	out := render(t, emptyWidget{widget.NewBase("blank", widget.Options{Label: "Blank"}, "blank")}, nil)
	if strings.Contains(out, "<label") || strings.Contains(out, "widget-messages") {
		t.Fatalf("expected bare wrapper, got %s", out)
	}
	if !strings.HasPrefix(out, `<div data-cid="blank"`) {
		t.Fatalf("unexpected wrapper %s", out)
	}
}

type emptyWidget struct {
	*widget.Base
}

func (emptyWidget) Element(*widget.RenderContext) (*htmltree.Element, error) {
	return nil, nil
}

func TestRender_ContainerChildrenInWeightOrder(t *testing.T) {
	root := widget.NewContainer("root", widget.ContainerOptions{BodyCSS: "row"})
	root.AppendChild(text("late", widget.Options{Weight: 300}))
	root.AppendChild(text("early", widget.Options{Weight: 100}))

	out := render(t, root, nil)
	if !strings.Contains(out, `<div class="children row">`) {
		t.Fatalf("missing children wrapper in %s", out)
	}
	if strings.Index(out, `data-uid="early"`) > strings.Index(out, `data-uid="late"`) {
		t.Fatalf("children out of order: %s", out)
	}
	if strings.Contains(out, "widget-uid-root form-group") {
		t.Fatalf("container must not be a form group: %s", out)
	}
}

func TestRender_Card(t *testing.T) {
	card := widget.NewCard("card", widget.CardOptions{Header: "Head", Footer: "Foot"})
	card.AppendChild(text("a", widget.Options{}))

	out := render(t, card, nil)
	for _, part := range []string{
		`<div class="card-header">Head</div>`,
		`<div class="card-body children">`,
		`<div class="card-footer">Foot</div>`,
		`widget-card widget-container`,
	} {
		if !strings.Contains(out, part) {
			t.Fatalf("missing %q in %s", part, out)
		}
	}
	if strings.Index(out, "card-header") > strings.Index(out, "card-footer") {
		t.Fatalf("header must precede footer: %s", out)
	}
}

func TestRender_ClassOverridesAndTranslator(t *testing.T) {
	catalog, err := i18n.NewCatalog(i18n.WithFallback("en"))
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	catalog.Add("en", map[string]string{widget.MsgSelectNoneItem: "Pick one"})

	sel := widget.NewSelect("s", widget.SelectOptions{Items: []widget.Item{{Value: "a", Title: "A"}}})
	rc := &widget.RenderContext{
		Translator: catalog,
		Locale:     "en",
		Classes:    map[string]string{"control": "input", "form_group": "field"},
	}
	out := render(t, sel, rc)
	for _, part := range []string{`class="input"`, `--- Pick one ---`, ` field"`} {
		if !strings.Contains(out, part) {
			t.Fatalf("missing %q in %s", part, out)
		}
	}
}
