package widget

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/i18n"
)

// RenderContext carries per-render collaborators. The zero value and nil are
// both usable.
type RenderContext struct {
	// Translator overrides each widget's own translator.
	Translator i18n.Translator
	// Locale overrides each widget's language.
	Locale string
	// Errors holds messages keyed by widget name, rendered into the message
	// placeholder.
	Errors map[string][]string
	// Classes overrides chrome CSS classes by key (see Class).
	Classes map[string]string
}

// T translates key for w using the context overrides, then w's own
// translator and language.
func (rc *RenderContext) T(w Widget, key string, args ...any) string {
	b := w.Core()
	t, locale := b.Translator(), b.language
	if rc != nil {
		if rc.Translator != nil {
			t = rc.Translator
		}
		if rc.Locale != "" {
			locale = rc.Locale
		}
	}
	return i18n.Text(t, locale, key, args...)
}

// Class returns the override registered for key or fallback.
func (rc *RenderContext) Class(key, fallback string) string {
	if rc == nil || rc.Classes == nil {
		return fallback
	}
	if v, ok := rc.Classes[key]; ok {
		return v
	}
	return fallback
}

func (rc *RenderContext) errorsFor(name string) []string {
	if rc == nil || rc.Errors == nil {
		return nil
	}
	return rc.Errors[name]
}

// Renderable builds the wrapper element for w: metadata attributes, the CSS
// class signature, then label, kind element, help block and message
// placeholder in that order.
func Renderable(w Widget, rc *RenderContext) (*htmltree.Element, error) {
	if w == nil || w.Core() == nil {
		return nil, structural("render", "", "", "nil widget")
	}
	b := w.Core()
	messages := rc.errorsFor(b.name)

	wrap := htmltree.New("div")
	wrap.SetAttr("data-cid", b.Kind())
	wrap.SetAttr("data-uid", b.uid)
	wrap.SetAttr("data-weight", b.weight)
	wrap.SetAttr("data-form-area", b.formArea)
	wrap.SetAttr("data-hidden", b.hidden)
	wrap.SetAttr("data-enabled", b.enabled)
	if b.parentUID != "" {
		wrap.SetAttr("data-parent-uid", b.parentUID)
	}
	if len(b.assets) > 0 {
		wrap.SetAttr("data-assets", strings.Join(b.assets, ","))
	}
	if len(b.jsModules) > 0 {
		wrap.SetAttr("data-js-modules", strings.Join(b.jsModules, ","))
	}
	if b.replaces != "" {
		wrap.SetAttr("data-replaces", b.replaces)
	}
	wrap.SetAttr("class", classSignature(b, rc, len(messages) > 0))

	em, err := w.Element(rc)
	if err != nil {
		return nil, fmt.Errorf("widget %q: %w", b.uid, err)
	}

	keys := make([]string, 0, len(b.data))
	for k := range b.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		wrap.SetAttr("data-"+k, b.data[k])
	}

	if em == nil || em.Empty() {
		return wrap, nil
	}

	if b.label != "" && !b.labelDisabled {
		label := htmltree.New("label").SetAttr("for", b.uid).Text(b.label)
		if b.labelHidden {
			label.AddCSS("sr-only")
		}
		wrap.Append(label)
	}

	wrap.Append(em)

	if b.help != "" {
		wrap.Append(htmltree.New("small").
			SetAttr("class", rc.Class("help", "help-block form-text text-muted")).
			Text(b.help))
	}

	if b.hasMessages {
		box := htmltree.New("div").SetAttr("class", rc.Class("messages", "widget-messages"))
		for _, msg := range messages {
			box.Append(htmltree.New("div").SetAttr("class", rc.Class("message", "message")).Text(msg))
		}
		wrap.Append(box)
	}

	return wrap, nil
}

// Render serialises Renderable(w, rc).
func Render(w Widget, rc *RenderContext) (string, error) {
	em, err := Renderable(w, rc)
	if err != nil {
		return "", err
	}
	return em.Render()
}

func classSignature(b *Base, rc *RenderContext, failed bool) string {
	tokens := []string{rc.Class("widget", "widget")}
	kinds := b.kinds
	if !b.kindChain {
		kinds = kinds[:1]
	}
	for _, kind := range kinds {
		tokens = append(tokens, "widget-"+kind)
	}
	tokens = append(tokens, "widget-uid-"+b.uid)
	if b.css != "" {
		tokens = append(tokens, b.css)
	}
	if b.formGroup {
		tokens = append(tokens, rc.Class("form_group", "form-group"))
	}
	if b.hidden {
		tokens = append(tokens, "hidden sr-only")
	}
	if b.hasMessages {
		if b.hasSuccess {
			tokens = append(tokens, "has-success")
		}
		if b.hasWarning {
			tokens = append(tokens, "has-warning")
		}
		if b.hasError || failed {
			tokens = append(tokens, rc.Class("error", "has-error"))
		}
	}
	return strings.Join(strings.Fields(strings.Join(tokens, " ")), " ")
}

// renderChildren appends the renderables of w's children to target.
func renderChildren(w Widget, rc *RenderContext, target *htmltree.Element) error {
	for _, c := range w.Core().Children() {
		em, err := Renderable(c, rc)
		if err != nil {
			return err
		}
		target.Append(em)
	}
	return nil
}
