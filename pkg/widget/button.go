package widget

import (
	"strings"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
)

// ButtonOptions configures Button, Submit and Link widgets. The button
// caption is the widget value.
type ButtonOptions struct {
	Options
	// Icon holds icon CSS classes rendered in an <i> after the caption.
	Icon string
	// Colors become btn-* classes; defaults to default and secondary.
	Colors []string
	// Dismiss is emitted as data-dismiss.
	Dismiss string
	// Href is used by Link; defaults to "#".
	Href string
}

// Button is a plain <button type="button">.
type Button struct {
	*Base
	tag     string
	typ     string
	href    string
	icon    string
	colors  []string
	dismiss string
}

// NewButton builds a Button.
func NewButton(uid string, opts ButtonOptions) *Button {
	return newButton(uid, opts, "button", "button", "button")
}

// NewSubmit builds a submit button.
func NewSubmit(uid string, opts ButtonOptions) *Button {
	return newButton(uid, opts, "button", "submit", "submit", "button")
}

// NewLink builds a button styled anchor.
func NewLink(uid string, opts ButtonOptions) *Button {
	b := newButton(uid, opts, "a", "", "link", "button")
	b.href = opts.Href
	if b.href == "" {
		b.href = "#"
	}
	return b
}

func newButton(uid string, opts ButtonOptions, tag, typ string, kinds ...string) *Button {
	b := &Button{
		Base:    NewBase(uid, opts.Options, kinds...),
		tag:     tag,
		typ:     typ,
		icon:    opts.Icon,
		colors:  opts.Colors,
		dismiss: opts.Dismiss,
	}
	if len(b.colors) == 0 {
		b.colors = []string{"default", "secondary"}
	}
	b.AddCSS("inline")
	b.formGroup = false
	b.hasMessages = false
	mustInit(b, opts.Value)
	return b
}

func (b *Button) Href() string { return b.href }

func (b *Button) SetHref(href string) { b.href = href }

func (b *Button) Element(rc *RenderContext) (*htmltree.Element, error) {
	classes := []string{"btn"}
	for _, c := range b.colors {
		classes = append(classes, "btn-"+c)
	}

	em := htmltree.New(b.tag).
		SetAttr("id", b.uid).
		SetAttr("class", rc.Class("button", strings.Join(classes, " "))).
		Text(stringValue(b.value))
	if b.typ != "" {
		em.SetAttr("type", b.typ)
	}
	if b.tag == "a" {
		em.SetAttr("href", b.href)
	} else {
		em.SetAttr("disabled", !b.enabled)
	}
	if b.dismiss != "" {
		em.SetAttr("data-dismiss", b.dismiss)
	}
	if b.icon != "" {
		em.Append(htmltree.New("i").SetAttr("class", b.icon))
	}
	return em, nil
}
