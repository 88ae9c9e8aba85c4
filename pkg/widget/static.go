package widget

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

func defaultMarkupPolicy() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Globally()
		markupPolicy = policy
	})
	return markupPolicy
}

// StaticTextOptions configures a StaticText.
type StaticTextOptions struct {
	Options
	Text string
}

// StaticText shows read-only text and submits its value through a hidden
// input.
type StaticText struct {
	*Base
	text string
}

// NewStaticText builds a StaticText.
func NewStaticText(uid string, opts StaticTextOptions) *StaticText {
	s := &StaticText{Base: NewBase(uid, opts.Options, "static-text"), text: opts.Text}
	s.AddCSS("widget-static-control")
	mustInit(s, opts.Value)
	return s
}

func (s *StaticText) Text() string { return s.text }

func (s *StaticText) SetText(text string) { s.text = text }

func (s *StaticText) Element(rc *RenderContext) (*htmltree.Element, error) {
	p := htmltree.New("p").
		SetAttr("class", rc.Class("static", "form-control-static")).
		Text(s.text)
	if s.title != "" {
		p.SetAttr("title", s.title)
	}
	return htmltree.Tagless().
		Append(htmltree.New("input").
			SetAttr("type", "hidden").
			SetAttr("id", s.uid).
			SetAttr("name", s.name).
			SetAttr("value", stringValue(s.value))).
		Append(p), nil
}

// HTMLOptions configures an HTML widget.
type HTMLOptions struct {
	Options
	// Markup is required.
	Markup string
	// Policy sanitises Markup; nil means a UGC policy that keeps classes.
	Policy *bluemonday.Policy
}

// HTML renders a sanitised markup fragment.
type HTML struct {
	*Base
	markup string
	policy *bluemonday.Policy
}

// NewHTML builds an HTML widget. It panics with a *StructuralError when the
// markup is empty.
func NewHTML(uid string, opts HTMLOptions) *HTML {
	if strings.TrimSpace(opts.Markup) == "" {
		panic(structural("new", uid, "", "markup is required"))
	}
	h := &HTML{Base: NewBase(uid, opts.Options, "html"), markup: opts.Markup, policy: opts.Policy}
	if h.policy == nil {
		h.policy = defaultMarkupPolicy()
	}
	h.formGroup = false
	h.hasMessages = false
	mustInit(h, opts.Value)
	return h
}

func (h *HTML) Element(*RenderContext) (*htmltree.Element, error) {
	return htmltree.Raw(h.policy.Sanitize(h.markup))
}
