package widget

import (
	"strings"

	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/validation"
)

// Widget is the capability every widget kind implements. Kinds embed *Base,
// which supplies identity, value storage, rules and tree operations; they
// provide Element and override SetVal/Validate where coercion or aggregation
// is needed.
type Widget interface {
	Core() *Base
	UID() string
	Name() string
	SetVal(raw any) error
	Val() any
	Validate() error
	// Element builds the kind-specific markup. A nil or empty element makes
	// Renderable return the bare wrapper.
	Element(rc *RenderContext) (*htmltree.Element, error)
}

// Base holds the state shared by all kinds.
type Base struct {
	uid   string
	name  string
	kinds []string
	// kindChain controls whether every kind in the chain contributes a CSS
	// token or only the most specific one.
	kindChain bool

	weight   int
	def      any
	value    any
	required bool
	rules    []validation.Rule

	label         string
	title         string
	labelHidden   bool
	labelDisabled bool
	placeholder   string
	help          string
	css           string
	data          map[string]string

	hidden    bool
	enabled   bool
	formGroup bool
	formArea  string
	replaces  string
	assets    []string
	jsModules []string

	hasMessages bool
	hasSuccess  bool
	hasWarning  bool
	hasError    bool

	language   string
	translator i18n.Translator

	parentUID string
	attached  bool
	seq       int

	children   []Widget
	lastWeight int
	nextSeq    int
}

// NewBase builds the shared state for a widget kind. kinds lists the kind
// chain, most specific first. It panics with a *StructuralError when uid is
// empty.
func NewBase(uid string, opts Options, kinds ...string) *Base {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		panic(structural("new", "", "", "uid is required"))
	}
	if len(kinds) == 0 {
		kinds = []string{"widget"}
	}

	b := &Base{
		uid:           uid,
		name:          opts.Name,
		kinds:         append([]string(nil), kinds...),
		kindChain:     true,
		weight:        opts.Weight,
		def:           opts.Default,
		label:         opts.Label,
		title:         opts.Title,
		labelHidden:   opts.LabelHidden,
		labelDisabled: opts.LabelDisabled,
		placeholder:   opts.Placeholder,
		help:          opts.Help,
		css:           opts.CSS,
		hidden:        opts.Hidden,
		enabled:       !opts.Disabled,
		formGroup:     true,
		formArea:      opts.FormArea,
		replaces:      opts.Replaces,
		assets:        append([]string(nil), opts.Assets...),
		jsModules:     append([]string(nil), opts.JSModules...),
		hasMessages:   !opts.NoMessages,
		hasSuccess:    opts.HasSuccess,
		hasWarning:    opts.HasWarning,
		hasError:      opts.HasError,
		language:      opts.Language,
		translator:    opts.Translator,
		rules:         append([]validation.Rule(nil), opts.Rules...),
	}
	if b.name == "" {
		b.name = uid
	}
	if b.formArea == "" {
		b.formArea = DefaultFormArea
	}
	if len(opts.Data) > 0 {
		b.data = make(map[string]string, len(opts.Data))
		for k, v := range opts.Data {
			b.data[k] = v
		}
	}
	if opts.Required {
		b.SetRequired(true)
	}
	b.value = deepcopy.Copy(b.def)
	return b
}

// mustInit routes the initial value through the kind's own SetVal.
func mustInit(w Widget, raw any) {
	if raw == nil {
		raw = deepcopy.Copy(w.Core().def)
	}
	if err := w.SetVal(raw); err != nil {
		panic(err)
	}
}

// Core returns b; it lets kinds satisfy Widget through embedding.
func (b *Base) Core() *Base { return b }

func (b *Base) UID() string { return b.uid }

func (b *Base) Name() string { return b.name }

func (b *Base) SetName(name string) { b.name = name }

// Kind returns the most specific kind name.
func (b *Base) Kind() string { return b.kinds[0] }

// Kinds returns the kind chain, most specific first.
func (b *Base) Kinds() []string { return append([]string(nil), b.kinds...) }

// DisableKindChain limits the CSS signature to the most specific kind.
func (b *Base) DisableKindChain() { b.kindChain = false }

func (b *Base) Weight() int { return b.weight }

func (b *Base) SetWeight(weight int) { b.weight = weight }

// Default returns the default value. Callers must not mutate it.
func (b *Base) Default() any { return b.def }

// Val returns the stored value.
func (b *Base) Val() any { return b.value }

// SetVal stores raw; nil stores a deep copy of the default.
func (b *Base) SetVal(raw any) error {
	if raw == nil {
		b.value = deepcopy.Copy(b.def)
		return nil
	}
	b.value = raw
	return nil
}

// ClearVal resets the value to a copy of the default.
func (b *Base) ClearVal() {
	b.value = deepcopy.Copy(b.def)
}

// Validate runs the rules in insertion order and returns the first failure.
func (b *Base) Validate() error {
	return b.validateRules(b.value)
}

func (b *Base) validateRules(value any) error {
	for _, rule := range b.rules {
		if err := rule.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

func (b *Base) AddRule(rule validation.Rule) {
	if rule != nil {
		b.rules = append(b.rules, rule)
	}
}

func (b *Base) AddRules(rules ...validation.Rule) {
	for _, rule := range rules {
		b.AddRule(rule)
	}
}

// Rules returns a copy of the rule list.
func (b *Base) Rules() []validation.Rule {
	return append([]validation.Rule(nil), b.rules...)
}

func (b *Base) ClearRules() { b.rules = nil }

func (b *Base) Required() bool { return b.required }

// SetRequired keeps exactly one NonEmpty rule when true and removes every
// NonEmpty rule when false.
func (b *Base) SetRequired(required bool) {
	kept := b.rules[:0:0]
	for _, rule := range b.rules {
		if isNonEmpty(rule) {
			continue
		}
		kept = append(kept, rule)
	}
	if required {
		kept = append(kept, validation.NonEmpty{})
	}
	b.rules = kept
	b.required = required
}

func isNonEmpty(rule validation.Rule) bool {
	switch rule.(type) {
	case validation.NonEmpty, *validation.NonEmpty:
		return true
	}
	return false
}

func (b *Base) Label() string { return b.label }

func (b *Base) SetLabel(label string) { b.label = label }

// Title returns the title, falling back to the label.
func (b *Base) Title() string {
	if b.title != "" {
		return b.title
	}
	return b.label
}

func (b *Base) SetTitle(title string) { b.title = title }

func (b *Base) Placeholder() string { return b.placeholder }

func (b *Base) SetPlaceholder(placeholder string) { b.placeholder = placeholder }

func (b *Base) Help() string { return b.help }

func (b *Base) SetHelp(help string) { b.help = help }

func (b *Base) CSS() string { return b.css }

func (b *Base) SetCSS(css string) { b.css = css }

// AddCSS appends classes to the wrapper class list.
func (b *Base) AddCSS(css string) {
	css = strings.TrimSpace(css)
	if css == "" {
		return
	}
	if b.css == "" {
		b.css = css
		return
	}
	b.css += " " + css
}

// Data returns the custom data-* attributes.
func (b *Base) Data() map[string]string { return b.data }

func (b *Base) SetData(key, value string) {
	if b.data == nil {
		b.data = make(map[string]string)
	}
	b.data[key] = value
}

func (b *Base) Hidden() bool { return b.hidden }

func (b *Base) Hide() { b.hidden = true }

func (b *Base) Show() { b.hidden = false }

func (b *Base) Enabled() bool { return b.enabled }

func (b *Base) SetEnabled(enabled bool) { b.enabled = enabled }

func (b *Base) FormGroup() bool { return b.formGroup }

func (b *Base) SetFormGroup(formGroup bool) { b.formGroup = formGroup }

// FormArea returns the area inherited from the parent at attachment.
func (b *Base) FormArea() string { return b.formArea }

func (b *Base) Replaces() string { return b.replaces }

func (b *Base) SetReplaces(uid string) { b.replaces = uid }

func (b *Base) Assets() []string { return append([]string(nil), b.assets...) }

func (b *Base) AddAsset(asset string) { b.assets = appendUnique(b.assets, asset) }

func (b *Base) JSModules() []string { return append([]string(nil), b.jsModules...) }

func (b *Base) AddJSModule(module string) { b.jsModules = appendUnique(b.jsModules, module) }

func (b *Base) HasMessages() bool { return b.hasMessages }

func (b *Base) SetHasMessages(v bool) { b.hasMessages = v }

func (b *Base) SetHasSuccess(v bool) { b.hasSuccess = v }

func (b *Base) SetHasWarning(v bool) { b.hasWarning = v }

func (b *Base) SetHasError(v bool) { b.hasError = v }

func (b *Base) Language() string { return b.language }

func (b *Base) SetLanguage(language string) { b.language = language }

// Translator returns the configured translator or the default catalog.
func (b *Base) Translator() i18n.Translator {
	if b.translator != nil {
		return b.translator
	}
	return i18n.Default()
}

func (b *Base) SetTranslator(t i18n.Translator) { b.translator = t }

// ParentUID returns the uid of the owning widget, empty when detached.
func (b *Base) ParentUID() string { return b.parentUID }

// Attached reports whether the widget belongs to a parent.
func (b *Base) Attached() bool { return b.attached }

func appendUnique(list []string, item string) []string {
	item = strings.TrimSpace(item)
	if item == "" {
		return list
	}
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
