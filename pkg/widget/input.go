package widget

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/validation"
)

// Hidden is an <input type="hidden">.
type Hidden struct {
	*Base
}

// NewHidden builds a Hidden widget.
func NewHidden(uid string, opts Options) *Hidden {
	h := &Hidden{Base: NewBase(uid, opts, "hidden")}
	h.hidden = true
	h.formGroup = false
	h.hasMessages = false
	mustInit(h, opts.Value)
	return h
}

func (h *Hidden) Element(*RenderContext) (*htmltree.Element, error) {
	return htmltree.New("input").
		SetAttr("type", "hidden").
		SetAttr("id", h.uid).
		SetAttr("name", h.name).
		SetAttr("value", stringValue(h.value)).
		SetAttr("required", h.required), nil
}

// TextType selects the input type of a Text widget.
type TextType string

const (
	TextPlain    TextType = "text"
	TextPassword TextType = "password"
	TextEmail    TextType = "email"
	TextURL      TextType = "url"
)

// TextOptions configures a Text widget.
type TextOptions struct {
	Options
	// Type defaults to TextPlain. Email and URL add the matching rule.
	Type TextType
	// MaxLength adds a maxlength attribute and a MaxLength rule.
	MaxLength int
	// Prepend and Append wrap the input in an input group.
	Prepend string
	Append  string
}

// Text is a single line text input. Its value is a string.
type Text struct {
	*Base
	inputType string
	maxLength int
	prepend   string
	append    string
}

// NewText builds a Text widget.
func NewText(uid string, opts TextOptions) *Text {
	kind := "text"
	if opts.Type != "" && opts.Type != TextPlain {
		kind = string(opts.Type)
	}
	kinds := []string{"text"}
	if kind != "text" {
		kinds = []string{kind, "text"}
	}
	return newText(uid, opts, kinds...)
}

func newText(uid string, opts TextOptions, kinds ...string) *Text {
	t := &Text{
		Base:      NewBase(uid, opts.Options, kinds...),
		inputType: string(TextPlain),
		maxLength: opts.MaxLength,
		prepend:   opts.Prepend,
		append:    opts.Append,
	}
	switch opts.Type {
	case TextPassword:
		t.inputType = string(TextPassword)
	case TextEmail:
		t.inputType = string(TextEmail)
		t.AddRule(validation.Email{})
	case TextURL:
		t.inputType = string(TextURL)
		t.AddRule(validation.URL{})
	}
	if t.maxLength > 0 {
		t.AddRule(validation.MaxLength{Max: t.maxLength})
	}
	mustInit(t, opts.Value)
	return t
}

// SetVal accepts scalars and stores their string form.
func (t *Text) SetVal(raw any) error {
	if raw == nil {
		return t.Base.SetVal(nil)
	}
	s, err := scalarString(t.uid, raw)
	if err != nil {
		return err
	}
	return t.Base.SetVal(s)
}

func (t *Text) Element(rc *RenderContext) (*htmltree.Element, error) {
	inp := htmltree.New("input").
		SetAttr("type", t.inputType).
		SetAttr("id", t.uid).
		SetAttr("name", t.name).
		SetAttr("value", stringValue(t.value)).
		SetAttr("class", rc.Class("control", "form-control")).
		SetAttr("required", t.required).
		SetAttr("disabled", !t.enabled)
	if t.placeholder != "" {
		inp.SetAttr("placeholder", t.placeholder)
	}
	if t.maxLength > 0 {
		inp.SetAttr("maxlength", t.maxLength)
	}
	return inputGroup(rc, inp, t.prepend, t.append), nil
}

func inputGroup(rc *RenderContext, inp *htmltree.Element, prepend, appendix string) *htmltree.Element {
	if prepend == "" && appendix == "" {
		return inp
	}
	group := htmltree.New("div").SetAttr("class", rc.Class("input_group", "input-group"))
	if prepend != "" {
		group.Append(htmltree.New("div").SetAttr("class", rc.Class("input_addon", "input-group-addon")).Text(prepend))
	}
	group.Append(inp)
	if appendix != "" {
		group.Append(htmltree.New("div").SetAttr("class", rc.Class("input_addon", "input-group-addon")).Text(appendix))
	}
	return group
}

// TextAreaOptions configures a TextArea.
type TextAreaOptions struct {
	Options
	// Rows defaults to 5.
	Rows      int
	MaxLength int
}

// TextArea is a multi-line text input.
type TextArea struct {
	*Base
	rows      int
	maxLength int
}

// NewTextArea builds a TextArea.
func NewTextArea(uid string, opts TextAreaOptions) *TextArea {
	t := &TextArea{Base: NewBase(uid, opts.Options, "textarea"), rows: opts.Rows, maxLength: opts.MaxLength}
	if t.rows <= 0 {
		t.rows = 5
	}
	if t.maxLength > 0 {
		t.AddRule(validation.MaxLength{Max: t.maxLength})
	}
	mustInit(t, opts.Value)
	return t
}

// SetVal accepts scalars and stores their string form.
func (t *TextArea) SetVal(raw any) error {
	if raw == nil {
		return t.Base.SetVal(nil)
	}
	s, err := scalarString(t.uid, raw)
	if err != nil {
		return err
	}
	return t.Base.SetVal(s)
}

func (t *TextArea) Element(rc *RenderContext) (*htmltree.Element, error) {
	em := htmltree.New("textarea").
		SetAttr("id", t.uid).
		SetAttr("name", t.name).
		SetAttr("class", rc.Class("control", "form-control")).
		SetAttr("rows", t.rows).
		SetAttr("required", t.required).
		SetAttr("disabled", !t.enabled).
		Text(stringValue(t.value))
	if t.placeholder != "" {
		em.SetAttr("placeholder", t.placeholder)
	}
	if t.maxLength > 0 {
		em.SetAttr("maxlength", t.maxLength)
	}
	return em, nil
}

// NumberOptions configures Integer and Decimal widgets.
type NumberOptions struct {
	Options
	// Min and Max add GreaterOrEqual and LessOrEqual rules.
	Min        *float64
	Max        *float64
	AllowMinus bool
	Prepend    string
	Append     string
}

type number struct {
	*Base
	prepend string
	append  string
}

func newNumber(uid string, opts NumberOptions, kinds ...string) number {
	if opts.Default == nil {
		opts.Default = 0
	}
	n := number{Base: NewBase(uid, opts.Options, kinds...), prepend: opts.Prepend, append: opts.Append}
	if opts.AllowMinus {
		n.SetData("allow-minus", "true")
	}
	if opts.Min != nil {
		n.AddRule(validation.GreaterOrEqual{Than: *opts.Min})
	}
	if opts.Max != nil {
		n.AddRule(validation.LessOrEqual{Than: *opts.Max})
	}
	return n
}

func (n number) element(rc *RenderContext) *htmltree.Element {
	inp := htmltree.New("input").
		SetAttr("type", "tel").
		SetAttr("id", n.uid).
		SetAttr("name", n.name).
		SetAttr("value", stringValue(n.value)).
		SetAttr("class", rc.Class("control", "form-control")).
		SetAttr("required", n.required).
		SetAttr("disabled", !n.enabled)
	if n.placeholder != "" {
		inp.SetAttr("placeholder", n.placeholder)
	}
	return inputGroup(rc, inp, n.prepend, n.append)
}

// Integer holds an int. Strings are parsed; blank strings mean the default.
// Unparseable strings are kept as is so the Integer rule reports them.
type Integer struct {
	number
}

// NewInteger builds an Integer widget. The default defaults to 0.
func NewInteger(uid string, opts NumberOptions) *Integer {
	w := &Integer{number: newNumber(uid, opts, "integer", "number")}
	w.AddRule(validation.Integer{})
	mustInit(w, opts.Value)
	return w
}

func (w *Integer) SetVal(raw any) error {
	switch v := raw.(type) {
	case nil:
		return w.Base.SetVal(nil)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return w.Base.SetVal(nil)
		}
		if n, err := strconv.Atoi(s); err == nil {
			return w.Base.SetVal(n)
		}
		return w.Base.SetVal(s)
	case float32:
		return w.setFloat(float64(v))
	case float64:
		return w.setFloat(v)
	}
	if n, ok := intValue(raw); ok {
		return w.Base.SetVal(n)
	}
	return typeError(w.uid, "integer", raw)
}

// intValue converts the Go integer kinds to int. It fails on other types and
// on values that do not fit in int.
func intValue(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint8:
		return int(v), true
	case uint16:
		return int(v), true
	case uint32:
		if uint64(v) > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint:
		if uint64(v) > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

// floatValue converts the Go integer kinds to float64.
func floatValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func (w *Integer) setFloat(f float64) error {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return w.Base.SetVal(int(f))
	}
	return w.Base.SetVal(f)
}

func (w *Integer) Element(rc *RenderContext) (*htmltree.Element, error) {
	return w.element(rc), nil
}

// Decimal holds a float64. Strings are parsed; blank strings mean the
// default.
type Decimal struct {
	number
}

// NewDecimal builds a Decimal widget. The default defaults to 0.
func NewDecimal(uid string, opts NumberOptions) *Decimal {
	switch d := opts.Default.(type) {
	case nil:
		opts.Default = 0.0
	case int:
		opts.Default = float64(d)
	}
	w := &Decimal{number: newNumber(uid, opts, "decimal", "number")}
	w.AddRule(validation.Decimal{})
	mustInit(w, opts.Value)
	return w
}

func (w *Decimal) SetVal(raw any) error {
	switch v := raw.(type) {
	case nil:
		return w.Base.SetVal(nil)
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return w.Base.SetVal(nil)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return w.Base.SetVal(f)
		}
		return w.Base.SetVal(s)
	case float64:
		return w.Base.SetVal(v)
	case float32:
		return w.Base.SetVal(float64(v))
	}
	if f, ok := floatValue(raw); ok {
		return w.Base.SetVal(f)
	}
	return typeError(w.uid, "decimal", raw)
}

func (w *Decimal) Element(rc *RenderContext) (*htmltree.Element, error) {
	return w.element(rc), nil
}

// TokensOptions configures a Tokens widget.
type TokensOptions struct {
	Options
	LocalSource  string
	RemoteSource string
}

// Tokens edits a []string as a comma separated string.
type Tokens struct {
	*Base
}

// NewTokens builds a Tokens widget.
func NewTokens(uid string, opts TokensOptions) *Tokens {
	t := &Tokens{Base: NewBase(uid, opts.Options, "tokens", "text")}
	if opts.LocalSource != "" {
		t.SetData("local-source", opts.LocalSource)
	}
	if opts.RemoteSource != "" {
		t.SetData("remote-source", opts.RemoteSource)
	}
	mustInit(t, opts.Value)
	return t
}

// SetVal accepts a comma separated string or a list of scalars. Blank
// tokens are dropped.
func (t *Tokens) SetVal(raw any) error {
	if raw == nil {
		if t.def == nil {
			return t.Base.SetVal([]string{})
		}
		raw = t.def
	}
	var items []string
	switch v := raw.(type) {
	case string:
		items = strings.Split(v, ",")
	case []string:
		items = v
	case []any:
		for _, item := range v {
			s, err := scalarString(t.uid, item)
			if err != nil {
				return err
			}
			items = append(items, s)
		}
	default:
		return typeError(t.uid, "comma separated string or list", raw)
	}

	clean := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			clean = append(clean, item)
		}
	}
	return t.Base.SetVal(clean)
}

func (t *Tokens) Element(rc *RenderContext) (*htmltree.Element, error) {
	tokens, _ := t.value.([]string)
	inp := htmltree.New("input").
		SetAttr("type", "text").
		SetAttr("id", t.uid).
		SetAttr("name", t.name).
		SetAttr("value", strings.Join(tokens, ",")).
		SetAttr("class", rc.Class("control", "form-control")).
		SetAttr("required", t.required).
		SetAttr("disabled", !t.enabled)
	if t.placeholder != "" {
		inp.SetAttr("placeholder", t.placeholder)
	}
	return inp, nil
}

func scalarString(uid string, raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", typeError(uid, "scalar", raw)
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	s, err := scalarString("", v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}
