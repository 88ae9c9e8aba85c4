package widget

import (
	"strings"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/validation"
)

// MsgSelectNoneItem labels the empty option of a Select.
const MsgSelectNoneItem = "widget.select_none_item"

// Checkbox holds a bool. The HTTP pattern of a hidden input followed by the
// checkbox yields ["", "true"] when checked; the last item wins.
type Checkbox struct {
	*Base
}

// NewCheckbox builds a Checkbox. The label is rendered next to the box
// instead of above it.
func NewCheckbox(uid string, opts Options) *Checkbox {
	c := &Checkbox{Base: NewBase(uid, opts, "checkbox")}
	c.labelDisabled = true
	mustInit(c, opts.Value)
	return c
}

func (c *Checkbox) SetVal(raw any) error {
	switch v := raw.(type) {
	case nil:
		if c.def == nil {
			return c.Base.SetVal(false)
		}
		return c.SetVal(c.def)
	case []string:
		if len(v) == 0 {
			return c.Base.SetVal(false)
		}
		return c.SetVal(v[len(v)-1])
	case []any:
		if len(v) == 0 {
			return c.Base.SetVal(false)
		}
		return c.SetVal(v[len(v)-1])
	case bool:
		return c.Base.SetVal(v)
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return c.Base.SetVal(true)
		}
		return c.Base.SetVal(false)
	case int:
		return c.Base.SetVal(v != 0)
	}
	return typeError(c.uid, "bool", raw)
}

// Checked reports the current state.
func (c *Checkbox) Checked() bool {
	v, _ := c.value.(bool)
	return v
}

func (c *Checkbox) Element(rc *RenderContext) (*htmltree.Element, error) {
	box := htmltree.New("input").
		SetAttr("type", "checkbox").
		SetAttr("id", c.uid).
		SetAttr("name", c.name).
		SetAttr("value", "true").
		SetAttr("checked", c.Checked()).
		SetAttr("disabled", !c.enabled)
	label := htmltree.New("label").SetAttr("for", c.uid).Append(box).Text(c.label)

	return htmltree.New("div").
		SetAttr("class", rc.Class("checkbox", "checkbox")).
		Append(htmltree.New("input").SetAttr("type", "hidden").SetAttr("name", c.name)).
		Append(label), nil
}

// Item is one option of a Select or Checkboxes widget.
type Item struct {
	Value string
	Title string
}

// SelectOptions configures a Select.
type SelectOptions struct {
	Options
	Items []Item
	// NoNoneItem drops the leading empty option.
	NoNoneItem bool
	// Exclude hides items by value.
	Exclude []string
}

// Select is a single choice drop-down holding a string. When Items is set a
// Choice rule restricts the value to the listed items; the empty none item
// only passes when the widget is not required.
type Select struct {
	*Base
	items    []Item
	noneItem bool
	exclude  map[string]struct{}
}

// NewSelect builds a Select.
func NewSelect(uid string, opts SelectOptions) *Select {
	s := newSelect(uid, opts, "select")
	mustInit(s, opts.Value)
	return s
}

func newSelect(uid string, opts SelectOptions, kinds ...string) *Select {
	s := &Select{
		Base:     NewBase(uid, opts.Options, kinds...),
		items:    append([]Item(nil), opts.Items...),
		noneItem: !opts.NoNoneItem,
		exclude:  make(map[string]struct{}, len(opts.Exclude)),
	}
	for _, v := range opts.Exclude {
		s.exclude[v] = struct{}{}
	}
	if allowed := s.allowed(); len(allowed) > 0 {
		s.AddRule(validation.Choice{Allowed: allowed})
	}
	return s
}

// Items returns the visible items.
func (s *Select) Items() []Item {
	out := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if _, skip := s.exclude[item.Value]; skip {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *Select) allowed() []string {
	items := s.Items()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Value)
	}
	return out
}

func (s *Select) SetVal(raw any) error {
	if raw == nil {
		return s.Base.SetVal(nil)
	}
	v, err := scalarString(s.uid, raw)
	if err != nil {
		return err
	}
	return s.Base.SetVal(v)
}

func (s *Select) Element(rc *RenderContext) (*htmltree.Element, error) {
	sel := htmltree.New("select").
		SetAttr("id", s.uid).
		SetAttr("name", s.name).
		SetAttr("class", rc.Class("control", "form-control")).
		SetAttr("required", s.required).
		SetAttr("disabled", !s.enabled)

	if s.noneItem {
		none := "--- " + rc.T(s, MsgSelectNoneItem) + " ---"
		sel.Append(htmltree.New("option").SetAttr("value", "").Text(none))
	}
	current := stringValue(s.value)
	for _, item := range s.Items() {
		sel.Append(htmltree.New("option").
			SetAttr("value", item.Value).
			SetAttr("selected", item.Value == current).
			Text(item.Title))
	}
	return sel, nil
}

// CheckboxesOptions configures a Checkboxes group.
type CheckboxesOptions struct {
	SelectOptions
	// Unique drops repeated values.
	Unique bool
}

// Checkboxes is a multiple choice group holding a []string.
type Checkboxes struct {
	*Select
	unique bool
}

// NewCheckboxes builds a Checkboxes group. Its CSS signature only carries
// the checkboxes kind.
func NewCheckboxes(uid string, opts CheckboxesOptions) *Checkboxes {
	c := &Checkboxes{Select: newSelect(uid, opts.SelectOptions, "checkboxes", "select"), unique: opts.Unique}
	c.DisableKindChain()
	mustInit(c, opts.Value)
	return c
}

// SetVal accepts lists of scalars and drops blank items.
func (c *Checkboxes) SetVal(raw any) error {
	if raw == nil {
		if c.def == nil {
			return c.Base.SetVal([]string{})
		}
		raw = c.def
	}

	var items []string
	switch v := raw.(type) {
	case []string:
		items = v
	case []any:
		for _, item := range v {
			s, err := scalarString(c.uid, item)
			if err != nil {
				return err
			}
			items = append(items, s)
		}
	case string:
		items = []string{v}
	default:
		return typeError(c.uid, "list", raw)
	}

	clean := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		if c.unique {
			if _, dup := seen[item]; dup {
				continue
			}
			seen[item] = struct{}{}
		}
		clean = append(clean, item)
	}
	return c.Base.SetVal(clean)
}

func (c *Checkboxes) Element(rc *RenderContext) (*htmltree.Element, error) {
	checked := make(map[string]struct{})
	if values, ok := c.value.([]string); ok {
		for _, v := range values {
			checked[v] = struct{}{}
		}
	}

	em := htmltree.Tagless()
	em.Append(htmltree.New("input").SetAttr("type", "hidden").SetAttr("name", c.name+"[]"))
	for _, item := range c.Items() {
		_, on := checked[item.Value]
		box := htmltree.New("input").
			SetAttr("type", "checkbox").
			SetAttr("name", c.name+"[]").
			SetAttr("value", item.Value).
			SetAttr("checked", on).
			SetAttr("disabled", !c.enabled)
		em.Append(htmltree.New("div").
			SetAttr("class", rc.Class("checkbox", "checkbox")).
			Append(htmltree.New("label").Append(box).Text(item.Title)))
	}
	return em, nil
}
