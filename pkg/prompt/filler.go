package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/validation"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

// Message keys used by the prompt flows.
const (
	MsgAddRow  = "prompt.add_row"
	MsgInvalid = "prompt.invalid"
	MsgRow     = "prompt.row"
)

// Filler asks for the value of every enabled, visible field of a widget
// tree on a terminal. Values are bound with SetVal and checked with Validate;
// rule failures are reported and the question is asked again.
type Filler struct {
	driver     Driver
	translator i18n.Translator
	locale     string
	theme      Theme
}

// New builds a Filler. Without WithDriver it asks through survey on the
// process terminal.
func New(options ...Option) *Filler {
	f := &Filler{
		translator: i18n.Default(),
		theme:      Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt != nil {
			opt(f)
		}
	}
	if f.driver == nil {
		f.driver = NewSurveyDriver(nil)
	}
	return f
}

// Fill prompts for root and its descendants in tree order.
func (f *Filler) Fill(ctx context.Context, root widget.Widget) error {
	if root == nil {
		return ErrNilWidget
	}
	for _, w := range append([]widget.Widget{root}, widget.Descendants(root)...) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !askable(w) {
			continue
		}
		if err := f.ask(ctx, w, label(w)); err != nil {
			if errors.Is(err, ErrAborted) || errors.Is(err, context.Canceled) {
				return err
			}
			return fmt.Errorf("prompt: %s: %w", w.UID(), err)
		}
	}
	return nil
}

func askable(w widget.Widget) bool {
	b := w.Core()
	return b.Enabled() && !b.Hidden()
}

func label(w widget.Widget) string {
	if title := w.Core().Title(); title != "" {
		return title
	}
	return w.Name()
}

func (f *Filler) ask(ctx context.Context, w widget.Widget, message string) error {
	help := w.Core().Help()
	switch v := w.(type) {
	case *widget.Checkbox:
		return f.until(ctx, w, message, func() (any, error) {
			return f.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: v.Checked(), Help: help})
		})
	case *widget.Checkboxes:
		return f.until(ctx, w, message, func() (any, error) {
			return f.askMany(ctx, v, message, help)
		})
	case *widget.Select:
		return f.until(ctx, w, message, func() (any, error) {
			return f.askOne(ctx, v, message, help)
		})
	case *widget.TextArea:
		return f.until(ctx, w, message, func() (any, error) {
			return f.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: display(w.Val()), Help: help})
		})
	case *widget.Text, *widget.Integer, *widget.Decimal, *widget.Tokens:
		return f.until(ctx, w, message, func() (any, error) {
			cfg := InputConfig{Message: message, Help: help, Validator: f.validator(w)}
			if w.Core().Kind() == string(widget.TextPassword) {
				return f.driver.Password(ctx, cfg)
			}
			cfg.Default = display(w.Val())
			return f.driver.Input(ctx, cfg)
		})
	case *widget.MultiRowList:
		return f.askList(ctx, v, message)
	case *widget.MultiRow:
		return f.askRows(ctx, v, message)
	}
	return nil
}

// until repeats read until its answer binds and validates.
func (f *Filler) until(ctx context.Context, w widget.Widget, message string, read func() (any, error)) error {
	for {
		answer, err := read()
		if err != nil {
			return err
		}
		err = bind(w, answer)
		if err == nil {
			return nil
		}
		if err := f.report(ctx, message, err); err != nil {
			return err
		}
	}
}

func bind(w widget.Widget, answer any) error {
	if err := w.SetVal(answer); err != nil {
		return err
	}
	return w.Validate()
}

// report prints a rule failure. Any other error is returned.
func (f *Filler) report(ctx context.Context, message string, err error) error {
	msg, ok := f.message(err)
	if !ok {
		return err
	}
	notice := i18n.Text(f.translator, f.locale, MsgInvalid, map[string]any{"label": message, "msg": msg})
	return f.driver.Info(ctx, f.theme.ErrorPrefix+notice)
}

func (f *Filler) message(err error) (string, bool) {
	ruleErr, ok := validation.AsRuleError(err)
	if !ok {
		return "", false
	}
	return ruleErr.Message(f.translator, f.locale), true
}

// validator checks answers while the terminal prompt is still open.
func (f *Filler) validator(w widget.Widget) func(string) error {
	return func(answer string) error {
		err := bind(w, answer)
		if msg, ok := f.message(err); ok {
			return errors.New(msg)
		}
		return err
	}
}

func (f *Filler) askOne(ctx context.Context, s *widget.Select, message, help string) (any, error) {
	items := s.Items()
	options := make([]string, 0, len(items)+1)
	values := make([]string, 0, len(items)+1)
	if !s.Required() {
		none := i18n.Text(f.translator, f.locale, widget.MsgSelectNoneItem)
		options = append(options, "--- "+none+" ---")
		values = append(values, "")
	}
	current := display(s.Val())
	def := 0
	for _, item := range items {
		if item.Value == current {
			def = len(values)
		}
		options = append(options, item.Title)
		values = append(values, item.Value)
	}
	idx, err := f.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: def, Help: help})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

func (f *Filler) askMany(ctx context.Context, c *widget.Checkboxes, message, help string) (any, error) {
	items := c.Items()
	current := map[string]struct{}{}
	if vals, ok := c.Val().([]string); ok {
		for _, v := range vals {
			current[v] = struct{}{}
		}
	}
	options := make([]string, len(items))
	var defaults []int
	for i, item := range items {
		options[i] = item.Title
		if _, ok := current[item.Value]; ok {
			defaults = append(defaults, i)
		}
	}
	picked, err := f.driver.MultiSelect(ctx, SelectConfig{Message: message, Options: options, Defaults: defaults, Help: help})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx >= 0 && idx < len(items) {
			out = append(out, items[idx].Value)
		}
	}
	return out, nil
}

// askRows collects rows one at a time, starting from the stored ones, until
// the user declines another row or MaxRows is reached. A failing table
// starts over from an empty one.
func (f *Filler) askRows(ctx context.Context, m *widget.MultiRow, message string) error {
	rows := m.Rows()
	for {
		for f.roomFor(m, len(rows)) {
			more, err := f.moreRows(ctx, m, message, len(rows))
			if err != nil {
				return err
			}
			if !more {
				break
			}
			cells, err := f.askRow(ctx, m, message, len(rows)+1)
			if err != nil {
				return err
			}
			row := make(map[string]any, len(cells))
			for _, cell := range cells {
				row[cell.Name()] = cell.Val()
			}
			rows = append(rows, row)
		}
		err := bind(m, rows)
		if err == nil {
			return nil
		}
		if err := f.report(ctx, message, err); err != nil {
			return err
		}
		rows = nil
	}
}

// askList is askRows for a flat list; each row appends its cells in
// template order.
func (f *Filler) askList(ctx context.Context, m *widget.MultiRowList, message string) error {
	items := m.Items()
	count := 0
	if probe, err := m.NewRow(); err == nil && len(probe) > 0 {
		count = (len(items) + len(probe) - 1) / len(probe)
	}
	for {
		for f.roomFor(m.MultiRow, count) {
			more, err := f.moreRows(ctx, m.MultiRow, message, count)
			if err != nil {
				return err
			}
			if !more {
				break
			}
			cells, err := f.askRow(ctx, m.MultiRow, message, count+1)
			if err != nil {
				return err
			}
			for _, cell := range cells {
				items = append(items, cell.Val())
			}
			count++
		}
		err := bind(m, items)
		if err == nil {
			return nil
		}
		if err := f.report(ctx, message, err); err != nil {
			return err
		}
		items, count = nil, 0
	}
}

func (f *Filler) roomFor(m *widget.MultiRow, rows int) bool {
	return m.MaxRows() <= 0 || rows < m.MaxRows()
}

func (f *Filler) moreRows(ctx context.Context, m *widget.MultiRow, message string, rows int) (bool, error) {
	return f.driver.Confirm(ctx, ConfirmConfig{
		Message: i18n.Text(f.translator, f.locale, MsgAddRow, map[string]any{"label": message}),
		Default: rows == 0 && m.Required(),
		Help:    m.Help(),
	})
}

func (f *Filler) askRow(ctx context.Context, m *widget.MultiRow, message string, index int) ([]widget.Widget, error) {
	cells, err := m.NewRow()
	if err != nil {
		return nil, err
	}
	for _, cell := range cells {
		if !askable(cell) {
			continue
		}
		prefix := i18n.Text(f.translator, f.locale, MsgRow, map[string]any{"label": message, "row_index": index})
		if err := f.ask(ctx, cell, prefix+": "+label(cell)); err != nil {
			return nil, err
		}
	}
	return cells, nil
}

// display renders a widget value as a prompt default.
func display(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []string:
		return strings.Join(val, ",")
	}
	return fmt.Sprint(v)
}
