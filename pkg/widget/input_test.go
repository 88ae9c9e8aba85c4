package widget_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidget/pkg/validation"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func TestInteger_SetVal(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want any
	}{
		{name: "string", raw: " 42 ", want: 42},
		{name: "blank uses default", raw: "", want: 0},
		{name: "nil uses default", raw: nil, want: 0},
		{name: "integral float", raw: 3.0, want: 3},
		{name: "int64", raw: int64(9), want: 9},
		{name: "uint8", raw: uint8(3), want: 3},
		{name: "uint64", raw: uint64(7), want: 7},
		{name: "unparseable kept for validation", raw: "abc", want: "abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := widget.NewInteger("n", widget.NumberOptions{})
			if err := w.SetVal(tc.raw); err != nil {
				t.Fatalf("set val: %v", err)
			}
			if diff := cmp.Diff(tc.want, w.Val()); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}

	w := widget.NewInteger("n", widget.NumberOptions{})
	if err := w.SetVal([]int{1}); !errors.Is(err, widget.ErrInvalidType) {
		t.Fatalf("expected type error, got %v", err)
	}
	if err := w.SetVal(uint64(math.MaxUint64)); !errors.Is(err, widget.ErrInvalidType) {
		t.Fatalf("expected overflow type error, got %v", err)
	}
	_ = w.SetVal("abc")
	if ruleErr, ok := validation.AsRuleError(w.Validate()); !ok || ruleErr.MessageID != validation.MsgInteger {
		t.Fatalf("expected integer rule failure, got %v", ruleErr)
	}
}

func TestDecimal_SetValIntegerKinds(t *testing.T) {
	w := widget.NewDecimal("price", widget.NumberOptions{})
	for _, raw := range []any{uint64(5), int32(5), uint(5), 5} {
		if err := w.SetVal(raw); err != nil {
			t.Fatalf("set val %T: %v", raw, err)
		}
		if diff := cmp.Diff(5.0, w.Val()); diff != "" {
			t.Fatalf("value mismatch for %T (-want +got):\n%s", raw, diff)
		}
	}
	if err := w.SetVal(true); !errors.Is(err, widget.ErrInvalidType) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestNumber_MinMaxRules(t *testing.T) {
	lo, hi := 1.0, 10.0
	w := widget.NewDecimal("price", widget.NumberOptions{Min: &lo, Max: &hi, AllowMinus: true})

	if err := w.SetVal("12.5"); err != nil {
		t.Fatalf("set val: %v", err)
	}
	if w.Val() != 12.5 {
		t.Fatalf("expected 12.5, got %#v", w.Val())
	}
	ruleErr, ok := validation.AsRuleError(w.Validate())
	if !ok || ruleErr.MessageID != validation.MsgLessOrEqual {
		t.Fatalf("expected less-or-equal failure, got %v", ruleErr)
	}

	if err := w.SetVal(5); err != nil {
		t.Fatalf("set val: %v", err)
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
	if w.Data()["allow-minus"] != "true" {
		t.Fatalf("expected allow-minus data attribute")
	}
	if err := w.SetVal(nil); err != nil || w.Val() != 0.0 {
		t.Fatalf("expected float default, got %#v (%v)", w.Val(), err)
	}
}

func TestText_Types(t *testing.T) {
	email := widget.NewText("mail", widget.TextOptions{Type: widget.TextEmail, Options: widget.Options{Value: "bad"}})
	if ruleErr, ok := validation.AsRuleError(email.Validate()); !ok || ruleErr.MessageID != validation.MsgEmail {
		t.Fatalf("expected email failure, got %v", ruleErr)
	}

	link := widget.NewText("site", widget.TextOptions{Type: widget.TextURL, Options: widget.Options{Value: "https://example.com"}})
	if err := link.Validate(); err != nil {
		t.Fatalf("expected valid url, got %v", err)
	}

	pass := widget.NewText("pw", widget.TextOptions{Type: widget.TextPassword, MaxLength: 3, Options: widget.Options{Value: 1234}})
	if pass.Val() != "1234" {
		t.Fatalf("expected scalar coerced to string, got %#v", pass.Val())
	}
	if ruleErr, ok := validation.AsRuleError(pass.Validate()); !ok || ruleErr.MessageID != validation.MsgMaxLength {
		t.Fatalf("expected max length failure, got %v", ruleErr)
	}
	out := render(t, pass, nil)
	if !strings.Contains(out, `type="password"`) || !strings.Contains(out, `maxlength="3"`) {
		t.Fatalf("unexpected password markup %s", out)
	}

	grouped := widget.NewText("price", widget.TextOptions{Prepend: "$", Append: ".00"})
	out = render(t, grouped, nil)
	if !strings.Contains(out, `<div class="input-group"><div class="input-group-addon">$</div><input`) {
		t.Fatalf("expected input group, got %s", out)
	}
}

func TestTokens(t *testing.T) {
	w := widget.NewTokens("tags", widget.TokensOptions{RemoteSource: "/tags"})
	if err := w.SetVal("go, web,, api "); err != nil {
		t.Fatalf("set val: %v", err)
	}
	if diff := cmp.Diff([]string{"go", "web", "api"}, w.Val()); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	out := render(t, w, nil)
	if !strings.Contains(out, `value="go,web,api"`) || !strings.Contains(out, `data-remote-source="/tags"`) {
		t.Fatalf("unexpected tokens markup %s", out)
	}
	if err := w.SetVal(map[string]any{}); !errors.Is(err, widget.ErrInvalidType) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestCheckbox_HTTPPattern(t *testing.T) {
	w := widget.NewCheckbox("agree", widget.Options{Label: "I agree"})
	cases := []struct {
		raw  any
		want bool
	}{
		{raw: []string{"", "true"}, want: true},
		{raw: []string{""}, want: false},
		{raw: "", want: false},
		{raw: "True", want: true},
		{raw: []any{}, want: false},
		{raw: true, want: true},
	}
	for _, tc := range cases {
		if err := w.SetVal(tc.raw); err != nil {
			t.Fatalf("set val %#v: %v", tc.raw, err)
		}
		if w.Checked() != tc.want {
			t.Fatalf("raw %#v: want %v, got %v", tc.raw, tc.want, w.Checked())
		}
	}

	out := render(t, w, nil)
	if strings.Contains(out, `<label for="agree">I agree</label><div`) {
		t.Fatalf("label must render beside the box, got %s", out)
	}
	if !strings.Contains(out, `<input type="hidden" name="agree"/><label for="agree"><input type="checkbox" id="agree" name="agree" value="true" checked=""/>I agree</label>`) {
		t.Fatalf("unexpected checkbox markup %s", out)
	}
}

func TestSelect(t *testing.T) {
	items := []widget.Item{{Value: "a", Title: "Alpha"}, {Value: "b", Title: "Beta"}, {Value: "c", Title: "Gamma"}}
	w := widget.NewSelect("letter", widget.SelectOptions{Items: items, Exclude: []string{"c"}, Options: widget.Options{Value: "b"}})

	out := render(t, w, nil)
	for _, part := range []string{
		`<option value="">--- Not selected ---</option>`,
		`<option value="b" selected="">Beta</option>`,
	} {
		if !strings.Contains(out, part) {
			t.Fatalf("missing %q in %s", part, out)
		}
	}
	if strings.Contains(out, "Gamma") {
		t.Fatalf("excluded item rendered: %s", out)
	}

	_ = w.SetVal("c")
	if ruleErr, ok := validation.AsRuleError(w.Validate()); !ok || ruleErr.MessageID != validation.MsgChoice {
		t.Fatalf("expected choice failure for excluded value, got %v", ruleErr)
	}

	_ = w.SetVal("")
	if err := w.Validate(); err != nil {
		t.Fatalf("optional select accepts the none item, got %v", err)
	}
	w.SetRequired(true)
	if ruleErr, ok := validation.AsRuleError(w.Validate()); !ok || ruleErr.MessageID != validation.MsgNonEmpty {
		t.Fatalf("required select rejects the none item, got %v", ruleErr)
	}
}

func TestCheckboxes(t *testing.T) {
	w := widget.NewCheckboxes("langs", widget.CheckboxesOptions{
		SelectOptions: widget.SelectOptions{Items: []widget.Item{{Value: "go", Title: "Go"}, {Value: "py", Title: "Python"}}},
		Unique:        true,
	})
	if err := w.SetVal([]any{"", "go", "go"}); err != nil {
		t.Fatalf("set val: %v", err)
	}
	if diff := cmp.Diff([]string{"go"}, w.Val()); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}

	out := render(t, w, nil)
	if !strings.Contains(out, `<input type="checkbox" name="langs[]" value="go" checked=""/>Go`) {
		t.Fatalf("expected go checked, got %s", out)
	}
	if !strings.Contains(out, `<input type="checkbox" name="langs[]" value="py"/>Python`) {
		t.Fatalf("expected py unchecked, got %s", out)
	}
	if err := w.SetVal(3); !errors.Is(err, widget.ErrInvalidType) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestStaticAndHTML(t *testing.T) {
	st := widget.NewStaticText("info", widget.StaticTextOptions{Text: "Read only", Options: widget.Options{Value: "v"}})
	out := render(t, st, nil)
	if !strings.Contains(out, `<input type="hidden" id="info" name="info" value="v"/><p class="form-control-static">Read only</p>`) {
		t.Fatalf("unexpected static markup %s", out)
	}

	h := widget.NewHTML("note", widget.HTMLOptions{Markup: `<b class="x">ok</b><script>alert(1)</script>`})
	out = render(t, h, nil)
	if !strings.Contains(out, `<b class="x">ok</b>`) || strings.Contains(out, "script") {
		t.Fatalf("expected sanitised markup, got %s", out)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty markup")
		}
	}()
	widget.NewHTML("empty", widget.HTMLOptions{})
}

func TestButtons(t *testing.T) {
	submit := widget.NewSubmit("save", widget.ButtonOptions{Options: widget.Options{Value: "Save"}})
	out := render(t, submit, nil)
	if !strings.Contains(out, `<button id="save" class="btn btn-default btn-secondary" type="submit">Save</button>`) {
		t.Fatalf("unexpected submit markup %s", out)
	}
	if strings.Contains(out, "form-group") || strings.Contains(out, "widget-messages") {
		t.Fatalf("buttons carry no group or messages: %s", out)
	}

	link := widget.NewLink("back", widget.ButtonOptions{Options: widget.Options{Value: "Back"}, Colors: []string{"link"}, Icon: "fa fa-arrow-left"})
	out = render(t, link, nil)
	if !strings.Contains(out, `<a id="back" class="btn btn-link" href="#">Back<i class="fa fa-arrow-left"></i></a>`) {
		t.Fatalf("unexpected link markup %s", out)
	}
}
