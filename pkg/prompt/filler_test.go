package prompt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidget/pkg/prompt"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

var errScriptDone = errors.New("script exhausted")

// stubDriver replays scripted answers and records what was asked.
type stubDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	multi    [][]int
	areas    []string

	asked    []string
	defaults map[string]string
	infos    []string
	inputErr error
}

func (s *stubDriver) record(message, def string) {
	s.asked = append(s.asked, message)
	if s.defaults == nil {
		s.defaults = map[string]string{}
	}
	s.defaults[message] = def
}

func (s *stubDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	s.record(cfg.Message, cfg.Default)
	if s.inputErr != nil {
		return "", s.inputErr
	}
	if len(s.inputs) == 0 {
		return "", errScriptDone
	}
	out := s.inputs[0]
	s.inputs = s.inputs[1:]
	return out, nil
}

func (s *stubDriver) Password(ctx context.Context, cfg prompt.InputConfig) (string, error) {
	return s.Input(ctx, cfg)
}

func (s *stubDriver) Confirm(_ context.Context, cfg prompt.ConfirmConfig) (bool, error) {
	s.record(cfg.Message, "")
	if len(s.confirms) == 0 {
		return false, errScriptDone
	}
	out := s.confirms[0]
	s.confirms = s.confirms[1:]
	return out, nil
}

func (s *stubDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	s.record(cfg.Message, "")
	if len(s.selects) == 0 {
		return 0, errScriptDone
	}
	out := s.selects[0]
	s.selects = s.selects[1:]
	return out, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg prompt.SelectConfig) ([]int, error) {
	s.record(cfg.Message, "")
	if len(s.multi) == 0 {
		return nil, errScriptDone
	}
	out := s.multi[0]
	s.multi = s.multi[1:]
	return out, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg prompt.TextAreaConfig) (string, error) {
	s.record(cfg.Message, cfg.Default)
	if len(s.areas) == 0 {
		return "", errScriptDone
	}
	out := s.areas[0]
	s.areas = s.areas[1:]
	return out, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func profileForm() *widget.Container {
	root := widget.NewContainer("profile", widget.ContainerOptions{})
	root.AppendChild(widget.NewText("name", widget.TextOptions{Options: widget.Options{Label: "Name", Required: true}}))
	root.AppendChild(widget.NewInteger("age", widget.NumberOptions{Options: widget.Options{Label: "Age"}}))
	root.AppendChild(widget.NewCheckbox("agree", widget.Options{Label: "Agree"}))
	root.AppendChild(widget.NewSelect("color", widget.SelectOptions{
		Options: widget.Options{Label: "Color"},
		Items:   []widget.Item{{Value: "red", Title: "Red"}, {Value: "blue", Title: "Blue"}},
	}))
	root.AppendChild(widget.NewCheckboxes("langs", widget.CheckboxesOptions{SelectOptions: widget.SelectOptions{
		Options: widget.Options{Label: "Languages"},
		Items:   []widget.Item{{Value: "go", Title: "Go"}, {Value: "py", Title: "Python"}},
	}}))
	root.AppendChild(widget.NewTextArea("bio", widget.TextAreaOptions{Options: widget.Options{Label: "Bio"}}))
	root.AppendChild(widget.NewHidden("token", widget.Options{Value: "t"}))
	root.AppendChild(widget.NewText("locked", widget.TextOptions{Options: widget.Options{Label: "Locked", Value: "keep", Disabled: true}}))
	root.AppendChild(widget.NewSubmit("save", widget.ButtonOptions{Options: widget.Options{Value: "Save"}}))
	return root
}

func TestFill_AsksEveryFieldAndRetriesOnRuleErrors(t *testing.T) {
	driver := &stubDriver{
		inputs:   []string{"", "Ann", "abc", "42"},
		confirms: []bool{true},
		selects:  []int{2},
		multi:    [][]int{{1}},
		areas:    []string{"hello"},
	}
	root := profileForm()

	if err := prompt.New(prompt.WithDriver(driver)).Fill(context.Background(), root); err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := map[string]any{
		"name":   "Ann",
		"age":    42,
		"agree":  true,
		"color":  "blue",
		"langs":  []string{"py"},
		"bio":    "hello",
		"token":  "t",
		"locked": "keep",
	}
	if diff := cmp.Diff(want, prompt.Values(root)); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	wantInfos := []string{
		"✗ Invalid Name: Value cannot be empty",
		"✗ Invalid Age: Value must be an integer",
	}
	if diff := cmp.Diff(wantInfos, driver.infos); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
	for _, skipped := range []string{"Locked", "token", "Save"} {
		if _, ok := driver.defaults[skipped]; ok {
			t.Fatalf("did not expect a prompt for %s", skipped)
		}
	}
}

func TestFill_UsesCurrentValuesAsDefaults(t *testing.T) {
	root := widget.NewContainer("form", widget.ContainerOptions{})
	root.AppendChild(widget.NewTokens("tags", widget.TokensOptions{Options: widget.Options{Label: "Tags", Value: []string{"a", "b"}}}))
	root.AppendChild(widget.NewText("pw", widget.TextOptions{Type: widget.TextPassword, Options: widget.Options{Label: "Password", Value: "secret"}}))

	driver := &stubDriver{inputs: []string{"a,b,c", "next"}}
	if err := prompt.New(prompt.WithDriver(driver)).Fill(context.Background(), root); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if got := driver.defaults["Tags"]; got != "a,b" {
		t.Fatalf("expected tokens default a,b, got %q", got)
	}
	if got := driver.defaults["Password"]; got != "" {
		t.Fatalf("password default must stay empty, got %q", got)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, prompt.Values(root)["tags"]); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func orderLines(maxRows int) *widget.MultiRow {
	return widget.NewMultiRow("lines", widget.MultiRowOptions{
		Options: widget.Options{Label: "Lines"},
		MaxRows: maxRows,
		Template: func() []widget.Widget {
			return []widget.Widget{
				widget.NewText("sku", widget.TextOptions{Options: widget.Options{Label: "Sku", Required: true}}),
				widget.NewInteger("qty", widget.NumberOptions{Options: widget.Options{Label: "Qty"}}),
			}
		},
	})
}

func TestFill_MultiRowStopsAtMaxRows(t *testing.T) {
	lines := orderLines(2)
	driver := &stubDriver{
		confirms: []bool{true, true},
		inputs:   []string{"A", "1", "B", "2"},
	}
	if err := prompt.New(prompt.WithDriver(driver)).Fill(context.Background(), lines); err != nil {
		t.Fatalf("fill: %v", err)
	}

	want := []map[string]any{{"sku": "A", "qty": 1}, {"sku": "B", "qty": 2}}
	if diff := cmp.Diff(want, lines.Rows()); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	wantAsked := []string{
		"Add a row to Lines?",
		"Lines, row 1: Sku",
		"Lines, row 1: Qty",
		"Add a row to Lines?",
		"Lines, row 2: Sku",
		"Lines, row 2: Qty",
	}
	if diff := cmp.Diff(wantAsked, driver.asked); diff != "" {
		t.Fatalf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_MultiRowListAppendsCells(t *testing.T) {
	list := widget.NewMultiRowList("tags", widget.MultiRowListOptions{MultiRowOptions: widget.MultiRowOptions{
		Options: widget.Options{Label: "Tags"},
		Template: func() []widget.Widget {
			return []widget.Widget{widget.NewText("item", widget.TextOptions{Options: widget.Options{Label: "Tag"}})}
		},
	}})
	driver := &stubDriver{confirms: []bool{true, true, false}, inputs: []string{"go", "web"}}
	if err := prompt.New(prompt.WithDriver(driver)).Fill(context.Background(), list); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if diff := cmp.Diff([]any{"go", "web"}, list.Items()); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestFill_Aborted(t *testing.T) {
	root := profileForm()
	driver := &stubDriver{inputErr: prompt.ErrAborted}
	err := prompt.New(prompt.WithDriver(driver)).Fill(context.Background(), root)
	if !errors.Is(err, prompt.ErrAborted) {
		t.Fatalf("expected aborted, got %v", err)
	}

	if err := prompt.New(prompt.WithDriver(driver)).Fill(context.Background(), nil); !errors.Is(err, prompt.ErrNilWidget) {
		t.Fatalf("expected nil widget error, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := prompt.New(prompt.WithDriver(&stubDriver{})).Fill(ctx, root); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestFill_Locale(t *testing.T) {
	root := widget.NewContainer("form", widget.ContainerOptions{})
	root.AppendChild(widget.NewText("name", widget.TextOptions{Options: widget.Options{Label: "Ім'я", Required: true}}))

	driver := &stubDriver{inputs: []string{"", "Олена"}}
	filler := prompt.New(prompt.WithDriver(driver), prompt.WithLocale("uk"), prompt.WithTheme(prompt.Theme{ErrorPrefix: "! "}))
	if err := filler.Fill(context.Background(), root); err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := []string{"! Некоректне значення Ім'я: Значення не може бути порожнім"}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}
}
