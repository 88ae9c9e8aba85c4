package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func acmeSelection() *theme.Selection {
	return &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				"brand":         "#123456",
				"class.control": "input",
				"class.help":    "hint",
			},
			Assets: theme.Assets{
				Prefix: "/assets/themes/acme",
				Files:  map[string]string{"stylesheet": "theme.css"},
			},
			Variants: map[string]theme.Variant{
				"dark": {
					Tokens: map[string]string{"class.control": "input input-dark"},
					Assets: theme.Assets{
						Files: map[string]string{"vendor": "vendor.dark.js"},
					},
				},
			},
		},
	}
}

func TestThemeClasses_MergesVariantTokens(t *testing.T) {
	want := map[string]string{"control": "input input-dark", "help": "hint"}
	if diff := cmp.Diff(want, render.ThemeClasses(acmeSelection())); diff != "" {
		t.Fatalf("classes mismatch (-want +got):\n%s", diff)
	}
	if got := render.ThemeClasses(nil); got != nil {
		t.Fatalf("expected nil classes, got %v", got)
	}
}

func TestThemeAssets(t *testing.T) {
	want := []string{"/assets/themes/acme/theme.css", "/assets/themes/acme/vendor.dark.js"}
	if diff := cmp.Diff(want, render.ThemeAssets(acmeSelection())); diff != "" {
		t.Fatalf("assets mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLRenderer_ThemeSelector(t *testing.T) {
	selector := &stubThemeSelector{selection: acmeSelection()}
	renderer := render.New(
		render.WithClasses(map[string]string{"control": "plain", "messages": "feedback"}),
		render.WithThemeSelector(selector, "acme", "light"),
	)

	w := widget.NewText("name", widget.TextOptions{Options: widget.Options{Help: "Full name"}})
	out, err := renderer.Render(context.Background(), w, render.Options{Variant: "dark"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, part := range []string{`class="input input-dark"`, `<small class="hint">`, `<div class="feedback">`} {
		if !strings.Contains(string(out), part) {
			t.Fatalf("missing %q in %s", part, out)
		}
	}
	if diff := cmp.Diff([]selectorCall{{name: "acme", variant: "dark"}}, selector.calls, cmp.AllowUnexported(selectorCall{})); diff != "" {
		t.Fatalf("selector calls mismatch (-want +got):\n%s", diff)
	}
}

func TestHTMLRenderer_ThemeSelectorError(t *testing.T) {
	boom := errors.New("boom")
	renderer := render.New(render.WithThemeSelector(&stubThemeSelector{err: boom}, "acme", ""))
	_, err := renderer.Render(context.Background(), widget.NewHidden("h", widget.Options{}), render.Options{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected selector error, got %v", err)
	}
}

type selectorCall struct {
	name    string
	variant string
}

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []selectorCall
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, selectorCall{name: name, variant: variant})
	return s.selection, s.err
}
