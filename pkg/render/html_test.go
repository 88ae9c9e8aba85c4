package render_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func signupForm() *widget.Container {
	root := widget.NewContainer("signup", widget.ContainerOptions{})
	root.AppendChild(widget.NewText("name", widget.TextOptions{Options: widget.Options{Label: "Name", Required: true}}))
	root.AppendChild(widget.NewInteger("age", widget.NumberOptions{Options: widget.Options{Label: "Age"}}))
	return root
}

func TestHTMLRenderer_ValuesValidationAndHidden(t *testing.T) {
	renderer := render.New()
	out, err := renderer.Render(context.Background(), signupForm(), render.Options{
		Values:     map[string]any{"name": "", "age": "41"},
		Validate:   true,
		FormErrors: []string{" Try again ", "Try again"},
		Hidden:     []render.HiddenField{render.CSRFToken("_csrf", "tok")},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	markup := string(out)

	prefix := `<div class="form-errors alert alert-danger"><div class="message">Try again</div></div>` +
		`<input type="hidden" name="_csrf" value="tok"/>` +
		`<div data-cid="container" data-uid="signup"`
	if !strings.HasPrefix(markup, prefix) {
		t.Fatalf("unexpected prefix:\n%s", markup)
	}
	for _, part := range []string{
		`<div class="widget-messages"><div class="message">Value cannot be empty</div></div>`,
		`has-error`,
		`value="41"`,
	} {
		if !strings.Contains(markup, part) {
			t.Fatalf("missing %q in %s", part, markup)
		}
	}
	if renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %s", renderer.ContentType())
	}
}

func TestHTMLRenderer_Errors(t *testing.T) {
	renderer := render.New()
	if _, err := renderer.Render(context.Background(), nil, render.Options{}); !errors.Is(err, render.ErrNilWidget) {
		t.Fatalf("expected ErrNilWidget, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := renderer.Render(ctx, signupForm(), render.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}

	_, err := renderer.Render(context.Background(), signupForm(), render.Options{Values: map[string]any{"age": []int{1}}})
	if !errors.Is(err, widget.ErrInvalidType) {
		t.Fatalf("expected type error, got %v", err)
	}
}

func TestHTMLRenderer_ClassesAndLocale(t *testing.T) {
	renderer := render.New(
		render.WithClasses(map[string]string{"control": "input"}),
		render.WithLocale("uk"),
	)
	root := widget.NewSelect("s", widget.SelectOptions{Items: []widget.Item{{Value: "a", Title: "A"}}})
	out, err := renderer.Render(context.Background(), root, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `<select id="s" name="s" class="input">`) {
		t.Fatalf("expected class override, got %s", out)
	}
	if strings.Contains(string(out), "Not selected") {
		t.Fatalf("expected localized none item, got %s", out)
	}
}

func TestRegistry(t *testing.T) {
	registry := render.NewDefaultRegistry()
	if got := registry.List(); len(got) != 2 || got[0] != render.HTMLName || got[1] != render.JSONName {
		t.Fatalf("unexpected renderers %v", got)
	}
	if err := registry.Register(render.New()); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, _, err := registry.Render(context.Background(), "pdf", signupForm(), render.Options{}); err == nil {
		t.Fatalf("expected missing renderer error")
	}
	_, contentType, err := registry.Render(context.Background(), render.JSONName, signupForm(), render.Options{})
	if err != nil || contentType != "application/json" {
		t.Fatalf("json render: %q %v", contentType, err)
	}
}
