package render_test

import (
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/testsupport"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func TestHTMLRenderer_Golden(t *testing.T) {
	root := widget.NewContainer("contact", widget.ContainerOptions{})
	root.AppendChild(widget.NewText("email", widget.TextOptions{Options: widget.Options{Label: "Email"}}))

	out, err := render.New().Render(testsupport.Context(), root, render.Options{
		FormErrors: []string{"Check the form"},
		Hidden:     []render.HiddenField{render.CSRFToken("_csrf", "abc")},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	goldenPath := filepath.Join("testdata", "contact.golden.html")
	if testsupport.WriteMaybeGolden(t, goldenPath, out) {
		return
	}
	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareGolden(string(want), string(out)); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}
