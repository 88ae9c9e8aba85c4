package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func TestCollectAssets(t *testing.T) {
	root := widget.NewContainer("root", widget.ContainerOptions{Options: widget.Options{Assets: []string{"form.css"}}})
	root.AppendChild(widget.NewText("a", widget.TextOptions{Options: widget.Options{Assets: []string{"a.css", "form.css"}, JSModules: []string{"mask"}}}))
	root.AppendChild(widget.NewMultiRow("rows", widget.MultiRowOptions{
		Options: widget.Options{JSModules: []string{"mask"}},
		Template: func() []widget.Widget {
			return []widget.Widget{widget.NewText("x", widget.TextOptions{})}
		},
	}))

	got := render.CollectAssets(root)
	want := render.Assets{
		Files:     []string{"form.css", "a.css"},
		JSModules: []string{"mask", "widget-multi-row"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("assets mismatch (-want +got):\n%s", diff)
	}
}
