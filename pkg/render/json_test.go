package render_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func TestJSONRenderer_DescribesTree(t *testing.T) {
	root := signupForm()
	out, err := render.NewJSON().Render(context.Background(), root, render.Options{
		Validate: true,
		Hidden:   []render.HiddenField{render.VersionField("version", 3)},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc render.Document
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := render.Document{
		Hidden: []render.HiddenField{{Name: "version", Value: "3"}},
		Root: render.Node{
			UID: "signup", Kind: "container", Kinds: []string{"container"}, Name: "signup", FormArea: "body",
			Children: []render.Node{
				{
					UID: "name", Kind: "text", Kinds: []string{"text"}, Name: "name", Weight: 100,
					FormArea: "body", Label: "Name", Required: true, Errors: []string{"Value cannot be empty"},
				},
				{
					UID: "age", Kind: "integer", Kinds: []string{"integer", "number"}, Name: "age", Weight: 200,
					FormArea: "body", Label: "Age", Value: float64(0),
				},
			},
		},
	}
	if diff := cmp.Diff(want, doc, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestDescribe_RecordsMetadata(t *testing.T) {
	w := widget.NewText("a", widget.TextOptions{Options: widget.Options{Disabled: true, Hidden: true, Replaces: "old"}})
	node := render.Describe(w)
	if !node.Disabled || !node.Hidden || node.Replaces != "old" {
		t.Fatalf("unexpected node %+v", node)
	}
}
