package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

func errorTree() widget.Widget {
	root := widget.NewContainer("form", widget.ContainerOptions{})
	root.AppendChild(widget.NewText("name", widget.TextOptions{}))
	root.AppendChild(widget.NewText("owner-email", widget.TextOptions{Options: widget.Options{Name: "owner[email]"}}))
	root.AppendChild(widget.NewMultiRow("contacts", widget.MultiRowOptions{
		Template: func() []widget.Widget {
			return []widget.Widget{widget.NewText("phone", widget.TextOptions{})}
		},
	}))
	return root
}

func TestMapErrorPayload_WidgetNames(t *testing.T) {
	payload := map[string][]string{
		"/body/name":                {"Name is required"},
		"name":                      {" Name is required "},
		"body.owner.email":          {"Email invalid"},
		"$.body.contacts[1][phone]": {"Phone malformed"},
		"non_field_errors":          {"Form level error"},
		"request/body/unknown":      {"Should fall back to form errors"},
		"":                          {"Unscoped form error"},
	}

	mapped := render.MapErrorPayload(errorTree(), payload)

	wantFields := map[string][]string{
		"name":         {"Name is required"},
		"owner[email]": {"Email invalid"},
		"contacts":     {"Phone malformed"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Form level error", "Should fall back to form errors", "Unscoped form error"}
	if diff := cmp.Diff(wantForm, mapped.Form, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_RowPaths(t *testing.T) {
	root := widget.NewContainer("form", widget.ContainerOptions{})
	root.AppendChild(widget.NewMultiRow("rows", widget.MultiRowOptions{
		Template: func() []widget.Widget {
			return []widget.Widget{
				widget.NewText("a", widget.TextOptions{}),
				widget.NewText("b", widget.TextOptions{}),
			}
		},
	}))
	root.AppendChild(widget.NewMultiRowList("tags", widget.MultiRowListOptions{MultiRowOptions: widget.MultiRowOptions{
		Template: func() []widget.Widget {
			return []widget.Widget{widget.NewText("tag", widget.TextOptions{})}
		},
	}}))

	tests := []struct {
		path string
		want string
	}{
		{"rows[1][b]", "rows"},
		{"rows[b][]", "rows"},
		{"/rows/0/a", "rows"},
		{"$.body.rows[2].b", "rows"},
		{"tags[3]", "tags"},
		{"data.attributes.tags.0", "tags"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			mapped := render.MapErrorPayload(root, map[string][]string{tt.path: {"bad row"}})
			want := map[string][]string{tt.want: {"bad row"}}
			if diff := cmp.Diff(want, mapped.Fields); diff != "" {
				t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
			}
			if len(mapped.Form) != 0 {
				t.Fatalf("expected no form errors, got %v", mapped.Form)
			}
		})
	}

	mapped := render.MapErrorPayload(root, map[string][]string{"rowsx[0][a]": {"unknown"}})
	if diff := cmp.Diff([]string{"unknown"}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(errorTree(), nil)
	if len(mapped.Fields) != 0 || len(mapped.Form) != 0 {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
