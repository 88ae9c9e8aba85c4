package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formwidget/pkg/widget"
)

// Transformer mutates a built widget tree before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, root *widget.Container) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, root *widget.Container) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, root *widget.Container) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, root)
}

// PresetTransformer applies declarative patches loaded from a YAML (or JSON)
// document. Widgets are addressed by uid:
//
//	remove: [reference]
//	widgets:
//	  customer:
//	    label: Customer name
//	    weight: 5
//	    data: {role: primary}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Remove  []string               `yaml:"remove"`
	Widgets map[string]widgetPatch `yaml:"widgets"`
}

type widgetPatch struct {
	Label       string            `yaml:"label"`
	Help        string            `yaml:"help"`
	Placeholder string            `yaml:"placeholder"`
	CSS         string            `yaml:"css"`
	Weight      *int              `yaml:"weight"`
	Hidden      *bool             `yaml:"hidden"`
	Disabled    *bool             `yaml:"disabled"`
	Required    *bool             `yaml:"required"`
	Data        map[string]string `yaml:"data"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform removes the listed widgets, then patches the rest in uid order.
// Unknown uids are an error.
func (t *PresetTransformer) Transform(ctx context.Context, root *widget.Container) error {
	if root == nil {
		return errors.New("preset transformer: root widget is nil")
	}

	for _, uid := range t.document.Remove {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, ok := widget.Find(root, uid)
		if !ok {
			return fmt.Errorf("preset transformer: widget %q not found", uid)
		}
		parent, ok := widget.Parent(root, target)
		if !ok {
			return fmt.Errorf("preset transformer: cannot remove root %q", uid)
		}
		if err := parent.Core().RemoveChild(uid); err != nil {
			return fmt.Errorf("preset transformer: %w", err)
		}
	}

	uids := make([]string, 0, len(t.document.Widgets))
	for uid := range t.document.Widgets {
		uids = append(uids, uid)
	}
	sort.Strings(uids)
	for _, uid := range uids {
		if err := ctx.Err(); err != nil {
			return err
		}
		target, ok := widget.Find(root, uid)
		if !ok {
			return fmt.Errorf("preset transformer: widget %q not found", uid)
		}
		applyPatch(target.Core(), t.document.Widgets[uid])
	}
	return nil
}

func applyPatch(b *widget.Base, patch widgetPatch) {
	if patch.Label != "" {
		b.SetLabel(patch.Label)
	}
	if patch.Help != "" {
		b.SetHelp(patch.Help)
	}
	if patch.Placeholder != "" {
		b.SetPlaceholder(patch.Placeholder)
	}
	if patch.CSS != "" {
		b.AddCSS(patch.CSS)
	}
	if patch.Weight != nil {
		b.SetWeight(*patch.Weight)
	}
	if patch.Hidden != nil {
		if *patch.Hidden {
			b.Hide()
		} else {
			b.Show()
		}
	}
	if patch.Disabled != nil {
		b.SetEnabled(!*patch.Disabled)
	}
	if patch.Required != nil {
		b.SetRequired(*patch.Required)
	}
	for key, value := range patch.Data {
		b.SetData(key, value)
	}
}
