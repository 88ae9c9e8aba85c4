package schemaform

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formwidget/pkg/widget"
)

// Built-in widget kinds known to the registry.
const (
	KindCheckbox     = "checkbox"
	KindCheckboxes   = "checkboxes"
	KindSelect       = "select"
	KindMultiRow     = "multi-row"
	KindMultiRowList = "multi-row-list"
	KindTokens       = "tokens"
	KindCard         = "card"
	KindInteger      = "integer"
	KindDecimal      = "decimal"
	KindEmail        = "email"
	KindURL          = "url"
	KindPassword     = "password"
	KindTextArea     = "textarea"
	KindText         = "text"
	KindHidden       = "hidden"
	KindStatic       = "static"
)

// WidgetExtension names the schema extension that forces a widget kind.
const WidgetExtension = "x-widget"

// Matcher decides whether a kind should handle the field.
type Matcher func(f Field) bool

// Factory builds the widget for a field. Builders recurse through b for
// nested properties.
type Factory func(b *Builder, f Field) (widget.Widget, error)

type rule struct {
	kind     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widget kinds for schema fields. An explicit x-widget
// extension wins; otherwise the highest priority matcher wins and ties fall
// back to registration order.
type Registry struct {
	mu        sync.RWMutex
	rules     []rule
	factories map[string]Factory
}

// NewRegistry constructs a registry with the built-in kinds registered.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	r.registerBuiltins()
	return r
}

// NewEmptyRegistry constructs a registry without any kinds.
func NewEmptyRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a kind. A nil matcher registers a kind that is only chosen
// through x-widget. Registering an existing kind replaces its factory.
func (r *Registry) Register(kind string, priority int, match Matcher, factory Factory) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("schemaform: kind is required")
	}
	if factory == nil {
		return fmt.Errorf("schemaform: kind %q: factory is required", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[kind] = factory
	if match != nil {
		r.rules = append(r.rules, rule{kind: kind, priority: priority, match: match, order: len(r.rules)})
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(kind string, priority int, match Matcher, factory Factory) {
	if err := r.Register(kind, priority, match, factory); err != nil {
		panic(err)
	}
}

// Resolve returns the kind for f.
func (r *Registry) Resolve(f Field) (string, bool) {
	if explicit := f.Extension(WidgetExtension); explicit != "" {
		return explicit, true
	}

	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(f) {
			return entry.kind, true
		}
	}
	return "", false
}

// Factory returns the factory registered for kind.
func (r *Registry) Factory(kind string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[kind]
	return factory, ok
}

// Kinds lists the registered kinds.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func (r *Registry) registerBuiltins() {
	r.MustRegister(KindCheckbox, 90, func(f Field) bool {
		return f.Is("boolean")
	}, buildCheckbox)

	r.MustRegister(KindCheckboxes, 85, func(f Field) bool {
		items := f.Items()
		return f.Is("array") && items != nil && len(items.Enum) > 0
	}, buildCheckboxes)

	r.MustRegister(KindSelect, 80, func(f Field) bool {
		return !f.Is("array") && !f.Is("object") && len(f.Schema.Enum) > 0
	}, buildSelect)

	r.MustRegister(KindMultiRow, 70, func(f Field) bool {
		items := f.Items()
		return f.Is("array") && items != nil && (schemaIs(items, "object") || len(items.Properties) > 0)
	}, buildMultiRow)

	r.MustRegister(KindTokens, 65, func(f Field) bool {
		items := f.Items()
		return f.Is("array") && (items == nil || schemaIs(items, "string"))
	}, buildTokens)

	r.MustRegister(KindMultiRowList, 60, func(f Field) bool {
		return f.Is("array")
	}, buildMultiRowList)

	r.MustRegister(KindCard, 50, func(f Field) bool {
		return f.Is("object") || len(f.Schema.Properties) > 0
	}, buildCard)

	r.MustRegister(KindInteger, 40, func(f Field) bool {
		return f.Is("integer")
	}, buildInteger)

	r.MustRegister(KindDecimal, 40, func(f Field) bool {
		return f.Is("number")
	}, buildDecimal)

	r.MustRegister(KindEmail, 35, func(f Field) bool {
		return f.Format() == "email"
	}, buildText(widget.TextEmail))

	r.MustRegister(KindURL, 35, func(f Field) bool {
		format := f.Format()
		return format == "uri" || format == "url"
	}, buildText(widget.TextURL))

	r.MustRegister(KindPassword, 35, func(f Field) bool {
		return f.Format() == "password"
	}, buildText(widget.TextPassword))

	r.MustRegister(KindTextArea, 30, func(f Field) bool {
		if f.Format() == "textarea" {
			return true
		}
		return f.Schema.MaxLength != nil && *f.Schema.MaxLength > textAreaThreshold
	}, buildTextArea)

	r.MustRegister(KindText, 0, func(Field) bool {
		return true
	}, buildText(widget.TextPlain))

	r.MustRegister(KindHidden, 0, nil, buildHidden)
	r.MustRegister(KindStatic, 0, nil, buildStatic)
}
