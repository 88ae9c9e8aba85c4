package schemaform

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/validation"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

var (
	// ErrNoRequestBody is returned for operations without a request schema.
	ErrNoRequestBody = errors.New("schemaform: operation has no request body")
	// ErrUnsupported is returned for schema shapes no widget can hold.
	ErrUnsupported = errors.New("schemaform: unsupported schema")
)

// SubmitUID is the uid of the submit button added by WithSubmit.
const SubmitUID = "submit"

// Builder turns OpenAPI request schemas into widget trees.
type Builder struct {
	registry   *Registry
	translator i18n.Translator
	language   string
	submit     string
}

// Option customises a Builder.
type Option func(*Builder)

// WithRegistry replaces the built-in kind registry.
func WithRegistry(registry *Registry) Option {
	return func(b *Builder) {
		if registry != nil {
			b.registry = registry
		}
	}
}

// WithTranslator sets the translator given to every built widget.
func WithTranslator(t i18n.Translator) Option {
	return func(b *Builder) {
		b.translator = t
	}
}

// WithLanguage sets the language given to every built widget.
func WithLanguage(language string) Option {
	return func(b *Builder) {
		b.language = language
	}
}

// WithSubmit appends a submit button captioned label to built forms.
func WithSubmit(label string) Option {
	return func(b *Builder) {
		b.submit = label
	}
}

// NewBuilder constructs a Builder.
func NewBuilder(options ...Option) *Builder {
	b := &Builder{registry: NewRegistry()}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build creates the form for op: a container holding one widget per request
// body property.
func (b *Builder) Build(op Operation) (*widget.Container, error) {
	if op.Schema == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoRequestBody, op.ID)
	}
	root, err := b.Schema(uidFrom(op.ID), op.Schema)
	if err != nil {
		return nil, fmt.Errorf("schemaform: build %q: %w", op.ID, err)
	}
	if op.Summary != "" {
		root.SetLabel(op.Summary)
	}
	if b.submit != "" {
		submit := widget.NewSubmit(SubmitUID, widget.ButtonOptions{Options: widget.Options{
			Value:      b.submit,
			Language:   b.language,
			Translator: b.translator,
		}})
		if err := root.AddChild(submit); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Schema creates a container holding one widget per property of s.
func (b *Builder) Schema(uid string, s *openapi3.Schema) (*widget.Container, error) {
	root := widget.NewContainer(uid, widget.ContainerOptions{Options: widget.Options{
		Language:   b.language,
		Translator: b.translator,
	}})
	for _, field := range (Field{}).Children(s) {
		w, err := b.Field(field)
		if err != nil {
			return nil, err
		}
		if err := root.AddChild(w); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// Field resolves the kind for f and builds its widget.
func (b *Builder) Field(f Field) (widget.Widget, error) {
	if f.Schema == nil {
		return nil, fmt.Errorf("%w: %q has no schema", ErrUnsupported, f.InputName())
	}
	kind, ok := b.registry.Resolve(f)
	if !ok {
		return nil, fmt.Errorf("%w: no widget kind for %q", ErrUnsupported, f.InputName())
	}
	factory, ok := b.registry.Factory(kind)
	if !ok {
		return nil, fmt.Errorf("schemaform: unknown widget kind %q for %q", kind, f.InputName())
	}
	w, err := factory(b, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.InputName(), err)
	}
	return w, nil
}

// Options derives the shared widget options for f.
func (b *Builder) Options(f Field) (widget.Options, error) {
	s := f.Schema
	opts := widget.Options{
		Name:        f.InputName(),
		Weight:      f.Weight(),
		Default:     s.Default,
		Label:       f.Title(),
		Placeholder: f.Extension(PlaceholderExtension),
		Help:        strings.TrimSpace(s.Description),
		Disabled:    s.ReadOnly,
		Required:    f.Required,
		Language:    b.language,
		Translator:  b.translator,
	}
	if f.InRow {
		opts.Weight = 0
	}
	if s.Pattern != "" {
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return widget.Options{}, fmt.Errorf("pattern %q: %w", s.Pattern, err)
		}
		opts.Rules = append(opts.Rules, validation.Pattern{Regexp: re})
	}
	return opts, nil
}

// rowTemplate builds the row prototypes once to surface errors early and
// returns a template that rebuilds them on every call.
func (b *Builder) rowTemplate(fields []Field) (func() []widget.Widget, error) {
	build := func() ([]widget.Widget, error) {
		ws := make([]widget.Widget, 0, len(fields))
		for _, field := range fields {
			w, err := b.Field(field)
			if err != nil {
				return nil, err
			}
			ws = append(ws, w)
		}
		return ws, nil
	}
	if _, err := build(); err != nil {
		return nil, err
	}
	return func() []widget.Widget {
		ws, err := build()
		if err != nil {
			panic(err)
		}
		return ws
	}, nil
}

var uidPattern = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func uidFrom(id string) string {
	uid := strings.Trim(uidPattern.ReplaceAllString(id, "-"), "-")
	if uid == "" {
		return "form"
	}
	return uid
}
