package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/schemaform"
	"github.com/goliatone/go-formwidget/pkg/widget"
)

const defaultRendererName = render.HTMLName

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a document loader.
func WithLoader(loader *schemaform.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithBuilder injects the widget tree builder.
func WithBuilder(builder *schemaform.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformers registers transformers run, in order, on every built tree
// before rendering.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		for _, t := range transformers {
			if t != nil {
				o.transformers = append(o.transformers, t)
			}
		}
	}
}

// Orchestrator coordinates the pipeline from OpenAPI document to rendered
// output. Missing collaborators default to the built-in loader, builder and
// the html/json renderer registry.
type Orchestrator struct {
	loader          *schemaform.Loader
	builder         *schemaform.Builder
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.loader == nil {
		o.loader = schemaform.NewLoader()
	}
	if o.builder == nil {
		o.builder = schemaform.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewDefaultRegistry()
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	return o
}

// Request describes the inputs required to render a form from an OpenAPI
// operation.
type Request struct {
	// Source identifies where the OpenAPI document lives. Optional when
	// Document is supplied.
	Source schemaform.Source

	// Document bypasses the loader for callers holding a parsed document.
	Document *schemaform.Document

	// OperationID selects the operation whose request body becomes the form.
	OperationID string

	// Renderer names the renderer to use. Empty selects the default renderer.
	Renderer string

	// RenderOptions carries per-request values, errors and hidden fields.
	RenderOptions render.Options
}

// Form loads the document, builds the widget tree of the requested operation
// and runs the registered transformers over it.
func (o *Orchestrator) Form(ctx context.Context, req Request) (*widget.Container, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.OperationID == "" {
		return nil, errors.New("orchestrator: operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	op, err := doc.Operation(req.OperationID)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	root, err := o.builder.Build(op)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form: %w", err)
	}

	for _, t := range o.transformers {
		if err := t.Transform(ctx, root); err != nil {
			return nil, fmt.Errorf("orchestrator: transform form: %w", err)
		}
	}
	return root, nil
}

// Generate runs Form and renders the tree with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	root, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, root, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (*schemaform.Document, error) {
	if req.Document != nil {
		return req.Document, nil
	}
	if req.Source.Location == "" {
		return nil, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if name != "" {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}
