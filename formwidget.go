// Package formwidget turns OpenAPI request bodies into server-side widget
// trees and renders them. The subpackages hold the pieces; this package
// offers shortcuts over the orchestrator for the common cases.
package formwidget

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwidget/pkg/orchestrator"
	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/schemaform"
)

// RenderOptions describes per-request values, errors and hidden fields.
type RenderOptions = render.Options

// NewLoader constructs an OpenAPI document loader.
func NewLoader(options ...schemaform.LoaderOption) *schemaform.Loader {
	return schemaform.NewLoader(options...)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML loads source, builds the form of the requested operation and
// renders it as HTML.
func GenerateHTML(ctx context.Context, source schemaform.Source, operationID string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:        source,
		OperationID:   operationID,
		Renderer:      render.HTMLName,
		RenderOptions: opts,
	})
}

// GenerateFromDocument renders a form from a pre-loaded document with the
// named renderer, bypassing the loader.
func GenerateFromDocument(ctx context.Context, doc *schemaform.Document, operationID, rendererName string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:      doc,
		OperationID:   operationID,
		Renderer:      rendererName,
		RenderOptions: opts,
	})
}

// WithThemeSelector installs the default html/json registry with class
// overrides resolved from a go-theme selector.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string, options ...render.Option) orchestrator.Option {
	options = append(options, render.WithThemeSelector(selector, name, variant))
	return orchestrator.WithRegistry(render.NewDefaultRegistry(options...))
}
