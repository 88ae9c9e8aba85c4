// Package orchestrator wires the document loader, the schema form builder
// and the renderer registry into a single entry point that turns an OpenAPI
// operation into rendered output.
package orchestrator
