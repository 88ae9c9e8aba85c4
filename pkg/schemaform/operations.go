package schemaform

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrOperationNotFound is returned when a document lacks the requested
// operation.
var ErrOperationNotFound = errors.New("schemaform: operation not found")

// Operation is one OpenAPI operation and its request body schema.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	// Schema is nil when the operation declares no request body.
	Schema *openapi3.Schema
}

var operationMethods = []string{
	http.MethodGet,
	http.MethodPut,
	http.MethodPost,
	http.MethodDelete,
	http.MethodPatch,
}

// Operations returns every operation keyed by operationId. Operations
// without an id are keyed "method:path".
func (d *Document) Operations() map[string]Operation {
	out := make(map[string]Operation)
	if d == nil || d.Spec == nil || d.Spec.Paths == nil {
		return out
	}
	for path, item := range d.Spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, method := range operationMethods {
			op := item.GetOperation(method)
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			out[id] = Operation{
				ID:          id,
				Method:      method,
				Path:        path,
				Summary:     op.Summary,
				Description: op.Description,
				Schema:      requestSchema(op.RequestBody),
			}
		}
	}
	return out
}

// OperationIDs returns the sorted operation ids.
func (d *Document) OperationIDs() []string {
	ops := d.Operations()
	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Operation looks up an operation by id.
func (d *Document) Operation(id string) (Operation, error) {
	op, ok := d.Operations()[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %q", ErrOperationNotFound, id)
	}
	return op, nil
}

func requestSchema(body *openapi3.RequestBodyRef) *openapi3.Schema {
	if body == nil || body.Value == nil {
		return nil
	}
	content := body.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	keys := make([]string, 0, len(content))
	for key := range content {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if mt := content[key]; mt != nil && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
