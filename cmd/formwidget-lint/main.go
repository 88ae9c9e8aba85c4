package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formwidget/pkg/schemaform"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint OpenAPI documents for form widget extensions.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/fixtures/orders.yaml"}
	}

	ctx := context.Background()
	loader := schemaform.NewLoader()
	kinds := make(map[string]struct{})
	for _, kind := range schemaform.NewRegistry().Kinds() {
		kinds[kind] = struct{}{}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, loader, kinds, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, loader *schemaform.Loader, kinds map[string]struct{}, path string) ([]violation, error) {
	doc, err := loader.Load(ctx, schemaform.SourceFromFile(path))
	if err != nil {
		return nil, err
	}

	var result []violation
	for _, issue := range doc.Check(ctx) {
		location := issue.Path
		if location == "" {
			location = "document"
		}
		result = append(result, violation{file: path, location: location, message: issue.Message})
	}

	ops := doc.Operations()
	for _, id := range doc.OperationIDs() {
		op := ops[id]
		if op.Schema == nil {
			continue
		}
		result = append(result, lintSchema(path, kinds, "operation."+id, op.Schema)...)
	}
	return result, nil
}

func lintSchema(file string, kinds map[string]struct{}, location string, schema *openapi3.Schema) []violation {
	if schema == nil {
		return nil
	}
	field := schemaform.Field{Schema: schema}

	var result []violation
	report := func(format string, args ...any) {
		result = append(result, violation{file: file, location: location, message: fmt.Sprintf(format, args...)})
	}

	if kind := field.Extension(schemaform.WidgetExtension); kind != "" {
		if _, ok := kinds[kind]; !ok {
			report("unknown %s %q (known: %s)", schemaform.WidgetExtension, kind, strings.Join(sortedKinds(kinds), ", "))
		}
	}
	if raw := field.Extension(schemaform.WeightExtension); raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			report("%s must be an integer, got %q", schemaform.WeightExtension, raw)
		}
	}
	if titles, ok := schema.Extensions[schemaform.EnumTitlesExtension]; ok {
		enum := schema.Enum
		if len(enum) == 0 && schema.Items != nil && schema.Items.Value != nil {
			enum = schema.Items.Value.Enum
		}
		list, isList := titles.([]any)
		switch {
		case !isList:
			report("%s must be a list", schemaform.EnumTitlesExtension)
		case len(enum) == 0:
			report("%s set without enum", schemaform.EnumTitlesExtension)
		case len(list) != len(enum):
			report("%s has %d entries for %d enum values", schemaform.EnumTitlesExtension, len(list), len(enum))
		}
	}

	keys := make([]string, 0, len(schema.Properties))
	for key := range schema.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ref := schema.Properties[key]
		if ref == nil {
			continue
		}
		result = append(result, lintSchema(file, kinds, location+".properties."+key, ref.Value)...)
	}
	if schema.Items != nil {
		result = append(result, lintSchema(file, kinds, location+".items", schema.Items.Value)...)
	}
	return result
}

func sortedKinds(kinds map[string]struct{}) []string {
	out := make([]string, 0, len(kinds))
	for kind := range kinds {
		out = append(out, kind)
	}
	sort.Strings(out)
	return out
}
