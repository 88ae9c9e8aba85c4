package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-formwidget/pkg/orchestrator"
	"github.com/goliatone/go-formwidget/pkg/prompt"
	"github.com/goliatone/go-formwidget/pkg/render"
	"github.com/goliatone/go-formwidget/pkg/schemaform"
)

func main() {
	opID := flag.String("operation", "", "operation ID to render (lists operations if empty)")
	renderer := flag.String("renderer", render.HTMLName, "renderer to use (html, json, tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	source := flag.String("source", "examples/fixtures/orders.yaml", "OpenAPI document path or URL")
	locale := flag.String("locale", "", "locale for labels and messages")
	submit := flag.String("submit", "Submit", "submit button caption (empty drops the button)")
	preset := flag.String("preset", "", "YAML preset applied to the built form")
	format := flag.String("format", string(prompt.OutputFormatJSON), "tui output format (json, form, pretty)")
	strict := flag.Bool("strict", false, "reject documents that fail validation")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src, err := schemaform.ParseSource(*source)
	if err != nil {
		log.Fatalf("invalid source: %v", err)
	}

	var loaderOpts []schemaform.LoaderOption
	if *strict {
		loaderOpts = append(loaderOpts, schemaform.WithStrictValidation())
	}
	loader := schemaform.NewLoader(loaderOpts...)

	doc, err := loader.Load(ctx, src)
	if err != nil {
		log.Fatalf("Failed to load document: %v", err)
	}
	if strings.TrimSpace(*opID) == "" {
		for _, id := range doc.OperationIDs() {
			fmt.Println(id)
		}
		return
	}

	registry := render.NewDefaultRegistry(render.WithLocale(*locale))
	filler := prompt.New(prompt.WithLocale(*locale))
	registry.MustRegister(prompt.NewRenderer(filler, prompt.OutputFormat(*format)))

	options := []orchestrator.Option{
		orchestrator.WithLoader(loader),
		orchestrator.WithRegistry(registry),
		orchestrator.WithBuilder(schemaform.NewBuilder(
			schemaform.WithLanguage(*locale),
			schemaform.WithSubmit(*submit),
		)),
	}
	if *preset != "" {
		data, err := os.ReadFile(*preset)
		if err != nil {
			log.Fatalf("Failed to read preset: %v", err)
		}
		t, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			log.Fatalf("Invalid preset: %v", err)
		}
		options = append(options, orchestrator.WithTransformers(t))
	}

	out, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document:    doc,
		OperationID: *opID,
		Renderer:    *renderer,
	})
	if err != nil {
		log.Fatalf("Failed to generate form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
	} else {
		fmt.Println(string(out))
	}
}
