package schemaform

import (
	"fmt"
	"math"

	"github.com/goliatone/go-formwidget/pkg/widget"
)

func buildCheckbox(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	// A required boolean may legitimately be false.
	opts.Required = false
	return widget.NewCheckbox(f.UID(), opts), nil
}

func buildSelect(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	if opts.Default != nil {
		opts.Default = fmt.Sprint(opts.Default)
	}
	return widget.NewSelect(f.UID(), widget.SelectOptions{
		Options: opts,
		Items:   enumItems(f.Schema.Enum, f.Schema.Extensions[EnumTitlesExtension]),
	}), nil
}

func buildCheckboxes(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	items := f.Items()
	return widget.NewCheckboxes(f.UID(), widget.CheckboxesOptions{
		SelectOptions: widget.SelectOptions{
			Options:    opts,
			Items:      enumItems(items.Enum, items.Extensions[EnumTitlesExtension]),
			NoNoneItem: true,
		},
		Unique: f.Schema.UniqueItems,
	}), nil
}

func buildTokens(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	return widget.NewTokens(f.UID(), widget.TokensOptions{Options: opts}), nil
}

func buildMultiRow(b *Builder, f Field) (widget.Widget, error) {
	if f.InRow {
		return nil, fmt.Errorf("%w: nested collection in a row", ErrUnsupported)
	}
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	row := Field{Path: f.Path, InRow: true}
	fields := row.Children(f.Items())
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: row schema has no properties", ErrUnsupported)
	}
	template, err := b.rowTemplate(fields)
	if err != nil {
		return nil, err
	}
	return widget.NewMultiRow(f.UID(), widget.MultiRowOptions{
		Options:  opts,
		Template: template,
		MaxRows:  maxItems(f),
	}), nil
}

func buildMultiRowList(b *Builder, f Field) (widget.Widget, error) {
	if f.InRow {
		return nil, fmt.Errorf("%w: nested collection in a row", ErrUnsupported)
	}
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	items := f.Items()
	if items == nil {
		return nil, fmt.Errorf("%w: array without items", ErrUnsupported)
	}
	column := Field{Path: append(append([]string(nil), f.Path...), "item"), Schema: items, InRow: true}
	template, err := b.rowTemplate([]Field{column})
	if err != nil {
		return nil, err
	}
	return widget.NewMultiRowList(f.UID(), widget.MultiRowListOptions{
		MultiRowOptions: widget.MultiRowOptions{
			Options:      opts,
			Template:     template,
			HeaderHidden: true,
			MaxRows:      maxItems(f),
		},
		Unique: f.Schema.UniqueItems,
	}), nil
}

func buildCard(b *Builder, f Field) (widget.Widget, error) {
	if f.InRow {
		return nil, fmt.Errorf("%w: object in a row", ErrUnsupported)
	}
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	opts.Default = nil
	opts.Required = false
	card := widget.NewCard(f.UID(), widget.CardOptions{
		ContainerOptions: widget.ContainerOptions{Options: opts},
		Header:           opts.Label,
	})
	for _, child := range f.Children(f.Schema) {
		w, err := b.Field(child)
		if err != nil {
			return nil, err
		}
		if err := card.AddChild(w); err != nil {
			return nil, err
		}
	}
	return card, nil
}

func buildInteger(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	if d, ok := opts.Default.(float64); ok && d == math.Trunc(d) {
		opts.Default = int(d)
	}
	return widget.NewInteger(f.UID(), numberOptions(f, opts)), nil
}

func buildDecimal(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	return widget.NewDecimal(f.UID(), numberOptions(f, opts)), nil
}

func numberOptions(f Field, opts widget.Options) widget.NumberOptions {
	n := widget.NumberOptions{Options: opts, AllowMinus: true}
	if f.Schema.Min != nil {
		lo := *f.Schema.Min
		n.Min = &lo
		n.AllowMinus = lo < 0
	}
	if f.Schema.Max != nil {
		hi := *f.Schema.Max
		n.Max = &hi
	}
	return n
}

func buildText(typ widget.TextType) Factory {
	return func(b *Builder, f Field) (widget.Widget, error) {
		opts, err := b.Options(f)
		if err != nil {
			return nil, err
		}
		return widget.NewText(f.UID(), widget.TextOptions{
			Options:   opts,
			Type:      typ,
			MaxLength: maxLength(f),
		}), nil
	}
}

func buildTextArea(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	return widget.NewTextArea(f.UID(), widget.TextAreaOptions{Options: opts, MaxLength: maxLength(f)}), nil
}

func buildHidden(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	return widget.NewHidden(f.UID(), opts), nil
}

func buildStatic(b *Builder, f Field) (widget.Widget, error) {
	opts, err := b.Options(f)
	if err != nil {
		return nil, err
	}
	text := opts.Help
	opts.Help = ""
	if text == "" && opts.Default != nil {
		text = fmt.Sprint(opts.Default)
	}
	return widget.NewStaticText(f.UID(), widget.StaticTextOptions{Options: opts, Text: text}), nil
}

func enumItems(values []any, titles any) []widget.Item {
	labels, _ := titles.([]any)
	items := make([]widget.Item, 0, len(values))
	for i, v := range values {
		value := fmt.Sprint(v)
		title := value
		if i < len(labels) {
			if s, ok := labels[i].(string); ok && s != "" {
				title = s
			}
		}
		items = append(items, widget.Item{Value: value, Title: title})
	}
	return items
}

func maxLength(f Field) int {
	if f.Schema.MaxLength == nil {
		return 0
	}
	return int(*f.Schema.MaxLength)
}

func maxItems(f Field) int {
	if f.Schema.MaxItems == nil {
		return 0
	}
	return int(*f.Schema.MaxItems)
}
