package widget

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-formwidget/pkg/htmltree"
	"github.com/goliatone/go-formwidget/pkg/validation"
)

// Message keys used by multi-row widgets.
const (
	MsgMultiRowValidation = "widget.multi_row_validation_error"
	MsgAppend             = "widget.append"
	MsgRemove             = "widget.remove"
)

// MultiRowOptions configures a MultiRow.
type MultiRowOptions struct {
	Options
	// Template returns fresh prototype widgets for one row, in column order.
	// It is required and is called once per row on every bind.
	Template func() []Widget
	// AddButtonTitle defaults to the translated MsgAppend.
	AddButtonTitle string
	// HeaderHidden drops the header row.
	HeaderHidden bool
	// MaxRows is passed to the client as data-max-rows. It is not enforced
	// on the server.
	MaxRows int
}

// MultiRow binds a []map[string]any to a repeating row template. Each map
// holds one row keyed by the template widgets' names.
type MultiRow struct {
	*Base
	template     func() []Widget
	addTitle     string
	headerHidden bool
	maxRows      int
}

// NewMultiRow builds a MultiRow. It panics with a *StructuralError when the
// template is missing.
func NewMultiRow(uid string, opts MultiRowOptions) *MultiRow {
	m := newMultiRow(uid, opts, "multi-row")
	mustInit(m, opts.Value)
	return m
}

func newMultiRow(uid string, opts MultiRowOptions, kinds ...string) *MultiRow {
	if opts.Template == nil {
		panic(structural("new", uid, "", "row template is required"))
	}
	m := &MultiRow{
		Base:         NewBase(uid, opts.Options, kinds...),
		template:     opts.Template,
		addTitle:     opts.AddButtonTitle,
		headerHidden: opts.HeaderHidden,
		maxRows:      opts.MaxRows,
	}
	m.AddJSModule("widget-multi-row")
	if m.maxRows > 0 {
		m.SetData("max-rows", strconv.Itoa(m.maxRows))
	}
	return m
}

// MaxRows returns the client-side row cap, 0 when unlimited.
func (m *MultiRow) MaxRows() int { return m.maxRows }

// Rows returns the stored rows.
func (m *MultiRow) Rows() []map[string]any {
	rows, _ := m.value.([]map[string]any)
	return rows
}

// SetVal accepts a list of row maps or a column-major mapping of field names
// to per-row values, as produced by decoding repeated form fields. Rows whose
// values are all empty are dropped. Field values are bound to a fresh row
// template so type errors surface here.
func (m *MultiRow) SetVal(raw any) error {
	if raw == nil {
		raw = deepcopy.Copy(m.def)
	}
	if raw == nil {
		return m.Base.SetVal([]map[string]any{})
	}

	rows, err := toRows(m.uid, raw)
	if err != nil {
		return err
	}
	clean := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		if !rowEmpty(row) {
			clean = append(clean, row)
		}
	}
	if _, err := m.bindRows(clean); err != nil {
		return err
	}
	return m.Base.SetVal(clean)
}

// Validate runs the widget's own rules, then every row field in row and
// template order. The first field failure is reported as
// MsgMultiRowValidation with the 1-based row index, the field title and the
// rendered inner message.
func (m *MultiRow) Validate() error {
	if err := m.Base.Validate(); err != nil {
		return err
	}
	rows, err := m.bindRows(m.Rows())
	if err != nil {
		return err
	}
	return m.validateRows(rows)
}

func (m *MultiRow) validateRows(rows [][]Widget) error {
	for i, row := range rows {
		for _, w := range row {
			err := w.Validate()
			if err == nil {
				continue
			}
			ruleErr, ok := validation.AsRuleError(err)
			if !ok {
				return err
			}
			return m.rowError(i, w, ruleErr)
		}
	}
	return nil
}

func (m *MultiRow) rowError(index int, field Widget, inner *validation.RuleError) *validation.RuleError {
	return validation.NewRuleError(MsgMultiRowValidation, map[string]any{
		"row_index":    index + 1,
		"widget_title": fieldTitle(field),
		"orig_msg":     inner.Message(m.Translator(), m.language),
	})
}

func fieldTitle(w Widget) string {
	if label := w.Core().Label(); label != "" {
		return label
	}
	return w.Name()
}

// NewRow returns one fresh, unbound row of template widgets.
func (m *MultiRow) NewRow() ([]Widget, error) {
	return m.instantiate()
}

// instantiate returns one fresh row of template widgets.
func (m *MultiRow) instantiate() ([]Widget, error) {
	row := m.template()
	if len(row) == 0 {
		return nil, structural("bind", m.uid, "", "row template is empty")
	}
	for _, w := range row {
		if w == nil || w.Core() == nil {
			return nil, structural("bind", m.uid, "", "row template returned a nil widget")
		}
	}
	return row, nil
}

func (m *MultiRow) bindRows(rows []map[string]any) ([][]Widget, error) {
	out := make([][]Widget, 0, len(rows))
	for _, row := range rows {
		ws, err := m.instantiate()
		if err != nil {
			return nil, err
		}
		for _, w := range ws {
			if err := w.SetVal(row[w.Name()]); err != nil {
				return nil, err
			}
		}
		out = append(out, ws)
	}
	return out, nil
}

func (m *MultiRow) Element(rc *RenderContext) (*htmltree.Element, error) {
	rows, err := m.bindRows(m.Rows())
	if err != nil {
		return nil, err
	}
	return m.table(rc, rows, func(w Widget) string {
		return fmt.Sprintf("%s[%s][]", m.name, w.Name())
	})
}

func (m *MultiRow) table(rc *RenderContext, rows [][]Widget, rowName func(Widget) string) (*htmltree.Element, error) {
	sample, err := m.instantiate()
	if err != nil {
		return nil, err
	}
	for _, w := range sample {
		if err := w.SetVal(nil); err != nil {
			return nil, err
		}
	}

	table := htmltree.New("table").SetAttr("class", rc.Class("multi_row_table", "content-table"))

	if !m.headerHidden {
		tr := htmltree.New("tr").
			Append(htmltree.New("th").SetAttr("class", "order-col").Text("#"))
		for _, w := range sample {
			tr.Append(htmltree.New("th").SetAttr("class", "widget-col").Text(headerTitle(w)))
		}
		if m.enabled {
			tr.Append(htmltree.New("th").SetAttr("class", "actions-col"))
		}
		table.Append(htmltree.New("thead").SetAttr("class", "hidden sr-only slots-header").Append(tr))
	}

	body := htmltree.New("tbody").SetAttr("class", "slots")
	for i, row := range rows {
		tr, err := m.row(rc, row, strconv.Itoa(i), fmt.Sprintf("[%d]", i+1), "", rowName)
		if err != nil {
			return nil, err
		}
		body.Append(tr)
	}
	tr, err := m.row(rc, sample, "sample", "[#]", "sample hidden sr-only", rowName)
	if err != nil {
		return nil, err
	}
	body.Append(tr)
	table.Append(body)

	if m.enabled {
		title := m.addTitle
		if title == "" {
			title = rc.T(m, MsgAppend)
		}
		add := htmltree.New("a").
			SetAttr("href", "#").
			SetAttr("class", rc.Class("multi_row_add", "button-add-slot btn btn-default btn-light btn-sm")).
			Text(title).
			Append(htmltree.New("i").SetAttr("class", "fa fas fa-plus"))
		cell := htmltree.New("td").SetAttr("colspan", len(sample)+2).Append(add)
		table.Append(htmltree.New("tfoot").Append(htmltree.New("tr").Append(cell)))
	}
	return table, nil
}

func (m *MultiRow) row(rc *RenderContext, ws []Widget, slot, order, css string, rowName func(Widget) string) (*htmltree.Element, error) {
	tr := htmltree.New("tr").SetAttr("class", "slot").AddCSS(css)
	tr.Append(htmltree.New("td").SetAttr("class", "order-col").Text(order))

	for _, w := range ws {
		b := w.Core()
		b.uid = fmt.Sprintf("%s-%s-%s", m.uid, slot, b.uid)
		b.name = rowName(w)
		b.formGroup = false
		b.labelHidden = true
		b.formArea = m.formArea
		b.parentUID = m.uid
		if !m.enabled {
			b.enabled = false
		}
		b.AddCSS("widget-row-col")

		em, err := Renderable(w, rc)
		if err != nil {
			return nil, err
		}
		tr.Append(htmltree.New("td").SetAttr("class", "widget-col").Append(em))
	}

	if m.enabled {
		remove := htmltree.New("a").
			SetAttr("href", "#").
			SetAttr("title", rc.T(m, MsgRemove)).
			SetAttr("class", rc.Class("multi_row_remove", "button-remove-slot btn btn-sm btn-danger")).
			Append(htmltree.New("i").SetAttr("class", "fa fas fa-icon fa-remove fa-times"))
		tr.Append(htmltree.New("td").SetAttr("class", "actions-col").Append(remove))
	}
	return tr, nil
}

func headerTitle(w Widget) string {
	if title := w.Core().Title(); title != "" {
		return title
	}
	return w.Name()
}

// MultiRowListOptions configures a MultiRowList.
type MultiRowListOptions struct {
	MultiRowOptions
	// Unique drops repeated rows.
	Unique bool
}

// MultiRowList binds a flat []any to a repeating row template. Rows are the
// consecutive chunks of len(template) items.
type MultiRowList struct {
	*MultiRow
	unique bool
}

// NewMultiRowList builds a MultiRowList. It panics with a *StructuralError
// when the template is missing.
func NewMultiRowList(uid string, opts MultiRowListOptions) *MultiRowList {
	m := &MultiRowList{
		MultiRow: newMultiRow(uid, opts.MultiRowOptions, "multi-row-list", "multi-row"),
		unique:   opts.Unique,
	}
	mustInit(m, opts.Value)
	return m
}

// Items returns the stored flat list.
func (m *MultiRowList) Items() []any {
	items, _ := m.value.([]any)
	return items
}

// SetVal accepts a list, or a mapping whose values are taken in key order
// (numeric keys compare numerically). All-empty rows are dropped, and
// repeated rows too when the list is unique.
func (m *MultiRowList) SetVal(raw any) error {
	if raw == nil {
		raw = deepcopy.Copy(m.def)
	}
	if raw == nil {
		return m.Base.SetVal([]any{})
	}

	items, err := toList(m.uid, raw)
	if err != nil {
		return err
	}
	width, err := m.width()
	if err != nil {
		return err
	}

	var kept [][]any
	for _, row := range chunk(items, width) {
		if chunkEmpty(row) {
			continue
		}
		if m.unique && containsRow(kept, row) {
			continue
		}
		kept = append(kept, row)
	}

	clean := make([]any, 0, len(items))
	for _, row := range kept {
		clean = append(clean, row...)
	}
	if _, err := m.bindChunks(clean); err != nil {
		return err
	}
	return m.Base.SetVal(clean)
}

// Validate runs the widget's own rules, then every chunk's fields bound by
// offset.
func (m *MultiRowList) Validate() error {
	if err := m.Base.Validate(); err != nil {
		return err
	}
	rows, err := m.bindChunks(m.Items())
	if err != nil {
		return err
	}
	return m.validateRows(rows)
}

func (m *MultiRowList) Element(rc *RenderContext) (*htmltree.Element, error) {
	rows, err := m.bindChunks(m.Items())
	if err != nil {
		return nil, err
	}
	return m.table(rc, rows, func(Widget) string {
		return m.name + "[]"
	})
}

func (m *MultiRowList) width() (int, error) {
	ws, err := m.instantiate()
	if err != nil {
		return 0, err
	}
	return len(ws), nil
}

func (m *MultiRowList) bindChunks(items []any) ([][]Widget, error) {
	width, err := m.width()
	if err != nil {
		return nil, err
	}
	chunks := chunk(items, width)
	out := make([][]Widget, 0, len(chunks))
	for _, c := range chunks {
		ws, err := m.instantiate()
		if err != nil {
			return nil, err
		}
		for j, w := range ws {
			var v any
			if j < len(c) {
				v = c[j]
			}
			if err := w.SetVal(v); err != nil {
				return nil, err
			}
		}
		out = append(out, ws)
	}
	return out, nil
}

func chunk(items []any, width int) [][]any {
	if width <= 0 {
		return nil
	}
	var out [][]any
	for i := 0; i < len(items); i += width {
		end := i + width
		if end > len(items) {
			end = len(items)
		}
		out = append(out, items[i:end:end])
	}
	return out
}

func containsRow(rows [][]any, row []any) bool {
	for _, r := range rows {
		if reflect.DeepEqual(r, row) {
			return true
		}
	}
	return false
}

func rowEmpty(row map[string]any) bool {
	for _, v := range row {
		if !validation.IsEmpty(v) {
			return false
		}
	}
	return true
}

func chunkEmpty(row []any) bool {
	for _, v := range row {
		if !validation.IsEmpty(v) {
			return false
		}
	}
	return true
}

func toRows(uid string, raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case []map[string]any:
		return append([]map[string]any(nil), v...), nil
	case []map[string]string:
		out := make([]map[string]any, 0, len(v))
		for _, row := range v {
			out = append(out, stringRow(row))
		}
		return out, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, item := range v {
			switch row := item.(type) {
			case map[string]any:
				out = append(out, row)
			case map[string]string:
				out = append(out, stringRow(row))
			default:
				return nil, typeError(uid, "row mapping", item)
			}
		}
		return out, nil
	case url.Values:
		return transpose(stringColumns(v)), nil
	case map[string][]string:
		return transpose(stringColumns(v)), nil
	case map[string][]any:
		return transpose(v), nil
	case map[string]any:
		cols := make(map[string][]any, len(v))
		for field, col := range v {
			switch c := col.(type) {
			case []any:
				cols[field] = c
			case []string:
				cols[field] = stringsToAny(c)
			default:
				return nil, typeError(uid, "list of values for field "+field, col)
			}
		}
		return transpose(cols), nil
	}
	return nil, typeError(uid, "list of rows", raw)
}

// transpose turns column-major field values into rows. The longest column
// sets the row count; missing cells are nil.
func transpose(cols map[string][]any) []map[string]any {
	n := 0
	for _, col := range cols {
		if len(col) > n {
			n = len(col)
		}
	}
	rows := make([]map[string]any, n)
	for i := range rows {
		row := make(map[string]any, len(cols))
		for field, col := range cols {
			if i < len(col) {
				row[field] = col[i]
			} else {
				row[field] = nil
			}
		}
		rows[i] = row
	}
	return rows
}

func toList(uid string, raw any) ([]any, error) {
	switch v := raw.(type) {
	case []any:
		return append([]any(nil), v...), nil
	case []string:
		return stringsToAny(v), nil
	case map[string]any:
		out := make([]any, 0, len(v))
		for _, k := range sortedKeys(v) {
			out = append(out, v[k])
		}
		return out, nil
	case map[string]string:
		out := make([]any, 0, len(v))
		for _, k := range sortedKeys(v) {
			out = append(out, v[k])
		}
		return out, nil
	}
	return nil, typeError(uid, "list", raw)
}

// sortedKeys puts integer keys first in numeric order, then the remaining
// keys lexicographically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			if a != b {
				return a < b
			}
			return keys[i] < keys[j]
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return keys[i] < keys[j]
	})
	return keys
}

func stringRow(row map[string]string) map[string]any {
	out := make(map[string]any, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

func stringColumns(in map[string][]string) map[string][]any {
	out := make(map[string][]any, len(in))
	for k, v := range in {
		out[k] = stringsToAny(v)
	}
	return out
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// FormValues extracts the column-major fields of the multi-row named name
// from decoded form values: "rows[a][]" becomes the "a" column.
func FormValues(values url.Values, name string) map[string][]string {
	prefix := name + "["
	out := map[string][]string{}
	for key, vals := range values {
		if !strings.HasPrefix(key, prefix) || !strings.HasSuffix(key, "][]") {
			continue
		}
		field := strings.TrimSuffix(strings.TrimPrefix(key, prefix), "][]")
		if field == "" || strings.ContainsAny(field, "[]") {
			continue
		}
		out[field] = append([]string(nil), vals...)
	}
	return out
}

// FormList extracts the flat values of the multi-row list named name.
func FormList(values url.Values, name string) []string {
	return append([]string(nil), values[name+"[]"]...)
}
