package widget

import (
	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/validation"
)

// DefaultFormArea is the area assigned when Options.FormArea is empty.
const DefaultFormArea = "body"

// Options configures the state every widget kind shares. The zero value of
// each field is its default.
type Options struct {
	// Name is the form field name; defaults to the uid.
	Name string
	// Weight orders siblings. Zero lets the parent assign one on attachment.
	Weight int
	// Default is deep-copied into the value whenever nil is set.
	Default any
	// Value is the initial value; nil means Default.
	Value any

	Label         string
	Title         string
	LabelHidden   bool
	LabelDisabled bool
	Placeholder   string
	Help          string
	// CSS holds extra wrapper classes.
	CSS string
	// Data is emitted as data-* attributes on the wrapper.
	Data map[string]string

	Hidden   bool
	Disabled bool
	// Required adds a NonEmpty rule.
	Required bool
	Rules    []validation.Rule

	// FormArea defaults to DefaultFormArea. Children inherit their parent's
	// area on attachment.
	FormArea string
	// Replaces marks the uid this widget replaces on the client.
	Replaces string
	// Assets and JSModules are emitted as metadata for client-side loaders.
	Assets    []string
	JSModules []string

	// NoMessages drops the message placeholder.
	NoMessages bool
	HasSuccess bool
	HasWarning bool
	HasError   bool

	// Language selects the locale for widget chrome; empty means the
	// translator's fallback.
	Language string
	// Translator resolves chrome and error messages; nil means i18n.Default().
	Translator i18n.Translator
}
