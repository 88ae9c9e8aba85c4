package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formwidget/pkg/i18n"
)

// Options describe per-request data that renderers can use to customise
// their output without mutating how the widget tree was built.
type Options struct {
	// Locale overrides the renderer locale for this request.
	Locale string
	// Values pre-populates widgets by name through SetVal before rendering.
	Values map[string]any
	// Validate runs widget.ValidateAll and merges the resulting messages into
	// Errors.
	Validate bool
	// Errors surfaces server-side validation feedback keyed by widget name.
	// Use MapErrorPayload to derive it from API error paths.
	Errors map[string][]string
	// FormErrors are rendered above the tree.
	FormErrors []string
	// Hidden fields are emitted as sorted hidden inputs before the tree.
	Hidden []HiddenField
	// Theme and Variant override the selector defaults configured with
	// WithThemeSelector.
	Theme   string
	Variant string
}

type config struct {
	translator   i18n.Translator
	locale       string
	classes      map[string]string
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
}

// Option customises renderer construction.
type Option func(*config)

// WithTranslator renders widget chrome through t instead of each widget's own
// translator.
func WithTranslator(t i18n.Translator) Option {
	return func(c *config) {
		c.translator = t
	}
}

// WithLocale sets the default locale used when Options.Locale is empty.
func WithLocale(locale string) Option {
	return func(c *config) {
		c.locale = locale
	}
}

// WithClasses overrides chrome CSS classes by key. Theme tokens take
// precedence over these values.
func WithClasses(classes map[string]string) Option {
	return func(c *config) {
		if len(classes) == 0 {
			return
		}
		if c.classes == nil {
			c.classes = make(map[string]string, len(classes))
		}
		for key, value := range classes {
			c.classes[key] = value
		}
	}
}

// WithThemeSelector resolves CSS class overrides from go-theme manifests.
// Tokens prefixed with "class." map to RenderContext class keys, so a token
// "class.control" replaces the default "form-control" class.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(c *config) {
		c.selector = selector
		c.themeName = name
		c.themeVariant = variant
	}
}

func newConfig(options []Option) config {
	var cfg config
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (c config) localeFor(opts Options) string {
	if opts.Locale != "" {
		return opts.Locale
	}
	return c.locale
}
