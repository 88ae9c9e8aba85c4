package prompt

import (
	"github.com/goliatone/go-formwidget/pkg/i18n"
)

// Theme carries optional prefixes for notices printed between prompts.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures a Filler.
type Option func(*Filler)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(f *Filler) {
		if driver != nil {
			f.driver = driver
		}
	}
}

// WithTranslator sets the translator for prompt texts and validation
// messages. Defaults to i18n.Default().
func WithTranslator(t i18n.Translator) Option {
	return func(f *Filler) {
		if t != nil {
			f.translator = t
		}
	}
}

// WithLocale sets the locale prompts are asked in.
func WithLocale(locale string) Option {
	return func(f *Filler) {
		f.locale = locale
	}
}

// WithTheme applies notice prefixes.
func WithTheme(theme Theme) Option {
	return func(f *Filler) {
		f.theme = theme
	}
}
