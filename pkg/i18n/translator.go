package i18n

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslator is passed to MissingHandler when no translator is
	// configured.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
	// ErrMissingTranslation reports a key absent from every candidate locale.
	ErrMissingTranslation = errors.New("i18n: translation not found")
)

// Translator resolves a message key for a locale. Args are interpolation
// values; maps contribute named arguments.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate implements Translator.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingHandler produces the string used when a translation cannot be
// resolved.
type MissingHandler func(locale, key string, args []any, err error) string

// Text translates key, falling back to the key itself when the translator is
// missing or fails.
func Text(t Translator, locale, key string, args ...any) string {
	return TextOr(t, locale, key, nil, args...)
}

// TextOr translates key and routes failures through onMissing.
func TextOr(t Translator, locale, key string, onMissing MissingHandler, args ...any) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if onMissing == nil {
		onMissing = missingDefault
	}
	if t == nil {
		return onMissing(locale, key, args, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key, args...)
	if err != nil || strings.TrimSpace(msg) == "" {
		return onMissing(locale, key, args, err)
	}
	return msg
}

func missingDefault(_ string, key string, _ []any, _ error) string {
	return key
}
