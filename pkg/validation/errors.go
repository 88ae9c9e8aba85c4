package validation

import (
	"errors"

	"github.com/goliatone/go-formwidget/pkg/i18n"
)

// RuleError is a user-facing validation failure. It carries a message key and
// interpolation arguments rather than a rendered string so callers can
// localise it late.
type RuleError struct {
	MessageID string
	Args      map[string]any
}

// NewRuleError builds a RuleError.
func NewRuleError(messageID string, args map[string]any) *RuleError {
	return &RuleError{MessageID: messageID, Args: args}
}

// Error renders the message with the default catalog and its fallback locale.
func (e *RuleError) Error() string {
	return e.Message(i18n.Default(), "")
}

// Message renders the message through t for locale. Missing translations
// render as the message key.
func (e *RuleError) Message(t i18n.Translator, locale string) string {
	if e == nil {
		return ""
	}
	if len(e.Args) == 0 {
		return i18n.Text(t, locale, e.MessageID)
	}
	return i18n.Text(t, locale, e.MessageID, e.Args)
}

// AsRuleError unwraps err into a RuleError.
func AsRuleError(err error) (*RuleError, bool) {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr, true
	}
	return nil, false
}
