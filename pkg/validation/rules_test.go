package validation_test

import (
	"fmt"
	"testing"

	"github.com/goliatone/go-formwidget/pkg/i18n"
	"github.com/goliatone/go-formwidget/pkg/validation"
)

func TestRules(t *testing.T) {
	cases := []struct {
		name    string
		rule    validation.Rule
		value   any
		wantMsg string
	}{
		{name: "non empty ok", rule: validation.NonEmpty{}, value: "x"},
		{name: "non empty blank", rule: validation.NonEmpty{}, value: "  ", wantMsg: validation.MsgNonEmpty},
		{name: "non empty nil", rule: validation.NonEmpty{}, value: nil, wantMsg: validation.MsgNonEmpty},
		{name: "non empty empty list", rule: validation.NonEmpty{}, value: []any{}, wantMsg: validation.MsgNonEmpty},
		{name: "integer string", rule: validation.Integer{}, value: "42"},
		{name: "integer bad", rule: validation.Integer{}, value: "4.2", wantMsg: validation.MsgInteger},
		{name: "decimal string", rule: validation.Decimal{}, value: "4.2"},
		{name: "decimal bad", rule: validation.Decimal{}, value: "four", wantMsg: validation.MsgDecimal},
		{name: "email ok", rule: validation.Email{}, value: "a@example.com"},
		{name: "email display name rejected", rule: validation.Email{}, value: "A <a@example.com>", wantMsg: validation.MsgEmail},
		{name: "url ok", rule: validation.URL{}, value: "https://example.com/x"},
		{name: "url relative", rule: validation.URL{}, value: "/x", wantMsg: validation.MsgURL},
		{name: "pattern", rule: validation.MustPattern(`^[a-z]+$`), value: "Abc", wantMsg: validation.MsgPattern},
		{name: "greater or equal", rule: validation.GreaterOrEqual{Than: 5}, value: 3, wantMsg: validation.MsgGreaterOrEqual},
		{name: "less or equal", rule: validation.LessOrEqual{Than: 5}, value: 3},
		{name: "max length", rule: validation.MaxLength{Max: 3}, value: "абвг", wantMsg: validation.MsgMaxLength},
		{name: "choice list", rule: validation.Choice{Allowed: []string{"a", "b"}}, value: []string{"a", "c"}, wantMsg: validation.MsgChoice},
		{name: "empty skips format rules", rule: validation.Email{}, value: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.rule.Validate(tc.value)
			if tc.wantMsg == "" {
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			ruleErr, ok := validation.AsRuleError(err)
			if !ok {
				t.Fatalf("expected RuleError, got %v", err)
			}
			if ruleErr.MessageID != tc.wantMsg {
				t.Fatalf("message id: want %q, got %q", tc.wantMsg, ruleErr.MessageID)
			}
		})
	}
}

func TestRuleError_MessageInterpolatesArgs(t *testing.T) {
	err := validation.GreaterOrEqual{Than: 2.5}.Validate(1)
	ruleErr, ok := validation.AsRuleError(fmt.Errorf("wrapped: %w", err))
	if !ok {
		t.Fatalf("expected wrapped RuleError to unwrap")
	}

	if got := ruleErr.Message(i18n.Default(), "en"); got != "Value must be greater than or equal to 2.5" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := ruleErr.Error(); got != "Value must be greater than or equal to 2.5" {
		t.Fatalf("Error() should use the default catalog, got %q", got)
	}
	if got := ruleErr.Message(nil, "en"); got != validation.MsgGreaterOrEqual {
		t.Fatalf("expected key fallback without translator, got %q", got)
	}
}

func TestIsEmpty(t *testing.T) {
	empty := []any{nil, "", " ", 0, 0.0, false, []string{}, map[string]any{}}
	for _, v := range empty {
		if !validation.IsEmpty(v) {
			t.Fatalf("expected %#v to be empty", v)
		}
	}
	filled := []any{"a", 1, true, []any{""}, map[string]any{"a": nil}}
	for _, v := range filled {
		if validation.IsEmpty(v) {
			t.Fatalf("expected %#v to be non-empty", v)
		}
	}
}
