package validation

import (
	"fmt"
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Message keys used by the built-in rules.
const (
	MsgNonEmpty       = "validation.non_empty"
	MsgInteger        = "validation.integer"
	MsgDecimal        = "validation.decimal"
	MsgEmail          = "validation.email"
	MsgURL            = "validation.url"
	MsgPattern        = "validation.pattern"
	MsgGreaterOrEqual = "validation.greater_or_equal"
	MsgLessOrEqual    = "validation.less_or_equal"
	MsgMaxLength      = "validation.max_length"
	MsgChoice         = "validation.choice"
)

// Rule is a pass/fail predicate over a widget value. Failures are returned as
// *RuleError.
type Rule interface {
	Validate(value any) error
}

// RuleFunc adapts a function to Rule.
type RuleFunc func(value any) error

// Validate implements Rule.
func (fn RuleFunc) Validate(value any) error {
	return fn(value)
}

// NonEmpty fails on empty values (see IsEmpty).
type NonEmpty struct{}

// Validate implements Rule.
func (NonEmpty) Validate(value any) error {
	if IsEmpty(value) {
		return NewRuleError(MsgNonEmpty, nil)
	}
	return nil
}

// Integer accepts empty values, integers and strings holding an integer.
type Integer struct{}

// Validate implements Rule.
func (Integer) Validate(value any) error {
	if IsEmpty(value) {
		return nil
	}
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
	case string:
		if _, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return nil
		}
	}
	return NewRuleError(MsgInteger, nil)
}

// Decimal accepts empty values, numbers and numeric strings.
type Decimal struct{}

// Validate implements Rule.
func (Decimal) Validate(value any) error {
	if IsEmpty(value) {
		return nil
	}
	if _, ok := toFloat(value); ok {
		return nil
	}
	return NewRuleError(MsgDecimal, nil)
}

// Email accepts empty values and bare email addresses.
type Email struct{}

// Validate implements Rule.
func (Email) Validate(value any) error {
	s, ok := value.(string)
	if IsEmpty(value) {
		return nil
	}
	if ok {
		addr, err := mail.ParseAddress(s)
		if err == nil && addr.Address == strings.TrimSpace(s) {
			return nil
		}
	}
	return NewRuleError(MsgEmail, nil)
}

// URL accepts empty values and absolute http(s) URLs.
type URL struct{}

// Validate implements Rule.
func (URL) Validate(value any) error {
	if IsEmpty(value) {
		return nil
	}
	if s, ok := value.(string); ok {
		u, err := url.ParseRequestURI(strings.TrimSpace(s))
		if err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
			return nil
		}
	}
	return NewRuleError(MsgURL, nil)
}

// Pattern requires string values to match a regular expression.
type Pattern struct {
	Regexp *regexp.Regexp
}

// MustPattern compiles expr into a Pattern rule.
func MustPattern(expr string) Pattern {
	return Pattern{Regexp: regexp.MustCompile(expr)}
}

// Validate implements Rule.
func (p Pattern) Validate(value any) error {
	if IsEmpty(value) || p.Regexp == nil {
		return nil
	}
	if p.Regexp.MatchString(fmt.Sprint(value)) {
		return nil
	}
	return NewRuleError(MsgPattern, map[string]any{"pattern": p.Regexp.String()})
}

// GreaterOrEqual requires numeric values to be >= Than.
type GreaterOrEqual struct {
	Than float64
}

// Validate implements Rule.
func (r GreaterOrEqual) Validate(value any) error {
	if IsEmpty(value) {
		return nil
	}
	if f, ok := toFloat(value); ok && f >= r.Than {
		return nil
	}
	return NewRuleError(MsgGreaterOrEqual, map[string]any{"than": formatNumber(r.Than)})
}

// LessOrEqual requires numeric values to be <= Than.
type LessOrEqual struct {
	Than float64
}

// Validate implements Rule.
func (r LessOrEqual) Validate(value any) error {
	if IsEmpty(value) {
		return nil
	}
	if f, ok := toFloat(value); ok && f <= r.Than {
		return nil
	}
	return NewRuleError(MsgLessOrEqual, map[string]any{"than": formatNumber(r.Than)})
}

// MaxLength limits the rune length of string values.
type MaxLength struct {
	Max int
}

// Validate implements Rule.
func (r MaxLength) Validate(value any) error {
	s, ok := value.(string)
	if !ok || r.Max <= 0 {
		return nil
	}
	if utf8.RuneCountInString(s) <= r.Max {
		return nil
	}
	return NewRuleError(MsgMaxLength, map[string]any{"max": r.Max})
}

// Choice restricts values to a fixed set. Lists are checked item by item.
type Choice struct {
	Allowed []string
}

// Validate implements Rule.
func (r Choice) Validate(value any) error {
	if IsEmpty(value) {
		return nil
	}
	allowed := make(map[string]struct{}, len(r.Allowed))
	for _, item := range r.Allowed {
		allowed[item] = struct{}{}
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			if _, ok := allowed[fmt.Sprint(rv.Index(i).Interface())]; !ok {
				return NewRuleError(MsgChoice, nil)
			}
		}
		return nil
	}
	if _, ok := allowed[fmt.Sprint(value)]; !ok {
		return NewRuleError(MsgChoice, nil)
	}
	return nil
}

// IsEmpty reports whether value is empty: nil, zero numbers, false, blank
// strings and empty slices or maps.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	case bool:
		return !v
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case uint:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
