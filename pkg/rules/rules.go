package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Kind identifies the validation predicate carried by a Rule.
type Kind string

const (
	KindRequired  Kind = "required"
	KindMinLength Kind = "minLength"
	KindMaxLength Kind = "maxLength"
	KindPattern   Kind = "pattern"
	KindCustom    Kind = "custom"
)

// ErrInvalidRule is returned when a rule declaration cannot be evaluated.
var ErrInvalidRule = errors.New("rules: invalid rule")

// Predicate compares a field value with the value of the field it depends on.
// It returns ok=false together with the message to surface when the check
// fails.
type Predicate func(value, other string) (message string, ok bool)

// Lookup resolves the current value of another field.
type Lookup func(name string) string

// Rule is a single tagged validation predicate. Only the members relevant to
// Kind are populated; use the constructors rather than building literals.
type Rule struct {
	Kind    Kind
	Message string

	// Length is the threshold for minLength/maxLength.
	Length int
	// Pattern is the compiled expression for pattern rules.
	Pattern *regexp.Regexp
	// Field names the dependency of a custom rule.
	Field string
	// Check is the cross-field predicate of a custom rule.
	Check Predicate
}

// Required fails when the value is the empty string.
func Required(message string) Rule {
	return Rule{Kind: KindRequired, Message: message}
}

// MinLength fails when the value is non-empty and shorter than n runes. Empty
// values are left to Required.
func MinLength(n int, message string) Rule {
	return Rule{Kind: KindMinLength, Length: n, Message: message}
}

// MaxLength fails when the value is longer than n runes.
func MaxLength(n int, message string) Rule {
	return Rule{Kind: KindMaxLength, Length: n, Message: message}
}

// Pattern fails when the value is non-empty and does not match re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{Kind: KindPattern, Pattern: re, Message: message}
}

// PatternString compiles expr and returns a pattern rule.
func PatternString(expr, message string) (Rule, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, fmt.Errorf("%w: pattern %q: %v", ErrInvalidRule, expr, err)
	}
	return Pattern(re, message), nil
}

// Custom evaluates check against the value of field. The rule declares a
// dependency on field so owners can re-run it when field changes.
func Custom(field string, check Predicate) Rule {
	return Rule{Kind: KindCustom, Field: field, Check: check}
}

// EqualTo is a custom rule that fails with message unless the value equals
// the value of field.
func EqualTo(field, message string) Rule {
	return Custom(field, func(value, other string) (string, bool) {
		if value == other {
			return "", true
		}
		return message, false
	})
}

// Validate reports declaration errors such as negative lengths or missing
// predicates.
func (r Rule) Validate() error {
	switch r.Kind {
	case KindRequired:
		return nil
	case KindMinLength, KindMaxLength:
		if r.Length < 0 {
			return fmt.Errorf("%w: %s length must not be negative", ErrInvalidRule, r.Kind)
		}
		return nil
	case KindPattern:
		if r.Pattern == nil {
			return fmt.Errorf("%w: pattern expression is required", ErrInvalidRule)
		}
		return nil
	case KindCustom:
		if strings.TrimSpace(r.Field) == "" {
			return fmt.Errorf("%w: custom rule requires a dependency field", ErrInvalidRule)
		}
		if r.Check == nil {
			return fmt.Errorf("%w: custom rule requires a predicate", ErrInvalidRule)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRule, r.Kind)
	}
}

// Eval runs the rule against value. The returned message is empty when the
// rule passes.
func (r Rule) Eval(value string, lookup Lookup) (string, bool) {
	switch r.Kind {
	case KindRequired:
		if value == "" {
			return r.Message, false
		}
	case KindMinLength:
		if n := utf8.RuneCountInString(value); n > 0 && n < r.Length {
			return r.Message, false
		}
	case KindMaxLength:
		if utf8.RuneCountInString(value) > r.Length {
			return r.Message, false
		}
	case KindPattern:
		if value != "" && r.Pattern != nil && !r.Pattern.MatchString(value) {
			return r.Message, false
		}
	case KindCustom:
		if r.Check == nil {
			return "", true
		}
		other := ""
		if lookup != nil {
			other = lookup(r.Field)
		}
		if msg, ok := r.Check(value, other); !ok {
			return msg, false
		}
	}
	return "", true
}

// String renders a short description used in logs.
func (r Rule) String() string {
	switch r.Kind {
	case KindMinLength, KindMaxLength:
		return fmt.Sprintf("%s(%d)", r.Kind, r.Length)
	case KindPattern:
		if r.Pattern != nil {
			return fmt.Sprintf("%s(%s)", r.Kind, r.Pattern.String())
		}
	case KindCustom:
		return fmt.Sprintf("%s(%s)", r.Kind, r.Field)
	}
	return string(r.Kind)
}
