package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern is the address check used by the account screen.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Result is the outcome of evaluating a field's rule set.
type Result struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

// Valid builds a passing result for field.
func Valid(field string) Result {
	return Result{Field: field, Valid: true}
}

// Err converts an invalid result into a FieldError. It returns nil for valid
// results.
func (r Result) Err() error {
	if r.Valid {
		return nil
	}
	return FieldError{Field: r.Field, Kind: r.Kind, Message: r.Message}
}

// FieldError surfaces a failing rule as an error value.
type FieldError struct {
	Field   string
	Kind    Kind
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Set is the ordered rule set declared for one field.
type Set struct {
	Field string
	Rules []Rule
}

// NewSet validates every rule and returns the set for field.
func NewSet(field string, rules ...Rule) (Set, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return Set{}, fmt.Errorf("%w: field name is required", ErrInvalidRule)
	}
	for i, rule := range rules {
		if err := rule.Validate(); err != nil {
			return Set{}, fmt.Errorf("rules: field %q rule %d: %w", field, i, err)
		}
	}
	return Set{Field: field, Rules: append([]Rule(nil), rules...)}, nil
}

// Evaluate runs the rules in declaration order and stops at the first failure.
func (s Set) Evaluate(value string, lookup Lookup) Result {
	for _, rule := range s.Rules {
		if msg, ok := rule.Eval(value, lookup); !ok {
			return Result{Field: s.Field, Kind: rule.Kind, Message: msg}
		}
	}
	return Valid(s.Field)
}

// DependsOn lists the other fields referenced by custom rules, without
// duplicates and in declaration order.
func (s Set) DependsOn() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, rule := range s.Rules {
		if rule.Kind != KindCustom || rule.Field == "" || rule.Field == s.Field {
			continue
		}
		if _, ok := seen[rule.Field]; ok {
			continue
		}
		seen[rule.Field] = struct{}{}
		out = append(out, rule.Field)
	}
	return out
}

// Has reports whether the set declares a rule of kind.
func (s Set) Has(kind Kind) bool {
	for _, rule := range s.Rules {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}
