package rules

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRequired(t *testing.T) {
	rule := Required("required")
	if _, ok := rule.Eval("", nil); ok {
		t.Fatalf("expected empty value to fail")
	}
	for _, value := range []string{"a", " ", "test"} {
		if msg, ok := rule.Eval(value, nil); !ok {
			t.Fatalf("expected %q to pass, got %q", value, msg)
		}
	}
}

func TestMinLength(t *testing.T) {
	rule := MinLength(6, "The minimum length is 6.")

	msg, ok := rule.Eval("abc", nil)
	if ok || msg != "The minimum length is 6." {
		t.Fatalf("expected min length failure, got ok=%v msg=%q", ok, msg)
	}
	if _, ok := rule.Eval("", nil); !ok {
		t.Fatalf("expected empty value to be left to required")
	}
	if _, ok := rule.Eval("abcdef", nil); !ok {
		t.Fatalf("expected 6 characters to pass")
	}
	if _, ok := rule.Eval("ñandú!", nil); !ok {
		t.Fatalf("expected rune count to be used")
	}
}

func TestMaxLength(t *testing.T) {
	rule := MaxLength(15, "The maximum length is 15.")

	if _, ok := rule.Eval(strings.Repeat("a", 15), nil); !ok {
		t.Fatalf("expected 15 characters to pass")
	}
	msg, ok := rule.Eval(strings.Repeat("a", 16), nil)
	if ok || msg != "The maximum length is 15." {
		t.Fatalf("expected 16 characters to fail, got ok=%v msg=%q", ok, msg)
	}
}

func TestPattern(t *testing.T) {
	rule := Pattern(EmailPattern, "Invalid Email.")

	if _, ok := rule.Eval("", nil); !ok {
		t.Fatalf("expected empty value to pass pattern")
	}
	if _, ok := rule.Eval("test@test.com", nil); !ok {
		t.Fatalf("expected address to match")
	}
	if msg, ok := rule.Eval("not-an-email", nil); ok || msg != "Invalid Email." {
		t.Fatalf("expected mismatch, got ok=%v msg=%q", ok, msg)
	}
}

func TestPatternString_InvalidExpression(t *testing.T) {
	_, err := PatternString("(", "bad")
	if !errors.Is(err, ErrInvalidRule) {
		t.Fatalf("expected ErrInvalidRule, got %v", err)
	}
}

func TestCustom_UsesPredicateMessage(t *testing.T) {
	values := map[string]string{"password": "12345678"}
	lookup := func(name string) string { return values[name] }

	rule := EqualTo("password", "Password do not match")
	if msg, ok := rule.Eval("1234567", lookup); ok || msg != "Password do not match" {
		t.Fatalf("expected mismatch message, got ok=%v msg=%q", ok, msg)
	}
	if _, ok := rule.Eval("12345678", lookup); !ok {
		t.Fatalf("expected equal values to pass")
	}

	dynamic := Custom("password", func(value, other string) (string, bool) {
		return "differs from " + other, value == other
	})
	if msg, _ := dynamic.Eval("x", lookup); msg != "differs from 12345678" {
		t.Fatalf("expected predicate message, got %q", msg)
	}
}

func TestRuleValidate(t *testing.T) {
	cases := map[string]Rule{
		"negative length": MinLength(-1, "x"),
		"nil pattern":     Pattern(nil, "x"),
		"custom no field": Custom("", func(string, string) (string, bool) { return "", true }),
		"custom no check": Custom("other", nil),
		"unknown kind":    {Kind: "nope"},
	}
	for name, rule := range cases {
		t.Run(name, func(t *testing.T) {
			if err := rule.Validate(); !errors.Is(err, ErrInvalidRule) {
				t.Fatalf("expected ErrInvalidRule, got %v", err)
			}
		})
	}
}

func TestSetEvaluate_FirstErrorWins(t *testing.T) {
	set, err := NewSet("password",
		MaxLength(15, "The maximum length is 15."),
		MinLength(6, "The minimum length is 6."),
		Required("Password is required."),
	)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}

	cases := []struct {
		value string
		want  Result
	}{
		{"", Result{Field: "password", Kind: KindRequired, Message: "Password is required."}},
		{"abc", Result{Field: "password", Kind: KindMinLength, Message: "The minimum length is 6."}},
		{strings.Repeat("9", 16), Result{Field: "password", Kind: KindMaxLength, Message: "The maximum length is 15."}},
		{"12345678", Result{Field: "password", Valid: true}},
	}
	for _, tc := range cases {
		got := set.Evaluate(tc.value, nil)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("evaluate %q mismatch (-want +got):\n%s", tc.value, diff)
		}
	}
}

func TestSetEvaluate_RequiredBeforeMinLength(t *testing.T) {
	set, err := NewSet("password", Required("required"), MinLength(6, "short"))
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	if got := set.Evaluate("", nil); got.Kind != KindRequired {
		t.Fatalf("expected required to fire first, got %+v", got)
	}
}

func TestSetDependsOn(t *testing.T) {
	set, err := NewSet("confirmPassword",
		Required("required"),
		EqualTo("password", "mismatch"),
		EqualTo("password", "mismatch again"),
		EqualTo("confirmPassword", "self"),
	)
	if err != nil {
		t.Fatalf("new set: %v", err)
	}
	if diff := cmp.Diff([]string{"password"}, set.DependsOn()); diff != "" {
		t.Fatalf("depends on mismatch (-want +got):\n%s", diff)
	}
}

func TestNewSet_RejectsInvalidRules(t *testing.T) {
	if _, err := NewSet("", Required("x")); !errors.Is(err, ErrInvalidRule) {
		t.Fatalf("expected missing field name error, got %v", err)
	}
	if _, err := NewSet("name", MaxLength(-2, "x")); !errors.Is(err, ErrInvalidRule) {
		t.Fatalf("expected invalid rule error, got %v", err)
	}
}

func TestResultErr(t *testing.T) {
	if err := Valid("name").Err(); err != nil {
		t.Fatalf("expected nil error for valid result, got %v", err)
	}
	err := Result{Field: "email", Kind: KindPattern, Message: "Invalid Email."}.Err()
	var fieldErr FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected FieldError, got %T", err)
	}
	if err.Error() != "email: Invalid Email." {
		t.Fatalf("unexpected error text %q", err.Error())
	}
}
