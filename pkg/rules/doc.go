// Package rules implements the field validation predicates used by forms.
//
// A Rule is a tagged value (required, minLength, maxLength, pattern, custom)
// carrying its own message. Rules for a field are grouped in a Set and are
// evaluated in declaration order; the first failing rule decides the Result.
// Length checks count runes and values are never trimmed, so "" is the only
// value that fails Required.
//
// Custom rules compare a value with another field and declare that field as a
// dependency. Owners use Set.DependsOn to re-run the rule when the other field
// changes:
//
//	confirm, _ := rules.NewSet("confirmPassword",
//	    rules.Required("Confirm Password is required."),
//	    rules.EqualTo("password", "Password do not match"),
//	)
//	confirm.DependsOn() // ["password"]
package rules
