// Package form owns shared form state and binds named fields to it.
//
// A Form is created with its defaults and a validation Mode, then fields are
// attached with Bind. Each binder exposes the live value, change and blur
// handlers and the surfaced error of one field:
//
//	f := form.New(
//	    form.WithDefault("password", "12345678"),
//	    form.WithDefault("confirmPassword", "12345678"),
//	)
//	password, _ := f.Bind("password", form.WithRules(rules.MinLength(6, "The minimum length is 6.")))
//	confirm, _ := f.Bind("confirmPassword", form.WithRules(rules.EqualTo("password", "Password do not match")))
//
//	password.OnChange("abc")
//	password.Error() // "The minimum length is 6."
//	confirm.Error()  // "Password do not match" (re-run through the dependency edge)
//	f.IsValid()      // false
//
// Form validity is recomputed over every rule set on each write, whatever the
// mode. The mode only decides when a field's surfaced result is refreshed.
// Custom rules declare dependency edges, so writing to a field re-validates
// every field whose rules read it.
//
// Submit validates everything and only calls the submit handler when the form
// is valid. Reset restores the declared defaults.
package form
