package account

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/notify"
	"github.com/goliatone/go-formbind/pkg/screen"
	"github.com/goliatone/go-formbind/pkg/testsupport"
	"github.com/google/go-cmp/cmp"
)

const defaultJSON = `{"username":"test","email":"test@test.com","password":"12345678","confirmPassword":"12345678"}`

func newAccount(t *testing.T, opts ...Option) (*Screen, *notify.Recorder) {
	t.Helper()
	rec := &notify.Recorder{}
	s, err := New(append([]Option{WithNotifier(rec)}, opts...)...)
	if err != nil {
		t.Fatalf("new account screen: %v", err)
	}
	return s, rec
}

func TestDefaults_ValidAndSubmitted(t *testing.T) {
	s, rec := newAccount(t)

	if !s.CanSubmit() {
		t.Fatalf("expected defaults to be valid, errors=%v", s.Form().Errors())
	}
	ok, err := s.Submit(context.Background())
	if err != nil || !ok {
		t.Fatalf("submit = %v, %v", ok, err)
	}
	testsupport.AssertNotifications(t, rec, notify.Message{Title: "Form Data", Message: defaultJSON})
}

func TestFieldsAndActions(t *testing.T) {
	s, _ := newAccount(t)

	type view struct {
		Name, Label string
		Secret      bool
		ReturnKey   string
		Blur        bool
	}
	var got []view
	for _, f := range s.Fields() {
		got = append(got, view{f.Name(), f.Label(), f.Secret(), f.ReturnKey(), f.BlurOnSubmit()})
	}
	want := []view{
		{FieldUsername, "Username", false, "next", false},
		{FieldEmail, "Email", false, "next", false},
		{FieldPassword, "Password", true, "next", false},
		{FieldConfirmPassword, "Confirm Password", true, "next", false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	wantActions := []screen.Action{
		{ID: screen.ActionSubmit, Label: "Submit"},
		{ID: screen.ActionReset, Label: "Reset"},
	}
	if diff := cmp.Diff(wantActions, s.Actions()); diff != "" {
		t.Fatalf("actions mismatch (-want +got):\n%s", diff)
	}
}

func TestUsernameOverride(t *testing.T) {
	s, _ := newAccount(t)

	s.Username().OnChange("abcdefghijkl")
	if got := s.Username().Value(); got != OverrideText {
		t.Fatalf("expected override text, got %q", got)
	}

	s.Username().OnChange("abcdefghijk")
	if got := s.Username().Value(); got != "abcdefghijk" {
		t.Fatalf("expected 11 chars kept, got %q", got)
	}

	s.Username().OnChange("")
	if got := s.Username().Error(); got != "Username is required." {
		t.Fatalf("expected required error, got %q", got)
	}
	if s.CanSubmit() {
		t.Fatalf("expected submit disabled")
	}
}

func TestFieldMessages(t *testing.T) {
	cases := []struct {
		name  string
		field func(*Screen) *form.Field
		input string
		want  string
	}{
		{"email invalid", (*Screen).Email, "not-an-email", "Invalid Email."},
		{"email empty passes", (*Screen).Email, "", ""},
		{"password short", (*Screen).Password, "abc", "The minimum length is 6."},
		{"password empty", (*Screen).Password, "", "Password is required."},
		{"password 16", (*Screen).Password, strings.Repeat("a", 16), "The maximum length is 15."},
		{"password 15", (*Screen).Password, strings.Repeat("1", 15), ""},
		{"confirm empty", (*Screen).ConfirmPassword, "", "Confirm Password is required."},
		{"confirm mismatch", (*Screen).ConfirmPassword, "1234567", "Password do not match"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newAccount(t)
			field := tc.field(s)
			field.OnChange(tc.input)
			if got := field.Error(); got != tc.want {
				t.Fatalf("error = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestConfirmPasswordFollowsPassword(t *testing.T) {
	s, _ := newAccount(t)

	s.ConfirmPassword().OnChange("1234567")
	if s.CanSubmit() {
		t.Fatalf("expected invalid form")
	}
	if got := s.ConfirmPassword().Error(); got != "Password do not match" {
		t.Fatalf("unexpected confirm error %q", got)
	}

	s.Password().OnChange("1234567")
	if got := s.ConfirmPassword().Error(); got != "" {
		t.Fatalf("expected confirm to become valid, got %q", got)
	}
	if !s.CanSubmit() {
		t.Fatalf("expected valid form, errors=%v", s.Form().Errors())
	}
}

func TestReset(t *testing.T) {
	s, rec := newAccount(t)

	s.Username().OnChange("")
	s.Email().OnChange("nope")
	s.Password().OnChange("abc")
	s.ConfirmPassword().OnChange("xyz")

	if ok, _ := s.Submit(context.Background()); ok {
		t.Fatalf("expected blocked submit")
	}

	s.Reset()
	if got := s.Form().Values().String(); got != defaultJSON {
		t.Fatalf("values after reset = %s", got)
	}
	if !s.CanSubmit() {
		t.Fatalf("expected valid form after reset")
	}
	for _, f := range s.Fields() {
		if f.Error() != "" {
			t.Fatalf("expected %s error cleared, got %q", f.Name(), f.Error())
		}
	}
	testsupport.AssertNotifications(t, rec)
}

func TestOnSubmitMode(t *testing.T) {
	s, _ := newAccount(t, WithMode(form.ModeOnSubmit))

	s.Password().OnChange("abc")
	if s.Password().Error() != "" {
		t.Fatalf("expected no surfaced error before submit")
	}
	if s.CanSubmit() {
		t.Fatalf("expected validity to track the write")
	}
	if ok, _ := s.Submit(context.Background()); ok {
		t.Fatalf("expected blocked submit")
	}
	if got := s.Password().Error(); got != "The minimum length is 6." {
		t.Fatalf("expected surfaced error after submit, got %q", got)
	}
}
