package schema

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/notify"
	"github.com/goliatone/go-formbind/pkg/rules"
)

func loadTestdata(t *testing.T) *Store {
	t.Helper()
	store, err := LoadFS(os.DirFS("testdata"))
	if err != nil {
		t.Fatalf("load testdata: %v", err)
	}
	return store
}

func TestLoadFS_Testdata(t *testing.T) {
	store := loadTestdata(t)

	if diff := cmp.Diff([]string{"account", "newsletter"}, store.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	def, ok := store.Definition("newsletter")
	if !ok {
		t.Fatalf("expected newsletter definition")
	}
	if def.Mode != "onBlur" || def.Fields[0].Placeholder != "you@example.com" {
		t.Fatalf("unexpected definition %+v", def)
	}
}

func TestBuild_AccountDefinition(t *testing.T) {
	def, _ := loadTestdata(t).Definition("account")
	rec := &notify.Recorder{}

	s, err := def.Build(WithNotifier(rec))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !s.CanSubmit() {
		t.Fatalf("expected defaults to be valid, errors=%v", s.Form().Errors())
	}
	if s.Form().ID() != "account" {
		t.Fatalf("expected definition id as form id, got %q", s.Form().ID())
	}

	confirm, _ := s.Field("confirmPassword")
	password, _ := s.Field("password")
	if !confirm.Secret() || confirm.Label() != "Confirm Password" {
		t.Fatalf("unexpected presentation props")
	}

	confirm.OnChange("1234567")
	if got := confirm.Error(); got != "Password do not match" {
		t.Fatalf("unexpected confirm error %q", got)
	}
	password.OnChange("1234567")
	if got := confirm.Error(); got != "" {
		t.Fatalf("expected dependency propagation, got %q", got)
	}

	s.Reset()
	if ok, err := s.Submit(context.Background()); !ok || err != nil {
		t.Fatalf("submit = %v, %v", ok, err)
	}
	want := `{"username":"test","email":"test@test.com","password":"12345678","confirmPassword":"12345678"}`
	if got := rec.Messages()[0].Message; got != want {
		t.Fatalf("submitted %s; want %s", got, want)
	}
}

func TestBuild_ModeAndLabels(t *testing.T) {
	def, _ := loadTestdata(t).Definition("newsletter")
	s, err := def.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if s.Form().Mode() != form.ModeOnBlur {
		t.Fatalf("expected onBlur mode, got %q", s.Form().Mode())
	}
	if s.Actions()[0].Label != "Subscribe" || s.Actions()[1].Label != "Reset" {
		t.Fatalf("unexpected actions %+v", s.Actions())
	}
	email, _ := s.Field("email")
	if email.ReturnKey() != "done" || !email.BlurOnSubmit() {
		t.Fatalf("expected custom return key")
	}

	email.OnChange("nope")
	if email.Error() != "" {
		t.Fatalf("expected no surfaced error before blur")
	}
	email.OnBlur()
	if email.Error() != "Invalid Email." {
		t.Fatalf("expected error after blur, got %q", email.Error())
	}
}

func TestBuild_ChangeOverride(t *testing.T) {
	def, _ := loadTestdata(t).Definition("account")
	s, err := def.Build(WithChangeOverride("username", func(f *form.Form) func(string) {
		return func(text string) {
			_ = f.SetValue("username", "["+text+"]", form.ShouldValidate())
		}
	}))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	username, _ := s.Field("username")
	username.OnChange("x")
	if username.Value() != "[x]" {
		t.Fatalf("expected override to run, got %q", username.Value())
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"empty":         "  ",
		"garbage":       "{not: [valid",
		"no fields":     `{"id":"x","fields":[]}`,
		"no name":       `{"fields":[{"label":"A"}]}`,
		"duplicate":     `{"fields":[{"name":"a"},{"name":"a"}]}`,
		"bad kind":      `{"fields":[{"name":"a","rules":[{"kind":"between"}]}]}`,
		"bad pattern":   `{"fields":[{"name":"a","rules":[{"kind":"pattern","pattern":"("}]}]}`,
		"no pattern":    `{"fields":[{"name":"a","rules":[{"kind":"pattern"}]}]}`,
		"bad preset":    `{"fields":[{"name":"a","rules":[{"kind":"pattern","preset":"phone"}]}]}`,
		"unknown equal": `{"fields":[{"name":"a","rules":[{"kind":"equalTo","field":"b"}]}]}`,
		"bad mode":      `{"mode":"sometimes","fields":[{"name":"a"}]}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(raw), name); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	_, err := Parse([]byte(`{"fields":[{"name":"a"},{"name":"a"}]}`), "dup.json")
	if !errors.Is(err, ErrInvalidDefinition) {
		t.Fatalf("expected ErrInvalidDefinition, got %v", err)
	}
}

func TestLoadFS_DuplicateID(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("id: same\nfields:\n  - name: x\n")},
		"b.json": {Data: []byte(`{"id":"same","fields":[{"name":"y"}]}`)},
	}
	if _, err := LoadFS(fsys); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestEvaluate(t *testing.T) {
	def, _ := loadTestdata(t).Definition("account")

	results, err := def.Evaluate(map[string]string{"email": "bad", "password": "abc"})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	want := []rules.Result{
		{Field: "username", Valid: true},
		{Field: "email", Valid: false, Kind: rules.KindPattern, Message: "Invalid Email."},
		{Field: "password", Valid: false, Kind: rules.KindMinLength, Message: "The minimum length is 6."},
		{Field: "confirmPassword", Valid: false, Kind: rules.KindCustom, Message: "Password do not match"},
	}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	if _, err := def.Evaluate(map[string]string{"nickname": "x"}); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestRead_Sources(t *testing.T) {
	path := filepath.Join("testdata", "account.yaml")
	doc, err := Read(context.Background(), nil, SourceFromFile(path))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	def, err := doc.Definition()
	if err != nil || def.ID != "account" {
		t.Fatalf("definition = %+v, %v", def, err)
	}

	fsys := fstest.MapFS{"forms/n.json": {Data: []byte(`{"fields":[{"name":"x"}]}`)}}
	if _, err := Read(context.Background(), fsys, SourceFromFS("forms/n.json")); err != nil {
		t.Fatalf("read fs: %v", err)
	}
	if _, err := Read(context.Background(), nil, SourceFromFS("forms/n.json")); err == nil {
		t.Fatalf("expected missing filesystem error")
	}
}

func TestDocument_KeysAndName(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("forms/signup.form.json"), []byte(`{"openapi":"3.0.3","paths":{}}`))
	if !doc.HasKey("openapi") || doc.HasKey("fields") {
		t.Fatalf("unexpected key index for %s", doc.Location())
	}
	if got := doc.Name(); got != "signup.form" {
		t.Fatalf("Name() = %q", got)
	}

	list := MustNewDocument(SourceFromFS("x.yaml"), []byte("- a\n- b\n"))
	if list.HasKey("fields") {
		t.Fatalf("expected no keys for a sequence payload")
	}

	noID := MustNewDocument(SourceFromFS("forms/newsletter.yaml"), []byte("fields:\n  - name: email\n"))
	def, err := noID.Definition()
	if err != nil || def.ID != "newsletter" {
		t.Fatalf("definition = %+v, %v", def, err)
	}

	if _, err := NewDocument(nil, []byte("x")); err == nil {
		t.Fatalf("expected source error")
	}
	if _, err := NewDocument(SourceFromFS("x"), nil); err == nil {
		t.Fatalf("expected empty payload error")
	}
}
