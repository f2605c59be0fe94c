package openapi

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbind/pkg/notify"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/testsupport"
)

func loadDocument(t *testing.T) schema.Document {
	t.Helper()
	return testsupport.LoadDocument(t, filepath.Join("testdata", "account.yaml"))
}

func TestDefinitions_Operations(t *testing.T) {
	defs, err := New().Definitions(context.Background(), loadDocument(t))
	if err != nil {
		t.Fatalf("definitions: %v", err)
	}
	if diff := cmp.Diff([]string{"createAccount", "put:/subscriptions"}, OperationIDs(defs)); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}

	sub := defs["put:/subscriptions"]
	want := []schema.FieldDef{{
		Name:  "code",
		Label: "Code",
		Rules: []schema.RuleDef{{Kind: schema.RulePattern, Pattern: "^[A-Z]{3}$", Message: "Invalid Code."}},
	}}
	if diff := cmp.Diff(want, sub.Fields); diff != "" {
		t.Fatalf("subscription fields mismatch (-want +got):\n%s", diff)
	}
}

func TestDefinition_Account(t *testing.T) {
	def, err := New().Definition(context.Background(), loadDocument(t), "createAccount")
	if err != nil {
		t.Fatalf("definition: %v", err)
	}
	if def.Title != "Account" || def.Mode != "onChange" {
		t.Fatalf("unexpected header %+v", def)
	}

	want := []schema.FieldDef{
		{
			Name: "username", Label: "Username", Default: "test",
			Rules: []schema.RuleDef{{Kind: schema.RuleRequired, Message: "Username is required."}},
		},
		{
			Name: "email", Label: "Email", Default: "test@test.com",
			Rules: []schema.RuleDef{{Kind: schema.RulePattern, Preset: schema.PresetEmail, Message: "Invalid Email."}},
		},
		{
			Name: "password", Label: "Password", Default: "12345678", Secret: true,
			Rules: []schema.RuleDef{
				{Kind: schema.RuleMaxLength, Value: 15, Message: "The maximum length is 15."},
				{Kind: schema.RuleMinLength, Value: 6, Message: "The minimum length is 6."},
				{Kind: schema.RuleRequired, Message: "Password is required."},
			},
		},
		{
			Name: "confirmPassword", Label: "Confirm Password", Default: "12345678", Secret: true,
			Rules: []schema.RuleDef{
				{Kind: schema.RuleRequired, Message: "Confirm Password is required."},
				{Kind: schema.RuleEqualTo, Field: "password", Message: "Password do not match"},
			},
		},
	}
	if diff := cmp.Diff(want, def.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	rec := &notify.Recorder{}
	s, err := def.Build(schema.WithNotifier(rec))
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if ok, err := s.Submit(context.Background()); !ok || err != nil {
		t.Fatalf("submit = %v, %v", ok, err)
	}
	wantJSON := `{"username":"test","email":"test@test.com","password":"12345678","confirmPassword":"12345678"}`
	if got := rec.Messages()[0].Message; got != wantJSON {
		t.Fatalf("submitted %s; want %s", got, wantJSON)
	}
}

func TestDefinition_Errors(t *testing.T) {
	p := New()
	if _, err := p.Definition(context.Background(), loadDocument(t), "missing"); !errors.Is(err, ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}

	noPaths := schema.MustNewDocument(schema.SourceFromFS("x.yaml"), []byte("openapi: 3.0.3\ninfo:\n  title: x\n  version: '1'\npaths: {}\n"))
	if _, err := p.Definitions(context.Background(), noPaths); err == nil {
		t.Fatalf("expected empty paths error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Definitions(ctx, loadDocument(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
