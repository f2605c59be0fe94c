package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const signup = `title: Sign up
fields:
  - name: username
    label: Username
    default: test
    rules:
      - kind: required
        message: Username is required.
      - kind: minLength
        value: 4
        message: The minimum length is 4.
  - name: password
    label: Password
    secret: true
    default: "12345678"
    rules:
      - kind: minLength
        value: 6
        message: The minimum length is 6.
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("FORMBIND_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidate_ReportsFirstErrorPerField(t *testing.T) {
	def := writeFile(t, "signup.yaml", signup)
	values := writeFile(t, "values.yaml", "password: \"123\"\n")

	out, _, err := execute(t, "validate", def, "--values", values, "--set", "username=ab")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	want := "username: The minimum length is 4. (minLength)\npassword: The minimum length is 6. (minLength)\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_Defaults(t *testing.T) {
	def := writeFile(t, "signup.yaml", signup)

	out, _, err := execute(t, "validate", def)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out != "username: ok\npassword: ok\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRender_HTML(t *testing.T) {
	def := writeFile(t, "signup.yaml", signup)

	out, _, err := execute(t, "render", def, "--renderer", "html", "--theme-variant", "dark", "--set", "username=ab")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		`name="username" type="text" value="ab"`,
		"The minimum length is 4.",
		" disabled>",
		"color: #aeaeb2",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestRender_UnknownRenderer(t *testing.T) {
	def := writeFile(t, "signup.yaml", signup)
	if _, _, err := execute(t, "render", def, "--renderer", "pdf"); err == nil {
		t.Fatalf("expected config error")
	}
}

func TestAccount_HTMLWithCatalog(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "es.yaml"), []byte("messages:\n  Username: Nombre de usuario\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "account", "--renderer", "html", "--locale", "es", "--catalog", dir)
	if err != nil {
		t.Fatalf("account: %v", err)
	}
	if !strings.Contains(out, ">Nombre de usuario</label>") {
		t.Fatalf("expected translated label:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "dev\n" {
		t.Fatalf("unexpected version %q", out)
	}
}
