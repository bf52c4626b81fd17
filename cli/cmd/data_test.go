package cmd_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/tmpl/cli/cmd"
	"github.com/ardnew/tmpl/lang"
)

func TestData_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writeFile(t, dir, "base.yaml", "user:\n  name: Ada\n  age: 36\nsite: one\n")
	override := writeFile(t, dir, "override.json", `{"user": {"age": 37}, "site": "two"}`)

	data, err := cmd.Data{
		Context: []string{base, override},
		Set:     []string{"user.role=admin", "tags=[a, b]", "debug=true"},
	}.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		path string
		want lang.ContextValue
	}{
		{"user.name", lang.String("Ada")},
		{"user.age", lang.Integer(37)},
		{"user.role", lang.String("admin")},
		{"site", lang.String("two")},
		{"debug", lang.Boolean(true)},
	}

	for _, tt := range tests {
		got, err := data.Lookup(tt.path)
		if err != nil || got != tt.want {
			t.Errorf("Lookup(%q) = (%#v, %v), want %#v", tt.path, got, err, tt.want)
		}
	}

	tags, ok := data["tags"].(lang.List)
	if !ok || len(tags) != 2 || tags[1] != lang.String("b") {
		t.Errorf("tags = %#v, want [a b]", data["tags"])
	}
}

func TestData_LoadSkipsDuplicateFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := writeFile(t, dir, "first.yaml", "v: 1\n")
	second := writeFile(t, dir, "second.yaml", "v: 2\n")

	link := filepath.Join(dir, "link.yaml")
	if err := os.Symlink(first, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	// The link names first again, so second stays in effect.
	data, err := cmd.Data{Context: []string{first, second, link}}.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := data["v"]; got != lang.Integer(2) {
		t.Errorf("v = %#v, want 2", got)
	}
}

func TestData_LoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "- not\n- a mapping\n")

	tests := []struct {
		name    string
		data    cmd.Data
		wantErr error
	}{
		{"missing_file", cmd.Data{Context: []string{filepath.Join(dir, "nope.yaml")}}, cmd.ErrReadContext},
		{"not_a_mapping", cmd.Data{Context: []string{bad}}, cmd.ErrReadContext},
		{"no_equals", cmd.Data{Set: []string{"novalue"}}, cmd.ErrInvalidAssignment},
		{"empty_path", cmd.Data{Set: []string{"=1"}}, cmd.ErrInvalidAssignment},
		{"through_scalar", cmd.Data{Set: []string{"a=1", "a.b=2"}}, lang.ErrNotAnObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.data.Load(t.Context()); !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
