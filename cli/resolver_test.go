package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) error = %v", name, err)
	}

	return v
}

func TestResolve(t *testing.T) {
	t.Parallel()

	const doc = `
log-level: debug
log_format: text
log:
  caller: true
max-depth: 12
ratio: 1.5
route:
  - /=index.html
  - /u/<id>=user.html
`

	r, err := resolve(t.Context())(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve() error = %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"log-caller", true},
		{"max-depth", "12"},
		{"ratio", "1.5"},
		{"route", "/=index.html,/u/<id>=user.html"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			t.Parallel()

			if got := resolveFlag(t, r, tt.flag); got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	t.Parallel()

	for _, doc := range []string{"", "{ not: [valid", "- a\n- b\n"} {
		r, err := resolve(t.Context())(strings.NewReader(doc))
		if err != nil {
			t.Fatalf("resolve(%q) error = %v", doc, err)
		}

		if got := resolveFlag(t, r, "log-level"); got != nil {
			t.Errorf("resolve(%q) log-level = %v, want nil", doc, got)
		}
	}
}
