package lang_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmpl/lang"
)

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   lang.Value
		want string
	}{
		{lang.String("abc"), "abc"},
		{lang.String(""), ""},
		{lang.Integer(-42), "-42"},
		{lang.Float(1), "1.000000"},
		{lang.Float(-0.0000004), "-0.000000"},
		{lang.Float(579.789), "579.789000"},
		{lang.Boolean(true), "1"},
		{lang.Boolean(false), "0"},
	}

	for _, tt := range tests {
		if got := lang.FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, name := range lang.Formats {
		if got := lang.ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q) = %s", name, got)
		}
	}

	if lang.ParseFormat("YML") != lang.FormatYAML {
		t.Error("yml alias not recognized")
	}
}

func TestFormatSegments(t *testing.T) {
	t.Parallel()

	segs := lang.TokenizeTemplate("Hi {{ name }}\n{% if a %}x{% endif %}")

	t.Run("native", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := lang.FormatSegments(t.Context(), &buf, segs, lang.FormatNative, 0); err != nil {
			t.Fatal(err)
		}

		want := "1:1\ttext\t\"Hi \"\n" +
			"1:4\tinterp\t\" name \"\n" +
			"1:14\ttext\t\"\\n\"\n" +
			"2:1\tif\t\"a\"\n" +
			"2:11\ttext\t\"x\"\n" +
			"2:12\tendif\t\"\"\n"
		if buf.String() != want {
			t.Errorf("native =\n%s\nwant\n%s", buf.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := lang.FormatSegments(t.Context(), &buf, segs, lang.FormatJSON, 2); err != nil {
			t.Fatal(err)
		}

		var got []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatal(err)
		}

		if len(got) != len(segs) {
			t.Fatalf("got %d records, want %d", len(got), len(segs))
		}

		if got[1]["kind"] != "interpolation" || got[1]["expression"] != " name " {
			t.Errorf("record 1 = %v", got[1])
		}

		if got[3]["command"] != "if" || got[3]["argument"] != "a" || got[3]["line"] != 2.0 {
			t.Errorf("record 3 = %v", got[3])
		}
	})

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := lang.FormatSegments(t.Context(), &buf, segs, lang.FormatYAML, 2); err != nil {
			t.Fatal(err)
		}

		var got []map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatal(err)
		}

		if len(got) != len(segs) || got[0]["text"] != "Hi " {
			t.Errorf("yaml = %v", got)
		}
	})
}

func TestFormatNode(t *testing.T) {
	t.Parallel()

	node, err := lang.ParseExpression(`a.b + 2 * "s"`)
	if err != nil {
		t.Fatal(err)
	}

	var native bytes.Buffer
	if err := lang.FormatNode(t.Context(), &native, node, lang.FormatNative, 0); err != nil {
		t.Fatal(err)
	}

	if got := native.String(); got != "(a.b + (2 * \"s\"))\n" {
		t.Errorf("native = %q", got)
	}

	var js bytes.Buffer
	if err := lang.FormatNode(t.Context(), &js, node, lang.FormatJSON, 0); err != nil {
		t.Fatal(err)
	}

	want := `{"kind":"binary","op":"+",` +
		`"left":{"kind":"variable","path":"a.b"},` +
		`"right":{"kind":"binary","op":"*",` +
		`"left":{"kind":"constant","type":"integer","value":2},` +
		`"right":{"kind":"constant","type":"string","value":"s"}}}`
	if got := strings.TrimSpace(js.String()); got != want {
		t.Errorf("json =\n%s\nwant\n%s", got, want)
	}

	var ym bytes.Buffer
	if err := lang.FormatNode(t.Context(), &ym, node, lang.FormatYAML, 2); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(ym.String(), "path: a.b") {
		t.Errorf("yaml = %s", ym.String())
	}
}

func TestFormatContext(t *testing.T) {
	t.Parallel()

	data := lang.Context{"user": lang.Object{"name": lang.String("Ada")}}

	var buf bytes.Buffer
	if err := lang.FormatContext(t.Context(), &buf, data, lang.FormatJSON, 0); err != nil {
		t.Fatal(err)
	}

	if got := strings.TrimSpace(buf.String()); got != `{"user":{"name":"Ada"}}` {
		t.Errorf("json = %s", got)
	}

	err := lang.FormatContext(t.Context(), &buf, data, lang.Format(99), 0)
	if !errors.Is(err, lang.ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormats(t *testing.T) {
	t.Parallel()

	want := []string{"native", "json", "yaml"}
	if !slices.Equal(lang.Formats, want) {
		t.Fatalf("Formats = %v, want %v", lang.Formats, want)
	}

	for i, name := range lang.Formats {
		if got := lang.ParseFormat(name); got != lang.Format(i) {
			t.Errorf("ParseFormat(%q) = %v, want %v", name, got, lang.Format(i))
		}
	}

	if got := lang.Format(9).String(); got != "Format(9)" {
		t.Errorf("Format(9).String() = %q", got)
	}
}
