package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format selects how segments and expression trees are written.
type Format int

const (
	FormatNative Format = iota // native
	FormatJSON                 // json
	FormatYAML                 // yaml
)

// Formats lists the names of the defined formats, in order.
var Formats = []string{FormatNative.String(), FormatJSON.String(), FormatYAML.String()}

// ParseFormat parses a format name. Unknown names select [FormatNative].
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatNative
	}
}

type segmentRecord struct {
	Kind       string `json:"kind"                 yaml:"kind"`
	Text       string `json:"text,omitempty"       yaml:"text,omitempty"`
	Expression string `json:"expression,omitempty" yaml:"expression,omitempty"`
	Command    string `json:"command,omitempty"    yaml:"command,omitempty"`
	Argument   string `json:"argument,omitempty"   yaml:"argument,omitempty"`
	Line       int    `json:"line"                 yaml:"line"`
	Column     int    `json:"column"               yaml:"column"`
}

func makeSegmentRecord(seg Segment) segmentRecord {
	pos := seg.Pos()
	rec := segmentRecord{Line: pos.Line, Column: pos.Column}

	switch s := seg.(type) {
	case Text:
		rec.Kind, rec.Text = "text", s.Text
	case Interpolation:
		rec.Kind, rec.Expression = "interpolation", s.Expression
	case ControlTag:
		rec.Kind, rec.Command, rec.Argument = "control", s.Command, s.Argument
	}

	return rec
}

type nodeRecord struct {
	Kind  string      `json:"kind"            yaml:"kind"`
	Type  string      `json:"type,omitempty"  yaml:"type,omitempty"`
	Value any         `json:"value,omitempty" yaml:"value,omitempty"`
	Path  string      `json:"path,omitempty"  yaml:"path,omitempty"`
	Op    string      `json:"op,omitempty"    yaml:"op,omitempty"`
	Left  *nodeRecord `json:"left,omitempty"  yaml:"left,omitempty"`
	Right *nodeRecord `json:"right,omitempty" yaml:"right,omitempty"`
}

func makeNodeRecord(node Node) *nodeRecord {
	switch n := node.(type) {
	case Constant:
		rec := &nodeRecord{Kind: "constant"}
		if n.Value != nil {
			rec.Type, rec.Value = n.Value.Kind().String(), ToGo(n.Value)
		}

		return rec
	case Variable:
		return &nodeRecord{Kind: "variable", Path: n.Path}
	case BinaryOp:
		return &nodeRecord{
			Kind:  "binary",
			Op:    string(n.Op),
			Left:  makeNodeRecord(n.Left),
			Right: makeNodeRecord(n.Right),
		}
	}

	return nil
}

// FormatSegments writes segs to w in the given format.
//
// The native format writes one segment per line as "line:column kind" and
// the quoted content. A positive indent pretty-prints JSON and sets the
// YAML indentation; otherwise JSON is compact and YAML uses flow style.
func FormatSegments(
	ctx context.Context,
	w io.Writer,
	segs []Segment,
	format Format,
	indent int,
) error {
	recs := make([]segmentRecord, len(segs))
	for i, seg := range segs {
		recs[i] = makeSegmentRecord(seg)
	}

	if format != FormatNative {
		return encode(ctx, w, recs, format, indent)
	}

	for _, rec := range recs {
		var err error

		switch rec.Kind {
		case "text":
			_, err = fmt.Fprintf(w, "%d:%d\ttext\t%q\n", rec.Line, rec.Column, rec.Text)
		case "interpolation":
			_, err = fmt.Fprintf(w, "%d:%d\tinterp\t%q\n", rec.Line, rec.Column, rec.Expression)
		case "control":
			_, err = fmt.Fprintf(w, "%d:%d\t%s\t%q\n", rec.Line, rec.Column, rec.Command, rec.Argument)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// FormatNode writes the expression tree rooted at node to w in the given
// format. The native format is the fully parenthesized expression.
func FormatNode(
	ctx context.Context,
	w io.Writer,
	node Node,
	format Format,
	indent int,
) error {
	if format == FormatNative {
		_, err := fmt.Fprintln(w, nodeString(node))

		return err
	}

	return encode(ctx, w, makeNodeRecord(node), format, indent)
}

// FormatContext writes c to w as JSON or YAML. The native format is YAML.
func FormatContext(
	ctx context.Context,
	w io.Writer,
	c Context,
	format Format,
	indent int,
) error {
	if format == FormatNative {
		format = FormatYAML
	}

	return encode(ctx, w, c.ToMap(), format, indent)
}

func encode(ctx context.Context, w io.Writer, v any, format Format, indent int) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		if indent > 0 {
			enc.SetIndent("", strings.Repeat(" ", indent))
		}

		return enc.Encode(v)

	case FormatYAML:
		var opts []yaml.EncodeOption
		if indent > 0 {
			opts = append(opts, yaml.Indent(indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err := yaml.MarshalContext(ctx, v, opts...)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err
	}

	return ErrUnsupportedFormat.With(slog.String("format", format.String()))
}
