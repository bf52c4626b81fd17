package lang

import (
	"strings"
	"unicode"
)

// Position is a location in template source. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// Pos returns p. It lets every [Segment] report the position it starts at.
func (p Position) Pos() Position { return p }

// Segment is one unit of a tokenized template: [Text], [Interpolation] or
// [ControlTag].
type Segment interface {
	Pos() Position
	segment()
}

// Text is literal template text copied to the output unchanged.
type Text struct {
	Position

	Text string
}

// Interpolation is a "{{ expression }}" tag. Expression holds the text
// between the delimiters, untrimmed.
type Interpolation struct {
	Position

	Expression string
}

// ControlTag is a "{% command argument %}" tag.
type ControlTag struct {
	Position

	Command  string
	Argument string
}

func (Text) segment()          {}
func (Interpolation) segment() {}
func (ControlTag) segment()    {}

// TokenizeTemplate splits a template into segments.
//
// "{{" through the next "}}" is an [Interpolation]. "{%" through the next
// "%}" is a [ControlTag] whose command is the first word of the trimmed
// inner text and whose argument is the trimmed rest. Tags may span lines.
// An opening delimiter without a closing one, or a control tag with no
// command, is plain text. Adjacent plain text is coalesced into one [Text].
func TokenizeTemplate(template string) []Segment {
	var (
		segs []Segment
		text strings.Builder
		cur  = Position{Line: 1, Column: 1}
		run  = cur
	)

	flush := func() {
		if text.Len() > 0 {
			segs = append(segs, Text{Position: run, Text: text.String()})
			text.Reset()
		}
	}

	for cur.Offset < len(template) {
		rest := template[cur.Offset:]

		if seg, n := scanTag(rest, cur); n > 0 {
			flush()

			segs = append(segs, seg)
			cur = advance(cur, rest[:n])
			run = cur

			continue
		}

		if text.Len() == 0 {
			run = cur
		}

		text.WriteByte(rest[0])
		cur = advance(cur, rest[:1])
	}

	flush()

	return segs
}

// scanTag recognizes a tag at the start of s and returns it with its length
// in bytes, or a zero length.
func scanTag(s string, pos Position) (Segment, int) {
	if len(s) < 4 || s[0] != '{' {
		return nil, 0
	}

	switch s[1] {
	case '{':
		end := strings.Index(s[2:], "}}")
		if end < 0 {
			return nil, 0
		}

		return Interpolation{Position: pos, Expression: s[2 : 2+end]}, end + 4

	case '%':
		end := strings.Index(s[2:], "%}")
		if end < 0 {
			return nil, 0
		}

		inner := strings.TrimSpace(s[2 : 2+end])
		if inner == "" {
			return nil, 0
		}

		command, argument := inner, ""
		if i := strings.IndexFunc(inner, unicode.IsSpace); i >= 0 {
			command, argument = inner[:i], strings.TrimSpace(inner[i:])
		}

		return ControlTag{Position: pos, Command: command, Argument: argument}, end + 4
	}

	return nil, 0
}

// advance moves pos past s.
func advance(pos Position, s string) Position {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\n':
			pos.Line++
			pos.Column = 1
		case s[i]&0xC0 != 0x80:
			pos.Column++
		}
	}

	pos.Offset += len(s)

	return pos
}
