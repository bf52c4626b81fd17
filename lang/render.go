package lang

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"strings"
)

// Render tokenizes template and renders it against data.
//
// Any error aborts the whole render; no partial output is returned.
func Render(
	ctx context.Context,
	template string,
	data Context,
	opts ...Option,
) (string, error) {
	o := makeOptions(opts...)

	segs := TokenizeTemplate(template)

	o.logger.TraceContext(ctx, "tokenize complete",
		slog.Int("segment_count", len(segs)))

	return renderSegments(ctx, segs, data, o)
}

// RenderSegments renders segments previously produced by [TokenizeTemplate].
func RenderSegments(
	ctx context.Context,
	segs []Segment,
	data Context,
	opts ...Option,
) (string, error) {
	return renderSegments(ctx, segs, data, makeOptions(opts...))
}

// RenderReader reads a template from r and renders it against data.
func RenderReader(
	ctx context.Context,
	r io.Reader,
	data Context,
	opts ...Option,
) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	return Render(ctx, string(b), data, opts...)
}

func renderSegments(
	ctx context.Context,
	segs []Segment,
	data Context,
	o options,
) (string, error) {
	if data == nil {
		data = Context{}
	}

	r := &renderer{ctx: ctx, segs: segs, options: o}

	out, _, _, err := r.render(0, data, blockNone, 0)
	if err != nil {
		o.logger.TraceContext(ctx, "render failed", slog.Any("error", err))

		return "", err
	}

	o.logger.TraceContext(ctx, "render complete", slog.Int("bytes", len(out)))

	return out, nil
}

// block identifies the kind of block whose body is being rendered or skipped.
type block int

const (
	blockNone block = iota
	blockFor
	blockIf   // before any else
	blockElse // after else
)

const (
	cmdFor    = "for"
	cmdEndfor = "endfor"
	cmdIf     = "if"
	cmdElse   = "else"
	cmdEndif  = "endif"
)

type renderer struct {
	options

	ctx  context.Context
	segs []Segment
}

// render renders segments from pos until the tag closing enclosing, or the
// end of input when enclosing is blockNone. It returns the output, the
// position after the closing tag, and that tag's command.
func (r *renderer) render(
	pos int,
	scope Context,
	enclosing block,
	depth int,
) (string, int, string, error) {
	if depth > r.maxDepth {
		return "", pos, "", ErrMaxDepthExceeded.
			With(slog.Int("max_depth", r.maxDepth)).
			WithPosition(r.segs[pos-1].Pos())
	}

	var b strings.Builder

	for pos < len(r.segs) {
		switch seg := r.segs[pos].(type) {
		case Text:
			b.WriteString(seg.Text)
			pos++

		case Interpolation:
			v, err := evaluateExpression(seg.Expression, scope)
			if err != nil {
				return "", pos, "", atPosition(err, seg.Position)
			}

			b.WriteString(FormatValue(v))
			pos++

		case ControlTag:
			var (
				out string
				err error
			)

			switch seg.Command {
			case cmdFor:
				out, pos, err = r.renderFor(seg, pos, scope, depth)

			case cmdIf:
				out, pos, err = r.renderIf(seg, pos, scope, depth)

			case cmdEndfor:
				if enclosing != blockFor {
					return "", pos, "", ErrUnmatchedEndfor.WithPosition(seg.Position)
				}

				return b.String(), pos + 1, seg.Command, nil

			case cmdElse:
				if enclosing != blockIf {
					return "", pos, "", ErrUnmatchedElse.WithPosition(seg.Position)
				}

				return b.String(), pos + 1, seg.Command, nil

			case cmdEndif:
				if enclosing != blockIf && enclosing != blockElse {
					return "", pos, "", ErrUnmatchedEndif.WithPosition(seg.Position)
				}

				return b.String(), pos + 1, seg.Command, nil

			default:
				return "", pos, "", ErrUnknownControlCommand.
					With(slog.String("command", seg.Command)).
					WithPosition(seg.Position)
			}

			if err != nil {
				return "", pos, "", err
			}

			b.WriteString(out)
		}
	}

	if enclosing != blockNone {
		// The caller attaches the position of the opening tag.
		return "", pos, "", ErrUnclosedBlock.With(slog.Int("depth", depth))
	}

	return b.String(), pos, "", nil
}

// renderFor renders the loop whose opening tag is at pos and returns the
// position after its endfor.
func (r *renderer) renderFor(
	tag ControlTag,
	pos int,
	scope Context,
	depth int,
) (string, int, error) {
	name, target, ok := splitLoop(tag.Argument)
	if !ok {
		return "", pos, ErrMalformedForLoop.
			With(slog.String("argument", tag.Argument)).
			WithPosition(tag.Position)
	}

	cv, err := scope.Lookup(target)
	if err != nil {
		return "", pos, atPosition(err, tag.Position)
	}

	list, ok := cv.(List)
	if !ok {
		return "", pos, ErrForTargetNotList.With(
			slog.String("path", target),
			slog.String("kind", cv.Kind().String()),
		).WithPosition(tag.Position)
	}

	r.logger.TraceContext(r.ctx, "enter for",
		slog.String("name", name),
		slog.String("target", target),
		slog.Int("items", len(list)),
		slog.Int("depth", depth+1))

	body := pos + 1

	if len(list) == 0 {
		next, _, err := r.skip(body, blockFor, tag.Position)

		return "", next, err
	}

	var (
		b    strings.Builder
		next int
	)

	for _, item := range list {
		child := maps.Clone(scope)
		child[name] = item

		out, n, _, err := r.render(body, child, blockFor, depth+1)
		if err != nil {
			return "", n, atPosition(err, tag.Position)
		}

		b.WriteString(out)

		next = n
	}

	return b.String(), next, nil
}

// renderIf renders the conditional whose opening tag is at pos and returns
// the position after its endif.
func (r *renderer) renderIf(
	tag ControlTag,
	pos int,
	scope Context,
	depth int,
) (string, int, error) {
	v, err := evaluateExpression(tag.Argument, scope)
	if err != nil {
		return "", pos, atPosition(err, tag.Position)
	}

	cond, ok := v.(Boolean)
	if !ok {
		return "", pos, ErrIfConditionNotBoolean.With(
			slog.String("expression", tag.Argument),
			slog.String("kind", v.Kind().String()),
		).WithPosition(tag.Position)
	}

	r.logger.TraceContext(r.ctx, "enter if",
		slog.String("condition", tag.Argument),
		slog.Bool("value", bool(cond)),
		slog.Int("depth", depth+1))

	body := pos + 1

	if cond {
		out, next, term, err := r.render(body, scope, blockIf, depth+1)
		if err != nil {
			return "", next, atPosition(err, tag.Position)
		}

		if term == cmdElse {
			next, _, err = r.skip(next, blockElse, tag.Position)
			if err != nil {
				return "", next, err
			}
		}

		return out, next, nil
	}

	next, term, err := r.skip(body, blockIf, tag.Position)
	if err != nil || term != cmdElse {
		return "", next, err
	}

	out, next, _, err := r.render(next, scope, blockElse, depth+1)
	if err != nil {
		return "", next, atPosition(err, tag.Position)
	}

	return out, next, nil
}

// skip scans forward from pos without evaluating anything until the tag
// that closes a block of kind, tracking nested blocks. When kind is blockIf
// a matching else also ends the scan. It returns the position after the
// closing tag and that tag's command.
func (r *renderer) skip(pos int, kind block, open Position) (int, string, error) {
	stack := []block{kind}

	for ; pos < len(r.segs); pos++ {
		tag, ok := r.segs[pos].(ControlTag)
		if !ok {
			continue
		}

		top := &stack[len(stack)-1]

		switch tag.Command {
		case cmdFor:
			stack = append(stack, blockFor)

		case cmdIf:
			stack = append(stack, blockIf)

		case cmdEndfor:
			if *top != blockFor {
				return pos, "", ErrUnmatchedEndfor.WithPosition(tag.Position)
			}

			stack = stack[:len(stack)-1]

		case cmdEndif:
			if *top != blockIf && *top != blockElse {
				return pos, "", ErrUnmatchedEndif.WithPosition(tag.Position)
			}

			stack = stack[:len(stack)-1]

		case cmdElse:
			if *top != blockIf {
				return pos, "", ErrUnmatchedElse.WithPosition(tag.Position)
			}

			if len(stack) == 1 {
				return pos + 1, tag.Command, nil
			}

			*top = blockElse
		}

		if len(stack) == 0 {
			return pos + 1, tag.Command, nil
		}
	}

	return pos, "", ErrUnclosedBlock.WithPosition(open)
}

// splitLoop splits "name in target" into its two trimmed, non-empty parts.
func splitLoop(arg string) (string, string, bool) {
	parts := strings.Split(arg, " in ")
	if len(parts) != 2 {
		return "", "", false
	}

	name, target := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if name == "" || target == "" {
		return "", "", false
	}

	return name, target, true
}
