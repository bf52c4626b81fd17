package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyHandler writes colorized records for terminals, either as
// key=value pairs on one line or as an indented JSON-like object.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	prefix     string
	multiline  bool
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
	multiline bool,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		mu:         &sync.Mutex{},
		w:          w,
		multiline:  multiline,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if s := h.formatTime(r.Time); s != "" {
			fields = append(fields, slog.String(slog.TimeKey, s))
		}
	}

	fields = append(fields, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			fields = append(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		fields = append(fields, a)

		return true
	})

	var buf bytes.Buffer

	if h.multiline {
		buf.WriteString("{\n")
	}

	n := 0

	for _, a := range fields {
		n = h.writeAttr(&buf, "", a, n)
	}

	if h.multiline {
		buf.WriteString("\n}")
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// writeAttr writes a (flattening groups) and returns the number of fields
// written so far.
func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr, n int) int {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return n
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			n = h.writeAttr(buf, prefix, g, n)
		}

		return n
	}

	switch {
	case h.multiline && n > 0:
		buf.WriteString(",\n  ")
	case h.multiline:
		buf.WriteString("  ")
	case n > 0:
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(prefix + a.Key)
	buf.WriteString(colorReset)

	if h.multiline {
		buf.WriteString(": ")
	} else {
		buf.WriteByte('=')
	}

	color, text := colorize(a.Value)
	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)

	return n + 1
}

func colorize(v slog.Value) (string, string) {
	switch v.Kind() {
	case slog.KindInt64:
		return colorYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return colorYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return colorYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		if v.Bool() {
			return colorGreen, "true"
		}

		return colorRed, "false"
	case slog.KindDuration:
		return colorMagenta, v.Duration().String()
	case slog.KindTime:
		return colorBlue, v.Time().Format(time.RFC3339)
	case slog.KindAny:
		switch x := v.Any().(type) {
		case slog.Level:
			name := strings.ToUpper(Level(x).String())

			switch {
			case x >= slog.LevelError:
				return colorRed, name
			case x >= slog.LevelWarn:
				return colorYellow, name
			case x >= slog.LevelInfo:
				return colorGreen, name
			default:
				return colorBlue, name
			}
		case nil:
			return colorGray, "null"
		case error:
			return colorRed, x.Error()
		}
	}

	return colorCyan, v.String()
}
