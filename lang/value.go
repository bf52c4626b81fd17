package lang

//go:generate go tool stringer --linecomment --type Kind,Format --output enum_string.go

import (
	"log/slog"
	"maps"
	"strings"
)

// Kind identifies the variant of a [ContextValue].
type Kind int

const (
	KindString  Kind = iota // string
	KindInteger             // integer
	KindFloat               // float
	KindBoolean             // boolean
	KindObject              // object
	KindList                // list
)

// ContextValue is any value that can be stored in a [Context]:
// [String], [Integer], [Float], [Boolean], [Object] or [List].
type ContextValue interface {
	Kind() Kind
	contextValue()
}

// Value is a scalar [ContextValue] usable as an expression operand or
// result: [String], [Integer], [Float] or [Boolean].
type Value interface {
	ContextValue
	value()
}

type (
	String  string
	Integer int64
	Float   float64
	Boolean bool

	// Object maps keys to nested values.
	Object map[string]ContextValue

	// List is an ordered sequence of values.
	List []ContextValue
)

func (String) Kind() Kind  { return KindString }
func (Integer) Kind() Kind { return KindInteger }
func (Float) Kind() Kind   { return KindFloat }
func (Boolean) Kind() Kind { return KindBoolean }
func (Object) Kind() Kind  { return KindObject }
func (List) Kind() Kind    { return KindList }

func (String) contextValue()  {}
func (Integer) contextValue() {}
func (Float) contextValue()   {}
func (Boolean) contextValue() {}
func (Object) contextValue()  {}
func (List) contextValue()    {}

func (String) value()  {}
func (Integer) value() {}
func (Float) value()   {}
func (Boolean) value() {}

// Context maps top-level names to the values available to a render.
type Context map[string]ContextValue

// Resolve looks up the dotted path in c and returns the scalar found there.
//
// The first path component must name an entry of c. Every following
// component is looked up in the [Object] reached so far. An [Object] or
// [List] at the end of the path fails with [ErrInvalidVariableAccess].
func (c Context) Resolve(path string) (Value, error) {
	cv, err := c.Lookup(path)
	if err != nil {
		return nil, err
	}

	v, ok := cv.(Value)
	if !ok {
		return nil, ErrInvalidVariableAccess.With(
			slog.String("path", path),
			slog.String("kind", cv.Kind().String()),
		)
	}

	return v, nil
}

// Lookup is like [Context.Resolve] but returns whatever value is found at the
// end of path, including [Object] and [List] values.
func (c Context) Lookup(path string) (ContextValue, error) {
	head, rest, nested := strings.Cut(path, ".")

	cur, ok := c[head]
	if !ok || cur == nil {
		return nil, ErrVariableNotFound.With(
			slog.String("path", path),
			slog.String("name", head),
		)
	}

	for nested {
		head, rest, nested = strings.Cut(rest, ".")

		obj, ok := cur.(Object)
		if !ok {
			return nil, ErrNotAnObject.With(
				slog.String("path", path),
				slog.String("key", head),
				slog.String("kind", cur.Kind().String()),
			)
		}

		if cur, ok = obj[head]; !ok || cur == nil {
			return nil, ErrVariableNotFound.With(
				slog.String("path", path),
				slog.String("name", head),
			)
		}
	}

	return cur, nil
}

// Set binds v at the dotted path, creating intermediate objects as needed.
// Objects along the path are copied, so values shared with other contexts
// are never modified.
func (c Context) Set(path string, v ContextValue) error {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		c[head] = v

		return nil
	}

	obj, err := setPath(c[head], path, rest, v)
	if err != nil {
		return err
	}

	c[head] = obj

	return nil
}

func setPath(cur ContextValue, path, rest string, v ContextValue) (Object, error) {
	var obj Object

	switch x := cur.(type) {
	case nil:
		obj = Object{}
	case Object:
		obj = make(Object, len(x)+1)
		maps.Copy(obj, x)
	default:
		return nil, ErrNotAnObject.With(
			slog.String("path", path),
			slog.String("kind", x.Kind().String()),
		)
	}

	head, rest, nested := strings.Cut(rest, ".")
	if !nested {
		obj[head] = v

		return obj, nil
	}

	child, err := setPath(obj[head], path, rest, v)
	if err != nil {
		return nil, err
	}

	obj[head] = child

	return obj, nil
}

// Merge returns a new Context holding the entries of c overlaid with those of
// other. Objects present in both are merged recursively. Any other value in
// other replaces the one in c.
func (c Context) Merge(other Context) Context {
	out := make(Context, len(c)+len(other))
	maps.Copy(out, c)

	for k, v := range other {
		out[k] = mergeValue(out[k], v)
	}

	return out
}

func mergeValue(dst, src ContextValue) ContextValue {
	d, ok := dst.(Object)
	if !ok {
		return src
	}

	s, ok := src.(Object)
	if !ok {
		return src
	}

	out := make(Object, len(d)+len(s))
	maps.Copy(out, d)

	for k, v := range s {
		out[k] = mergeValue(out[k], v)
	}

	return out
}
