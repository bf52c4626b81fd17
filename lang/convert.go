package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// NewContext converts a map of Go values into a [Context].
// See [FromGo] for the supported value types. Keys whose value is nil are
// omitted.
func NewContext(m map[string]any) (Context, error) {
	c := make(Context, len(m))

	for k, v := range m {
		if v == nil {
			continue
		}

		cv, err := fromGo(v, k)
		if err != nil {
			return nil, err
		}

		c[k] = cv
	}

	return c, nil
}

// FromGo converts a Go value into a [ContextValue].
//
// Strings, booleans, every integer and float width, maps with string (or
// stringable) keys, slices and arrays are supported, as are values that
// already implement ContextValue. Map entries whose value is nil are
// omitted, so they resolve as missing. Anything else, including nil itself
// and nil list elements, fails with [ErrInvalidValueType]. Unsigned values
// above [math.MaxInt64] fail with [ErrInvalidNumber].
func FromGo(v any) (ContextValue, error) { return fromGo(v, "") }

func fromGo(v any, path string) (ContextValue, error) {
	switch x := v.(type) {
	case ContextValue:
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Boolean(x), nil
	case int:
		return Integer(x), nil
	case int8:
		return Integer(x), nil
	case int16:
		return Integer(x), nil
	case int32:
		return Integer(x), nil
	case int64:
		return Integer(x), nil
	case uint:
		return fromUint(uint64(x), path)
	case uint8:
		return Integer(x), nil
	case uint16:
		return Integer(x), nil
	case uint32:
		return Integer(x), nil
	case uint64:
		return fromUint(x, path)
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case map[string]any:
		obj := make(Object, len(x))

		for k, e := range x {
			if e == nil {
				continue
			}

			cv, err := fromGo(e, join(path, k))
			if err != nil {
				return nil, err
			}

			obj[k] = cv
		}

		return obj, nil
	case []any:
		list := make(List, len(x))

		for i, e := range x {
			cv, err := fromGo(e, index(path, i))
			if err != nil {
				return nil, err
			}

			list[i] = cv
		}

		return list, nil
	case nil:
		return nil, ErrInvalidValueType.With(
			slog.String("path", path),
			slog.String("type", "nil"),
		)
	}

	return fromReflect(reflect.ValueOf(v), path)
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

func fromReflect(rv reflect.Value, path string) (ContextValue, error) {
	switch rv.Kind() {
	case reflect.Map:
		obj := make(Object, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			k := fmt.Sprint(iter.Key().Interface())

			ev := iter.Value()
			if isNil(ev) {
				continue
			}

			cv, err := fromGo(ev.Interface(), join(path, k))
			if err != nil {
				return nil, err
			}

			obj[k] = cv
		}

		return obj, nil

	case reflect.Slice, reflect.Array:
		list := make(List, rv.Len())

		for i := range rv.Len() {
			cv, err := fromGo(rv.Index(i).Interface(), index(path, i))
			if err != nil {
				return nil, err
			}

			list[i] = cv
		}

		return list, nil

	case reflect.String:
		return String(rv.String()), nil

	case reflect.Bool:
		return Boolean(rv.Bool()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Integer(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint(), path)

	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			break
		}

		return fromGo(rv.Elem().Interface(), path)
	}

	return nil, ErrInvalidValueType.With(
		slog.String("path", path),
		slog.String("type", rv.Type().String()),
	)
}

func fromUint(u uint64, path string) (ContextValue, error) {
	if u > math.MaxInt64 {
		return nil, ErrInvalidNumber.With(
			slog.String("path", path),
			slog.String("value", strconv.FormatUint(u, 10)),
		)
	}

	return Integer(u), nil
}

func join(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func index(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

// ToGo converts a [ContextValue] into plain Go values: string, int64,
// float64, bool, map[string]any and []any.
func ToGo(cv ContextValue) any {
	switch x := cv.(type) {
	case String:
		return string(x)
	case Integer:
		return int64(x)
	case Float:
		return float64(x)
	case Boolean:
		return bool(x)
	case Object:
		m := make(map[string]any, len(x))
		for k, v := range x {
			m[k] = ToGo(v)
		}

		return m
	case List:
		s := make([]any, len(x))
		for i, v := range x {
			s[i] = ToGo(v)
		}

		return s
	}

	return nil
}

// ToMap converts c into plain Go values. See [ToGo].
func (c Context) ToMap() map[string]any {
	m := make(map[string]any, len(c))
	for k, v := range c {
		m[k] = ToGo(v)
	}

	return m
}

// Names returns the sorted top-level names of c.
func (c Context) Names() []string {
	return slices.Sorted(maps.Keys(c))
}

// Paths returns every dotted path reachable in c, sorted. Objects contribute
// both their own path and the paths of their members.
func (c Context) Paths() []string {
	var paths []string

	var walk func(prefix string, cv ContextValue)

	walk = func(prefix string, cv ContextValue) {
		paths = append(paths, prefix)

		if obj, ok := cv.(Object); ok {
			for k, v := range obj {
				walk(prefix+"."+k, v)
			}
		}
	}

	for k, v := range c {
		walk(k, v)
	}

	slices.Sort(paths)

	return paths
}

// DecodeContext reads a YAML (or JSON) document whose top level is a mapping
// and converts it into a [Context]. An empty document yields an empty
// Context. Keys mapped to null are omitted; a null list element fails with
// [ErrInvalidValueType].
func DecodeContext(ctx context.Context, r io.Reader) (Context, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	var m map[string]any

	if err := yaml.UnmarshalContext(ctx, data, &m); err != nil {
		return nil, ErrInvalidValueType.Wrap(err)
	}

	if m == nil {
		return Context{}, nil
	}

	return NewContext(m)
}

// ParseScalar decodes s as a single YAML scalar (or flow collection), such
// as a command-line value, and converts it into a [ContextValue]. Input that
// does not decode is kept as a [String].
func ParseScalar(s string) ContextValue {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return String(s)
	}

	cv, err := FromGo(v)
	if err != nil {
		return String(s)
	}

	return cv
}
