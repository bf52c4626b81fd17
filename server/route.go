package server

import (
	"log/slog"
	"regexp"
	"strings"
)

var placeholder = regexp.MustCompile(`<([^<>/]+)>`)

// endpoint is a compiled [Route].
type endpoint struct {
	Route

	match *regexp.Regexp
	names []string
}

func compile(r Route) (endpoint, error) {
	var (
		expr  strings.Builder
		names []string
		last  int
	)

	expr.WriteString("^")

	for _, loc := range placeholder.FindAllStringSubmatchIndex(r.Pattern, -1) {
		expr.WriteString(regexp.QuoteMeta(r.Pattern[last:loc[0]]))
		expr.WriteString("([^/]+)")

		names = append(names, r.Pattern[loc[2]:loc[3]])
		last = loc[1]
	}

	expr.WriteString(regexp.QuoteMeta(r.Pattern[last:]))
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return endpoint{}, ErrInvalidRoute.
			With(slog.String("pattern", r.Pattern)).
			Wrap(err)
	}

	return endpoint{Route: r, match: re, names: names}, nil
}

// params returns the placeholder values captured from path, or false if the
// endpoint does not match. Dot segments never match a placeholder.
func (e endpoint) params(path string) (map[string]string, bool) {
	m := e.match.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}

	params := make(map[string]string, len(e.names))

	for i, name := range e.names {
		if m[i+1] == "." || m[i+1] == ".." {
			return nil, false
		}

		params[name] = m[i+1]
	}

	return params, true
}

// template returns the endpoint's template name with placeholders replaced
// by params.
func (e endpoint) template(params map[string]string) string {
	return placeholder.ReplaceAllStringFunc(e.Template, func(s string) string {
		if v, ok := params[s[1:len(s)-1]]; ok {
			return v
		}

		return s
	})
}

// router selects the first endpoint matching a path.
type router []endpoint

func newRouter(routes []Route) (router, error) {
	r := make(router, 0, len(routes))

	for _, route := range routes {
		e, err := compile(route)
		if err != nil {
			return nil, err
		}

		r = append(r, e)
	}

	return r, nil
}

func (r router) lookup(path string) (endpoint, map[string]string, bool) {
	for _, e := range r {
		if params, ok := e.params(path); ok {
			return e, params, true
		}
	}

	return endpoint{}, nil, false
}
