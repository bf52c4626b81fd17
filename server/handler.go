package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/ardnew/tmpl/lang"
	"github.com/ardnew/tmpl/log"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	notFoundBody    = "<h1>404 Page Not Found</h1>"
	serverErrorBody = "<h1>500 Internal Server Error</h1>"
)

// handler renders the template of the first route matching a request.
type handler struct {
	routes   router
	root     *os.Root
	store    *store
	markdown goldmark.Markdown
	engine   []lang.Option
	logger   log.Logger
}

func newHandler(
	routes router,
	root *os.Root,
	s *store,
	o options,
) *handler {
	return &handler{
		routes: routes,
		root:   root,
		store:  s,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		engine: o.engine,
		logger: o.logger,
	}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e, params, ok := h.routes.lookup(r.URL.Path)
	if !ok {
		h.logger.DebugContext(ctx, "no route", slog.String("path", r.URL.Path))
		writeBody(w, http.StatusNotFound, contentTypeHTML, []byte(notFoundBody))

		return
	}

	name := e.template(params)

	body, contentType, err := h.render(ctx, name, requestContext(h.store.Load(), r, params))
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		h.logger.WarnContext(ctx, "template not found",
			slog.String("pattern", e.Pattern),
			slog.String("template", name))
		writeBody(w, http.StatusNotFound, contentTypeHTML, []byte(notFoundBody))

	case err != nil:
		h.logger.ErrorContext(ctx, "render failed",
			slog.String("pattern", e.Pattern),
			slog.String("template", name),
			slog.Any("error", err))
		writeBody(w, http.StatusInternalServerError, contentTypeHTML, []byte(serverErrorBody))

	default:
		writeBody(w, http.StatusOK, contentType, body)
	}
}

// render reads the named template fresh from the root and renders it.
func (h *handler) render(
	ctx context.Context,
	name string,
	data lang.Context,
) ([]byte, string, error) {
	src, err := h.read(name)
	if err != nil {
		return nil, "", err
	}

	out, err := lang.Render(ctx, string(src), data, h.engine...)
	if err != nil {
		return nil, "", lang.WrapError(err).With(slog.String("template", name))
	}

	ext := strings.ToLower(path.Ext(name))
	if ext == ".md" || ext == ".markdown" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(out), &buf); err != nil {
			return nil, "", err
		}

		return buf.Bytes(), contentTypeHTML, nil
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = contentTypeHTML
	}

	return []byte(out), contentType, nil
}

func (h *handler) read(name string) ([]byte, error) {
	f, err := h.root.Open(strings.TrimPrefix(path.Clean(name), "/"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrTemplateNotFound.With(slog.String("template", name)).Wrap(err)
		}

		return nil, err
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.IsDir() {
		return nil, ErrTemplateNotFound.With(slog.String("template", name))
	}

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, lang.ErrReadInput.Wrap(err)
	}

	return b, nil
}

// requestContext layers the request description over base. The base context
// is shared between requests and is not modified.
func requestContext(base lang.Context, r *http.Request, params map[string]string) lang.Context {
	data := maps.Clone(base)
	if data == nil {
		data = lang.Context{}
	}

	p := make(lang.Object, len(params))
	for k, v := range params {
		p[k] = lang.String(v)
	}

	data["params"] = p
	data["request"] = lang.Object{
		"method": lang.String(r.Method),
		"path":   lang.String(r.URL.Path),
		"query":  queryObject(r.URL.Query()),
	}

	return data
}

func queryObject(q url.Values) lang.Object {
	obj := make(lang.Object, len(q))
	for k, v := range q {
		if len(v) > 0 {
			obj[k] = lang.String(v[0])
		}
	}

	return obj
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
