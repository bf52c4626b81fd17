package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ardnew/tmpl/log"
)

// responseCapture records the status and size of a response.
type responseCapture struct {
	http.ResponseWriter

	status int
	bytes  int
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.status = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	if rc.status == 0 {
		rc.status = http.StatusOK
	}

	n, err := rc.ResponseWriter.Write(b)
	rc.bytes += n

	return n, err
}

func (rc *responseCapture) Unwrap() http.ResponseWriter { return rc.ResponseWriter }

// newRequestLogger logs one entry per request after it is served.
func newRequestLogger(h http.Handler, logger log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rc := &responseCapture{ResponseWriter: w}

		h.ServeHTTP(rc, r)

		clientIP := r.RemoteAddr
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			clientIP = xff
		}

		logger.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rc.status),
			slog.Int("bytes", rc.bytes),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", clientIP),
		)
	})
}
