package server

import (
	"compress/gzip"
	"net/http"

	"github.com/klauspost/compress/gzhttp"
)

// newCompressionHandler wraps h with gzip compression for responses of at
// least minSize bytes. It returns h unchanged if compression is disabled.
func newCompressionHandler(h http.Handler, enabled bool, minSize int) (http.Handler, error) {
	if !enabled {
		return h, nil
	}

	wrapper, err := gzhttp.NewWrapper(
		gzhttp.MinSize(minSize),
		gzhttp.CompressionLevel(gzip.DefaultCompression),
	)
	if err != nil {
		return nil, err
	}

	return wrapper(h), nil
}
