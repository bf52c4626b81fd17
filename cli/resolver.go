package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/tmpl/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML configuration files.
//
// Keys may be written with hyphens or underscores, and nested mappings are
// flattened with hyphens, so each of the following sets --log-level:
//
//	log-level: debug
//	log_level: debug
//	log:
//	  level: debug
//
// Command-line flags override configuration file values. A file that cannot
// be decoded is ignored with a warning.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		err := yaml.NewDecoder(r).DecodeContext(ctx, &doc)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring invalid configuration",
					slog.String("error", err.Error()))
			}

			return config{}, nil
		}

		cfg := config{}
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] over a flattened YAML document.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if v, ok := c[flag.Name]; ok {
		return v, nil
	}

	if v, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return v, nil
	}

	return nil, nil
}

func (c config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := val.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		if val = scalar(val); val != nil {
			c[key] = val
		}
	}
}

// scalar converts a decoded YAML value to the form kong's mappers accept:
// numbers as strings and sequences as comma-separated strings.
func scalar(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case string, bool:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		elem := make([]string, 0, len(v))
		for _, e := range v {
			if s := scalar(e); s != nil {
				elem = append(elem, fmt.Sprint(s))
			}
		}

		return strings.Join(elem, ",")
	default:
		return fmt.Sprint(v)
	}
}
