package inmemorylookup

import (
	"log/slog"

	"github.com/specialistvlad/lookupgo/internal/typeclosure"
)

// Option configures a registry at construction time.
type Option func(*options)

type options struct {
	walker *typeclosure.Walker
	logger *slog.Logger
}

// WithWalker sets the walker used to compute type closures.
// Defaults to typeclosure.Default.
func WithWalker(w *typeclosure.Walker) Option {
	return func(o *options) { o.walker = w }
}

// WithLogger sets the logger receiving Debug records on mutation.
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(base options, opts []Option) options {
	for _, fn := range opts {
		fn(&base)
	}
	if base.walker == nil {
		base.walker = typeclosure.Default
	}
	if base.logger == nil {
		base.logger = slog.Default()
	}
	return base
}
