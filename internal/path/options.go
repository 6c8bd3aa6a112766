package path

import (
	"context"
	"errors"

	"mazes/internal/core"
)

// Sentinel errors for malformed search requests. A request that is well formed
// but has no route is not an error.
var (
	// ErrNilGrid is returned if a nil grid pointer is passed.
	ErrNilGrid = errors.New("path: grid is nil")
	// ErrOutOfBounds is returned when start or end lies off the grid.
	ErrOutOfBounds = errors.New("path: point out of bounds")
	// ErrBlocked is returned when start or end is not an empty cell.
	ErrBlocked = errors.New("path: point is blocked")
)

// Option configures a search.
type Option func(*Options)

// Options holds search parameters.
type Options struct {
	// Ctx allows cancellation; it is checked once per expanded point.
	Ctx context.Context
	// OnVisit is called with every point taken off the frontier.
	OnVisit func(core.Point)
}

// DefaultOptions returns background context and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(core.Point) {},
	}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithVisit installs a hook called for each expanded point.
func WithVisit(fn func(core.Point)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
