package autoload

import (
	"fmt"
	"log/slog"
	"time"
)

// Option configures a Domain.
type Option func(*Domain) error

// WithResolver sets the fallback resolver consulted on every miss.
// Equivalent to calling SetFallback after construction.
func WithResolver(r Resolver) Option {
	return func(d *Domain) error {
		d.SetFallback(r)
		return nil
	}
}

// WithLogger sets the structured logger for the domain.
func WithLogger(l *slog.Logger) Option {
	return func(d *Domain) error {
		d.logger = l
		return nil
	}
}

// WithMaxDepth bounds the unresolved fallback chain depth.
func WithMaxDepth(n int) Option {
	return func(d *Domain) error {
		if n <= 0 {
			return fmt.Errorf("autoload: max depth must be positive, got %d", n)
		}
		d.config.MaxDepth = n
		return nil
	}
}

// WithGenerationTimeout bounds how long a caller waits on another
// caller's in-progress generation of the same name. Zero disables the
// bound.
func WithGenerationTimeout(timeout time.Duration) Option {
	return func(d *Domain) error {
		if timeout < 0 {
			return fmt.Errorf("autoload: generation timeout must not be negative, got %s", timeout)
		}
		d.config.GenerationTimeout = timeout
		return nil
	}
}

// WithReservedNames sets the names exempt from fallback resolution. A
// miss on a reserved name yields OutcomeNoop without consulting the
// resolver. Typical entries are teardown and introspection hook names
// whose fallback would recurse into the machinery implementing them.
func WithReservedNames(names ...string) Option {
	return func(d *Domain) error {
		for _, name := range names {
			if name == "" {
				return ErrEmptyName
			}
		}
		d.config.ReservedNames = append(d.config.ReservedNames, names...)
		return nil
	}
}

// WithMiddleware appends middleware to the domain's handler chain.
// Middleware are applied right-to-left: the first registered is the
// outermost wrapper.
func WithMiddleware(mws ...Middleware) Option {
	return func(d *Domain) error {
		d.mws = append(d.mws, mws...)
		return nil
	}
}

// WithHooks sets the lifecycle hook sink for the domain. The ext
// package's Registry is the standard implementation.
func WithHooks(h Hooks) Option {
	return func(d *Domain) error {
		if h == nil {
			return fmt.Errorf("autoload: hooks must not be nil")
		}
		d.hooks = h
		return nil
	}
}
