package autoload

import "time"

// Config holds configuration for a dispatch Domain.
type Config struct {
	// MaxDepth bounds the length of an unresolved fallback chain. A
	// resolver whose work triggers further dispatch misses grows the
	// chain; once it exceeds MaxDepth the call fails with
	// ErrRecursiveFallback. Direct same-name re-entry fails immediately
	// regardless of this bound.
	MaxDepth int

	// GenerationTimeout bounds how long a caller waits on another
	// caller's in-progress generation of the same name. Zero disables
	// the bound. On expiry the waiter fails with ErrGenerationTimeout;
	// the generation itself is left to run.
	GenerationTimeout time.Duration

	// ReservedNames bypass fallback resolution entirely: a miss on a
	// reserved name yields OutcomeNoop instead of consulting the
	// resolver. Installed handlers on reserved names dispatch normally.
	ReservedNames []string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:          100,
		GenerationTimeout: 0,
	}
}
