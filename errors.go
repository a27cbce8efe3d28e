package autoload

import "errors"

var (
	// Dispatch errors.
	ErrNameNotFound      = errors.New("autoload: name not found")
	ErrEmptyName         = errors.New("autoload: empty call name")
	ErrRecursiveFallback = errors.New("autoload: recursive fallback resolution")
	ErrGenerationTimeout = errors.New("autoload: handler generation timed out")

	// Delegation errors.
	ErrDelegationTargetMissing = errors.New("autoload: delegation target missing member")
)
