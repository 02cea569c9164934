package resolve

import "errors"

var (
	// ErrConfig indicates malformed tunables, difficulty or modifier input.
	// Resolution fails fast; nothing is silently defaulted.
	ErrConfig = errors.New("resolve: invalid configuration")

	// ErrInvariant indicates a caller contract violation, such as a negative
	// suit bonus. These are programming errors, not recoverable conditions.
	ErrInvariant = errors.New("resolve: invariant violation")
)
