package performance

import "errors"

var (
	// ErrSourceUnavailable wraps a failed record-source query. It is the
	// only error class expected to reach callers of the engine; treat it
	// as retryable.
	ErrSourceUnavailable = errors.New("record source unavailable")

	// ErrTargetNotFound means no target config is stored for the owner.
	// Resolution falls back to defaults; this never propagates.
	ErrTargetNotFound = errors.New("target config not found")

	ErrOwnerRequired = errors.New("owner id is required")
	ErrInvalidPeriod = errors.New("unknown period kind")
	ErrInvalidCount  = errors.New("period count must be positive")
)
