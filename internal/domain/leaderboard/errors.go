package leaderboard

import "errors"

var (
	// ErrProfileNotFound means no profile document exists for the owner.
	// Ranking falls back to the placeholder identity; never propagated.
	ErrProfileNotFound = errors.New("profile not found")

	ErrInvalidLimit = errors.New("leaderboard limit must be positive")
)
