package domain

import "errors"

var (
	// ErrInvalidCard indicates a card with a missing identity field.
	ErrInvalidCard = errors.New("invalid card")

	// ErrInvalidBox indicates a mastery level outside 0..3.
	ErrInvalidBox = errors.New("invalid box")

	// ErrInvalidRating indicates an unknown rating value or name.
	ErrInvalidRating = errors.New("invalid rating")
)
