package domain

import "time"

// SessionReport is a finished session as recorded in local history.
type SessionReport struct {
	ID              string
	Course          string
	StudentEmail    string
	Topics          string
	Counts          RatingCounts
	DurationSeconds int
	RecordedAt      time.Time
}

// TermStat aggregates recorded ratings for one card identity.
type TermStat struct {
	Key      CardKey
	Ratings  int
	DontKnow int
	Somewhat int
	LastBox  Box
}
