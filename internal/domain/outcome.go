package domain

import (
	"strings"
	"time"
)

// SessionOutcome is what a finished study session hands to reporting.
type SessionOutcome struct {
	SessionID  string
	Topics     []TopicKey
	Counts     RatingCounts
	Records    []RatingRecord
	StartedAt  time.Time
	FinishedAt time.Time
}

// DurationSeconds returns the session length rounded to whole seconds.
func (o SessionOutcome) DurationSeconds() int {
	if o.StartedAt.IsZero() || o.FinishedAt.Before(o.StartedAt) {
		return 0
	}
	return int(o.FinishedAt.Sub(o.StartedAt).Round(time.Second) / time.Second)
}

// TopicNames joins the distinct subtopic names of the selection with ", ".
func (o SessionOutcome) TopicNames() string {
	seen := make(map[string]bool, len(o.Topics))
	names := make([]string, 0, len(o.Topics))
	for _, t := range o.Topics {
		if seen[t.Sub] {
			continue
		}
		seen[t.Sub] = true
		names = append(names, t.Sub)
	}
	return strings.Join(names, ", ")
}
