package session

import (
	"fmt"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
)

// Tier grades a finished session by its know-well share.
type Tier int

const (
	TierKeepGoing Tier = iota
	TierGood
	TierGreat
	TierPerfect
)

// TierFor returns the tier of a rounded know-well percentage.
func TierFor(pct int) Tier {
	switch {
	case pct >= 100:
		return TierPerfect
	case pct >= 75:
		return TierGreat
	case pct >= 50:
		return TierGood
	default:
		return TierKeepGoing
	}
}

// Summary is the end-of-session result shown to the learner.
type Summary struct {
	Counts      domain.RatingCounts
	KnowWellPct int
	Duration    time.Duration
	WeakCards   int
	Tier        Tier
}

// Message returns the encouragement line for the summary.
func (s Summary) Message() string {
	switch s.Tier {
	case TierPerfect:
		return "Perfect! You knew every single card."
	case TierGreat:
		return fmt.Sprintf("Great job! You confidently knew %d%% of the cards.", s.KnowWellPct)
	case TierGood:
		return fmt.Sprintf("Good progress. You knew %d%% well; keep reviewing the rest!", s.KnowWellPct)
	default:
		return fmt.Sprintf("You knew %d%% well. Review the weak cards and you'll improve!", s.KnowWellPct)
	}
}

// Summary reports the session's results so far.
func (e *Engine) Summary() Summary {
	pct := e.counts.KnowWellPct()
	var elapsed time.Duration
	if !e.startedAt.IsZero() {
		end := e.finishedAt
		if end.IsZero() {
			end = e.now()
		}
		elapsed = end.Sub(e.startedAt)
	}
	return Summary{
		Counts:      e.counts,
		KnowWellPct: pct,
		Duration:    elapsed,
		WeakCards:   len(e.WeakCards()),
		Tier:        TierFor(pct),
	}
}
