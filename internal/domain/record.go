package domain

// RatingRecord is one entry of a session's per-card rating log.
type RatingRecord struct {
	Unit   string
	Sub    string
	Term   string
	Rating Rating
	Box    Box
}

// BoxCounts tallies cards per mastery level.
type BoxCounts [len(AllBoxes)]int

// Total sums all boxes.
func (c BoxCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// RatingCounts mirrors the sizes of a session's rating buckets.
type RatingCounts struct {
	DontKnow int
	Somewhat int
	KnowWell int
}

// Total returns DontKnow + Somewhat + KnowWell.
func (c RatingCounts) Total() int {
	return c.DontKnow + c.Somewhat + c.KnowWell
}

// KnowWellPct returns the rounded share of know-well ratings, 0 when empty.
func (c RatingCounts) KnowWellPct() int {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return (c.KnowWell*200 + total) / (2 * total)
}
