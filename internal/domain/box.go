package domain

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strconv"
)

// Box is a card's mastery level. It reflects only the most recent rating.
type Box int

const (
	BoxUnseen   Box = iota // never rated
	BoxDontKnow            // last rated "don't know"
	BoxSomewhat            // last rated "somewhat"
	BoxKnowWell            // last rated "know well"
)

// AllBoxes lists every mastery level in ascending order.
var AllBoxes = [...]Box{BoxUnseen, BoxDontKnow, BoxSomewhat, BoxKnowWell}

var boxNames = [...]string{
	BoxUnseen:   "unseen",
	BoxDontKnow: "dont_know",
	BoxSomewhat: "somewhat",
	BoxKnowWell: "know_well",
}

// IsValid reports whether b is within 0..3.
func (b Box) IsValid() bool {
	return b >= BoxUnseen && b <= BoxKnowWell
}

// String returns the box name, or "Box(n)" for invalid values.
func (b Box) String() string {
	if b.IsValid() {
		return boxNames[b]
	}
	return fmt.Sprintf("Box(%d)", int(b))
}

// ParseBox converts an integer to a Box.
func ParseBox(n int) (Box, error) {
	b := Box(n)
	if !b.IsValid() {
		return BoxUnseen, fmt.Errorf("%w: %d", ErrInvalidBox, n)
	}
	return b, nil
}

// Rating is the learner's self-assessment of a card.
type Rating int

const (
	RatingDontKnow Rating = iota + 1
	RatingSomewhat
	RatingKnowWell
)

var (
	ratingNames = [...]string{
		RatingDontKnow: "dont_know",
		RatingSomewhat: "somewhat",
		RatingKnowWell: "know_well",
	}
	ratingLabels = [...]string{
		RatingDontKnow: "Don't Know",
		RatingSomewhat: "Somewhat",
		RatingKnowWell: "Know Well",
	}
	ratingByName = map[string]Rating{
		"dont_know": RatingDontKnow,
		"somewhat":  RatingSomewhat,
		"know_well": RatingKnowWell,
		"1":         RatingDontKnow,
		"2":         RatingSomewhat,
		"3":         RatingKnowWell,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Rating(0)
	_ json.Marshaler           = Rating(0)
	_ json.Unmarshaler         = (*Rating)(nil)
	_ encoding.TextMarshaler   = Rating(0)
	_ encoding.TextUnmarshaler = (*Rating)(nil)
)

// IsValid reports whether r is one of the three ratings.
func (r Rating) IsValid() bool {
	return r >= RatingDontKnow && r <= RatingKnowWell
}

// Box returns the mastery level a rating moves a card to.
func (r Rating) Box() Box {
	if !r.IsValid() {
		return BoxUnseen
	}
	return Box(r)
}

// Label returns the human label reported to spreadsheets ("Don't Know").
func (r Rating) Label() string {
	if !r.IsValid() {
		return ""
	}
	return ratingLabels[r]
}

func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return "Rating(" + strconv.Itoa(int(r)) + ")"
}

// ParseRating accepts a rating name or its keyboard digit ("1".."3").
func ParseRating(s string) (Rating, error) {
	r, ok := ratingByName[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
	return r, nil
}

// ParseRatingLabel is the inverse of Rating.Label.
func ParseRatingLabel(label string) (Rating, error) {
	for r := RatingDontKnow; r <= RatingKnowWell; r++ {
		if ratingLabels[r] == label {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: label %q", ErrInvalidRating, label)
}

func (r Rating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

func (r *Rating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r Rating) MarshalJSON() ([]byte, error) {
	text, err := r.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

func (r *Rating) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidRating, data)
	}
	return r.UnmarshalText([]byte(s))
}
