// Package report forwards finished study sessions to reporting sinks.
package report

import (
	"github.com/alexanderramin/flashbox/internal/domain"
)

const (
	ActionSession    = "session"
	ActionCardDetail = "cardDetail"
)

// SessionPayload is the session summary record. Field names match the
// spreadsheet endpoint's contract.
type SessionPayload struct {
	Action          string `json:"action"`
	SessionID       string `json:"sessionId,omitempty"`
	StudentEmail    string `json:"studentEmail"`
	Topics          string `json:"topics"`
	TotalCards      int    `json:"totalCards"`
	DontKnow        int    `json:"dontKnow"`
	Somewhat        int    `json:"somewhat"`
	KnowWell        int    `json:"knowWell"`
	DurationSeconds int    `json:"durationSeconds"`
	Course          string `json:"course"`
}

// CardRecord is one rating in a CardDetailPayload.
type CardRecord struct {
	Unit   string `json:"unit"`
	Sub    string `json:"sub"`
	Term   string `json:"term"`
	Rating string `json:"rating"`
	Box    int    `json:"box"`
}

// CardDetailPayload carries every rating of a session in order.
type CardDetailPayload struct {
	Action       string       `json:"action"`
	SessionID    string       `json:"sessionId,omitempty"`
	StudentEmail string       `json:"studentEmail"`
	Course       string       `json:"course"`
	Cards        []CardRecord `json:"cards"`
}

// NewSessionPayload builds the summary payload for outcome.
func NewSessionPayload(o domain.SessionOutcome, email, course string) SessionPayload {
	return SessionPayload{
		Action:          ActionSession,
		SessionID:       o.SessionID,
		StudentEmail:    email,
		Topics:          o.TopicNames(),
		TotalCards:      o.Counts.Total(),
		DontKnow:        o.Counts.DontKnow,
		Somewhat:        o.Counts.Somewhat,
		KnowWell:        o.Counts.KnowWell,
		DurationSeconds: o.DurationSeconds(),
		Course:          course,
	}
}

// NewCardDetailPayload builds the per-card payload for outcome.
func NewCardDetailPayload(o domain.SessionOutcome, email, course string) CardDetailPayload {
	cards := make([]CardRecord, 0, len(o.Records))
	for _, r := range o.Records {
		cards = append(cards, CardRecord{
			Unit:   r.Unit,
			Sub:    r.Sub,
			Term:   r.Term,
			Rating: r.Rating.Label(),
			Box:    int(r.Box),
		})
	}
	return CardDetailPayload{
		Action:       ActionCardDetail,
		SessionID:    o.SessionID,
		StudentEmail: email,
		Course:       course,
		Cards:        cards,
	}
}
