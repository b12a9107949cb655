package report

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/flashbox/internal/db"
	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/repository"
	"github.com/google/uuid"
)

// HistorySink records sessions and card ratings in the local database for
// the history command.
type HistorySink struct {
	uow db.UnitOfWork
	now func() time.Time
}

// NewHistorySink creates a HistorySink writing through uow.
func NewHistorySink(uow db.UnitOfWork) *HistorySink {
	return &HistorySink{uow: uow, now: time.Now}
}

func (h *HistorySink) WriteSession(ctx context.Context, p SessionPayload) error {
	id := p.SessionID
	if id == "" {
		id = uuid.New().String()
	}
	report := &domain.SessionReport{
		ID:           id,
		Course:       p.Course,
		StudentEmail: p.StudentEmail,
		Topics:       p.Topics,
		Counts: domain.RatingCounts{
			DontKnow: p.DontKnow,
			Somewhat: p.Somewhat,
			KnowWell: p.KnowWell,
		},
		DurationSeconds: p.DurationSeconds,
		RecordedAt:      h.now().UTC(),
	}
	return h.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteReportRepo(tx).CreateSession(ctx, report)
	})
}

// WriteCardDetail stores every rating of the payload or none of them.
func (h *HistorySink) WriteCardDetail(ctx context.Context, p CardDetailPayload) error {
	if len(p.Cards) == 0 {
		return nil
	}
	records := make([]domain.RatingRecord, 0, len(p.Cards))
	for i, c := range p.Cards {
		rating, err := domain.ParseRatingLabel(c.Rating)
		if err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
		box, err := domain.ParseBox(c.Box)
		if err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
		records = append(records, domain.RatingRecord{
			Unit:   c.Unit,
			Sub:    c.Sub,
			Term:   c.Term,
			Rating: rating,
			Box:    box,
		})
	}

	sessionID := p.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	recordedAt := h.now().UTC()

	return h.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteReportRepo(tx)
		for i, rec := range records {
			if err := repo.CreateRating(ctx, sessionID, p.Course, i, rec, recordedAt); err != nil {
				return err
			}
		}
		return nil
	})
}
