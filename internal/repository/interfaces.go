package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
)

// KVRepo is the key-value persistence capability behind the progress store
// and learner identity. Get returns ErrNotFound for absent keys.
type KVRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ReportRepo stores finished sessions and their per-card ratings.
type ReportRepo interface {
	CreateSession(ctx context.Context, s *domain.SessionReport) error
	CreateRating(ctx context.Context, sessionID, course string, seq int, rec domain.RatingRecord, recordedAt time.Time) error
	GetSession(ctx context.Context, id string) (*domain.SessionReport, error)
	ListRecentSessions(ctx context.Context, limit int) ([]*domain.SessionReport, error)
	ListRatingsBySession(ctx context.Context, sessionID string) ([]domain.RatingRecord, error)
	ListWeakTerms(ctx context.Context, limit int) ([]domain.TermStat, error)
}

var (
	_ KVRepo     = (*SQLiteKVRepo)(nil)
	_ ReportRepo = (*SQLiteReportRepo)(nil)
)
