package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/flashbox/internal/db"
	"github.com/alexanderramin/flashbox/internal/domain"
)

// SQLiteReportRepo implements ReportRepo over session_reports and card_ratings.
type SQLiteReportRepo struct {
	db db.DBTX
}

// NewSQLiteReportRepo creates a new SQLiteReportRepo.
func NewSQLiteReportRepo(conn db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: conn}
}

func (r *SQLiteReportRepo) CreateSession(ctx context.Context, s *domain.SessionReport) error {
	query := `INSERT INTO session_reports (id, course, student_email, topics, total_cards,
		dont_know, somewhat, know_well, duration_seconds, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Course,
		s.StudentEmail,
		s.Topics,
		s.Counts.Total(),
		s.Counts.DontKnow,
		s.Counts.Somewhat,
		s.Counts.KnowWell,
		s.DurationSeconds,
		s.RecordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session report: %w", err)
	}
	return nil
}

func (r *SQLiteReportRepo) CreateRating(ctx context.Context, sessionID, course string, seq int, rec domain.RatingRecord, recordedAt time.Time) error {
	query := `INSERT INTO card_ratings (session_id, seq, course, unit, sub, term, rating, box, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		sessionID,
		seq,
		course,
		rec.Unit,
		rec.Sub,
		rec.Term,
		rec.Rating.String(),
		int(rec.Box),
		recordedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting card rating %d: %w", seq, err)
	}
	return nil
}

func (r *SQLiteReportRepo) GetSession(ctx context.Context, id string) (*domain.SessionReport, error) {
	query := `SELECT id, course, student_email, topics, dont_know, somewhat, know_well,
		duration_seconds, recorded_at
		FROM session_reports WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, recordedAt, err := scanSessionReport(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session report: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session report: %w", err)
	}
	return parseRecordedAt(s, recordedAt)
}

func (r *SQLiteReportRepo) ListRecentSessions(ctx context.Context, limit int) ([]*domain.SessionReport, error) {
	query := `SELECT id, course, student_email, topics, dont_know, somewhat, know_well,
		duration_seconds, recorded_at
		FROM session_reports
		ORDER BY recorded_at DESC, id
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing session reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.SessionReport
	for rows.Next() {
		s, recordedAt, err := scanSessionReport(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning session report row: %w", err)
		}
		report, err := parseRecordedAt(s, recordedAt)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session reports: %w", err)
	}
	return reports, nil
}

func (r *SQLiteReportRepo) ListRatingsBySession(ctx context.Context, sessionID string) ([]domain.RatingRecord, error) {
	query := `SELECT unit, sub, term, rating, box FROM card_ratings
		WHERE session_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing card ratings: %w", err)
	}
	defer rows.Close()

	var records []domain.RatingRecord
	for rows.Next() {
		var rec domain.RatingRecord
		var rating string
		var box int
		if err := rows.Scan(&rec.Unit, &rec.Sub, &rec.Term, &rating, &box); err != nil {
			return nil, fmt.Errorf("scanning card rating: %w", err)
		}
		if rec.Rating, err = domain.ParseRating(rating); err != nil {
			return nil, err
		}
		if rec.Box, err = domain.ParseBox(box); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card ratings: %w", err)
	}
	return records, nil
}

// ListWeakTerms ranks card identities by how often they were rated
// "don't know", then "somewhat".
func (r *SQLiteReportRepo) ListWeakTerms(ctx context.Context, limit int) ([]domain.TermStat, error) {
	query := `SELECT c.unit, c.sub, c.term,
			COUNT(*),
			SUM(CASE WHEN c.rating = 'dont_know' THEN 1 ELSE 0 END),
			SUM(CASE WHEN c.rating = 'somewhat' THEN 1 ELSE 0 END),
			(SELECT l.box FROM card_ratings l
			 WHERE l.unit = c.unit AND l.sub = c.sub AND l.term = c.term
			 ORDER BY l.recorded_at DESC, l.seq DESC LIMIT 1)
		FROM card_ratings c
		GROUP BY c.unit, c.sub, c.term
		HAVING SUM(CASE WHEN c.rating IN ('dont_know', 'somewhat') THEN 1 ELSE 0 END) > 0
		ORDER BY 5 DESC, 6 DESC, c.unit, c.sub, c.term
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing weak terms: %w", err)
	}
	defer rows.Close()

	var stats []domain.TermStat
	for rows.Next() {
		var st domain.TermStat
		var lastBox int
		if err := rows.Scan(&st.Key.Unit, &st.Key.Sub, &st.Key.Term, &st.Ratings, &st.DontKnow, &st.Somewhat, &lastBox); err != nil {
			return nil, fmt.Errorf("scanning weak term: %w", err)
		}
		st.LastBox = domain.Box(lastBox)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating weak terms: %w", err)
	}
	return stats, nil
}

// scanSessionReport scans the common session_reports column list with either
// a *sql.Row or *sql.Rows Scan function.
func scanSessionReport(scan func(dest ...any) error) (*domain.SessionReport, string, error) {
	var s domain.SessionReport
	var recordedAt string
	err := scan(
		&s.ID, &s.Course, &s.StudentEmail, &s.Topics,
		&s.Counts.DontKnow, &s.Counts.Somewhat, &s.Counts.KnowWell,
		&s.DurationSeconds, &recordedAt,
	)
	return &s, recordedAt, err
}

func parseRecordedAt(s *domain.SessionReport, recordedAt string) (*domain.SessionReport, error) {
	t, err := time.Parse(time.RFC3339, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing recorded_at: %w", err)
	}
	s.RecordedAt = t
	return s, nil
}
