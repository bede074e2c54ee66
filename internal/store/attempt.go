package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SQLAttemptRepo implements AttemptRepo on the quiz_attempts table.
type SQLAttemptRepo struct {
	db *sql.DB
}

var _ AttemptRepo = (*SQLAttemptRepo)(nil)

var attemptFields = []string{"id", "timestamp", "session_id", "chapter_id", "score", "total", "skipped", "source"}

func (r *SQLAttemptRepo) AppendAttempt(ctx context.Context, data AttemptData) error {
	if data.Score < 0 || data.Score > data.Total {
		return fmt.Errorf("score %d outside 0..%d", data.Score, data.Total)
	}
	query, args := builder().Insert(attemptsTable).
		Columns(attemptFields[1:]...).
		Values(time.Now().UTC(), data.SessionID, data.ChapterID, data.Score, data.Total, data.Skipped, data.Source).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

// RecentAttempts returns up to limit attempts, newest first. An empty
// chapterID matches every chapter.
func (r *SQLAttemptRepo) RecentAttempts(ctx context.Context, chapterID string, limit int) ([]Attempt, error) {
	b := builder()
	t := b.Table(attemptsTable)
	sel := b.Select(columns(t, attemptFields)...).From(t).OrderBy(entsql.Desc(t.C("id")))
	if chapterID != "" {
		sel.Where(entsql.EQ(t.C("chapter_id"), chapterID))
	}
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.SessionID, &a.ChapterID, &a.Score, &a.Total, &a.Skipped, &a.Source); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// BestByChapter returns, per chapter, the attempt count and the best score.
// Chapters are ordered by id.
func (r *SQLAttemptRepo) BestByChapter(ctx context.Context) ([]ChapterBest, error) {
	b := builder()
	t := b.Table(attemptsTable)
	query, args := b.Select(
		t.C("chapter_id"),
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Max(t.C("score")), "best"),
		entsql.As(entsql.Max(t.C("total")), "total"),
	).
		From(t).
		GroupBy(t.C("chapter_id")).
		OrderBy(t.C("chapter_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query best scores: %w", err)
	}
	defer rows.Close()

	var out []ChapterBest
	for rows.Next() {
		var cb ChapterBest
		if err := rows.Scan(&cb.ChapterID, &cb.Attempts, &cb.BestScore, &cb.Total); err != nil {
			return nil, fmt.Errorf("scan best score: %w", err)
		}
		out = append(out, cb)
	}
	return out, rows.Err()
}
