package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
	qb "github.com/riskibarqy/club-manager/internal/platform/querybuilder"
)

const matchArchiveTable = "match_archive"

type MatchLogRepository struct {
	db *sqlx.DB
}

func NewMatchLogRepository(db *sqlx.DB) *MatchLogRepository {
	return &MatchLogRepository{db: db}
}

func (r *MatchLogRepository) Append(ctx context.Context, entry matchlog.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid match log entry: %w", err)
	}

	insertModel := matchArchiveInsertModel{
		SessionID:  entry.SessionID,
		Round:      entry.Round,
		HomeClubID: entry.HomeClubID,
		AwayClubID: entry.AwayClubID,
		HomeScore:  entry.HomeScore,
		AwayScore:  entry.AwayScore,
		Summary:    entry.Summary,
		Fallback:   entry.Fallback,
		PlayedAt:   entry.PlayedAt.UTC(),
	}
	query, args, err := qb.InsertModel(matchArchiveTable, insertModel, `ON CONFLICT (session_id, round) WHERE deleted_at IS NULL
DO UPDATE SET
    away_club_id = EXCLUDED.away_club_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    summary = EXCLUDED.summary,
    fallback = EXCLUDED.fallback,
    played_at = EXCLUDED.played_at`)
	if err != nil {
		return fmt.Errorf("build insert match archive query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match archive session=%s round=%d: %w", entry.SessionID, entry.Round, err)
	}
	return nil
}

func (r *MatchLogRepository) ListBySession(ctx context.Context, sessionID string) ([]matchlog.Entry, error) {
	query, args, err := qb.Select("*").From(matchArchiveTable).
		Where(
			qb.Eq("session_id", sessionID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("round ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match archive query: %w", err)
	}

	var rows []matchArchiveTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		if isNotFound(err) {
			return []matchlog.Entry{}, nil
		}
		return nil, fmt.Errorf("select match archive session=%s: %w", sessionID, err)
	}

	out := make([]matchlog.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchlog.Entry{
			SessionID:  row.SessionID,
			Round:      row.Round,
			HomeClubID: row.HomeClubID,
			AwayClubID: row.AwayClubID,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
			Summary:    row.Summary,
			Fallback:   row.Fallback,
			PlayedAt:   row.PlayedAt.UTC(),
		})
	}
	return out, nil
}
