package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("select: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("pq: relation match_archive does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestMatchLogRepository_AppendRejectsInvalidEntry(t *testing.T) {
	t.Parallel()

	repo := NewMatchLogRepository(nil)
	err := repo.Append(context.Background(), matchlog.Entry{
		SessionID:  "s-1",
		Round:      1,
		HomeClubID: "fla",
		AwayClubID: "fla",
		PlayedAt:   time.Date(2026, 4, 5, 16, 0, 0, 0, time.UTC),
	})
	if err == nil {
		t.Fatalf("expected validation error before touching the database")
	}
}
