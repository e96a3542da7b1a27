package postgres

import "time"

type matchArchiveTableModel struct {
	ID         int64      `db:"id"`
	SessionID  string     `db:"session_id"`
	Round      int        `db:"round"`
	HomeClubID string     `db:"home_club_id"`
	AwayClubID string     `db:"away_club_id"`
	HomeScore  int        `db:"home_score"`
	AwayScore  int        `db:"away_score"`
	Summary    string     `db:"summary"`
	Fallback   bool       `db:"fallback"`
	PlayedAt   time.Time  `db:"played_at"`
	CreatedAt  time.Time  `db:"created_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type matchArchiveInsertModel struct {
	SessionID  string    `db:"session_id"`
	Round      int       `db:"round"`
	HomeClubID string    `db:"home_club_id"`
	AwayClubID string    `db:"away_club_id"`
	HomeScore  int       `db:"home_score"`
	AwayScore  int       `db:"away_score"`
	Summary    string    `db:"summary"`
	Fallback   bool      `db:"fallback"`
	PlayedAt   time.Time `db:"played_at"`
}
