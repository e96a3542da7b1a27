package querybuilder

import (
	"testing"
	"time"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("session_id", "round").
		From("match_archive").
		Where(Eq("session_id", "s-1"), IsNull("deleted_at")).
		OrderBy("round ASC").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	want := "SELECT session_id, round FROM match_archive WHERE session_id = $1 AND deleted_at IS NULL ORDER BY round ASC LIMIT 50"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 1 || args[0] != "s-1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	t.Parallel()

	if _, _, err := Select("*").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		SessionID string    `db:"session_id"`
		Round     int       `db:"round"`
		Ignored   string    `db:"-"`
		PlayedAt  time.Time `db:"played_at"`
		internal  string
	}

	playedAt := time.Date(2026, 4, 5, 18, 0, 0, 0, time.UTC)
	query, args, err := InsertModel("match_archive", row{SessionID: "s-1", Round: 3, PlayedAt: playedAt, internal: "x"}, "ON CONFLICT (session_id, round) DO NOTHING")
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO match_archive (session_id, round, played_at) VALUES ($1, $2, $3) ON CONFLICT (session_id, round) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", want, query)
	}
	if len(args) != 3 || args[0] != "s-1" || args[1] != 3 || args[2] != playedAt {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertBuilder_ValueCountMismatch(t *testing.T) {
	t.Parallel()

	if _, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected mismatch error")
	}
}
