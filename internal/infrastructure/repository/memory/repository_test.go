package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
)

func TestSeedClubs(t *testing.T) {
	t.Parallel()

	clubs, err := SeedClubs()
	if err != nil {
		t.Fatalf("seed clubs: %v", err)
	}
	if len(clubs) != 12 {
		t.Fatalf("expected 12 reference clubs, got %d", len(clubs))
	}
	if clubs[0].ID != "fla" || clubs[5].ID != "vas" || clubs[5].Name != "Vasco da Gama" {
		t.Fatalf("unexpected seed order: %+v", clubs[:6])
	}
}

func TestParseClubs_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	raw := []byte("clubs:\n  - {id: fla, name: Flamengo}\n  - {id: fla, name: Outro}\n")
	if _, err := parseClubs(raw); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestClubRepository(t *testing.T) {
	t.Parallel()

	clubs, err := SeedClubs()
	if err != nil {
		t.Fatalf("seed clubs: %v", err)
	}
	repo := NewClubRepository(clubs)
	ctx := context.Background()

	got, ok, err := repo.GetByID(ctx, "gre")
	if err != nil || !ok || got.Name != "Grêmio" {
		t.Fatalf("unexpected get result: %+v ok=%v err=%v", got, ok, err)
	}
	if _, ok, _ := repo.GetByID(ctx, "xyz"); ok {
		t.Fatalf("expected unknown club to be missing")
	}

	listed, _ := repo.List(ctx)
	listed[0].Name = "changed"
	again, _ := repo.List(ctx)
	if again[0].Name != "Flamengo" {
		t.Fatalf("list must return a copy")
	}
}

func TestMatchLogRepository(t *testing.T) {
	t.Parallel()

	repo := NewMatchLogRepository()
	ctx := context.Background()
	at := time.Date(2026, 4, 5, 18, 0, 0, 0, time.UTC)

	for _, round := range []int{2, 1} {
		err := repo.Append(ctx, matchlog.Entry{SessionID: "s-1", Round: round, HomeClubID: "fla", AwayClubID: "pal", PlayedAt: at})
		if err != nil {
			t.Fatalf("append round %d: %v", round, err)
		}
	}
	if err := repo.Append(ctx, matchlog.Entry{SessionID: "s-1", Round: 1, HomeClubID: "fla", AwayClubID: "cor", HomeScore: 3, PlayedAt: at}); err != nil {
		t.Fatalf("replace round 1: %v", err)
	}
	if err := repo.Append(ctx, matchlog.Entry{SessionID: "s-1", Round: 0, HomeClubID: "fla", AwayClubID: "cor"}); err == nil {
		t.Fatalf("expected validation error for round 0")
	}

	entries, err := repo.ListBySession(ctx, "s-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].Round != 1 || entries[0].AwayClubID != "cor" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if other, _ := repo.ListBySession(ctx, "s-2"); len(other) != 0 {
		t.Fatalf("expected no entries for other session")
	}
}
