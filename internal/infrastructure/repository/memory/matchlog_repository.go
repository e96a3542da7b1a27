package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
)

type MatchLogRepository struct {
	mu        sync.RWMutex
	bySession map[string][]matchlog.Entry
}

func NewMatchLogRepository() *MatchLogRepository {
	return &MatchLogRepository{bySession: make(map[string][]matchlog.Entry)}
}

// Append stores an entry. Re-appending the same session round replaces it.
func (r *MatchLogRepository) Append(_ context.Context, entry matchlog.Entry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid match log entry: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.bySession[entry.SessionID]
	for i := range entries {
		if entries[i].Round == entry.Round {
			entries[i] = entry
			return nil
		}
	}
	r.bySession[entry.SessionID] = append(entries, entry)
	return nil
}

func (r *MatchLogRepository) ListBySession(_ context.Context, sessionID string) ([]matchlog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.bySession[sessionID]
	out := make([]matchlog.Entry, 0, len(entries))
	out = append(out, entries...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Round < out[j].Round })

	return out, nil
}
