package session

import (
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/career"
	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	"github.com/riskibarqy/club-manager/internal/domain/standing"
)

// Session is the single game in progress. It is not safe for concurrent use;
// callers serialize access.
type Session struct {
	ID           string
	Club         club.Club
	Ledger       roster.Ledger
	Table        *standing.Table
	LastMatch    *match.Result
	Round        int
	StartedAt    time.Time
	Active       bool
	MatchPending bool
	Funnel       *career.Funnel

	epoch uint64
}

func New() *Session {
	return &Session{Funnel: career.NewFunnel()}
}

// Epoch changes every time the session is started or reset. Work that
// suspended under an older epoch must not be committed.
func (s *Session) Epoch() uint64 {
	return s.epoch
}

// Start initializes a season for the given club. Club selection and career
// acceptance both go through here.
func (s *Session) Start(id string, c club.Club, squad []player.Player, table *standing.Table, budget float64, now time.Time) {
	s.epoch++
	s.ID = id
	s.Club = c
	s.Ledger = roster.NewLedger(squad, budget)
	s.Table = table
	s.LastMatch = nil
	s.Round = 0
	s.StartedAt = now
	s.Active = true
	s.MatchPending = false
	s.Funnel = career.NewFunnel()
}

// Reset returns the session to its pre-selection state.
func (s *Session) Reset() {
	epoch := s.epoch + 1
	*s = Session{Funnel: career.NewFunnel(), epoch: epoch}
}

// Snapshot is a deep, read-only copy of a session.
type Snapshot struct {
	ID           string
	Club         club.Club
	Ledger       roster.Ledger
	Standings    []standing.TeamStats
	Position     int
	LastMatch    *match.Result
	Round        int
	StartedAt    time.Time
	Active       bool
	MatchPending bool
	Career       career.Snapshot
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:           s.ID,
		Club:         s.Club,
		Ledger:       s.Ledger.Clone(),
		Standings:    s.Table.Rows(),
		Position:     s.Table.Position(s.Club.ID),
		Round:        s.Round,
		StartedAt:    s.StartedAt,
		Active:       s.Active,
		MatchPending: s.MatchPending,
	}
	if s.LastMatch != nil {
		last := s.LastMatch.Clone()
		snap.LastMatch = &last
	}
	if s.Funnel != nil {
		snap.Career = s.Funnel.Snapshot()
	}
	return snap
}
