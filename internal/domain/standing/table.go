package standing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/platform/random"
)

var ErrUnknownTeam = errors.New("unknown team")

// fillerMaxGoals bounds auto-simulated scores to 0..3.
const fillerMaxGoals = 4

// Table is the season's league table. Row order is the current ranking.
type Table struct {
	rows []TeamStats
}

// Initialize creates one zeroed row per club, in roster order.
func Initialize(clubs []club.Club) *Table {
	rows := make([]TeamStats, 0, len(clubs))
	for _, c := range clubs {
		rows = append(rows, TeamStats{TeamID: c.ID})
	}
	return &Table{rows: rows}
}

// Round is what ApplyRound did: every fixture played and the re-sorted table.
type Round struct {
	Fixtures []Fixture
	Table    []TeamStats
}

// ApplyRound records the user's match, auto-simulates the rest of the round
// and re-sorts the table. The update is all-or-nothing: on error the table
// is left untouched. Calling it twice for the same match double-counts.
func (t *Table) ApplyRound(userTeamID, opponentID string, result match.Result, rng random.Source) (Round, error) {
	if userTeamID == opponentID {
		return Round{}, fmt.Errorf("%w: club %s cannot play itself", ErrUnknownTeam, userTeamID)
	}

	next := append([]TeamStats(nil), t.rows...)
	userIdx := indexOf(next, userTeamID)
	if userIdx < 0 {
		return Round{}, fmt.Errorf("%w: %s", ErrUnknownTeam, userTeamID)
	}
	oppIdx := indexOf(next, opponentID)
	if oppIdx < 0 {
		return Round{}, fmt.Errorf("%w: %s", ErrUnknownTeam, opponentID)
	}

	homeOutcome := outcomeLoss
	switch {
	case result.Win:
		homeOutcome = outcomeWin
	case result.Draw:
		homeOutcome = outcomeDraw
	}
	next[userIdx].record(result.HomeScore, result.AwayScore, homeOutcome)
	next[oppIdx].record(result.AwayScore, result.HomeScore, outcomeFromScores(result.AwayScore, result.HomeScore))

	fixtures := make([]Fixture, 0, len(next)/2)
	fixtures = append(fixtures, Fixture{
		HomeID:    userTeamID,
		AwayID:    opponentID,
		HomeScore: result.HomeScore,
		AwayScore: result.AwayScore,
	})

	remaining := make([]int, 0, len(next))
	for i, row := range next {
		if row.TeamID == userTeamID || row.TeamID == opponentID {
			continue
		}
		remaining = append(remaining, i)
	}

	// A leftover club in an odd-sized remainder sits the round out.
	for i := 0; i+1 < len(remaining); i += 2 {
		home, away := remaining[i], remaining[i+1]
		homeGoals := rng.IntN(fillerMaxGoals)
		awayGoals := rng.IntN(fillerMaxGoals)
		next[home].record(homeGoals, awayGoals, outcomeFromScores(homeGoals, awayGoals))
		next[away].record(awayGoals, homeGoals, outcomeFromScores(awayGoals, homeGoals))
		fixtures = append(fixtures, Fixture{
			HomeID:    next[home].TeamID,
			AwayID:    next[away].TeamID,
			HomeScore: homeGoals,
			AwayScore: awayGoals,
			Filler:    true,
		})
	}

	sortRows(next)
	t.rows = next

	return Round{Fixtures: fixtures, Table: t.Rows()}, nil
}

// sortRows ranks by points, then wins, then goal difference. Ties keep
// their previous relative order.
func sortRows(rows []TeamStats) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Won != b.Won {
			return a.Won > b.Won
		}
		return a.GoalDifference() > b.GoalDifference()
	})
}

// Rows returns a copy of the table in ranking order.
func (t *Table) Rows() []TeamStats {
	if t == nil {
		return nil
	}
	return append([]TeamStats(nil), t.rows...)
}

// Position is the 1-based rank of a club, or 0 if it is not in the table.
func (t *Table) Position(teamID string) int {
	if t == nil {
		return 0
	}
	return indexOf(t.rows, teamID) + 1
}

func (t *Table) Row(teamID string) (TeamStats, bool) {
	if t == nil {
		return TeamStats{}, false
	}
	idx := indexOf(t.rows, teamID)
	if idx < 0 {
		return TeamStats{}, false
	}
	return t.rows[idx], true
}

// Totals sums the goal columns and matches played over every row.
type Totals struct {
	Played       int
	GoalsFor     int
	GoalsAgainst int
}

func (t *Table) Summary() Totals {
	var out Totals
	if t == nil {
		return out
	}
	for _, row := range t.rows {
		out.Played += row.Played
		out.GoalsFor += row.GoalsFor
		out.GoalsAgainst += row.GoalsAgainst
	}
	return out
}

func (t *Table) Clone() *Table {
	if t == nil {
		return nil
	}
	return &Table{rows: t.Rows()}
}

func indexOf(rows []TeamStats, teamID string) int {
	for i, row := range rows {
		if row.TeamID == teamID {
			return i
		}
	}
	return -1
}
