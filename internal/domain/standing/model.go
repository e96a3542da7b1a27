package standing

import "fmt"

// TeamStats is one league table row.
type TeamStats struct {
	TeamID       string
	Points       int
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

func (s TeamStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

// Validate checks the row's bookkeeping invariants.
func (s TeamStats) Validate() error {
	if s.Played != s.Won+s.Drawn+s.Lost {
		return fmt.Errorf("team %s: played %d != won %d + drawn %d + lost %d", s.TeamID, s.Played, s.Won, s.Drawn, s.Lost)
	}
	if s.Points != 3*s.Won+s.Drawn {
		return fmt.Errorf("team %s: points %d != 3*won %d + drawn %d", s.TeamID, s.Points, s.Won, s.Drawn)
	}
	if s.GoalsFor < 0 || s.GoalsAgainst < 0 {
		return fmt.Errorf("team %s: negative goal totals", s.TeamID)
	}
	return nil
}

type outcome int

const (
	outcomeLoss outcome = iota
	outcomeDraw
	outcomeWin
)

func outcomeFromScores(goalsFor, goalsAgainst int) outcome {
	switch {
	case goalsFor > goalsAgainst:
		return outcomeWin
	case goalsFor == goalsAgainst:
		return outcomeDraw
	default:
		return outcomeLoss
	}
}

func (s *TeamStats) record(goalsFor, goalsAgainst int, o outcome) {
	s.Played++
	s.GoalsFor += goalsFor
	s.GoalsAgainst += goalsAgainst
	switch o {
	case outcomeWin:
		s.Won++
		s.Points += 3
	case outcomeDraw:
		s.Drawn++
		s.Points++
	default:
		s.Lost++
	}
}

// Fixture is a single pairing applied during a round.
type Fixture struct {
	HomeID    string
	AwayID    string
	HomeScore int
	AwayScore int
	// Filler marks auto-simulated fixtures between two non-user clubs.
	Filler bool
}
