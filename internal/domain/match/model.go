package match

import (
	"fmt"

	"github.com/riskibarqy/club-manager/internal/domain/player"
)

type EventType string

const (
	EventGoal         EventType = "goal"
	EventCard         EventType = "card"
	EventSubstitution EventType = "substitution"
	EventNormal       EventType = "normal"
)

type Side string

const (
	SideHome    Side = "home"
	SideAway    Side = "away"
	SideNeutral Side = "neutral"
)

// Event is one narrated moment of a match.
type Event struct {
	Minute      int
	Description string
	Type        EventType
	Side        Side
}

// Result is the outcome of the user's match. The user's club is always home.
type Result struct {
	HomeScore int
	AwayScore int
	Events    []Event
	Summary   string
	Opponent  string
	Win       bool
	Draw      bool
	// Fallback is set when the narrative generator was unavailable.
	Fallback bool
}

// NewResult builds a Result and derives Win and Draw from the scores.
func NewResult(homeScore, awayScore int, events []Event, summary, opponent string) Result {
	return Result{
		HomeScore: homeScore,
		AwayScore: awayScore,
		Events:    append([]Event(nil), events...),
		Summary:   summary,
		Opponent:  opponent,
		Win:       homeScore > awayScore,
		Draw:      homeScore == awayScore,
	}
}

func (r Result) Validate() error {
	if r.HomeScore < 0 || r.AwayScore < 0 {
		return fmt.Errorf("scores must not be negative: %d-%d", r.HomeScore, r.AwayScore)
	}
	for _, e := range r.Events {
		if e.Minute < 0 {
			return fmt.Errorf("event minute must not be negative")
		}
	}

	return nil
}

func (r Result) Clone() Result {
	copied := r
	copied.Events = append([]Event(nil), r.Events...)
	return copied
}

// Brief is what the narrative generator needs to know about a fixture.
type Brief struct {
	HomeClub      string
	AwayClub      string
	AverageRating float64
	TopPlayers    []player.Player
}
