package player

import (
	"fmt"
	"strings"
)

// Position is one of the four squad lines.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionAttacker   Position = "ATT"
)

var AllPositions = map[Position]string{
	PositionGoalkeeper: "Goalkeeper",
	PositionDefender:   "Defender",
	PositionMidfielder: "Midfielder",
	PositionAttacker:   "Attacker",
}

func (p Position) Label() string {
	return AllPositions[p]
}

func (p Position) Valid() bool {
	_, ok := AllPositions[p]
	return ok
}

// ParsePosition accepts either the short code ("ATT") or the label
// ("Attacker"), case-insensitively.
func ParsePosition(raw string) (Position, error) {
	value := strings.TrimSpace(raw)
	for code, label := range AllPositions {
		if strings.EqualFold(value, string(code)) || strings.EqualFold(value, label) {
			return code, nil
		}
	}
	return "", fmt.Errorf("invalid player position: %q", raw)
}

// Player belongs to exactly one collection at a time: a squad or a market pool.
// Team is a display label and is not authoritative for ownership.
type Player struct {
	ID       string
	Name     string
	Position Position
	Rating   int
	Age      int
	Value    float64
	Team     string
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if !p.Position.Valid() {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Value < 0 {
		return fmt.Errorf("player value must not be negative")
	}

	return nil
}

func Clone(players []Player) []Player {
	if players == nil {
		return nil
	}
	return append([]Player(nil), players...)
}

func IndexByID(players []Player, id string) int {
	for i, p := range players {
		if p.ID == id {
			return i
		}
	}
	return -1
}
