package usecase

import (
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/platform/random"
)

const (
	offlineSummary = "Simulação offline: o gerador de narrativa não respondeu."

	// fallbackMaxGoals bounds each side of an offline result to 0-2.
	fallbackMaxGoals = 3
)

// fallbackSquad is handed out when no squad could be generated. IDs are
// assigned by the caller.
func fallbackSquad(clubName string) []player.Player {
	return []player.Player{
		{Name: "Rafael Moura", Position: player.PositionGoalkeeper, Rating: 66, Age: 29, Value: 4, Team: clubName},
		{Name: "Diego Salles", Position: player.PositionDefender, Rating: 65, Age: 27, Value: 3.5, Team: clubName},
		{Name: "Lucas Teixeira", Position: player.PositionDefender, Rating: 63, Age: 24, Value: 3, Team: clubName},
		{Name: "Bruno Carvalho", Position: player.PositionMidfielder, Rating: 67, Age: 26, Value: 5, Team: clubName},
		{Name: "Thiago Nunes", Position: player.PositionAttacker, Rating: 68, Age: 23, Value: 6, Team: clubName},
	}
}

func fallbackResult(rng random.Source, opponent string) match.Result {
	result := match.NewResult(rng.IntN(fallbackMaxGoals), rng.IntN(fallbackMaxGoals), nil, offlineSummary, opponent)
	result.Fallback = true
	return result
}
