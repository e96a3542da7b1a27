package content

import (
	"context"

	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/player"
)

// Generator produces squads, market lists, match narratives and scouting
// reports. Any returned error is treated by callers as a signal to fall back
// to local defaults.
type Generator interface {
	GenerateSquad(ctx context.Context, clubName string) ([]player.Player, error)
	GenerateMarket(ctx context.Context, excludeClub string) ([]player.Player, error)
	NarrateMatch(ctx context.Context, brief match.Brief) (match.Result, error)
	ScoutPlayer(ctx context.Context, name string, position player.Position) (string, error)
}
