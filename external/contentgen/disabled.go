package contentgen

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/content"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/player"
)

var ErrDisabled = crerr.New("content generator is disabled")

// Disabled fails every call, so the game runs entirely on local fallbacks.
type Disabled struct{}

var _ content.Generator = Disabled{}

func (Disabled) GenerateSquad(context.Context, string) ([]player.Player, error) {
	return nil, ErrDisabled
}

func (Disabled) GenerateMarket(context.Context, string) ([]player.Player, error) {
	return nil, ErrDisabled
}

func (Disabled) NarrateMatch(context.Context, match.Brief) (match.Result, error) {
	return match.Result{}, ErrDisabled
}

func (Disabled) ScoutPlayer(context.Context, string, player.Position) (string, error) {
	return "", ErrDisabled
}
