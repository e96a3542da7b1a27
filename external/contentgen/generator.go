package contentgen

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/club-manager/internal/domain/content"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/player"
)

var _ content.Generator = (*Client)(nil)

func (c *Client) GenerateSquad(ctx context.Context, clubName string) ([]player.Player, error) {
	text, err := c.generate(ctx, "GenerateSquad", squadPrompt(clubName), playerListSchema)
	if err != nil {
		return nil, err
	}
	players, err := c.decodePlayers(ctx, text)
	if err != nil {
		return nil, crerr.Wrapf(err, "squad for %q", clubName)
	}
	for i := range players {
		players[i].Team = clubName
	}
	return players, nil
}

// GenerateMarket returns transfer targets from clubs other than excludeClub.
// Concurrent requests for the same club share one upstream call, which is not
// cancelled when only one of the callers goes away.
func (c *Client) GenerateMarket(ctx context.Context, excludeClub string) ([]player.Player, error) {
	players, err, _ := c.marketFlight.DoContext(ctx, excludeClub, func(ctx context.Context) ([]player.Player, error) {
		text, err := c.generate(ctx, "GenerateMarket", marketPrompt(excludeClub), playerListSchema)
		if err != nil {
			return nil, err
		}
		items, err := c.decodePlayers(ctx, text)
		if err != nil {
			return nil, crerr.Wrapf(err, "market excluding %q", excludeClub)
		}

		out := items[:0]
		for _, item := range items {
			if strings.EqualFold(strings.TrimSpace(item.Team), strings.TrimSpace(excludeClub)) {
				continue
			}
			out = append(out, item)
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return player.Clone(players), nil
}

func (c *Client) NarrateMatch(ctx context.Context, brief match.Brief) (match.Result, error) {
	text, err := c.generate(ctx, "NarrateMatch", matchPrompt(brief), matchSchema)
	if err != nil {
		return match.Result{}, err
	}

	var payload generatedMatch
	if err := sonic.UnmarshalString(text, &payload); err != nil {
		return match.Result{}, crerr.Wrap(err, "decode match narrative")
	}
	if err := c.validator.StructCtx(ctx, payload); err != nil {
		return match.Result{}, crerr.Wrap(err, "validate match narrative")
	}

	events := make([]match.Event, 0, len(payload.Events))
	for _, item := range payload.Events {
		events = append(events, match.Event{
			Minute:      item.Minute,
			Description: strings.TrimSpace(item.Description),
			Type:        match.EventType(item.Type),
			Side:        match.Side(item.Team),
		})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Minute < events[j].Minute })

	return match.NewResult(*payload.HomeScore, *payload.AwayScore, events, strings.TrimSpace(payload.Summary), brief.AwayClub), nil
}

func (c *Client) ScoutPlayer(ctx context.Context, name string, position player.Position) (string, error) {
	return c.generate(ctx, "ScoutPlayer", scoutPrompt(name, position), nil)
}

// decodePlayers keeps every well-formed item and fails only when none is.
func (c *Client) decodePlayers(ctx context.Context, text string) ([]player.Player, error) {
	var items []generatedPlayer
	if err := sonic.UnmarshalString(text, &items); err != nil {
		return nil, crerr.Wrap(err, "decode player list")
	}

	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		if err := c.validator.StructCtx(ctx, item); err != nil {
			c.logger.DebugContext(ctx, "skip malformed generated player", "name", item.Name, "error", err)
			continue
		}
		position, err := player.ParsePosition(item.Position)
		if err != nil {
			c.logger.DebugContext(ctx, "skip generated player with unknown position", "name", item.Name, "position", item.Position)
			continue
		}
		out = append(out, player.Player{
			Name:     strings.TrimSpace(item.Name),
			Position: position,
			Rating:   item.Rating,
			Age:      item.Age,
			Value:    item.Value,
			Team:     strings.TrimSpace(item.Team),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no valid players in %d items", ErrEmptyResponse, len(items))
	}
	return out, nil
}
