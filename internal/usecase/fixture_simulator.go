package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/content"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/platform/random"
)

const briefTopPlayers = 5

// PickOpponent draws uniformly among every club except the user's.
func PickOpponent(clubs []club.Club, userClubID string, rng random.Source) (club.Club, error) {
	candidates := make([]club.Club, 0, len(clubs))
	for _, c := range clubs {
		if c.ID != userClubID {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return club.Club{}, fmt.Errorf("%w: no opponent available for club=%s", ErrNotFound, userClubID)
	}
	return candidates[rng.IntN(len(candidates))], nil
}

// BuildBrief summarizes a fixture for the narrative generator.
func BuildBrief(home, away club.Club, squad []player.Player) match.Brief {
	brief := match.Brief{HomeClub: home.Name, AwayClub: away.Name}
	if len(squad) == 0 {
		return brief
	}

	total := 0
	for _, p := range squad {
		total += p.Rating
	}
	brief.AverageRating = float64(total) / float64(len(squad))

	ranked := player.Clone(squad)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})
	if len(ranked) > briefTopPlayers {
		ranked = ranked[:briefTopPlayers]
	}
	brief.TopPlayers = ranked
	return brief
}

// FixtureSimulator obtains the user's match result. It always produces a
// result: when the generator fails the outcome is drawn locally.
type FixtureSimulator struct {
	generator content.Generator
	rng       random.Source
	logger    *logging.Logger
}

func NewFixtureSimulator(generator content.Generator, rng random.Source, logger *logging.Logger) *FixtureSimulator {
	if rng == nil {
		rng = random.New()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &FixtureSimulator{
		generator: generator,
		rng:       rng,
		logger:    logger,
	}
}

func (s *FixtureSimulator) PlayMatch(ctx context.Context, home club.Club, squad []player.Player, away club.Club) match.Result {
	ctx, span := startUsecaseSpan(ctx, "usecase.FixtureSimulator.PlayMatch")
	defer span.End()

	if s.generator == nil {
		return fallbackResult(s.rng, away.Name)
	}

	generated, err := s.generator.NarrateMatch(ctx, BuildBrief(home, away, squad))
	if err != nil {
		s.logger.WarnContext(ctx, "match narration failed, using offline result",
			"home_club_id", home.ID,
			"away_club_id", away.ID,
			"error", err,
		)
		return fallbackResult(s.rng, away.Name)
	}

	result := match.NewResult(generated.HomeScore, generated.AwayScore, generated.Events, generated.Summary, away.Name)
	if err := result.Validate(); err != nil {
		s.logger.WarnContext(ctx, "match narration malformed, using offline result",
			"home_club_id", home.ID,
			"away_club_id", away.ID,
			"error", err,
		)
		return fallbackResult(s.rng, away.Name)
	}
	return result
}
