package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/club-manager/internal/domain/career"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/session"
)

// CareerService drives the career funnel. It shares the season's session
// and lock, since accepting an offer starts a season.
type CareerService struct {
	season *SeasonService
}

func NewCareerService(season *SeasonService) *CareerService {
	return &CareerService{season: season}
}

func (s *CareerService) Get(ctx context.Context) career.Snapshot {
	s.season.mu.Lock()
	defer s.season.mu.Unlock()
	return s.season.session.Funnel.Snapshot()
}

// Submit sends the custom player to a trial match. A scouting failure is not
// reported: the funnel quietly returns to the form.
func (s *CareerService) Submit(ctx context.Context, name, rawPosition string) (career.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CareerService.Submit")
	defer span.End()

	position, err := player.ParsePosition(rawPosition)
	if err != nil {
		return career.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	season := s.season
	season.mu.Lock()
	if err := season.session.Funnel.Submit(name, position); err != nil {
		season.mu.Unlock()
		if errors.Is(err, career.ErrInvalidProfile) {
			return career.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return career.Snapshot{}, err
	}
	epoch := season.session.Epoch()
	profile := season.session.Funnel.Snapshot().Profile
	season.mu.Unlock()

	report, scoutErr := s.scout(ctx, profile)
	clubs, listErr := season.clubRepo.List(ctx)

	season.mu.Lock()
	defer season.mu.Unlock()
	if season.session.Epoch() != epoch {
		return career.Snapshot{}, fmt.Errorf("%w: career submission discarded", ErrStaleSession)
	}
	funnel := season.session.Funnel

	if scoutErr != nil {
		season.logger.WarnContext(ctx, "scouting failed, returning to form", "name", profile.Name, "error", scoutErr)
		funnel.ScoutingFailed()
		return funnel.Snapshot(), nil
	}
	if listErr != nil {
		funnel.ScoutingFailed()
		return career.Snapshot{}, fmt.Errorf("list clubs: %w", listErr)
	}

	if err := funnel.PresentOffers(report, clubs, season.cfg.HomeClubID, season.rng); err != nil {
		if errors.Is(err, career.ErrHomeClubMissing) {
			season.resetLocked()
			season.logger.ErrorContext(ctx, "career home club missing from reference data", "club_id", season.cfg.HomeClubID)
			return career.Snapshot{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return career.Snapshot{}, err
	}

	season.logger.InfoContext(ctx, "career offers presented", "name", profile.Name, "offers", len(funnel.Snapshot().Offers))
	return funnel.Snapshot(), nil
}

// Accept signs the custom player with a shortlisted club and starts the
// season for that club with the player first in the squad.
func (s *CareerService) Accept(ctx context.Context, clubID string) (session.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CareerService.Accept")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return session.Snapshot{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	season := s.season
	playerID, err := season.idGen.NewID()
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("%w: generate player id: %w", ErrDependencyUnavailable, err)
	}

	season.mu.Lock()
	chosen, rookie, err := season.session.Funnel.Accept(clubID, playerID)
	if err != nil {
		season.mu.Unlock()
		if errors.Is(err, career.ErrUnknownOffer) {
			return session.Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return session.Snapshot{}, err
	}
	epoch := season.session.Epoch()
	season.mu.Unlock()

	squad, err := season.generateSquad(ctx, chosen.Name)
	if err != nil {
		s.abandon(epoch)
		return session.Snapshot{}, err
	}
	clubs, err := season.clubRepo.List(ctx)
	if err != nil {
		s.abandon(epoch)
		return session.Snapshot{}, fmt.Errorf("list clubs: %w", err)
	}

	season.mu.Lock()
	defer season.mu.Unlock()
	if season.session.Epoch() != epoch {
		return session.Snapshot{}, fmt.Errorf("%w: career acceptance discarded", ErrStaleSession)
	}
	if err := season.startLocked(chosen, append([]player.Player{rookie}, squad...), clubs); err != nil {
		return session.Snapshot{}, err
	}

	season.logger.InfoContext(ctx, "career contract accepted",
		"session_id", season.session.ID,
		"club_id", chosen.ID,
		"player_id", rookie.ID,
	)
	return season.session.Snapshot(), nil
}

// Cancel abandons the career and resets the whole session.
func (s *CareerService) Cancel(ctx context.Context) session.Snapshot {
	_, span := startUsecaseSpan(ctx, "usecase.CareerService.Cancel")
	defer span.End()

	s.season.mu.Lock()
	defer s.season.mu.Unlock()
	s.season.resetLocked()
	return s.season.session.Snapshot()
}

func (s *CareerService) scout(ctx context.Context, profile career.Profile) (string, error) {
	if s.season.generator == nil {
		return "", fmt.Errorf("%w: no generator configured", ErrDependencyUnavailable)
	}
	return s.season.generator.ScoutPlayer(ctx, profile.Name, profile.Position)
}

func (s *CareerService) abandon(epoch uint64) {
	s.season.mu.Lock()
	defer s.season.mu.Unlock()
	if s.season.session.Epoch() == epoch {
		s.season.session.Funnel.Reset()
	}
}
