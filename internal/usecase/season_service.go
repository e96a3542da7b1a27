package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/content"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	"github.com/riskibarqy/club-manager/internal/domain/session"
	"github.com/riskibarqy/club-manager/internal/domain/standing"
	idgen "github.com/riskibarqy/club-manager/internal/platform/id"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/platform/random"
)

const DefaultStartingBudget = 50.0

type SeasonConfig struct {
	StartingBudget float64
	HomeClubID     string
}

// PlayedMatch is what a single "play match" action produced.
type PlayedMatch struct {
	Round     int
	Opponent  club.Club
	Result    match.Result
	Prize     float64
	Budget    float64
	Position  int
	Fixtures  []standing.Fixture
	Standings []standing.TeamStats
}

// SeasonService owns the one game session. Every mutation happens under mu
// and no collaborator call is made while mu is held.
type SeasonService struct {
	clubRepo  club.Repository
	generator content.Generator
	archive   matchlog.Repository
	simulator *FixtureSimulator
	pool      *ants.Pool
	idGen     idgen.Generator
	rng       random.Source
	clock     clockwork.Clock
	cfg       SeasonConfig
	logger    *logging.Logger

	mu          sync.Mutex
	session     *session.Session
	epochCtx    context.Context
	cancelEpoch context.CancelFunc
	tasks       sync.WaitGroup
	closed      bool

	// refreshing marks a market refresh in flight for refreshEpoch. Further
	// requests for the same epoch join it instead of queueing another.
	refreshing   bool
	refreshEpoch uint64
}

func NewSeasonService(
	clubRepo club.Repository,
	generator content.Generator,
	archive matchlog.Repository,
	pool *ants.Pool,
	idGen idgen.Generator,
	rng random.Source,
	clock clockwork.Clock,
	cfg SeasonConfig,
	logger *logging.Logger,
) *SeasonService {
	if idGen == nil {
		idGen = idgen.NewUUIDGenerator()
	}
	if rng == nil {
		rng = random.New()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.StartingBudget <= 0 {
		cfg.StartingBudget = DefaultStartingBudget
	}
	logger = logger.Named("season")

	epochCtx, cancel := context.WithCancel(context.Background())
	return &SeasonService{
		clubRepo:    clubRepo,
		generator:   generator,
		archive:     archive,
		simulator:   NewFixtureSimulator(generator, rng, logger),
		pool:        pool,
		idGen:       idGen,
		rng:         rng,
		clock:       clock,
		cfg:         cfg,
		logger:      logger,
		session:     session.New(),
		epochCtx:    epochCtx,
		cancelEpoch: cancel,
	}
}

func (s *SeasonService) ListClubs(ctx context.Context) ([]club.Club, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListClubs")
	defer span.End()

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clubs: %w", err)
	}
	return clubs, nil
}

// SelectClub starts a new season for the given club. The previous session is
// cleared first, so a failed selection leaves no session behind.
func (s *SeasonService) SelectClub(ctx context.Context, clubID string) (session.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SelectClub")
	defer span.End()

	clubID = strings.TrimSpace(clubID)
	if clubID == "" {
		return session.Snapshot{}, fmt.Errorf("%w: club id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	s.resetLocked()
	epoch := s.session.Epoch()
	s.mu.Unlock()

	selected, exists, err := s.clubRepo.GetByID(ctx, clubID)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("get club: %w", err)
	}
	if !exists {
		return session.Snapshot{}, fmt.Errorf("%w: club=%s", ErrNotFound, clubID)
	}
	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("list clubs: %w", err)
	}

	squad, err := s.generateSquad(ctx, selected.Name)
	if err != nil {
		return session.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.Epoch() != epoch {
		return session.Snapshot{}, fmt.Errorf("%w: club selection superseded", ErrStaleSession)
	}
	if err := s.startLocked(selected, squad, clubs); err != nil {
		return session.Snapshot{}, err
	}

	s.logger.InfoContext(ctx, "season started",
		"session_id", s.session.ID,
		"club_id", selected.ID,
		"squad_size", len(squad),
	)
	return s.session.Snapshot(), nil
}

// Reset clears the session back to club selection. Outstanding background
// work for the old session is cancelled and its results discarded.
func (s *SeasonService) Reset(ctx context.Context) session.Snapshot {
	_, span := startUsecaseSpan(ctx, "usecase.SeasonService.Reset")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return s.session.Snapshot()
}

func (s *SeasonService) Snapshot(ctx context.Context) session.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Snapshot()
}

func (s *SeasonService) Squad(ctx context.Context) ([]player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Active {
		return nil, ErrNoActiveSession
	}
	return player.Clone(s.session.Ledger.Squad), nil
}

func (s *SeasonService) Market(ctx context.Context) ([]player.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Active {
		return nil, ErrNoActiveSession
	}
	return player.Clone(s.session.Ledger.Market), nil
}

func (s *SeasonService) Standings(ctx context.Context) ([]standing.TeamStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Active {
		return nil, ErrNoActiveSession
	}
	return s.session.Table.Rows(), nil
}

// Sell moves a squad player to the market. Selling a player that is not in
// the squad leaves the ledger unchanged.
func (s *SeasonService) Sell(ctx context.Context, playerID string) (roster.Ledger, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Sell")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return roster.Ledger{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Active {
		return roster.Ledger{}, ErrNoActiveSession
	}

	sold, ok := s.session.Ledger.Sell(playerID)
	if ok {
		s.logger.InfoContext(ctx, "player sold",
			"session_id", s.session.ID,
			"player_id", sold.ID,
			"proceeds", sold.Value*roster.SellRate,
		)
	}
	return s.session.Ledger.Clone(), nil
}

// Buy moves a market player to the squad.
func (s *SeasonService) Buy(ctx context.Context, playerID string) (roster.Ledger, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Buy")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return roster.Ledger{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Active {
		return roster.Ledger{}, ErrNoActiveSession
	}

	bought, ok, err := s.session.Ledger.Buy(playerID, s.session.Club.Name)
	if err != nil {
		return roster.Ledger{}, err
	}
	if ok {
		s.logger.InfoContext(ctx, "player bought",
			"session_id", s.session.ID,
			"player_id", bought.ID,
			"value", bought.Value,
		)
	}
	return s.session.Ledger.Clone(), nil
}

// RefreshMarket asks the generator for a fresh market list in the
// background. It returns as soon as the task is queued.
func (s *SeasonService) RefreshMarket(ctx context.Context) error {
	_, span := startUsecaseSpan(ctx, "usecase.SeasonService.RefreshMarket")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Active {
		return ErrNoActiveSession
	}
	return s.scheduleMarketRefreshLocked()
}

// PlayMatch plays the next round: the user's match against a random
// opponent plus filler fixtures for every other club.
func (s *SeasonService) PlayMatch(ctx context.Context) (PlayedMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.PlayMatch")
	defer span.End()

	clubs, err := s.clubRepo.List(ctx)
	if err != nil {
		return PlayedMatch{}, fmt.Errorf("list clubs: %w", err)
	}

	s.mu.Lock()
	if !s.session.Active {
		s.mu.Unlock()
		return PlayedMatch{}, ErrNoActiveSession
	}
	if s.session.MatchPending {
		s.mu.Unlock()
		return PlayedMatch{}, ErrMatchInProgress
	}
	home := s.session.Club
	opponent, err := PickOpponent(clubs, home.ID, s.rng)
	if err != nil {
		s.mu.Unlock()
		return PlayedMatch{}, err
	}
	s.session.MatchPending = true
	epoch := s.session.Epoch()
	squad := player.Clone(s.session.Ledger.Squad)
	s.mu.Unlock()

	result := s.simulator.PlayMatch(ctx, home, squad, opponent)

	s.mu.Lock()
	if s.session.Epoch() != epoch {
		s.mu.Unlock()
		return PlayedMatch{}, fmt.Errorf("%w: match result discarded", ErrStaleSession)
	}
	s.session.MatchPending = false

	round, err := s.session.Table.ApplyRound(home.ID, opponent.ID, result, s.rng)
	if err != nil {
		s.mu.Unlock()
		return PlayedMatch{}, fmt.Errorf("apply round: %w", err)
	}
	prize := match.Prize(result)
	s.session.Ledger.Credit(prize)
	s.session.LastMatch = &result
	s.session.Round++

	played := PlayedMatch{
		Round:     s.session.Round,
		Opponent:  opponent,
		Result:    result.Clone(),
		Prize:     prize,
		Budget:    s.session.Ledger.Budget,
		Position:  s.session.Table.Position(home.ID),
		Fixtures:  round.Fixtures,
		Standings: round.Table,
	}
	entry := matchlog.Entry{
		SessionID:  s.session.ID,
		Round:      s.session.Round,
		HomeClubID: home.ID,
		AwayClubID: opponent.ID,
		HomeScore:  result.HomeScore,
		AwayScore:  result.AwayScore,
		Summary:    result.Summary,
		Fallback:   result.Fallback,
		PlayedAt:   s.clock.Now().UTC(),
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "round applied",
		"session_id", entry.SessionID,
		"round", entry.Round,
		"opponent_club_id", opponent.ID,
		"home_score", result.HomeScore,
		"away_score", result.AwayScore,
		"fallback", result.Fallback,
	)

	if s.archive != nil {
		if err := s.archive.Append(ctx, entry); err != nil {
			s.logger.WarnContext(ctx, "archive match failed",
				"session_id", entry.SessionID,
				"round", entry.Round,
				"error", err,
			)
		}
	}

	return played, nil
}

func (s *SeasonService) ListMatches(ctx context.Context) ([]matchlog.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ListMatches")
	defer span.End()

	s.mu.Lock()
	active, sessionID := s.session.Active, s.session.ID
	s.mu.Unlock()
	if !active {
		return nil, ErrNoActiveSession
	}
	if s.archive == nil {
		return []matchlog.Entry{}, nil
	}

	entries, err := s.archive.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list archived matches: %w", err)
	}
	return entries, nil
}

// Shutdown cancels background work and waits for it to drain. No refresh is
// scheduled after it returns.
func (s *SeasonService) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.cancelEpoch()
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.tasks.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// generateSquad returns a squad labelled for the club, falling back to the
// fixed roster when the generator fails or returns nothing usable.
func (s *SeasonService) generateSquad(ctx context.Context, clubName string) ([]player.Player, error) {
	var generated []player.Player
	if s.generator != nil {
		items, err := s.generator.GenerateSquad(ctx, clubName)
		if err != nil {
			s.logger.WarnContext(ctx, "squad generation failed, using fallback roster", "club", clubName, "error", err)
		} else {
			generated = items
		}
	}

	squad, err := s.preparePlayers(generated, clubName)
	if err != nil {
		return nil, err
	}
	if len(squad) == 0 {
		return s.preparePlayers(fallbackSquad(clubName), clubName)
	}
	return squad, nil
}

// preparePlayers assigns fresh IDs and drops players that fail validation.
// An empty team keeps the generated label.
func (s *SeasonService) preparePlayers(items []player.Player, team string) ([]player.Player, error) {
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		id, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("%w: generate player id: %w", ErrDependencyUnavailable, err)
		}
		item.ID = id
		item.Name = strings.TrimSpace(item.Name)
		if team != "" {
			item.Team = team
		}
		if err := item.Validate(); err != nil {
			s.logger.Debug("dropping invalid generated player", "name", item.Name, "error", err)
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *SeasonService) startLocked(selected club.Club, squad []player.Player, clubs []club.Club) error {
	sessionID, err := s.idGen.NewID()
	if err != nil {
		return fmt.Errorf("%w: generate session id: %w", ErrDependencyUnavailable, err)
	}

	s.session.Start(sessionID, selected, squad, standing.Initialize(clubs), s.cfg.StartingBudget, s.clock.Now().UTC())
	s.rotateEpochLocked()

	if err := s.scheduleMarketRefreshLocked(); err != nil {
		s.logger.Warn("schedule market refresh failed", "session_id", sessionID, "error", err)
	}
	return nil
}

func (s *SeasonService) resetLocked() {
	s.session.Reset()
	s.rotateEpochLocked()
}

func (s *SeasonService) rotateEpochLocked() {
	s.cancelEpoch()
	s.epochCtx, s.cancelEpoch = context.WithCancel(context.Background())
}

func (s *SeasonService) scheduleMarketRefreshLocked() error {
	if s.closed {
		return fmt.Errorf("%w: season service is shut down", ErrDependencyUnavailable)
	}

	ctx := s.epochCtx
	epoch := s.session.Epoch()
	sessionID := s.session.ID
	clubName := s.session.Club.Name

	if s.refreshing && s.refreshEpoch == epoch {
		s.logger.Debug("market refresh already in flight", "session_id", sessionID)
		return nil
	}

	task := func() {
		defer s.tasks.Done()

		var players []player.Player
		var catcher panics.Catcher
		catcher.Try(func() {
			players = s.fetchMarket(ctx, clubName)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			s.logger.Error("market refresh panicked", "session_id", sessionID, "error", recovered.AsError())
		}
		s.commitMarket(epoch, clubName, players)
	}

	s.refreshing = true
	s.refreshEpoch = epoch
	s.tasks.Add(1)
	if s.pool == nil {
		go task()
		return nil
	}
	if err := s.pool.Submit(task); err != nil {
		s.tasks.Done()
		s.refreshing = false
		if errors.Is(err, ants.ErrPoolOverload) || errors.Is(err, ants.ErrPoolClosed) {
			return fmt.Errorf("%w: market refresh: %w", ErrDependencyUnavailable, err)
		}
		return fmt.Errorf("submit market refresh: %w", err)
	}
	return nil
}

// fetchMarket asks the generator for transfer targets. Failures yield nil.
func (s *SeasonService) fetchMarket(ctx context.Context, clubName string) []player.Player {
	if s.generator == nil {
		return nil
	}

	items, err := s.generator.GenerateMarket(ctx, clubName)
	if err != nil {
		s.logger.WarnContext(ctx, "market generation failed, keeping current market", "club", clubName, "error", err)
		return nil
	}
	players, err := s.preparePlayers(items, "")
	if err != nil {
		s.logger.WarnContext(ctx, "prepare market players failed", "error", err)
		return nil
	}
	return players
}

// commitMarket ends the in-flight refresh for epoch and merges its players
// when the session is still the one that asked for them.
func (s *SeasonService) commitMarket(epoch uint64, clubName string, players []player.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refreshEpoch == epoch {
		s.refreshing = false
	}
	if s.session.Epoch() != epoch || !s.session.Active {
		s.logger.Debug("discarding market refresh for previous session", "club", clubName)
		return
	}
	if len(players) == 0 {
		return
	}
	added := s.session.Ledger.MergeMarket(players)
	s.logger.Info("market refreshed", "session_id", s.session.ID, "added", added)
}
