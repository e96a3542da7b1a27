package usecase

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	clubmock "github.com/riskibarqy/club-manager/internal/mocks/domain/club"
	contentmock "github.com/riskibarqy/club-manager/internal/mocks/domain/content"
	matchlogmock "github.com/riskibarqy/club-manager/internal/mocks/domain/matchlog"
	"github.com/riskibarqy/club-manager/internal/platform/logging"
	"github.com/riskibarqy/club-manager/internal/platform/random"
	"github.com/stretchr/testify/mock"
)

var testStart = time.Date(2026, 4, 5, 16, 0, 0, 0, time.UTC)

func referenceClubs() []club.Club {
	return []club.Club{
		{ID: "fla", Name: "Flamengo"},
		{ID: "pal", Name: "Palmeiras"},
		{ID: "cor", Name: "Corinthians"},
		{ID: "sao", Name: "São Paulo"},
		{ID: "san", Name: "Santos"},
		{ID: "vas", Name: "Vasco da Gama"},
		{ID: "flu", Name: "Fluminense"},
		{ID: "bot", Name: "Botafogo"},
		{ID: "gre", Name: "Grêmio"},
		{ID: "int", Name: "Internacional"},
		{ID: "cam", Name: "Atlético Mineiro"},
		{ID: "cru", Name: "Cruzeiro"},
	}
}

type sequentialIDs struct {
	next atomic.Int64
}

func (g *sequentialIDs) NewID() (string, error) {
	return "id-" + strconv.FormatInt(g.next.Add(1), 10), nil
}

type seasonFixture struct {
	service   *SeasonService
	clubRepo  *clubmock.Repository
	generator *contentmock.Generator
	archive   *matchlogmock.Repository
	clock     *clockwork.FakeClock
}

func newSeasonFixture(t *testing.T, homeClubID string) seasonFixture {
	t.Helper()

	clubRepo := clubmock.NewRepository(t)
	generator := contentmock.NewGenerator(t)
	archive := matchlogmock.NewRepository(t)
	clock := clockwork.NewFakeClockAt(testStart)

	clubs := referenceClubs()
	clubRepo.On("List", mock.Anything).Return(clubs, nil).Maybe()
	for _, c := range clubs {
		clubRepo.On("GetByID", mock.Anything, c.ID).Return(c, true, nil).Maybe()
	}

	pool, err := ants.NewPool(2, ants.WithNonblocking(true))
	if err != nil {
		t.Fatalf("create pool: %v", err)
	}

	service := NewSeasonService(
		clubRepo,
		generator,
		archive,
		pool,
		&sequentialIDs{},
		random.NewSeeded(42),
		clock,
		SeasonConfig{StartingBudget: 50, HomeClubID: homeClubID},
		logging.NewNop(),
	)
	t.Cleanup(func() {
		service.tasks.Wait()
		pool.Release()
	})

	return seasonFixture{
		service:   service,
		clubRepo:  clubRepo,
		generator: generator,
		archive:   archive,
		clock:     clock,
	}
}

func generatedSquad(n int) []player.Player {
	out := make([]player.Player, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, player.Player{
			Name:     "Jogador " + string(rune('A'+i)),
			Position: player.PositionMidfielder,
			Rating:   70 + i,
			Age:      20 + i,
			Value:    float64(5 + i),
			Team:     "ignored",
		})
	}
	return out
}

func TestSeasonService_SelectClub_GeneratedSquadAndMarket(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return([]player.Player{
		{Name: "Reforço Um", Position: player.PositionAttacker, Rating: 80, Age: 25, Value: 10, Team: "Palmeiras"},
		{Name: "Reforço Dois", Position: player.PositionDefender, Rating: 77, Age: 28, Value: 6, Team: "Santos"},
	}, nil).Once()

	snap, err := f.service.SelectClub(ctx, "fla")
	if err != nil {
		t.Fatalf("select club: %v", err)
	}
	if !snap.Active || snap.Club.ID != "fla" {
		t.Fatalf("expected active session for fla, got %+v", snap)
	}
	if snap.Ledger.Budget != 50 {
		t.Fatalf("expected budget 50, got %v", snap.Ledger.Budget)
	}
	if len(snap.Standings) != 12 {
		t.Fatalf("expected 12 standings rows, got %d", len(snap.Standings))
	}
	if !snap.StartedAt.Equal(testStart) {
		t.Fatalf("unexpected start time: %v", snap.StartedAt)
	}
	for _, p := range snap.Ledger.Squad {
		if p.ID == "" || p.Team != "Flamengo" {
			t.Fatalf("squad player not prepared: %+v", p)
		}
	}

	f.service.tasks.Wait()
	market, err := f.service.Market(ctx)
	if err != nil {
		t.Fatalf("market: %v", err)
	}
	if len(market) != 2 {
		t.Fatalf("expected 2 market players after refresh, got %d", len(market))
	}
	if market[0].Team != "Palmeiras" {
		t.Fatalf("expected market label kept, got %q", market[0].Team)
	}
}

func TestSeasonService_SelectClub_FallbackRoster(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Santos").Return(nil, errors.New("generator offline")).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Santos").Return(nil, errors.New("generator offline")).Once()

	snap, err := f.service.SelectClub(ctx, "san")
	if err != nil {
		t.Fatalf("select club: %v", err)
	}
	if len(snap.Ledger.Squad) != 5 {
		t.Fatalf("expected 5 fallback players, got %d", len(snap.Ledger.Squad))
	}
	for _, p := range snap.Ledger.Squad {
		if err := p.Validate(); err != nil {
			t.Fatalf("fallback player invalid: %v", err)
		}
	}

	f.service.tasks.Wait()
	market, err := f.service.Market(ctx)
	if err != nil {
		t.Fatalf("market: %v", err)
	}
	if len(market) != 0 {
		t.Fatalf("expected empty market on generator failure, got %d", len(market))
	}
}

func TestSeasonService_SelectClub_UnknownClubClearsSession(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(2), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, mock.Anything).Return(nil, errors.New("offline")).Maybe()
	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}

	f.clubRepo.On("GetByID", mock.Anything, "xyz").Return(club.Club{}, false, nil).Once()
	_, err := f.service.SelectClub(ctx, "xyz")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.service.Snapshot(ctx).Active {
		t.Fatalf("expected session cleared after failed selection")
	}
	if _, err := f.service.Squad(ctx); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestSeasonService_BuyAndSell(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(2), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("offline")).Once()
	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}
	f.service.tasks.Wait()

	f.service.mu.Lock()
	f.service.session.Ledger.MergeMarket([]player.Player{
		{ID: "m-10", Name: "Craque", Position: player.PositionAttacker, Rating: 84, Value: 10, Team: "Palmeiras"},
		{ID: "m-60", Name: "Estrela", Position: player.PositionAttacker, Rating: 92, Value: 60, Team: "Santos"},
	})
	f.service.mu.Unlock()

	ledger, err := f.service.Buy(ctx, "m-10")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if ledger.Budget != 40 {
		t.Fatalf("expected budget 40 after buy, got %v", ledger.Budget)
	}
	if idx := player.IndexByID(ledger.Squad, "m-10"); idx < 0 || ledger.Squad[idx].Team != "Flamengo" {
		t.Fatalf("expected bought player in squad with club label")
	}

	ledger, err = f.service.Sell(ctx, "m-10")
	if err != nil {
		t.Fatalf("sell: %v", err)
	}
	if ledger.Budget != 49 {
		t.Fatalf("expected budget 49 after sell, got %v", ledger.Budget)
	}
	if player.IndexByID(ledger.Market, "m-10") < 0 {
		t.Fatalf("expected sold player back in market")
	}

	_, err = f.service.Buy(ctx, "m-60")
	if !errors.Is(err, roster.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	after, _ := f.service.Market(ctx)
	if player.IndexByID(after, "m-60") < 0 {
		t.Fatalf("rejected buy must not move the player")
	}

	ledger, err = f.service.Sell(ctx, "missing")
	if err != nil {
		t.Fatalf("sell missing: %v", err)
	}
	if ledger.Budget != 49 {
		t.Fatalf("selling a missing player must not change budget, got %v", ledger.Budget)
	}
}

func TestSeasonService_PlayMatch_AppliesRoundAndPrize(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(6), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("offline")).Once()
	f.generator.On("NarrateMatch", mock.Anything, mock.Anything).Return(match.Result{HomeScore: 2, AwayScore: 1, Summary: "Vitória"}, nil).Once()

	snap, err := f.service.SelectClub(ctx, "fla")
	if err != nil {
		t.Fatalf("select club: %v", err)
	}
	f.clock.Advance(90 * time.Minute)

	f.archive.
		On("Append", mock.Anything, mock.MatchedBy(func(e matchlog.Entry) bool {
			return e.SessionID == snap.ID &&
				e.Round == 1 &&
				e.HomeClubID == "fla" &&
				e.AwayClubID != "fla" &&
				e.HomeScore == 2 &&
				e.AwayScore == 1 &&
				e.PlayedAt.Equal(testStart.Add(90*time.Minute))
		})).
		Return(nil).
		Once()

	played, err := f.service.PlayMatch(ctx)
	if err != nil {
		t.Fatalf("play match: %v", err)
	}
	if played.Round != 1 || played.Prize != match.WinPrize || played.Budget != 52.5 {
		t.Fatalf("unexpected played match: round=%d prize=%v budget=%v", played.Round, played.Prize, played.Budget)
	}
	if played.Opponent.ID == "fla" {
		t.Fatalf("user club drawn as opponent")
	}
	if len(played.Fixtures) != 6 {
		t.Fatalf("expected user fixture plus 5 fillers, got %d", len(played.Fixtures))
	}

	appearances := 0
	for _, row := range played.Standings {
		appearances += row.Played
		if row.TeamID == "fla" && (row.Points != 3 || row.GoalsFor != 2 || row.GoalsAgainst != 1) {
			t.Fatalf("unexpected user row: %+v", row)
		}
	}
	if appearances != 12 {
		t.Fatalf("expected every club to play once, got %d appearances", appearances)
	}

	last := f.service.Snapshot(ctx).LastMatch
	if last == nil || last.Summary != "Vitória" {
		t.Fatalf("expected last match stored, got %+v", last)
	}
}

func TestSeasonService_PlayMatch_ArchiveFailureDoesNotRollBack(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("offline")).Once()
	f.generator.On("NarrateMatch", mock.Anything, mock.Anything).Return(match.Result{}, errors.New("offline")).Once()
	f.archive.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}
	played, err := f.service.PlayMatch(ctx)
	if err != nil {
		t.Fatalf("play match: %v", err)
	}
	if !played.Result.Fallback {
		t.Fatalf("expected offline result")
	}
	if f.service.Snapshot(ctx).Round != 1 {
		t.Fatalf("round must be applied even when archiving fails")
	}
}

func TestSeasonService_PlayMatch_Guards(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	if _, err := f.service.PlayMatch(ctx); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("offline")).Once()
	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}

	f.service.mu.Lock()
	f.service.session.MatchPending = true
	f.service.mu.Unlock()

	if _, err := f.service.PlayMatch(ctx); !errors.Is(err, ErrMatchInProgress) {
		t.Fatalf("expected ErrMatchInProgress, got %v", err)
	}
}

func TestSeasonService_PlayMatch_ResetDuringSimulationDiscardsResult(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("offline")).Once()
	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}

	f.generator.
		On("NarrateMatch", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { f.service.Reset(ctx) }).
		Return(match.Result{HomeScore: 1, AwayScore: 0}, nil).
		Once()

	_, err := f.service.PlayMatch(ctx)
	if !errors.Is(err, ErrStaleSession) {
		t.Fatalf("expected ErrStaleSession, got %v", err)
	}
	snap := f.service.Snapshot(ctx)
	if snap.Active || snap.LastMatch != nil || snap.MatchPending {
		t.Fatalf("expected clean session after discarded match, got %+v", snap)
	}
}

func TestSeasonService_MarketRefresh_ResetCancelsAndDiscards(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	var cancelled atomic.Bool
	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.
		On("GenerateMarket", mock.Anything, "Flamengo").
		Run(func(args mock.Arguments) {
			taskCtx := args.Get(0).(context.Context)
			f.service.Reset(ctx)
			cancelled.Store(taskCtx.Err() != nil)
		}).
		Return([]player.Player{{Name: "Tardio", Position: player.PositionAttacker, Rating: 70, Value: 3}}, nil).
		Once()

	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}
	f.service.tasks.Wait()

	if !cancelled.Load() {
		t.Fatalf("expected reset to cancel the refresh context")
	}
	if got := f.service.Snapshot(ctx).Ledger.Market; len(got) != 0 {
		t.Fatalf("expected stale market discarded, got %d players", len(got))
	}
}

func TestSeasonService_MarketRefresh_PanicIsContained(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.
		On("GenerateMarket", mock.Anything, "Flamengo").
		Run(func(mock.Arguments) { panic("generator exploded") }).
		Return(nil, nil).
		Once()

	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}
	f.service.tasks.Wait()

	if _, err := f.service.Squad(ctx); err != nil {
		t.Fatalf("service unusable after contained panic: %v", err)
	}
}

func TestSeasonService_MarketRefresh_OverlappingRequestsMergeOnce(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.
		On("GenerateMarket", mock.Anything, "Flamengo").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]player.Player{{Name: "Marcelo Lima", Position: player.PositionAttacker, Rating: 79, Age: 24, Value: 8, Team: "Santos"}}, nil).
		Once()

	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}
	<-started

	if err := f.service.RefreshMarket(ctx); err != nil {
		t.Fatalf("refresh while another is in flight: %v", err)
	}
	close(release)
	f.service.tasks.Wait()

	market, err := f.service.Market(ctx)
	if err != nil {
		t.Fatalf("market: %v", err)
	}
	if len(market) != 1 {
		t.Fatalf("expected one generated player merged once, got %d", len(market))
	}

	f.generator.
		On("GenerateMarket", mock.Anything, "Flamengo").
		Return([]player.Player{{Name: "Rafael Costa", Position: player.PositionDefender, Rating: 75, Age: 27, Value: 5, Team: "Grêmio"}}, nil).
		Once()
	if err := f.service.RefreshMarket(ctx); err != nil {
		t.Fatalf("refresh after completion: %v", err)
	}
	f.service.tasks.Wait()

	market, err = f.service.Market(ctx)
	if err != nil {
		t.Fatalf("market: %v", err)
	}
	if len(market) != 2 {
		t.Fatalf("expected a finished refresh to allow the next one, got %d players", len(market))
	}
}

func TestSeasonService_RefreshMarket_RefusedAfterShutdown(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("offline")).Once()
	if _, err := f.service.SelectClub(ctx, "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}

	if err := f.service.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := f.service.RefreshMarket(ctx); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable after shutdown, got %v", err)
	}
}

func TestNewSeasonService_NamesLoggerOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	clubRepo := clubmock.NewRepository(t)
	generator := contentmock.NewGenerator(t)
	archive := matchlogmock.NewRepository(t)
	clubRepo.On("GetByID", mock.Anything, "fla").Return(club.Club{ID: "fla", Name: "Flamengo"}, true, nil).Once()
	clubRepo.On("List", mock.Anything).Return(referenceClubs(), nil).Maybe()
	generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(nil, errors.New("generator offline")).Once()
	generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("generator offline")).Once()

	service := NewSeasonService(
		clubRepo,
		generator,
		archive,
		nil,
		&sequentialIDs{},
		random.NewSeeded(1),
		clockwork.NewFakeClockAt(testStart),
		SeasonConfig{StartingBudget: 50, HomeClubID: "vas"},
		logging.NewJSONWriter(&buf, logging.LevelDebug, "club-manager-api"),
	)
	if _, err := service.SelectClub(context.Background(), "fla"); err != nil {
		t.Fatalf("select club: %v", err)
	}
	service.tasks.Wait()

	out := buf.String()
	if !strings.Contains(out, `"component":"season"`) {
		t.Fatalf("expected season component in logs, got %s", out)
	}
	if strings.Contains(out, `"component":"season.season"`) {
		t.Fatalf("logger named twice: %s", out)
	}
}

func TestSeasonService_ListMatches(t *testing.T) {
	t.Parallel()

	f := newSeasonFixture(t, "vas")
	ctx := context.Background()

	if _, err := f.service.ListMatches(ctx); !errors.Is(err, ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}

	f.generator.On("GenerateSquad", mock.Anything, "Flamengo").Return(generatedSquad(3), nil).Once()
	f.generator.On("GenerateMarket", mock.Anything, "Flamengo").Return(nil, errors.New("offline")).Once()
	snap, err := f.service.SelectClub(ctx, "fla")
	if err != nil {
		t.Fatalf("select club: %v", err)
	}

	f.archive.On("ListBySession", mock.Anything, snap.ID).Return([]matchlog.Entry{{SessionID: snap.ID, Round: 1}}, nil).Once()
	entries, err := f.service.ListMatches(ctx)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 archived match, got %d", len(entries))
	}
}
