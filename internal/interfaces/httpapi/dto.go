package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/club-manager/internal/domain/career"
	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/match"
	"github.com/riskibarqy/club-manager/internal/domain/matchlog"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/domain/roster"
	"github.com/riskibarqy/club-manager/internal/domain/session"
	"github.com/riskibarqy/club-manager/internal/domain/standing"
	"github.com/riskibarqy/club-manager/internal/usecase"
)

type clubDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
}

type playerDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	PositionLabel string  `json:"positionLabel"`
	Rating        int     `json:"rating"`
	Age           int     `json:"age"`
	Value         float64 `json:"value"`
	Team          string  `json:"team"`
}

type ledgerDTO struct {
	Budget     float64     `json:"budget"`
	SquadValue float64     `json:"squadValue"`
	Squad      []playerDTO `json:"squad"`
	Market     []playerDTO `json:"market"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	TeamID         string `json:"teamId"`
	Points         int    `json:"points"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
}

type fixtureDTO struct {
	HomeID    string `json:"homeId"`
	AwayID    string `json:"awayId"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Filler    bool   `json:"filler"`
}

type matchEventDTO struct {
	Minute      int    `json:"minute"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Team        string `json:"team"`
}

type matchResultDTO struct {
	HomeScore int             `json:"homeScore"`
	AwayScore int             `json:"awayScore"`
	Opponent  string          `json:"opponent"`
	Summary   string          `json:"summary"`
	Win       bool            `json:"win"`
	Draw      bool            `json:"draw"`
	Fallback  bool            `json:"fallback"`
	Events    []matchEventDTO `json:"events"`
}

type playedMatchDTO struct {
	Round     int            `json:"round"`
	Opponent  clubDTO        `json:"opponent"`
	Result    matchResultDTO `json:"result"`
	Prize     float64        `json:"prize"`
	Budget    float64        `json:"budget"`
	Position  int            `json:"position"`
	Fixtures  []fixtureDTO   `json:"fixtures"`
	Standings []standingDTO  `json:"standings"`
}

type archivedMatchDTO struct {
	Round      int    `json:"round"`
	HomeClubID string `json:"homeClubId"`
	AwayClubID string `json:"awayClubId"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	Summary    string `json:"summary"`
	Fallback   bool   `json:"fallback"`
	PlayedAt   string `json:"playedAt"`
}

type careerDTO struct {
	State    string    `json:"state"`
	Name     string    `json:"name,omitempty"`
	Position string    `json:"position,omitempty"`
	Report   string    `json:"report,omitempty"`
	Offers   []clubDTO `json:"offers"`
}

type sessionDTO struct {
	ID           string          `json:"id,omitempty"`
	Active       bool            `json:"active"`
	MatchPending bool            `json:"matchPending"`
	Club         *clubDTO        `json:"club,omitempty"`
	Round        int             `json:"round"`
	Position     int             `json:"position"`
	StartedAt    string          `json:"startedAt,omitempty"`
	Ledger       ledgerDTO       `json:"ledger"`
	Standings    []standingDTO   `json:"standings"`
	LastMatch    *matchResultDTO `json:"lastMatch,omitempty"`
	Career       careerDTO       `json:"career"`
}

func clubToDTO(v club.Club) clubDTO {
	return clubDTO{
		ID:             v.ID,
		Name:           v.Name,
		PrimaryColor:   v.PrimaryColor,
		SecondaryColor: v.SecondaryColor,
	}
}

func clubsToDTO(items []club.Club) []clubDTO {
	out := make([]clubDTO, 0, len(items))
	for _, item := range items {
		out = append(out, clubToDTO(item))
	}
	return out
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerDTO{
			ID:            item.ID,
			Name:          item.Name,
			Position:      string(item.Position),
			PositionLabel: item.Position.Label(),
			Rating:        item.Rating,
			Age:           item.Age,
			Value:         item.Value,
			Team:          item.Team,
		})
	}
	return out
}

func ledgerToDTO(v roster.Ledger) ledgerDTO {
	return ledgerDTO{
		Budget:     v.Budget,
		SquadValue: v.SquadValue(),
		Squad:      playersToDTO(v.Squad),
		Market:     playersToDTO(v.Market),
	}
}

func standingsToDTO(rows []standing.TeamStats) []standingDTO {
	out := make([]standingDTO, 0, len(rows))
	for i, row := range rows {
		out = append(out, standingDTO{
			Position:       i + 1,
			TeamID:         row.TeamID,
			Points:         row.Points,
			Played:         row.Played,
			Won:            row.Won,
			Drawn:          row.Drawn,
			Lost:           row.Lost,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference(),
		})
	}
	return out
}

func fixturesToDTO(items []standing.Fixture) []fixtureDTO {
	out := make([]fixtureDTO, 0, len(items))
	for _, item := range items {
		out = append(out, fixtureDTO{
			HomeID:    item.HomeID,
			AwayID:    item.AwayID,
			HomeScore: item.HomeScore,
			AwayScore: item.AwayScore,
			Filler:    item.Filler,
		})
	}
	return out
}

func matchResultToDTO(v match.Result) matchResultDTO {
	events := make([]matchEventDTO, 0, len(v.Events))
	for _, event := range v.Events {
		events = append(events, matchEventDTO{
			Minute:      event.Minute,
			Description: event.Description,
			Type:        string(event.Type),
			Team:        string(event.Side),
		})
	}
	return matchResultDTO{
		HomeScore: v.HomeScore,
		AwayScore: v.AwayScore,
		Opponent:  v.Opponent,
		Summary:   v.Summary,
		Win:       v.Win,
		Draw:      v.Draw,
		Fallback:  v.Fallback,
		Events:    events,
	}
}

func playedMatchToDTO(ctx context.Context, v usecase.PlayedMatch) playedMatchDTO {
	ctx, span := startSpan(ctx, "httpapi.playedMatchToDTO")
	defer span.End()

	return playedMatchDTO{
		Round:     v.Round,
		Opponent:  clubToDTO(v.Opponent),
		Result:    matchResultToDTO(v.Result),
		Prize:     v.Prize,
		Budget:    v.Budget,
		Position:  v.Position,
		Fixtures:  fixturesToDTO(v.Fixtures),
		Standings: standingsToDTO(v.Standings),
	}
}

func archivedMatchesToDTO(items []matchlog.Entry) []archivedMatchDTO {
	out := make([]archivedMatchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, archivedMatchDTO{
			Round:      item.Round,
			HomeClubID: item.HomeClubID,
			AwayClubID: item.AwayClubID,
			HomeScore:  item.HomeScore,
			AwayScore:  item.AwayScore,
			Summary:    item.Summary,
			Fallback:   item.Fallback,
			PlayedAt:   item.PlayedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}

func careerToDTO(v career.Snapshot) careerDTO {
	return careerDTO{
		State:    string(v.State),
		Name:     v.Profile.Name,
		Position: string(v.Profile.Position),
		Report:   v.Report,
		Offers:   clubsToDTO(v.Offers),
	}
}

func sessionToDTO(ctx context.Context, v session.Snapshot) sessionDTO {
	ctx, span := startSpan(ctx, "httpapi.sessionToDTO")
	defer span.End()

	out := sessionDTO{
		ID:           v.ID,
		Active:       v.Active,
		MatchPending: v.MatchPending,
		Round:        v.Round,
		Position:     v.Position,
		Ledger:       ledgerToDTO(v.Ledger),
		Standings:    standingsToDTO(v.Standings),
		Career:       careerToDTO(v.Career),
	}
	if v.Active {
		c := clubToDTO(v.Club)
		out.Club = &c
		out.StartedAt = v.StartedAt.UTC().Format(time.RFC3339)
	}
	if v.LastMatch != nil {
		last := matchResultToDTO(*v.LastMatch)
		out.LastMatch = &last
	}
	return out
}
