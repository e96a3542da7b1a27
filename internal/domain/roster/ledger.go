package roster

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/club-manager/internal/domain/player"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

// SellRate is the share of a player's value credited on sale.
const SellRate = 0.9

// Ledger owns the user's squad, the transfer market pool and the budget.
// A player ID is never present in both Squad and Market.
type Ledger struct {
	Squad  []player.Player
	Market []player.Player
	Budget float64
}

func NewLedger(squad []player.Player, budget float64) Ledger {
	return Ledger{
		Squad:  player.Clone(squad),
		Market: []player.Player{},
		Budget: budget,
	}
}

// Sell moves a squad player to the market and credits SellRate of its value.
// The player's Team label is left as it was. Selling a player that is not
// in the squad is a no-op and reports false.
func (l *Ledger) Sell(playerID string) (player.Player, bool) {
	idx := player.IndexByID(l.Squad, playerID)
	if idx < 0 {
		return player.Player{}, false
	}

	sold := l.Squad[idx]
	l.Squad = append(l.Squad[:idx:idx], l.Squad[idx+1:]...)
	l.Market = append(l.Market, sold)
	l.Budget += sold.Value * SellRate

	return sold, true
}

// Buy moves a market player into the squad, debits its value and relabels it
// with the acquiring club. A player that is not in the market is a no-op.
func (l *Ledger) Buy(playerID, clubName string) (player.Player, bool, error) {
	idx := player.IndexByID(l.Market, playerID)
	if idx < 0 {
		return player.Player{}, false, nil
	}

	bought := l.Market[idx]
	if l.Budget < bought.Value {
		return player.Player{}, false, fmt.Errorf("%w: budget %.2f is below value %.2f", ErrInsufficientFunds, l.Budget, bought.Value)
	}

	l.Market = append(l.Market[:idx:idx], l.Market[idx+1:]...)
	bought.Team = clubName
	l.Squad = append(l.Squad, bought)
	l.Budget -= bought.Value

	return bought, true, nil
}

// MergeMarket appends generated players to the market pool, skipping any ID
// already owned by either collection. It returns how many were added.
func (l *Ledger) MergeMarket(players []player.Player) int {
	seen := make(map[string]struct{}, len(l.Squad)+len(l.Market))
	for _, p := range l.Squad {
		seen[p.ID] = struct{}{}
	}
	for _, p := range l.Market {
		seen[p.ID] = struct{}{}
	}

	added := 0
	for _, p := range players {
		if p.ID == "" {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		l.Market = append(l.Market, p)
		added++
	}

	return added
}

// Credit adds prize money. Credits are never rejected.
func (l *Ledger) Credit(amount float64) {
	l.Budget += amount
}

func (l Ledger) SquadValue() float64 {
	var total float64
	for _, p := range l.Squad {
		total += p.Value
	}
	return total
}

func (l Ledger) Clone() Ledger {
	return Ledger{
		Squad:  player.Clone(l.Squad),
		Market: player.Clone(l.Market),
		Budget: l.Budget,
	}
}
