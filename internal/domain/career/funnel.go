package career

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/platform/random"
)

var (
	ErrInvalidProfile    = errors.New("invalid career profile")
	ErrInvalidTransition = errors.New("invalid career transition")
	ErrHomeClubMissing   = errors.New("designated home club is missing from reference data")
	ErrUnknownOffer      = errors.New("club is not on the offer shortlist")
)

type State string

const (
	StateForm       State = "form"
	StateSimulating State = "simulating"
	StateOffers     State = "offers"
	StateAccepted   State = "accepted"
)

const (
	ShortlistSize = 3

	RookieRating = 78
	RookieAge    = 18
	RookieValue  = 10.0
)

// Profile is what the user typed into the career form.
type Profile struct {
	Name     string
	Position player.Position
}

// Funnel walks a custom player from the form, through a trial match, to a
// contract with one of the shortlisted clubs.
type Funnel struct {
	state   State
	profile Profile
	report  string
	offers  []club.Club
}

func NewFunnel() *Funnel {
	return &Funnel{state: StateForm}
}

func (f *Funnel) State() State {
	return f.state
}

// Submit validates the form and starts the trial simulation.
func (f *Funnel) Submit(name string, position player.Position) error {
	if f.state != StateForm {
		return fmt.Errorf("%w: submit from %s", ErrInvalidTransition, f.state)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if !position.Valid() {
		return fmt.Errorf("%w: position %q", ErrInvalidProfile, position)
	}

	f.profile = Profile{Name: name, Position: position}
	f.state = StateSimulating
	return nil
}

// ScoutingFailed returns to the form. The submitted profile is kept so the
// user can retry without retyping it.
func (f *Funnel) ScoutingFailed() {
	if f.state != StateSimulating {
		return
	}
	f.state = StateForm
	f.report = ""
	f.offers = nil
}

// PresentOffers stores the scouting report and draws the shortlist: the
// designated home club plus two other clubs chosen without replacement.
// A missing home club aborts the attempt and resets the funnel.
func (f *Funnel) PresentOffers(report string, clubs []club.Club, homeClubID string, rng random.Source) error {
	if f.state != StateSimulating {
		return fmt.Errorf("%w: present offers from %s", ErrInvalidTransition, f.state)
	}

	home, ok := club.Find(clubs, homeClubID)
	if !ok {
		f.Reset()
		return fmt.Errorf("%w: %s", ErrHomeClubMissing, homeClubID)
	}

	others := make([]club.Club, 0, len(clubs))
	for _, c := range clubs {
		if c.ID != home.ID {
			others = append(others, c)
		}
	}

	f.offers = append([]club.Club{home}, random.Sample(rng, others, ShortlistSize-1)...)
	f.report = strings.TrimSpace(report)
	f.state = StateOffers
	return nil
}

// Accept signs with a shortlisted club and returns the new player. The
// caller supplies the player ID.
func (f *Funnel) Accept(clubID, playerID string) (club.Club, player.Player, error) {
	if f.state != StateOffers {
		return club.Club{}, player.Player{}, fmt.Errorf("%w: accept from %s", ErrInvalidTransition, f.state)
	}
	chosen, ok := club.Find(f.offers, clubID)
	if !ok {
		return club.Club{}, player.Player{}, fmt.Errorf("%w: %s", ErrUnknownOffer, clubID)
	}

	rookie := player.Player{
		ID:       playerID,
		Name:     f.profile.Name,
		Position: f.profile.Position,
		Rating:   RookieRating,
		Age:      RookieAge,
		Value:    RookieValue,
		Team:     chosen.Name,
	}
	f.state = StateAccepted
	return chosen, rookie, nil
}

// Reset clears everything, including the typed profile.
func (f *Funnel) Reset() {
	*f = Funnel{state: StateForm}
}

// Snapshot is a read-only copy of the funnel.
type Snapshot struct {
	State   State
	Profile Profile
	Report  string
	Offers  []club.Club
}

func (f *Funnel) Snapshot() Snapshot {
	return Snapshot{
		State:   f.state,
		Profile: f.profile,
		Report:  f.report,
		Offers:  append([]club.Club(nil), f.offers...),
	}
}
