package career

import (
	"errors"
	"testing"

	"github.com/riskibarqy/club-manager/internal/domain/club"
	"github.com/riskibarqy/club-manager/internal/domain/player"
	"github.com/riskibarqy/club-manager/internal/platform/random"
)

func clubs() []club.Club {
	return []club.Club{
		{ID: "fla", Name: "Flamengo"},
		{ID: "pal", Name: "Palmeiras"},
		{ID: "vas", Name: "Vasco da Gama"},
		{ID: "san", Name: "Santos"},
		{ID: "gre", Name: "Grêmio"},
	}
}

func TestFunnel_HappyPath(t *testing.T) {
	t.Parallel()

	f := NewFunnel()
	if err := f.Submit("Allejo", player.PositionAttacker); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if f.State() != StateSimulating {
		t.Fatalf("expected simulating, got %s", f.State())
	}

	if err := f.PresentOffers("Finaliza bem.", clubs(), "vas", random.NewSeeded(3)); err != nil {
		t.Fatalf("present offers: %v", err)
	}
	snap := f.Snapshot()
	if snap.State != StateOffers {
		t.Fatalf("expected offers, got %s", snap.State)
	}
	if len(snap.Offers) != ShortlistSize {
		t.Fatalf("expected %d offers, got %d", ShortlistSize, len(snap.Offers))
	}
	if snap.Offers[0].ID != "vas" {
		t.Fatalf("expected home club first, got %s", snap.Offers[0].ID)
	}
	seen := map[string]bool{}
	for _, o := range snap.Offers {
		if seen[o.ID] {
			t.Fatalf("duplicate offer %s", o.ID)
		}
		seen[o.ID] = true
	}

	chosen, rookie, err := f.Accept(snap.Offers[1].ID, "p-allejo")
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if rookie.Rating != 78 || rookie.Age != 18 || rookie.Value != 10 {
		t.Fatalf("unexpected rookie attributes: %+v", rookie)
	}
	if rookie.Team != chosen.Name || rookie.Name != "Allejo" || rookie.Position != player.PositionAttacker {
		t.Fatalf("unexpected rookie identity: %+v", rookie)
	}
	if f.State() != StateAccepted {
		t.Fatalf("expected accepted, got %s", f.State())
	}
}

func TestFunnel_SubmitValidation(t *testing.T) {
	t.Parallel()

	f := NewFunnel()
	if err := f.Submit("   ", player.PositionAttacker); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile for blank name, got %v", err)
	}
	if err := f.Submit("Allejo", "FWD"); !errors.Is(err, ErrInvalidProfile) {
		t.Fatalf("expected ErrInvalidProfile for bad position, got %v", err)
	}
	if f.State() != StateForm {
		t.Fatalf("expected form after rejected submit, got %s", f.State())
	}
}

func TestFunnel_ScoutingFailureKeepsProfile(t *testing.T) {
	t.Parallel()

	f := NewFunnel()
	if err := f.Submit("Allejo", player.PositionAttacker); err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.ScoutingFailed()

	snap := f.Snapshot()
	if snap.State != StateForm {
		t.Fatalf("expected form, got %s", snap.State)
	}
	if snap.Profile.Name != "Allejo" {
		t.Fatalf("expected profile kept, got %+v", snap.Profile)
	}
	if err := f.Submit("Allejo", player.PositionAttacker); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
}

func TestFunnel_MissingHomeClubResets(t *testing.T) {
	t.Parallel()

	f := NewFunnel()
	if err := f.Submit("Allejo", player.PositionAttacker); err != nil {
		t.Fatalf("submit: %v", err)
	}
	err := f.PresentOffers("", clubs(), "xyz", random.New())
	if !errors.Is(err, ErrHomeClubMissing) {
		t.Fatalf("expected ErrHomeClubMissing, got %v", err)
	}
	if f.State() != StateForm {
		t.Fatalf("expected form after missing home club, got %s", f.State())
	}
}

func TestFunnel_AcceptRejectsUnknownClub(t *testing.T) {
	t.Parallel()

	f := NewFunnel()
	if err := f.Submit("Allejo", player.PositionAttacker); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.PresentOffers("", clubs()[:3], "vas", random.New()); err != nil {
		t.Fatalf("present offers: %v", err)
	}
	if _, _, err := f.Accept("gre", "p-1"); !errors.Is(err, ErrUnknownOffer) {
		t.Fatalf("expected ErrUnknownOffer, got %v", err)
	}
	if f.State() != StateOffers {
		t.Fatalf("expected offers to remain open, got %s", f.State())
	}
}

func TestFunnel_InvalidTransitions(t *testing.T) {
	t.Parallel()

	f := NewFunnel()
	if _, _, err := f.Accept("vas", "p-1"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on accept from form, got %v", err)
	}
	if err := f.PresentOffers("", clubs(), "vas", random.New()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on offers from form, got %v", err)
	}
	if err := f.Submit("Allejo", player.PositionAttacker); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := f.Submit("Allejo", player.PositionAttacker); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition on double submit, got %v", err)
	}
}
