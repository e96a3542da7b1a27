package memory

import (
	"context"

	"github.com/riskibarqy/club-manager/internal/domain/club"
)

// ClubRepository serves the fixed reference clubs. It is read-only, so no
// locking is needed.
type ClubRepository struct {
	clubs []club.Club
}

func NewClubRepository(clubs []club.Club) *ClubRepository {
	return &ClubRepository{clubs: append([]club.Club(nil), clubs...)}
}

func (r *ClubRepository) List(_ context.Context) ([]club.Club, error) {
	return append([]club.Club(nil), r.clubs...), nil
}

func (r *ClubRepository) GetByID(_ context.Context, clubID string) (club.Club, bool, error) {
	c, ok := club.Find(r.clubs, clubID)
	return c, ok, nil
}
