package matchlog

import (
	"fmt"
	"time"
)

// Entry is one archived round from the user's point of view.
type Entry struct {
	SessionID  string
	Round      int
	HomeClubID string
	AwayClubID string
	HomeScore  int
	AwayScore  int
	Summary    string
	Fallback   bool
	PlayedAt   time.Time
}

func (e Entry) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if e.Round <= 0 {
		return fmt.Errorf("round must be > 0")
	}
	if e.HomeClubID == "" || e.AwayClubID == "" {
		return fmt.Errorf("home and away club ids are required")
	}
	if e.HomeClubID == e.AwayClubID {
		return fmt.Errorf("home and away club must differ")
	}
	if e.HomeScore < 0 || e.AwayScore < 0 {
		return fmt.Errorf("scores must not be negative")
	}

	return nil
}
