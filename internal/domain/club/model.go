package club

import "fmt"

// Club is a league member. Clubs are reference data and never change
// after the process starts.
type Club struct {
	ID             string
	Name           string
	PrimaryColor   string
	SecondaryColor string
}

func (c Club) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("club id is required")
	}
	if c.Name == "" {
		return fmt.Errorf("club name is required")
	}

	return nil
}

// Find returns the club with the given id from a list.
func Find(clubs []Club, id string) (Club, bool) {
	for _, c := range clubs {
		if c.ID == id {
			return c, true
		}
	}
	return Club{}, false
}
