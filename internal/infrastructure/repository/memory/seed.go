package memory

import (
	_ "embed"
	"fmt"

	"github.com/riskibarqy/club-manager/internal/domain/club"
	"gopkg.in/yaml.v3"
)

//go:embed clubs.yaml
var clubsYAML []byte

type clubSeedFile struct {
	Clubs []struct {
		ID             string `yaml:"id"`
		Name           string `yaml:"name"`
		PrimaryColor   string `yaml:"primary_color"`
		SecondaryColor string `yaml:"secondary_color"`
	} `yaml:"clubs"`
}

// SeedClubs returns the embedded reference clubs in file order.
func SeedClubs() ([]club.Club, error) {
	return parseClubs(clubsYAML)
}

func parseClubs(raw []byte) ([]club.Club, error) {
	var file clubSeedFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode club seed: %w", err)
	}

	out := make([]club.Club, 0, len(file.Clubs))
	seen := make(map[string]struct{}, len(file.Clubs))
	for _, item := range file.Clubs {
		c := club.Club{
			ID:             item.ID,
			Name:           item.Name,
			PrimaryColor:   item.PrimaryColor,
			SecondaryColor: item.SecondaryColor,
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("club seed entry %d: %w", len(out), err)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("duplicate club id in seed: %s", c.ID)
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
