package history

import (
	"fmt"
	"strconv"
)

// Season is one archived league season. SeasonNumber is kept as free text
// from the admin form; ordering parses it numerically.
type Season struct {
	ID               string
	SeasonNumber     string
	TournamentName   string
	Winner           string
	RunnersUp        string
	ParticipantCount string
}

func (s Season) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("season id is required")
	}
	if s.SeasonNumber == "" {
		return fmt.Errorf("season number is required")
	}
	if s.TournamentName == "" {
		return fmt.Errorf("tournament name is required")
	}

	return nil
}

// SortKey parses the season number for ascending ordering; unparseable
// values sort first.
func (s Season) SortKey() int {
	n, err := strconv.Atoi(s.SeasonNumber)
	if err != nil {
		return 0
	}
	return n
}
