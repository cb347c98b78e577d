package team

import "fmt"

// Team is a real-world cricket team scoped to one event.
type Team struct {
	ID      string
	Name    string
	EventID string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.EventID == "" {
		return fmt.Errorf("team event id is required")
	}

	return nil
}
