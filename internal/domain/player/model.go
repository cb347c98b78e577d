package player

import (
	"fmt"
	"strings"
)

// Category represents cricket player roles used by roster rules.
type Category string

const (
	CategoryBatsman      Category = "Batsman"
	CategoryWicketkeeper Category = "Wicketkeeper"
	CategoryAllRounder   Category = "All-rounder"
	CategoryBowler       Category = "Bowler"
)

var AllCategories = map[Category]struct{}{
	CategoryBatsman:      {},
	CategoryWicketkeeper: {},
	CategoryAllRounder:   {},
	CategoryBowler:       {},
}

// Type distinguishes local from foreign players for domestic-league caps.
type Type string

const (
	TypeLocal   Type = "Local"
	TypeForeign Type = "Foreign"
)

var AllTypes = map[Type]struct{}{
	TypeLocal:   {},
	TypeForeign: {},
}

// ParseCategory matches a category label case-insensitively.
func ParseCategory(s string) (Category, bool) {
	for c := range AllCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, true
		}
	}
	return "", false
}

// ParseType matches a player type label case-insensitively.
func ParseType(s string) (Type, bool) {
	for t := range AllTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// Player is a selectable athlete in an event's pool. Points holds one entry
// per match; a zero entry means no points recorded for that match.
type Player struct {
	ID       string
	Name     string
	Category Category
	Type     Type
	TeamID   string
	TeamName string
	EventID  string
	Points   []int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllCategories[p.Category]; !ok {
		return fmt.Errorf("invalid player category: %s", p.Category)
	}
	if _, ok := AllTypes[p.Type]; !ok {
		return fmt.Errorf("invalid player type: %s", p.Type)
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.EventID == "" {
		return fmt.Errorf("player event id is required")
	}

	return nil
}

// TotalPoints sums the per-match array.
func (p Player) TotalPoints() int {
	total := 0
	for _, pts := range p.Points {
		total += pts
	}
	return total
}

// CanBowl reports whether the player counts toward bowl-capable minimums.
func (p Player) CanBowl() bool {
	return p.Category == CategoryBowler || p.Category == CategoryAllRounder
}
