package roster

import (
	"errors"
	"fmt"

	"github.com/cnfl/fantasy-cricket/internal/domain/event"
	"github.com/cnfl/fantasy-cricket/internal/domain/player"
)

var (
	ErrRosterSize         = errors.New("roster must have exactly 11 players")
	ErrDuplicatePlayer    = errors.New("duplicate player in roster")
	ErrUnknownPlayer      = errors.New("player not found in event pool")
	ErrVipLimit           = errors.New("max VIP players exceeded")
	ErrTeamLimit          = errors.New("max players from same team exceeded")
	ErrWicketkeeperMin    = errors.New("at least one wicketkeeper required")
	ErrBowlerMin          = errors.New("at least two dedicated bowlers required")
	ErrBowlCapableMin     = errors.New("at least five bowl-capable players required")
	ErrForeignPlayerLimit = errors.New("max foreign players exceeded")
)

const (
	minWicketkeepers = 1
	minBowlers       = 2
	minBowlCapable   = 5
)

// Rules carries one event's roster constraints.
type Rules struct {
	MaxVipPlayers     int
	MaxPerTeam        int
	MaxForeignPlayers int // <=0 means unlimited
	ForeignCapApplies bool
}

// RulesForEvent derives roster constraints from an event configuration.
func RulesForEvent(e event.Event) Rules {
	return Rules{
		MaxVipPlayers:     e.MaxVipPlayers,
		MaxPerTeam:        e.MaxPlayersFromSingleTeam,
		MaxForeignPlayers: e.MaxForeignPlayers,
		ForeignCapApplies: e.ForeignCapApplies(),
	}
}

// RuleResult reports one rule's outcome: the observed count against its
// bound, so callers can render "3/2"-style feedback.
type RuleResult struct {
	Passed bool
	Count  int
	Bound  int
}

// Report is the structured validation outcome for a candidate XI. Foreign
// is only meaningful when ForeignChecked is set (domestic league with a cap).
type Report struct {
	Size           RuleResult
	Vips           RuleResult
	SingleTeam     RuleResult
	Wicketkeepers  RuleResult
	Bowlers        RuleResult
	BowlCapable    RuleResult
	Foreign        RuleResult
	ForeignChecked bool
	Resolution     error // duplicate or unknown player ids, nil when clean
}

// Valid reports whether every applicable rule passed.
func (r Report) Valid() bool {
	if r.Resolution != nil {
		return false
	}
	results := []RuleResult{r.Size, r.Vips, r.SingleTeam, r.Wicketkeepers, r.Bowlers, r.BowlCapable}
	if r.ForeignChecked {
		results = append(results, r.Foreign)
	}
	for _, res := range results {
		if !res.Passed {
			return false
		}
	}
	return true
}

// FirstFailure maps the first failing rule to its sentinel error with the
// observed count, or nil when the report is valid. Rule order follows what
// a participant sees on the draft form.
func (r Report) FirstFailure() error {
	if r.Resolution != nil {
		return r.Resolution
	}
	switch {
	case !r.Size.Passed:
		return fmt.Errorf("%w: got %d", ErrRosterSize, r.Size.Count)
	case !r.Vips.Passed:
		return fmt.Errorf("%w: %d/%d", ErrVipLimit, r.Vips.Count, r.Vips.Bound)
	case !r.SingleTeam.Passed:
		return fmt.Errorf("%w: %d/%d", ErrTeamLimit, r.SingleTeam.Count, r.SingleTeam.Bound)
	case r.ForeignChecked && !r.Foreign.Passed:
		return fmt.Errorf("%w: %d/%d", ErrForeignPlayerLimit, r.Foreign.Count, r.Foreign.Bound)
	case !r.Wicketkeepers.Passed:
		return fmt.Errorf("%w: got %d", ErrWicketkeeperMin, r.Wicketkeepers.Count)
	case !r.Bowlers.Passed:
		return fmt.Errorf("%w: got %d", ErrBowlerMin, r.Bowlers.Count)
	case !r.BowlCapable.Passed:
		return fmt.Errorf("%w: got %d", ErrBowlCapableMin, r.BowlCapable.Count)
	}
	return nil
}

type tally struct {
	resolved     []player.Player
	vips         int
	maxPerTeam   int
	wicketkeeper int
	bowlers      int
	bowlCapable  int
	foreign      int
	resolution   error
}

func tallySlots(slots []Slot, pool Pool) tally {
	var t tally
	seen := make(map[string]struct{}, len(slots))
	perTeam := make(map[string]int)

	for _, s := range slots {
		if s.PlayerID == "" {
			continue
		}
		if _, dup := seen[s.PlayerID]; dup {
			if t.resolution == nil {
				t.resolution = fmt.Errorf("%w: %s", ErrDuplicatePlayer, s.PlayerID)
			}
			continue
		}
		seen[s.PlayerID] = struct{}{}

		p, ok := pool[s.PlayerID]
		if !ok {
			if t.resolution == nil {
				t.resolution = fmt.Errorf("%w: %s", ErrUnknownPlayer, s.PlayerID)
			}
			continue
		}
		t.resolved = append(t.resolved, p)

		if s.IsVip {
			t.vips++
		}
		perTeam[p.TeamID]++
		if perTeam[p.TeamID] > t.maxPerTeam {
			t.maxPerTeam = perTeam[p.TeamID]
		}
		if p.Category == player.CategoryWicketkeeper {
			t.wicketkeeper++
		}
		if p.Category == player.CategoryBowler {
			t.bowlers++
		}
		if p.CanBowl() {
			t.bowlCapable++
		}
		if p.Type == player.TypeForeign {
			t.foreign++
		}
	}

	return t
}

// Validate evaluates a candidate XI against the full rule set. It performs
// no I/O and never fails hard: an incomplete selection simply fails the
// size rule, and resolution problems are carried in the report.
func Validate(slots []Slot, pool Pool, rules Rules) Report {
	t := tallySlots(slots, pool)

	report := Report{
		Size:           RuleResult{Passed: len(t.resolved) == RosterSize && t.resolution == nil, Count: len(t.resolved), Bound: RosterSize},
		Vips:           RuleResult{Passed: t.vips <= rules.MaxVipPlayers, Count: t.vips, Bound: rules.MaxVipPlayers},
		SingleTeam:     RuleResult{Passed: t.maxPerTeam <= rules.MaxPerTeam, Count: t.maxPerTeam, Bound: rules.MaxPerTeam},
		Wicketkeepers:  RuleResult{Passed: t.wicketkeeper >= minWicketkeepers, Count: t.wicketkeeper, Bound: minWicketkeepers},
		Bowlers:        RuleResult{Passed: t.bowlers >= minBowlers, Count: t.bowlers, Bound: minBowlers},
		BowlCapable:    RuleResult{Passed: t.bowlCapable >= minBowlCapable, Count: t.bowlCapable, Bound: minBowlCapable},
		ForeignChecked: rules.ForeignCapApplies,
		Resolution:     t.resolution,
	}
	if rules.ForeignCapApplies {
		report.Foreign = RuleResult{Passed: t.foreign <= rules.MaxForeignPlayers, Count: t.foreign, Bound: rules.MaxForeignPlayers}
	}

	return report
}

// ValidateSwap checks the rule subset relevant to a one-for-one
// substitution: composition minimums, the per-team cap and the foreign cap.
// VIP and size rules cannot change across a swap so they are not re-checked.
func ValidateSwap(slots []Slot, pool Pool, rules Rules) error {
	t := tallySlots(slots, pool)
	if t.resolution != nil {
		return t.resolution
	}

	if t.wicketkeeper < minWicketkeepers {
		return fmt.Errorf("%w: got %d", ErrWicketkeeperMin, t.wicketkeeper)
	}
	if t.bowlers < minBowlers {
		return fmt.Errorf("%w: got %d", ErrBowlerMin, t.bowlers)
	}
	if t.bowlCapable < minBowlCapable {
		return fmt.Errorf("%w: got %d", ErrBowlCapableMin, t.bowlCapable)
	}
	if t.maxPerTeam > rules.MaxPerTeam {
		return fmt.Errorf("%w: %d/%d", ErrTeamLimit, t.maxPerTeam, rules.MaxPerTeam)
	}
	if rules.ForeignCapApplies && t.foreign > rules.MaxForeignPlayers {
		return fmt.Errorf("%w: %d/%d", ErrForeignPlayerLimit, t.foreign, rules.MaxForeignPlayers)
	}

	return nil
}
