package usecase

import (
	"errors"
	"testing"

	"github.com/cnfl/fantasy-cricket/internal/platform/cache"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

func TestScoringService_TeamTotal(t *testing.T) {
	st := runningStoreWithRoster()
	st.Dispatch(store.UpdatePlayerPoints{PlayerID: "p1", Points: []int{10}}) // VIP slot
	st.Dispatch(store.UpdatePlayerPoints{PlayerID: "p3", Points: []int{4, 3}})

	svc := NewScoringService(st, cache.NewStore(0))
	total, err := svc.TeamTotal(t.Context(), "ft-1")
	if err != nil {
		t.Fatalf("team total failed: %v", err)
	}
	if total != 27 { // 10*2 VIP + 7
		t.Fatalf("unexpected total: %d", total)
	}
}

func TestScoringService_TeamTotal_UnknownRoster(t *testing.T) {
	svc := NewScoringService(fixtureStore(), cache.NewStore(0))
	if _, err := svc.TeamTotal(t.Context(), "ft-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScoringService_Leaderboard_RecomputesAfterDispatch(t *testing.T) {
	st := runningStoreWithRoster()
	second := fixtureRoster()
	second.ID = "ft-2"
	second.ParticipantID = "user-p2"
	second.TeamName = "Royal Bengals"
	second.Slots[0].IsVip = false
	second.Slots[1].IsVip = false
	st.Dispatch(store.AddParticipantTeam{Team: second})
	st.Dispatch(store.UpdatePlayerPoints{PlayerID: "p1", Points: []int{10}})

	svc := NewScoringService(st, cache.NewStore(0))

	board, err := svc.Leaderboard(t.Context(), "evt-1")
	if err != nil {
		t.Fatalf("leaderboard failed: %v", err)
	}
	// ft-1 holds p1 in a VIP slot so it scores 20 against ft-2's 10.
	if board[0].TeamID != "ft-1" || board[0].Points != 20 || board[0].Rank != 1 {
		t.Fatalf("unexpected first row: %+v", board[0])
	}
	if board[1].TeamID != "ft-2" || board[1].Points != 10 || board[1].Rank != 2 {
		t.Fatalf("unexpected second row: %+v", board[1])
	}

	// Serving the same version again returns the memoized board.
	again, err := svc.Leaderboard(t.Context(), "evt-1")
	if err != nil {
		t.Fatalf("second leaderboard failed: %v", err)
	}
	if &again[0] != &board[0] {
		t.Fatal("expected the cached slice for an unchanged store")
	}

	// A dispatch bumps the version and invalidates the board.
	st.Dispatch(store.UpdatePlayerPoints{PlayerID: "p2", Points: []int{50}})
	fresh, err := svc.Leaderboard(t.Context(), "evt-1")
	if err != nil {
		t.Fatalf("post-dispatch leaderboard failed: %v", err)
	}
	if fresh[0].TeamID != "ft-1" || fresh[0].Points != 120 { // 20 + 50*2 VIP
		t.Fatalf("stale board after dispatch: %+v", fresh[0])
	}
}
