package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cnfl/fantasy-cricket/internal/domain/history"
	"github.com/cnfl/fantasy-cricket/internal/platform/logging"
	"github.com/cnfl/fantasy-cricket/internal/store"
)

type fakeArchive struct {
	mu     sync.Mutex
	boards map[string][]history.ArchivedEntry
	fail   error
}

func newFakeArchive() *fakeArchive {
	return &fakeArchive{boards: make(map[string][]history.ArchivedEntry)}
}

func (f *fakeArchive) SaveLeaderboard(_ context.Context, eventID string, entries []history.ArchivedEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.boards[eventID] = entries
	return nil
}

func (f *fakeArchive) ListByEvent(_ context.Context, eventID string) ([]history.ArchivedEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boards[eventID], nil
}

func newHistoryService(st *store.Store, archive history.ArchiveRepository) *HistoryService {
	svc := NewHistoryService(st, archive, nil, &seqIDGen{prefix: "season"}, logging.NewNop(), nil)
	svc.now = at(afterEnd)
	return svc
}

func TestHistoryService_SeasonsStaySorted(t *testing.T) {
	st := store.New(store.Seed())
	svc := newHistoryService(st, nil)

	for _, n := range []string{"3", "1", "2"} {
		if _, err := svc.AddSeason(t.Context(), UpsertSeasonInput{
			SeasonNumber:   n,
			TournamentName: "CNFL " + n,
			Winner:         "Winner " + n,
		}); err != nil {
			t.Fatalf("add season %s failed: %v", n, err)
		}
	}

	seasons, err := svc.ListSeasons(t.Context())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i, want := range []string{"1", "2", "3"} {
		if seasons[i].SeasonNumber != want {
			t.Fatalf("season order wrong at %d: %+v", i, seasons)
		}
	}
}

func TestHistoryService_ArchiveFinishedEvents(t *testing.T) {
	st := runningStoreWithRoster()
	st.Dispatch(store.UpdatePlayerPoints{PlayerID: "p1", Points: []int{10}})
	archive := newFakeArchive()
	svc := newHistoryService(st, archive)

	archived, err := svc.ArchiveFinishedEvents(t.Context())
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if archived != 1 {
		t.Fatalf("expected 1 archived event, got %d", archived)
	}

	entries, err := svc.ArchivedLeaderboard(t.Context(), "evt-1")
	if err != nil {
		t.Fatalf("read archive failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Rank != 1 || entries[0].Points != 20 {
		t.Fatalf("unexpected archived board: %+v", entries)
	}

	// A second run finds the board already frozen and does nothing.
	archived, err = svc.ArchiveFinishedEvents(t.Context())
	if err != nil {
		t.Fatalf("second archive failed: %v", err)
	}
	if archived != 0 {
		t.Fatalf("re-archiving must be a no-op, got %d", archived)
	}
}

func TestHistoryService_ArchiveWithoutRepository(t *testing.T) {
	svc := newHistoryService(store.New(store.Seed()), nil)

	if _, err := svc.ArchiveFinishedEvents(t.Context()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestHistoryService_ArchiveSkipsRunningEvents(t *testing.T) {
	st := runningStoreWithRoster()
	archive := newFakeArchive()
	svc := newHistoryService(st, archive)
	svc.now = at(whileRunning)

	archived, err := svc.ArchiveFinishedEvents(t.Context())
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if archived != 0 {
		t.Fatalf("running events must not be archived, got %d", archived)
	}
}
