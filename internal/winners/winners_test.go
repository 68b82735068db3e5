package winners

import (
	"errors"
	"reflect"
	"testing"

	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

func roster(ids ...steamapi.SteamID) []steamapi.User {
	users := make([]steamapi.User, len(ids))
	for i, id := range ids {
		users[i] = steamapi.User{ID: id}
	}
	return users
}

// swapDrawRandom replaces the draw randomness for the test's duration.
func swapDrawRandom(t *testing.T, fn func(max int) (int, error)) {
	t.Helper()
	orig := drawRandomInt
	drawRandomInt = fn
	t.Cleanup(func() { drawRandomInt = orig })
}

func TestUpdateCurrentDrawsDistinct(t *testing.T) {
	w := New()
	w.NextNumber = 3

	if err := w.UpdateCurrent(roster(1, 2, 3, 4, 5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := len(w.Current), 3; got != want {
		t.Fatalf("unexpected winner count: got=%d want=%d", got, want)
	}
	seen := make(map[steamapi.SteamID]bool)
	for _, winner := range w.Current {
		if seen[winner.ID] {
			t.Fatalf("winner %v drawn twice", winner.ID)
		}
		seen[winner.ID] = true
	}
	if w.LastDrawID == "" {
		t.Fatal("expected a draw id")
	}
	if w.Saved {
		t.Fatal("draw without auto-save must be unsaved")
	}
}

func TestUpdateCurrentSelectionOrder(t *testing.T) {
	// Always picking index 0 walks the pool front to back.
	swapDrawRandom(t, func(max int) (int, error) { return 0, nil })

	w := New()
	w.NextNumber = 2

	if err := w.UpdateCurrent(roster(10, 20, 30)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []steamapi.SteamID{w.Current[0].ID, w.Current[1].ID}
	if want := []steamapi.SteamID{10, 20}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected winners: got=%v want=%v", got, want)
	}
}

func TestUpdateCurrentClampsToRoster(t *testing.T) {
	w := New()
	w.NextNumber = 10

	if err := w.UpdateCurrent(roster(1, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := len(w.Current), 2; got != want {
		t.Fatalf("unexpected winner count: got=%d want=%d", got, want)
	}
}

func TestUpdateCurrentEmptyRoster(t *testing.T) {
	w := New()

	if err := w.UpdateCurrent(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(w.Current) != 0 {
		t.Fatalf("unexpected winners from empty roster: %v", w.Current)
	}
}

func TestUpdateCurrentRandomFailure(t *testing.T) {
	wantErr := errors.New("entropy exhausted")
	swapDrawRandom(t, func(max int) (int, error) { return 0, wantErr })

	w := New()
	if err := w.UpdateCurrent(roster(1, 2)); !errors.Is(err, wantErr) {
		t.Fatalf("unexpected error: got=%v want=%v", err, wantErr)
	}
}

func TestSaveCurrentIncrementsLedger(t *testing.T) {
	w := New()
	w.Current = roster(1, 2)
	w.Saved = false

	w.SaveCurrent()

	if !w.Saved {
		t.Fatal("expected saved flag")
	}
	if got, want := w.WinCount(1), 1; got != want {
		t.Fatalf("unexpected win count: got=%d want=%d", got, want)
	}
	if got, want := w.WinCount(3), 0; got != want {
		t.Fatalf("unexpected win count for non-winner: got=%d want=%d", got, want)
	}

	// A second committed draw with an overlapping winner accumulates.
	w.Current = roster(1)
	w.SaveCurrent()
	if got, want := w.WinCount(1), 2; got != want {
		t.Fatalf("unexpected win count: got=%d want=%d", got, want)
	}
}

func TestAutoSaveCommitsDraw(t *testing.T) {
	swapDrawRandom(t, func(max int) (int, error) { return 0, nil })

	w := New()
	w.AutoSaveCurrent = true
	w.NextNumber = 1

	if err := w.UpdateCurrent(roster(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Saved {
		t.Fatal("auto-save draw must be saved")
	}
	if got, want := w.WinCount(7), 1; got != want {
		t.Fatalf("unexpected win count: got=%d want=%d", got, want)
	}
}

func TestSetAllTime(t *testing.T) {
	w := New()
	w.SetAllTime(map[steamapi.SteamID]int{5: 3})
	if got, want := w.WinCount(5), 3; got != want {
		t.Fatalf("unexpected win count: got=%d want=%d", got, want)
	}

	w.SetAllTime(nil)
	if w.AllTime == nil {
		t.Fatal("expected non-nil ledger after nil restore")
	}
}

func TestSecureRandomIntRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n, err := secureRandomInt(7)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n < 0 || n >= 7 {
			t.Fatalf("value out of range: %d", n)
		}
	}

	if _, err := secureRandomInt(0); err == nil {
		t.Fatal("expected error for empty range")
	}
}
