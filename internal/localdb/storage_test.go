package localdb

import (
	"path/filepath"
	"testing"

	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	DBClient = nil
	if _, err := SetupDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("failed to setup database: %v", err)
	}
	t.Cleanup(func() {
		DBClient.Close()
		DBClient = nil
	})
}

func TestSetGetValue(t *testing.T) {
	setupTestDB(t)

	if _, ok := GetValue("missing"); ok {
		t.Fatal("unexpected value for missing key")
	}

	if err := SetValue("k", "v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, ok := GetValue("k"); !ok || got != "v1" {
		t.Fatalf("unexpected value: got=%q ok=%v", got, ok)
	}

	// Replace in place.
	if err := SetValue("k", "v2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := GetValue("k"); got != "v2" {
		t.Fatalf("unexpected value after replace: got=%q", got)
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	setupTestDB(t)

	if got := LoadAccessToken(); got != "" {
		t.Fatalf("unexpected token before save: %q", got)
	}

	if err := SaveAccessToken("abc.def.ghi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := LoadAccessToken(), "abc.def.ghi"; got != want {
		t.Fatalf("unexpected token: got=%q want=%q", got, want)
	}
}

func TestAllTimeWinnersRoundTrip(t *testing.T) {
	setupTestDB(t)

	ledger := LoadAllTimeWinners()
	if ledger == nil || len(ledger) != 0 {
		t.Fatalf("unexpected initial ledger: %v", ledger)
	}

	want := map[steamapi.SteamID]int{
		76561197960287930: 2,
		1001:              1,
	}
	if err := SaveAllTimeWinners(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := LoadAllTimeWinners()
	if len(got) != len(want) {
		t.Fatalf("unexpected ledger size: got=%d want=%d", len(got), len(want))
	}
	for id, count := range want {
		if got[id] != count {
			t.Fatalf("unexpected count for %v: got=%d want=%d", id, got[id], count)
		}
	}
}

func TestAllTimeWinnersUnparseableFallsBack(t *testing.T) {
	setupTestDB(t)

	if err := SetValue(KeyAllTimeWinners, "{broken"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ledger := LoadAllTimeWinners()
	if ledger == nil || len(ledger) != 0 {
		t.Fatalf("expected empty ledger fallback, got %v", ledger)
	}
}

func TestAutoSaveRoundTrip(t *testing.T) {
	setupTestDB(t)

	if LoadAutoSave() {
		t.Fatal("unexpected auto-save default")
	}

	if err := SaveAutoSave(true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !LoadAutoSave() {
		t.Fatal("expected auto-save to persist")
	}
}

func TestValuesWithoutDatabase(t *testing.T) {
	DBClient = nil

	if err := SetValue("k", "v"); err == nil {
		t.Fatal("expected error without database")
	}
	if _, ok := GetValue("k"); ok {
		t.Fatal("unexpected value without database")
	}
	if got := LoadAllTimeWinners(); len(got) != 0 {
		t.Fatalf("unexpected ledger without database: %v", got)
	}
}
