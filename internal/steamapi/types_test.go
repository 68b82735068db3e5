package steamapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSteamIDUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want SteamID
	}{
		{`76561197960287930`, 76561197960287930},
		{`"76561197960287930"`, 76561197960287930},
		{`0`, 0},
	}
	for _, c := range cases {
		var id SteamID
		if err := json.Unmarshal([]byte(c.in), &id); err != nil {
			t.Fatalf("unexpected error for %s: %v", c.in, err)
		}
		if id != c.want {
			t.Fatalf("unexpected id for %s: got=%v want=%v", c.in, id, c.want)
		}
	}
}

func TestSteamIDUnmarshalInvalid(t *testing.T) {
	for _, in := range []string{`-1`, `"abc"`, `1.5`, `true`} {
		var id SteamID
		if err := json.Unmarshal([]byte(in), &id); err == nil {
			t.Fatalf("expected error for %s, got id=%v", in, id)
		}
	}
}

func TestStoreItemIDUnmarshalRange(t *testing.T) {
	var id StoreItemID
	if err := json.Unmarshal([]byte(`"440"`), &id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := id, StoreItemID(440); got != want {
		t.Fatalf("unexpected id: got=%v want=%v", got, want)
	}

	// Out of 32-bit range.
	if err := json.Unmarshal([]byte(`4294967296`), &id); err == nil {
		t.Fatal("expected range error")
	}
}

func TestUserUnmarshalCreatedAt(t *testing.T) {
	raw := `{"steamid":"123","personaname":"gabe","timecreated":1063372800,"loccountrycode":"US"}`

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := user.ID, SteamID(123); got != want {
		t.Fatalf("unexpected id: got=%v want=%v", got, want)
	}
	if user.CreatedAt == nil {
		t.Fatal("expected created at to be set")
	}
	if got, want := *user.CreatedAt, time.Unix(1063372800, 0).UTC(); !got.Equal(want) {
		t.Fatalf("unexpected created at: got=%v want=%v", got, want)
	}
	if user.CountryCode == nil || *user.CountryCode != "US" {
		t.Fatalf("unexpected country code: got=%v", user.CountryCode)
	}
}

func TestUserUnmarshalPrivateProfile(t *testing.T) {
	raw := `{"steamid":"123","personaname":"anon"}`

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.CreatedAt != nil {
		t.Fatalf("expected nil created at, got %v", user.CreatedAt)
	}
	if user.CountryCode != nil {
		t.Fatalf("expected nil country code, got %v", *user.CountryCode)
	}
}

func TestStoreItemKindUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want StoreItemKind
	}{
		{`"app"`, StoreItemKindApp},
		{`"sub"`, StoreItemKindSub},
		{`"mysterybox"`, StoreItemKindUnknown},
		{`""`, StoreItemKindUnknown},
	}
	for _, c := range cases {
		var kind StoreItemKind
		if err := json.Unmarshal([]byte(c.in), &kind); err != nil {
			t.Fatalf("unexpected error for %s: %v", c.in, err)
		}
		if kind != c.want {
			t.Fatalf("unexpected kind for %s: got=%v want=%v", c.in, kind, c.want)
		}
	}
}
