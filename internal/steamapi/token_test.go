package steamapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func makeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()

	header, err := json.Marshal(map[string]string{"alg": "EdDSA", "typ": "JWT"})
	if err != nil {
		t.Fatalf("failed to marshal header: %v", err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("failed to marshal claims: %v", err)
	}

	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("sig"))
}

func TestParseAccessToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	raw := makeToken(t, map[string]interface{}{
		"sub": "76561197960287930",
		"exp": exp,
	})

	info, err := ParseAccessToken(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := info.UserID, SteamID(76561197960287930); got != want {
		t.Fatalf("unexpected user id: got=%v want=%v", got, want)
	}
	if got, want := info.ExpiresOn.Unix(), exp; got != want {
		t.Fatalf("unexpected expiry: got=%v want=%v", got, want)
	}
}

func TestParseAccessTokenNumericSubject(t *testing.T) {
	raw := makeToken(t, map[string]interface{}{
		"sub": 12345,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	info, err := ParseAccessToken(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := info.UserID, SteamID(12345); got != want {
		t.Fatalf("unexpected user id: got=%v want=%v", got, want)
	}
}

func TestParseAccessTokenEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		if _, err := ParseAccessToken(raw); !errors.Is(err, ErrTokenEmpty) {
			t.Fatalf("unexpected error for %q: got=%v want=%v", raw, err, ErrTokenEmpty)
		}
	}
}

func TestParseAccessTokenMalformed(t *testing.T) {
	cases := []string{
		"not-a-token",
		"one.two",
		"!!!.???.###",
		makeToken(t, map[string]interface{}{"exp": 123}),              // no sub
		makeToken(t, map[string]interface{}{"sub": "123"}),            // no exp
		makeToken(t, map[string]interface{}{"sub": "abc", "exp": 12}), // non-numeric sub
	}
	for _, raw := range cases {
		if _, err := ParseAccessToken(raw); !errors.Is(err, ErrTokenMalformed) {
			t.Fatalf("unexpected error for %q: got=%v want=%v", raw, err, ErrTokenMalformed)
		}
	}
}

func TestParseAccessTokenExpiredStillParses(t *testing.T) {
	// Expiry is not a parse error; callers check it against the clock.
	raw := makeToken(t, map[string]interface{}{
		"sub": "123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	info, err := ParseAccessToken(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token := AccessToken{Token: raw, Info: info}
	if !token.IsExpired() {
		t.Fatal("expected token to report expired")
	}
}

func TestAccessTokenIsExpired(t *testing.T) {
	fresh := AccessToken{Info: &TokenInfo{ExpiresOn: time.Now().Add(time.Minute)}}
	if fresh.IsExpired() {
		t.Fatal("fresh token reported expired")
	}

	failed := AccessToken{Err: ErrTokenMalformed}
	if failed.IsExpired() {
		t.Fatal("failed token reported expired")
	}
}
