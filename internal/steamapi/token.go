package steamapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty     = errors.New("access token is empty")
	ErrTokenMalformed = errors.New("access token is malformed")
	ErrTokenExpired   = errors.New("access token is expired")
)

// TokenInfo is the subject and expiry extracted from a Steam access token.
type TokenInfo struct {
	UserID    SteamID
	ExpiresOn time.Time
}

// AccessToken is the raw token plus its parse outcome. Exactly one of Info
// and Err is meaningful.
type AccessToken struct {
	Token string
	Info  *TokenInfo
	Err   error
}

// IsExpired compares the token expiry against the wall clock on every call.
// A token that failed to parse is not "expired", it is invalid.
func (t *AccessToken) IsExpired() bool {
	return t.Info != nil && !time.Now().Before(t.Info.ExpiresOn)
}

var tokenParser = jwt.NewParser()

// ParseAccessToken structurally validates a Steam access token and extracts
// subject and expiry. The token is a JWT (three unpadded base64url segments)
// but the signature is deliberately not verified: the token is only decoded,
// never trusted for anything beyond identifying the account it belongs to.
// Expiry is not checked here; callers re-evaluate it against the clock.
func ParseAccessToken(raw string) (*TokenInfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenEmpty
	}

	claims := jwt.MapClaims{}
	if _, _, err := tokenParser.ParseUnverified(raw, claims); err != nil {
		return nil, ErrTokenMalformed
	}

	userID, ok := subjectID(claims["sub"])
	if !ok {
		return nil, ErrTokenMalformed
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, ErrTokenMalformed
	}

	return &TokenInfo{
		UserID:    userID,
		ExpiresOn: time.Unix(int64(exp), 0).UTC(),
	}, nil
}

// subjectID accepts the sub claim as a decimal string (what Steam sends) or
// a bare number.
func subjectID(claim interface{}) (SteamID, bool) {
	switch sub := claim.(type) {
	case string:
		n, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return 0, false
		}
		return SteamID(n), true
	case float64:
		if sub < 0 {
			return 0, false
		}
		return SteamID(sub), true
	default:
		return 0, false
	}
}
