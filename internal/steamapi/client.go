package steamapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"go.uber.org/zap"
)

const (
	defaultAPIBaseURL   = "https://api.steampowered.com"
	defaultStoreBaseURL = "https://store.steampowered.com"
)

// Client issues typed requests against the Steam web APIs. The access token
// and current user are guarded by a read/write lock: worker goroutines only
// take read access to issue requests, mutation happens on the app side.
type Client struct {
	http *http.Client
	jar  http.CookieJar

	apiBase   string
	storeBase string

	mu          sync.RWMutex
	accessToken AccessToken
	currentUser *User
}

func NewClient() *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
		},
		jar:       jar,
		apiBase:   defaultAPIBaseURL,
		storeBase: defaultStoreBaseURL,
		accessToken: AccessToken{
			Err: ErrTokenEmpty,
		},
	}
}

// SetAccessToken trims, parses and stores a new access token, returning the
// parse outcome. A structurally valid token also installs the steamLoginSecure
// cookie on the Steam origins so store endpoints see the viewer context.
func (c *Client) SetAccessToken(raw string) AccessToken {
	raw = strings.TrimSpace(raw)
	info, err := ParseAccessToken(raw)

	c.mu.Lock()
	c.accessToken = AccessToken{Token: raw, Info: info, Err: err}
	token := c.accessToken
	c.mu.Unlock()

	if info != nil {
		c.installLoginCookies(info.UserID, raw)
	}
	return token
}

func (c *Client) installLoginCookies(userID SteamID, token string) {
	origins := []string{
		"https://steampowered.com",
		c.apiBase,
		c.storeBase,
	}
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil {
			continue
		}
		c.jar.SetCookies(u, []*http.Cookie{{
			Name:  "steamLoginSecure",
			Value: fmt.Sprintf("%s%%7C%%7C%s", userID, token),
		}})
	}
}

// AccessToken returns a copy of the current token state.
func (c *Client) AccessToken() AccessToken {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// MarkTokenExpired moves a decoded token into the expired terminal state.
// Called by the app loop when it notices expiry; the parser never does this.
func (c *Client) MarkTokenExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken.Info = nil
	c.accessToken.Err = ErrTokenExpired
}

func (c *Client) CurrentUser() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentUser
}

func (c *Client) SetCurrentUser(user *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentUser = user
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken.Token
}

func (c *Client) getJSON(base, path string, query url.Values, out interface{}) error {
	reqURL := base + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	resp, err := c.http.Get(reqURL)
	if err != nil {
		logger.Warn("Steam API request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s failed with status: %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) postFormJSON(base, path string, form url.Values, out interface{}) error {
	resp, err := c.http.PostForm(base+path, form)
	if err != nil {
		logger.Warn("Steam API request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s failed with status: %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func joinSteamIDs(ids []SteamID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

func joinStoreItemIDs(ids []StoreItemID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}
