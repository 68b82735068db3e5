package app

import (
	"context"
	"sync"
	"time"

	"github.com/INikonI/steam-giveaway-tool/internal/broadcast"
	"github.com/INikonI/steam-giveaway-tool/internal/filters"
	"github.com/INikonI/steam-giveaway-tool/internal/friends"
	"github.com/INikonI/steam-giveaway-tool/internal/localdb"
	"github.com/INikonI/steam-giveaway-tool/internal/settings"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
	"github.com/INikonI/steam-giveaway-tool/internal/version"
	"github.com/INikonI/steam-giveaway-tool/internal/winners"
	"go.uber.org/zap"
)

const tickInterval = 50 * time.Millisecond

// App owns the roster, filters, winners and preferences. All mutation goes
// through methods holding the single mutex; background workers only read the
// Steam client and post messages into the queue, which Tick drains one
// message at a time.
type App struct {
	mu sync.Mutex

	steam *steamapi.Client

	friends friends.Friends
	filters filters.Filters
	winners *winners.Winners
	prefs   settings.Preferences

	giveawayItem           *steamapi.StoreItem
	giveawayDetailsLoading bool

	latestVersionTag string

	msgs chan Msg
}

// New restores persisted state and seeds the access token. initialToken may
// be empty; a persisted token always wins over the seed.
func New(steam *steamapi.Client, initialToken string) *App {
	a := &App{
		steam:   steam,
		winners: winners.New(),
		msgs:    make(chan Msg, 256),
	}

	a.winners.SetAllTime(localdb.LoadAllTimeWinners())
	a.winners.AutoSaveCurrent = localdb.LoadAutoSave()
	a.prefs = settings.LoadPreferences()

	token := localdb.LoadAccessToken()
	if token == "" {
		token = initialToken
	}
	if token != "" {
		if parsed := steam.SetAccessToken(token); parsed.Err == nil {
			a.post(accessTokenSet{})
		} else {
			logger.Warn("Ignoring stored access token", zap.Error(parsed.Err))
		}
	}

	return a
}

// Run ticks the app until the context is cancelled.
func (a *App) Run(ctx context.Context) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Tick()
		}
	}
}

// Tick processes at most one queued message, then re-checks token expiry.
// The bounded drain means message bursts spread over consecutive ticks
// instead of flooding a single one.
func (a *App) Tick() {
	select {
	case msg := <-a.msgs:
		a.handle(msg)
	default:
	}

	a.checkTokenExpiry()
}

// StartUpdateCheck polls GitHub once, in the background.
func (a *App) StartUpdateCheck() {
	go version.CheckForUpdates(func(tag string) {
		a.post(newVersionAvailable{Tag: tag})
	})
}

func (a *App) post(msg Msg) {
	select {
	case a.msgs <- msg:
	default:
		logger.Warn("Message queue full, dropping message")
	}
}

func (a *App) handle(msg Msg) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch m := msg.(type) {
	case accessTokenSet:
		a.startCurrentUserUpdate()

	case currentUserLoaded:
		user := m.User
		a.steam.SetCurrentUser(&user)
		broadcast.Send(map[string]interface{}{
			"type": "current_user",
			"data": user,
		})
		a.startFriendsReload()

	case friendsLoaded:
		// Overlapping reloads are not cancelled; the last result to post
		// replaces the roster and earlier ones are simply overwritten.
		a.friends.IsLoading = false
		a.friends.LoadingProgress = 0
		a.friends.All = m.Roster
		a.friends.Regions = m.Regions

		// Region selections and ownership filters reference the previous
		// roster's regions and details, so a new roster resets them.
		a.filters.ResetRegionsAndCountries(m.Regions)
		a.filters.HasStoreItems = nil

		a.updateFiltered()
		logger.Info("Friends list loaded", zap.Int("count", len(m.Roster)))
		broadcast.Send(map[string]interface{}{
			"type": "friends_loaded",
			"data": map[string]interface{}{
				"count":   len(m.Roster),
				"regions": m.Regions,
			},
		})

	case friendsLoadFailed:
		a.friends.IsLoading = false
		a.friends.LoadingProgress = 0
		logger.Error("Friends list load failed", zap.Error(m.Err))
		broadcast.Send(map[string]interface{}{
			"type": "friends_load_failed",
			"data": map[string]interface{}{"error": m.Err.Error()},
		})

	case friendsLoadProgress:
		a.friends.LoadingProgress = m.Progress
		broadcast.Send(map[string]interface{}{
			"type": "friends_progress",
			"data": map[string]interface{}{"progress": m.Progress},
		})

	case giveawayDetailsLoaded:
		a.giveawayDetailsLoading = false
		if a.giveawayItem != nil {
			a.giveawayItem.UserDetails = m.Details
		}
		a.updateFiltered()
		broadcast.Send(map[string]interface{}{
			"type": "giveaway_details_loaded",
			"data": map[string]interface{}{"loaded": m.Details != nil},
		})

	case hasAppDetailsLoaded:
		for i := range a.filters.HasStoreItems {
			filter := &a.filters.HasStoreItems[i]
			if filter.ItemID() == m.ItemID {
				if filter.App != nil {
					filter.App.UserDetails = m.Details
				}
				filter.IsLoading = false
				break
			}
		}
		a.updateFiltered()
		broadcast.Send(map[string]interface{}{
			"type": "has_app_details_loaded",
			"data": map[string]interface{}{"item_id": m.ItemID},
		})

	case newVersionAvailable:
		a.latestVersionTag = m.Tag
		broadcast.Send(map[string]interface{}{
			"type": "new_version",
			"data": map[string]interface{}{"tag": m.Tag},
		})
	}
}

// checkTokenExpiry flips a decoded-but-expired token into the expired
// terminal state. Expiry is always re-evaluated against the clock, never
// cached.
func (a *App) checkTokenExpiry() {
	token := a.steam.AccessToken()
	if token.IsExpired() {
		a.steam.MarkTokenExpired()
		logger.Warn("Access token expired")
		broadcast.Send(map[string]interface{}{
			"type": "token_state",
			"data": map[string]interface{}{"state": "expired"},
		})
	}
}

// startCurrentUserUpdate refreshes the current user when the token subject
// changed. Caller holds the mutex.
func (a *App) startCurrentUserUpdate() {
	token := a.steam.AccessToken()
	if token.Info == nil {
		return
	}

	current := a.steam.CurrentUser()
	if current != nil && current.ID == token.Info.UserID {
		return
	}

	userID := token.Info.UserID
	go func() {
		users, err := a.steam.GetUserSummaries([]steamapi.SteamID{userID})
		if err != nil || len(users) == 0 {
			logger.Error("Failed to load current user", zap.Error(err))
			return
		}
		user := users[0]

		// The profile country may be hidden; the account service reports
		// the real one for the current user.
		if country, err := a.steam.GetCurrentUserCountry(userID); err == nil {
			user.CountryCode = &country
		} else {
			logger.Warn("Failed to load current user country", zap.Error(err))
		}

		a.post(currentUserLoaded{User: user})
	}()
}

// startFriendsReload spawns the acquisition pipeline. Caller holds the mutex.
func (a *App) startFriendsReload() {
	a.friends.IsLoading = true
	a.friends.LoadingProgress = 0

	go func() {
		roster, regions, err := friends.Fetch(a.steam, func(progress float32) {
			a.post(friendsLoadProgress{Progress: progress})
		})
		if err != nil {
			a.post(friendsLoadFailed{Err: err})
			return
		}
		a.post(friendsLoaded{Roster: roster, Regions: regions})
	}()
}

// updateFiltered recomputes the filtered roster. Caller holds the mutex.
func (a *App) updateFiltered() {
	var details *steamapi.StoreItemUserDetails
	if a.giveawayItem != nil {
		details = a.giveawayItem.UserDetails
	}
	a.friends.UpdateFiltered(&a.filters, a.winners.AllTime, details)
}
