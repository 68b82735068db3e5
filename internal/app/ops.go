package app

import (
	"errors"
	"fmt"

	"github.com/INikonI/steam-giveaway-tool/internal/broadcast"
	"github.com/INikonI/steam-giveaway-tool/internal/filters"
	"github.com/INikonI/steam-giveaway-tool/internal/localdb"
	"github.com/INikonI/steam-giveaway-tool/internal/settings"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
	"go.uber.org/zap"
)

var (
	ErrNoFriendsLoaded  = errors.New("no friends loaded")
	ErrNothingToSave    = errors.New("current winners already saved")
	ErrDuplicateFilter  = errors.New("ownership filter for this item already exists")
	ErrFilterNotFound   = errors.New("ownership filter not found")
	ErrEmptyAccessToken = errors.New("access token is empty")
)

// TokenState is the externally visible credential status.
type TokenState struct {
	State  string           `json:"state"`
	UserID steamapi.SteamID `json:"user_id,omitempty"`
}

// FriendsState is a snapshot of the roster for the status surface.
type FriendsState struct {
	Total    int      `json:"total"`
	Filtered int      `json:"filtered"`
	Regions  []string `json:"regions"`
	Loading  bool     `json:"loading"`
	Progress float32  `json:"progress"`
}

// WinnersState is a snapshot of the draw state.
type WinnersState struct {
	NextNumber      int                      `json:"next_number"`
	Current         []steamapi.User          `json:"current"`
	LastDrawID      string                   `json:"last_draw_id,omitempty"`
	Saved           bool                     `json:"saved"`
	AutoSaveCurrent bool                     `json:"auto_save_current"`
	AllTime         map[steamapi.SteamID]int `json:"all_time"`
}

// SetAccessToken validates, persists and activates a new token. A malformed
// token is rejected without touching the stored one.
func (a *App) SetAccessToken(raw string) (TokenState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	token := a.steam.SetAccessToken(raw)
	if token.Err != nil {
		return a.tokenState(), token.Err
	}

	if err := localdb.SaveAccessToken(token.Token); err != nil {
		logger.Error("Failed to persist access token", zap.Error(err))
	}

	a.post(accessTokenSet{})
	state := a.tokenState()
	broadcast.Send(map[string]interface{}{
		"type": "token_state",
		"data": state,
	})
	return state, nil
}

// TokenState reports the current credential status.
func (a *App) TokenState() TokenState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.tokenState()
}

func (a *App) tokenState() TokenState {
	token := a.steam.AccessToken()
	switch {
	case token.Err != nil:
		switch {
		case errors.Is(token.Err, steamapi.ErrTokenEmpty):
			return TokenState{State: "empty"}
		case errors.Is(token.Err, steamapi.ErrTokenExpired):
			return TokenState{State: "expired"}
		default:
			return TokenState{State: "malformed"}
		}
	case token.Info != nil:
		return TokenState{State: "valid", UserID: token.Info.UserID}
	default:
		return TokenState{State: "empty"}
	}
}

// ReloadFriends re-runs the acquisition pipeline. The stale roster stays
// visible until the new one lands.
func (a *App) ReloadFriends() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	token := a.steam.AccessToken()
	if token.Info == nil {
		if token.Err != nil {
			return token.Err
		}
		return ErrEmptyAccessToken
	}

	a.startFriendsReload()
	return nil
}

// FriendsState snapshots roster counters for the status surface.
func (a *App) FriendsState() FriendsState {
	a.mu.Lock()
	defer a.mu.Unlock()

	return FriendsState{
		Total:    len(a.friends.All),
		Filtered: len(a.friends.Filtered),
		Regions:  append([]string(nil), a.friends.Regions...),
		Loading:  a.friends.IsLoading,
		Progress: a.friends.LoadingProgress,
	}
}

// Friends returns a copy of the full roster.
func (a *App) Friends() []steamapi.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]steamapi.User(nil), a.friends.All...)
}

// FilteredFriends returns a copy of the filtered roster.
func (a *App) FilteredFriends() []steamapi.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]steamapi.User(nil), a.friends.Filtered...)
}

// SearchFriends finds roster members by display name substring.
func (a *App) SearchFriends(term string) []steamapi.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.friends.SearchByName(term)
}

// CurrentUser returns the token holder's profile, nil until loaded.
func (a *App) CurrentUser() *steamapi.User {
	return a.steam.CurrentUser()
}

// Filters returns a copy of the live filter configuration.
func (a *App) Filters() filters.Filters {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filters
}

// UpdateFilters replaces the scalar filter criteria and recomputes the
// filtered roster. Ownership filters are managed through their own
// operations and survive this call untouched.
func (a *App) UpdateFilters(next filters.Filters) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next.HasStoreItems = a.filters.HasStoreItems
	a.filters = next
	a.updateFiltered()
}

// ResetFilters restores every criterion to its default and repopulates the
// available-country list from the current roster.
func (a *App) ResetFilters() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.filters.Reset(a.friends.Regions)
	a.updateFiltered()
}

// AddHasAppFilter registers an ownership filter for the given store item and
// starts loading its friend ownership details in the background.
func (a *App) AddHasAppFilter(item steamapi.StoreItem, playtimeTwoWeeks uint16, playtimeTotal uint32) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.filters.HasStoreItems {
		if a.filters.HasStoreItems[i].ItemID() == item.ID {
			return ErrDuplicateFilter
		}
	}

	filter := filters.HasAppFilter{
		App:              &item,
		PlaytimeTwoWeeks: playtimeTwoWeeks,
		PlaytimeTotal:    playtimeTotal,
		IsLoading:        true,
	}
	a.filters.HasStoreItems = append(a.filters.HasStoreItems, filter)

	a.startItemDetailsLoad(item.ID, func(details *steamapi.StoreItemUserDetails) Msg {
		return hasAppDetailsLoaded{ItemID: item.ID, Details: details}
	})
	return nil
}

// RemoveHasAppFilter drops the ownership filter for the given item id.
func (a *App) RemoveHasAppFilter(itemID steamapi.StoreItemID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.filters.HasStoreItems {
		if a.filters.HasStoreItems[i].ItemID() == itemID {
			a.filters.HasStoreItems = append(a.filters.HasStoreItems[:i], a.filters.HasStoreItems[i+1:]...)
			a.updateFiltered()
			return nil
		}
	}
	return ErrFilterNotFound
}

// GiveawayState is the selected giveaway item and its details progress.
type GiveawayState struct {
	Item           *steamapi.StoreItem `json:"item"`
	DetailsLoading bool                `json:"details_loading"`
}

// GiveawayItem returns the selected giveaway item, nil when none is set.
func (a *App) GiveawayItem() *steamapi.StoreItem {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.giveawayItem == nil {
		return nil
	}
	item := *a.giveawayItem
	return &item
}

// Giveaway snapshots the giveaway selection.
func (a *App) Giveaway() GiveawayState {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := GiveawayState{DetailsLoading: a.giveawayDetailsLoading}
	if a.giveawayItem != nil {
		item := *a.giveawayItem
		state.Item = &item
	}
	return state
}

// SetGiveawayItem selects the item being given away and starts loading its
// ownership/wishlist details for the wishlist filter.
func (a *App) SetGiveawayItem(item steamapi.StoreItem) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.giveawayItem = &item
	a.giveawayItem.UserDetails = nil
	a.giveawayDetailsLoading = true

	a.startItemDetailsLoad(item.ID, func(details *steamapi.StoreItemUserDetails) Msg {
		return giveawayDetailsLoaded{Details: details}
	})
}

// startItemDetailsLoad fetches user details for one store item in the
// background and posts them wrapped by makeMsg. Caller holds the mutex.
func (a *App) startItemDetailsLoad(itemID steamapi.StoreItemID, makeMsg func(*steamapi.StoreItemUserDetails) Msg) {
	go func() {
		details, err := a.steam.AppUserDetails([]steamapi.StoreItemID{itemID})
		if err != nil {
			logger.Error("Failed to load store item user details",
				zap.Uint32("item_id", uint32(itemID)),
				zap.Error(err))
			a.post(makeMsg(nil))
			return
		}
		a.post(makeMsg(details[itemID]))
	}()
}

// SearchStore queries the store catalogue, localized to the current user's
// country when known.
func (a *App) SearchStore(term string) ([]steamapi.StoreItem, error) {
	country := ""
	if user := a.steam.CurrentUser(); user != nil && user.CountryCode != nil {
		country = *user.CountryCode
	}
	return a.steam.StoreSearch(term, country)
}

// Draw selects count winners from the filtered roster. count is clamped to
// [1, len(filtered)].
func (a *App) Draw(count int) (WinnersState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.friends.Filtered) == 0 {
		return a.winnersState(), ErrNoFriendsLoaded
	}

	if count < 1 {
		count = 1
	}
	if count > len(a.friends.Filtered) {
		count = len(a.friends.Filtered)
	}
	a.winners.NextNumber = count

	if err := a.winners.UpdateCurrent(a.friends.Filtered); err != nil {
		return a.winnersState(), err
	}

	if a.winners.AutoSaveCurrent {
		a.persistLedger()
		// A committed draw can knock its winners out of the filtered roster.
		a.updateFiltered()
	}

	state := a.winnersState()
	logger.Info("Winners drawn",
		zap.Int("count", len(state.Current)),
		zap.String("draw_id", state.LastDrawID))
	broadcast.Send(map[string]interface{}{
		"type": "winners_drawn",
		"data": state,
	})
	return state, nil
}

// SaveWinners commits the current draw into the all-time ledger, once.
func (a *App) SaveWinners() (WinnersState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.winners.Saved {
		return a.winnersState(), ErrNothingToSave
	}

	a.winners.SaveCurrent()
	a.persistLedger()
	a.updateFiltered()
	return a.winnersState(), nil
}

// SetAutoSave toggles draw auto-commit. Enabling it with an unsaved draw
// pending commits that draw immediately.
func (a *App) SetAutoSave(enabled bool) WinnersState {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.winners.AutoSaveCurrent = enabled
	if err := localdb.SaveAutoSave(enabled); err != nil {
		logger.Error("Failed to persist auto-save setting", zap.Error(err))
	}

	if enabled && !a.winners.Saved {
		a.winners.SaveCurrent()
		a.persistLedger()
		a.updateFiltered()
	}
	return a.winnersState()
}

// WinnersState snapshots the draw state.
func (a *App) WinnersState() WinnersState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.winnersState()
}

func (a *App) winnersState() WinnersState {
	allTime := make(map[steamapi.SteamID]int, len(a.winners.AllTime))
	for id, count := range a.winners.AllTime {
		allTime[id] = count
	}

	return WinnersState{
		NextNumber:      a.winners.NextNumber,
		Current:         append([]steamapi.User(nil), a.winners.Current...),
		LastDrawID:      a.winners.LastDrawID,
		Saved:           a.winners.Saved,
		AutoSaveCurrent: a.winners.AutoSaveCurrent,
		AllTime:         allTime,
	}
}

// persistLedger writes the all-time ledger to storage. Caller holds the
// mutex.
func (a *App) persistLedger() {
	if err := localdb.SaveAllTimeWinners(a.winners.AllTime); err != nil {
		logger.Error("Failed to persist win ledger", zap.Error(err))
	}
}

// Preferences returns the display preferences.
func (a *App) Preferences() settings.Preferences {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prefs
}

// SetPreferences replaces and persists the display preferences.
func (a *App) SetPreferences(prefs settings.Preferences) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.prefs = prefs
	if err := settings.SavePreferences(prefs); err != nil {
		return fmt.Errorf("failed to persist preferences: %w", err)
	}
	return nil
}

// LatestVersionTag reports the newer release tag found by the update check,
// empty when up to date.
func (a *App) LatestVersionTag() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.latestVersionTag
}
