package filters

import (
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

// HasAppFilter requires ownership of one store item with minimum playtime.
// Thresholds are entered in hours; the wire reports minutes.
type HasAppFilter struct {
	App *steamapi.StoreItem `json:"app"`

	PlaytimeTwoWeeks uint16 `json:"playtime_twoweeks"`
	PlaytimeTotal    uint32 `json:"playtime_total"`

	IsLoading bool `json:"is_loading"`
}

// ItemID is the identity key of the filter: two ownership filters are
// duplicates iff their referenced item ids match. Zero when no item is
// attached yet.
func (f *HasAppFilter) ItemID() steamapi.StoreItemID {
	if f.App == nil {
		return 0
	}
	return f.App.ID
}

func (f *HasAppFilter) loaded() bool {
	return !f.IsLoading && f.App != nil && f.App.UserDetails != nil
}

// applyHasAppFilters keeps members passing every loaded ownership filter:
// present in friendsown with both playtime thresholds met. Filters still
// loading do not constrain yet.
func applyHasAppFilters(friends []steamapi.User, appFilters []HasAppFilter) []steamapi.User {
	if len(appFilters) == 0 {
		return friends
	}

	active := make([]*HasAppFilter, 0, len(appFilters))
	for i := range appFilters {
		if appFilters[i].loaded() {
			active = append(active, &appFilters[i])
		}
	}
	if len(active) == 0 {
		return friends
	}

	return retain(friends, func(friend *steamapi.User) bool {
		for _, filter := range active {
			own := findFriendOwn(filter.App.UserDetails.FriendsOwn, friend.ID)
			if own == nil {
				return false
			}
			if uint64(own.PlaytimeTotal) < uint64(filter.PlaytimeTotal)*60 ||
				uint64(own.PlaytimeTwoWeeks) < uint64(filter.PlaytimeTwoWeeks)*60 {
				return false
			}
		}
		return true
	})
}

func findFriendOwn(owners []steamapi.FriendOwn, id steamapi.SteamID) *steamapi.FriendOwn {
	for i := range owners {
		if owners[i].ID == id {
			return &owners[i]
		}
	}
	return nil
}
