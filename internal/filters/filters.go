package filters

import (
	"time"

	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

// Filters is the live filter configuration. Applying it never mutates the
// input roster; the filtered roster is always a fresh slice.
type Filters struct {
	// AccountAge is the minimum account age in whole years. Zero disables
	// the age pass unless ExcludeUnknownAge is set.
	AccountAge        int  `json:"account_age"`
	ExcludeUnknownAge bool `json:"exclude_unknown_age"`

	ExcludeWhoWonBefore bool `json:"exclude_who_won_before"`

	RegionsAndCountries RegionsAndCountriesFilter `json:"regions_and_countries"`

	IncludeWhoHasAppInWishlist bool `json:"include_who_has_app_in_wishlist"`

	HasStoreItems []HasAppFilter `json:"has_store_items"`
}

// Apply narrows the full roster through the passes in fixed order: account
// age, previous winners, regions, wishlist, ownership. Each pass only
// removes members and is skipped entirely when none of its criteria are
// active, so an all-default filter set is an identity transform.
func (f *Filters) Apply(all []steamapi.User, wonBefore map[steamapi.SteamID]int, giveawayDetails *steamapi.StoreItemUserDetails) []steamapi.User {
	filtered := make([]steamapi.User, len(all))
	copy(filtered, all)

	filtered = applyAccountAgeFilter(filtered, f, time.Now())
	if f.ExcludeWhoWonBefore {
		filtered = excludeWhoWonBefore(filtered, wonBefore)
	}
	filtered = applyRegionFilters(filtered, &f.RegionsAndCountries)
	if f.IncludeWhoHasAppInWishlist {
		filtered = includeWhoHasStoreItemInWishlist(filtered, giveawayDetails)
	}
	filtered = applyHasAppFilters(filtered, f.HasStoreItems)

	return filtered
}

// Reset clears every criterion. The available-country list is repopulated
// from the given roster regions, which is why a roster reload must reset
// region selections: they reference the previous roster's distinct regions.
func (f *Filters) Reset(regions []string) {
	f.AccountAge = 0
	f.ExcludeUnknownAge = false
	f.ExcludeWhoWonBefore = false
	f.IncludeWhoHasAppInWishlist = false
	f.HasStoreItems = nil
	f.ResetRegionsAndCountries(regions)
}

func (f *Filters) ResetRegionsAndCountries(regions []string) {
	f.RegionsAndCountries = RegionsAndCountriesFilter{
		AvailableCountries: append([]string(nil), regions...),
	}
}

// retain keeps the members the predicate accepts, preserving order.
func retain(users []steamapi.User, keep func(*steamapi.User) bool) []steamapi.User {
	out := users[:0]
	for i := range users {
		if keep(&users[i]) {
			out = append(out, users[i])
		}
	}
	return out
}
