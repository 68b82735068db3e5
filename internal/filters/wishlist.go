package filters

import (
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

// includeWhoHasStoreItemInWishlist keeps only members wishlisting the
// giveaway item. With no details loaded yet the pass is inert rather than
// dropping everyone.
func includeWhoHasStoreItemInWishlist(friends []steamapi.User, details *steamapi.StoreItemUserDetails) []steamapi.User {
	if details == nil {
		return friends
	}

	return retain(friends, func(friend *steamapi.User) bool {
		for _, want := range details.FriendsWant {
			if want.ID == friend.ID {
				return true
			}
		}
		return false
	})
}
