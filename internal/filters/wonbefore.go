package filters

import (
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

// excludeWhoWonBefore drops every member with a recorded win. Absence from
// the ledger means kept; the win count itself does not matter.
func excludeWhoWonBefore(friends []steamapi.User, wonBefore map[steamapi.SteamID]int) []steamapi.User {
	return retain(friends, func(friend *steamapi.User) bool {
		_, won := wonBefore[friend.ID]
		return !won
	})
}
