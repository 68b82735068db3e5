package filters

import (
	"time"

	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
)

func applyAccountAgeFilter(friends []steamapi.User, f *Filters, now time.Time) []steamapi.User {
	if f.AccountAge <= 0 && !f.ExcludeUnknownAge {
		return friends
	}

	return retain(friends, func(friend *steamapi.User) bool {
		if friend.CreatedAt == nil {
			return !f.ExcludeUnknownAge
		}
		return yearsSince(now, *friend.CreatedAt) >= f.AccountAge
	})
}

// yearsSince is the whole-year difference, counting a year only once its
// anniversary has passed.
func yearsSince(now, t time.Time) int {
	years := now.Year() - t.Year()
	anniversary := t.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
