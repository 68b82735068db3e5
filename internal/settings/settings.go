package settings

import (
	"encoding/json"

	"github.com/INikonI/steam-giveaway-tool/internal/localdb"
	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"go.uber.org/zap"
)

// Preferences are the display toggles the UI collaborator renders with.
// They do not affect filtering or drawing.
type Preferences struct {
	Avatars            bool `json:"avatars"`
	FlagsIcons         bool `json:"flags_icons"`
	StoreItemsCapsules bool `json:"store_items_capsules"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Avatars:            true,
		FlagsIcons:         true,
		StoreItemsCapsules: true,
	}
}

// LoadPreferences restores persisted preferences, silently falling back to
// defaults when nothing usable is stored.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()

	raw, ok := localdb.GetValue(localdb.KeyPreferences)
	if !ok {
		return prefs
	}
	if err := json.Unmarshal([]byte(raw), &prefs); err != nil {
		logger.Warn("Ignoring unparseable preferences", zap.Error(err))
		return DefaultPreferences()
	}
	return prefs
}

// SavePreferences persists the preferences blob.
func SavePreferences(prefs Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	return localdb.SetValue(localdb.KeyPreferences, string(data))
}
