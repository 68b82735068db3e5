package localdb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/INikonI/steam-giveaway-tool/internal/shared/logger"
	"github.com/INikonI/steam-giveaway-tool/internal/steamapi"
	"go.uber.org/zap"
)

// Storage keys. Each value is an independent blob; a missing or unparseable
// value always falls back to its default instead of failing startup.
const (
	KeyAccessToken    = "access_token"
	KeyAllTimeWinners = "all_time_winners"
	KeyAutoSave       = "auto_save_all_time_winners"
	KeyPreferences    = "preferences"
)

// SetValue stores a value under a key, replacing any previous value.
func SetValue(key, value string) error {
	db := GetDB()
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(`INSERT OR REPLACE INTO storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// GetValue returns the stored value and whether one exists.
func GetValue(key string) (string, bool) {
	db := GetDB()
	if db == nil {
		return "", false
	}

	var value string
	err := db.QueryRow(`SELECT value FROM storage WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Warn("Failed to read storage value", zap.String("key", key), zap.Error(err))
		}
		return "", false
	}
	return value, true
}

// SaveAccessToken persists the raw token string, valid or not.
func SaveAccessToken(token string) error {
	return SetValue(KeyAccessToken, token)
}

// LoadAccessToken returns the persisted raw token, empty when absent.
func LoadAccessToken() string {
	token, _ := GetValue(KeyAccessToken)
	return token
}

// SaveAllTimeWinners persists the win ledger as a JSON object keyed by
// decimal account id.
func SaveAllTimeWinners(allTime map[steamapi.SteamID]int) error {
	data, err := json.Marshal(allTime)
	if err != nil {
		return fmt.Errorf("failed to encode all-time winners: %w", err)
	}
	return SetValue(KeyAllTimeWinners, string(data))
}

// LoadAllTimeWinners returns the persisted ledger, empty on any failure.
func LoadAllTimeWinners() map[steamapi.SteamID]int {
	allTime := make(map[steamapi.SteamID]int)

	raw, ok := GetValue(KeyAllTimeWinners)
	if !ok {
		return allTime
	}
	if err := json.Unmarshal([]byte(raw), &allTime); err != nil {
		logger.Warn("Ignoring unparseable all-time winners", zap.Error(err))
		return make(map[steamapi.SteamID]int)
	}
	return allTime
}

// SaveAutoSave persists the auto-save toggle.
func SaveAutoSave(autoSave bool) error {
	data, _ := json.Marshal(autoSave)
	return SetValue(KeyAutoSave, string(data))
}

// LoadAutoSave returns the persisted auto-save toggle, false when absent.
func LoadAutoSave() bool {
	raw, ok := GetValue(KeyAutoSave)
	if !ok {
		return false
	}

	var autoSave bool
	if err := json.Unmarshal([]byte(raw), &autoSave); err != nil {
		return false
	}
	return autoSave
}
