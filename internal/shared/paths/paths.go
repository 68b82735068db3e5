package paths

import (
	"os"
	"path/filepath"
)

const appDirName = "steam-giveaway-tool"

// GetDataDir returns the per-user data directory for the tool.
// SGT_DATA_DIR overrides the default location.
func GetDataDir() string {
	if dir := os.Getenv("SGT_DATA_DIR"); dir != "" {
		return dir
	}

	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, appDirName)
}

// GetDBPath returns the path of the local SQLite database.
func GetDBPath() string {
	return filepath.Join(GetDataDir(), "local.db")
}

// EnsureDataDirs creates the data directory tree if it does not exist yet.
func EnsureDataDirs() error {
	return os.MkdirAll(GetDataDir(), 0o755)
}
