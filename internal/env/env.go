package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds process configuration. Optional string settings are pointers so
// "unset" is distinguishable from "empty".
type Env struct {
	ServerPort int
	DebugMode  bool

	// DBPath overrides the default database location when set.
	DBPath *string

	// AccessToken seeds the Steam access token on startup. The token stored
	// in the local database takes precedence when both are present.
	AccessToken *string
}

var Value Env

// LoadEnv reads .env (if present) and the process environment into Value.
func LoadEnv() {
	_ = godotenv.Load()

	Value = Env{
		ServerPort: lookupInt("SERVER_PORT", 8080),
		DebugMode:  lookupBool("DEBUG_MODE"),

		DBPath:      lookupOptional("DB_PATH"),
		AccessToken: lookupOptional("STEAM_ACCESS_TOKEN"),
	}
}

func lookupOptional(key string) *string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return &v
	}
	return nil
}

func lookupInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func lookupBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
