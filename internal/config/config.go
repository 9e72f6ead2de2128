package config

import (
	"os"
	"strings"
)

type Config struct {
	// Remote API surface.
	APIBaseURL  string
	AccessToken string

	// Optional local app lock, independent of backend auth.
	AppLocked  bool
	UnlockCode string

	// Local state store (the browser-local-storage analogue).
	StateDBPath string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Load() Config {
	return Config{
		APIBaseURL:  getEnv("TASKFORGE_API_URL", "http://localhost:8000"),
		AccessToken: os.Getenv("TASKFORGE_ACCESS_TOKEN"),
		AppLocked:   strings.EqualFold(getEnv("TASKFORGE_APP_LOCKED", "false"), "true"),
		UnlockCode:  os.Getenv("TASKFORGE_UNLOCK_CODE"),
		StateDBPath: getEnv("TASKFORGE_STATE_DB", "./taskforge.db"),
	}
}
