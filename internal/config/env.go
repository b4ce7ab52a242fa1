package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overrides config fields from environment variables. Unset or
// unparseable values leave the loaded config untouched.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PUMPKINSNATCHER_URL"); v != "" {
		c.Endpoint.URL = v
	}
	if v := getEnvInt("PUMPKINSNATCHER_TIMEOUT_SECONDS"); v > 0 {
		c.Endpoint.TimeoutSeconds = v
	}
	if v := os.Getenv("PUMPKINSNATCHER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getEnvInt("PUMPKINSNATCHER_PORT"); v > 0 {
		c.Server.Port = v
	}
	if v := os.Getenv("PUMPKINSNATCHER_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := getEnvInt("PUMPKINSNATCHER_TOTAL"); v > 0 {
		c.Progress.TotalPumpkins = v
	}
	if v := getEnvBool("PUMPKINSNATCHER_OPEN_BROWSER"); v != nil {
		c.Server.OpenBrowser = v
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}

func getEnvBool(key string) *bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		v := true
		return &v
	case "0", "false", "no":
		v := false
		return &v
	default:
		return nil
	}
}
