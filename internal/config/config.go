package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Platforms with a dedicated loopback address for the API host.
const (
	PlatformDefault = "default"
	PlatformAndroid = "android"
)

const (
	defaultHost = "http://127.0.0.1:8000/api"
	androidHost = "http://10.0.2.2:8000/api" // emulator alias for the host loopback
)

// Config holds client configuration resolved at startup.
type Config struct {
	BaseURL  string
	Platform string
	LogFile  string
	LogCalls bool
}

// BaseURLFor returns the API base URL for a runtime platform.
func BaseURLFor(platform string) string {
	if strings.EqualFold(strings.TrimSpace(platform), PlatformAndroid) {
		return androidHost
	}
	return defaultHost
}

// DefaultConfig returns a Config pointing at the local API.
func DefaultConfig() Config {
	return Config{
		BaseURL:  defaultHost,
		Platform: PlatformDefault,
		LogFile:  defaultLogFile(),
	}
}

// Load reads .env (if present) and YARANAI_* environment variables,
// falling back to defaults for any unset values.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("YARANAI_PLATFORM"); v != "" {
		cfg.Platform = strings.ToLower(v)
		cfg.BaseURL = BaseURLFor(v)
	}
	if v := os.Getenv("YARANAI_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("YARANAI_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("YARANAI_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}

// ApplyOverrides applies command-line overrides. An explicit API URL wins
// over the platform default.
func (c *Config) ApplyOverrides(platform, apiURL string) {
	if platform != "" {
		c.Platform = strings.ToLower(platform)
		c.BaseURL = BaseURLFor(platform)
	}
	if apiURL != "" {
		c.BaseURL = apiURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// Validate checks that the base URL is an absolute http(s) URL.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.BaseURL)
	}
	return nil
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "yaranai.log"
	}
	return filepath.Join(dir, "yaranai", "yaranai.log")
}
