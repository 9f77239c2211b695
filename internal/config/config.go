// Package config reads runtime settings from the environment. A .env file
// in the working directory is loaded first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.
type Config struct {
	Port          string        // PORT, default 8080
	SitePath      string        // FOLIO_SITE, empty uses the embedded document
	DBPath        string        // FOLIO_DB, default folio.db
	GitHubUser    string        // GITHUB_USER, empty uses the document's
	MediumUser    string        // MEDIUM_USER, empty uses the document's
	ReducedMotion bool          // FOLIO_REDUCED_MOTION
	PrefersDark   bool          // FOLIO_PREFERS_DARK
	Width         int           // FOLIO_WIDTH, default 1280
	Height        int           // FOLIO_HEIGHT, default 720
	ShowFPS       bool          // FOLIO_SHOW_FPS
	ScreenshotDir string        // FOLIO_SCREENSHOTS, default screenshots
	FeedTTL       time.Duration // FOLIO_FEED_TTL, default 10m
}

// Load reads .env (if any) and then the process environment. Malformed
// values are reported, not silently defaulted.
func Load() (Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	c := Config{
		Port:          "8080",
		DBPath:        "folio.db",
		Width:         1280,
		Height:        720,
		ScreenshotDir: "screenshots",
		FeedTTL:       10 * time.Minute,
	}
	var errs []string
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}
	str := func(key string, dst *string) {
		if v, ok := get(key); ok {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := get(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Sprintf("%s=%q: not a boolean", key, v))
				return
			}
			*dst = b
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := get(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				errs = append(errs, fmt.Sprintf("%s=%q: not a positive integer", key, v))
				return
			}
			*dst = n
		}
	}

	str("PORT", &c.Port)
	str("FOLIO_SITE", &c.SitePath)
	str("FOLIO_DB", &c.DBPath)
	str("GITHUB_USER", &c.GitHubUser)
	str("MEDIUM_USER", &c.MediumUser)
	str("FOLIO_SCREENSHOTS", &c.ScreenshotDir)
	boolean("FOLIO_REDUCED_MOTION", &c.ReducedMotion)
	boolean("FOLIO_PREFERS_DARK", &c.PrefersDark)
	boolean("FOLIO_SHOW_FPS", &c.ShowFPS)
	integer("FOLIO_WIDTH", &c.Width)
	integer("FOLIO_HEIGHT", &c.Height)
	if v, ok := get("FOLIO_FEED_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			errs = append(errs, fmt.Sprintf("FOLIO_FEED_TTL=%q: not a duration", v))
		} else {
			c.FeedTTL = d
		}
	}

	if len(errs) > 0 {
		return c, fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return c, nil
}

// Addr returns the listen address for the server.
func (c Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
