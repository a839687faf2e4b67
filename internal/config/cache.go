package config

import (
    "os"
    "strconv"
    "time"
)

// ProfileCacheConfig defines settings for the public profile-read cache.
// When Enabled is false or no Redis client is available, caching is
// disabled and profile reads always hit the database.  TTL bounds how
// stale a cached profile may get between the explicit invalidations
// performed by the mutating endpoints.
type ProfileCacheConfig struct {
    Enabled bool
    TTL     time.Duration
    Prefix  string
}

// LoadProfileCacheConfig reads environment variables to build a
// ProfileCacheConfig.  Defaults are used when variables are not set.
func LoadProfileCacheConfig() ProfileCacheConfig {
    return ProfileCacheConfig{
        Enabled: getenv("PROFILE_CACHE_ENABLED", "true") == "true",
        TTL:     parseDur(getenv("PROFILE_CACHE_TTL", "30s")),
        Prefix:  getenv("PROFILE_CACHE_PREFIX", "profile"),
    }
}

// Helper functions shared with redis.go.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func atoi(s string) int {
    i, _ := strconv.Atoi(s)
    return i
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return 30 * time.Second
    }
    return d
}
