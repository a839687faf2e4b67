package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to sign session tokens
    AccessTTLMin int    // session token time‑to‑live in minutes
    BcryptCost   int    // bcrypt cost for password hashing
    UploadDir    string // root directory for uploaded profile images
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Values with sane
// defaults (token TTL, bcrypt cost, upload directory) fall back rather
// than abort so a minimal .env is enough to boot the server.
func Load() Config {
    return Config{
        Env:          must("APP_ENV"),                   // environment (dev/test/prod)
        Port:         must("APP_PORT"),                  // port to bind the HTTP server
        DBUser:       must("DB_USER"),                   // database user
        DBPass:       os.Getenv("DB_PASS"),              // database password (empty allowed)
        DBHost:       must("DB_HOST"),                   // database host
        DBPort:       must("DB_PORT"),                   // database port
        DBName:       must("DB_NAME"),                   // database name
        JWTSecret:    must("JWT_SECRET"),                // secret used for signing session tokens
        AccessTTLMin: intOr("ACCESS_TOKEN_TTL_MIN", 60), // sessions last one hour unless overridden
        BcryptCost:   intOr("BCRYPT_COST", 10),          // bcrypt cost factor
        UploadDir:    strOr("UPLOAD_DIR", "uploads"),    // where profile images are written
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// strOr returns the value of an environment variable or the given default
// when the variable is unset or empty.
func strOr(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// intOr is like strOr but converts the retrieved string into an integer.
// An unparsable value is treated as a configuration error and aborts startup.
func intOr(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
