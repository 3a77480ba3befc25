package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "time"    // time expresses the session validity window
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Database settings are optional: when DBHost is
// empty the service runs on the in-memory document store, which is useful
// for local development and demos but loses data on restart.
type Config struct {
    Env           string        // application environment (e.g. "dev", "prod")
    Port          string        // HTTP port to listen on
    DBUser        string        // database username (optional)
    DBPass        string        // database password (optional)
    DBHost        string        // database host address (empty = in-memory documents)
    DBPort        string        // database port number
    DBName        string        // database name
    JWTSecret     string        // secret used to sign session tokens
    SessionTTL    time.Duration // session validity window (storage-enforced)
    BcryptCost    int           // bcrypt cost for password hashing
    AdminUser     string        // built-in admin username fallback
    AdminPassword string        // built-in admin password fallback (hashed at startup)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),                        // environment (dev/test/prod)
        Port:          must("APP_PORT"),                       // port to bind the HTTP server
        DBUser:        os.Getenv("DB_USER"),                   // database user (optional)
        DBPass:        os.Getenv("DB_PASS"),                   // database password (optional)
        DBHost:        os.Getenv("DB_HOST"),                   // database host (optional)
        DBPort:        getenv("DB_PORT", "3306"),              // database port
        DBName:        getenv("DB_NAME", "cafe_console"),      // database name
        JWTSecret:     must("JWT_SECRET"),                     // secret used for signing session tokens
        SessionTTL:    hours("SESSION_TTL_HOURS", 24),         // 1-day session window by default
        BcryptCost:    intenv("BCRYPT_COST", 10),              // bcrypt cost factor
        AdminUser:     getenv("ADMIN_USERNAME", "admin"),      // default admin username
        AdminPassword: getenv("ADMIN_PASSWORD", "peterl123"),  // default admin password
    }
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// intenv converts an optional environment variable into an int, falling back
// to def when unset or malformed.
func intenv(key string, def int) int {
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

// hours converts an optional hour-count variable into a duration.
func hours(key string, def int) time.Duration {
    return time.Duration(intenv(key, def)) * time.Hour
}
