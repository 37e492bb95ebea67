package config // package config loads application configuration from environment variables

import (
	"log"      // log is used to report configuration errors and halt execution
	"os"       // os provides access to environment variables
	"strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and TTLs.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port for the liveness/operator endpoints
	GuildID           string // identifier of the community server this instance gates
	DBUser            string // database username (roster directory)
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	JWTSecret         string // secret used to sign operator API tokens
	AccessTTLMin      int    // operator access token time‑to‑live in minutes
	AdminEmail        string // operator login email
	AdminPasswordHash string // bcrypt hash of the operator password
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),                 // environment (dev/test/prod)
		Port:              must("APP_PORT"),                // port to bind the HTTP server
		GuildID:           must("GUILD_ID"),                // target community server
		DBUser:            must("DB_USER"),                 // database user
		DBPass:            os.Getenv("DB_PASS"),            // database password (empty allowed)
		DBHost:            must("DB_HOST"),                 // database host
		DBPort:            must("DB_PORT"),                 // database port
		DBName:            must("DB_NAME"),                 // database name
		JWTSecret:         must("JWT_SECRET"),              // secret for operator tokens
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"), // TTL for operator tokens in minutes
		AdminEmail:        must("ADMIN_EMAIL"),             // operator login
		AdminPasswordHash: must("ADMIN_PASSWORD_HASH"),     // bcrypt hash for operator login
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
