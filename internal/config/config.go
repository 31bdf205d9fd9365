package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Stock thresholds are configuration rather
// than constants so that the tier boundaries and the replenishment
// advisory level can be tuned without a rebuild.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	LowStockMin    int    // quantities below this are LOW and trigger replenishment advisories
	MediumStockMin int    // quantities below this (but >= LowStockMin) are MEDIUM
	ReportDir      string // directory where report artifacts are written
}

// Load reads configuration values from environment variables and returns
// a Config.  Database variables are required and missing values cause the
// program to exit with a fatal log message; the rest fall back to
// sensible defaults so the one-shot CLIs can run with minimal setup.
func Load() Config {
	return Config{
		Env:            envStr("APP_ENV", "dev"),
		Port:           envStr("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		LowStockMin:    envInt("STOCK_LOW_THRESHOLD", 10),
		MediumStockMin: envInt("STOCK_MEDIUM_THRESHOLD", 20),
		ReportDir:      envStr("REPORT_DIR", "reports"),
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
