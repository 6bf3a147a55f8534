// apps/go-server/internal/config/config.go
//
// Process configuration read from the environment.
// main loads an optional .env file (godotenv) before calling Load.
//
// Environment variables (defaults in brackets):
//   PORT [5175], LOG_LEVEL [info], DB_PATH [./data/app.db],
//   JWT_SECRET [dev_secret_change_me], JWT_EXPIRES_DAYS [14],
//   COOKIE_NAME [fifteen_token], CLIENT_ORIGIN [http://localhost:5173],
//   DAILY_SALT [local_dev_salt], NODE_ENV [development].

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port         string
	LogLevel     string
	DBPath       string
	JWTSecret    string
	JWTTTL       time.Duration
	CookieName   string
	ClientOrigin string
	DailySalt    string
	Production   bool
}

// Load reads the environment, first merging any of the given .env files that
// exist. Variables already set in the environment win.
func Load(envFiles ...string) Config {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("file", f).Msg("load env file")
		}
	}
	cfg := Config{
		Port:         Get("PORT", "5175"),
		LogLevel:     Get("LOG_LEVEL", "info"),
		DBPath:       Get("DB_PATH", "./data/app.db"),
		JWTSecret:    Get("JWT_SECRET", "dev_secret_change_me"),
		JWTTTL:       time.Duration(GetInt("JWT_EXPIRES_DAYS", 14)) * 24 * time.Hour,
		CookieName:   Get("COOKIE_NAME", "fifteen_token"),
		ClientOrigin: Get("CLIENT_ORIGIN", "http://localhost:5173"),
		DailySalt:    Get("DAILY_SALT", "local_dev_salt"),
		Production:   os.Getenv("NODE_ENV") == "production",
	}
	if cfg.Production && cfg.JWTSecret == "dev_secret_change_me" {
		log.Warn().Msg("JWT_SECRET is the development default")
	}
	return cfg
}

// Get returns the value of k or def if unset/empty.
func Get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// GetInt is Get for integers; unparsable values fall back to def.
func GetInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}
