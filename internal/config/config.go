// Package config gathers the server's environment-driven settings in one place.
//
// Values come from the process environment; main loads a .env file with
// godotenv before calling Load, so local development can keep secrets out of
// the shell. Unset or empty variables fall back to the defaults below.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the resolved server configuration.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string

	// Accounts and cookies.
	JWTSecret      string
	JWTExpiresDays int
	CookieName     string
	ClientOrigin   string
	Production     bool

	// Target words.
	WordlistFile string
	DailySalt    string

	// Text generation.
	OpenAIKey         string
	OpenAIBaseURL     string
	Model             string
	MaxTokens         int
	GenerationTimeout time.Duration

	RequestTimeout time.Duration
}

// Load reads the environment. A malformed number or duration is an error
// rather than a silent fallback.
func Load() (Config, error) {
	c := Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBPath:        getEnv("DB_PATH", "./data/golf.db"),
		JWTSecret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
		CookieName:    getEnv("COOKIE_NAME", "golf_token"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:    os.Getenv("NODE_ENV") == "production",
		WordlistFile:  os.Getenv("WORDLIST_FILE"),
		DailySalt:     getEnv("DAILY_SALT", "local_dev_salt"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		Model:         getEnv("GENERATION_MODEL", "gpt-3.5-turbo-instruct"),
	}

	var err error
	if c.JWTExpiresDays, err = envInt("JWT_EXPIRES_DAYS", 14); err != nil {
		return Config{}, err
	}
	if c.MaxTokens, err = envInt("GENERATION_MAX_TOKENS", 40); err != nil {
		return Config{}, err
	}
	if c.GenerationTimeout, err = envDuration("GENERATION_TIMEOUT", 20*time.Second); err != nil {
		return Config{}, err
	}
	if c.RequestTimeout, err = envDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + c.Port }

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return d, nil
}
