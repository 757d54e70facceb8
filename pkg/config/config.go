// Package config resolves planner settings from the environment, with an
// optional .env file for development setups.
package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

// Config holds everything the planner reads from the environment.
type Config struct {
	// User scopes the planner document; defaults to "me".
	User string
	// Home is where local data and backups live.
	Home string
	// MongoURI, when set, switches storage to the remote backend.
	MongoURI string
	// Debug enables verbose logging.
	Debug bool
}

// New loads the configuration once per process. A .env file in the
// working directory is honored when present and silently skipped when
// not.
func New() *Config {
	once.Do(func() {
		_ = godotenv.Load()

		home := os.Getenv("PLANNER_HOME")
		if home == "" {
			if dir, err := os.UserHomeDir(); err == nil {
				home = filepath.Join(dir, ".config", "gentle-planner")
			} else {
				home = "."
			}
		}

		user := os.Getenv("PLANNER_USER")
		if user == "" {
			user = "me"
		}

		instance = &Config{
			User:     user,
			Home:     home,
			MongoURI: os.Getenv("PLANNER_MONGO_URI"),
			Debug:    os.Getenv("PLANNER_DEBUG") != "",
		}
	})
	return instance
}
