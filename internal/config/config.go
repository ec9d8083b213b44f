// Package config loads server configuration from flags and the environment.
package config

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// DBPath is the SQLite database file path.
	DBPath string

	// AdminUsername and AdminPassword protect the admin dashboard.
	// The password must be provided; there is no default.
	AdminUsername string
	AdminPassword string
}

// Load parses flags with environment fallback. A .env file in the working
// directory is loaded first if present.
func Load(args []string) (Config, error) {
	_ = godotenv.Load() // best effort, env vars win anyway

	var cfg Config

	fs := flag.NewFlagSet("intake-server", flag.ContinueOnError)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DBPath, "d", "", "SQLite database path")
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Admin username (prefer env)")
	fs.StringVar(&cfg.AdminPassword, "admin-pass", "", "Admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8080
		}
	}

	if cfg.DBPath == "" {
		cfg.DBPath = os.Getenv("DB_PATH")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./data/applications.db"
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}

	// The dashboard must never run unprotected.
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if cfg.AdminPassword == "" {
		return Config{}, errors.New("ADMIN_PASSWORD required")
	}

	return cfg, nil
}
