// Package config loads server settings: built-in defaults, then an optional
// JSON file, then environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Rule set ids, matching the game registry.
const (
	Warlords = "warlords"
	FreePlay = "free"
)

// Config is the process configuration.
type Config struct {
	Addr    string   `json:"addr"`
	DBPath  string   `json:"db_path"`
	WebDir  string   `json:"web_dir"`
	Welcome string   `json:"welcome"`
	Slots   int      `json:"slots"`
	Rooms   []string `json:"rooms"`
}

// Default is nine warlords rooms followed by one free-play room, six seats
// each.
func Default() Config {
	return Config{
		Addr:    ":7681",
		DBPath:  "kibitzer.db",
		Welcome: "<p>kibitzer",
		Slots:   6,
		Rooms: []string{
			Warlords, Warlords, Warlords, Warlords, Warlords,
			Warlords, Warlords, Warlords, Warlords, FreePlay,
		},
	}
}

// Load returns the defaults overlaid with the JSON file at path, if path is
// set, and then with PORT, DB_PATH and WEB_DIR from the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}
	if p := os.Getenv("PORT"); p != "" {
		cfg.Addr = ":" + p
	}
	if p := os.Getenv("DB_PATH"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("WEB_DIR"); p != "" {
		cfg.WebDir = p
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the room layout. At least one room must play free so
// there is always a lobby.
func (c Config) Validate() error {
	if len(c.Rooms) == 0 {
		return errors.New("config: no rooms")
	}
	if c.Slots < 1 {
		return fmt.Errorf("config: slots must be positive, got %d", c.Slots)
	}
	free := false
	for i, id := range c.Rooms {
		switch id {
		case FreePlay:
			free = true
		case Warlords:
		default:
			return fmt.Errorf("config: room %d: unknown rules %q", i+1, id)
		}
	}
	if !free {
		return errors.New("config: at least one room must use the free rules")
	}
	return nil
}
