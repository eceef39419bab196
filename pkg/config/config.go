package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	HomeStopID      string   `json:"home_stop_id,omitempty"`
	HomeStopName    string   `json:"home_stop_name,omitempty"`
	DefaultOriginID string   `json:"default_origin_id,omitempty"`
	DefaultOrigin   string   `json:"default_origin,omitempty"`
	FavoriteStopIDs []string `json:"favorite_stop_ids,omitempty"`
	AccentColor     string   `json:"accent_color,omitempty"`
}

// AddFavorite records a stop id in the favorites list.
// Returns false when the stop is already a favorite.
func (c *AppConfig) AddFavorite(stopID string) bool {
	if c.IsFavorite(stopID) {
		return false
	}
	c.FavoriteStopIDs = append(c.FavoriteStopIDs, stopID)
	return true
}

// IsFavorite reports whether the stop id is in the favorites list
func (c *AppConfig) IsFavorite(stopID string) bool {
	for _, id := range c.FavoriteStopIDs {
		if id == stopID {
			return true
		}
	}
	return false
}

// getConfigPath returns the absolute path to ~/.busmatectl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".busmatectl.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just return an empty default configuration
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
