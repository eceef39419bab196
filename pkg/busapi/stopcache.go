package busapi

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// stopCacheDuration determines how long stop search results are kept before refreshing
const stopCacheDuration = 24 * time.Hour

// stopCacheEntry represents the disk data format
type stopCacheEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Stops     []StopSummary `json:"stops"`
}

func stopCachePath(query string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}

	cacheDir := filepath.Join(homeDir, ".busmatectl_cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("could not create cache directory: %w", err)
	}

	// Build a safe filesystem name from the query text
	slug := strings.ToLower(strings.TrimSpace(query))
	slug = strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, slug)

	return filepath.Join(cacheDir, "stops_"+slug+".json"), nil
}

// readStopCache checks if a valid, unexpired cache exists for this query
func readStopCache(query string) ([]StopSummary, bool) {
	path, err := stopCachePath(query)
	if err != nil {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false // File doesn't exist or can't be read
	}

	var entry stopCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.Timestamp) > stopCacheDuration {
		return nil, false // Expired
	}

	return entry.Stops, true
}

// writeStopCache saves the search results to disk
func writeStopCache(query string, stops []StopSummary) {
	path, err := stopCachePath(query)
	if err != nil {
		return
	}

	entry := stopCacheEntry{
		Timestamp: time.Now(),
		Stops:     stops,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}

	_ = os.WriteFile(path, data, 0644)
}
