package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfigLoadSave(t *testing.T) {
	// Create a temporary directory to act as the user's home directory
	tempDir, err := os.MkdirTemp("", "busmatectl-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir) // cleanup

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}

	// 2. Modify and Save the config
	cfg.HomeStopID = "stop-042"
	cfg.HomeStopName = "Kandy"
	cfg.DefaultOriginID = "stop-001"
	cfg.DefaultOrigin = "Colombo Fort"
	cfg.FavoriteStopIDs = []string{"stop-001", "stop-042"}
	cfg.AccentColor = "205"

	err = Save(cfg)
	if err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify the file was actually created
	configPath := filepath.Join(tempDir, ".busmatectl.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
}

func TestFavorites(t *testing.T) {
	cfg := &AppConfig{}

	if cfg.IsFavorite("stop-042") {
		t.Errorf("expected empty config to have no favorites")
	}

	if !cfg.AddFavorite("stop-042") {
		t.Fatalf("expected first add to succeed")
	}
	if !cfg.IsFavorite("stop-042") {
		t.Errorf("expected stop-042 to be a favorite after adding")
	}

	if cfg.AddFavorite("stop-042") {
		t.Errorf("expected duplicate add to be rejected")
	}
	if len(cfg.FavoriteStopIDs) != 1 {
		t.Errorf("expected exactly one favorite, got %d", len(cfg.FavoriteStopIDs))
	}

	cfg.AddFavorite("stop-001")
	if !cfg.IsFavorite("stop-001") || !cfg.IsFavorite("stop-042") {
		t.Errorf("expected both favorites retained, got %v", cfg.FavoriteStopIDs)
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "busmatectl-config-err-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	configPath := filepath.Join(tempDir, ".busmatectl.json")
	err = os.WriteFile(configPath, []byte("invalid json { content"), 0644)
	if err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	_, err = Load()
	if err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}
