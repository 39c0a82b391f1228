package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./pictx.db" {
			t.Errorf("expected database path ./pictx.db, got %s", config.Database.Path)
		}
		if config.Gallery.AllPhotosPath != "/all_photos.json" {
			t.Errorf("expected all photos path /all_photos.json, got %s", config.Gallery.AllPhotosPath)
		}
		if config.Viewer.NarrowWidth != 600 {
			t.Errorf("expected narrow width 600, got %d", config.Viewer.NarrowWidth)
		}
		if config.Viewer.HintDuration() != 2*time.Second {
			t.Errorf("expected hint duration 2s, got %v", config.Viewer.HintDuration())
		}
		if config.Tracker.RevealDelay() != 50*time.Millisecond {
			t.Errorf("expected reveal delay 50ms, got %v", config.Tracker.RevealDelay())
		}
		if config.Pagination.FirstPage != 2 {
			t.Errorf("expected first page 2, got %d", config.Pagination.FirstPage)
		}
		if config.Upload.MaxFileMB != 100 {
			t.Errorf("expected max file size 100MB, got %d", config.Upload.MaxFileMB)
		}
		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[gallery]
base_url = "https://photos.example.com"
csrf_token = "tok"

[viewer]
narrow_width = 480

[upload]
max_file_mb = 25
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Gallery.BaseURL != "https://photos.example.com" {
			t.Errorf("expected base url override, got %s", config.Gallery.BaseURL)
		}
		if config.Viewer.NarrowWidth != 480 {
			t.Errorf("expected narrow width 480, got %d", config.Viewer.NarrowWidth)
		}
		if config.Upload.MaxFileMB != 25 {
			t.Errorf("expected max file size 25, got %d", config.Upload.MaxFileMB)
		}
		if config.Viewer.SwipeThreshold != 50 {
			t.Errorf("expected unset swipe threshold to keep default 50, got %d", config.Viewer.SwipeThreshold)
		}
	})

	t.Run("LoadConfig Invalid", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[tracker]\nthreshold = 2.0\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("SaveConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		config := DefaultConfig()
		config.Gallery.Cookie = "csrftoken=abc"
		config.Gallery.CSRFToken = "abc"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if loaded.Gallery.CSRFToken != "abc" || loaded.Gallery.Cookie != "csrftoken=abc" {
			t.Errorf("session fields not persisted: %+v", loaded.Gallery)
		}
	})
}
