package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Gallery    GalleryConfig    `toml:"gallery"`
	Viewer     ViewerConfig     `toml:"viewer"`
	Tracker    TrackerConfig    `toml:"tracker"`
	Pagination PaginationConfig `toml:"pagination"`
	Upload     UploadConfig     `toml:"upload"`
	Database   DatabaseConfig   `toml:"database"`
}

// GalleryConfig locates the photo listing endpoints.
type GalleryConfig struct {
	BaseURL           string  `toml:"base_url"`
	AllPhotosPath     string  `toml:"all_photos_path"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	CSRFToken         string  `toml:"csrf_token"`
	Cookie            string  `toml:"cookie"`
}

// ViewerConfig contains full-screen viewer settings. Widths and thresholds are logical pixels.
type ViewerConfig struct {
	NarrowWidth    int `toml:"narrow_width"`
	SwipeThreshold int `toml:"swipe_threshold"`
	HintDurationMS int `toml:"hint_duration_ms"`
}

// TrackerConfig contains lazy-reveal settings.
type TrackerConfig struct {
	RootMargin    int     `toml:"root_margin"`
	Threshold     float64 `toml:"threshold"`
	RevealDelayMS int     `toml:"reveal_delay_ms"`
}

// PaginationConfig contains scroll-triggered page fetch settings.
type PaginationConfig struct {
	TriggerRatio float64 `toml:"trigger_ratio"`
	FirstPage    int     `toml:"first_page"`
}

// UploadConfig contains upload form settings.
type UploadConfig struct {
	Action        string `toml:"action"`
	MaxFileMB     int64  `toml:"max_file_mb"`
	ThumbnailSize int    `toml:"thumbnail_size"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// HintDuration returns the navigation hint display interval.
func (c ViewerConfig) HintDuration() time.Duration {
	return time.Duration(c.HintDurationMS) * time.Millisecond
}

// RevealDelay returns the delay between a card intersecting and being revealed.
func (c TrackerConfig) RevealDelay() time.Duration {
	return time.Duration(c.RevealDelayMS) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate reports the first out-of-range setting wrapped in [ErrInvalidConfig].
func (c *Config) Validate() error {
	switch {
	case c.Gallery.BaseURL == "":
		return fmt.Errorf("%w: gallery.base_url is required", ErrInvalidConfig)
	case c.Gallery.RequestsPerSecond < 0:
		return fmt.Errorf("%w: gallery.requests_per_second must not be negative", ErrInvalidConfig)
	case c.Viewer.NarrowWidth <= 0:
		return fmt.Errorf("%w: viewer.narrow_width must be positive", ErrInvalidConfig)
	case c.Viewer.SwipeThreshold <= 0:
		return fmt.Errorf("%w: viewer.swipe_threshold must be positive", ErrInvalidConfig)
	case c.Viewer.HintDurationMS < 0:
		return fmt.Errorf("%w: viewer.hint_duration_ms must not be negative", ErrInvalidConfig)
	case c.Tracker.RootMargin < 0:
		return fmt.Errorf("%w: tracker.root_margin must not be negative", ErrInvalidConfig)
	case c.Tracker.Threshold < 0 || c.Tracker.Threshold > 1:
		return fmt.Errorf("%w: tracker.threshold must be within [0, 1]", ErrInvalidConfig)
	case c.Pagination.TriggerRatio <= 0 || c.Pagination.TriggerRatio > 1:
		return fmt.Errorf("%w: pagination.trigger_ratio must be within (0, 1]", ErrInvalidConfig)
	case c.Pagination.FirstPage < 1:
		return fmt.Errorf("%w: pagination.first_page must be at least 1", ErrInvalidConfig)
	case c.Upload.MaxFileMB <= 0:
		return fmt.Errorf("%w: upload.max_file_mb must be positive", ErrInvalidConfig)
	case c.Upload.ThumbnailSize <= 0:
		return fmt.Errorf("%w: upload.thumbnail_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML, replacing any existing file.
func SaveConfig(path string, config *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
