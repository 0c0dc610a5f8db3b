package config

import (
	"fmt"
	"os"
	"strings"
)

// WinMode selects how a match ends.
type WinMode string

const (
	WinFirstTo WinMode = "first-to" // first player to Limit points
	WinBestOf  WinMode = "best-of"  // after Limit rounds
	WinTime    WinMode = "time"     // after Limit seconds
)

// DefaultLimit is the limit used when a settings file names a mode but no limit.
func (m WinMode) DefaultLimit() int {
	switch m {
	case WinTime:
		return 10
	default:
		return 5
	}
}

// WinCondition is the match-ending rule.
type WinCondition struct {
	Mode  WinMode `yaml:"mode"`
	Limit int     `yaml:"limit"`
}

func (wc WinCondition) String() string {
	switch wc.Mode {
	case WinFirstTo:
		return fmt.Sprintf("first to %d points", wc.Limit)
	case WinBestOf:
		return fmt.Sprintf("best of %d rounds", wc.Limit)
	case WinTime:
		return fmt.Sprintf("%d second time limit", wc.Limit)
	default:
		return string(wc.Mode)
	}
}

// Settings are the match parameters shared by every front end.
type Settings struct {
	Map       string       `yaml:"map"`
	Framerate int          `yaml:"framerate"`
	Win       WinCondition `yaml:"win"`
	Humans    int          `yaml:"humans"` // keyboard-driven tanks, taken from the first start positions
	LogLevel  string       `yaml:"log_level"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Map:       "map0",
		Framerate: 50,
		Win:       WinCondition{Mode: WinFirstTo, Limit: WinFirstTo.DefaultLimit()},
		LogLevel:  "info",
	}
}

// LoadSettings reads a settings file over the defaults. An empty path
// returns the defaults.
func LoadSettings(p string) (Settings, error) {
	s := DefaultSettings()
	if p == "" {
		return s, nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	// The win block is decoded from scratch so a mode given without a
	// limit picks up that mode's default.
	s.Win = WinCondition{}
	if err := loadYAML(b, &s); err != nil {
		return s, fmt.Errorf("decode settings %s: %w", p, err)
	}
	if s.Win.Mode == "" {
		s.Win.Mode = WinFirstTo
	}
	if s.Win.Limit == 0 {
		s.Win.Limit = s.Win.Mode.DefaultLimit()
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", p, err)
	}
	return s, nil
}

// Validate rejects settings no match can run with.
func (s Settings) Validate() error {
	if s.Framerate <= 0 {
		return fmt.Errorf("invalid settings: framerate %d", s.Framerate)
	}
	switch s.Win.Mode {
	case WinFirstTo, WinBestOf, WinTime:
	default:
		return fmt.Errorf("invalid settings: unknown win mode %q", s.Win.Mode)
	}
	if s.Win.Limit <= 0 {
		return fmt.Errorf("invalid settings: win limit %d", s.Win.Limit)
	}
	if s.Humans < 0 || s.Humans > 2 {
		return fmt.Errorf("invalid settings: humans must be 0, 1 or 2, got %d", s.Humans)
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid settings: log level %q", s.LogLevel)
	}
	return nil
}
