package config

import "flag"

// Overrides are the command line values that take precedence over a
// settings file. Zero values and Humans < 0 leave the file's value alone.
type Overrides struct {
	Settings  string
	Map       string
	Humans    int
	Win       string
	Limit     int
	Framerate int
	LogLevel  string
}

// RegisterFlags binds the shared match flags on fs.
func (o *Overrides) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Settings, "settings", "", "settings YAML file")
	fs.StringVar(&o.Map, "map", "", "builtin map name or map file path")
	fs.IntVar(&o.Humans, "humans", -1, "keyboard-driven players (0, 1 or 2)")
	fs.StringVar(&o.Win, "win", "", "win condition: first-to, best-of or time")
	fs.IntVar(&o.Limit, "limit", 0, "points, rounds or seconds for the win condition")
	fs.IntVar(&o.Framerate, "framerate", 0, "simulation frames per second")
	fs.StringVar(&o.LogLevel, "log-level", "", "debug, info, warn or error")
}

// Load reads the settings file named by the overrides, applies the
// remaining overrides and validates the result.
func (o Overrides) Load() (Settings, error) {
	s, err := LoadSettings(o.Settings)
	if err != nil {
		return s, err
	}
	s = o.Apply(s)
	return s, s.Validate()
}

// Apply copies every set override onto s. Changing the win mode without a
// limit resets the limit to the mode's default.
func (o Overrides) Apply(s Settings) Settings {
	if o.Map != "" {
		s.Map = o.Map
	}
	if o.Humans >= 0 {
		s.Humans = o.Humans
	}
	if o.Win != "" && WinMode(o.Win) != s.Win.Mode {
		s.Win = WinCondition{Mode: WinMode(o.Win), Limit: WinMode(o.Win).DefaultLimit()}
	}
	if o.Limit > 0 {
		s.Win.Limit = o.Limit
	}
	if o.Framerate > 0 {
		s.Framerate = o.Framerate
	}
	if o.LogLevel != "" {
		s.LogLevel = o.LogLevel
	}
	return s
}
