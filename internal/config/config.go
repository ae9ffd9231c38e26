package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"labrotation/internal/scheduler"
	"labrotation/pkg/model"
)

// Config is the external configuration of a scheduling run: catalog file
// locations, roster size and the engine tunables that are policy rather than
// contract.
type Config struct {
	LabsFile      string `json:"labsFile"`
	RoomsFile     string `json:"roomsFile"`
	ExportFile    string `json:"exportFile"`
	Delimiter     string `json:"delimiter"`
	TotalTrainees int    `json:"totalTrainees"`

	RotationDays int   `json:"rotationDays"`
	Seed         int64 `json:"seed"`

	// Day shape, HH:MM.
	DayStart   string `json:"dayStart"`
	DayEnd     string `json:"dayEnd"`
	LunchStart string `json:"lunchStart"`
	LunchEnd   string `json:"lunchEnd"`

	SuccessThreshold    float64 `json:"successThreshold"`
	FixedGroupThreshold float64 `json:"fixedGroupThreshold"`
}

// Load reads the configuration file (yaml or json by extension) with
// environment overrides via LR_ variables, e.g. LR_LABSFILE.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("LR_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "lr_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills unset fields with the engine defaults. Zero values count
// as unset, so the thresholds cannot be configured to exactly 0; the lowest
// effective setting is any value above it.
func (c *Config) SetDefaults() {
	def := scheduler.NewDefaultConfiguration()
	if c.ExportFile == "" {
		c.ExportFile = "schedule.csv"
	}
	if c.Delimiter == "" {
		c.Delimiter = ","
	}
	if c.RotationDays == 0 {
		c.RotationDays = def.RotationDays
	}
	if c.DayStart == "" {
		c.DayStart = model.FormatClock(def.DayStart)
	}
	if c.DayEnd == "" {
		c.DayEnd = model.FormatClock(def.DayEnd)
	}
	if c.LunchStart == "" {
		c.LunchStart = model.FormatClock(def.LunchStart)
	}
	if c.LunchEnd == "" {
		c.LunchEnd = model.FormatClock(def.LunchEnd)
	}
	if c.SuccessThreshold == 0 {
		c.SuccessThreshold = def.SuccessThreshold
	}
	if c.FixedGroupThreshold == 0 {
		c.FixedGroupThreshold = def.FixedGroupThreshold
	}
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.LabsFile == "" {
		return fmt.Errorf("labsFile is required")
	}
	if c.RoomsFile == "" {
		return fmt.Errorf("roomsFile is required")
	}
	if c.TotalTrainees < 1 {
		return fmt.Errorf("totalTrainees must be at least 1, got %d", c.TotalTrainees)
	}
	if c.RotationDays < 1 {
		return fmt.Errorf("rotationDays must be at least 1, got %d", c.RotationDays)
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	for _, clock := range []string{c.DayStart, c.DayEnd, c.LunchStart, c.LunchEnd} {
		if _, err := model.ParseClock(clock); err != nil {
			return err
		}
	}
	if c.SuccessThreshold < 0 || c.SuccessThreshold > 1 {
		return fmt.Errorf("successThreshold must be in [0, 1], got %f", c.SuccessThreshold)
	}
	if c.FixedGroupThreshold < 0 || c.FixedGroupThreshold > 1 {
		return fmt.Errorf("fixedGroupThreshold must be in [0, 1], got %f", c.FixedGroupThreshold)
	}
	return nil
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	return []rune(c.Delimiter)[0]
}

// Scheduler builds the engine configuration from the defaults plus the
// externally tunable fields.
func (c *Config) Scheduler() *scheduler.Configuration {
	cfg := scheduler.NewDefaultConfiguration()
	cfg.RotationDays = c.RotationDays
	cfg.DayStart, _ = model.ParseClock(c.DayStart)
	cfg.DayEnd, _ = model.ParseClock(c.DayEnd)
	cfg.LunchStart, _ = model.ParseClock(c.LunchStart)
	cfg.LunchEnd, _ = model.ParseClock(c.LunchEnd)
	cfg.SuccessThreshold = c.SuccessThreshold
	cfg.FixedGroupThreshold = c.FixedGroupThreshold
	return cfg
}
