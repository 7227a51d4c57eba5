// Package timetable computes slot times for a fixed weekly class/work
// schedule: a day starts at a configured time, slots of equal length
// follow each other separated by short breaks, and the lunch window is
// skipped entirely. Exception date ranges mark holiday periods during
// which the timetable does not apply.
package timetable

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DateRange is an inclusive calendar-date interval, both bounds in
// YYYY-MM-DD form.
type DateRange struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// Config is the fixed daily schedule configuration.
type Config struct {
	// DayStart is the start of the first slot, "HH:mm".
	DayStart string `yaml:"day_start" json:"day_start"`

	// LunchStart / LunchEnd bound the lunch window, "HH:mm". No slot
	// starts or ends strictly inside [LunchStart, LunchEnd).
	LunchStart string `yaml:"lunch_start" json:"lunch_start"`
	LunchEnd   string `yaml:"lunch_end" json:"lunch_end"`

	// CellDuration is the length of one slot in minutes.
	CellDuration int `yaml:"cell_duration" json:"cell_duration"`
	// BreakDuration is the pause between consecutive slots in minutes.
	BreakDuration int `yaml:"break_duration" json:"break_duration"`

	// Grid shape.
	DaysPerWeek int `yaml:"days_per_week" json:"days_per_week"`
	SlotsPerDay int `yaml:"slots_per_day" json:"slots_per_day"`

	// Exceptions lists date ranges (holidays, no-class periods) during
	// which the timetable does not apply.
	Exceptions []DateRange `yaml:"exceptions" json:"exceptions"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		DayStart:      "09:00",
		LunchStart:    "12:00",
		LunchEnd:      "13:00",
		CellDuration:  50,
		BreakDuration: 10,
		DaysPerWeek:   5,
		SlotsPerDay:   6,
		Exceptions:    []DateRange{},
	}
}

// Normalize fills missing or invalid values with defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if _, ok := clockToMinutes(c.DayStart); !ok {
		c.DayStart = def.DayStart
	}
	lunchStart, startOK := clockToMinutes(c.LunchStart)
	lunchEnd, endOK := clockToMinutes(c.LunchEnd)
	if !startOK || !endOK || lunchEnd < lunchStart {
		c.LunchStart = def.LunchStart
		c.LunchEnd = def.LunchEnd
	}
	if c.CellDuration <= 0 {
		c.CellDuration = def.CellDuration
	}
	if c.BreakDuration < 0 {
		c.BreakDuration = def.BreakDuration
	}
	if c.DaysPerWeek <= 0 {
		c.DaysPerWeek = def.DaysPerWeek
	}
	if c.SlotsPerDay <= 0 {
		c.SlotsPerDay = def.SlotsPerDay
	}
	if c.Exceptions == nil {
		c.Exceptions = []DateRange{}
	}
}

// Load loads configuration from the given YAML path. A missing file is
// created with defaults; an existing file is read, unmarshaled and
// normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the configuration to path atomically (temp file plus
// rename), creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".timetable-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
