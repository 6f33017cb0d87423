package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"todolist/internal/todo"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "todo.db"
	DefaultLogName        = "todo.log"
	appDirName            = "todolist"
)

// Visual variants of the list view.
const (
	VariantCard    = "card"
	VariantCompact = "compact"
)

var ErrUnknownVariant = errors.New("unknown variant")

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	FilterAll       string `toml:"filter_all"`
	FilterActive    string `toml:"filter_active"`
	FilterCompleted string `toml:"filter_completed"`
	CycleFilter     string `toml:"cycle_filter"`
	Theme           string `toml:"theme"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	DefaultFilter string `toml:"default_filter"`
	Variant       string `toml:"variant"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns the per-user config file location, or a file in
// the working directory when no user config dir is available.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist yet. Data files default to the config's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig(filepath.Dir(path))
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults(filepath.Dir(path))
	return cfg, cfg.Validate()
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if _, err := todo.ParseFilter(c.DefaultFilter); err != nil {
		errs = append(errs, fmt.Errorf("default_filter: %w", err))
	}
	switch strings.ToLower(c.Variant) {
	case VariantCard, VariantCompact:
	default:
		errs = append(errs, fmt.Errorf("variant: %w: %q", ErrUnknownVariant, c.Variant))
	}
	return errors.Join(errs...)
}

func (c *Config) fillDefaults(dir string) {
	def := defaultConfig(dir)
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.Variant == "" {
		c.Variant = def.Variant
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	k, d := &c.Keys, def.Keys
	for _, f := range []struct {
		v   *string
		def string
	}{
		{&k.Quit, d.Quit}, {&k.Add, d.Add}, {&k.Up, d.Up}, {&k.Down, d.Down},
		{&k.Toggle, d.Toggle}, {&k.Delete, d.Delete}, {&k.Confirm, d.Confirm},
		{&k.Cancel, d.Cancel}, {&k.FilterAll, d.FilterAll},
		{&k.FilterActive, d.FilterActive}, {&k.FilterCompleted, d.FilterCompleted},
		{&k.CycleFilter, d.CycleFilter}, {&k.Theme, d.Theme},
	} {
		if *f.v == "" {
			*f.v = f.def
		}
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		DBPath:        filepath.Join(dir, DefaultDBName),
		DefaultFilter: "all",
		Variant:       VariantCard,
		LogPath:       filepath.Join(dir, DefaultLogName),
		LogLevel:      "info",
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Confirm:         "enter",
			Cancel:          "esc",
			FilterAll:       "1",
			FilterActive:    "2",
			FilterCompleted: "3",
			CycleFilter:     "f",
			Theme:           "t",
		},
	}
}
