package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/farmcycle/parameter"
)

// DefaultPath is the settings file used when -config is not given
const DefaultPath = "farmcycle.toml"

// Environment overrides, applied after the file is read
const (
	EnvDaySeconds   = "FARMCYCLE_DAY_SECONDS"
	EnvSeed         = "FARMCYCLE_SEED"
	EnvDataRoot     = "FARMCYCLE_DATA_ROOT"
	EnvHTTPAddr     = "FARMCYCLE_HTTP_ADDR"
	EnvAudioEnabled = "FARMCYCLE_AUDIO_ENABLED"
)

// Planting is a crop placed when the farm starts
type Planting struct {
	Crop string  `toml:"crop"`
	X    float64 `toml:"x"`
	Y    float64 `toml:"y"`
	Z    float64 `toml:"z"`
}

// Config holds host settings
type Config struct {
	DaySeconds   float64    `toml:"day_seconds"`
	Seed         int64      `toml:"seed"`
	DataRoot     string     `toml:"data_root"`
	AssetRoot    string     `toml:"asset_root"`
	HTTPAddr     string     `toml:"http_addr"`
	JournalPath  string     `toml:"journal_path"`
	AudioEnabled bool       `toml:"audio_enabled"`
	AudioVolume  int        `toml:"audio_volume"`
	Plantings    []Planting `toml:"plantings"`
}

// Default returns the settings written on first run
func Default() *Config {
	return &Config{
		DaySeconds:   parameter.DaySeconds,
		Seed:         0,
		DataRoot:     parameter.AssetRoot,
		AssetRoot:    parameter.AssetRoot,
		HTTPAddr:     "",
		JournalPath:  filepath.Join("data", "journal.db"),
		AudioEnabled: true,
		AudioVolume:  70,
		Plantings: []Planting{
			{Crop: "corn", X: 0, Z: 0},
			{Crop: "beets", X: 3, Z: 0},
		},
	}
}

// DayLength returns DaySeconds as a duration
func (c *Config) DayLength() time.Duration {
	return time.Duration(c.DaySeconds * float64(time.Second))
}

// Validate rejects settings the engine cannot run with
func (c *Config) Validate() error {
	if c.DaySeconds <= 0 {
		return fmt.Errorf("day_seconds must be positive, got %v", c.DaySeconds)
	}
	if c.AudioVolume < 0 || c.AudioVolume > 100 {
		return fmt.Errorf("audio_volume must be 0-100, got %d", c.AudioVolume)
	}
	for i, p := range c.Plantings {
		if p.Crop == "" {
			return fmt.Errorf("planting %d has no crop", i)
		}
	}
	return nil
}

// Load reads path, writing the defaults there first when it does not exist
// Environment overrides are applied last
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			log.Printf("[WARN] could not write default config: %v", err)
		} else {
			log.Printf("[INFO] wrote default config to %s", path)
		}
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		// Plantings come only from the file when it exists
		cfg.Plantings = nil
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as TOML, creating parent directories
func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDaySeconds); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDaySeconds, err)
		}
		cfg.DaySeconds = f
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = n
	}
	if v := os.Getenv(EnvDataRoot); v != "" {
		cfg.DataRoot = v
	}
	if v := os.Getenv(EnvHTTPAddr); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAudioEnabled, err)
		}
		cfg.AudioEnabled = b
	}
	return nil
}
