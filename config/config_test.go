package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_WritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "farm.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DaySeconds != Default().DaySeconds || len(cfg.Plantings) != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default file not written: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.JournalPath != cfg.JournalPath || again.Plantings[1].Crop != "beets" || again.Plantings[1].X != 3 {
		t.Errorf("reloaded = %+v", again)
	}
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.toml")
	src := `
day_seconds = 2.5
seed = 99
http_addr = ":9090"

[[plantings]]
crop = "radish"
x = 1.0
z = -1.0
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DayLength() != 2500*time.Millisecond || cfg.Seed != 99 || cfg.HTTPAddr != ":9090" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Plantings) != 1 || cfg.Plantings[0].Crop != "radish" {
		t.Errorf("plantings = %+v", cfg.Plantings)
	}
	// Unset keys keep defaults
	if cfg.AudioVolume != 70 {
		t.Errorf("audio volume = %d", cfg.AudioVolume)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.toml")
	if err := os.WriteFile(path, []byte("day_seconds = = 3"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed config accepted")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.toml")
	t.Setenv(EnvDaySeconds, "1")
	t.Setenv(EnvSeed, "7")
	t.Setenv(EnvAudioEnabled, "false")
	t.Setenv(EnvHTTPAddr, "127.0.0.1:0")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DaySeconds != 1 || cfg.Seed != 7 || cfg.AudioEnabled || cfg.HTTPAddr != "127.0.0.1:0" {
		t.Errorf("cfg = %+v", cfg)
	}

	t.Setenv(EnvSeed, "seven")
	if _, err := Load(path); err == nil {
		t.Error("bad seed override accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero day", func(c *Config) { c.DaySeconds = 0 }, false},
		{"loud", func(c *Config) { c.AudioVolume = 101 }, false},
		{"nameless planting", func(c *Config) { c.Plantings = append(c.Plantings, Planting{}) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}
