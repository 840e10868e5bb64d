package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment overrides applied after the file
const (
	EnvAudioEnabled = "GTHROWER_AUDIO_ENABLED"
	EnvAudioVolume  = "GTHROWER_VOLUME"
	EnvGlyph        = "GTHROWER_GLYPH"
)

// Load reads a YAML file over the defaults, applies environment overrides and validates
// An empty path yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := Decode(f, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg, rejecting unknown keys
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) {
	if enabled := os.Getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Audio.Enabled = val
		}
	}

	// 0-100 mapped to 0.0-1.0
	if volume := os.Getenv(EnvAudioVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Audio.Volume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	if glyph := os.Getenv(EnvGlyph); glyph != "" {
		cfg.Glyph.Variant = glyph
	}
}
