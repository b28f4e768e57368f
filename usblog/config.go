package usblog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// LoadConfig reads a logging config from a TOML file:
//
//	max_level = "debug"
//
//	[[filter]]
//	target = "motor"
//	level = "warn"
//
//	[[filter]]
//	target = "sensor"
//
// An absent max_level defaults to info.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes TOML config data.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MaxLevel < LevelError || cfg.MaxLevel > LevelTrace {
		return Config{}, fmt.Errorf("parse config: max_level %d out of range", int(cfg.MaxLevel))
	}
	for _, f := range cfg.Filters {
		if f.Target == "" {
			return Config{}, fmt.Errorf("parse config: filter with empty target")
		}
	}
	return cfg, nil
}
