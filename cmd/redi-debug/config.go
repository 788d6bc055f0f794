package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config holds defaults read from a --config file
type config struct {
	Level    string `yaml:"level"`
	MinLevel string `yaml:"min_level"`
	File     string `yaml:"file"`
	Color    bool   `yaml:"color"`
}

// loadConfig decodes a YAML config file. An empty file yields zero values.
func loadConfig(path string) (*config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config file")
	}
	defer f.Close()

	cfg := &config{}
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "cannot parse config file")
	}
	return cfg, nil
}

// merge copies config values into options whose flags were not set explicitly
func (o *options) merge(cfg *config, set map[string]bool) {
	if cfg.Level != "" && !set["level"] {
		o.level = cfg.Level
	}
	if cfg.MinLevel != "" && !set["min-level"] {
		o.minLevel = cfg.MinLevel
	}
	if cfg.File != "" && !set["file"] {
		o.file = cfg.File
	}
	if cfg.Color && !set["color"] {
		o.color = true
	}
}
