package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/2x3systems/psmiles/psm"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the settings of a check run.
type Config struct {
	Particles      []string `mapstructure:"particles" yaml:"particles,omitempty"`
	RequireMonomer bool     `mapstructure:"require_monomer" yaml:"require_monomer"`
	StartIndex     int      `mapstructure:"start_index" yaml:"start_index"`
	BondLength     float64  `mapstructure:"bond_length" yaml:"bond_length"`
	Anchors        string   `mapstructure:"anchors" yaml:"anchors,omitempty"`
	NeighborDepth  int      `mapstructure:"neighbor_depth" yaml:"neighbor_depth"`
	AllowDoublets  bool     `mapstructure:"allow_doublets" yaml:"allow_doublets"`
	Workers        int      `mapstructure:"workers" yaml:"workers"`
	DropDupes      bool     `mapstructure:"drop_dupes" yaml:"drop_dupes"`
}

// LoadConfig reads psmiles.yaml from the working directory or ~/.psmiles, or the given file if override is set.
// PSMILES_* environment variables take precedence over file values.
func LoadConfig(override string) (*Config, error) {
	v := viper.New()
	v.SetDefault("start_index", psm.DefaultStartIndex)
	v.SetDefault("bond_length", psm.DefaultBondLength)
	v.SetDefault("allow_doublets", true)
	v.SetDefault("workers", 4)

	v.SetEnvPrefix("psmiles")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override != "" {
		v.SetConfigFile(override)
	} else {
		v.SetConfigName("psmiles")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".psmiles"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || override != "" {
			return nil, errors.Wrap(err, "read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &cfg, nil
}

// ParseOpts returns the library options this config describes.
func (cfg *Config) ParseOpts() (psm.ParseOpts, error) {
	opts := psm.ParseOpts{
		RequireMonomer: cfg.RequireMonomer,
		Particles:      cfg.Particles,
		StartIndex:     cfg.StartIndex,
	}
	if cfg.Anchors != "" {
		anchors, err := libpsm.ParseAnchors(cfg.Anchors)
		if err != nil {
			return opts, err
		}
		opts.Coords = &psm.CoordOpts{
			Anchors:    anchors,
			BondLength: cfg.BondLength,
		}
	}
	return opts, nil
}
