package main

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// config holds the defaults for one run.  Every field can be overridden on
// the command line.
type config struct {
	Codec           string `toml:"codec"`
	GolombDivisor   int    `toml:"golomb-divisor"`
	Format          string `toml:"format"`
	DigitCompaction bool   `toml:"digit-compaction"`
	Precision       uint   `toml:"precision"`
	Packed          bool   `toml:"packed"`
	Baseline        bool   `toml:"baseline"`
	Listing         bool   `toml:"listing"`
}

func defaultConfig() config {
	return config{
		Codec:         "huffman",
		GolombDivisor: 4,
		Format:        "json",
	}
}

// loadConfig overlays the TOML file at path onto the defaults.  An empty path
// returns the defaults unchanged.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}
