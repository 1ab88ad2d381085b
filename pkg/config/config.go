// Run configuration for the detection pipeline.
//
// Values come from three layers: built-in defaults, an optional YAML file,
// and command line flags applied by main. The zero value of any field means
// "use the default"; Load backfills after unmarshalling.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Minimum support for a single lineage to resolve a query on its own.
	SupportThreshold float64 `yaml:"support_threshold"`
	// Maximum private (query-only) mutations tolerated for a single-lineage call.
	MaxPrivate int `yaml:"max_private"`
	// Number of top-scoring lineages fed into the pair search.
	TopN int `yaml:"top_n"`
	// A pair must explain at least this many more mutations than the best
	// single lineage.
	MinMargin float64 `yaml:"min_margin"`
	// Maximum unexplained mutations tolerated for a recombinant call.
	MaxResidual int `yaml:"max_residual"`
	// Consecutive same-parent diagnostics required to confirm a segment.
	MinRun int `yaml:"min_run"`
	// Worker count; 0 means one per CPU.
	Threads int `yaml:"threads"`
}

func Default() Config {
	return Config{
		SupportThreshold: 0.9,
		// Strict by default: a query carrying another lineage's barcode on
		// top of a perfect match must go to the parent search, not be
		// absorbed as private noise.
		MaxPrivate:  1,
		TopN:        10,
		MinMargin:   1.0,
		MaxResidual: 3,
		MinRun:      2,
	}
}

// Load reads a YAML config file and backfills unset fields with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	config.Backfill()
	return config, nil
}

// Backfill replaces zero values with defaults.
func (c *Config) Backfill() {
	def := Default()

	if c.SupportThreshold == 0 {
		c.SupportThreshold = def.SupportThreshold
	}
	if c.MaxPrivate == 0 {
		c.MaxPrivate = def.MaxPrivate
	}
	if c.TopN == 0 {
		c.TopN = def.TopN
	}
	if c.MinMargin == 0 {
		c.MinMargin = def.MinMargin
	}
	if c.MaxResidual == 0 {
		c.MaxResidual = def.MaxResidual
	}
	if c.MinRun == 0 {
		c.MinRun = def.MinRun
	}
}
