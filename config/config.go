// Package config loads the settings of a training run from a properties file.
//
// All keys are optional:
//
//	model.path                = model.txt
//	cache.dir                 =
//	cache.size                = 0
//	trainer.quiet             = true
//	trainer.cpu               = -1
//	trainer.strict_dimensions = false
//	progress                  = false
package config

import (
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// DefaultModelPath is where the trained model is written unless configured otherwise.
const DefaultModelPath = "model.txt"

// Config holds the settings of a training run.
type Config struct {
	ModelPath string
	// CacheDir enables an on-disk cache of parsed feature files.
	CacheDir string
	// CacheSize enables an in-memory cache of this many parsed feature files.
	CacheSize        int
	Quiet            bool
	NumCPU           int
	StrictDimensions bool
	Progress         bool
}

// Default returns the configuration used when no properties file is given.
func Default() Config {
	return Config{
		ModelPath: DefaultModelPath,
		Quiet:     true,
		NumCPU:    -1,
	}
}

// Load reads the properties file at path. Missing keys keep their default.
func Load(path string) (Config, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, errors.Wrapf(err, "loading config %s", path)
	}
	return FromProperties(p)
}

// FromProperties builds a configuration from already loaded properties.
func FromProperties(p *properties.Properties) (Config, error) {
	d := Default()
	c := Config{
		ModelPath:        p.GetString("model.path", d.ModelPath),
		CacheDir:         p.GetString("cache.dir", d.CacheDir),
		CacheSize:        p.GetInt("cache.size", d.CacheSize),
		Quiet:            p.GetBool("trainer.quiet", d.Quiet),
		NumCPU:           p.GetInt("trainer.cpu", d.NumCPU),
		StrictDimensions: p.GetBool("trainer.strict_dimensions", d.StrictDimensions),
		Progress:         p.GetBool("progress", d.Progress),
	}
	if len(c.ModelPath) == 0 {
		return Config{}, errors.New("model.path must not be empty")
	}
	if c.CacheSize < 0 {
		return Config{}, errors.Errorf("cache.size must not be negative, got %d", c.CacheSize)
	}
	return c, nil
}
