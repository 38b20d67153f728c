package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ErrConfigExists is returned by WriteDefault when the file is present and
// overwriting was not requested.
var ErrConfigExists = errors.New("config: file already exists")

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v)
	if err != nil {
		return Config{}
	}
	return *cfg
}

// WriteDefault writes the built-in configuration as TOML to path.
// The API key is never written.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return errors.WithHint(errors.Wrapf(ErrConfigExists, "write %s", path), "pass --force to overwrite")
	}

	cfg := Default()
	cfg.Generation.APIKey = ""

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
