package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// Load reads the config file at path over the defaults. A missing file
// yields the defaults unchanged.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Errorf("reading %s: %w", path, err)
	}
	if err := Parse(data, path, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Parse decodes TOML data into cfg. Unknown keys are rejected.
func Parse(data []byte, path string, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return parseError(path, err)
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("%s: %w", path, err)
	}
	return nil
}

func parseError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
		return pe
	}
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown key " + strings.Join(first.Key(), ".")
	}
	return pe
}
