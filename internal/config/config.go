// Package config loads the optional YAML defaults file of the command line tool.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for files which do not match the schema.
var ErrInvalidConfig = errors.New("invalid configuration file")

// Config holds the defaults for the command line flags.
type Config struct {
	Format       string `yaml:"format" json:"format"`
	Pretty       bool   `yaml:"pretty" json:"pretty"`
	IncludeSlack bool   `yaml:"includeSlack" json:"includeSlack"`
	Raw          bool   `yaml:"raw" json:"raw"`
	CrossCheck   bool   `yaml:"crossCheck" json:"crossCheck"`
	LogLevel     string `yaml:"logLevel" json:"logLevel"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Format:       "text",
		IncludeSlack: true,
		LogLevel:     "warn",
	}
}

const schema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"format": {"type": "string", "enum": ["text", "json", "yaml"]},
		"pretty": {"type": "boolean"},
		"includeSlack": {"type": "boolean"},
		"raw": {"type": "boolean"},
		"crossCheck": {"type": "boolean"},
		"logLevel": {"type": "string", "enum": ["debug", "info", "warn", "error"]}
	}
}`

var compiled = jsonschema.MustCompileString("config.schema.json", schema)

// Load reads the file at path and applies it on top of Default().
// Keys missing in the file keep their default.
func Load(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates the YAML document and applies it on top of Default().
func Parse(data []byte) (Config, error) {
	cfg := Default()

	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	// An empty file is a valid file without settings.
	if raw == nil {
		return cfg, nil
	}

	if err := validate(raw); err != nil {
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func validate(raw interface{}) error {
	// Round trip through JSON so the validator sees JSON types only.
	rawJSON, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	decoder := json.NewDecoder(bytes.NewReader(rawJSON))
	decoder.UseNumber()
	var doc interface{}
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
