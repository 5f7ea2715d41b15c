// Package config loads the optional .rocket.yaml file a collaborator may
// drop next to their Rocket sources, in the same spirit as the teacher's
// lang/in/cli/cli.go Config struct but sourced from a file instead of
// only flags.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings a .rocket.yaml file may override.
type Config struct {
	// Root is parsed from the file; no CLI subcommand reads it, and
	// source paths are opened exactly as given on the command line.
	Root string `yaml:"root"`
	// Color is parsed from the file; internal/repl does not read it and
	// decides colorization from terminal detection alone.
	Color *bool `yaml:"color"`
	// Verbose makes the `run` subcommand print the lexeme, identifier,
	// constant, transformation-history, marks, and variables tables, as
	// --debug does.
	Verbose bool `yaml:"verbose"`
}

// Default returns the configuration used when no .rocket.yaml is found.
func Default() Config {
	return Config{Root: "."}
}

// Load reads and parses path, returning Default() unchanged if the file
// does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
