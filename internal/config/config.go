// Package config loads the optional .ocomp.yaml project config
// (SPEC_FULL.md §4.11 "C11"): a flat set of compile-time defaults that
// CLI flags always override. Its absence changes nothing.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config mirrors `ocomp compile`'s flag set, one field per overridable
// default.
type Config struct {
	NoOptimize bool   `yaml:"no-optimize"`
	Start      string `yaml:"start"`
	Output     string `yaml:"output"`
	CompileNet bool   `yaml:"compile-net"`
}

// Load reads and parses the YAML config at path. A missing file is not an
// error: it returns a zero-value Config, so callers can unconditionally
// merge it under CLI flags.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Merge returns the effective value for each flag: the CLI value if the
// flag was explicitly set on the command line, else the config file's
// value.
func Merge(cfg *Config, flagStart, flagOutput string, flagNoOptimize, flagCompileNet bool, startSet, outputSet, noOptimizeSet, compileNetSet bool) (start, output string, noOptimize, compileNet bool) {
	start = cfg.Start
	if startSet {
		start = flagStart
	}
	output = cfg.Output
	if outputSet {
		output = flagOutput
	}
	noOptimize = cfg.NoOptimize
	if noOptimizeSet {
		noOptimize = flagNoOptimize
	}
	compileNet = cfg.CompileNet
	if compileNetSet {
		compileNet = flagCompileNet
	}
	return
}
