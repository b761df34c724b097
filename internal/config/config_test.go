package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/ocomp/internal/config"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Start != "" || cfg.Output != "" || cfg.NoOptimize || cfg.CompileNet {
		t.Fatalf("expected a zero-value Config, got %+v", cfg)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".ocomp.yaml")
	writeFile(t, path, "start: Main\noutput: out.ovm\nno-optimize: true\ncompile-net: true\n")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Start != "Main" || cfg.Output != "out.ovm" || !cfg.NoOptimize || !cfg.CompileNet {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestMerge_FlagsOverrideConfigOnlyWhenSet(t *testing.T) {
	cfg := &config.Config{Start: "FromFile", Output: "file.ovm", NoOptimize: true, CompileNet: false}

	// No flags explicitly set: file values pass through untouched.
	start, output, noOpt, net := config.Merge(cfg, "FromFlag", "flag.ovm", false, true, false, false, false, false)
	if start != "FromFile" || output != "file.ovm" || !noOpt || net {
		t.Fatalf("unset flags should defer to file config, got start=%q output=%q noOpt=%v net=%v", start, output, noOpt, net)
	}

	// Flags explicitly set: they override the file.
	start, output, noOpt, net = config.Merge(cfg, "FromFlag", "flag.ovm", false, true, true, true, true, true)
	if start != "FromFlag" || output != "flag.ovm" || noOpt || !net {
		t.Fatalf("set flags should override file config, got start=%q output=%q noOpt=%v net=%v", start, output, noOpt, net)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
