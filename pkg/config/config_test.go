package config

import (
	"path/filepath"
	"testing"

	"github.com/deadprop/deadprop/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Checks.UnusedPrivateProperty.Enabled {
		t.Error("unused_private_property should be disabled by default")
	}
	if cfg.Checks.UnusedPrivateProperty.RegistryScope != "per-file" {
		t.Errorf("default registry scope = %q, want per-file", cfg.Checks.UnusedPrivateProperty.RegistryScope)
	}
	if len(cfg.Checks.UnusedPrivateProperty.RenameFunctions) == 0 {
		t.Error("default rename functions should not be empty")
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.Output.Format != "text" {
		t.Errorf("default output format = %q, want text", cfg.Output.Format)
	}
	if !cfg.Exclude.Gitignore {
		t.Error("gitignore exclusion should be enabled by default")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadprop.toml")
	content := `
[checks.unused_private_property]
enabled = true
registry_scope = "whole-compilation"
rename_functions = ["app.reflect.prop"]
max_file_size = 500000

[output]
format = "json"
color = false

[cache]
enabled = false
`
	testutil.WriteFile(t, path, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	upp := cfg.Checks.UnusedPrivateProperty
	if !upp.Enabled {
		t.Error("enabled should be true")
	}
	if upp.RegistryScope != "whole-compilation" {
		t.Errorf("registry_scope = %q", upp.RegistryScope)
	}
	if len(upp.RenameFunctions) != 1 || upp.RenameFunctions[0] != "app.reflect.prop" {
		t.Errorf("rename_functions = %v", upp.RenameFunctions)
	}
	if upp.MaxFileSize != 500000 {
		t.Errorf("max_file_size = %d", upp.MaxFileSize)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output format = %q", cfg.Output.Format)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadprop.yaml")
	content := `
checks:
  unused_private_property:
    enabled: true
exclude:
  dirs:
    - generated
`
	testutil.WriteFile(t, path, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Checks.UnusedPrivateProperty.Enabled {
		t.Error("enabled should be true")
	}
	if len(cfg.Exclude.Dirs) != 1 || cfg.Exclude.Dirs[0] != "generated" {
		t.Errorf("exclude dirs = %v", cfg.Exclude.Dirs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}

func TestShouldExclude(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/react/index.js", true},
		{"src/node_modules/pkg/index.js", true},
		{"src/app.js", false},
		{"dist/app.js", true},
		{"src/app.min.js", true},
		{"src/vendor.bundle.js", true},
		{"types/api.d.ts", true},
		{"src/component.tsx", false},
		{"yarn.lock", true},
		{"src/app.js.map", true},
	}

	for _, tt := range tests {
		path := filepath.FromSlash(tt.path)
		if got := cfg.ShouldExclude(path); got != tt.want {
			t.Errorf("ShouldExclude(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
