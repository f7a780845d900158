package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.SurfacePath != "surface.toml" {
		t.Fatalf("expected default surface path, got %q", cfg.App.SurfacePath)
	}
	if cfg.App.Endpoint != "" {
		t.Fatalf("expected remote search disabled by default, got %q", cfg.App.Endpoint)
	}
	if cfg.App.Settle != 250*time.Millisecond {
		t.Fatalf("expected default settle 250ms, got %s", cfg.App.Settle)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer enabled by default")
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected trace disabled by default")
	}
}

func TestLoadArgsFlagsOverrideEnv(t *testing.T) {
	env := []string{
		"QUICKOPEN_ENDPOINT=http://env.example",
		"QUICKOPEN_SETTLE_MS=500",
		"QUICKOPEN_FUZZY=true",
	}
	cfg, err := LoadArgs([]string{"-endpoint", "http://flag.example"}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Endpoint != "http://flag.example" {
		t.Fatalf("expected flag to win over env, got %q", cfg.App.Endpoint)
	}
	if cfg.App.Settle != 500*time.Millisecond {
		t.Fatalf("expected env settle applied, got %s", cfg.App.Settle)
	}
	if !cfg.App.Fuzzy {
		t.Fatalf("expected env fuzzy applied")
	}
}

func TestLoadArgsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quickopen.toml")
	body := "endpoint = \"http://file.example\"\nsettle_ms = 100\nfooter = false\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadArgs([]string{"-config", path}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Endpoint != "http://file.example" {
		t.Fatalf("expected file endpoint, got %q", cfg.App.Endpoint)
	}
	if cfg.App.Settle != 100*time.Millisecond {
		t.Fatalf("expected file settle, got %s", cfg.App.Settle)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("expected footer disabled by file")
	}
}

func TestLoadArgsEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quickopen.toml")
	if err := os.WriteFile(path, []byte("endpoint = \"http://file.example\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	env := []string{"QUICKOPEN_ENDPOINT=http://env.example"}
	cfg, err := LoadArgs([]string{"-config=" + path}, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Endpoint != "http://env.example" {
		t.Fatalf("expected env to win over file, got %q", cfg.App.Endpoint)
	}
}

func TestLoadArgsRejectsMissingConfigFile(t *testing.T) {
	if _, err := LoadArgs([]string{"-config", "/no/such/file.toml"}, nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestValidateRejectsNegativeValues(t *testing.T) {
	cfg, err := LoadArgs([]string{"-width", "-1"}, nil)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for negative width")
	}
}

func TestValidateRequiresSurfacePath(t *testing.T) {
	cfg, err := LoadArgs([]string{"-surface", ""}, nil)
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected validation error for empty surface path")
	}
}
