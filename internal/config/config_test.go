package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv blanks every override so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CITEFETCH_API_BASE", "CITEFETCH_DOI_BASE", "CITEFETCH_MAILTO",
		"CITEFETCH_OC_TOKEN", "CITEFETCH_CACHE_PATH", "CITEFETCH_CONCURRENCY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache-home")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, DefaultConcurrency)
	}
	want := filepath.Join("/tmp/cache-home", ConfigDir, CacheFile)
	if cfg.CachePath != want {
		t.Errorf("CachePath = %q, want %q", cfg.CachePath, want)
	}
	if cfg.APIBase != "" || cfg.Mailto != "" {
		t.Errorf("unexpected non-empty fields: %+v", cfg)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("CITEFETCH_API_BASE", "http://localhost:9001")
	t.Setenv("CITEFETCH_MAILTO", "dev@example.org")
	t.Setenv("CITEFETCH_CONCURRENCY", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIBase != "http://localhost:9001" {
		t.Errorf("APIBase = %q", cfg.APIBase)
	}
	if cfg.Mailto != "dev@example.org" {
		t.Errorf("Mailto = %q", cfg.Mailto)
	}
	if cfg.Concurrency != 5 {
		t.Errorf("Concurrency = %d, want 5", cfg.Concurrency)
	}
}

func TestLoadIgnoresBadConcurrency(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	for _, v := range []string{"zero", "-3", "0"} {
		t.Setenv("CITEFETCH_CONCURRENCY", v)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Concurrency != DefaultConcurrency {
			t.Errorf("CITEFETCH_CONCURRENCY=%q gave Concurrency = %d, want default %d",
				v, cfg.Concurrency, DefaultConcurrency)
		}
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	in := &Config{
		APIBase:     "http://localhost:9001/index/coci",
		Mailto:      "dev@example.org",
		OCToken:     "secret-token",
		Concurrency: 4,
	}
	if err := in.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.APIBase != in.APIBase {
		t.Errorf("APIBase = %q, want %q", out.APIBase, in.APIBase)
	}
	if out.Mailto != in.Mailto {
		t.Errorf("Mailto = %q, want %q", out.Mailto, in.Mailto)
	}
	if out.OCToken != in.OCToken {
		t.Errorf("OCToken = %q, want %q", out.OCToken, in.OCToken)
	}
	if out.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", out.Concurrency)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	in := &Config{Mailto: "file@example.org"}
	if err := in.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	t.Setenv("CITEFETCH_MAILTO", "env@example.org")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Mailto != "env@example.org" {
		t.Errorf("Mailto = %q, want env value", cfg.Mailto)
	}
}
