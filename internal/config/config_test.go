package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("expected %q, got %q", DefaultAPIURL, cfg.APIURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("expected %v, got %v", DefaultTimeout, cfg.Timeout)
	}
	if cfg.RateLimit != 0 || cfg.RateBurst != 1 {
		t.Errorf("expected no rate limit, got %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFile), "api_url: http://tasks.example.com/\ntimeout: 10s\nrate_limit: 2\nrate_burst: 5\n")

	cfg, _ := New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.APIURL != "http://tasks.example.com" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIURL)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.Timeout)
	}
	if cfg.RateLimit != 2 || cfg.RateBurst != 5 {
		t.Errorf("expected 2/5, got %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFile), "api_url: http://from-file\n")
	t.Setenv("TODO_API_URL", "http://from-env")

	cfg, _ := New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "http://from-env" {
		t.Errorf("expected env to win, got %q", cfg.APIURL)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, EnvFile), "TODO_API_TOKEN=dotenv-token\n")
	t.Cleanup(func() { os.Unsetenv("TODO_API_TOKEN") })

	cfg, _ := New(dir)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIToken != "dotenv-token" {
		t.Errorf("expected token from .env, got %q", cfg.APIToken)
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ConfigFile), "api_url: [unterminated\n")

	cfg, _ := New(dir)
	if err := cfg.Load(); err == nil {
		t.Fatal("expected error for invalid config file")
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigDir(); got != filepath.Join("/tmp/xdg", AppName) {
		t.Errorf("unexpected dir: %q", got)
	}
}

func TestLoad_TimeoutBareNumbersAreSeconds(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want time.Duration
	}{
		{"integer", "timeout: 10\n", 10 * time.Second},
		{"fraction", "timeout: 1.5\n", 1500 * time.Millisecond},
		{"unit", "timeout: 250ms\n", 250 * time.Millisecond},
		{"quoted number", "timeout: \"3\"\n", 3 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, ConfigFile), tt.yaml)

			cfg, _ := New(dir)
			if err := cfg.Load(); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.Timeout != tt.want {
				t.Errorf("expected %v, got %v", tt.want, cfg.Timeout)
			}
		})
	}
}

func TestLoad_TimeoutFromEnvIsSeconds(t *testing.T) {
	t.Setenv("TODO_TIMEOUT", "7")

	cfg, _ := New(t.TempDir())
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout != 7*time.Second {
		t.Errorf("expected 7s, got %v", cfg.Timeout)
	}
}

func TestLoad_TimeoutRejected(t *testing.T) {
	for _, value := range []string{"10ns", "-5", "soon"} {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFile), "timeout: "+value+"\n")

		cfg, _ := New(dir)
		if err := cfg.Load(); err == nil {
			t.Errorf("timeout %q: expected error, got %v", value, cfg.Timeout)
		}
	}
}
