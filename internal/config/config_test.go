package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadReadsYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  port: "9000"
generation:
  model: gemini-test
leaderboard:
  app_id: camp-1
game:
  skip_delay: 500ms
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PORT", "")
	t.Setenv("GENERATION_MODEL", "")
	t.Setenv("GOOGLE_API_KEY", "from-env")
	t.Setenv("APP_ID", "camp-2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" || cfg.Generation.Model != "gemini-test" {
		t.Fatalf("yaml values not loaded: %+v", cfg)
	}
	if cfg.Generation.APIKey != "from-env" {
		t.Fatalf("expected api key from env, got %q", cfg.Generation.APIKey)
	}
	if cfg.Leaderboard.AppID != "camp-2" {
		t.Fatalf("expected env to override app id, got %q", cfg.Leaderboard.AppID)
	}
	if d := TTLDuration(cfg.Game.SkipDelay, 2*time.Second); d != 500*time.Millisecond {
		t.Fatalf("expected 500ms skip delay, got %v", d)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing config should not fail: %v", err)
	}
	if cfg.Auth.Secret != "s3cret" {
		t.Fatalf("expected env secret, got %q", cfg.Auth.Secret)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTTLDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{raw: "", want: time.Minute},
		{raw: "bogus", want: time.Minute},
		{raw: "90s", want: 90 * time.Second},
	}
	for _, tt := range tests {
		if got := TTLDuration(tt.raw, time.Minute); got != tt.want {
			t.Fatalf("TTLDuration(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
