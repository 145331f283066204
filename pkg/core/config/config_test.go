package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" || cfg.Batch.Concurrency != 4 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valuation.yaml")
	doc := `
server:
  addr: ":9090"
batch:
  concurrency: 8
listing:
  fetch_timeout: 5s
commentary:
  enabled: true
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvStoreDir, "/tmp/vals")
	t.Setenv(EnvGeminiKey, "test-key")
	t.Setenv(EnvAddr, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %s", cfg.Server.Addr)
	}
	if cfg.Batch.Concurrency != 8 {
		t.Errorf("concurrency = %d", cfg.Batch.Concurrency)
	}
	if cfg.Batch.MaxInputs != 500 {
		t.Errorf("unset values should keep defaults, max_inputs = %d", cfg.Batch.MaxInputs)
	}
	if cfg.Listing.FetchTimeout != 5*time.Second {
		t.Errorf("fetch timeout = %v", cfg.Listing.FetchTimeout)
	}
	if cfg.Listing.AllowPrivateHosts {
		t.Error("private listing hosts must stay blocked unless configured")
	}
	if cfg.Store.Dir != "/tmp/vals" {
		t.Errorf("store dir = %s", cfg.Store.Dir)
	}
	if !cfg.CommentaryReady() {
		t.Error("commentary should be ready with enabled flag and API key")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valuation.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAddr, ":7070")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7070" || cfg.Log.Level != "debug" {
		t.Errorf("env did not override file: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valuation.yaml")
	if err := os.WriteFile(path, []byte("batch:\n  concurrency: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error")
	}

	if err := os.WriteFile(path, []byte("server: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCommentaryProviderKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "valuation.yaml")
	doc := "commentary:\n  enabled: true\n  provider: deepseek\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvGeminiKey, "gemini-key")
	t.Setenv(EnvDeepSeekKey, "deepseek-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Commentary.APIKey != "deepseek-key" {
		t.Errorf("api key = %q, want the deepseek key", cfg.Commentary.APIKey)
	}

	if err := os.WriteFile(path, []byte("commentary:\n  provider: kimi\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unsupported provider")
	}
}
