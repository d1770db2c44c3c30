package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GITHUB_TOKEN", "GITHUB_API_URL", "SLACK_MODE", "DEBUG", "SEARCH_DEBOUNCE", "REQUEST_TIMEOUT", "S3_BUCKET_NAME", "S3_OBJECT_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestFromEnvironment_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnvironment()
	if cfg.GitHubToken != "" {
		t.Errorf("expected empty token, got %q", cfg.GitHubToken)
	}
	if cfg.TokenConfigured() {
		t.Error("expected TokenConfigured false without a token")
	}
	if cfg.SlackMode {
		t.Error("expected SlackMode false by default")
	}
	if cfg.DebugMode {
		t.Error("expected DebugMode false by default")
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("APIURL = %q, want %q", cfg.APIURL, DefaultAPIURL)
	}
	if cfg.Debounce != DefaultDebounce {
		t.Errorf("Debounce = %v, want %v", cfg.Debounce, DefaultDebounce)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, DefaultRequestTimeout)
	}
}

func TestFromEnvironment_GitHubToken(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_TOKEN", "ghp_test123")

	cfg := FromEnvironment()
	if cfg.GitHubToken != "ghp_test123" {
		t.Errorf("got %q, want ghp_test123", cfg.GitHubToken)
	}
	if !cfg.TokenConfigured() {
		t.Error("expected TokenConfigured true")
	}
}

func TestFromEnvironment_Durations(t *testing.T) {
	clearEnv(t)
	t.Setenv("SEARCH_DEBOUNCE", "400ms")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg := FromEnvironment()
	if cfg.Debounce != 400*time.Millisecond {
		t.Errorf("Debounce = %v, want 400ms", cfg.Debounce)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
}

func TestFromEnvironment_SlackMode(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"FALSE", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run("SLACK_MODE="+tt.val, func(t *testing.T) {
			t.Setenv("SLACK_MODE", tt.val)
			cfg := FromEnvironment()
			if cfg.SlackMode != tt.want {
				t.Errorf("SLACK_MODE=%q → SlackMode=%v, want %v", tt.val, cfg.SlackMode, tt.want)
			}
		})
	}
}

func TestFromEnvironment_DebugMode(t *testing.T) {
	tests := []struct {
		val  string
		want bool
	}{
		{"true", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run("DEBUG="+tt.val, func(t *testing.T) {
			t.Setenv("DEBUG", tt.val)
			cfg := FromEnvironment()
			if cfg.DebugMode != tt.want {
				t.Errorf("DEBUG=%q → DebugMode=%v, want %v", tt.val, cfg.DebugMode, tt.want)
			}
		})
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "reposearch.yaml")
	data := "github_token: from-file\ngithub_api_url: https://ghe.example.com/api/v3/\nsearch_debounce: 100ms\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "from-file" {
		t.Errorf("GitHubToken = %q, want from-file", cfg.GitHubToken)
	}
	if cfg.APIURL != "https://ghe.example.com/api/v3/" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Debounce != 100*time.Millisecond {
		t.Errorf("Debounce = %v, want 100ms", cfg.Debounce)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "reposearch.yaml")
	if err := os.WriteFile(path, []byte("github_token: from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GITHUB_TOKEN", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHubToken != "from-env" {
		t.Errorf("GitHubToken = %q, want from-env", cfg.GitHubToken)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("defaults should still apply, APIURL = %q", cfg.APIURL)
	}
}
