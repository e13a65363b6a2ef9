package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dialogue?sslmode=disable")
	t.Setenv("COMPLETION_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
	if cfg.CompletionBackend != BackendOpenAI {
		t.Errorf("CompletionBackend = %q, want %q", cfg.CompletionBackend, BackendOpenAI)
	}
	if cfg.CompletionTimeout.Seconds() != 45 {
		t.Errorf("CompletionTimeout = %v, want 45s", cfg.CompletionTimeout)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dialogue?sslmode=disable")
	t.Setenv("COMPLETION_BACKEND", "anthropic")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestLoadRequiresAPIKeyForOpenAI(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/dialogue?sslmode=disable")
	t.Setenv("COMPLETION_BACKEND", "openai")
	t.Setenv("COMPLETION_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when API key is missing")
	}
}

func TestLocalBackendEndpoint(t *testing.T) {
	cfg := &Config{
		CompletionBackend: BackendLocal,
		CompletionBaseURL: "https://api.openai.com/v1",
		LocalNodeURL:      "http://localhost:11434/v1",
	}
	if got := cfg.CompletionEndpoint(); got != "http://localhost:11434/v1" {
		t.Errorf("CompletionEndpoint() = %q, want local node URL", got)
	}
}
