package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.Prompt != DefaultPrompt {
		t.Fatalf("Prompt = %q, want default %q", cfg.Prompt, DefaultPrompt)
	}
	if len(cfg.PathPrefix) != 0 {
		t.Fatalf("PathPrefix = %v, want empty", cfg.PathPrefix)
	}
}

func TestLoadOverridesPromptAndPathPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minishellrc.toml")
	body := `
prompt = "mysh> "
path_prefix = ["/opt/tools/bin", "/home/me/bin"]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != "mysh> " {
		t.Fatalf("Prompt = %q, want %q", cfg.Prompt, "mysh> ")
	}
	want := []string{"/opt/tools/bin", "/home/me/bin"}
	if len(cfg.PathPrefix) != len(want) {
		t.Fatalf("PathPrefix = %v, want %v", cfg.PathPrefix, want)
	}
	for i := range want {
		if cfg.PathPrefix[i] != want[i] {
			t.Fatalf("PathPrefix[%d] = %q, want %q", i, cfg.PathPrefix[i], want[i])
		}
	}
}

func TestLoadEmptyPromptFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minishellrc.toml")
	if err := os.WriteFile(path, []byte(`path_prefix = ["/x"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Prompt != DefaultPrompt {
		t.Fatalf("Prompt = %q, want default %q", cfg.Prompt, DefaultPrompt)
	}
}

func TestLoadMalformedFileReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minishellrc.toml")
	if err := os.WriteFile(path, []byte("prompt = ["), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("Load with malformed TOML: expected error, got nil")
	}
}
