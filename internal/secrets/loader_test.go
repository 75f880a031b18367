package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadInlineValue(t *testing.T) {
	secret, err := Load(Source{Name: "api key", Value: "  s3cr3t \n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "s3cr3t" {
		t.Fatalf("expected trimmed value, got %q", secret)
	}
}

func TestLoadFileTakesPrecedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(file, []byte("from-file\n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	secret, err := Load(Source{Name: "api key", Value: "inline", File: file})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("expected the file value, got %q", secret)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(file, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("writing secret file: %v", err)
	}

	if _, err := Load(Source{Name: "api key", File: file}); err == nil {
		t.Fatal("expected error for empty secret file")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{Name: "api key", File: "/does/not/exist"})
	if err == nil || !strings.Contains(err.Error(), "api key") {
		t.Fatalf("expected error naming the secret, got %v", err)
	}
}

func TestLoadNothingConfigured(t *testing.T) {
	if _, err := Load(Source{Name: "api key"}); err == nil {
		t.Fatal("expected error when neither value nor file is set")
	}
}
