package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSecretFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadFromValue(t *testing.T) {
	secret, err := Load(Source{Name: "api key", Value: "  abc123  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "abc123" {
		t.Fatalf("expected trimmed secret, got %q", secret)
	}
}

func TestLoadFilePrecedesValue(t *testing.T) {
	path := writeSecretFile(t, "from-file\n")

	secret, err := Load(Source{Name: "api key", Value: "from-value", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "from-file" {
		t.Fatalf("file must take precedence, got %q", secret)
	}
}

func TestLoadNotConfigured(t *testing.T) {
	cases := []struct {
		name string
		src  Source
	}{
		{"empty source", Source{Name: "api key"}},
		{"whitespace value", Source{Name: "api key", Value: "   "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.src); !errors.Is(err, ErrNotConfigured) {
				t.Fatalf("expected ErrNotConfigured, got %v", err)
			}
		})
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeSecretFile(t, "  \n")

	if _, err := Load(Source{Name: "api key", File: path}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNotConfigured) {
		t.Fatal("an unreadable file is a real error, not an absent secret")
	}
}

func TestOptional(t *testing.T) {
	secret, err := Optional(Source{Name: "api key"})
	if err != nil {
		t.Fatalf("absent optional secret must not error: %v", err)
	}
	if secret != "" {
		t.Fatalf("expected empty secret, got %q", secret)
	}

	secret, err = Optional(Source{Name: "api key", Value: "abc"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secret != "abc" {
		t.Fatalf("unexpected secret: %q", secret)
	}

	if _, err := Optional(Source{Name: "api key", File: filepath.Join(t.TempDir(), "missing")}); err == nil {
		t.Fatal("read failures must surface through Optional")
	}
}
