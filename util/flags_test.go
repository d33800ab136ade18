package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFlagsFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masktr.conf")
	err := os.WriteFile(path, []byte(`
# comment
addr :9999

url https://example.com/ # trailing comment
`), 0600)
	if err != nil {
		t.Fatal(err)
	}

	if err := LoadFlagsFromConfig(path); err != nil {
		t.Fatalf("LoadFlagsFromConfig: %v", err)
	}
	defer func() { flagsFromConfig = make(map[string]string) }()

	if got := FlagDefault("addr", ":5020"); got != ":9999" {
		t.Errorf("FlagDefault(addr) = %q, want %q", got, ":9999")
	}
	if got := FlagDefault("url", ""); got != "https://example.com/" {
		t.Errorf("FlagDefault(url) = %q", got)
	}
	if got := FlagDefault("missing", "fallback"); got != "fallback" {
		t.Errorf("FlagDefault(missing) = %q, want %q", got, "fallback")
	}
}

func TestLoadFlagsFromConfig_SyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masktr.conf")
	if err := os.WriteFile(path, []byte("novalue\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := LoadFlagsFromConfig(path); err == nil {
		t.Fatal("LoadFlagsFromConfig accepted a malformed line")
	}
}

func TestLoadFlagsFromConfig_MissingOverrideIsFatal(t *testing.T) {
	if err := LoadFlagsFromConfig(filepath.Join(t.TempDir(), "nonexistent.conf")); err == nil {
		t.Fatal("LoadFlagsFromConfig accepted a missing override path")
	}
}
