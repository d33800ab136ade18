package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"git.autistici.org/ai3/tools/masktr/util"
)

func loadTestConfig(t *testing.T, contents string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "masktr.conf")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}
	if err := util.LoadFlagsFromConfig(path); err != nil {
		t.Fatalf("LoadFlagsFromConfig: %v", err)
	}

	// Restore an empty flag config for other tests.
	t.Cleanup(func() {
		empty := filepath.Join(t.TempDir(), "empty.conf")
		if err := os.WriteFile(empty, nil, 0600); err != nil {
			t.Fatal(err)
		}
		util.LoadFlagsFromConfig(empty) // nolint: errcheck
	})
}

// Values from the flag config file must become the flag defaults of
// every subcommand.
func TestFlagsFromConfig(t *testing.T) {
	loadTestConfig(t, `
addr :9999
db /tmp/masktr-test.sql
url https://masktr.example.com/
`)

	var serve serveCommand
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	serve.SetFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if serve.addr != ":9999" {
		t.Errorf("serve addr = %q, want %q", serve.addr, ":9999")
	}
	if serve.dburi != "/tmp/masktr-test.sql" {
		t.Errorf("serve db = %q, want %q", serve.dburi, "/tmp/masktr-test.sql")
	}

	var convert convertCommand
	fs = flag.NewFlagSet("convert", flag.ContinueOnError)
	convert.SetFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if convert.serverURL != "https://masktr.example.com/" {
		t.Errorf("convert url = %q", convert.serverURL)
	}

	var hist historyCommand
	fs = flag.NewFlagSet("history", flag.ContinueOnError)
	hist.SetFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if hist.serverURL != "https://masktr.example.com/" {
		t.Errorf("history url = %q", hist.serverURL)
	}
}

// Command-line flags must still win over the config file.
func TestFlagsFromConfig_Override(t *testing.T) {
	loadTestConfig(t, "addr :9999\n")

	var serve serveCommand
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	serve.SetFlags(fs)
	if err := fs.Parse([]string{"-addr", ":7777"}); err != nil {
		t.Fatal(err)
	}
	if serve.addr != ":7777" {
		t.Errorf("serve addr = %q, want %q", serve.addr, ":7777")
	}
}
