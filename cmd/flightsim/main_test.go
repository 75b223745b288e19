package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in, expected string
	}{
		{"", ""},
		{"journal.db", "journal.db"},
		{"/var/lib/flightsim.db", "/var/lib/flightsim.db"},
		{"~/.flightsim/journal.db", filepath.Join(home, ".flightsim", "journal.db")},
	}
	for _, tt := range tests {
		if got := expandHome(tt.in); got != tt.expected {
			t.Errorf("expandHome(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}

func TestScenesCommand(t *testing.T) {
	out, err := execute(t, "scenes")
	if err != nil {
		t.Fatalf("scenes failed: %v", err)
	}
	for _, id := range []string{"flight", "tilemap"} {
		if !strings.Contains(out, id) {
			t.Errorf("scenes output does not list %q:\n%s", id, out)
		}
	}
}

func TestInitThenCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tilemap.lua")

	if _, err := execute(t, "init", "tilemap", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := execute(t, "init", "tilemap", path); err == nil {
		t.Error("init should refuse to overwrite an existing module")
	}

	out, err := execute(t, "check", path, "--frames", "5")
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !strings.Contains(out, "ok (5 frames)") {
		t.Errorf("check output = %q", out)
	}
}

func TestInitUnknownScene(t *testing.T) {
	if _, err := execute(t, "init", "pong", filepath.Join(t.TempDir(), "pong.lua")); err == nil {
		t.Error("init should fail for an unknown scene")
	}
}

func TestCheckReportsFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.lua")
	src := "function update_and_render(a)\n  local cam = nil\n  return cam.x\nend\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "check", path, "--frames", "1")
	if err == nil {
		t.Fatal("check should fail for a module that errors")
	}
	if !strings.Contains(err.Error(), "broken.lua") {
		t.Errorf("error = %v, expected the module path", err)
	}
}

func TestHistoryEmptyJournal(t *testing.T) {
	db := filepath.Join(t.TempDir(), "journal.db")
	out, err := execute(t, "history", "--journal", db)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if !strings.Contains(out, "No reloads recorded yet.") || !strings.Contains(out, "No failures recorded yet.") {
		t.Errorf("history output = %q", out)
	}
}
