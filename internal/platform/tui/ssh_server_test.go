package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/ssh"
)

func TestCheckPTY(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		ok     bool
		refuse string
	}{
		{"no pty", 0, 0, false, "interactive terminal"},
		{"too narrow", 39, 30, true, "too small"},
		{"too short", 120, 13, true, "too small"},
		{"minimum", minPTYWidth, minPTYHeight, true, ""},
		{"roomy", 120, 40, true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pty := ssh.Pty{Window: ssh.Window{Width: tc.w, Height: tc.h}}
			got := checkPTY(pty, tc.ok)
			if tc.refuse == "" && got != "" {
				t.Errorf("checkPTY(%dx%d) = %q, expected accept", tc.w, tc.h, got)
			}
			if tc.refuse != "" && !strings.Contains(got, tc.refuse) {
				t.Errorf("checkPTY(%dx%d) = %q, expected to mention %q", tc.w, tc.h, got, tc.refuse)
			}
		})
	}
}

func TestResolveHostKeyCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "host_key")

	got, err := resolveHostKey(path)
	if err != nil {
		t.Fatalf("resolveHostKey() error = %v", err)
	}
	if got != path {
		t.Errorf("resolveHostKey() = %q, expected %q", got, path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("key directory not created: %v", err)
	}
}

func TestResolveHostKeyDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got, err := resolveHostKey("")
	if err != nil {
		t.Fatalf("resolveHostKey() error = %v", err)
	}
	if !strings.HasSuffix(got, filepath.Join(".breakout", "host_key")) {
		t.Errorf("resolveHostKey() = %q, expected ~/.breakout/host_key", got)
	}
}
