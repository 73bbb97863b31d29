package prof

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestModes(t *testing.T) {
	m := Modes()
	if !slices.IsSorted(m) || !slices.Contains(m, "cpu") || !slices.Contains(m, "trace") {
		t.Fatalf("unexpected modes: %v", m)
	}
}

func TestStartOffAndUnknown(t *testing.T) {
	for _, mode := range []string{"", "off", " OFF "} {
		s, err := Start(mode, "", true)
		if err != nil {
			t.Fatalf("Start(%q): %v", mode, err)
		}
		s.Stop()
	}
	if _, err := Start("flame", "", true); err == nil {
		t.Fatal("expected an error for unknown mode")
	}
}

func TestStartWritesProfile(t *testing.T) {
	dir := t.TempDir()
	s, err := Start("mem", dir, true)
	if err != nil {
		t.Fatal(err)
	}
	s.Stop()
	if _, err := os.Stat(filepath.Join(dir, "mem.pprof")); err != nil {
		t.Fatalf("mem profile not written: %v", err)
	}
}
