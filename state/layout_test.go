package state_test

import (
	"path/filepath"
	"testing"

	"github.com/illing1230/ai-memory-agent-sub000/state"
)

func TestLayoutDefaults(t *testing.T) {
	layout, err := state.OpenLayout(filepath.Join(t.TempDir(), "layout.json"))
	if err != nil {
		t.Fatalf("open layout: %v", err)
	}

	if !layout.SidebarOpen() {
		t.Error("sidebar should default to open")
	}
	if layout.SidebarWidth() != 280 {
		t.Errorf("sidebar width = %d, want 280", layout.SidebarWidth())
	}
	if layout.Theme() != "system" {
		t.Errorf("theme = %q, want system", layout.Theme())
	}
	if layout.MemoryPanelOpen() {
		t.Error("memory panel should default to closed")
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	layout, err := state.OpenLayout(path)
	if err != nil {
		t.Fatalf("open layout: %v", err)
	}

	if err := layout.SetSidebarOpen(false); err != nil {
		t.Fatalf("set sidebar open: %v", err)
	}
	if err := layout.SetSidebarWidth(320); err != nil {
		t.Fatalf("set sidebar width: %v", err)
	}
	if err := layout.SetTheme("dark"); err != nil {
		t.Fatalf("set theme: %v", err)
	}

	reopened, err := state.OpenLayout(path)
	if err != nil {
		t.Fatalf("reopen layout: %v", err)
	}
	if reopened.SidebarOpen() {
		t.Error("sidebar open flag did not persist")
	}
	if reopened.SidebarWidth() != 320 {
		t.Errorf("sidebar width = %d, want 320", reopened.SidebarWidth())
	}
	if reopened.Theme() != "dark" {
		t.Errorf("theme = %q, want dark", reopened.Theme())
	}
}
