package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calebwren/morphfield/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// Nil receiver methods are no-ops.
	if err := om.WriteFrame(FrameStats{}); err != nil {
		t.Errorf("nil WriteFrame errored: %v", err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Errorf("nil WriteConfig errored: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close errored: %v", err)
	}
}

func TestOutputManagerFramesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}

	if err := om.WriteFrame(FrameStats{Frame: 120, TimeSec: 2.0, Morph: 0.5, Particles: 9409, FrameMsMean: 16.2}); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if err := om.WriteFrame(FrameStats{Frame: 240, TimeSec: 4.0, Morph: 0.9, Particles: 9409, FrameMsMean: 16.4}); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatalf("reading frames.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 records:\n%s", len(lines), data)
	}
	if !strings.Contains(lines[0], "frame") || !strings.Contains(lines[0], "morph") {
		t.Errorf("header missing expected columns: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "120,") || !strings.HasPrefix(lines[2], "240,") {
		t.Errorf("records out of order or malformed:\n%s", data)
	}
	if strings.Count(string(data), "frame_ms_mean") != 1 {
		t.Error("header repeated between records")
	}
}

func TestOutputManagerWriteConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	defer om.Close()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	reloaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("snapshot did not reload: %v", err)
	}
	if reloaded.Grid.SegmentsX != cfg.Grid.SegmentsX {
		t.Errorf("snapshot segments = %d, want %d", reloaded.Grid.SegmentsX, cfg.Grid.SegmentsX)
	}
}

func TestOutputManagerCloseTwice(t *testing.T) {
	om, err := NewOutputManager(filepath.Join(t.TempDir(), "run"))
	if err != nil {
		t.Fatalf("NewOutputManager failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
