package app

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTestROM(t *testing.T, resetLo, resetHi byte) string {
	t.Helper()
	h := make([]byte, 16)
	copy(h[0:4], "NES\x1A")
	h[4] = 2 // 32KB PRG
	h[5] = 1 // 8KB CHR
	prg := make([]byte, 32768)
	prg[0x7FFC] = resetLo
	prg[0x7FFD] = resetHi
	chr := make([]byte, 8192)

	data := append(append(h, prg...), chr...)
	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write test rom: %v", err)
	}
	return path
}

func newHeadlessApp(t *testing.T) *Application {
	t.Helper()
	cfg := NewConfig()
	cfg.Headless = true
	app, err := NewApplication(cfg)
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	return app
}

func TestNewApplicationHeadlessInitializes(t *testing.T) {
	app := newHeadlessApp(t)
	if !app.initialized {
		t.Fatal("expected application to be initialized")
	}
	if app.graphicsBackend.GetName() != "Headless" {
		t.Fatalf("backend = %s, want Headless", app.graphicsBackend.GetName())
	}
}

func TestLoadROMStartsEmulator(t *testing.T) {
	app := newHeadlessApp(t)
	romPath := writeTestROM(t, 0x00, 0x80)
	if err := app.LoadROM(romPath); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if app.GetROMPath() != romPath {
		t.Fatalf("ROM path = %s, want %s", app.GetROMPath(), romPath)
	}
	if !app.emulator.IsRunning() {
		t.Fatal("expected emulator to be running after LoadROM")
	}
}

func TestTickAdvancesFrameCount(t *testing.T) {
	app := newHeadlessApp(t)
	romPath := writeTestROM(t, 0x00, 0x80)
	if err := app.LoadROM(romPath); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if err := app.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if app.GetFrameCount() != 1 {
		t.Fatalf("frame count = %d, want 1", app.GetFrameCount())
	}
}

func TestPauseStopsEmulatorAdvancing(t *testing.T) {
	app := newHeadlessApp(t)
	romPath := writeTestROM(t, 0x00, 0x80)
	if err := app.LoadROM(romPath); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	app.Pause()
	if err := app.tick(); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if app.GetFrameCount() != 0 {
		t.Fatalf("frame count = %d, want 0 while paused", app.GetFrameCount())
	}
}

func TestStopEndsRunLoop(t *testing.T) {
	app := newHeadlessApp(t)
	app.running = true
	app.Stop()
	if app.IsRunning() {
		t.Fatal("expected IsRunning to be false after Stop")
	}
}

func TestConfigParseFlagsPositionalROMPath(t *testing.T) {
	cfg, err := ParseFlags([]string{"-headless", "-frames", "10", "game.nes"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if !cfg.Headless {
		t.Fatal("expected headless to be true")
	}
	if cfg.Frames != 10 {
		t.Fatalf("frames = %d, want 10", cfg.Frames)
	}
	if cfg.ROMPath != "game.nes" {
		t.Fatalf("ROMPath = %q, want game.nes", cfg.ROMPath)
	}
}

func TestConfigWindowResolutionScalesNESResolution(t *testing.T) {
	cfg := NewConfig()
	cfg.Scale = 3
	w, h := cfg.GetWindowResolution()
	if w != 256*3 || h != 240*3 {
		t.Fatalf("resolution = %dx%d, want %dx%d", w, h, 256*3, 240*3)
	}
}
