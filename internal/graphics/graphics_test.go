package graphics

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHeadlessWindowRenderFrameCountsWithoutDumping(t *testing.T) {
	b := NewHeadlessBackend()
	if err := b.Initialize(Config{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	window, err := b.CreateWindow("test", 256, 240)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	hw := window.(*HeadlessWindow)
	frame := make([]byte, 256*240*3)
	for i := 0; i < 3; i++ {
		if err := window.RenderFrame(frame); err != nil {
			t.Fatalf("RenderFrame: %v", err)
		}
	}
	if hw.GetFrameCount() != 3 {
		t.Fatalf("frame count = %d, want 3", hw.GetFrameCount())
	}
}

func TestHeadlessWindowDumpsFramesAsPPM(t *testing.T) {
	dir := t.TempDir()
	b := NewHeadlessBackend()
	if err := b.Initialize(Config{}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	window, err := b.CreateWindow("test", 256, 240)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	hw := window.(*HeadlessWindow)
	hw.DumpFrames = true
	hw.OutputDir = dir

	frame := make([]byte, 256*240*3)
	frame[0] = 0xAB
	if err := window.RenderFrame(frame); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}

	path := filepath.Join(dir, "frame_0001.ppm")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dumped frame: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PPM output")
	}
}

func TestHeadlessWindowRejectsWrongSizedBuffer(t *testing.T) {
	b := NewHeadlessBackend()
	b.Initialize(Config{})
	window, _ := b.CreateWindow("test", 256, 240)
	hw := window.(*HeadlessWindow)
	hw.DumpFrames = true
	hw.OutputDir = t.TempDir()
	if err := window.RenderFrame(make([]byte, 4)); err == nil {
		t.Fatal("expected error for undersized frame buffer")
	}
}

func TestTerminalWindowRenderFrameRejectsWrongSize(t *testing.T) {
	b := NewTerminalBackend()
	b.Initialize(Config{})
	window, err := b.CreateWindow("test", 256, 240)
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if err := window.RenderFrame(make([]byte, 100)); err == nil {
		t.Fatal("expected error for wrong-sized buffer")
	}
}

func TestVideoProcessorNoOpAtDefaults(t *testing.T) {
	vp := NewVideoProcessor(1.0, 1.0, 1.0)
	frame := []byte{10, 20, 30, 40, 50, 60}
	out := vp.ProcessFrame(frame)
	for i, v := range []byte{10, 20, 30, 40, 50, 60} {
		if out[i] != v {
			t.Fatalf("byte %d = %d, want %d (no-op expected)", i, out[i], v)
		}
	}
}

func TestVideoProcessorBrightnessDarkensPixels(t *testing.T) {
	vp := NewVideoProcessor(0.5, 1.0, 1.0)
	frame := []byte{200, 200, 200}
	out := vp.ProcessFrame(frame)
	if out[0] >= 200 {
		t.Fatalf("expected brightness 0.5 to darken pixel, got %d", out[0])
	}
}

func TestCreateBackendDefaultsToEbitengine(t *testing.T) {
	b, err := CreateBackend(BackendType("unknown"))
	if err != nil {
		t.Fatalf("CreateBackend: %v", err)
	}
	if b.GetName() != "Ebitengine" {
		t.Fatalf("backend = %s, want Ebitengine", b.GetName())
	}
}
