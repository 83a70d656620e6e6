package graphics

import (
	"fmt"
	"os"
)

// HeadlessBackend renders no window; it exists for the -headless CLI
// mode and for frame-dump smoke testing without a display.
type HeadlessBackend struct {
	initialized bool
	config      Config
}

// HeadlessWindow is the Window implementation for headless operation.
// It optionally dumps every rendered frame to a PPM file when
// DumpFrames is set.
type HeadlessWindow struct {
	title      string
	width      int
	height     int
	running    bool
	frameCount int

	DumpFrames bool
	OutputDir  string
}

// NewHeadlessBackend creates a headless graphics backend.
func NewHeadlessBackend() Backend { return &HeadlessBackend{} }

// Initialize initializes the headless backend.
func (b *HeadlessBackend) Initialize(config Config) error {
	if b.initialized {
		return fmt.Errorf("headless backend already initialized")
	}
	b.config = config
	b.initialized = true
	return nil
}

// CreateWindow creates a headless "window" that tracks frame count
// and optionally dumps frames; it never opens a display surface.
func (b *HeadlessBackend) CreateWindow(title string, width, height int) (Window, error) {
	if !b.initialized {
		return nil, fmt.Errorf("backend not initialized")
	}
	return &HeadlessWindow{title: title, width: width, height: height, running: true, OutputDir: "."}, nil
}

// Cleanup releases headless resources.
func (b *HeadlessBackend) Cleanup() error {
	b.initialized = false
	return nil
}

// IsHeadless always returns true for this backend.
func (b *HeadlessBackend) IsHeadless() bool { return true }

// GetName returns the backend's identifying name.
func (b *HeadlessBackend) GetName() string { return "Headless" }

// SetTitle records the title; there is no window to retitle.
func (w *HeadlessWindow) SetTitle(title string) { w.title = title }

// GetSize returns the configured dimensions.
func (w *HeadlessWindow) GetSize() (width, height int) { return w.width, w.height }

// ShouldClose reports whether the window has been closed.
func (w *HeadlessWindow) ShouldClose() bool { return !w.running }

// SwapBuffers is a no-op in headless mode.
func (w *HeadlessWindow) SwapBuffers() {}

// PollEvents always returns no events: there is no input source.
func (w *HeadlessWindow) PollEvents() []InputEvent { return nil }

// RenderFrame increments the frame counter and, if DumpFrames is set,
// writes the frame to a PPM file.
func (w *HeadlessWindow) RenderFrame(frameBuffer []byte) error {
	w.frameCount++
	if !w.DumpFrames {
		return nil
	}
	return w.saveFrameAsPPM(frameBuffer, fmt.Sprintf("%s/frame_%04d.ppm", w.OutputDir, w.frameCount))
}

// saveFrameAsPPM writes an RGB888 256x240 frame buffer as a plain PPM.
func (w *HeadlessWindow) saveFrameAsPPM(frameBuffer []byte, filename string) error {
	if len(frameBuffer) != 256*240*3 {
		return fmt.Errorf("frame buffer has %d bytes, want %d", len(frameBuffer), 256*240*3)
	}
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create %s: %w", filename, err)
	}
	defer file.Close()

	fmt.Fprintf(file, "P3\n256 240\n255\n")
	for y := 0; y < 240; y++ {
		for x := 0; x < 256; x++ {
			offset := (y*256 + x) * 3
			fmt.Fprintf(file, "%d %d %d ", frameBuffer[offset], frameBuffer[offset+1], frameBuffer[offset+2])
		}
		fmt.Fprintln(file)
	}
	return nil
}

// Cleanup marks the window closed.
func (w *HeadlessWindow) Cleanup() error {
	w.running = false
	return nil
}

// GetFrameCount returns the number of frames rendered so far.
func (w *HeadlessWindow) GetFrameCount() int { return w.frameCount }
