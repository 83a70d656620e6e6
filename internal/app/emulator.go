package app

import (
	"time"

	"gones/internal/bus"
)

// cyclesPerFrame is the NTSC CPU cycle count per frame
// (341 dots * 262 scanlines / 3 PPU cycles per CPU cycle, rounded up).
const cyclesPerFrame = 29781

// Emulator drives the bus exactly one frame at a time, matching the
// host's natural callback rate (Ebitengine's Update, or the headless
// loop) rather than running its own internal clock.
type Emulator struct {
	bus    *bus.Bus
	isRunning     bool
	lastResetTime time.Time
	frameCount    uint64
}

// NewEmulator creates a new emulator bound to bus.
func NewEmulator(b *bus.Bus, cfg *Config) *Emulator {
	e := &Emulator{bus: b, lastResetTime: time.Now()}
	e.Reset()
	return e
}

// Reset clears frame/cycle bookkeeping; the underlying bus keeps its
// own CPU/PPU/memory state and is reset independently via Bus.Reset.
func (e *Emulator) Reset() {
	e.frameCount = 0
	e.lastResetTime = time.Now()
}

// Start marks the emulator as running.
func (e *Emulator) Start() { e.isRunning = true }

// Stop halts frame stepping.
func (e *Emulator) Stop() { e.isRunning = false }

// Update steps the bus until at least one frame's worth of CPU cycles
// has elapsed; the last instruction may run a few cycles past it.
func (e *Emulator) Update() error {
	if !e.isRunning {
		return nil
	}
	startCycles := e.bus.CycleCount()
	target := startCycles + cyclesPerFrame
	for e.bus.CycleCount() < target {
		e.bus.Step()
	}
	e.frameCount++
	return nil
}

// FrameBuffer returns the current RGB888 frame buffer.
func (e *Emulator) FrameBuffer() []byte { return e.bus.FrameBuffer() }

// FrameCount returns the number of frames Update has completed.
func (e *Emulator) FrameCount() uint64 { return e.frameCount }

// CycleCount returns the bus's cumulative CPU cycle count.
func (e *Emulator) CycleCount() uint64 { return e.bus.CycleCount() }

// IsRunning reports whether the emulator is accepting Update calls.
func (e *Emulator) IsRunning() bool { return e.isRunning }

// Uptime returns the time elapsed since the last Reset.
func (e *Emulator) Uptime() time.Duration { return time.Since(e.lastResetTime) }

// Cleanup releases emulator-owned resources. The bus and its
// components are owned by Application and cleaned up separately.
func (e *Emulator) Cleanup() error {
	e.Stop()
	return nil
}
