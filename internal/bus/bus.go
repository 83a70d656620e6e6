// Package bus wires the CPU, PPU, APU, memory maps, and controller
// ports into a single system clock: it owns the fetch-decode-execute
// loop's outer tick, the 3x PPU/1x APU clocking ratio, and OAM DMA.
package bus

import (
	"gones/internal/apu"
	"gones/internal/cartridge"
	"gones/internal/cpu"
	"gones/internal/input"
	"gones/internal/memory"
	"gones/internal/ppu"
)

// cpuCyclesPerFrame is the NTSC CPU-cycle budget per frame: 89342 PPU
// cycles / 3, rounded up.
const cpuCyclesPerFrame = 29781

// Bus connects every NES component and drives the system clock.
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	cpuCycles  uint64
	ppuCycles  uint64
	frameCount uint64

	dmaSuspendCycles uint64
	dmaInProgress    bool

	// hostFrameReady is invoked whenever the PPU's nmi_pending makes
	// its 0->1 transition, i.e. VBlank entry: the point at which a
	// host renderer can safely consume the just-finished frame buffer
	// (spec §4.2, "the bus invokes the end-of-frame host callback").
	hostFrameReady func()
}

// SetHostFrameReadyCallback sets the hook invoked on VBlank entry.
func (b *Bus) SetHostFrameReadyCallback(cb func()) { b.hostFrameReady = cb }

// New creates a bus with no cartridge loaded. Call LoadCartridge
// before Step.
func New() *Bus {
	b := &Bus{
		PPU:   ppu.New(nil, nil, nil),
		APU:   apu.New(),
		Input: input.NewInputState(),
	}
	b.Memory = memory.New(b.PPU, b.APU, nil)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)
	b.PPU.SetNMICallback(b.triggerNMI)
	b.PPU.SetFrameCompleteCallback(b.handleFrameComplete)
	b.Reset()
	return b
}

// Read implements cpu.Bus by delegating to the CPU memory map.
func (b *Bus) Read(address uint16) uint8 { return b.Memory.Read(address) }

// Write implements cpu.Bus by delegating to the CPU memory map.
func (b *Bus) Write(address uint16, value uint8) { b.Memory.Write(address, value) }

// NMIPending implements cpu.Bus by forwarding the query to the PPU,
// where nmi_pending/nmi_delivered actually live (spec §3).
func (b *Bus) NMIPending() bool { return b.PPU.NMIPending() }

// AckNMIDelivered implements cpu.Bus.
func (b *Bus) AckNMIDelivered() { b.PPU.AckNMIDelivered() }

// Reset resets every component to its post-power-up state.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()
	b.cpuCycles = 0
	b.ppuCycles = 0
	b.frameCount = 0
	b.dmaSuspendCycles = 0
	b.dmaInProgress = false
}

// triggerNMI is the PPU's nmi-pending-transition callback: the PPU
// itself owns the nmi_pending flag the CPU queries, so this hook just
// forwards the transition to whatever host renderer is listening.
func (b *Bus) triggerNMI() {
	if b.hostFrameReady != nil {
		b.hostFrameReady()
	}
}

// handleFrameComplete is invoked by the PPU at the scanline 262->0
// wrap, once per frame.
func (b *Bus) handleFrameComplete() {
	b.frameCount++
}

// Step ticks the system by exactly one CPU instruction (or, while an
// OAM DMA transfer is suspending the CPU, by one stalled cycle),
// clocking the PPU 3x and the APU 1x for every CPU cycle consumed.
func (b *Bus) Step() uint64 {
	var cpuCycles uint64

	if b.dmaSuspendCycles > 0 {
		cpuCycles = 1
		b.dmaSuspendCycles--
		if b.dmaSuspendCycles == 0 {
			b.dmaInProgress = false
		}
	} else {
		cpuCycles = b.CPU.Step()
	}

	for i := uint64(0); i < cpuCycles*3; i++ {
		b.PPU.Step()
		b.ppuCycles++
	}
	for i := uint64(0); i < cpuCycles; i++ {
		b.APU.Step()
	}

	b.cpuCycles += cpuCycles
	return cpuCycles
}

// TriggerOAMDMA performs the 256-byte OAM transfer from the given
// page and suspends the CPU for 513 cycles, or 514 if the transfer
// starts on an odd CPU cycle (spec §8 scenario 5). The copy starts at
// the PPU's current oam_addr cursor and wraps at 256 bytes, not at
// OAM index 0, so a DMA triggered with a nonzero oam_addr leaves the
// bytes before that cursor holding the tail of the source page. The
// copy itself happens immediately; the stall is accounted for by Step
// ticking dmaSuspendCycles down across subsequent calls.
func (b *Bus) TriggerOAMDMA(page uint8) {
	if b.dmaInProgress {
		return
	}

	dmaCycles := uint64(513)
	if b.cpuCycles%2 == 1 {
		dmaCycles = 514
	}
	b.dmaInProgress = true
	b.dmaSuspendCycles = dmaCycles

	base := uint16(page) << 8
	start := b.PPU.OAMAddr()
	for i := 0; i < 256; i++ {
		dst := start + uint8(i)
		b.PPU.WriteOAM(dst, b.Memory.Read(base+uint16(i)))
	}
}

// LoadCartridge installs cart, rebuilds the memory maps around it,
// and resets the CPU so PC loads from the new reset vector.
func (b *Bus) LoadCartridge(cart memory.CartridgeInterface) {
	b.Memory = memory.New(b.PPU, b.APU, cart)
	b.Memory.SetInputSystem(b.Input)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)
	b.CPU = cpu.New(b)

	mirrorMode := memory.MirrorHorizontal
	if c, ok := cart.(*cartridge.Cartridge); ok {
		switch c.GetMirrorMode() {
		case cartridge.MirrorVertical:
			mirrorMode = memory.MirrorVertical
		case cartridge.MirrorFourScreen:
			mirrorMode = memory.MirrorFourScreen
		default:
			mirrorMode = memory.MirrorHorizontal
		}
	}
	b.PPU.SetMemory(memory.NewPPUMemory(cart, mirrorMode))

	b.CPU.Reset()
}

// Run runs the emulator for the given number of frames.
func (b *Bus) Run(frames int) {
	target := b.frameCount + uint64(frames)
	for b.frameCount < target {
		b.Step()
	}
}

// Frame runs one NTSC frame's worth of CPU cycles.
func (b *Bus) Frame() {
	target := b.cpuCycles + cpuCyclesPerFrame
	for b.cpuCycles < target {
		b.Step()
	}
}

// FrameBuffer returns the current RGB888 frame buffer.
func (b *Bus) FrameBuffer() []byte { return b.PPU.FrameBuffer() }

// CycleCount returns the total CPU cycles executed since reset.
func (b *Bus) CycleCount() uint64 { return b.cpuCycles }

// FrameCount returns the number of complete frames rendered.
func (b *Bus) FrameCount() uint64 { return b.frameCount }

// IsDMAInProgress reports whether an OAM DMA stall is in progress.
func (b *Bus) IsDMAInProgress() bool { return b.dmaInProgress }

// SetControllerButton sets a single button on controller 1 or 2.
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 0:
		b.Input.Controller1.SetButton(button, pressed)
	case 1:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons sets all eight buttons on controller 1 or 2 at once.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 0:
		b.Input.SetButtons1(buttons)
	case 1:
		b.Input.SetButtons2(buttons)
	}
}

// CPUState is a snapshot of CPU registers and flags, for tests.
type CPUState struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
	Cycles  uint64
	Flags   CPUFlags
}

// CPUFlags is a snapshot of the CPU status flags, for tests.
type CPUFlags struct {
	N, V, B, D, I, Z, C bool
}

// GetCPUState returns the current CPU state snapshot.
func (b *Bus) GetCPUState() CPUState {
	return CPUState{
		PC:     b.CPU.PC,
		A:      b.CPU.A,
		X:      b.CPU.X,
		Y:      b.CPU.Y,
		SP:     b.CPU.SP,
		Cycles: b.cpuCycles,
		Flags: CPUFlags{
			N: b.CPU.N,
			V: b.CPU.V,
			B: b.CPU.B,
			D: b.CPU.D,
			I: b.CPU.I,
			Z: b.CPU.Z,
			C: b.CPU.C,
		},
	}
}

// PPUState is a snapshot of PPU timing and status, for tests.
type PPUState struct {
	Scanline    int
	Cycle       int
	FrameCount  uint64
	VBlankFlag  bool
	RenderingOn bool
}

// GetPPUState returns the current PPU state snapshot, without the
// read-clears-VBlank side effect a real $2002 access would have.
func (b *Bus) GetPPUState() PPUState {
	return PPUState{
		Scanline:    b.PPU.Scanline(),
		Cycle:       b.PPU.Dot(),
		FrameCount:  b.frameCount,
		VBlankFlag:  b.PPU.VBlankFlag(),
		RenderingOn: b.PPU.RenderingEnabled(),
	}
}
