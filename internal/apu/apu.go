// Package apu accepts writes to the NES Audio Processing Unit's
// register range. No channel synthesis or sample mixing is performed
// (spec Non-goals); the registers are retained so a cartridge can
// freely probe or rely on $4015 status bits without the bus needing
// to special-case audio at all.
package apu

// APU models the register-visible surface of the audio unit: the
// five channel length counters (only a cartridge's readback of $4015
// is architecturally significant here) and the frame-counter mode
// bit written through $4017.
type APU struct {
	registers [0x18]uint8 // $4000-$4017 shadow, for readback/diagnostics

	lengthCounters [5]uint8 // pulse1, pulse2, triangle, noise, dmc
	frameIRQFlag   bool
	dmcIRQFlag     bool
	frameMode      bool // $4017 bit 7: false = 4-step, true = 5-step

	cycles uint64
}

// lengthTable is the standard NES length-counter lookup, indexed by
// the 5-bit value written to a channel's length-load register.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// New creates an APU with all channels silent.
func New() *APU { return &APU{} }

// Reset clears all register and channel state.
func (a *APU) Reset() {
	a.registers = [0x18]uint8{}
	a.lengthCounters = [5]uint8{}
	a.frameIRQFlag = false
	a.dmcIRQFlag = false
	a.frameMode = false
	a.cycles = 0
}

// Step advances the APU's internal cycle counter. No IRQ scheduling
// or sample generation happens here; cartridges that depend on frame
// IRQ timing are out of scope for this core.
func (a *APU) Step() {
	a.cycles++
}

// WriteRegister accepts a write anywhere in $4000-$4017. Length-load
// writes (the high byte of a channel's 4th register) update that
// channel's length counter so $4015 readback reflects channel
// activity; everything else is retained but not interpreted.
func (a *APU) WriteRegister(address uint16, value uint8) {
	if address < 0x4000 || address > 0x4017 {
		return
	}
	a.registers[address-0x4000] = value

	switch address {
	case 0x4003:
		a.lengthCounters[0] = lengthTable[value>>3]
	case 0x4007:
		a.lengthCounters[1] = lengthTable[value>>3]
	case 0x400B:
		a.lengthCounters[2] = lengthTable[value>>3]
	case 0x400F:
		a.lengthCounters[3] = lengthTable[value>>3]
	case 0x4015:
		for i := range a.lengthCounters {
			if value&(1<<uint(i)) == 0 {
				a.lengthCounters[i] = 0
			}
		}
	case 0x4017:
		a.frameMode = value&0x80 != 0
		if value&0x40 != 0 {
			a.frameIRQFlag = false
		}
	}
}

// ReadStatus implements the $4015 status read: bits 0-4 report
// whether each channel's length counter is still active, bit 6 the
// DMC IRQ flag, and bit 7 the frame IRQ flag. The frame IRQ flag
// clears on read, matching real hardware.
func (a *APU) ReadStatus() uint8 {
	var v uint8
	for i, lc := range a.lengthCounters {
		if lc > 0 {
			v |= 1 << uint(i)
		}
	}
	if a.dmcIRQFlag {
		v |= 0x40
	}
	if a.frameIRQFlag {
		v |= 0x80
	}
	a.frameIRQFlag = false
	return v
}

// GetSamples returns no audio: this core performs no synthesis.
func (a *APU) GetSamples() []float32 { return nil }

// SetSampleRate is a no-op retained for interface parity with a host
// audio backend that never gets wired to real synthesis.
func (a *APU) SetSampleRate(rate int) {}
