// Package cpu implements 6502 instruction decode and execution: the
// official opcode set plus the documented unofficial opcodes actually
// exercised by commercial cartridges, addressing-mode evaluation,
// interrupt service, stack discipline, and per-opcode cycle counting.
package cpu

// Bus is the CPU's view of the rest of the system: the memory map
// plus the two interrupt-state queries the fetch loop needs. The
// nmi_pending/nmi_delivered flags themselves live on the PPU (spec
// §3); the CPU only ever asks about them through this interface.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
	NMIPending() bool
	AckNMIDelivered()
}

// Status flag bit positions.
const (
	flagC = 1 << 0
	flagZ = 1 << 1
	flagI = 1 << 2
	flagD = 1 << 3
	flagB = 1 << 4
	flagU = 1 << 5
	flagV = 1 << 6
	flagN = 1 << 7
)

// CPU is a 6502-family processor core.
type CPU struct {
	A, X, Y, SP uint8
	PC          uint16

	C, Z, I, D, B, U, V, N bool

	bus    Bus
	cycles uint64

	// extraCycles accumulates branch-taken / branch-page-crossed
	// penalties computed inside an instruction's own Exec, added to
	// the opcode's base cost for this Step.
	extraCycles uint64

	// killed is set by a KIL/JAM opcode: the CPU halts and every
	// subsequent Step is a no-op, per spec §4.4.
	killed bool
}

// New creates a CPU wired to bus. Call Reset before the first Step.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset sets the power-up/reset register state (spec §4.4): SP=$FD,
// status=$24 (I set, U set), PC loaded from the reset vector, A/X/Y=0.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.C, c.Z, c.D, c.B, c.V, c.N = false, false, false, false, false, false
	c.I = true
	c.U = true
	c.PC = c.readWord(0xFFFC)
	c.cycles = 0
	c.killed = false
}

// Cycles returns the total CPU cycles executed since reset.
func (c *CPU) Cycles() uint64 { return c.cycles }

// Killed reports whether a KIL/JAM opcode halted the CPU.
func (c *CPU) Killed() bool { return c.killed }

// PC/SP/Register accessors, used by tests and diagnostics.
func (c *CPU) GetPC() uint16 { return c.PC }
func (c *CPU) SetPC(pc uint16) { c.PC = pc }

// StatusByte packs the eight flags into the conventional 6502 layout.
func (c *CPU) StatusByte() uint8 {
	var v uint8
	if c.C {
		v |= flagC
	}
	if c.Z {
		v |= flagZ
	}
	if c.I {
		v |= flagI
	}
	if c.D {
		v |= flagD
	}
	if c.B {
		v |= flagB
	}
	if c.U {
		v |= flagU
	}
	if c.V {
		v |= flagV
	}
	if c.N {
		v |= flagN
	}
	return v
}

// SetStatusByte unpacks the conventional 6502 flag layout.
func (c *CPU) SetStatusByte(v uint8) {
	c.C = v&flagC != 0
	c.Z = v&flagZ != 0
	c.I = v&flagI != 0
	c.D = v&flagD != 0
	c.B = v&flagB != 0
	c.U = v&flagU != 0
	c.V = v&flagV != 0
	c.N = v&flagN != 0
}

func (c *CPU) setZN(v uint8) {
	c.Z = v == 0
	c.N = v&0x80 != 0
}

func (c *CPU) readWord(address uint16) uint16 {
	lo := c.bus.Read(address)
	hi := c.bus.Read(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) push(v uint8) {
	c.bus.Write(0x0100+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.bus.Read(0x0100 + uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(hi)<<8 | uint16(lo)
}

// Step executes exactly one instruction fetch + decode + execute,
// servicing a pending NMI first if one is latched (spec
// §4.4). It returns the number of CPU cycles consumed, which the bus
// uses to clock the PPU 3x and the APU 1x.
func (c *CPU) Step() uint64 {
	if c.killed {
		return 0
	}

	var nmiCycles uint64
	if c.bus.NMIPending() {
		c.serviceNMI()
		c.bus.AckNMIDelivered()
		nmiCycles = 2
	}

	opcode := c.bus.Read(c.PC)
	c.PC++

	info := &opcodeTable[opcode]
	addr, pageCrossed := c.resolveAddress(info.Mode)

	c.extraCycles = 0
	execute(c, info.Mnemonic, info.Mode, addr)

	total := nmiCycles + uint64(info.Cycles) + c.extraCycles
	if pageCrossed && info.PageCrossExtra {
		total++
	}
	c.cycles += total
	return total
}

// serviceNMI pushes PC and status (B cleared, U set), sets I, and
// loads PC from the NMI vector.
func (c *CPU) serviceNMI() {
	c.push16(c.PC)
	status := c.StatusByte()
	status &^= flagB
	status |= flagU
	c.push(status)
	c.I = true
	c.PC = c.readWord(0xFFFA)
}

// Mode tags an addressing mode the way spec design note §9 asks for:
// a small enumeration driving a static decode table, rather than a
// giant flat per-opcode dispatch.
type Mode int

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY
	ModeRelative
)

// resolveAddress implements the addressing modes exactly as specified
// in spec §4.4, advancing PC over any operand bytes and reporting
// whether the effective address computation crossed a page boundary.
func (c *CPU) resolveAddress(mode Mode) (addr uint16, pageCrossed bool) {
	switch mode {
	case ModeImplied, ModeAccumulator:
		return 0, false

	case ModeImmediate:
		addr = c.PC
		c.PC++
		return addr, false

	case ModeZeroPage:
		addr = uint16(c.bus.Read(c.PC))
		c.PC++
		return addr, false

	case ModeZeroPageX:
		base := c.bus.Read(c.PC)
		c.PC++
		return uint16(base + c.X), false

	case ModeZeroPageY:
		base := c.bus.Read(c.PC)
		c.PC++
		return uint16(base + c.Y), false

	case ModeAbsolute:
		addr = c.readOperandWord()
		return addr, false

	case ModeAbsoluteX:
		base := c.readOperandWord()
		addr = base + uint16(c.X)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case ModeAbsoluteY:
		base := c.readOperandWord()
		addr = base + uint16(c.Y)
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	case ModeIndirect:
		ptr := c.readOperandWord()
		var hiAddr uint16
		if ptr&0x00FF == 0x00FF {
			hiAddr = ptr & 0xFF00 // bug-for-bug: no page crossing on the pointer fetch
		} else {
			hiAddr = ptr + 1
		}
		lo := c.bus.Read(ptr)
		hi := c.bus.Read(hiAddr)
		return uint16(hi)<<8 | uint16(lo), false

	case ModeIndirectX:
		base := c.bus.Read(c.PC)
		c.PC++
		ptr := base + c.X
		lo := c.bus.Read(uint16(ptr))
		hi := c.bus.Read(uint16(ptr + 1))
		return uint16(hi)<<8 | uint16(lo), false

	case ModeIndirectY:
		base := c.bus.Read(c.PC)
		c.PC++
		lo := c.bus.Read(uint16(base))
		hi := c.bus.Read(uint16(base + 1))
		ptrBase := uint16(hi)<<8 | uint16(lo)
		addr = ptrBase + uint16(c.Y)
		return addr, (ptrBase & 0xFF00) != (addr & 0xFF00)

	case ModeRelative:
		offset := c.bus.Read(c.PC)
		c.PC++
		base := c.PC
		addr = uint16(int32(base) + int32(int8(offset)))
		return addr, (base & 0xFF00) != (addr & 0xFF00)

	default:
		return 0, false
	}
}

func (c *CPU) readOperandWord() uint16 {
	lo := c.bus.Read(c.PC)
	c.PC++
	hi := c.bus.Read(c.PC)
	c.PC++
	return uint16(hi)<<8 | uint16(lo)
}
