// Package memory implements the NES CPU and PPU memory maps: address
// decoding, nametable mirroring, and palette RAM mirroring.
package memory

// Memory is the CPU-side memory map: 2KB internal RAM plus the
// decode table routing the rest of the 16-bit address space to the
// PPU, APU/controller ports, and cartridge.
type Memory struct {
	ram [0x800]uint8

	ppuRegisters PPUInterface
	apuRegisters APUInterface
	inputSystem  InputInterface
	cartridge    CartridgeInterface

	dmaCallback func(uint8)
}

// PPUMemory is the PPU-side memory map: nametable VRAM and palette
// RAM, with pattern-table reads/writes delegated to the cartridge.
type PPUMemory struct {
	vram       [0x800]uint8 // 2KB nametable storage (spec §3)
	paletteRAM [32]uint8
	cartridge  CartridgeInterface
	mirroring  MirrorMode
}

// MirrorMode is the nametable mirroring mode. Mirrors cartridge.MirrorMode
// one-to-one; kept as a distinct type so this package has no import-cycle
// dependency on cartridge.
type MirrorMode uint8

const (
	MirrorHorizontal MirrorMode = iota
	MirrorVertical
	MirrorFourScreen
)

// PPUInterface is the PPU register read/write surface the bus exposes
// to the memory map.
type PPUInterface interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// APUInterface is the APU register write surface. No audio synthesis
// is specified; writes are accepted and retained, not interpreted.
type APUInterface interface {
	WriteRegister(address uint16, value uint8)
	ReadStatus() uint8
}

// InputInterface is the controller shift-register read/write surface.
type InputInterface interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CartridgeInterface is the PRG/CHR surface a loaded cartridge exposes.
type CartridgeInterface interface {
	ReadPRG(address uint16) uint8
	WritePRG(address uint16, value uint8)
	ReadCHR(address uint16) uint8
	WriteCHR(address uint16, value uint8)
}

// New creates the CPU memory map over the given PPU/APU/cartridge.
func New(ppu PPUInterface, apu APUInterface, cart CartridgeInterface) *Memory {
	return &Memory{ppuRegisters: ppu, apuRegisters: apu, cartridge: cart}
}

// SetInputSystem attaches the controller ports at $4016/$4017.
func (m *Memory) SetInputSystem(input InputInterface) { m.inputSystem = input }

// SetDMACallback attaches the OAM DMA trigger invoked on a $4014 write.
// The callback is expected to tick the bus for the documented 513/514
// cycles and perform the 256-byte copy itself.
func (m *Memory) SetDMACallback(callback func(uint8)) { m.dmaCallback = callback }

// Read implements the CPU address-decode table (spec §4.2).
func (m *Memory) Read(address uint16) uint8 {
	switch {
	case address < 0x2000:
		return m.ram[address&0x07FF]

	case address < 0x4000:
		return m.ppuRegisters.ReadRegister(0x2000 + (address & 0x0007))

	case address == 0x4015:
		return m.apuRegisters.ReadStatus()

	case address == 0x4016 || address == 0x4017:
		if m.inputSystem != nil {
			return m.inputSystem.Read(address)
		}
		return 0

	case address >= 0x4000 && address <= 0x4013:
		return 0 // open: APU registers are write-only

	case address == 0x4014:
		return 0 // open: OAM DMA trigger is write-only

	case address < 0x8000:
		return 0 // $4018-$7FFF: unmapped in this spec, ignored

	default:
		if m.cartridge != nil {
			return m.cartridge.ReadPRG(address)
		}
		return 0
	}
}

// Write implements the CPU address-decode table (spec §4.2).
func (m *Memory) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ram[address&0x07FF] = value

	case address < 0x4000:
		m.ppuRegisters.WriteRegister(0x2000+(address&0x0007), value)

	case address == 0x4014:
		if m.dmaCallback != nil {
			m.dmaCallback(value)
		}

	case address == 0x4016:
		if m.inputSystem != nil {
			m.inputSystem.Write(address, value)
		}

	case address == 0x4017 || (address >= 0x4000 && address <= 0x4013) || address == 0x4015:
		m.apuRegisters.WriteRegister(address, value)

	case address < 0x8000:
		// $4018-$7FFF: unmapped in this spec, ignored

	default:
		if m.cartridge != nil {
			m.cartridge.WritePRG(address, value)
		}
	}
}

// NewPPUMemory creates the PPU memory map over the given cartridge
// CHR and mirroring mode.
func NewPPUMemory(cart CartridgeInterface, mirroring MirrorMode) *PPUMemory {
	mem := &PPUMemory{cartridge: cart, mirroring: mirroring}
	for i := 0; i < 32; i += 4 {
		mem.paletteRAM[i] = 0x0F
	}
	return mem
}

// Read reads from the 14-bit PPU address space ($0000-$3FFF).
func (pm *PPUMemory) Read(address uint16) uint8 {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		return pm.cartridge.ReadCHR(address)
	case address < 0x3000:
		return pm.vram[pm.nametableIndex(address)]
	case address < 0x3F00:
		return pm.vram[pm.nametableIndex(address-0x1000)]
	default:
		return pm.readPalette(address)
	}
}

// Write writes to the 14-bit PPU address space ($0000-$3FFF). Pattern
// table writes are discarded: CHR is ROM under mapper 0.
func (pm *PPUMemory) Write(address uint16, value uint8) {
	address &= 0x3FFF

	switch {
	case address < 0x2000:
		pm.cartridge.WriteCHR(address, value)
	case address < 0x3000:
		pm.vram[pm.nametableIndex(address)] = value
	case address < 0x3F00:
		pm.vram[pm.nametableIndex(address-0x1000)] = value
	default:
		pm.writePalette(address, value)
	}
}

// nametableIndex folds one of the four logical $2xxx nametables onto
// physical VRAM per the cartridge's mirroring mode.
func (pm *PPUMemory) nametableIndex(address uint16) uint16 {
	address &= 0x0FFF
	nametable := (address >> 10) & 3
	offset := address & 0x3FF

	switch pm.mirroring {
	case MirrorHorizontal:
		// logical {0,1} -> physical 0; {2,3} -> physical 1
		if nametable >= 2 {
			return 0x400 + offset
		}
		return offset

	case MirrorVertical:
		// logical {0,2} -> physical 0; {1,3} -> physical 1
		if nametable == 1 || nametable == 3 {
			return 0x400 + offset
		}
		return offset

	case MirrorFourScreen:
		// Only 2KB of nametable storage exists in this spec (no
		// on-cartridge extra VRAM); fold the four logical nametables
		// onto the two physical banks and ignore the remainder.
		return (nametable&1)*0x400 + offset

	default:
		return offset
	}
}

func (pm *PPUMemory) paletteIndex(address uint16) uint16 {
	index := (address - 0x3F00) & 0x1F
	if index == 0x10 || index == 0x14 || index == 0x18 || index == 0x1C {
		index &= 0x0F
	}
	return index
}

func (pm *PPUMemory) readPalette(address uint16) uint8 {
	return pm.paletteRAM[pm.paletteIndex(address)]
}

func (pm *PPUMemory) writePalette(address uint16, value uint8) {
	pm.paletteRAM[pm.paletteIndex(address)] = value
}
