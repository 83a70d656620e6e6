// Package ppu implements the Picture Processing Unit: background and
// sprite rendering, VRAM/OAM/palette storage, VBlank/NMI generation,
// sprite-0-hit, and the scroll/addr register latches.
package ppu

import "gones/internal/memory"

// Register bit masks.
const (
	ctrlNMIEnable      = 0x80
	ctrlVRAMIncrement  = 0x04
	ctrlSpritePattern  = 0x08
	ctrlBGPattern      = 0x10
	ctrlNametableMask  = 0x03
	maskShowBG         = 0x08
	maskShowSprites    = 0x10
	statusVBlank       = 0x80
	statusSprite0Hit   = 0x40
)

// FrameWidth and FrameHeight are the visible NES picture dimensions.
const (
	FrameWidth  = 256
	FrameHeight = 240
)

// PPU is the 2C02 picture processing unit.
type PPU struct {
	memory *memory.PPUMemory

	oam     [256]uint8
	oamAddr uint8

	ctrl   uint8
	mask   uint8
	status uint8

	vaddr       uint16 // addr: 16-bit VRAM pointer, masked to $0000-$3FFF
	writeToggle bool   // w: shared latch for $2005/$2006 (false = first write)
	scrollX     uint8
	scrollY     uint8
	dataBuffer  uint8

	scanline int // 0..=261
	dot      int // 0..340

	nmiPending   bool
	nmiDelivered bool

	frame [FrameWidth * FrameHeight * 3]byte

	nmiCallback           func()
	frameCompleteCallback func()
}

// New creates a PPU over the given PPU memory map. mem may be nil if
// no cartridge is loaded yet; attach one later with SetMemory. The
// NMI and frame-complete callbacks are function values supplied at
// construction, not a back-pointer to the bus (spec design note on
// cyclic ownership).
func New(mem *memory.PPUMemory, nmiCallback, frameCompleteCallback func()) *PPU {
	return &PPU{
		memory:                mem,
		nmiCallback:           nmiCallback,
		frameCompleteCallback: frameCompleteCallback,
	}
}

// SetMemory attaches (or replaces) the PPU memory map, used when a
// cartridge is loaded after construction.
func (p *PPU) SetMemory(mem *memory.PPUMemory) { p.memory = mem }

// SetNMICallback replaces the NMI-assertion callback.
func (p *PPU) SetNMICallback(cb func()) { p.nmiCallback = cb }

// SetFrameCompleteCallback replaces the frame-complete callback.
func (p *PPU) SetFrameCompleteCallback(cb func()) { p.frameCompleteCallback = cb }

// Reset returns the PPU to its post-power-up state.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.oamAddr = 0
	p.vaddr = 0
	p.writeToggle = false
	p.scrollX, p.scrollY = 0, 0
	p.dataBuffer = 0
	p.scanline, p.dot = 0, 0
	p.nmiPending, p.nmiDelivered = false, false
}

// FrameBuffer returns the 256x240x3 RGB888 frame, row-major.
func (p *PPU) FrameBuffer() []byte { return p.frame[:] }

// VBlankFlag reports the status register's VBlank bit without the
// read-clears-it side effect a real $2002 access would have; used by
// diagnostics/tests that want to observe state without disturbing it.
func (p *PPU) VBlankFlag() bool { return p.status&statusVBlank != 0 }

// RenderingEnabled reports whether the mask register has background
// or sprite rendering enabled.
func (p *PPU) RenderingEnabled() bool { return p.mask&(maskShowSprites|maskShowBG) != 0 }

// Scanline and Dot expose the current raster position for diagnostics.
func (p *PPU) Scanline() int { return p.scanline }
func (p *PPU) Dot() int      { return p.dot }

// NMIPending reports whether an NMI is pending delivery.
func (p *PPU) NMIPending() bool { return p.nmiPending && !p.nmiDelivered }

// AckNMIDelivered marks the pending NMI as delivered to the CPU.
func (p *PPU) AckNMIDelivered() { p.nmiDelivered = true }

// Step advances the PPU by one dot (one PPU cycle) and reports
// whether a full frame was just completed (the scanline==262 wrap to
// 0, per spec §4.3).
func (p *PPU) Step() (frameComplete bool) {
	if p.scanline >= 0 && p.scanline < FrameHeight && p.dot >= 1 && p.dot <= FrameWidth {
		p.renderPixel(p.dot-1, p.scanline)
	}

	p.dot++
	if p.dot >= 341 {
		p.scanline++
		dotBeforeWrap := p.dot
		p.dot -= 341

		p.checkSprite0Hit(dotBeforeWrap)

		switch {
		case p.scanline == 241:
			p.status |= statusVBlank
			p.status &^= statusSprite0Hit
			if p.ctrl&ctrlNMIEnable != 0 {
				p.assertNMI()
			}

		case p.scanline == 262:
			p.scanline = 0
			p.nmiPending = false
			p.nmiDelivered = false
			p.status &^= (statusVBlank | statusSprite0Hit)
			frameComplete = true
			if p.frameCompleteCallback != nil {
				p.frameCompleteCallback()
			}
		}
	}

	return frameComplete
}

// checkSprite0Hit implements the spec's sprite-0-hit condition. It is
// evaluated once per scanline, at the dot>=341 wrap, against the
// just-incremented scanline and the dot value from before the -=341
// subtraction — not on every rendered dot.
func (p *PPU) checkSprite0Hit(dot int) {
	if p.mask&maskShowSprites == 0 {
		return
	}
	sprite0Y := p.oam[0]
	sprite0X := p.oam[3]
	if int(sprite0Y) == p.scanline && int(sprite0X) <= dot {
		p.status |= statusSprite0Hit
	}
}

func (p *PPU) assertNMI() {
	if p.nmiPending {
		return
	}
	p.nmiPending = true
	if p.nmiCallback != nil {
		p.nmiCallback()
	}
}

// --- CPU-visible register access ($2000-$2007, mirrored) ---

// ReadRegister implements CPU reads of the mirrored PPU register window.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address & 0x2007 {
	case 0x2002:
		value := p.status
		p.status &^= statusVBlank
		p.writeToggle = false
		return value
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readData()
	default:
		return 0 // open: write-only registers
	}
}

// WriteRegister implements CPU writes of the mirrored PPU register window.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address & 0x2007 {
	case 0x2000:
		p.writeCtrl(value)
	case 0x2001:
		p.mask = value
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writeScroll(value)
	case 0x2006:
		p.writeAddr(value)
	case 0x2007:
		p.writeData(value)
	}
}

func (p *PPU) writeCtrl(value uint8) {
	wasNMI := p.ctrl&ctrlNMIEnable != 0
	p.ctrl = value
	nowNMI := p.ctrl&ctrlNMIEnable != 0
	if !wasNMI && nowNMI && p.status&statusVBlank != 0 {
		p.assertNMI()
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.writeToggle {
		p.scrollX = value
	} else {
		p.scrollY = value
	}
	p.writeToggle = !p.writeToggle
}

func (p *PPU) writeAddr(value uint8) {
	if !p.writeToggle {
		p.vaddr = (p.vaddr & 0x00FF) | (uint16(value) << 8)
	} else {
		p.vaddr = (p.vaddr & 0xFF00) | uint16(value)
		p.vaddr &= 0x3FFF
	}
	p.writeToggle = !p.writeToggle
}

func (p *PPU) vramIncrement() uint16 {
	if p.ctrl&ctrlVRAMIncrement != 0 {
		return 32
	}
	return 1
}

func (p *PPU) readData() uint8 {
	addr := p.vaddr
	var result uint8
	if addr&0x3FFF >= 0x3F00 {
		// Palette reads bypass the buffer; the buffer is instead
		// refreshed with the mirrored nametable byte underneath.
		result = p.memory.Read(addr)
		p.dataBuffer = p.memory.Read(addr - 0x1000)
	} else {
		result = p.dataBuffer
		p.dataBuffer = p.memory.Read(addr)
	}
	p.vaddr = (p.vaddr + p.vramIncrement()) & 0x3FFF
	return result
}

func (p *PPU) writeData(value uint8) {
	p.memory.Write(p.vaddr, value)
	p.vaddr = (p.vaddr + p.vramIncrement()) & 0x3FFF
}

// --- OAM DMA ---

// WriteOAM writes a single byte at the given OAM index; used by the
// bus during OAM DMA so the transfer observes the current oam_addr
// cursor exactly like a $2004 write sequence.
func (p *PPU) WriteOAM(index uint8, value uint8) {
	p.oam[index] = value
}

// OAMAddr returns the current OAM address cursor (used as the DMA
// starting offset).
func (p *PPU) OAMAddr() uint8 { return p.oamAddr }

// --- Rendering ---

func (p *PPU) renderPixel(x, y int) {
	bgVal, bgColor := p.backgroundPixel(x, y)
	spriteVal, spriteColor, _ := p.spritePixel(x, y)

	var color uint8
	switch {
	case spriteVal != 0:
		// Priority is unimplemented per spec design note (c): opaque
		// sprites always draw in front of the background.
		color = spriteColor
	case bgVal != 0:
		color = bgColor
	default:
		color = p.memory.Read(0x3F00)
	}

	r, g, b := RGB(color)
	offset := (y*FrameWidth + x) * 3
	p.frame[offset] = r
	p.frame[offset+1] = g
	p.frame[offset+2] = b
}

// backgroundPixel returns the 2-bit pixel value and resolved palette
// byte for the background at screen position (x, y), per spec §4.3.
func (p *PPU) backgroundPixel(x, y int) (value uint8, color uint8) {
	totalX := x + int(p.scrollX)
	totalY := y + int(p.scrollY)

	nametableX := int(p.ctrl & 0x01)
	nametableY := int((p.ctrl >> 1) & 0x01)

	if totalX >= FrameWidth {
		totalX -= FrameWidth
		nametableX ^= 1
	}
	if totalY >= FrameHeight {
		totalY -= FrameHeight
		nametableY ^= 1
	}

	tileCol := totalX / 8
	tileRow := totalY / 8
	fineX := totalX % 8
	fineY := totalY % 8

	nametableIndex := nametableY*2 + nametableX
	base := uint16(0x2000 + nametableIndex*0x400)

	tileAddr := base + uint16(tileRow*32+tileCol)
	tileIdx := p.memory.Read(tileAddr)

	attrAddr := base + 0x3C0 + uint16((tileRow/4)*8+tileCol/4)
	attrByte := p.memory.Read(attrAddr)
	shift := uint(((tileRow%4)/2)*4 + ((tileCol%4)/2)*2)
	paletteIdx := (attrByte >> shift) & 0x03

	patternBank := uint16((p.ctrl >> 4) & 0x01)
	patternAddr := patternBank*0x1000 + uint16(tileIdx)*16

	plane0 := p.memory.Read(patternAddr + uint16(fineY))
	plane1 := p.memory.Read(patternAddr + 8 + uint16(fineY))
	bit := uint(7 - fineX)
	value = ((plane1>>bit)&1)<<1 | ((plane0 >> bit) & 1)

	if value == 0 {
		return 0, p.memory.Read(0x3F00)
	}
	offset := 1 + 4*uint16(paletteIdx) + uint16(value-1)
	return value, p.memory.Read(0x3F00 + offset)
}

// spritePixel returns the topmost opaque sprite pixel at screen
// position (x, y), processing OAM last-to-first so entry 0 ends up
// drawn on top, per spec §4.3.
func (p *PPU) spritePixel(x, y int) (value uint8, color uint8, isSpriteZero bool) {
	patternBank := uint16((p.ctrl >> 3) & 0x01)

	for i := 63; i >= 0; i-- {
		spriteY := int(p.oam[i*4])
		tileIdx := p.oam[i*4+1]
		attr := p.oam[i*4+2]
		spriteX := int(p.oam[i*4+3])

		row := y - spriteY
		if row < 0 || row >= 8 {
			continue
		}
		col := x - spriteX
		if col < 0 || col >= 8 {
			continue
		}

		if attr&0x80 != 0 { // vertical flip
			row = 7 - row
		}
		if attr&0x40 != 0 { // horizontal flip
			col = 7 - col
		}

		patternAddr := patternBank*0x1000 + uint16(tileIdx)*16
		plane0 := p.memory.Read(patternAddr + uint16(row))
		plane1 := p.memory.Read(patternAddr + 8 + uint16(row))
		bit := uint(7 - col)
		v := ((plane1>>bit)&1)<<1 | ((plane0 >> bit) & 1)
		if v == 0 {
			continue
		}

		paletteIdx := attr & 0x03
		offset := 0x11 + 4*uint16(paletteIdx) + uint16(v-1)
		value = v
		color = p.memory.Read(0x3F00 + offset)
		isSpriteZero = i == 0
	}
	return value, color, isSpriteZero
}
