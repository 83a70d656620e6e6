package memory

import "testing"

type mockPPU struct {
	reads  []uint16
	writes map[uint16]uint8
}

func newMockPPU() *mockPPU { return &mockPPU{writes: map[uint16]uint8{}} }

func (p *mockPPU) ReadRegister(address uint16) uint8 {
	p.reads = append(p.reads, address)
	return uint8(address)
}
func (p *mockPPU) WriteRegister(address uint16, value uint8) { p.writes[address] = value }

type mockAPU struct {
	writes map[uint16]uint8
	status uint8
}

func newMockAPU() *mockAPU { return &mockAPU{writes: map[uint16]uint8{}} }
func (a *mockAPU) WriteRegister(address uint16, value uint8) { a.writes[address] = value }
func (a *mockAPU) ReadStatus() uint8                          { return a.status }

type mockCart struct {
	prg [0x8000]uint8
	chr [0x2000]uint8
}

func (c *mockCart) ReadPRG(address uint16) uint8  { return c.prg[address-0x8000] }
func (c *mockCart) WritePRG(address uint16, v uint8) {}
func (c *mockCart) ReadCHR(address uint16) uint8  { return c.chr[address] }
func (c *mockCart) WriteCHR(address uint16, v uint8) {}

type mockInput struct {
	lastWrite uint8
	readValue uint8
}

func (i *mockInput) Read(address uint16) uint8     { return i.readValue }
func (i *mockInput) Write(address uint16, v uint8) { i.lastWrite = v }

func TestRAMMirroring(t *testing.T) {
	m := New(newMockPPU(), newMockAPU(), &mockCart{})
	m.Write(0x0001, 0x42)
	for _, mirror := range []uint16{0x0001, 0x0801, 0x1001, 0x1801} {
		if got := m.Read(mirror); got != 0x42 {
			t.Fatalf("Read(%#04x) = %#02x, want 0x42", mirror, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	ppu := newMockPPU()
	m := New(ppu, newMockAPU(), &mockCart{})
	for _, addr := range []uint16{0x2000, 0x2008, 0x3FF8} {
		m.Read(addr)
	}
	for _, got := range ppu.reads {
		if got != 0x2000 {
			t.Fatalf("expected all reads to fold to $2000, got %#04x", got)
		}
	}
}

func TestOAMDMATriggersCallback(t *testing.T) {
	m := New(newMockPPU(), newMockAPU(), &mockCart{})
	var triggered uint8
	m.SetDMACallback(func(page uint8) { triggered = page })
	m.Write(0x4014, 0x07)
	if triggered != 0x07 {
		t.Fatalf("DMA callback page = %#02x, want 0x07", triggered)
	}
}

func TestControllerPorts(t *testing.T) {
	in := &mockInput{readValue: 0x01}
	m := New(newMockPPU(), newMockAPU(), &mockCart{})
	m.SetInputSystem(in)
	m.Write(0x4016, 0x01)
	if in.lastWrite != 0x01 {
		t.Fatalf("strobe write not forwarded")
	}
	if got := m.Read(0x4016); got != 0x01 {
		t.Fatalf("Read($4016) = %#02x, want 0x01", got)
	}
}

func TestPRGROMWindow(t *testing.T) {
	cart := &mockCart{}
	cart.prg[0] = 0x77
	m := New(newMockPPU(), newMockAPU(), cart)
	if got := m.Read(0x8000); got != 0x77 {
		t.Fatalf("Read($8000) = %#02x, want 0x77", got)
	}
}

func TestPPUMemoryNametableMirroringHorizontal(t *testing.T) {
	cart := &mockCart{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x2000, 0xAA)
	if got := pm.Read(0x2400); got != 0xAA {
		t.Fatalf("horizontal: $2400 should mirror $2000, got %#02x", got)
	}
	pm.Write(0x2800, 0xBB)
	if got := pm.Read(0x2C00); got != 0xBB {
		t.Fatalf("horizontal: $2C00 should mirror $2800, got %#02x", got)
	}
}

func TestPPUMemoryNametableMirroringVertical(t *testing.T) {
	cart := &mockCart{}
	pm := NewPPUMemory(cart, MirrorVertical)
	pm.Write(0x2000, 0xAA)
	if got := pm.Read(0x2800); got != 0xAA {
		t.Fatalf("vertical: $2800 should mirror $2000, got %#02x", got)
	}
	pm.Write(0x2400, 0xBB)
	if got := pm.Read(0x2C00); got != 0xBB {
		t.Fatalf("vertical: $2C00 should mirror $2400, got %#02x", got)
	}
}

func TestPPUMemoryNametableMirrorRange(t *testing.T) {
	cart := &mockCart{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x2000, 0x11)
	if got := pm.Read(0x3000); got != 0x11 {
		t.Fatalf("$3000 should mirror $2000, got %#02x", got)
	}
}

func TestPaletteMirroring(t *testing.T) {
	cart := &mockCart{}
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x3F00, 0x0D)
	pm.Write(0x3F10, 0x03)
	if got := pm.Read(0x3F00); got != 0x03 {
		t.Fatalf("$3F10 write should mirror onto $3F00, got %#02x", got)
	}
	pm.Write(0x3F20, 0x09)
	if got := pm.Read(0x3F00); got != 0x09 {
		t.Fatalf("$3F20 should mirror $3F00 (addr mod 32), got %#02x", got)
	}
}

func TestPatternTableWritesDiscarded(t *testing.T) {
	cart := &mockCart{}
	cart.chr[0] = 0x5A
	pm := NewPPUMemory(cart, MirrorHorizontal)
	pm.Write(0x0000, 0xFF) // discarded by mockCart.WriteCHR no-op
	if got := pm.Read(0x0000); got != 0x5A {
		t.Fatalf("Read($0000) = %#02x, want 0x5a (CHR is ROM)", got)
	}
}
