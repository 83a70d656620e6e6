package cpu

import "testing"

// flatBus is a minimal 64KB RAM bus for unit-testing the CPU in
// isolation, with a fake NMI line the test controls directly.
type flatBus struct {
	mem         [0x10000]uint8
	nmiPending  bool
	nmiAcked    bool
}

func (b *flatBus) Read(addr uint16) uint8  { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v uint8) { b.mem[addr] = v }
func (b *flatBus) NMIPending() bool        { return b.nmiPending }
func (b *flatBus) AckNMIDelivered()        { b.nmiAcked = true; b.nmiPending = false }

func newTestCPU() (*CPU, *flatBus) {
	bus := &flatBus{}
	bus.mem[0xFFFC] = 0x00
	bus.mem[0xFFFD] = 0x80
	c := New(bus)
	c.Reset()
	return c, bus
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU()
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x, want 0xFD", c.SP)
	}
	if c.StatusByte() != 0x24 {
		t.Fatalf("status = %#02x, want 0x24", c.StatusByte())
	}
	if c.PC != 0x8000 {
		t.Fatalf("PC = %#04x, want 0x8000", c.PC)
	}
}

func TestLDAImmediateSetsFlags(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xA9 // LDA #$00
	bus.mem[0x8001] = 0x00
	c.Step()
	if c.A != 0 || !c.Z || c.N {
		t.Fatalf("A=%#02x Z=%v N=%v, want 0/true/false", c.A, c.Z, c.N)
	}
}

func TestStackPushPullWraps(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xA9 // LDA #$42
	bus.mem[0x8001] = 0x42
	bus.mem[0x8002] = 0x48 // PHA
	bus.mem[0x8003] = 0xA9 // LDA #$00
	bus.mem[0x8004] = 0x00
	bus.mem[0x8005] = 0x68 // PLA
	for i := 0; i < 4; i++ {
		c.Step()
	}
	if c.A != 0x42 {
		t.Fatalf("A = %#02x after PLA, want 0x42", c.A)
	}
	if c.SP != 0xFD {
		t.Fatalf("SP = %#02x after matched push/pull, want 0xFD", c.SP)
	}
}

func TestStackPointerWrapsAtPageBoundary(t *testing.T) {
	c, bus := newTestCPU()
	c.SP = 0x00
	bus.mem[0x8000] = 0x48 // PHA
	c.Step()
	if c.SP != 0xFF {
		t.Fatalf("SP = %#02x, want 0xFF (wrapped)", c.SP)
	}
	if bus.mem[0x0100] != 0 {
		t.Fatalf("push should have written to $0100")
	}
}

func TestIndirectJMPPageBoundaryBug(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0x6C // JMP ($30FF)
	bus.mem[0x8001] = 0xFF
	bus.mem[0x8002] = 0x30
	bus.mem[0x30FF] = 0x00
	bus.mem[0x3000] = 0x40 // high byte incorrectly fetched from $3000, not $3100
	bus.mem[0x3100] = 0x12
	c.Step()
	if c.PC != 0x4000 {
		t.Fatalf("PC = %#04x, want 0x4000 (indirect JMP page-wrap bug)", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0x20 // JSR $9000
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x90
	bus.mem[0x9000] = 0x60 // RTS
	c.Step()
	if c.PC != 0x9000 {
		t.Fatalf("PC = %#04x after JSR, want 0x9000", c.PC)
	}
	c.Step()
	if c.PC != 0x8003 {
		t.Fatalf("PC = %#04x after RTS, want 0x8003", c.PC)
	}
}

func TestADCSetsCarryAndOverflow(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xA9 // LDA #$7F
	bus.mem[0x8001] = 0x7F
	bus.mem[0x8002] = 0x69 // ADC #$01
	bus.mem[0x8003] = 0x01
	c.Step()
	c.Step()
	if c.A != 0x80 {
		t.Fatalf("A = %#02x, want 0x80", c.A)
	}
	if !c.V {
		t.Fatal("expected overflow flag set on $7F + $01")
	}
	if c.C {
		t.Fatal("expected no carry from $7F + $01")
	}
}

func TestSBCBorrow(t *testing.T) {
	c, bus := newTestCPU()
	c.C = true // no borrow going in
	bus.mem[0x8000] = 0xA9 // LDA #$00
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0xE9 // SBC #$01
	bus.mem[0x8003] = 0x01
	c.Step()
	c.Step()
	if c.A != 0xFF {
		t.Fatalf("A = %#02x, want 0xff", c.A)
	}
	if c.C {
		t.Fatal("expected carry clear (borrow occurred)")
	}
}

func TestBranchTakenAddsCycleAndPageCrossAddsAnother(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x80F0
	bus.mem[0x80F0] = 0xD0 // BNE +$20 -> crosses into next page
	bus.mem[0x80F1] = 0x20
	c.Z = false
	cycles := c.Step()
	if cycles != 4 {
		t.Fatalf("cycles = %d, want 4 (2 base + taken + page cross)", cycles)
	}
	if c.PC != 0x8112 {
		t.Fatalf("PC = %#04x, want 0x8112", c.PC)
	}
}

func TestNMIServicePushesStateAndJumpsToVector(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0xFFFA] = 0x00
	bus.mem[0xFFFB] = 0xA0
	bus.mem[0x8000] = 0xEA // NOP, never reached this step
	bus.mem[0xA000] = 0xEA // NOP at the handler, executed in the same step
	bus.nmiPending = true

	c.Step()

	if c.PC != 0xA001 {
		t.Fatalf("PC = %#04x after NMI, want 0xa001 (vector $A000 plus the handler's first NOP)", c.PC)
	}
	if !bus.nmiAcked {
		t.Fatal("expected AckNMIDelivered to be called")
	}
	if !c.I {
		t.Fatal("expected interrupt-disable set after NMI service")
	}
}

func TestKILHaltsCPU(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0x02 // KIL
	c.Step()
	if !c.Killed() {
		t.Fatal("expected CPU to be killed after KIL opcode")
	}
	pc := c.PC
	cycles := c.Step()
	if cycles != 0 || c.PC != pc {
		t.Fatal("expected Step to be a no-op once killed")
	}
}

func TestZeroPageXWrapsWithinZeroPage(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0xFF
	bus.mem[0x8000] = 0xB5 // LDA $80,X -> wraps to $7F
	bus.mem[0x8001] = 0x80
	bus.mem[0x007F] = 0x55
	c.Step()
	if c.A != 0x55 {
		t.Fatalf("A = %#02x, want 0x55 (zero page wrap)", c.A)
	}
}

func TestIndirectXWrapsWithinZeroPage(t *testing.T) {
	c, bus := newTestCPU()
	c.X = 0x01
	bus.mem[0x8000] = 0xA1 // LDA ($FF,X) -> ptr at zero-page $00 (wrapped)
	bus.mem[0x8001] = 0xFF
	bus.mem[0x0000] = 0x34
	bus.mem[0x0001] = 0x12
	bus.mem[0x1234] = 0x99
	c.Step()
	if c.A != 0x99 {
		t.Fatalf("A = %#02x, want 0x99", c.A)
	}
}

func TestCMPSetsCarryWhenRegGreaterOrEqual(t *testing.T) {
	c, bus := newTestCPU()
	bus.mem[0x8000] = 0xA9 // LDA #$10
	bus.mem[0x8001] = 0x10
	bus.mem[0x8002] = 0xC9 // CMP #$10
	bus.mem[0x8003] = 0x10
	c.Step()
	c.Step()
	if !c.C || !c.Z {
		t.Fatalf("C=%v Z=%v, want true/true on equal compare", c.C, c.Z)
	}
}
