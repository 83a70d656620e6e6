package cpu

// OpcodeInfo is one row of the static decode table driving Step: the
// mnemonic and addressing mode select execution and effective-address
// computation, Cycles/PageCrossExtra drive cycle accounting. Size
// records the instruction length; Step does not read it, since
// resolveAddress consumes the operand bytes itself.
type OpcodeInfo struct {
	Mnemonic       string
	Mode           Mode
	Size           uint8
	Cycles         uint8
	PageCrossExtra bool
}

// opcodeTable is indexed by opcode byte. Unassigned/reserved slots are
// documented unofficial opcodes (KIL excepted, which halts the CPU)
// or fall back to a 2-cycle implied NOP when no stable semantics are
// assigned anywhere in the corpus.
var opcodeTable = [256]OpcodeInfo{
	0x00: {"BRK", ModeImplied, 1, 7, false},
	0x01: {"ORA", ModeIndirectX, 2, 6, false},
	0x02: {"KIL", ModeImplied, 1, 2, false},
	0x03: {"SLO", ModeIndirectX, 2, 8, false},
	0x04: {"DOP", ModeZeroPage, 2, 3, false},
	0x05: {"ORA", ModeZeroPage, 2, 3, false},
	0x06: {"ASL", ModeZeroPage, 2, 5, false},
	0x07: {"SLO", ModeZeroPage, 2, 5, false},
	0x08: {"PHP", ModeImplied, 1, 3, false},
	0x09: {"ORA", ModeImmediate, 2, 2, false},
	0x0A: {"ASL", ModeAccumulator, 1, 2, false},
	0x0B: {"AAC", ModeImmediate, 2, 2, false},
	0x0C: {"TOP", ModeAbsolute, 3, 4, false},
	0x0D: {"ORA", ModeAbsolute, 3, 4, false},
	0x0E: {"ASL", ModeAbsolute, 3, 6, false},
	0x0F: {"SLO", ModeAbsolute, 3, 6, false},

	0x10: {"BPL", ModeRelative, 2, 2, false},
	0x11: {"ORA", ModeIndirectY, 2, 5, true},
	0x12: {"KIL", ModeImplied, 1, 2, false},
	0x13: {"SLO", ModeIndirectY, 2, 8, false},
	0x14: {"DOP", ModeZeroPageX, 2, 4, false},
	0x15: {"ORA", ModeZeroPageX, 2, 4, false},
	0x16: {"ASL", ModeZeroPageX, 2, 6, false},
	0x17: {"SLO", ModeZeroPageX, 2, 6, false},
	0x18: {"CLC", ModeImplied, 1, 2, false},
	0x19: {"ORA", ModeAbsoluteY, 3, 4, true},
	0x1A: {"NOP", ModeImplied, 1, 2, false},
	0x1B: {"SLO", ModeAbsoluteY, 3, 7, false},
	0x1C: {"TOP", ModeAbsoluteX, 3, 4, true},
	0x1D: {"ORA", ModeAbsoluteX, 3, 4, true},
	0x1E: {"ASL", ModeAbsoluteX, 3, 7, false},
	0x1F: {"SLO", ModeAbsoluteX, 3, 7, false},

	0x20: {"JSR", ModeAbsolute, 3, 6, false},
	0x21: {"AND", ModeIndirectX, 2, 6, false},
	0x22: {"KIL", ModeImplied, 1, 2, false},
	0x23: {"RLA", ModeIndirectX, 2, 8, false},
	0x24: {"BIT", ModeZeroPage, 2, 3, false},
	0x25: {"AND", ModeZeroPage, 2, 3, false},
	0x26: {"ROL", ModeZeroPage, 2, 5, false},
	0x27: {"RLA", ModeZeroPage, 2, 5, false},
	0x28: {"PLP", ModeImplied, 1, 4, false},
	0x29: {"AND", ModeImmediate, 2, 2, false},
	0x2A: {"ROL", ModeAccumulator, 1, 2, false},
	0x2B: {"AAC", ModeImmediate, 2, 2, false},
	0x2C: {"BIT", ModeAbsolute, 3, 4, false},
	0x2D: {"AND", ModeAbsolute, 3, 4, false},
	0x2E: {"ROL", ModeAbsolute, 3, 6, false},
	0x2F: {"RLA", ModeAbsolute, 3, 6, false},

	0x30: {"BMI", ModeRelative, 2, 2, false},
	0x31: {"AND", ModeIndirectY, 2, 5, true},
	0x32: {"KIL", ModeImplied, 1, 2, false},
	0x33: {"RLA", ModeIndirectY, 2, 8, false},
	0x34: {"DOP", ModeZeroPageX, 2, 4, false},
	0x35: {"AND", ModeZeroPageX, 2, 4, false},
	0x36: {"ROL", ModeZeroPageX, 2, 6, false},
	0x37: {"RLA", ModeZeroPageX, 2, 6, false},
	0x38: {"SEC", ModeImplied, 1, 2, false},
	0x39: {"AND", ModeAbsoluteY, 3, 4, true},
	0x3A: {"NOP", ModeImplied, 1, 2, false},
	0x3B: {"RLA", ModeAbsoluteY, 3, 7, false},
	0x3C: {"TOP", ModeAbsoluteX, 3, 4, true},
	0x3D: {"AND", ModeAbsoluteX, 3, 4, true},
	0x3E: {"ROL", ModeAbsoluteX, 3, 7, false},
	0x3F: {"RLA", ModeAbsoluteX, 3, 7, false},

	0x40: {"RTI", ModeImplied, 1, 6, false},
	0x41: {"EOR", ModeIndirectX, 2, 6, false},
	0x42: {"KIL", ModeImplied, 1, 2, false},
	0x43: {"SRE", ModeIndirectX, 2, 8, false},
	0x44: {"DOP", ModeZeroPage, 2, 3, false},
	0x45: {"EOR", ModeZeroPage, 2, 3, false},
	0x46: {"LSR", ModeZeroPage, 2, 5, false},
	0x47: {"SRE", ModeZeroPage, 2, 5, false},
	0x48: {"PHA", ModeImplied, 1, 3, false},
	0x49: {"EOR", ModeImmediate, 2, 2, false},
	0x4A: {"LSR", ModeAccumulator, 1, 2, false},
	0x4B: {"ASR", ModeImmediate, 2, 2, false},
	0x4C: {"JMP", ModeAbsolute, 3, 3, false},
	0x4D: {"EOR", ModeAbsolute, 3, 4, false},
	0x4E: {"LSR", ModeAbsolute, 3, 6, false},
	0x4F: {"SRE", ModeAbsolute, 3, 6, false},

	0x50: {"BVC", ModeRelative, 2, 2, false},
	0x51: {"EOR", ModeIndirectY, 2, 5, true},
	0x52: {"KIL", ModeImplied, 1, 2, false},
	0x53: {"SRE", ModeIndirectY, 2, 8, false},
	0x54: {"DOP", ModeZeroPageX, 2, 4, false},
	0x55: {"EOR", ModeZeroPageX, 2, 4, false},
	0x56: {"LSR", ModeZeroPageX, 2, 6, false},
	0x57: {"SRE", ModeZeroPageX, 2, 6, false},
	0x58: {"CLI", ModeImplied, 1, 2, false},
	0x59: {"EOR", ModeAbsoluteY, 3, 4, true},
	0x5A: {"NOP", ModeImplied, 1, 2, false},
	0x5B: {"SRE", ModeAbsoluteY, 3, 7, false},
	0x5C: {"TOP", ModeAbsoluteX, 3, 4, true},
	0x5D: {"EOR", ModeAbsoluteX, 3, 4, true},
	0x5E: {"LSR", ModeAbsoluteX, 3, 7, false},
	0x5F: {"SRE", ModeAbsoluteX, 3, 7, false},

	0x60: {"RTS", ModeImplied, 1, 6, false},
	0x61: {"ADC", ModeIndirectX, 2, 6, false},
	0x62: {"KIL", ModeImplied, 1, 2, false},
	0x63: {"RRA", ModeIndirectX, 2, 8, false},
	0x64: {"DOP", ModeZeroPage, 2, 3, false},
	0x65: {"ADC", ModeZeroPage, 2, 3, false},
	0x66: {"ROR", ModeZeroPage, 2, 5, false},
	0x67: {"RRA", ModeZeroPage, 2, 5, false},
	0x68: {"PLA", ModeImplied, 1, 4, false},
	0x69: {"ADC", ModeImmediate, 2, 2, false},
	0x6A: {"ROR", ModeAccumulator, 1, 2, false},
	0x6B: {"ARR", ModeImmediate, 2, 2, false},
	0x6C: {"JMP", ModeIndirect, 3, 5, false},
	0x6D: {"ADC", ModeAbsolute, 3, 4, false},
	0x6E: {"ROR", ModeAbsolute, 3, 6, false},
	0x6F: {"RRA", ModeAbsolute, 3, 6, false},

	0x70: {"BVS", ModeRelative, 2, 2, false},
	0x71: {"ADC", ModeIndirectY, 2, 5, true},
	0x72: {"KIL", ModeImplied, 1, 2, false},
	0x73: {"RRA", ModeIndirectY, 2, 8, false},
	0x74: {"DOP", ModeZeroPageX, 2, 4, false},
	0x75: {"ADC", ModeZeroPageX, 2, 4, false},
	0x76: {"ROR", ModeZeroPageX, 2, 6, false},
	0x77: {"RRA", ModeZeroPageX, 2, 6, false},
	0x78: {"SEI", ModeImplied, 1, 2, false},
	0x79: {"ADC", ModeAbsoluteY, 3, 4, true},
	0x7A: {"NOP", ModeImplied, 1, 2, false},
	0x7B: {"RRA", ModeAbsoluteY, 3, 7, false},
	0x7C: {"TOP", ModeAbsoluteX, 3, 4, true},
	0x7D: {"ADC", ModeAbsoluteX, 3, 4, true},
	0x7E: {"ROR", ModeAbsoluteX, 3, 7, false},
	0x7F: {"RRA", ModeAbsoluteX, 3, 7, false},

	0x80: {"DOP", ModeImmediate, 2, 2, false},
	0x81: {"STA", ModeIndirectX, 2, 6, false},
	0x82: {"DOP", ModeImmediate, 2, 2, false},
	0x83: {"AAX", ModeIndirectX, 2, 6, false},
	0x84: {"STY", ModeZeroPage, 2, 3, false},
	0x85: {"STA", ModeZeroPage, 2, 3, false},
	0x86: {"STX", ModeZeroPage, 2, 3, false},
	0x87: {"AAX", ModeZeroPage, 2, 3, false},
	0x88: {"DEY", ModeImplied, 1, 2, false},
	0x89: {"DOP", ModeImmediate, 2, 2, false},
	0x8A: {"TXA", ModeImplied, 1, 2, false},
	0x8B: {"XAA", ModeImmediate, 2, 2, false},
	0x8C: {"STY", ModeAbsolute, 3, 4, false},
	0x8D: {"STA", ModeAbsolute, 3, 4, false},
	0x8E: {"STX", ModeAbsolute, 3, 4, false},
	0x8F: {"AAX", ModeAbsolute, 3, 4, false},

	0x90: {"BCC", ModeRelative, 2, 2, false},
	0x91: {"STA", ModeIndirectY, 2, 6, false},
	0x92: {"KIL", ModeImplied, 1, 2, false},
	0x93: {"AXA", ModeIndirectY, 2, 6, false},
	0x94: {"STY", ModeZeroPageX, 2, 4, false},
	0x95: {"STA", ModeZeroPageX, 2, 4, false},
	0x96: {"STX", ModeZeroPageY, 2, 4, false},
	0x97: {"AAX", ModeZeroPageY, 2, 4, false},
	0x98: {"TYA", ModeImplied, 1, 2, false},
	0x99: {"STA", ModeAbsoluteY, 3, 5, false},
	0x9A: {"TXS", ModeImplied, 1, 2, false},
	0x9B: {"XAS", ModeAbsoluteY, 3, 5, false},
	0x9C: {"SYA", ModeAbsoluteX, 3, 5, false},
	0x9D: {"STA", ModeAbsoluteX, 3, 5, false},
	0x9E: {"SXA", ModeAbsoluteY, 3, 5, false},
	0x9F: {"AXA", ModeAbsoluteY, 3, 5, false},

	0xA0: {"LDY", ModeImmediate, 2, 2, false},
	0xA1: {"LDA", ModeIndirectX, 2, 6, false},
	0xA2: {"LDX", ModeImmediate, 2, 2, false},
	0xA3: {"LAX", ModeIndirectX, 2, 6, false},
	0xA4: {"LDY", ModeZeroPage, 2, 3, false},
	0xA5: {"LDA", ModeZeroPage, 2, 3, false},
	0xA6: {"LDX", ModeZeroPage, 2, 3, false},
	0xA7: {"LAX", ModeZeroPage, 2, 3, false},
	0xA8: {"TAY", ModeImplied, 1, 2, false},
	0xA9: {"LDA", ModeImmediate, 2, 2, false},
	0xAA: {"TAX", ModeImplied, 1, 2, false},
	0xAB: {"ATX", ModeImmediate, 2, 2, false},
	0xAC: {"LDY", ModeAbsolute, 3, 4, false},
	0xAD: {"LDA", ModeAbsolute, 3, 4, false},
	0xAE: {"LDX", ModeAbsolute, 3, 4, false},
	0xAF: {"LAX", ModeAbsolute, 3, 4, false},

	0xB0: {"BCS", ModeRelative, 2, 2, false},
	0xB1: {"LDA", ModeIndirectY, 2, 5, true},
	0xB2: {"KIL", ModeImplied, 1, 2, false},
	0xB3: {"LAX", ModeIndirectY, 2, 5, true},
	0xB4: {"LDY", ModeZeroPageX, 2, 4, false},
	0xB5: {"LDA", ModeZeroPageX, 2, 4, false},
	0xB6: {"LDX", ModeZeroPageY, 2, 4, false},
	0xB7: {"LAX", ModeZeroPageY, 2, 4, false},
	0xB8: {"CLV", ModeImplied, 1, 2, false},
	0xB9: {"LDA", ModeAbsoluteY, 3, 4, true},
	0xBA: {"TSX", ModeImplied, 1, 2, false},
	0xBB: {"LAR", ModeAbsoluteY, 3, 4, true},
	0xBC: {"LDY", ModeAbsoluteX, 3, 4, true},
	0xBD: {"LDA", ModeAbsoluteX, 3, 4, true},
	0xBE: {"LDX", ModeAbsoluteY, 3, 4, true},
	0xBF: {"LAX", ModeAbsoluteY, 3, 4, true},

	0xC0: {"CPY", ModeImmediate, 2, 2, false},
	0xC1: {"CMP", ModeIndirectX, 2, 6, false},
	0xC2: {"DOP", ModeImmediate, 2, 2, false},
	0xC3: {"DCP", ModeIndirectX, 2, 8, false},
	0xC4: {"CPY", ModeZeroPage, 2, 3, false},
	0xC5: {"CMP", ModeZeroPage, 2, 3, false},
	0xC6: {"DEC", ModeZeroPage, 2, 5, false},
	0xC7: {"DCP", ModeZeroPage, 2, 5, false},
	0xC8: {"INY", ModeImplied, 1, 2, false},
	0xC9: {"CMP", ModeImmediate, 2, 2, false},
	0xCA: {"DEX", ModeImplied, 1, 2, false},
	0xCB: {"AXS", ModeImmediate, 2, 2, false},
	0xCC: {"CPY", ModeAbsolute, 3, 4, false},
	0xCD: {"CMP", ModeAbsolute, 3, 4, false},
	0xCE: {"DEC", ModeAbsolute, 3, 6, false},
	0xCF: {"DCP", ModeAbsolute, 3, 6, false},

	0xD0: {"BNE", ModeRelative, 2, 2, false},
	0xD1: {"CMP", ModeIndirectY, 2, 5, true},
	0xD2: {"KIL", ModeImplied, 1, 2, false},
	0xD3: {"DCP", ModeIndirectY, 2, 8, false},
	0xD4: {"DOP", ModeZeroPageX, 2, 4, false},
	0xD5: {"CMP", ModeZeroPageX, 2, 4, false},
	0xD6: {"DEC", ModeZeroPageX, 2, 6, false},
	0xD7: {"DCP", ModeZeroPageX, 2, 6, false},
	0xD8: {"CLD", ModeImplied, 1, 2, false},
	0xD9: {"CMP", ModeAbsoluteY, 3, 4, true},
	0xDA: {"NOP", ModeImplied, 1, 2, false},
	0xDB: {"DCP", ModeAbsoluteY, 3, 7, false},
	0xDC: {"TOP", ModeAbsoluteX, 3, 4, true},
	0xDD: {"CMP", ModeAbsoluteX, 3, 4, true},
	0xDE: {"DEC", ModeAbsoluteX, 3, 7, false},
	0xDF: {"DCP", ModeAbsoluteX, 3, 7, false},

	0xE0: {"CPX", ModeImmediate, 2, 2, false},
	0xE1: {"SBC", ModeIndirectX, 2, 6, false},
	0xE2: {"DOP", ModeImmediate, 2, 2, false},
	0xE3: {"ISC", ModeIndirectX, 2, 8, false},
	0xE4: {"CPX", ModeZeroPage, 2, 3, false},
	0xE5: {"SBC", ModeZeroPage, 2, 3, false},
	0xE6: {"INC", ModeZeroPage, 2, 5, false},
	0xE7: {"ISC", ModeZeroPage, 2, 5, false},
	0xE8: {"INX", ModeImplied, 1, 2, false},
	0xE9: {"SBC", ModeImmediate, 2, 2, false},
	0xEA: {"NOP", ModeImplied, 1, 2, false},
	0xEB: {"SBC", ModeImmediate, 2, 2, false},
	0xEC: {"CPX", ModeAbsolute, 3, 4, false},
	0xED: {"SBC", ModeAbsolute, 3, 4, false},
	0xEE: {"INC", ModeAbsolute, 3, 6, false},
	0xEF: {"ISC", ModeAbsolute, 3, 6, false},

	0xF0: {"BEQ", ModeRelative, 2, 2, false},
	0xF1: {"SBC", ModeIndirectY, 2, 5, true},
	0xF2: {"KIL", ModeImplied, 1, 2, false},
	0xF3: {"ISC", ModeIndirectY, 2, 8, false},
	0xF4: {"DOP", ModeZeroPageX, 2, 4, false},
	0xF5: {"SBC", ModeZeroPageX, 2, 4, false},
	0xF6: {"INC", ModeZeroPageX, 2, 6, false},
	0xF7: {"ISC", ModeZeroPageX, 2, 6, false},
	0xF8: {"SED", ModeImplied, 1, 2, false},
	0xF9: {"SBC", ModeAbsoluteY, 3, 4, true},
	0xFA: {"NOP", ModeImplied, 1, 2, false},
	0xFB: {"ISC", ModeAbsoluteY, 3, 7, false},
	0xFC: {"TOP", ModeAbsoluteX, 3, 4, true},
	0xFD: {"SBC", ModeAbsoluteX, 3, 4, true},
	0xFE: {"INC", ModeAbsoluteX, 3, 7, false},
	0xFF: {"ISC", ModeAbsoluteX, 3, 7, false},
}
