package cpu

// mode is an addressing mode. It decides how many operand bytes follow the
// opcode and how the effective address is formed.
type mode uint8

const (
	modeImplied mode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeIndexedIndirect // (zp,X)
	modeIndirectIndexed // (zp),Y
	modeRelative
)

// size is the instruction length in bytes, opcode included.
func (m mode) size() uint16 {
	switch m {
	case modeImplied, modeAccumulator:
		return 1
	case modeAbsolute, modeAbsoluteX, modeAbsoluteY, modeIndirect:
		return 3
	default:
		return 2
	}
}

type mnemonic uint8

const (
	opADC mnemonic = iota
	opALR
	opANC
	opAND
	opARR
	opASL
	opAXS
	opBCC
	opBCS
	opBEQ
	opBIT
	opBMI
	opBNE
	opBPL
	opBRK
	opBVC
	opBVS
	opCLC
	opCLD
	opCLI
	opCLV
	opCMP
	opCPX
	opCPY
	opDCP
	opDEC
	opDEX
	opDEY
	opEOR
	opINC
	opINX
	opINY
	opISB
	opJAM
	opJMP
	opJSR
	opLAS
	opLAX
	opLDA
	opLDX
	opLDY
	opLSR
	opLXA
	opNOP
	opORA
	opPHA
	opPHP
	opPLA
	opPLP
	opRLA
	opROL
	opROR
	opRRA
	opRTI
	opRTS
	opSAX
	opSBC
	opSEC
	opSED
	opSEI
	opSHA
	opSHX
	opSHY
	opSLO
	opSRE
	opSTA
	opSTX
	opSTY
	opTAS
	opTAX
	opTAY
	opTSX
	opTXA
	opTXS
	opTYA
	opXAA
)

var mnemonicNames = [...]string{
	opADC: "ADC",
	opALR: "ALR",
	opANC: "ANC",
	opAND: "AND",
	opARR: "ARR",
	opASL: "ASL",
	opAXS: "AXS",
	opBCC: "BCC",
	opBCS: "BCS",
	opBEQ: "BEQ",
	opBIT: "BIT",
	opBMI: "BMI",
	opBNE: "BNE",
	opBPL: "BPL",
	opBRK: "BRK",
	opBVC: "BVC",
	opBVS: "BVS",
	opCLC: "CLC",
	opCLD: "CLD",
	opCLI: "CLI",
	opCLV: "CLV",
	opCMP: "CMP",
	opCPX: "CPX",
	opCPY: "CPY",
	opDCP: "DCP",
	opDEC: "DEC",
	opDEX: "DEX",
	opDEY: "DEY",
	opEOR: "EOR",
	opINC: "INC",
	opINX: "INX",
	opINY: "INY",
	opISB: "ISB",
	opJAM: "JAM",
	opJMP: "JMP",
	opJSR: "JSR",
	opLAS: "LAS",
	opLAX: "LAX",
	opLDA: "LDA",
	opLDX: "LDX",
	opLDY: "LDY",
	opLSR: "LSR",
	opLXA: "LXA",
	opNOP: "NOP",
	opORA: "ORA",
	opPHA: "PHA",
	opPHP: "PHP",
	opPLA: "PLA",
	opPLP: "PLP",
	opRLA: "RLA",
	opROL: "ROL",
	opROR: "ROR",
	opRRA: "RRA",
	opRTI: "RTI",
	opRTS: "RTS",
	opSAX: "SAX",
	opSBC: "SBC",
	opSEC: "SEC",
	opSED: "SED",
	opSEI: "SEI",
	opSHA: "SHA",
	opSHX: "SHX",
	opSHY: "SHY",
	opSLO: "SLO",
	opSRE: "SRE",
	opSTA: "STA",
	opSTX: "STX",
	opSTY: "STY",
	opTAS: "TAS",
	opTAX: "TAX",
	opTAY: "TAY",
	opTSX: "TSX",
	opTXA: "TXA",
	opTXS: "TXS",
	opTYA: "TYA",
	opXAA: "XAA",
}

func (m mnemonic) String() string { return mnemonicNames[m] }

// instruction is one row of the decode table. cycles is the base cost;
// page adds one cycle when indexing crosses a page boundary. unofficial
// marks opcodes outside the documented 151.
type instruction struct {
	op         mnemonic
	mode       mode
	cycles     uint8
	page       bool
	unofficial bool
}

// instructions decodes every opcode byte. Stable unofficial opcodes execute
// their documented effect. The unstable ones (XAA, LXA, SHA, TAS, SHY, SHX, LAS)
// and the JAM opcodes that lock up real hardware run as no-ops with the listed
// length and cost.
var instructions = [256]instruction{
	0x00: {opBRK, modeImplied, 7, false, false},
	0x01: {opORA, modeIndexedIndirect, 6, false, false},
	0x02: {opJAM, modeImplied, 2, false, true},
	0x03: {opSLO, modeIndexedIndirect, 8, false, true},
	0x04: {opNOP, modeZeroPage, 3, false, true},
	0x05: {opORA, modeZeroPage, 3, false, false},
	0x06: {opASL, modeZeroPage, 5, false, false},
	0x07: {opSLO, modeZeroPage, 5, false, true},
	0x08: {opPHP, modeImplied, 3, false, false},
	0x09: {opORA, modeImmediate, 2, false, false},
	0x0A: {opASL, modeAccumulator, 2, false, false},
	0x0B: {opANC, modeImmediate, 2, false, true},
	0x0C: {opNOP, modeAbsolute, 4, false, true},
	0x0D: {opORA, modeAbsolute, 4, false, false},
	0x0E: {opASL, modeAbsolute, 6, false, false},
	0x0F: {opSLO, modeAbsolute, 6, false, true},
	0x10: {opBPL, modeRelative, 2, false, false},
	0x11: {opORA, modeIndirectIndexed, 5, true, false},
	0x12: {opJAM, modeImplied, 2, false, true},
	0x13: {opSLO, modeIndirectIndexed, 8, false, true},
	0x14: {opNOP, modeZeroPageX, 4, false, true},
	0x15: {opORA, modeZeroPageX, 4, false, false},
	0x16: {opASL, modeZeroPageX, 6, false, false},
	0x17: {opSLO, modeZeroPageX, 6, false, true},
	0x18: {opCLC, modeImplied, 2, false, false},
	0x19: {opORA, modeAbsoluteY, 4, true, false},
	0x1A: {opNOP, modeImplied, 2, false, true},
	0x1B: {opSLO, modeAbsoluteY, 7, false, true},
	0x1C: {opNOP, modeAbsoluteX, 4, true, true},
	0x1D: {opORA, modeAbsoluteX, 4, true, false},
	0x1E: {opASL, modeAbsoluteX, 7, false, false},
	0x1F: {opSLO, modeAbsoluteX, 7, false, true},
	0x20: {opJSR, modeAbsolute, 6, false, false},
	0x21: {opAND, modeIndexedIndirect, 6, false, false},
	0x22: {opJAM, modeImplied, 2, false, true},
	0x23: {opRLA, modeIndexedIndirect, 8, false, true},
	0x24: {opBIT, modeZeroPage, 3, false, false},
	0x25: {opAND, modeZeroPage, 3, false, false},
	0x26: {opROL, modeZeroPage, 5, false, false},
	0x27: {opRLA, modeZeroPage, 5, false, true},
	0x28: {opPLP, modeImplied, 4, false, false},
	0x29: {opAND, modeImmediate, 2, false, false},
	0x2A: {opROL, modeAccumulator, 2, false, false},
	0x2B: {opANC, modeImmediate, 2, false, true},
	0x2C: {opBIT, modeAbsolute, 4, false, false},
	0x2D: {opAND, modeAbsolute, 4, false, false},
	0x2E: {opROL, modeAbsolute, 6, false, false},
	0x2F: {opRLA, modeAbsolute, 6, false, true},
	0x30: {opBMI, modeRelative, 2, false, false},
	0x31: {opAND, modeIndirectIndexed, 5, true, false},
	0x32: {opJAM, modeImplied, 2, false, true},
	0x33: {opRLA, modeIndirectIndexed, 8, false, true},
	0x34: {opNOP, modeZeroPageX, 4, false, true},
	0x35: {opAND, modeZeroPageX, 4, false, false},
	0x36: {opROL, modeZeroPageX, 6, false, false},
	0x37: {opRLA, modeZeroPageX, 6, false, true},
	0x38: {opSEC, modeImplied, 2, false, false},
	0x39: {opAND, modeAbsoluteY, 4, true, false},
	0x3A: {opNOP, modeImplied, 2, false, true},
	0x3B: {opRLA, modeAbsoluteY, 7, false, true},
	0x3C: {opNOP, modeAbsoluteX, 4, true, true},
	0x3D: {opAND, modeAbsoluteX, 4, true, false},
	0x3E: {opROL, modeAbsoluteX, 7, false, false},
	0x3F: {opRLA, modeAbsoluteX, 7, false, true},
	0x40: {opRTI, modeImplied, 6, false, false},
	0x41: {opEOR, modeIndexedIndirect, 6, false, false},
	0x42: {opJAM, modeImplied, 2, false, true},
	0x43: {opSRE, modeIndexedIndirect, 8, false, true},
	0x44: {opNOP, modeZeroPage, 3, false, true},
	0x45: {opEOR, modeZeroPage, 3, false, false},
	0x46: {opLSR, modeZeroPage, 5, false, false},
	0x47: {opSRE, modeZeroPage, 5, false, true},
	0x48: {opPHA, modeImplied, 3, false, false},
	0x49: {opEOR, modeImmediate, 2, false, false},
	0x4A: {opLSR, modeAccumulator, 2, false, false},
	0x4B: {opALR, modeImmediate, 2, false, true},
	0x4C: {opJMP, modeAbsolute, 3, false, false},
	0x4D: {opEOR, modeAbsolute, 4, false, false},
	0x4E: {opLSR, modeAbsolute, 6, false, false},
	0x4F: {opSRE, modeAbsolute, 6, false, true},
	0x50: {opBVC, modeRelative, 2, false, false},
	0x51: {opEOR, modeIndirectIndexed, 5, true, false},
	0x52: {opJAM, modeImplied, 2, false, true},
	0x53: {opSRE, modeIndirectIndexed, 8, false, true},
	0x54: {opNOP, modeZeroPageX, 4, false, true},
	0x55: {opEOR, modeZeroPageX, 4, false, false},
	0x56: {opLSR, modeZeroPageX, 6, false, false},
	0x57: {opSRE, modeZeroPageX, 6, false, true},
	0x58: {opCLI, modeImplied, 2, false, false},
	0x59: {opEOR, modeAbsoluteY, 4, true, false},
	0x5A: {opNOP, modeImplied, 2, false, true},
	0x5B: {opSRE, modeAbsoluteY, 7, false, true},
	0x5C: {opNOP, modeAbsoluteX, 4, true, true},
	0x5D: {opEOR, modeAbsoluteX, 4, true, false},
	0x5E: {opLSR, modeAbsoluteX, 7, false, false},
	0x5F: {opSRE, modeAbsoluteX, 7, false, true},
	0x60: {opRTS, modeImplied, 6, false, false},
	0x61: {opADC, modeIndexedIndirect, 6, false, false},
	0x62: {opJAM, modeImplied, 2, false, true},
	0x63: {opRRA, modeIndexedIndirect, 8, false, true},
	0x64: {opNOP, modeZeroPage, 3, false, true},
	0x65: {opADC, modeZeroPage, 3, false, false},
	0x66: {opROR, modeZeroPage, 5, false, false},
	0x67: {opRRA, modeZeroPage, 5, false, true},
	0x68: {opPLA, modeImplied, 4, false, false},
	0x69: {opADC, modeImmediate, 2, false, false},
	0x6A: {opROR, modeAccumulator, 2, false, false},
	0x6B: {opARR, modeImmediate, 2, false, true},
	0x6C: {opJMP, modeIndirect, 5, false, false},
	0x6D: {opADC, modeAbsolute, 4, false, false},
	0x6E: {opROR, modeAbsolute, 6, false, false},
	0x6F: {opRRA, modeAbsolute, 6, false, true},
	0x70: {opBVS, modeRelative, 2, false, false},
	0x71: {opADC, modeIndirectIndexed, 5, true, false},
	0x72: {opJAM, modeImplied, 2, false, true},
	0x73: {opRRA, modeIndirectIndexed, 8, false, true},
	0x74: {opNOP, modeZeroPageX, 4, false, true},
	0x75: {opADC, modeZeroPageX, 4, false, false},
	0x76: {opROR, modeZeroPageX, 6, false, false},
	0x77: {opRRA, modeZeroPageX, 6, false, true},
	0x78: {opSEI, modeImplied, 2, false, false},
	0x79: {opADC, modeAbsoluteY, 4, true, false},
	0x7A: {opNOP, modeImplied, 2, false, true},
	0x7B: {opRRA, modeAbsoluteY, 7, false, true},
	0x7C: {opNOP, modeAbsoluteX, 4, true, true},
	0x7D: {opADC, modeAbsoluteX, 4, true, false},
	0x7E: {opROR, modeAbsoluteX, 7, false, false},
	0x7F: {opRRA, modeAbsoluteX, 7, false, true},
	0x80: {opNOP, modeImmediate, 2, false, true},
	0x81: {opSTA, modeIndexedIndirect, 6, false, false},
	0x82: {opNOP, modeImmediate, 2, false, true},
	0x83: {opSAX, modeIndexedIndirect, 6, false, true},
	0x84: {opSTY, modeZeroPage, 3, false, false},
	0x85: {opSTA, modeZeroPage, 3, false, false},
	0x86: {opSTX, modeZeroPage, 3, false, false},
	0x87: {opSAX, modeZeroPage, 3, false, true},
	0x88: {opDEY, modeImplied, 2, false, false},
	0x89: {opNOP, modeImmediate, 2, false, true},
	0x8A: {opTXA, modeImplied, 2, false, false},
	0x8B: {opXAA, modeImmediate, 2, false, true},
	0x8C: {opSTY, modeAbsolute, 4, false, false},
	0x8D: {opSTA, modeAbsolute, 4, false, false},
	0x8E: {opSTX, modeAbsolute, 4, false, false},
	0x8F: {opSAX, modeAbsolute, 4, false, true},
	0x90: {opBCC, modeRelative, 2, false, false},
	0x91: {opSTA, modeIndirectIndexed, 6, false, false},
	0x92: {opJAM, modeImplied, 2, false, true},
	0x93: {opSHA, modeIndirectIndexed, 6, false, true},
	0x94: {opSTY, modeZeroPageX, 4, false, false},
	0x95: {opSTA, modeZeroPageX, 4, false, false},
	0x96: {opSTX, modeZeroPageY, 4, false, false},
	0x97: {opSAX, modeZeroPageY, 4, false, true},
	0x98: {opTYA, modeImplied, 2, false, false},
	0x99: {opSTA, modeAbsoluteY, 5, false, false},
	0x9A: {opTXS, modeImplied, 2, false, false},
	0x9B: {opTAS, modeAbsoluteY, 5, false, true},
	0x9C: {opSHY, modeAbsoluteX, 5, false, true},
	0x9D: {opSTA, modeAbsoluteX, 5, false, false},
	0x9E: {opSHX, modeAbsoluteY, 5, false, true},
	0x9F: {opSHA, modeAbsoluteY, 5, false, true},
	0xA0: {opLDY, modeImmediate, 2, false, false},
	0xA1: {opLDA, modeIndexedIndirect, 6, false, false},
	0xA2: {opLDX, modeImmediate, 2, false, false},
	0xA3: {opLAX, modeIndexedIndirect, 6, false, true},
	0xA4: {opLDY, modeZeroPage, 3, false, false},
	0xA5: {opLDA, modeZeroPage, 3, false, false},
	0xA6: {opLDX, modeZeroPage, 3, false, false},
	0xA7: {opLAX, modeZeroPage, 3, false, true},
	0xA8: {opTAY, modeImplied, 2, false, false},
	0xA9: {opLDA, modeImmediate, 2, false, false},
	0xAA: {opTAX, modeImplied, 2, false, false},
	0xAB: {opLXA, modeImmediate, 2, false, true},
	0xAC: {opLDY, modeAbsolute, 4, false, false},
	0xAD: {opLDA, modeAbsolute, 4, false, false},
	0xAE: {opLDX, modeAbsolute, 4, false, false},
	0xAF: {opLAX, modeAbsolute, 4, false, true},
	0xB0: {opBCS, modeRelative, 2, false, false},
	0xB1: {opLDA, modeIndirectIndexed, 5, true, false},
	0xB2: {opJAM, modeImplied, 2, false, true},
	0xB3: {opLAX, modeIndirectIndexed, 5, true, true},
	0xB4: {opLDY, modeZeroPageX, 4, false, false},
	0xB5: {opLDA, modeZeroPageX, 4, false, false},
	0xB6: {opLDX, modeZeroPageY, 4, false, false},
	0xB7: {opLAX, modeZeroPageY, 4, false, true},
	0xB8: {opCLV, modeImplied, 2, false, false},
	0xB9: {opLDA, modeAbsoluteY, 4, true, false},
	0xBA: {opTSX, modeImplied, 2, false, false},
	0xBB: {opLAS, modeAbsoluteY, 4, true, true},
	0xBC: {opLDY, modeAbsoluteX, 4, true, false},
	0xBD: {opLDA, modeAbsoluteX, 4, true, false},
	0xBE: {opLDX, modeAbsoluteY, 4, true, false},
	0xBF: {opLAX, modeAbsoluteY, 4, true, true},
	0xC0: {opCPY, modeImmediate, 2, false, false},
	0xC1: {opCMP, modeIndexedIndirect, 6, false, false},
	0xC2: {opNOP, modeImmediate, 2, false, true},
	0xC3: {opDCP, modeIndexedIndirect, 8, false, true},
	0xC4: {opCPY, modeZeroPage, 3, false, false},
	0xC5: {opCMP, modeZeroPage, 3, false, false},
	0xC6: {opDEC, modeZeroPage, 5, false, false},
	0xC7: {opDCP, modeZeroPage, 5, false, true},
	0xC8: {opINY, modeImplied, 2, false, false},
	0xC9: {opCMP, modeImmediate, 2, false, false},
	0xCA: {opDEX, modeImplied, 2, false, false},
	0xCB: {opAXS, modeImmediate, 2, false, true},
	0xCC: {opCPY, modeAbsolute, 4, false, false},
	0xCD: {opCMP, modeAbsolute, 4, false, false},
	0xCE: {opDEC, modeAbsolute, 6, false, false},
	0xCF: {opDCP, modeAbsolute, 6, false, true},
	0xD0: {opBNE, modeRelative, 2, false, false},
	0xD1: {opCMP, modeIndirectIndexed, 5, true, false},
	0xD2: {opJAM, modeImplied, 2, false, true},
	0xD3: {opDCP, modeIndirectIndexed, 8, false, true},
	0xD4: {opNOP, modeZeroPageX, 4, false, true},
	0xD5: {opCMP, modeZeroPageX, 4, false, false},
	0xD6: {opDEC, modeZeroPageX, 6, false, false},
	0xD7: {opDCP, modeZeroPageX, 6, false, true},
	0xD8: {opCLD, modeImplied, 2, false, false},
	0xD9: {opCMP, modeAbsoluteY, 4, true, false},
	0xDA: {opNOP, modeImplied, 2, false, true},
	0xDB: {opDCP, modeAbsoluteY, 7, false, true},
	0xDC: {opNOP, modeAbsoluteX, 4, true, true},
	0xDD: {opCMP, modeAbsoluteX, 4, true, false},
	0xDE: {opDEC, modeAbsoluteX, 7, false, false},
	0xDF: {opDCP, modeAbsoluteX, 7, false, true},
	0xE0: {opCPX, modeImmediate, 2, false, false},
	0xE1: {opSBC, modeIndexedIndirect, 6, false, false},
	0xE2: {opNOP, modeImmediate, 2, false, true},
	0xE3: {opISB, modeIndexedIndirect, 8, false, true},
	0xE4: {opCPX, modeZeroPage, 3, false, false},
	0xE5: {opSBC, modeZeroPage, 3, false, false},
	0xE6: {opINC, modeZeroPage, 5, false, false},
	0xE7: {opISB, modeZeroPage, 5, false, true},
	0xE8: {opINX, modeImplied, 2, false, false},
	0xE9: {opSBC, modeImmediate, 2, false, false},
	0xEA: {opNOP, modeImplied, 2, false, false},
	0xEB: {opSBC, modeImmediate, 2, false, true},
	0xEC: {opCPX, modeAbsolute, 4, false, false},
	0xED: {opSBC, modeAbsolute, 4, false, false},
	0xEE: {opINC, modeAbsolute, 6, false, false},
	0xEF: {opISB, modeAbsolute, 6, false, true},
	0xF0: {opBEQ, modeRelative, 2, false, false},
	0xF1: {opSBC, modeIndirectIndexed, 5, true, false},
	0xF2: {opJAM, modeImplied, 2, false, true},
	0xF3: {opISB, modeIndirectIndexed, 8, false, true},
	0xF4: {opNOP, modeZeroPageX, 4, false, true},
	0xF5: {opSBC, modeZeroPageX, 4, false, false},
	0xF6: {opINC, modeZeroPageX, 6, false, false},
	0xF7: {opISB, modeZeroPageX, 6, false, true},
	0xF8: {opSED, modeImplied, 2, false, false},
	0xF9: {opSBC, modeAbsoluteY, 4, true, false},
	0xFA: {opNOP, modeImplied, 2, false, true},
	0xFB: {opISB, modeAbsoluteY, 7, false, true},
	0xFC: {opNOP, modeAbsoluteX, 4, true, true},
	0xFD: {opSBC, modeAbsoluteX, 4, true, false},
	0xFE: {opINC, modeAbsoluteX, 7, false, false},
	0xFF: {opISB, modeAbsoluteX, 7, false, true},
}
