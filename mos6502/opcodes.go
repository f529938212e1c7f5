package mos6502

import (
	"sync"

	"github.com/golang/glog"
)

var kilOnce sync.Once

// instructions is the 256-entry decode table, indexed by opcode byte.
// It is built once at package init from the table below; dispatch at
// run time is a direct array index into a function value, never
// reflection or name lookup (the mnemonic column exists purely for
// disassembly/logging).
var instructions [256]instruction

type opRow struct {
	op        uint8
	name      string
	mode      addrMode
	size      uint8
	cycles    uint8
	pageCross bool
	fn        func(c *CPU, addr uint16, mode addrMode)
}

func init() {
	for _, r := range opcodeRows {
		instructions[r.op] = instruction{
			name:      r.name,
			mode:      r.mode,
			size:      r.size,
			cycles:    r.cycles,
			pageCross: r.pageCross,
			fn:        r.fn,
		}
	}
}

// opcodeRows is the full 256-opcode table, official and illegal
// (undocumented) alike, matching the widely documented NES 6502 core.
// https://www.nesdev.org/obelisk-6502-guide/reference.html
// https://www.nesdev.org/undocumented_opcodes.txt
var opcodeRows = []opRow{
	{0x00, "BRK", modeImplied, 2, 7, false, opBRK},
	{0x01, "ORA", modeIndexedIndirect, 2, 6, false, opORA},
	{0x02, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x03, "SLO", modeIndexedIndirect, 2, 8, false, opSLO},
	{0x04, "NOP", modeZeroPage, 2, 3, false, opNOP},
	{0x05, "ORA", modeZeroPage, 2, 3, false, opORA},
	{0x06, "ASL", modeZeroPage, 2, 5, false, opASL},
	{0x07, "SLO", modeZeroPage, 2, 5, false, opSLO},
	{0x08, "PHP", modeImplied, 1, 3, false, opPHP},
	{0x09, "ORA", modeImmediate, 2, 2, false, opORA},
	{0x0A, "ASL", modeAccumulator, 1, 2, false, opASL},
	{0x0B, "ANC", modeImmediate, 2, 2, false, opANC},
	{0x0C, "NOP", modeAbsolute, 3, 4, false, opNOP},
	{0x0D, "ORA", modeAbsolute, 3, 4, false, opORA},
	{0x0E, "ASL", modeAbsolute, 3, 6, false, opASL},
	{0x0F, "SLO", modeAbsolute, 3, 6, false, opSLO},

	{0x10, "BPL", modeRelative, 2, 2, false, opBPL},
	{0x11, "ORA", modeIndirectIndexed, 2, 5, true, opORA},
	{0x12, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x13, "SLO", modeIndirectIndexed, 2, 8, false, opSLO},
	{0x14, "NOP", modeZeroPageX, 2, 4, false, opNOP},
	{0x15, "ORA", modeZeroPageX, 2, 4, false, opORA},
	{0x16, "ASL", modeZeroPageX, 2, 6, false, opASL},
	{0x17, "SLO", modeZeroPageX, 2, 6, false, opSLO},
	{0x18, "CLC", modeImplied, 1, 2, false, opCLC},
	{0x19, "ORA", modeAbsoluteY, 3, 4, true, opORA},
	{0x1A, "NOP", modeImplied, 1, 2, false, opNOP},
	{0x1B, "SLO", modeAbsoluteY, 3, 7, false, opSLO},
	{0x1C, "NOP", modeAbsoluteX, 3, 4, true, opNOP},
	{0x1D, "ORA", modeAbsoluteX, 3, 4, true, opORA},
	{0x1E, "ASL", modeAbsoluteX, 3, 7, false, opASL},
	{0x1F, "SLO", modeAbsoluteX, 3, 7, false, opSLO},

	{0x20, "JSR", modeAbsolute, 3, 6, false, opJSR},
	{0x21, "AND", modeIndexedIndirect, 2, 6, false, opAND},
	{0x22, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x23, "RLA", modeIndexedIndirect, 2, 8, false, opRLA},
	{0x24, "BIT", modeZeroPage, 2, 3, false, opBIT},
	{0x25, "AND", modeZeroPage, 2, 3, false, opAND},
	{0x26, "ROL", modeZeroPage, 2, 5, false, opROL},
	{0x27, "RLA", modeZeroPage, 2, 5, false, opRLA},
	{0x28, "PLP", modeImplied, 1, 4, false, opPLP},
	{0x29, "AND", modeImmediate, 2, 2, false, opAND},
	{0x2A, "ROL", modeAccumulator, 1, 2, false, opROL},
	{0x2B, "ANC", modeImmediate, 2, 2, false, opANC},
	{0x2C, "BIT", modeAbsolute, 3, 4, false, opBIT},
	{0x2D, "AND", modeAbsolute, 3, 4, false, opAND},
	{0x2E, "ROL", modeAbsolute, 3, 6, false, opROL},
	{0x2F, "RLA", modeAbsolute, 3, 6, false, opRLA},

	{0x30, "BMI", modeRelative, 2, 2, false, opBMI},
	{0x31, "AND", modeIndirectIndexed, 2, 5, true, opAND},
	{0x32, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x33, "RLA", modeIndirectIndexed, 2, 8, false, opRLA},
	{0x34, "NOP", modeZeroPageX, 2, 4, false, opNOP},
	{0x35, "AND", modeZeroPageX, 2, 4, false, opAND},
	{0x36, "ROL", modeZeroPageX, 2, 6, false, opROL},
	{0x37, "RLA", modeZeroPageX, 2, 6, false, opRLA},
	{0x38, "SEC", modeImplied, 1, 2, false, opSEC},
	{0x39, "AND", modeAbsoluteY, 3, 4, true, opAND},
	{0x3A, "NOP", modeImplied, 1, 2, false, opNOP},
	{0x3B, "RLA", modeAbsoluteY, 3, 7, false, opRLA},
	{0x3C, "NOP", modeAbsoluteX, 3, 4, true, opNOP},
	{0x3D, "AND", modeAbsoluteX, 3, 4, true, opAND},
	{0x3E, "ROL", modeAbsoluteX, 3, 7, false, opROL},
	{0x3F, "RLA", modeAbsoluteX, 3, 7, false, opRLA},

	{0x40, "RTI", modeImplied, 1, 6, false, opRTI},
	{0x41, "EOR", modeIndexedIndirect, 2, 6, false, opEOR},
	{0x42, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x43, "SRE", modeIndexedIndirect, 2, 8, false, opSRE},
	{0x44, "NOP", modeZeroPage, 2, 3, false, opNOP},
	{0x45, "EOR", modeZeroPage, 2, 3, false, opEOR},
	{0x46, "LSR", modeZeroPage, 2, 5, false, opLSR},
	{0x47, "SRE", modeZeroPage, 2, 5, false, opSRE},
	{0x48, "PHA", modeImplied, 1, 3, false, opPHA},
	{0x49, "EOR", modeImmediate, 2, 2, false, opEOR},
	{0x4A, "LSR", modeAccumulator, 1, 2, false, opLSR},
	{0x4B, "ALR", modeImmediate, 2, 2, false, opALR},
	{0x4C, "JMP", modeAbsolute, 3, 3, false, opJMP},
	{0x4D, "EOR", modeAbsolute, 3, 4, false, opEOR},
	{0x4E, "LSR", modeAbsolute, 3, 6, false, opLSR},
	{0x4F, "SRE", modeAbsolute, 3, 6, false, opSRE},

	{0x50, "BVC", modeRelative, 2, 2, false, opBVC},
	{0x51, "EOR", modeIndirectIndexed, 2, 5, true, opEOR},
	{0x52, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x53, "SRE", modeIndirectIndexed, 2, 8, false, opSRE},
	{0x54, "NOP", modeZeroPageX, 2, 4, false, opNOP},
	{0x55, "EOR", modeZeroPageX, 2, 4, false, opEOR},
	{0x56, "LSR", modeZeroPageX, 2, 6, false, opLSR},
	{0x57, "SRE", modeZeroPageX, 2, 6, false, opSRE},
	{0x58, "CLI", modeImplied, 1, 2, false, opCLI},
	{0x59, "EOR", modeAbsoluteY, 3, 4, true, opEOR},
	{0x5A, "NOP", modeImplied, 1, 2, false, opNOP},
	{0x5B, "SRE", modeAbsoluteY, 3, 7, false, opSRE},
	{0x5C, "NOP", modeAbsoluteX, 3, 4, true, opNOP},
	{0x5D, "EOR", modeAbsoluteX, 3, 4, true, opEOR},
	{0x5E, "LSR", modeAbsoluteX, 3, 7, false, opLSR},
	{0x5F, "SRE", modeAbsoluteX, 3, 7, false, opSRE},

	{0x60, "RTS", modeImplied, 1, 6, false, opRTS},
	{0x61, "ADC", modeIndexedIndirect, 2, 6, false, opADC},
	{0x62, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x63, "RRA", modeIndexedIndirect, 2, 8, false, opRRA},
	{0x64, "NOP", modeZeroPage, 2, 3, false, opNOP},
	{0x65, "ADC", modeZeroPage, 2, 3, false, opADC},
	{0x66, "ROR", modeZeroPage, 2, 5, false, opROR},
	{0x67, "RRA", modeZeroPage, 2, 5, false, opRRA},
	{0x68, "PLA", modeImplied, 1, 4, false, opPLA},
	{0x69, "ADC", modeImmediate, 2, 2, false, opADC},
	{0x6A, "ROR", modeAccumulator, 1, 2, false, opROR},
	{0x6B, "ARR", modeImmediate, 2, 2, false, opARR},
	{0x6C, "JMP", modeIndirect, 3, 5, false, opJMP},
	{0x6D, "ADC", modeAbsolute, 3, 4, false, opADC},
	{0x6E, "ROR", modeAbsolute, 3, 6, false, opROR},
	{0x6F, "RRA", modeAbsolute, 3, 6, false, opRRA},

	{0x70, "BVS", modeRelative, 2, 2, false, opBVS},
	{0x71, "ADC", modeIndirectIndexed, 2, 5, true, opADC},
	{0x72, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x73, "RRA", modeIndirectIndexed, 2, 8, false, opRRA},
	{0x74, "NOP", modeZeroPageX, 2, 4, false, opNOP},
	{0x75, "ADC", modeZeroPageX, 2, 4, false, opADC},
	{0x76, "ROR", modeZeroPageX, 2, 6, false, opROR},
	{0x77, "RRA", modeZeroPageX, 2, 6, false, opRRA},
	{0x78, "SEI", modeImplied, 1, 2, false, opSEI},
	{0x79, "ADC", modeAbsoluteY, 3, 4, true, opADC},
	{0x7A, "NOP", modeImplied, 1, 2, false, opNOP},
	{0x7B, "RRA", modeAbsoluteY, 3, 7, false, opRRA},
	{0x7C, "NOP", modeAbsoluteX, 3, 4, true, opNOP},
	{0x7D, "ADC", modeAbsoluteX, 3, 4, true, opADC},
	{0x7E, "ROR", modeAbsoluteX, 3, 7, false, opROR},
	{0x7F, "RRA", modeAbsoluteX, 3, 7, false, opRRA},

	{0x80, "NOP", modeImmediate, 2, 2, false, opNOP},
	{0x81, "STA", modeIndexedIndirect, 2, 6, false, opSTA},
	{0x82, "NOP", modeImmediate, 2, 2, false, opNOP},
	{0x83, "SAX", modeIndexedIndirect, 2, 6, false, opSAX},
	{0x84, "STY", modeZeroPage, 2, 3, false, opSTY},
	{0x85, "STA", modeZeroPage, 2, 3, false, opSTA},
	{0x86, "STX", modeZeroPage, 2, 3, false, opSTX},
	{0x87, "SAX", modeZeroPage, 2, 3, false, opSAX},
	{0x88, "DEY", modeImplied, 1, 2, false, opDEY},
	{0x89, "NOP", modeImmediate, 2, 2, false, opNOP},
	{0x8A, "TXA", modeImplied, 1, 2, false, opTXA},
	{0x8B, "XAA", modeImmediate, 2, 2, false, opXAA},
	{0x8C, "STY", modeAbsolute, 3, 4, false, opSTY},
	{0x8D, "STA", modeAbsolute, 3, 4, false, opSTA},
	{0x8E, "STX", modeAbsolute, 3, 4, false, opSTX},
	{0x8F, "SAX", modeAbsolute, 3, 4, false, opSAX},

	{0x90, "BCC", modeRelative, 2, 2, false, opBCC},
	{0x91, "STA", modeIndirectIndexed, 2, 6, false, opSTA},
	{0x92, "KIL", modeImplied, 1, 2, false, opKIL},
	{0x93, "AHX", modeIndirectIndexed, 2, 6, false, opAHX},
	{0x94, "STY", modeZeroPageX, 2, 4, false, opSTY},
	{0x95, "STA", modeZeroPageX, 2, 4, false, opSTA},
	{0x96, "STX", modeZeroPageY, 2, 4, false, opSTX},
	{0x97, "SAX", modeZeroPageY, 2, 4, false, opSAX},
	{0x98, "TYA", modeImplied, 1, 2, false, opTYA},
	{0x99, "STA", modeAbsoluteY, 3, 5, false, opSTA},
	{0x9A, "TXS", modeImplied, 1, 2, false, opTXS},
	{0x9B, "TAS", modeAbsoluteY, 3, 5, false, opTAS},
	{0x9C, "SHY", modeAbsoluteX, 3, 5, false, opSHY},
	{0x9D, "STA", modeAbsoluteX, 3, 5, false, opSTA},
	{0x9E, "SHX", modeAbsoluteY, 3, 5, false, opSHX},
	{0x9F, "AHX", modeAbsoluteY, 3, 5, false, opAHX},

	{0xA0, "LDY", modeImmediate, 2, 2, false, opLDY},
	{0xA1, "LDA", modeIndexedIndirect, 2, 6, false, opLDA},
	{0xA2, "LDX", modeImmediate, 2, 2, false, opLDX},
	{0xA3, "LAX", modeIndexedIndirect, 2, 6, false, opLAX},
	{0xA4, "LDY", modeZeroPage, 2, 3, false, opLDY},
	{0xA5, "LDA", modeZeroPage, 2, 3, false, opLDA},
	{0xA6, "LDX", modeZeroPage, 2, 3, false, opLDX},
	{0xA7, "LAX", modeZeroPage, 2, 3, false, opLAX},
	{0xA8, "TAY", modeImplied, 1, 2, false, opTAY},
	{0xA9, "LDA", modeImmediate, 2, 2, false, opLDA},
	{0xAA, "TAX", modeImplied, 1, 2, false, opTAX},
	{0xAB, "LAX", modeImmediate, 2, 2, false, opLAX},
	{0xAC, "LDY", modeAbsolute, 3, 4, false, opLDY},
	{0xAD, "LDA", modeAbsolute, 3, 4, false, opLDA},
	{0xAE, "LDX", modeAbsolute, 3, 4, false, opLDX},
	{0xAF, "LAX", modeAbsolute, 3, 4, false, opLAX},

	{0xB0, "BCS", modeRelative, 2, 2, false, opBCS},
	{0xB1, "LDA", modeIndirectIndexed, 2, 5, true, opLDA},
	{0xB2, "KIL", modeImplied, 1, 2, false, opKIL},
	{0xB3, "LAX", modeIndirectIndexed, 2, 5, true, opLAX},
	{0xB4, "LDY", modeZeroPageX, 2, 4, false, opLDY},
	{0xB5, "LDA", modeZeroPageX, 2, 4, false, opLDA},
	{0xB6, "LDX", modeZeroPageY, 2, 4, false, opLDX},
	{0xB7, "LAX", modeZeroPageY, 2, 4, false, opLAX},
	{0xB8, "CLV", modeImplied, 1, 2, false, opCLV},
	{0xB9, "LDA", modeAbsoluteY, 3, 4, true, opLDA},
	{0xBA, "TSX", modeImplied, 1, 2, false, opTSX},
	{0xBB, "LAS", modeAbsoluteY, 3, 4, true, opLAS},
	{0xBC, "LDY", modeAbsoluteX, 3, 4, true, opLDY},
	{0xBD, "LDA", modeAbsoluteX, 3, 4, true, opLDA},
	{0xBE, "LDX", modeAbsoluteY, 3, 4, true, opLDX},
	{0xBF, "LAX", modeAbsoluteY, 3, 4, true, opLAX},

	{0xC0, "CPY", modeImmediate, 2, 2, false, opCPY},
	{0xC1, "CMP", modeIndexedIndirect, 2, 6, false, opCMP},
	{0xC2, "NOP", modeImmediate, 2, 2, false, opNOP},
	{0xC3, "DCP", modeIndexedIndirect, 2, 8, false, opDCP},
	{0xC4, "CPY", modeZeroPage, 2, 3, false, opCPY},
	{0xC5, "CMP", modeZeroPage, 2, 3, false, opCMP},
	{0xC6, "DEC", modeZeroPage, 2, 5, false, opDEC},
	{0xC7, "DCP", modeZeroPage, 2, 5, false, opDCP},
	{0xC8, "INY", modeImplied, 1, 2, false, opINY},
	{0xC9, "CMP", modeImmediate, 2, 2, false, opCMP},
	{0xCA, "DEX", modeImplied, 1, 2, false, opDEX},
	{0xCB, "AXS", modeImmediate, 2, 2, false, opAXS},
	{0xCC, "CPY", modeAbsolute, 3, 4, false, opCPY},
	{0xCD, "CMP", modeAbsolute, 3, 4, false, opCMP},
	{0xCE, "DEC", modeAbsolute, 3, 6, false, opDEC},
	{0xCF, "DCP", modeAbsolute, 3, 6, false, opDCP},

	{0xD0, "BNE", modeRelative, 2, 2, false, opBNE},
	{0xD1, "CMP", modeIndirectIndexed, 2, 5, true, opCMP},
	{0xD2, "KIL", modeImplied, 1, 2, false, opKIL},
	{0xD3, "DCP", modeIndirectIndexed, 2, 8, false, opDCP},
	{0xD4, "NOP", modeZeroPageX, 2, 4, false, opNOP},
	{0xD5, "CMP", modeZeroPageX, 2, 4, false, opCMP},
	{0xD6, "DEC", modeZeroPageX, 2, 6, false, opDEC},
	{0xD7, "DCP", modeZeroPageX, 2, 6, false, opDCP},
	{0xD8, "CLD", modeImplied, 1, 2, false, opCLD},
	{0xD9, "CMP", modeAbsoluteY, 3, 4, true, opCMP},
	{0xDA, "NOP", modeImplied, 1, 2, false, opNOP},
	{0xDB, "DCP", modeAbsoluteY, 3, 7, false, opDCP},
	{0xDC, "NOP", modeAbsoluteX, 3, 4, true, opNOP},
	{0xDD, "CMP", modeAbsoluteX, 3, 4, true, opCMP},
	{0xDE, "DEC", modeAbsoluteX, 3, 7, false, opDEC},
	{0xDF, "DCP", modeAbsoluteX, 3, 7, false, opDCP},

	{0xE0, "CPX", modeImmediate, 2, 2, false, opCPX},
	{0xE1, "SBC", modeIndexedIndirect, 2, 6, false, opSBC},
	{0xE2, "NOP", modeImmediate, 2, 2, false, opNOP},
	{0xE3, "ISC", modeIndexedIndirect, 2, 8, false, opISC},
	{0xE4, "CPX", modeZeroPage, 2, 3, false, opCPX},
	{0xE5, "SBC", modeZeroPage, 2, 3, false, opSBC},
	{0xE6, "INC", modeZeroPage, 2, 5, false, opINC},
	{0xE7, "ISC", modeZeroPage, 2, 5, false, opISC},
	{0xE8, "INX", modeImplied, 1, 2, false, opINX},
	{0xE9, "SBC", modeImmediate, 2, 2, false, opSBC},
	{0xEA, "NOP", modeImplied, 1, 2, false, opNOP},
	{0xEB, "SBC", modeImmediate, 2, 2, false, opSBC},
	{0xEC, "CPX", modeAbsolute, 3, 4, false, opCPX},
	{0xED, "SBC", modeAbsolute, 3, 4, false, opSBC},
	{0xEE, "INC", modeAbsolute, 3, 6, false, opINC},
	{0xEF, "ISC", modeAbsolute, 3, 6, false, opISC},

	{0xF0, "BEQ", modeRelative, 2, 2, false, opBEQ},
	{0xF1, "SBC", modeIndirectIndexed, 2, 5, true, opSBC},
	{0xF2, "KIL", modeImplied, 1, 2, false, opKIL},
	{0xF3, "ISC", modeIndirectIndexed, 2, 8, false, opISC},
	{0xF4, "NOP", modeZeroPageX, 2, 4, false, opNOP},
	{0xF5, "SBC", modeZeroPageX, 2, 4, false, opSBC},
	{0xF6, "INC", modeZeroPageX, 2, 6, false, opINC},
	{0xF7, "ISC", modeZeroPageX, 2, 6, false, opISC},
	{0xF8, "SED", modeImplied, 1, 2, false, opSED},
	{0xF9, "SBC", modeAbsoluteY, 3, 4, true, opSBC},
	{0xFA, "NOP", modeImplied, 1, 2, false, opNOP},
	{0xFB, "ISC", modeAbsoluteY, 3, 7, false, opISC},
	{0xFC, "NOP", modeAbsoluteX, 3, 4, true, opNOP},
	{0xFD, "SBC", modeAbsoluteX, 3, 4, true, opSBC},
	{0xFE, "INC", modeAbsoluteX, 3, 7, false, opINC},
	{0xFF, "ISC", modeAbsoluteX, 3, 7, false, opISC},
}

// --- addressed-value helpers -------------------------------------------------

// loadOperand reads the byte an instruction's addressing mode points
// at, or the accumulator for modeAccumulator.
func (c *CPU) loadOperand(addr uint16, mode addrMode) uint8 {
	if mode == modeAccumulator {
		return c.A
	}
	return c.bus.Read(addr)
}

func (c *CPU) storeOperand(addr uint16, mode addrMode, v uint8) {
	if mode == modeAccumulator {
		c.A = v
		return
	}
	c.bus.Write(addr, v)
}

// branch jumps to addr, adding the taken-branch cycle and the
// additional page-cross cycle, iff cond holds.
func (c *CPU) branch(addr uint16, cond bool) {
	if !cond {
		return
	}
	c.Cycles++
	if pagesDiffer(c.PC, addr) {
		c.Cycles++
	}
	c.PC = addr
}

// --- load/store/transfer -----------------------------------------------------

func opLDA(c *CPU, addr uint16, mode addrMode) { c.A = c.bus.Read(addr); c.setZN(c.A) }
func opLDX(c *CPU, addr uint16, mode addrMode) { c.X = c.bus.Read(addr); c.setZN(c.X) }
func opLDY(c *CPU, addr uint16, mode addrMode) { c.Y = c.bus.Read(addr); c.setZN(c.Y) }
func opSTA(c *CPU, addr uint16, mode addrMode) { c.bus.Write(addr, c.A) }
func opSTX(c *CPU, addr uint16, mode addrMode) { c.bus.Write(addr, c.X) }
func opSTY(c *CPU, addr uint16, mode addrMode) { c.bus.Write(addr, c.Y) }
func opTAX(c *CPU, addr uint16, mode addrMode) { c.X = c.A; c.setZN(c.X) }
func opTAY(c *CPU, addr uint16, mode addrMode) { c.Y = c.A; c.setZN(c.Y) }
func opTXA(c *CPU, addr uint16, mode addrMode) { c.A = c.X; c.setZN(c.A) }
func opTYA(c *CPU, addr uint16, mode addrMode) { c.A = c.Y; c.setZN(c.A) }
func opTSX(c *CPU, addr uint16, mode addrMode) { c.X = c.SP; c.setZN(c.X) }
func opTXS(c *CPU, addr uint16, mode addrMode) { c.SP = c.X }

// --- stack --------------------------------------------------------------

func opPHA(c *CPU, addr uint16, mode addrMode) { c.push(c.A) }
func opPHP(c *CPU, addr uint16, mode addrMode) { c.push(c.Status | FlagBreak | FlagUnused) }
func opPLA(c *CPU, addr uint16, mode addrMode) { c.A = c.pop(); c.setZN(c.A) }
func opPLP(c *CPU, addr uint16, mode addrMode) {
	c.Status = (c.pop() &^ FlagBreak) | FlagUnused
}

// --- arithmetic / logic --------------------------------------------------

func (c *CPU) adc(v uint8) {
	sum := uint16(c.A) + uint16(v) + uint16(c.Status&FlagCarry)
	result := uint8(sum)
	c.setFlag(FlagCarry, sum > 0xFF)
	c.setFlag(FlagOverflow, (c.A^result)&(v^result)&0x80 != 0)
	c.A = result
	c.setZN(c.A)
}

func opADC(c *CPU, addr uint16, mode addrMode) { c.adc(c.bus.Read(addr)) }
func opSBC(c *CPU, addr uint16, mode addrMode) { c.adc(^c.bus.Read(addr)) }

func opAND(c *CPU, addr uint16, mode addrMode) {
	c.A &= c.bus.Read(addr)
	c.setZN(c.A)
}

func opEOR(c *CPU, addr uint16, mode addrMode) {
	c.A ^= c.bus.Read(addr)
	c.setZN(c.A)
}

func opORA(c *CPU, addr uint16, mode addrMode) {
	c.A |= c.bus.Read(addr)
	c.setZN(c.A)
}

func opBIT(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr)
	c.setFlag(FlagZero, c.A&v == 0)
	c.setFlag(FlagOverflow, v&FlagOverflow != 0)
	c.setFlag(FlagNegative, v&FlagNegative != 0)
}

func (c *CPU) compare(a, b uint8) {
	c.setFlag(FlagCarry, a >= b)
	c.setZN(a - b)
}

func opCMP(c *CPU, addr uint16, mode addrMode) { c.compare(c.A, c.bus.Read(addr)) }
func opCPX(c *CPU, addr uint16, mode addrMode) { c.compare(c.X, c.bus.Read(addr)) }
func opCPY(c *CPU, addr uint16, mode addrMode) { c.compare(c.Y, c.bus.Read(addr)) }

func opINC(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.setZN(v)
}

func opDEC(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	c.setZN(v)
}

func opINX(c *CPU, addr uint16, mode addrMode) { c.X++; c.setZN(c.X) }
func opINY(c *CPU, addr uint16, mode addrMode) { c.Y++; c.setZN(c.Y) }
func opDEX(c *CPU, addr uint16, mode addrMode) { c.X--; c.setZN(c.X) }
func opDEY(c *CPU, addr uint16, mode addrMode) { c.Y--; c.setZN(c.Y) }

// --- shifts / rotates -----------------------------------------------------

func opASL(c *CPU, addr uint16, mode addrMode) {
	v := c.loadOperand(addr, mode)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.storeOperand(addr, mode, v)
	c.setZN(v)
}

func opLSR(c *CPU, addr uint16, mode addrMode) {
	v := c.loadOperand(addr, mode)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.storeOperand(addr, mode, v)
	c.setZN(v)
}

func opROL(c *CPU, addr uint16, mode addrMode) {
	v := c.loadOperand(addr, mode)
	carryIn := c.Status & FlagCarry
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.storeOperand(addr, mode, v)
	c.setZN(v)
}

func opROR(c *CPU, addr uint16, mode addrMode) {
	v := c.loadOperand(addr, mode)
	carryIn := (c.Status & FlagCarry) << 7
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.storeOperand(addr, mode, v)
	c.setZN(v)
}

// --- control flow ---------------------------------------------------------

func opJMP(c *CPU, addr uint16, mode addrMode) { c.PC = addr }

func opJSR(c *CPU, addr uint16, mode addrMode) {
	c.push16(c.PC - 1)
	c.PC = addr
}

func opRTS(c *CPU, addr uint16, mode addrMode) { c.PC = c.pop16() + 1 }

func opBRK(c *CPU, addr uint16, mode addrMode) {
	c.push16(c.PC)
	c.push(c.Status | FlagBreak | FlagUnused)
	c.setFlag(FlagInterrupt, true)
	c.PC = c.read16(vectorBRK)
}

func opRTI(c *CPU, addr uint16, mode addrMode) {
	c.Status = (c.pop() &^ FlagBreak) | FlagUnused
	c.PC = c.pop16()
}

func opBCC(c *CPU, addr uint16, mode addrMode) { c.branch(addr, !c.flag(FlagCarry)) }
func opBCS(c *CPU, addr uint16, mode addrMode) { c.branch(addr, c.flag(FlagCarry)) }
func opBEQ(c *CPU, addr uint16, mode addrMode) { c.branch(addr, c.flag(FlagZero)) }
func opBNE(c *CPU, addr uint16, mode addrMode) { c.branch(addr, !c.flag(FlagZero)) }
func opBMI(c *CPU, addr uint16, mode addrMode) { c.branch(addr, c.flag(FlagNegative)) }
func opBPL(c *CPU, addr uint16, mode addrMode) { c.branch(addr, !c.flag(FlagNegative)) }
func opBVC(c *CPU, addr uint16, mode addrMode) { c.branch(addr, !c.flag(FlagOverflow)) }
func opBVS(c *CPU, addr uint16, mode addrMode) { c.branch(addr, c.flag(FlagOverflow)) }

// --- flags ------------------------------------------------------------------

func opCLC(c *CPU, addr uint16, mode addrMode) { c.setFlag(FlagCarry, false) }
func opSEC(c *CPU, addr uint16, mode addrMode) { c.setFlag(FlagCarry, true) }
func opCLD(c *CPU, addr uint16, mode addrMode) { c.setFlag(FlagDecimal, false) }
func opSED(c *CPU, addr uint16, mode addrMode) { c.setFlag(FlagDecimal, true) }
func opCLI(c *CPU, addr uint16, mode addrMode) { c.setFlag(FlagInterrupt, false) }
func opSEI(c *CPU, addr uint16, mode addrMode) { c.setFlag(FlagInterrupt, true) }
func opCLV(c *CPU, addr uint16, mode addrMode) { c.setFlag(FlagOverflow, false) }

func opNOP(c *CPU, addr uint16, mode addrMode) {}

// opKIL models the documented illegal-opcode hang: the real chip
// locks up, so every KIL entry keeps PC pointed back at itself and
// Step just keeps re-charging its 2-cycle table entry forever.
func opKIL(c *CPU, addr uint16, mode addrMode) {
	kilOnce.Do(func() {
		glog.Warningf("mos6502: illegal opcode 0x%02X (KIL/JAM) at 0x%04X; CPU halted", c.bus.Read(c.PC-1), c.PC-1)
	})
	c.PC--
}

// --- illegal (undocumented) opcodes -----------------------------------------

func opLAX(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr)
	c.A, c.X = v, v
	c.setZN(v)
}

func opSAX(c *CPU, addr uint16, mode addrMode) {
	c.bus.Write(addr, c.A&c.X)
}

func opSLO(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr)
	c.setFlag(FlagCarry, v&0x80 != 0)
	v <<= 1
	c.bus.Write(addr, v)
	c.A |= v
	c.setZN(c.A)
}

func opRLA(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr)
	carryIn := c.Status & FlagCarry
	c.setFlag(FlagCarry, v&0x80 != 0)
	v = (v << 1) | carryIn
	c.bus.Write(addr, v)
	c.A &= v
	c.setZN(c.A)
}

func opSRE(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr)
	c.setFlag(FlagCarry, v&0x01 != 0)
	v >>= 1
	c.bus.Write(addr, v)
	c.A ^= v
	c.setZN(c.A)
}

func opRRA(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr)
	carryIn := (c.Status & FlagCarry) << 7
	c.setFlag(FlagCarry, v&0x01 != 0)
	v = (v >> 1) | carryIn
	c.bus.Write(addr, v)
	c.adc(v)
}

func opDCP(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr) - 1
	c.bus.Write(addr, v)
	c.compare(c.A, v)
}

func opISC(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr) + 1
	c.bus.Write(addr, v)
	c.adc(^v)
}

func opANC(c *CPU, addr uint16, mode addrMode) {
	c.A &= c.bus.Read(addr)
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x80 != 0)
}

func opALR(c *CPU, addr uint16, mode addrMode) {
	c.A &= c.bus.Read(addr)
	c.setFlag(FlagCarry, c.A&0x01 != 0)
	c.A >>= 1
	c.setZN(c.A)
}

func opARR(c *CPU, addr uint16, mode addrMode) {
	c.A &= c.bus.Read(addr)
	c.A = (c.A >> 1) | ((c.Status & FlagCarry) << 7)
	c.setZN(c.A)
	c.setFlag(FlagCarry, c.A&0x40 != 0)
	c.setFlag(FlagOverflow, (c.A>>6)&1^(c.A>>5)&1 != 0)
}

func opAXS(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr)
	r := (c.A & c.X) - v
	c.setFlag(FlagCarry, c.A&c.X >= v)
	c.X = r
	c.setZN(c.X)
}

// opXAA, opAHX, opSHY, opSHX, opTAS and opLAS implement the commonly
// accepted (but hardware-unstable and rarely exercised by real
// cartridges) approximations used by most software emulators.
func opXAA(c *CPU, addr uint16, mode addrMode) {
	c.A = c.X & c.bus.Read(addr)
	c.setZN(c.A)
}

func opAHX(c *CPU, addr uint16, mode addrMode) {
	hi := uint8(addr>>8) + 1
	c.bus.Write(addr, c.A&c.X&hi)
}

func opSHY(c *CPU, addr uint16, mode addrMode) {
	hi := uint8(addr>>8) + 1
	c.bus.Write(addr, c.Y&hi)
}

func opSHX(c *CPU, addr uint16, mode addrMode) {
	hi := uint8(addr>>8) + 1
	c.bus.Write(addr, c.X&hi)
}

func opTAS(c *CPU, addr uint16, mode addrMode) {
	c.SP = c.A & c.X
	hi := uint8(addr>>8) + 1
	c.bus.Write(addr, c.SP&hi)
}

func opLAS(c *CPU, addr uint16, mode addrMode) {
	v := c.bus.Read(addr) & c.SP
	c.A, c.X, c.SP = v, v, v
	c.setZN(v)
}
