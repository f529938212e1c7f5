package mos6502

// addrMode identifies one of the 13 addressing modes the 6502 decode
// table can select.
// https://www.nesdev.org/obelisk-6502-guide/addressing.html
type addrMode uint8

const (
	modeAbsolute addrMode = iota
	modeAbsoluteX
	modeAbsoluteY
	modeAccumulator
	modeImmediate
	modeImplied
	modeIndexedIndirect // (zp,X)
	modeIndirect        // JMP ($xxxx), page-wrap bug
	modeIndirectIndexed // (zp),Y
	modeRelative
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
)

// instruction is one row of the 256-entry decode table: addressing
// mode, size in bytes, base cycle count, whether a page-cross adds a
// cycle, the mnemonic (disassembly/logging only) and the handler.
type instruction struct {
	name      string
	mode      addrMode
	size      uint8
	cycles    uint8
	pageCross bool
	fn        func(c *CPU, addr uint16, mode addrMode)
}
