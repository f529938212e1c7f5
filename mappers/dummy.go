package mappers

import (
	"math"

	"github.com/corvidlabs/nescore/nesrom"
)

// dummyMapper is a flat, unbanked address space used by tests in other
// packages (the console bus tests) that need a Mapper without loading
// a real ROM.
type dummyMapper struct {
	memory []uint8
	MM     uint8 // mirroring mode; tests can set this directly
}

func (dm *dummyMapper) ID() uint16           { return 0xFFFF }
func (dm *dummyMapper) Name() string         { return "dummy" }
func (dm *dummyMapper) Init(r *nesrom.ROM)   {}
func (dm *dummyMapper) Step()                {}
func (dm *dummyMapper) HasSaveRAM() bool     { return true }
func (dm *dummyMapper) MirroringMode() uint8 { return dm.MM }

func (dm *dummyMapper) PrgRead(addr uint16) uint8      { return dm.memory[addr] }
func (dm *dummyMapper) PrgWrite(addr uint16, val uint8) { dm.memory[addr] = val }
func (dm *dummyMapper) ChrRead(addr uint16) uint8      { return dm.memory[addr] }
func (dm *dummyMapper) ChrWrite(addr uint16, val uint8) { dm.memory[addr] = val }

// Dummy is shared by tests across packages.
var Dummy *dummyMapper = &dummyMapper{memory: make([]uint8, math.MaxUint16+1)}
