// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files. A mapper
// translates cartridge-space CPU/PPU addresses into bytes of the
// underlying PRG/CHR/SRAM arrays and owns any bank-switching state.
package mappers

import (
	"fmt"

	"github.com/corvidlabs/nescore/nesrom"
)

// A global registry of mapper constructors, keyed by mapper id.
var allMappers = map[uint16]func() Mapper{}

func registerMapper(id uint16, ctor func() Mapper) {
	if _, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("mappers: id %d already registered", id))
	}
	allMappers[id] = ctor
}

// Get constructs and initializes the mapper named by rom's header, or
// an error if the mapper id isn't implemented.
func Get(rom *nesrom.ROM) (Mapper, error) {
	id := rom.MapperNum()
	ctor, ok := allMappers[uint16(id)]
	if !ok {
		return nil, fmt.Errorf("mappers: unsupported mapper id %d", id)
	}

	m := ctor()
	m.Init(rom)
	return m, nil
}

// Mapper is the polymorphic cartridge interface the console bus talks
// to: CPU-space reads/writes (PRG ROM and SRAM), PPU-space
// reads/writes (CHR ROM/RAM and nametable mirroring), and a clock
// hook mappers with IRQ logic (outside our two variants) could use.
type Mapper interface {
	ID() uint16
	Name() string
	Init(*nesrom.ROM)

	PrgRead(addr uint16) uint8
	PrgWrite(addr uint16, val uint8)
	ChrRead(addr uint16) uint8
	ChrWrite(addr uint16, val uint8)

	MirroringMode() uint8
	HasSaveRAM() bool

	Step()
}

// baseMapper carries the fields every variant needs: identity, the
// backing ROM, PRG-RAM (SRAM), and CHR storage (ROM bytes, or RAM if
// the cartridge has none).
type baseMapper struct {
	id   uint16
	name string
	rom  *nesrom.ROM

	prg []byte
	chr []byte

	sram [0x2000]uint8

	mirroring uint8
}

func (bm *baseMapper) ID() uint16   { return bm.id }
func (bm *baseMapper) Name() string { return bm.name }

func (bm *baseMapper) init(rom *nesrom.ROM) {
	bm.rom = rom
	bm.prg = rom.Prg()
	if rom.HasChrRAM() {
		bm.chr = make([]byte, 0x2000)
	} else {
		bm.chr = rom.Chr()
	}
	bm.mirroring = rom.MirroringMode()
}

func (bm *baseMapper) MirroringMode() uint8 { return bm.mirroring }
func (bm *baseMapper) HasSaveRAM() bool     { return bm.rom.HasSaveRAM() }
func (bm *baseMapper) Step()                {}

func (bm *baseMapper) readSRAM(addr uint16) uint8    { return bm.sram[addr-0x6000] }
func (bm *baseMapper) writeSRAM(addr uint16, v uint8) { bm.sram[addr-0x6000] = v }
