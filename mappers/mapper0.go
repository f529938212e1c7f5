package mappers

import "github.com/corvidlabs/nescore/nesrom"

func init() {
	registerMapper(0, func() Mapper { return &mapperA{} })
	registerMapper(2, func() Mapper { return &mapperA{} })
}

// mapperA implements iNES mappers 0 (NROM) and 2 (UxROM): the first
// 16 KiB PRG bank is switchable by any write to 0x8000-0xFFFF (value
// masked to bankCount-1); the second 16 KiB bank is permanently fixed
// to the last bank. CHR is a single fixed 8 KiB bank, writable only
// when the cartridge supplies CHR RAM rather than CHR ROM.
type mapperA struct {
	baseMapper
	bank      uint8
	bankCount uint8
}

func (m *mapperA) Init(rom *nesrom.ROM) {
	m.id = rom.MapperNum()
	m.name = "NROM/UxROM"
	m.init(rom)
	m.bankCount = uint8(len(m.prg) / 0x4000)
}

func (m *mapperA) PrgRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return m.readSRAM(addr)
	case addr >= 0x8000 && addr < 0xC000:
		return m.prg[uint32(m.bank)*0x4000+uint32(addr-0x8000)]
	default: // 0xC000-0xFFFF, fixed to the last bank
		last := m.bankCount - 1
		return m.prg[uint32(last)*0x4000+uint32(addr-0xC000)]
	}
}

func (m *mapperA) PrgWrite(addr uint16, val uint8) {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		m.writeSRAM(addr, val)
	case addr >= 0x8000:
		if m.bankCount > 0 {
			m.bank = val % m.bankCount
		}
	}
}

func (m *mapperA) ChrRead(addr uint16) uint8  { return m.chr[addr] }
func (m *mapperA) ChrWrite(addr uint16, val uint8) {
	if m.rom.HasChrRAM() {
		m.chr[addr] = val
	}
}
