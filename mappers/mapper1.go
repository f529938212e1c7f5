package mappers

import "github.com/corvidlabs/nescore/nesrom"

func init() {
	registerMapper(1, func() Mapper { return &mapperB{} })
}

// mapperB implements iNES mapper 1 (MMC1): a 5-bit serial shift
// register loaded one bit per write to 0x8000-0xFFFF. A write with
// bit 7 set resets the register to 0x10 and forces PRG mode 3. After
// five writes the accumulated value latches into one of four internal
// registers selected by the target address's high bits.
type mapperB struct {
	baseMapper

	shift      uint8
	shiftCount uint8

	control  uint8 // mirroring(0-1) | prgMode(2-3) | chrMode(4)
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8
}

const mmc1ShiftReset = 0x10

func (m *mapperB) Init(rom *nesrom.ROM) {
	m.id = rom.MapperNum()
	m.name = "MMC1"
	m.init(rom)
	m.shift = mmc1ShiftReset
	m.control = 0x0C // power-on: PRG mode 3 (fix last bank at 0xC000)
}

func (m *mapperB) mirroringMode() uint8 {
	switch m.control & 0x03 {
	case 0:
		return nesrom.MIRROR_SINGLE_LOWER
	case 1:
		return nesrom.MIRROR_SINGLE_UPPER
	case 2:
		return nesrom.MIRROR_VERTICAL
	default:
		return nesrom.MIRROR_HORIZONTAL
	}
}

func (m *mapperB) MirroringMode() uint8 { return m.mirroringMode() }

func (m *mapperB) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *mapperB) chrMode() uint8 { return (m.control >> 4) & 0x01 }

func (m *mapperB) PrgRead(addr uint16) uint8 {
	if addr >= 0x6000 && addr < 0x8000 {
		return m.readSRAM(addr)
	}

	prgBanks := uint32(len(m.prg) / 0x4000)
	var bank uint32
	switch m.prgMode() {
	case 0, 1: // 32 KiB mode: ignore bit 0
		bank = uint32(m.prgBank&0xFE) / 2
		return m.prg[bank*0x8000+uint32(addr-0x8000)]
	case 2: // fix first bank at 0x8000, switch at 0xC000
		if addr < 0xC000 {
			bank = 0
		} else {
			bank = uint32(m.prgBank)
		}
	default: // 3: switch at 0x8000, fix last bank at 0xC000
		if addr < 0xC000 {
			bank = uint32(m.prgBank)
		} else {
			bank = prgBanks - 1
		}
	}

	base := addr
	if addr >= 0xC000 {
		base = addr - 0xC000
	} else {
		base = addr - 0x8000
	}
	return m.prg[bank*0x4000+uint32(base)]
}

func (m *mapperB) PrgWrite(addr uint16, val uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		m.writeSRAM(addr, val)
		return
	}
	if addr < 0x8000 {
		return
	}

	if val&0x80 != 0 {
		m.shift = mmc1ShiftReset
		m.shiftCount = 0
		m.control |= 0x0C
		return
	}

	m.shift = (m.shift >> 1) | ((val & 1) << 4)
	m.shiftCount++

	if m.shiftCount < 5 {
		return
	}

	v := m.shift
	switch {
	case addr < 0xA000:
		m.control = v & 0x1F
	case addr < 0xC000:
		m.chrBank0 = v & 0x1F
	case addr < 0xE000:
		m.chrBank1 = v & 0x1F
	default:
		m.prgBank = v & 0x0F
	}

	m.shift = mmc1ShiftReset
	m.shiftCount = 0
}

func (m *mapperB) ChrRead(addr uint16) uint8 {
	return m.chr[m.chrOffset(addr)]
}

func (m *mapperB) ChrWrite(addr uint16, val uint8) {
	if !m.rom.HasChrRAM() {
		return
	}
	m.chr[m.chrOffset(addr)] = val
}

func (m *mapperB) chrOffset(addr uint16) uint32 {
	if m.chrMode() == 0 {
		bank := uint32(m.chrBank0 &^ 1)
		return bank*0x1000 + uint32(addr&0x1FFF)
	}

	if addr < 0x1000 {
		return uint32(m.chrBank0)*0x1000 + uint32(addr)
	}
	return uint32(m.chrBank1)*0x1000 + uint32(addr-0x1000)
}
