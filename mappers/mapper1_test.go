package mappers

import (
	"testing"

	"github.com/corvidlabs/nescore/nesrom"
)

// writeMMC1 performs the 5 single-bit writes MMC1's serial shift
// register requires to latch value v (0-0x1F) into the register
// selected by addr's high bits.
func writeMMC1(mp Mapper, addr uint16, v uint8) {
	for i := 0; i < 5; i++ {
		mp.PrgWrite(addr, (v>>i)&1)
	}
}

func TestMapperBResetBitClearsShiftRegisterMidSequence(t *testing.T) {
	rom := writeTestROM(t, 4, 1, 0x10, 0x00) // mapper 1, 4x16KiB PRG
	prg := rom.Prg()
	for bank := 0; bank < 4; bank++ {
		prg[bank*0x4000] = uint8(0xF0 + bank)
	}

	mp, err := Get(rom)
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}

	// shift in 1 of the 5 bits needed for a PRG-bank-register write,
	// then reset mid-sequence: that bit must not contribute to the
	// next write.
	mp.PrgWrite(0xE000, 1)
	mp.PrgWrite(0xE000, 0x80) // bit 7 set: reset, also forces PRG mode 3

	writeMMC1(mp, 0xE000, 2) // a fresh, complete 5-bit write selecting bank 2
	if got := mp.PrgRead(0x8000); got != 0xF2 {
		t.Errorf("0x8000 after reset+rewrite = 0x%02X, want 0xF2 (bank 2, stale shift bits discarded)", got)
	}
}

func TestMapperBPRGMode3SwitchesLowBankFixesHigh(t *testing.T) {
	rom := writeTestROM(t, 4, 1, 0x10, 0x00) // 4x16KiB PRG
	prg := rom.Prg()
	for bank := 0; bank < 4; bank++ {
		prg[bank*0x4000] = uint8(0xB0 + bank)
	}

	mp, err := Get(rom)
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}

	// control = 0x0C: PRG mode 3 (switch 0x8000, fix last at 0xC000) is the power-on default.
	writeMMC1(mp, 0xE000, 1) // select PRG bank 1 at 0x8000
	if got := mp.PrgRead(0x8000); got != 0xB1 {
		t.Errorf("0x8000 = 0x%02X, want 0xB1", got)
	}
	if got := mp.PrgRead(0xC000); got != 0xB3 {
		t.Errorf("0xC000 (fixed last bank) = 0x%02X, want 0xB3", got)
	}
}

func TestMapperBPRGMode2FixesLowSwitchesHigh(t *testing.T) {
	rom := writeTestROM(t, 4, 1, 0x10, 0x00)
	prg := rom.Prg()
	for bank := 0; bank < 4; bank++ {
		prg[bank*0x4000] = uint8(0xC0 + bank)
	}

	mp, err := Get(rom)
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}

	writeMMC1(mp, 0x8000, 0x08) // control: chrMode 0, prgMode 2, mirroring 0
	writeMMC1(mp, 0xE000, 2)    // select bank 2 at 0xC000

	if got := mp.PrgRead(0x8000); got != 0xC0 {
		t.Errorf("0x8000 (fixed first bank) = 0x%02X, want 0xC0", got)
	}
	if got := mp.PrgRead(0xC000); got != 0xC2 {
		t.Errorf("0xC000 = 0x%02X, want 0xC2", got)
	}
}

func TestMapperBPRGMode0Is32KiBModeIgnoringLowBit(t *testing.T) {
	rom := writeTestROM(t, 4, 1, 0x10, 0x00)
	prg := rom.Prg()
	for bank := 0; bank < 4; bank++ {
		prg[bank*0x4000] = uint8(0xD0 + bank)
	}

	mp, err := Get(rom)
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}

	writeMMC1(mp, 0x8000, 0x02) // control: prgMode 0 (32KiB mode), mirroring 2 (vertical)
	writeMMC1(mp, 0xE000, 0x03) // bank select 3, masked to even -> bank pair 2/3

	if got := mp.PrgRead(0x8000); got != 0xD2 {
		t.Errorf("0x8000 in 32KiB mode = 0x%02X, want 0xD2 (bank pair start)", got)
	}
	if got := mp.PrgRead(0xC000); got != 0xD3 {
		t.Errorf("0xC000 in 32KiB mode = 0x%02X, want 0xD3", got)
	}
}

func TestMapperBCHRMode1IndependentFourKiBBanks(t *testing.T) {
	rom := writeTestROM(t, 1, 4, 0x10, 0x00) // 4x8KiB CHR blocks; the first four 4KiB banks are marked
	chr := rom.Chr()
	for bank := 0; bank < 4; bank++ {
		chr[bank*0x1000] = uint8(0xE0 + bank)
	}

	mp, err := Get(rom)
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}

	writeMMC1(mp, 0x8000, 0x10) // chrMode 1: two independent 4KiB banks
	writeMMC1(mp, 0xA000, 1)    // CHR bank 0 (0x0000-0x0FFF) -> physical bank 1
	writeMMC1(mp, 0xC000, 3)    // CHR bank 1 (0x1000-0x1FFF) -> physical bank 3

	if got := mp.ChrRead(0x0000); got != 0xE1 {
		t.Errorf("CHR 0x0000 = 0x%02X, want 0xE1", got)
	}
	if got := mp.ChrRead(0x1000); got != 0xE3 {
		t.Errorf("CHR 0x1000 = 0x%02X, want 0xE3", got)
	}
}

func TestMapperBMirroringModeFromControlLowBits(t *testing.T) {
	rom := writeTestROM(t, 1, 1, 0x10, 0x00)
	mp, err := Get(rom)
	if err != nil {
		t.Fatalf("Get(): %v", err)
	}

	writeMMC1(mp, 0x8000, 0x00) // single-screen, lower bank
	if got := mp.MirroringMode(); got != nesrom.MIRROR_SINGLE_LOWER {
		t.Errorf("control=0x00: MirroringMode() = %d, want %d (single-screen lower)", got, nesrom.MIRROR_SINGLE_LOWER)
	}

	writeMMC1(mp, 0x8000, 0x02) // vertical
	if got := mp.MirroringMode(); got != nesrom.MIRROR_VERTICAL {
		t.Errorf("control=0x02: MirroringMode() = %d, want %d (vertical)", got, nesrom.MIRROR_VERTICAL)
	}

	writeMMC1(mp, 0x8000, 0x03) // horizontal
	if got := mp.MirroringMode(); got != nesrom.MIRROR_HORIZONTAL {
		t.Errorf("control=0x03: MirroringMode() = %d, want %d (horizontal)", got, nesrom.MIRROR_HORIZONTAL)
	}
}
