package console

import (
	"testing"

	"github.com/corvidlabs/nescore/mappers"
)

func newTestBus() *Bus {
	return New(mappers.Dummy)
}

func TestRAMMirroring(t *testing.T) {
	b := newTestBus()

	b.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		if got := b.Read(mirror); got != 0x42 {
			t.Errorf("Read(0x%04X) = 0x%02X, want 0x42 (mirror of 0x0000)", mirror, got)
		}
	}

	b.Write(0x1801, 0x99)
	if got := b.Read(0x0001); got != 0x99 {
		t.Errorf("Read(0x0001) = 0x%02X, want 0x99 (written via mirror 0x1801)", got)
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	b := newTestBus()

	// 0x3FF6/0x3FF7 mirror PPUADDR/PPUDATA (0x2006/0x2007) every 8
	// bytes; palette reads are unbuffered, so a round trip through the
	// mirrored addresses confirms the CPU-side wraparound.
	b.Write(0x3FF6, 0x3F)
	b.Write(0x3FF6, 0x00)
	b.Write(0x3FF7, 0x15)

	b.Read(0x2002) // clear the address write toggle
	b.Write(0x2006, 0x3F)
	b.Write(0x2006, 0x00)
	if got := b.Read(0x2007); got != 0x15 {
		t.Errorf("palette byte via mirrored register write = 0x%02X, want 0x15", got)
	}
}

func TestControllerShiftRegisterReadOrder(t *testing.T) {
	b := newTestBus()

	// A, B and Right held; shift-out order is A,B,Select,Start,Up,Down,Left,Right.
	b.controllers[0].SetButtons(1<<ButtonA | 1<<ButtonB | 1<<ButtonRight)

	b.Write(0x4016, 0x01) // strobe high: continuously latches
	b.Write(0x4016, 0x00) // strobe low: start shifting

	want := []uint8{1, 1, 0, 0, 0, 0, 0, 1}
	for i, w := range want {
		if got := b.Read(0x4016) & 0x01; got != w {
			t.Errorf("bit %d = %d, want %d", i, got, w)
		}
	}

	// past the 8th read, hardware returns 1 forever
	for i := 0; i < 3; i++ {
		if got := b.Read(0x4016) & 0x01; got != 1 {
			t.Errorf("post-exhaustion read %d = %d, want 1", i, got)
		}
	}
}

func TestControllerWriteLatchesBothPorts(t *testing.T) {
	b := newTestBus()
	b.controllers[1].SetButtons(1 << ButtonStart)

	b.Write(0x4016, 0x01)
	b.Write(0x4016, 0x00)

	if got := b.Read(0x4017) & 0x01; got != 0 {
		t.Fatalf("first bit of port 2 = %d, want 0 (A is not held)", got)
	}
	b.Read(0x4017) // B
	b.Read(0x4017) // Select
	if got := b.Read(0x4017) & 0x01; got != 1 {
		t.Fatalf("Start bit of port 2 = %d, want 1 (latched by the 0x4016 strobe)", got)
	}
}

func TestOAMDMACopiesPageAndStallsCPU(t *testing.T) {
	b := newTestBus()
	for i := 0; i < 256; i++ {
		b.Write(0x0200+uint16(i), uint8(i))
	}

	before := b.cpu.Cycles
	b.Write(0x4014, 0x02)

	steps := 0
	for b.cpu.Cycles-before < 513 && steps < 1000 {
		b.stepInstruction()
		steps++
	}
	if steps != 513 {
		t.Errorf("CPU stalled for %d single-cycle steps, want 513", steps)
	}

	if b.ppu.OAMByte(0) != 0 || b.ppu.OAMByte(255) != 255 {
		t.Errorf("OAM not copied correctly: byte0=%d byte255=%d", b.ppu.OAMByte(0), b.ppu.OAMByte(255))
	}
}
