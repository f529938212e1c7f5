// Package console wires the CPU, PPU, APU stub and cartridge mapper
// together behind the shared memory bus and drives the emulation loop.
package console

import (
	"fmt"
	"sync"

	"github.com/corvidlabs/nescore/apu"
	"github.com/corvidlabs/nescore/mappers"
	"github.com/corvidlabs/nescore/mos6502"
	"github.com/corvidlabs/nescore/nesrom"
	"github.com/corvidlabs/nescore/ppu"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	baseRAMSize     = 0x0800
	baseRAMMirror   = 0x1FFF
	ppuRegMirror    = 0x3FFF
	apuIOEnd        = 0x4017
	cartridgeStart  = 0x4020

	regOAMDMA      = 0x4014
	regController1 = 0x4016
	regController2 = 0x4017
)

// Bus is the CPU-facing NES memory map. It also satisfies ppu.Bus
// (CHR routing, mirroring mode, NMI line) and ebiten.Game (for the
// windowed driver).
type Bus struct {
	cpu *mos6502.CPU
	ppu *ppu.PPU
	apu *apu.APU

	mapper mappers.Mapper
	ram    [baseRAMSize]uint8

	controllers [2]controller

	oddCycle bool

	unmappedOnce sync.Once
}

// New builds a console around an already-resolved cartridge mapper.
func New(m mappers.Mapper) *Bus {
	b := &Bus{mapper: m}
	b.cpu = mos6502.New(b)
	b.apu = apu.New()
	b.ppu = ppu.New(b)

	w, h := b.ppu.GetResolution()
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("nescore")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return b
}

// Load parses path as an iNES cartridge, resolves its mapper and
// returns a freshly reset console ready to run.
func Load(path string) (*Bus, error) {
	rom, err := nesrom.New(path)
	if err != nil {
		return nil, fmt.Errorf("console: loading cartridge: %w", err)
	}

	m, err := mappers.Get(rom)
	if err != nil {
		return nil, fmt.Errorf("console: resolving mapper: %w", err)
	}

	return New(m), nil
}

// Reset reproduces the reset-button behavior: the CPU reloads PC from
// the reset vector; PPU and APU state is unaffected on real hardware,
// so we leave them running.
func (b *Bus) Reset() {
	b.cpu.Reset()
}

// SetButtons updates controller n's (0 or 1) button mask directly,
// for headless hosts that don't want to go through ebiten key polling.
func (b *Bus) SetButtons(n int, mask uint8) {
	b.controllers[n].SetButtons(mask)
}

// Framebuffer returns the last completed frame. Callers must not
// mutate it.
func (b *Bus) Framebuffer() *ppu.Framebuffer {
	return b.ppu.Framebuffer()
}

// StepFrame runs the console until the PPU's frame counter advances
// (the pre-render scanline 261 has ended), and returns the total CPU
// cycles consumed.
func (b *Bus) StepFrame() int {
	startFrame := b.ppuFrame()
	cycles := 0
	for b.ppuFrame() == startFrame {
		cycles += b.stepInstruction()
	}
	return cycles
}

func (b *Bus) ppuFrame() uint64 {
	// exposed via a small accessor so StepFrame doesn't reach into
	// ppu internals directly
	return b.ppu.FrameCount()
}

// stepInstruction advances the CPU by exactly one instruction, then
// keeps the PPU and APU clocks in lockstep: 3 PPU ticks and 1 APU
// tick per CPU cycle consumed, per the NES clock ratio.
func (b *Bus) stepInstruction() int {
	c := b.cpu.Step()
	for i := 0; i < c*3; i++ {
		b.ppu.Tick(1)
		b.mapper.Step()
	}
	for i := 0; i < c; i++ {
		b.apu.Tick()
	}
	if c%2 != 0 {
		b.oddCycle = !b.oddCycle
	}
	return c
}

// --- ppu.Bus -------------------------------------------------------------

func (b *Bus) ChrRead(addr uint16) uint8       { return b.mapper.ChrRead(addr) }
func (b *Bus) ChrWrite(addr uint16, val uint8) { b.mapper.ChrWrite(addr, val) }
func (b *Bus) MirrorMode() uint8               { return b.mapper.MirroringMode() }
func (b *Bus) TriggerNMI()                     { b.cpu.TriggerNMI() }

// --- mos6502.Bus -----------------------------------------------------------

func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= baseRAMMirror:
		return b.ram[addr&0x07FF]
	case addr <= ppuRegMirror:
		return b.ppu.ReadReg(0x2000 + addr%8)
	case addr == regController1:
		return b.controllers[0].read()
	case addr == regController2:
		return b.controllers[1].read()
	case addr <= apuIOEnd:
		return b.apu.Read(addr)
	case addr < cartridgeStart:
		b.logUnmapped(addr)
		return 0
	default:
		return b.mapper.PrgRead(addr)
	}
}

func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= baseRAMMirror:
		b.ram[addr&0x07FF] = val
	case addr <= ppuRegMirror:
		b.ppu.WriteReg(0x2000+addr%8, val)
	case addr == regOAMDMA:
		b.oamDMA(val)
	case addr == regController1:
		b.controllers[0].write(val)
		b.controllers[1].write(val)
	case addr <= apuIOEnd:
		b.apu.Write(addr, val)
	case addr < cartridgeStart:
		b.logUnmapped(addr)
	default:
		b.mapper.PrgWrite(addr, val)
	}
}

// logUnmapped reports an access to an address this bus doesn't route
// anywhere (e.g. the CPU test-mode registers at 0x4018-0x401F), once
// per range, per the open-bus-as-zero approximation.
func (b *Bus) logUnmapped(addr uint16) {
	b.unmappedOnce.Do(func() {
		glog.Warningf("console: access to unmapped address 0x%04X (further instances suppressed)", addr)
	})
}

// oamDMA implements the 0x4014 OAM DMA transfer: 256 bytes from CPU
// page val<<8 are copied into OAM starting at the PPU's current
// OAMADDR, stalling the CPU 513 cycles (514 on an odd cycle).
func (b *Bus) oamDMA(val uint8) {
	base := uint16(val) << 8
	for i := 0; i < 256; i++ {
		b.ppu.WriteOAMByte(b.Read(base + uint16(i)))
	}

	stall := 513
	if b.oddCycle {
		stall++
	}
	b.cpu.AddStallCycles(stall)
}

// --- ebiten.Game -----------------------------------------------------------

func (b *Bus) Layout(outsideWidth, outsideHeight int) (int, int) {
	return b.ppu.GetResolution()
}

func (b *Bus) Update() error {
	b.controllers[0].pollEbiten()
	b.StepFrame()
	return nil
}

func (b *Bus) Draw(screen *ebiten.Image) {
	fb := b.Framebuffer()
	w, h := b.ppu.GetResolution()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 3
			screen.Set(x, y, rgbColor{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]})
		}
	}
}

// rgbColor implements color.Color for a framebuffer pixel without
// pulling in image/color's alpha-premultiplication assumptions.
type rgbColor struct{ r, g, b uint8 }

func (c rgbColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.r) * 0x101
	g = uint32(c.g) * 0x101
	b = uint32(c.b) * 0x101
	a = 0xFFFF
	return
}
