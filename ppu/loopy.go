package ppu

// loopy holds one of the PPU's two 15-bit VRAM address latches (v and
// t), named for Loopy's famous scrolling writeup.
// yyy NN YYYYY XXXXX
// ||| || ||||| +++++-- coarse X scroll
// ||| || +++++-------- coarse Y scroll
// ||| ++-------------- nametable select
// +++----------------- fine Y scroll
type loopy struct {
	data uint16 // only 15 bits used
}

func (l *loopy) coarseX() uint16 { return l.data & 0x001F }

func (l *loopy) coarseY() uint16 { return (l.data & 0x03E0) >> 5 }

func (l *loopy) fineY() uint16 { return (l.data & 0x7000) >> 12 }

// incrementCoarseX implements the documented 5-bit rollover: wrapping
// from 31 back to 0 flips the horizontal nametable-select bit (10).
func (l *loopy) incrementCoarseX() {
	if l.data&0x001F == 31 {
		l.data &^= 0x001F
		l.data ^= 0x0400
	} else {
		l.data++
	}
}

// incrementFineY rolls fine-Y 0-7 into coarse-Y at the documented
// boundary: coarse-Y 29 wraps to 0 and flips the vertical
// nametable-select bit (11); coarse-Y 31 (an out-of-range value some
// games end up with) wraps to 0 without flipping the nametable bit.
func (l *loopy) incrementFineY() {
	if l.data&0x7000 != 0x7000 {
		l.data += 0x1000
		return
	}

	l.data &^= 0x7000
	y := (l.data & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		l.data ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	l.data = (l.data & 0xFC1F) | (y << 5)
}

// copyHorizontal copies the horizontal scroll bits (coarse X and
// nametable-X) from t into the receiver, as happens at dot 257.
func (l *loopy) copyHorizontal(t loopy) {
	l.data = (l.data & 0xFBE0) | (t.data & 0x041F)
}

// copyVertical copies the vertical scroll bits (coarse Y, fine Y and
// nametable-Y) from t into the receiver, as happens at pre-render
// dots 280-304.
func (l *loopy) copyVertical(t loopy) {
	l.data = (l.data & 0x041F) | (t.data & 0xFBE0)
}
