package console

import "github.com/hajimehoshi/ebiten/v2"

// Button bit order, matching the shift-register read order: A, B,
// Select, Start, Up, Down, Left, Right.
const (
	ButtonA = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var player1Keys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeySpace, ebiten.KeyEnter,
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
}

// controller models one of the two standard-controller ports at
// 0x4016/0x4017: an 8-bit parallel-load, serial-out shift register.
type controller struct {
	buttons uint8
	shift   uint8
	strobe  bool
}

// SetButtons lets a host set the live button mask directly (bit i ==
// ButtonX), bypassing ebiten key polling; used for headless driving
// and tests.
func (c *controller) SetButtons(mask uint8) {
	c.buttons = mask
	if c.strobe {
		c.shift = c.buttons
	}
}

func (c *controller) write(val uint8) {
	c.strobe = val&0x01 != 0
	if c.strobe {
		c.shift = c.buttons
	}
}

func (c *controller) read() uint8 {
	if c.strobe {
		return c.buttons & 0x01
	}
	bit := c.shift & 0x01
	c.shift = (c.shift >> 1) | 0x80
	return bit
}

// pollEbiten reads live keyboard state for player one into buttons.
func (c *controller) pollEbiten() {
	var mask uint8
	for i, key := range player1Keys {
		if ebiten.IsKeyPressed(key) {
			mask |= 1 << i
		}
	}
	c.SetButtons(mask)
}
