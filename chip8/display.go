package chip8

import "strings"

// Screen dimensions in pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Display is the framebuffer, one bit per pixel. Rows are 8 bytes wide and
// stored MSB first: pixel <0,0> is bit 0x80 of byte 0.
type Display [ScreenWidth * ScreenHeight / 8]byte

// Clear turns every pixel off.
func (d *Display) Clear() {
	*d = Display{}
}

// Pixel returns 1 if the pixel at x, y is on. Coordinates outside of the
// screen read as 0.
func (d *Display) Pixel(x, y int) byte {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return 0
	}

	i, mask := d.bit(x, y)
	if d[i]&mask != 0 {
		return 1
	}
	return 0
}

// Blit XORs sprite onto the screen with its top-left corner at x, y. The
// origin wraps around the screen; rows past the bottom edge are clipped and
// columns past the right edge wrap. Returns true if any pixel was turned off.
func (d *Display) Blit(x, y int, sprite []byte) bool {
	x0 := x % ScreenWidth
	y0 := y % ScreenHeight
	collision := false

	for r, s := range sprite {
		row := y0 + r

		// no vertical wraparound
		if row >= ScreenHeight {
			break
		}

		for c := 0; c < 8; c++ {
			if s&(0x80>>c) == 0 {
				continue
			}

			i, mask := d.bit((x0+c)%ScreenWidth, row)
			if d[i]&mask != 0 {
				collision = true
			}

			d[i] ^= mask
		}
	}

	return collision
}

// String renders the display as rows of '#' (on) and '.' (off).
func (d *Display) String() string {
	var sb strings.Builder

	sb.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if d.Pixel(x, y) != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// bit returns the byte index and mask of a pixel.
func (d *Display) bit(x, y int) (int, byte) {
	p := y*ScreenWidth + x
	return p >> 3, 0x80 >> (p & 7)
}
