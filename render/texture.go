package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// TexSize is the edge length of the generated wall textures.
const TexSize = 64

// brickPixels paints a running-bond brick pattern into an RGBA pixel
// buffer. Rows alternate a half-brick offset; mortar lines are one pixel.
func brickPixels(size int, brick, mortar color.RGBA) []byte {
	const brickH = 8
	const brickW = 16

	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		row := y / brickH
		offset := 0
		if row%2 == 1 {
			offset = brickW / 2
		}
		for x := 0; x < size; x++ {
			c := brick
			if y%brickH == 0 || (x+offset)%brickW == 0 {
				c = mortar
			} else {
				// cheap per-brick tone variation so walls don't look flat
				n := hash2(uint32((x+offset)/brickW), uint32(row))
				d := int32(n%21) - 10
				c = shiftColor(c, d)
			}
			putPixel(pix, size, x, y, c)
		}
	}
	return pix
}

// stonePixels paints a noisy stone-block texture, used for goal-adjacent
// walls so the exit area reads differently.
func stonePixels(size int, base color.RGBA, seed uint32) []byte {
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := hash2(uint32(x)^seed, uint32(y))
			d := int32(n%41) - 20
			c := shiftColor(base, d)
			if (x%16 == 0 && y%8 < 6) || (y%16 == 0 && x%8 < 6) {
				c = shiftColor(base, -45)
			}
			putPixel(pix, size, x, y, c)
		}
	}
	return pix
}

func putPixel(pix []byte, size, x, y int, c color.RGBA) {
	i := (y*size + x) * 4
	pix[i] = c.R
	pix[i+1] = c.G
	pix[i+2] = c.B
	pix[i+3] = 0xff
}

// hash2 is a small integer mix for deterministic per-texel noise.
func hash2(x, y uint32) uint32 {
	h := x*374761393 + y*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}

func shiftColor(c color.RGBA, d int32) color.RGBA {
	return color.RGBA{
		R: clampByte(int32(c.R) + d),
		G: clampByte(int32(c.G) + d),
		B: clampByte(int32(c.B) + d),
		A: 0xff,
	}
}

func clampByte(v int32) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

func newTexture(pix []byte, size int) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.WritePixels(pix)
	return img
}

// ParseHexColor parses "#rrggbb" into an opaque RGBA, returning fallback
// for empty or malformed values.
func ParseHexColor(s string, fallback color.RGBA) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return fallback
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
