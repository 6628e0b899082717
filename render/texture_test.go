package render

import (
	"image/color"
	"math"
	"testing"

	"mazewalker/maze"
)

func TestBrickPixelsShape(t *testing.T) {
	base := color.RGBA{R: 0x80, G: 0x50, B: 0x40, A: 0xff}
	mortar := color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	pix := brickPixels(TexSize, base, mortar)

	if len(pix) != TexSize*TexSize*4 {
		t.Fatalf("pixel buffer length %d, want %d", len(pix), TexSize*TexSize*4)
	}
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0xff {
			t.Fatal("textures must be fully opaque")
		}
	}

	// mortar rows every 8 pixels
	for x := 0; x < TexSize; x++ {
		i := x * 4
		if pix[i] != mortar.R || pix[i+1] != mortar.G {
			t.Fatalf("row 0 should be mortar, got pixel %d=(%d,%d)", x, pix[i], pix[i+1])
		}
	}

	// deterministic
	again := brickPixels(TexSize, base, mortar)
	for i := range pix {
		if pix[i] != again[i] {
			t.Fatal("brick texture must be deterministic")
		}
	}
}

func TestStonePixelsVary(t *testing.T) {
	base := color.RGBA{R: 0x60, G: 0x70, B: 0x80, A: 0xff}
	pix := stonePixels(TexSize, base, 1)

	distinct := make(map[byte]struct{})
	for i := 0; i < len(pix); i += 4 {
		distinct[pix[i]] = struct{}{}
	}
	if len(distinct) < 8 {
		t.Fatalf("stone texture too flat: %d distinct red levels", len(distinct))
	}
}

func TestParseHexColor(t *testing.T) {
	fallback := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	cases := []struct {
		name string
		in   string
		want color.RGBA
	}{
		{"valid", "#8a5a44", color.RGBA{R: 0x8a, G: 0x5a, B: 0x44, A: 0xff}},
		{"empty", "", fallback},
		{"garbage", "brown", fallback},
		{"short", "#8a5a", fallback},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ParseHexColor(c.in, fallback); got != c.want {
				t.Fatalf("ParseHexColor(%q)=%v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestCastRayHitsFacingWall(t *testing.T) {
	grid, err := maze.ParseGrid("-----\n-S.E-\n-----")
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}

	// from the start cell center looking +X down the corridor: the wall
	// behind the goal is 3.5 cells away
	hit := castRay(grid, 1.5, 1.5, 1, 0)
	if hit.cellX != 4 || hit.cellZ != 1 {
		t.Fatalf("ray hit cell (%d,%d), want (4,1)", hit.cellX, hit.cellZ)
	}
	if math.Abs(hit.dist-2.5) > 1e-9 {
		t.Fatalf("perpendicular distance %v, want 2.5", hit.dist)
	}
	if hit.side != 0 {
		t.Fatalf("expected an X-face hit, got side %d", hit.side)
	}

	// looking -Z hits the top wall half a cell away
	hit = castRay(grid, 1.5, 1.5, 0, -1)
	if hit.cellZ != 0 || math.Abs(hit.dist-0.5) > 1e-9 {
		t.Fatalf("expected top wall at dist 0.5, got cell (%d,%d) dist %v", hit.cellX, hit.cellZ, hit.dist)
	}
}
