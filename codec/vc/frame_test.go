package vc

import "testing"

func TestYBlockClampsAtFarEdge(t *testing.T) {
	// 16x16 frame, one macroblock. A reference lookup at (9,9) would read
	// columns/rows [9,17), straight past the last valid index (15).
	f := NewFrame(16, 16)
	for r := 0; r < 16; r++ {
		for c := 0; c < 16; c++ {
			f.SetY(c, r, byte(r*16+c))
		}
	}

	got := f.yBlock(9, 9)
	for sr := 0; sr < 8; sr++ {
		for sc := 0; sc < 8; sc++ {
			rr, cc := clampRC(9+sr, 9+sc, 16, 16)
			want := float64(f.Y(cc, rr))
			if got[sr][sc] != want {
				t.Fatalf("yBlock(9,9)[%d][%d] = %v, want %v (clamped to (%d,%d))", sr, sc, got[sr][sc], want, cc, rr)
			}
		}
	}
}

func TestYBlockClampsAtNegativeEdge(t *testing.T) {
	// A motion vector can also push the reference window above/left of the
	// frame origin.
	f := NewFrame(16, 16)
	for r := 0; r < 16; r++ {
		for c := 0; c < 16; c++ {
			f.SetY(c, r, byte(r*16+c))
		}
	}

	got := f.yBlock(-3, -3)
	for sr := 0; sr < 8; sr++ {
		for sc := 0; sc < 8; sc++ {
			rr, cc := clampRC(-3+sr, -3+sc, 16, 16)
			want := float64(f.Y(cc, rr))
			if got[sr][sc] != want {
				t.Fatalf("yBlock(-3,-3)[%d][%d] = %v, want %v (clamped to (%d,%d))", sr, sc, got[sr][sc], want, cc, rr)
			}
		}
	}
}

func TestRefBlocksClampsAtBottomRightMacroblock(t *testing.T) {
	// 32x32: macroblock index 3 sits at the bottom-right corner (bx=16,
	// by=16). The maximum in-range motion vector (+8,+8) places the Y
	// reference window at columns/rows [24,40) — 8 past the last valid
	// index (31) — and the chroma window similarly past the 16x16 chroma
	// plane. This must not panic, and must replicate the edge sample
	// instead.
	width, height := 32, 32
	f := NewFrame(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			f.SetY(c, r, byte((r*width+c)%256))
		}
	}
	for r := 0; r < height/2; r++ {
		for c := 0; c < width/2; c++ {
			f.SetCb(c, r, byte((r*width/2+c)%256))
			f.SetCr(c, r, byte((r*width/2+c+17)%256))
		}
	}

	mbsWide := macroblocksWide(width)
	out := f.refBlocks(3, 8, 8, mbsWide)

	bx, by := 16, 16
	px, py := bx+8, by+8
	wantY := [4]Block8x8{
		f.yBlock(px, py),
		f.yBlock(px+8, py),
		f.yBlock(px, py+8),
		f.yBlock(px+8, py+8),
	}
	for k := 0; k < 4; k++ {
		if out[k] != wantY[k] {
			t.Fatalf("refBlocks Y tile %d mismatch", k)
		}
	}

	cHeight, cWidth := height/2, width/2
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			cy, cx := clampRC((py+r)/2, (px+c)/2, cHeight, cWidth)
			if out[4][r][c] != float64(f.Cb(cx, cy)) {
				t.Fatalf("refBlocks Cb[%d][%d] not clamped to edge sample", r, c)
			}
			if out[5][r][c] != float64(f.Cr(cx, cy)) {
				t.Fatalf("refBlocks Cr[%d][%d] not clamped to edge sample", r, c)
			}
		}
	}
}

func TestRefBlocksClampsAtTopLeftMacroblock(t *testing.T) {
	// The minimum in-range motion vector (-8,-8) on macroblock 0 (bx=by=0)
	// pushes the reference window above and to the left of the origin.
	width, height := 32, 32
	f := NewFrame(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			f.SetY(c, r, byte((r*width+c)%256))
		}
	}

	mbsWide := macroblocksWide(width)
	out := f.refBlocks(0, -8, -8, mbsWide)

	want := f.yBlock(-8, -8)
	if out[0] != want {
		t.Fatalf("refBlocks Y tile 0 mismatch at negative offset")
	}
}
