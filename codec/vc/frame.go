/*
DESCRIPTION
  frame.go defines the Frame type (a reconstructed YCbCr 4:2:0 frame) and
  the FrameSource/FrameSink contracts that the codec core consumes and
  produces. These mirror the "external collaborator" pixel-accessor
  contract from spec.md §6; concrete stdin/stdout implementations live in
  internal/yuvio.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vc

// FrameSource is the read side of the frame I/O contract: pixel accessors
// plus dimensions. x is the column, y is the row.
type FrameSource interface {
	Width() int
	Height() int
	Y(x, y int) byte
	Cb(x, y int) byte
	Cr(x, y int) byte
}

// FrameSink is the write side of the frame I/O contract.
type FrameSink interface {
	Width() int
	Height() int
	SetY(x, y int, v byte)
	SetCb(x, y int, v byte)
	SetCr(x, y int, v byte)
}

// Frame is a concrete, in-memory reconstructed YCbCr 4:2:0 frame. It
// implements both FrameSource and FrameSink, and is used internally as the
// reference frame owned by the Encoder and Decoder.
type Frame struct {
	width, height int
	y, cb, cr     plane
}

// NewFrame returns a new, zeroed Frame of the given luma dimensions. width
// and height must be even.
func NewFrame(width, height int) *Frame {
	return &Frame{
		width:  width,
		height: height,
		y:      newPlane(height, width),
		cb:     newPlane(height/2, width/2),
		cr:     newPlane(height/2, width/2),
	}
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

func (f *Frame) Y(x, y int) byte  { return f.y.at(y, x) }
func (f *Frame) Cb(x, y int) byte { return f.cb.at(y, x) }
func (f *Frame) Cr(x, y int) byte { return f.cr.at(y, x) }

func (f *Frame) SetY(x, y int, v byte)  { f.y.set(y, x, v) }
func (f *Frame) SetCb(x, y int, v byte) { f.cb.set(y, x, v) }
func (f *Frame) SetCr(x, y int, v byte) { f.cr.set(y, x, v) }

// fromSource copies a FrameSource into a new Frame.
func fromSource(src FrameSource) *Frame {
	w, h := src.Width(), src.Height()
	f := NewFrame(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.SetY(x, y, src.Y(x, y))
		}
	}
	for y := 0; y < h/2; y++ {
		for x := 0; x < w/2; x++ {
			f.SetCb(x, y, src.Cb(x, y))
			f.SetCr(x, y, src.Cr(x, y))
		}
	}
	return f
}

// writeTo copies f into a FrameSink.
func (f *Frame) writeTo(dst FrameSink) {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			dst.SetY(x, y, f.Y(x, y))
		}
	}
	for y := 0; y < f.height/2; y++ {
		for x := 0; x < f.width/2; x++ {
			dst.SetCb(x, y, f.Cb(x, y))
			dst.SetCr(x, y, f.Cr(x, y))
		}
	}
}

// yBlock extracts the 8x8 luma block at pixel offset (x,y), i.e. with
// (x,y) as the top-left corner, clamping each sample to the frame's edges.
// Used for motion-compensated reference lookups, where a motion vector can
// carry the offset past either edge of the frame.
func (f *Frame) yBlock(x, y int) Block8x8 {
	var b Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			yy, xx := clampRC(y+r, x+c, f.height, f.width)
			b[r][c] = float64(f.Y(xx, yy))
		}
	}
	return b
}

// refBlocks gathers the six co-located reference blocks (four Y tiles, one
// Cb, one Cr) for macroblock macroIdx from f, offset by the motion vector
// (vx,vy), per spec.md §4.6's exact reference rule: Cb/Cr samples are
// picked at the halved coordinate (P_x+c)/2, (P_y+r)/2 via integer
// division.
func (f *Frame) refBlocks(macroIdx, vx, vy, mbsWide int) [6]Block8x8 {
	bx := (macroIdx % mbsWide) * 16
	by := (macroIdx / mbsWide) * 16
	px, py := bx+vx, by+vy

	var out [6]Block8x8
	out[0] = f.yBlock(px, py)
	out[1] = f.yBlock(px+8, py)
	out[2] = f.yBlock(px, py+8)
	out[3] = f.yBlock(px+8, py+8)

	cHeight, cWidth := f.height/2, f.width/2
	var cb, cr Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			cy, cx := clampRC((py+r)/2, (px+c)/2, cHeight, cWidth)
			cb[r][c] = float64(f.Cb(cx, cy))
			cr[r][c] = float64(f.Cr(cx, cy))
		}
	}
	out[4] = cb
	out[5] = cr
	return out
}
