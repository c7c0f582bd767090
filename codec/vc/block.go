/*
DESCRIPTION
  block.go implements the pure 8x8 / 16x16 block math: matrix multiply,
  transpose, element-wise delta/add, the zig-zag scan, and round-and-clamp
  to a byte. These routines have no knowledge of quantization, DCT, or the
  bitstream; they are the leaf layer the rest of the codec is built on.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vc

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Block8x8 holds 64 double-precision values arranged 8 rows by 8 columns.
// It is used for pixel data, DCT coefficients, and (after quantization)
// integer-valued quantized coefficients still carried as float64.
type Block8x8 [8][8]float64

// Block16x16 is four Block8x8 tiles in raster order: top-left, top-right,
// bottom-left, bottom-right. It is only ever used as motion-estimator
// input.
type Block16x16 [16][16]float64

// Array64 holds the 64 entries of a Block8x8 read out in zig-zag order,
// interpreted as signed integers.
type Array64 [64]int

// multiplyBlock returns a*b using gonum's dense matrix multiplication.
func multiplyBlock(a, b Block8x8) Block8x8 {
	ma := mat.NewDense(8, 8, flatten(a))
	mb := mat.NewDense(8, 8, flatten(b))
	var result mat.Dense
	result.Mul(ma, mb)
	return unflatten(&result)
}

// transposeBlock returns the transpose of block.
func transposeBlock(block Block8x8) Block8x8 {
	var t Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			t[c][r] = block[r][c]
		}
	}
	return t
}

// deltaBlock returns a-b element-wise.
func deltaBlock(a, b Block8x8) Block8x8 {
	var d Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			d[r][c] = a[r][c] - b[r][c]
		}
	}
	return d
}

// addDeltaBlock returns block+delta element-wise.
func addDeltaBlock(block, delta Block8x8) Block8x8 {
	var s Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			s[r][c] = block[r][c] + delta[r][c]
		}
	}
	return s
}

// createMacroblock assembles four 8x8 tiles (top-left, top-right,
// bottom-left, bottom-right) into a 16x16 macroblock.
func createMacroblock(tl, tr, bl, br Block8x8) Block16x16 {
	var mb Block16x16
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			mb[r][c] = tl[r][c]
			mb[r][c+8] = tr[r][c]
			mb[r+8][c] = bl[r][c]
			mb[r+8][c+8] = br[r][c]
		}
	}
	return mb
}

// roundClampToByte rounds v to the nearest integer and clamps it to
// [0, 255], returning the result as a byte.
func roundClampToByte(v float64) byte {
	i := int(v + 0.5)
	switch {
	case i < 0:
		return 0
	case i > 255:
		return 255
	default:
		return byte(i)
	}
}

// zigzagDirection is the scan direction used by the zig-zag state machine.
type zigzagDirection int

const (
	dirRight zigzagDirection = iota
	dirDown
	dirDownLeft
	dirUpRight
)

// nextDirection implements the zig-zag direction transition rule from
// spec.md §4.1: a fixed state machine over the 8x8 boundary cells.
func nextDirection(r, c int, cur zigzagDirection) zigzagDirection {
	const first, last = 0, 7
	switch {
	case (r == first || r == last) && c%2 == 0:
		return dirRight
	case (c == first || c == last) && r%2 == 1:
		return dirDown
	case (r == first && c%2 == 1) || (c == last && r%2 == 0):
		return dirDownLeft
	case (c == first && r%2 == 0) || (r == last && c%2 == 1):
		return dirUpRight
	default:
		return cur
	}
}

// blockToArray converts an 8x8 block to a 64-element array in zig-zag
// order, rounding each entry to the nearest integer. It is the inverse of
// arrayToBlock.
func blockToArray(block Block8x8) Array64 {
	var a Array64
	dir := dirRight
	r, c := 0, 0
	for i := 0; i < 64; i++ {
		a[i] = int(math.Round(block[r][c]))
		dir = nextDirection(r, c, dir)
		switch dir {
		case dirRight:
			c++
		case dirDown:
			r++
		case dirDownLeft:
			r++
			c--
		default: // dirUpRight
			r--
			c++
		}
	}
	return a
}

// arrayToBlock converts a 64-element zig-zag-ordered array back to an 8x8
// block. It is the inverse of blockToArray.
func arrayToBlock(a Array64) Block8x8 {
	var block Block8x8
	dir := dirRight
	r, c := 0, 0
	for i := 0; i < 64; i++ {
		block[r][c] = float64(a[i])
		dir = nextDirection(r, c, dir)
		switch dir {
		case dirRight:
			c++
		case dirDown:
			r++
		case dirDownLeft:
			r++
			c--
		default: // dirUpRight
			r--
			c++
		}
	}
	return block
}

// flatten lays out a Block8x8 in row-major order for gonum.
func flatten(b Block8x8) []float64 {
	out := make([]float64, 64)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out[r*8+c] = b[r][c]
		}
	}
	return out
}

// unflatten is the inverse of flatten.
func unflatten(m *mat.Dense) Block8x8 {
	var b Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			b[r][c] = m.At(r, c)
		}
	}
	return b
}
