/*
DESCRIPTION
  dct.go implements the forward/inverse 8x8 DCT via the fixed cosine matrix,
  and quantization/unquantization against the JPEG-style luminance and
  chrominance tables scaled by the quality multiplier.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vc

import "math"

// cMatrix and cMatrixTranspose are the 8x8 DCT-II basis matrix and its
// transpose. Both are computed once at package initialization and never
// mutated afterwards; the forward DCT is C·A·Cᵀ and the inverse is Cᵀ·A·C.
var (
	cMatrix          Block8x8
	cMatrixTranspose Block8x8
)

func init() {
	cMatrix = createCMatrix()
	cMatrixTranspose = transposeBlock(cMatrix)
}

// createCMatrix computes the 8x8 DCT-II basis matrix.
func createCMatrix() Block8x8 {
	const n = 8.0
	root1OverN := math.Sqrt(1 / n)
	root2OverN := math.Sqrt(2 / n)

	var m Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			if r == 0 {
				m[r][c] = root1OverN
				continue
			}
			angle := (2*float64(c) + 1) * float64(r) * math.Pi / (2 * n)
			m[r][c] = root2OverN * math.Cos(angle)
		}
	}
	return m
}

// forwardDCT returns the 8x8 DCT of block: C·A·Cᵀ.
func forwardDCT(block Block8x8) Block8x8 {
	return multiplyBlock(multiplyBlock(cMatrix, block), cMatrixTranspose)
}

// inverseDCT returns the 8x8 inverse DCT of block: Cᵀ·A·C.
func inverseDCT(block Block8x8) Block8x8 {
	return multiplyBlock(multiplyBlock(cMatrixTranspose, block), cMatrix)
}

// luminanceTable and chrominanceTable are the base JPEG quantization
// tables, scaled at use by a quality- and path-dependent multiplier (see
// quantMultiplier in quality.go).
var luminanceTable = Block8x8{
	{16, 11, 10, 16, 24, 40, 51, 61},
	{12, 12, 14, 19, 26, 58, 60, 55},
	{14, 13, 16, 24, 40, 57, 69, 56},
	{14, 17, 22, 29, 51, 87, 80, 62},
	{18, 22, 37, 56, 68, 109, 103, 77},
	{24, 35, 55, 64, 81, 104, 113, 92},
	{49, 64, 78, 87, 103, 121, 120, 101},
	{72, 92, 95, 98, 112, 100, 103, 99},
}

var chrominanceTable = Block8x8{
	{17, 18, 24, 47, 99, 99, 99, 99},
	{18, 21, 26, 66, 99, 99, 99, 99},
	{24, 26, 56, 99, 99, 99, 99, 99},
	{47, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
	{99, 99, 99, 99, 99, 99, 99, 99},
}

// quantizeBlock divides block element-wise by (multiplier · table) and
// rounds to the nearest integer, returning the result still as a Block8x8
// of float64 (its entries are integral).
func quantizeBlock(block Block8x8, q Quality, luminance, pBlock bool) Block8x8 {
	mult := quantMultiplier(q, luminance, pBlock)
	table := &chrominanceTable
	if luminance {
		table = &luminanceTable
	}
	var out Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out[r][c] = math.Round(block[r][c] / (mult * table[r][c]))
		}
	}
	return out
}

// unquantizeBlock multiplies block element-wise by (multiplier · table),
// inverting quantizeBlock.
func unquantizeBlock(block Block8x8, q Quality, luminance, pBlock bool) Block8x8 {
	mult := quantMultiplier(q, luminance, pBlock)
	table := &chrominanceTable
	if luminance {
		table = &luminanceTable
	}
	var out Block8x8
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out[r][c] = block[r][c] * (mult * table[r][c])
		}
	}
	return out
}
