/*
DESCRIPTION
  partition.go splits a YCbCr 4:2:0 plane into ordered sequences of 8x8
  blocks (and reassembles them), applying edge replication for planes whose
  dimensions are not multiples of the block size.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vc

// plane is a row-major byte plane of the given height and width.
type plane struct {
	height, width int
	pix           []byte // len == height*width, row-major.
}

func newPlane(height, width int) plane {
	return plane{height: height, width: width, pix: make([]byte, height*width)}
}

func (p plane) at(r, c int) byte {
	return p.pix[r*p.width+c]
}

func (p plane) set(r, c int, v byte) {
	p.pix[r*p.width+c] = v
}

// clampRC clamps (r,c) to the valid row/column range of a height x width
// plane, implementing the edge-replication padding rule from spec.md §4.3.
// Used both for partitioning (r,c never negative there) and for
// motion-compensated reference lookups, where a motion vector can carry the
// offset below zero as well as past the far edge.
func clampRC(r, c, height, width int) (int, int) {
	if r < 0 {
		r = 0
	} else if r >= height {
		r = height - 1
	}
	if c < 0 {
		c = 0
	} else if c >= width {
		c = width - 1
	}
	return r, c
}

// partitionC partitions a chroma (Cb or Cr) plane into 8x8 blocks in plain
// row-major order.
func partitionC(p plane) []Block8x8 {
	var blocks []Block8x8
	for r := 0; r < p.height; r += 8 {
		for c := 0; c < p.width; c += 8 {
			var block Block8x8
			for sr := 0; sr < 8; sr++ {
				for sc := 0; sc < 8; sc++ {
					rr, cc := clampRC(r+sr, c+sc, p.height, p.width)
					block[sr][sc] = float64(p.at(rr, cc))
				}
			}
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// partitionY partitions the luma plane in macroblock raster order: 16x16
// macroblocks row-major, each split into its four 8x8 tiles in top-left,
// top-right, bottom-left, bottom-right order.
func partitionY(p plane) []Block8x8 {
	var blocks []Block8x8
	for r := 0; r < p.height; r += 16 {
		for c := 0; c < p.width; c += 16 {
			for _, sub := range [4][2]int{{0, 0}, {0, 8}, {8, 0}, {8, 8}} {
				var block Block8x8
				for br := 0; br < 8; br++ {
					for bc := 0; bc < 8; bc++ {
						rr, cc := clampRC(r+sub[0]+br, c+sub[1]+bc, p.height, p.width)
						block[br][bc] = float64(p.at(rr, cc))
					}
				}
				blocks = append(blocks, block)
			}
		}
	}
	return blocks
}

// undoPartitionC reassembles a chroma plane from 8x8 blocks in row-major
// order, discarding coefficients that fall outside the plane (padding
// cells).
func undoPartitionC(blocks []Block8x8, height, width int) plane {
	p := newPlane(height, width)
	idx := 0
	for r := 0; r < height; r += 8 {
		for c := 0; c < width; c += 8 {
			block := blocks[idx]
			idx++
			for sr := 0; sr < 8; sr++ {
				for sc := 0; sc < 8; sc++ {
					if r+sr < height && c+sc < width {
						p.set(r+sr, c+sc, roundClampToByte(block[sr][sc]))
					}
				}
			}
		}
	}
	return p
}

// undoPartitionY reassembles the luma plane from 8x8 blocks in macroblock
// raster order, discarding padding-cell coefficients.
func undoPartitionY(blocks []Block8x8, height, width int) plane {
	p := newPlane(height, width)
	idx := 0
	for r := 0; r < height; r += 16 {
		for c := 0; c < width; c += 16 {
			for _, sub := range [4][2]int{{0, 0}, {0, 8}, {8, 0}, {8, 8}} {
				block := blocks[idx]
				idx++
				for br := 0; br < 8; br++ {
					for bc := 0; bc < 8; bc++ {
						rr, cc := r+sub[0]+br, c+sub[1]+bc
						if rr < height && cc < width {
							p.set(rr, cc, roundClampToByte(block[br][bc]))
						}
					}
				}
			}
		}
	}
	return p
}

// numMacroblocks returns the number of macroblocks M for a frame of the
// given luma height and width: M = ceil(W/2/8) * ceil(H/2/8), since chroma
// drives the count (spec.md §4.3).
func numMacroblocks(height, width int) int {
	wc := ceilDiv(width/2, 8)
	hc := ceilDiv(height/2, 8)
	return wc * hc
}

// macroblocksWide returns the number of macroblocks per row.
func macroblocksWide(width int) int {
	return ceilDiv(width/2, 8)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
