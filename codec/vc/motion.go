/*
DESCRIPTION
  motion.go implements the full-search integer motion estimator used to
  decide, per macroblock, whether a frame delta can be coded against the
  previous reconstructed frame (P path) or must fall back to independent
  coding (I path).

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

	"gonum.org/v1/gonum/stat"
)

// motionAcceptMAD is the maximum mean-absolute-difference a motion
// candidate may have and still be accepted for P-path coding.
const motionAcceptMAD = 50.0

// MotionVector is a macroblock displacement, in luma pixels, from the
// current macroblock's top-left corner to the matching region in the
// previous reconstructed frame.
type MotionVector struct {
	X, Y int
}

// estimateMotion performs a full search of every integer candidate
// top-left position (vx, vy) within 8 pixels of (bx, by) (clamped to the
// frame) and returns the displacement with the lowest mean-absolute
// difference between curMB and the previous reconstructed frame, along
// with whether that minimum is within the P-path acceptance threshold.
// curMB is the 16x16 luma macroblock assembled from its four 8x8 tiles at
// (bx, by), per spec.md §4.6 step 3.
//
// Ties are broken by scan order: x varies in the outer loop, y in the
// inner loop, and the first candidate to achieve the minimum wins.
func estimateMotion(curMB Block16x16, prev *Frame, bx, by int) (MotionVector, bool) {
	width, height := prev.Width(), prev.Height()

	xLo, xHi := max(0, bx-8), min(width, bx+8)
	yLo, yHi := max(0, by-8), min(height, by+8)

	best := MotionVector{X: 0, Y: 0}
	bestMAD := math.MaxFloat64

	for vx := xLo; vx < xHi; vx++ {
		for vy := yLo; vy < yHi; vy++ {
			mad := macroblockMAD(curMB, prev, vx, vy)
			if mad < bestMAD {
				bestMAD = mad
				best = MotionVector{X: vx - bx, Y: vy - by}
			}
		}
	}
	return best, bestMAD <= motionAcceptMAD
}

// macroblockMAD computes the mean-absolute-difference, over the 16x16 luma
// region, between curMB and the candidate region at (vx,vy) in the
// previous frame. The sample is truncated to pixels that are in-bounds in
// the previous frame, but the result is always divided by the fixed
// 256-pixel area, preserving the documented bias towards low-confidence
// matches near frame edges.
func macroblockMAD(curMB Block16x16, prev *Frame, vx, vy int) float64 {
	width, height := prev.Width(), prev.Height()

	var sample []float64
	for r := 0; r < 16; r++ {
		py := vy + r
		if py >= height {
			continue
		}
		for c := 0; c < 16; c++ {
			px := vx + c
			if px >= width {
				continue
			}
			d := curMB[r][c] - float64(prev.Y(px, py))
			if d < 0 {
				d = -d
			}
			sample = append(sample, d)
		}
	}
	if len(sample) == 0 {
		return 0
	}
	sum := stat.Mean(sample, nil) * float64(len(sample))
	return sum / 256
}
