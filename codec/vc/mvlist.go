/*
DESCRIPTION
  mvlist.go implements the per-frame motion-vector list encoding from
  spec.md §4.5: a 16-bit count, the first vector as two signed 5-bit
  fields, and subsequent vectors as a signed-unary delta against the
  previous vector.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vc

import "github.com/ausocean/vidcodec/codec/vc/bits"

// mvMagnitudeBits is the 4-bit magnitude field width used for the first
// vector in a frame's list; a motion vector component whose magnitude
// doesn't fit is an encoder-side invariant violation (spec.md §7).
const mvMagnitudeBits = 4

func checkMVRange(mv MotionVector) {
	if mv.X > 15 || mv.X < -15 || mv.Y > 15 || mv.Y < -15 {
		motionVectorRangeExceeded(mv)
	}
}

// writeSignedUnary writes d using the signed unary delta code: 0 -> `0`;
// positive d -> `10` then (d-1) ones then a `0`; negative d -> `11` then
// (|d|-1) ones then a `0`.
func writeSignedUnary(w *bits.Writer, d int) error {
	if d == 0 {
		return w.WriteBit(0)
	}
	mag := d
	signBit := 0
	if d < 0 {
		signBit = 1
		mag = -d
	}
	if err := w.WriteBit(1); err != nil {
		return err
	}
	if err := w.WriteBit(signBit); err != nil {
		return err
	}
	return writeUnary(w, mag-1)
}

func readSignedUnary(r *bits.Reader) (int, error) {
	lead, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	if lead == 0 {
		return 0, nil
	}
	sign, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	ones, err := readUnary(r)
	if err != nil {
		return 0, err
	}
	mag := ones + 1
	if sign == 1 {
		return -mag, nil
	}
	return mag, nil
}

// writeMVList emits the count followed by the vector list per spec.md
// §4.5.
func writeMVList(w *bits.Writer, mvs []MotionVector) error {
	if err := w.WriteBits(uint64(len(mvs)), 16); err != nil {
		return err
	}
	if len(mvs) == 0 {
		return nil
	}

	checkMVRange(mvs[0])
	if err := w.WriteSigned(mvs[0].X, mvMagnitudeBits); err != nil {
		return err
	}
	if err := w.WriteSigned(mvs[0].Y, mvMagnitudeBits); err != nil {
		return err
	}

	prev := mvs[0]
	for _, mv := range mvs[1:] {
		checkMVRange(mv)
		if err := writeSignedUnary(w, mv.X-prev.X); err != nil {
			return err
		}
		if err := writeSignedUnary(w, mv.Y-prev.Y); err != nil {
			return err
		}
		prev = mv
	}
	return nil
}

// readMVList reads a motion-vector list of the given count.
func readMVList(r *bits.Reader) ([]MotionVector, error) {
	count, err := r.ReadBits(16)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	mvs := make([]MotionVector, count)
	x, err := r.ReadSigned(mvMagnitudeBits)
	if err != nil {
		return nil, err
	}
	y, err := r.ReadSigned(mvMagnitudeBits)
	if err != nil {
		return nil, err
	}
	mvs[0] = MotionVector{X: x, Y: y}

	for i := 1; i < len(mvs); i++ {
		dx, err := readSignedUnary(r)
		if err != nil {
			return nil, err
		}
		dy, err := readSignedUnary(r)
		if err != nil {
			return nil, err
		}
		mvs[i] = MotionVector{X: mvs[i-1].X + dx, Y: mvs[i-1].Y + dy}
	}
	return mvs, nil
}
