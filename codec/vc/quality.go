/*
DESCRIPTION
  quality.go defines the three-level quality knob and the per-path
  quantization multipliers it selects.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package vc implements a bit-exact, lossy YCbCr 4:2:0 video codec: 8x8
// block DCT, JPEG-style quantization, full-search motion compensation, and
// a fixed Huffman + run-length entropy code.
package vc

import "fmt"

// Quality is the coarse three-level knob that scales the luminance and
// chrominance quantization tables.
type Quality int

const (
	Low Quality = iota
	Medium
	High

	// nQuality is a sentinel used for validation; it is not a valid Quality.
	nQuality
)

// String implements fmt.Stringer.
func (q Quality) String() string {
	switch q {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	default:
		return fmt.Sprintf("Quality(%d)", int(q))
	}
}

// ParseQuality parses "low", "medium" or "high" (case-sensitive, matching
// the vcenc CLI argument) into a Quality.
func ParseQuality(s string) (Quality, error) {
	switch s {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return 0, fmt.Errorf("unknown quality: %q", s)
	}
}

// valid reports whether q is one of Low, Medium or High.
func (q Quality) valid() bool {
	return q == Low || q == Medium || q == High
}

// quantMultiplier returns the multiplier that scales the base luminance or
// chrominance quantization table for the given quality, path (I vs P) and
// channel (luminance vs chrominance). See spec.md §3's multiplier table.
func quantMultiplier(q Quality, luminance, pBlock bool) float64 {
	switch {
	case luminance && !pBlock:
		return [3]float64{4, 3, 1}[q]
	case luminance && pBlock:
		return [3]float64{6, 5, 2}[q]
	case !luminance && !pBlock:
		return [3]float64{6, 5, 2}[q]
	default: // chrominance, P-block.
		return [3]float64{10, 8, 3}[q]
	}
}
