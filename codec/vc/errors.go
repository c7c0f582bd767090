/*
DESCRIPTION
  errors.go declares the sentinel errors surfaced by the codec core. All
  are wrapped with context via github.com/pkg/errors before being returned
  to the caller; there is no local recovery at this layer (spec.md §7).

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vc

import (
	"io"

	"github.com/pkg/errors"
)

var (
	// ErrTruncatedStream is returned when the bit source reports EOF in
	// the middle of a frame.
	ErrTruncatedStream = errors.New("vc: truncated stream")

	// ErrInvalidHeader is returned when the header's quality bits are the
	// reserved value 11.
	ErrInvalidHeader = errors.New("vc: invalid header")

	// ErrUndecodableSymbol is returned when no Huffman code matches within
	// the decoder's bit lookahead.
	ErrUndecodableSymbol = errors.New("vc: undecodable huffman symbol")
)

// wrapRead annotates a read error with ctx, substituting the
// ErrTruncatedStream sentinel for the bit reader's unexpected-EOF signal
// so callers can distinguish a malformed mid-frame truncation from other
// failures.
func wrapRead(err error, ctx string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrap(ErrTruncatedStream, ctx)
	}
	return errors.Wrap(err, ctx)
}

// motionVectorRangeExceeded panics; an out-of-range motion vector
// indicates the motion estimator searched outside the documented ±8
// window, which is an internal invariant violation rather than a
// reportable stream error (spec.md §7).
func motionVectorRangeExceeded(mv MotionVector) {
	panic(errors.Errorf("vc: motion vector %+v exceeds the 4-bit magnitude range", mv))
}
