/*
DESCRIPTION
  encoder.go implements the frame-coordinator state machine: the encoder
  side of the codec. It drives partitioning, motion estimation, transform
  and quantization, entropy coding, and the drift-free reconstruction of
  the reference frame used for motion compensation.

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

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"

	"github.com/ausocean/vidcodec/codec/vc/bits"
)

// defaultFrameNumberResetThreshold and defaultBadMVFractionThreshold are
// the frame-number reset rule's constants from spec.md §4.6: once the
// frame number has climbed past the threshold, a frame in which at least
// this fraction of macroblocks failed motion estimation forces the next
// frame back to an all-I frame. Override with WithResetThresholds.
const (
	defaultFrameNumberResetThreshold = 175
	defaultBadMVFractionThreshold    = 0.35
)

// Option configures an Encoder at construction time.
type Option func(*Encoder) error

// WithResetThresholds overrides the frame-number reset rule's two
// constants from spec.md §4.6 (normally 175 and 0.35): a frame number past
// resetAfter, combined with a fraction of rejected macroblocks at or above
// badFraction, forces the next frame back to all-I. This exists so tests
// can exercise the reset rule without encoding 175+ frames.
func WithResetThresholds(resetAfter int, badFraction float64) Option {
	return func(e *Encoder) error {
		if resetAfter < 0 {
			return errors.Errorf("vc: resetAfter must be non-negative, got %d", resetAfter)
		}
		if badFraction < 0 || badFraction > 1 {
			return errors.Errorf("vc: badFraction must be in [0,1], got %v", badFraction)
		}
		e.frameNumberResetThreshold = resetAfter
		e.badMVFractionThreshold = badFraction
		return nil
	}
}

// Encoder implements the frame-coordinator encoder state machine. The
// zero value is not usable; construct with NewEncoder.
type Encoder struct {
	w   *bits.Writer
	log logging.Logger

	width, height int
	quality       Quality

	previousFrame *Frame
	frameNumber   int

	frameNumberResetThreshold int
	badMVFractionThreshold    float64

	headerWritten bool
	closed        bool
}

// NewEncoder returns an Encoder that writes a compressed bitstream to dst
// for frames of the given luma dimensions and quality.
func NewEncoder(dst io.Writer, log logging.Logger, width, height int, quality Quality, options ...Option) (*Encoder, error) {
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return nil, errors.Errorf("vc: invalid frame dimensions %dx%d", width, height)
	}
	if !quality.valid() {
		return nil, errors.Errorf("vc: invalid quality %v", quality)
	}

	e := &Encoder{
		w:                         bits.NewWriter(dst),
		log:                       log,
		width:                     width,
		height:                    height,
		quality:                   quality,
		previousFrame:             NewFrame(width, height),
		frameNumberResetThreshold: defaultFrameNumberResetThreshold,
		badMVFractionThreshold:    defaultBadMVFractionThreshold,
	}
	for _, option := range options {
		if err := option(e); err != nil {
			return nil, errors.Wrap(err, "vc: option failed")
		}
	}
	return e, nil
}

func (e *Encoder) writeHeader() error {
	if err := e.w.WriteBits(uint64(e.quality), 2); err != nil {
		return err
	}
	if err := e.w.WriteUint16(uint16(e.height)); err != nil {
		return err
	}
	return e.w.WriteUint16(uint16(e.width))
}

// EncodeFrame reads one frame from src, encodes it, and updates the
// reference frame used for subsequent motion compensation.
func (e *Encoder) EncodeFrame(src FrameSource) error {
	if e.closed {
		return errors.New("vc: EncodeFrame called after Close")
	}
	if !e.headerWritten {
		if err := e.writeHeader(); err != nil {
			return errors.Wrap(err, "vc: writing header")
		}
		e.headerWritten = true
	}
	if src.Width() != e.width || src.Height() != e.height {
		return errors.Errorf("vc: frame is %dx%d, encoder configured for %dx%d",
			src.Width(), src.Height(), e.width, e.height)
	}

	if err := e.w.WriteBit(1); err != nil {
		return errors.Wrap(err, "vc: writing frame-start bit")
	}
	e.log.Debug("vc: encoding frame", "frameNumber", e.frameNumber)

	cur := fromSource(src)
	yBlocks := partitionY(cur.y)
	cbBlocks := partitionC(cur.cb)
	crBlocks := partitionC(cur.cr)

	mbsWide := macroblocksWide(e.width)
	m := numMacroblocks(e.height, e.width)

	type coded struct {
		isP bool
		mv  MotionVector
		arr [6]Array64
	}
	blocks := make([]coded, m)

	var mvs []MotionVector
	badCount := 0

	for i := 0; i < m; i++ {
		bx, by := (i%mbsWide)*16, (i/mbsWide)*16
		mb := createMacroblock(yBlocks[4*i], yBlocks[4*i+1], yBlocks[4*i+2], yBlocks[4*i+3])
		mv, good := estimateMotion(mb, e.previousFrame, bx, by)
		if !good {
			badCount++
		}

		isP := e.frameNumber != 0 && good
		var six [6]Block8x8
		six[0], six[1], six[2], six[3] = yBlocks[4*i], yBlocks[4*i+1], yBlocks[4*i+2], yBlocks[4*i+3]
		six[4], six[5] = cbBlocks[i], crBlocks[i]

		var recon [6]Block8x8
		var arr [6]Array64
		if isP {
			ref := e.previousFrame.refBlocks(i, mv.X, mv.Y, mbsWide)
			for k := 0; k < 6; k++ {
				delta := deltaBlock(six[k], ref[k])
				q := quantizeBlock(forwardDCT(delta), e.quality, k < 4, true)
				arr[k] = blockToArray(q)
				invDelta := inverseDCT(unquantizeBlock(q, e.quality, k < 4, true))
				recon[k] = addDeltaBlock(ref[k], invDelta)
			}
			mvs = append(mvs, mv)
		} else {
			for k := 0; k < 6; k++ {
				q := quantizeBlock(forwardDCT(six[k]), e.quality, k < 4, false)
				arr[k] = blockToArray(q)
				recon[k] = inverseDCT(unquantizeBlock(q, e.quality, k < 4, false))
			}
		}

		blocks[i] = coded{isP: isP, mv: mv, arr: arr}
		yBlocks[4*i], yBlocks[4*i+1], yBlocks[4*i+2], yBlocks[4*i+3] = recon[0], recon[1], recon[2], recon[3]
		cbBlocks[i], crBlocks[i] = recon[4], recon[5]
	}

	e.log.Debug("vc: classified macroblocks", "total", m, "pCoded", len(mvs), "rejectedMotion", badCount)

	if err := writeMVList(e.w, mvs); err != nil {
		return errors.Wrap(err, "vc: writing motion-vector list")
	}

	for i := 0; i < m; i++ {
		tag := 0
		if blocks[i].isP {
			tag = 1
		}
		if err := e.w.WriteBit(tag); err != nil {
			return errors.Wrap(err, "vc: writing macroblock tag")
		}
		for k := 0; k < 6; k++ {
			if err := encodeArray(e.w, blocks[i].arr[k]); err != nil {
				return errors.Wrap(err, "vc: writing coefficient array")
			}
		}
	}

	next := NewFrame(e.width, e.height)
	next.y = undoPartitionY(yBlocks, e.height, e.width)
	next.cb = undoPartitionC(cbBlocks, e.height/2, e.width/2)
	next.cr = undoPartitionC(crBlocks, e.height/2, e.width/2)
	e.previousFrame = next

	badFraction := float64(badCount) / float64(m)
	if e.frameNumber > e.frameNumberResetThreshold && badFraction >= e.badMVFractionThreshold {
		e.log.Debug("vc: frame number reset", "frame", e.frameNumber, "badFraction", badFraction)
		e.frameNumber = 0
	} else {
		e.frameNumber++
	}

	return nil
}

// Close emits the end-of-stream flag and flushes any partial final byte.
// It is idempotent.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if !e.headerWritten {
		if err := e.writeHeader(); err != nil {
			return errors.Wrap(err, "vc: writing header")
		}
		e.headerWritten = true
	}
	if err := e.w.WriteBit(0); err != nil {
		return errors.Wrap(err, "vc: writing end flag")
	}
	return e.w.FlushToByte()
}
