/*
DESCRIPTION
  decoder.go implements the decoder dual of the frame-coordinator state
  machine: reads the header, then per frame the motion-vector list and
  macroblock payloads, reconstructing each frame using the previous
  reconstructed frame for P-path macroblocks.

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

// Decoder implements the decoder dual of the frame-coordinator state
// machine. Construct with NewDecoder, which reads the stream header.
type Decoder struct {
	r   *bits.Reader
	log logging.Logger

	width, height int
	quality       Quality

	previousFrame *Frame
}

// NewDecoder reads the stream header from src and returns a Decoder ready
// to read frames.
func NewDecoder(src io.Reader, log logging.Logger) (*Decoder, error) {
	r := bits.NewReader(src)

	qbits, err := r.ReadBits(2)
	if err != nil {
		return nil, wrapRead(err, "vc: reading quality header field")
	}
	if qbits == 0b11 {
		return nil, errors.Wrap(ErrInvalidHeader, "vc: reserved quality value 11")
	}
	height, err := r.ReadUint16()
	if err != nil {
		return nil, wrapRead(err, "vc: reading height header field")
	}
	width, err := r.ReadUint16()
	if err != nil {
		return nil, wrapRead(err, "vc: reading width header field")
	}

	d := &Decoder{
		r:             r,
		log:           log,
		width:         int(width),
		height:        int(height),
		quality:       Quality(qbits),
		previousFrame: NewFrame(int(width), int(height)),
	}
	return d, nil
}

// Width returns the luma width read from the header.
func (d *Decoder) Width() int { return d.width }

// Height returns the luma height read from the header.
func (d *Decoder) Height() int { return d.height }

// Quality returns the quality level read from the header.
func (d *Decoder) Quality() Quality { return d.quality }

// ReadFrame reads and reconstructs one frame into dst. It returns io.EOF
// once the stream's end flag is reached.
func (d *Decoder) ReadFrame(dst FrameSink) error {
	startBit, err := d.r.ReadBit()
	if err != nil {
		return wrapRead(err, "vc: reading frame-start bit")
	}
	if startBit == 0 {
		return io.EOF
	}

	mvs, err := readMVList(d.r)
	if err != nil {
		return wrapRead(err, "vc: reading motion-vector list")
	}

	mbsWide := macroblocksWide(d.width)
	m := numMacroblocks(d.height, d.width)
	d.log.Debug("vc: decoding frame", "macroblocks", m, "motionVectors", len(mvs))

	yBlocks := make([]Block8x8, 4*m)
	cbBlocks := make([]Block8x8, m)
	crBlocks := make([]Block8x8, m)

	mvIdx := 0
	for i := 0; i < m; i++ {
		tag, err := d.r.ReadBit()
		if err != nil {
			return wrapRead(err, "vc: reading macroblock tag")
		}

		var arr [6]Array64
		for k := 0; k < 6; k++ {
			a, err := decodeArray(d.r)
			if err != nil {
				return wrapRead(err, "vc: reading coefficient array")
			}
			arr[k] = a
		}

		var recon [6]Block8x8
		if tag == 0 {
			for k := 0; k < 6; k++ {
				recon[k] = inverseDCT(unquantizeBlock(arrayToBlock(arr[k]), d.quality, k < 4, false))
			}
		} else {
			if mvIdx >= len(mvs) {
				return errors.New("vc: more P-tagged macroblocks than motion vectors")
			}
			mv := mvs[mvIdx]
			mvIdx++
			ref := d.previousFrame.refBlocks(i, mv.X, mv.Y, mbsWide)
			for k := 0; k < 6; k++ {
				invDelta := inverseDCT(unquantizeBlock(arrayToBlock(arr[k]), d.quality, k < 4, true))
				recon[k] = addDeltaBlock(ref[k], invDelta)
			}
		}

		yBlocks[4*i], yBlocks[4*i+1], yBlocks[4*i+2], yBlocks[4*i+3] = recon[0], recon[1], recon[2], recon[3]
		cbBlocks[i], crBlocks[i] = recon[4], recon[5]
	}

	frame := NewFrame(d.width, d.height)
	frame.y = undoPartitionY(yBlocks, d.height, d.width)
	frame.cb = undoPartitionC(cbBlocks, d.height/2, d.width/2)
	frame.cr = undoPartitionC(crBlocks, d.height/2, d.width/2)

	frame.writeTo(dst)
	d.previousFrame = frame
	return nil
}
