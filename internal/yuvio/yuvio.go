/*
DESCRIPTION
  yuvio.go provides raw YCbCr 4:2:0 frame I/O over an io.Reader/io.Writer,
  implementing vc.FrameSource and vc.FrameSink. Planes are concatenated per
  frame: Y (H*W bytes), Cb (ceil(H/2)*ceil(W/2) bytes), Cr (same size as
  Cb), one byte per sample, row-major.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package yuvio implements the raw YCbCr 4:2:0 frame source and sink that
// the codec core treats as an external collaborator.
package yuvio

import (
	"fmt"
	"io"
	"sync"

	"github.com/ausocean/utils/logging"
)

// Reader reads successive raw YCbCr 4:2:0 frames of a fixed size from an
// underlying io.Reader and exposes them as a vc.FrameSource, one at a
// time.
type Reader struct {
	mu            sync.Mutex
	r             io.Reader
	log           logging.Logger
	width, height int

	y, cb, cr []byte
}

// NewReader returns a Reader for frames of the given luma dimensions.
// width and height must be even.
func NewReader(r io.Reader, log logging.Logger, width, height int) *Reader {
	cw, ch := width/2, height/2
	return &Reader{
		r:      r,
		log:    log,
		width:  width,
		height: height,
		y:      make([]byte, width*height),
		cb:     make([]byte, cw*ch),
		cr:     make([]byte, cw*ch),
	}
}

// Next reads one frame's worth of planes from the underlying reader. It
// returns io.EOF if the stream ends cleanly between frames, and
// io.ErrUnexpectedEOF if it ends partway through a frame.
func (r *Reader) Next() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := io.ReadFull(r.r, r.y); err != nil {
		if err == io.EOF {
			return io.EOF
		}
		return io.ErrUnexpectedEOF
	}
	if _, err := io.ReadFull(r.r, r.cb); err != nil {
		return io.ErrUnexpectedEOF
	}
	if _, err := io.ReadFull(r.r, r.cr); err != nil {
		return io.ErrUnexpectedEOF
	}
	r.log.Debug("yuvio: read frame", "width", r.width, "height", r.height)
	return nil
}

func (r *Reader) Width() int  { return r.width }
func (r *Reader) Height() int { return r.height }

func (r *Reader) Y(x, y int) byte  { return r.y[y*r.width+x] }
func (r *Reader) Cb(x, y int) byte { return r.cb[y*(r.width/2)+x] }
func (r *Reader) Cr(x, y int) byte { return r.cr[y*(r.width/2)+x] }

// Writer writes successive raw YCbCr 4:2:0 frames to an underlying
// io.Writer, implementing vc.FrameSink.
type Writer struct {
	mu            sync.Mutex
	w             io.Writer
	log           logging.Logger
	width, height int

	y, cb, cr []byte
}

// NewWriter returns a Writer for frames of the given luma dimensions.
func NewWriter(w io.Writer, log logging.Logger, width, height int) *Writer {
	cw, ch := width/2, height/2
	return &Writer{
		w:      w,
		log:    log,
		width:  width,
		height: height,
		y:      make([]byte, width*height),
		cb:     make([]byte, cw*ch),
		cr:     make([]byte, cw*ch),
	}
}

func (w *Writer) Width() int  { return w.width }
func (w *Writer) Height() int { return w.height }

func (w *Writer) SetY(x, y int, v byte)  { w.y[y*w.width+x] = v }
func (w *Writer) SetCb(x, y int, v byte) { w.cb[y*(w.width/2)+x] = v }
func (w *Writer) SetCr(x, y int, v byte) { w.cr[y*(w.width/2)+x] = v }

// Flush writes the accumulated frame's planes to the underlying writer.
// Call this once per frame, after the decoder has finished writing into
// the Writer via the FrameSink accessors.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, plane := range [][]byte{w.y, w.cb, w.cr} {
		if _, err := w.w.Write(plane); err != nil {
			return fmt.Errorf("yuvio: write failed: %w", err)
		}
	}
	w.log.Debug("yuvio: wrote frame", "width", w.width, "height", w.height)
	return nil
}
