/*
DESCRIPTION
  reader.go provides a bit reader implementation that reads MSB-first bits
  from an io.Reader data source.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bits provides MSB-first bit-level reading and writing over
// byte-oriented io.Reader/io.Writer streams.
package bits

import (
	"bufio"
	"io"
)

// Reader is a bit reader that reads MSB-first bits from an io.Reader.
//
// Unlike a general-purpose bit reader, Reader only ever reads forward: the
// codec's bitstream grammar has no backtracking, so no Peek is needed.
type Reader struct {
	r    *bufio.Reader
	n    uint64 // Accumulator holding unconsumed bits in its low end.
	bits int    // Number of valid bits currently held in n.
}

// NewReader returns a new Reader wrapping r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadBits reads n (0 <= n <= 57) bits from the source and returns them in
// the least-significant part of the result. Returns io.ErrUnexpectedEOF if
// the stream ends before n bits are available.
func (r *Reader) ReadBits(n int) (uint64, error) {
	for n > r.bits {
		b, err := r.r.ReadByte()
		if err == io.EOF {
			return 0, io.ErrUnexpectedEOF
		}
		if err != nil {
			return 0, err
		}
		r.n <<= 8
		r.n |= uint64(b)
		r.bits += 8
	}
	res := (r.n >> uint(r.bits-n)) & ((1 << uint(n)) - 1)
	r.bits -= n
	return res, nil
}

// ReadBit reads a single bit from the source.
func (r *Reader) ReadBit() (int, error) {
	v, err := r.ReadBits(1)
	return int(v), err
}

// ReadUint16 reads a 16-bit big-endian unsigned integer.
func (r *Reader) ReadUint16() (uint16, error) {
	v, err := r.ReadBits(16)
	return uint16(v), err
}

// ReadSigned reads a 1-bit sign (1 = negative) followed by an n-bit
// magnitude, and returns the combined signed value. This is the "Vec5x5"
// and literal-delta encoding used throughout the bitstream grammar.
func (r *Reader) ReadSigned(n int) (int, error) {
	sign, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	mag, err := r.ReadBits(n)
	if err != nil {
		return 0, err
	}
	if sign == 1 {
		return -int(mag), nil
	}
	return int(mag), nil
}
