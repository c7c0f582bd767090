/*
DESCRIPTION
  huffman.go implements the fixed-alphabet entropy code applied to a
  quantized coefficient array: delta conversion against the previous
  coefficient, a small fixed Huffman table for literals −5..5, escape
  codes for larger magnitudes, a zero-run code, and an end-of-block code.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package vc

import (
	"github.com/ausocean/vidcodec/codec/vc/bits"
	"github.com/pkg/errors"
)

// huffSymbol identifies one entry of the fixed entropy alphabet.
type huffSymbol int

const (
	symNegEsc huffSymbol = iota
	symNeg5
	symNeg4
	symNeg3
	symNeg2
	symNeg1
	symZero
	symPos1
	symPos2
	symPos3
	symPos4
	symPos5
	symPosEsc
	symZ8
	symEOB
)

type huffCode struct {
	bits uint64
	len  int
}

// huffTable is the fixed code table from spec.md §4.5, indexed by
// huffSymbol.
var huffTable = map[huffSymbol]huffCode{
	symNeg5:   {0b111110101, 9},
	symNeg4:   {0b11111000, 8},
	symNeg3:   {0b1111010, 7},
	symNeg2:   {0b11100, 5},
	symNeg1:   {0b01, 2},
	symZero:   {0b00, 2},
	symPos1:   {0b110, 3},
	symPos2:   {0b111100, 6},
	symPos3:   {0b1111011, 7},
	symPos4:   {0b11111001, 8},
	symPos5:   {0b111110110, 9},
	symNegEsc: {0b111110100, 9},
	symPosEsc: {0b111110111, 9},
	symZ8:     {0b11101, 5},
	symEOB:    {0b10, 2},
}

// literalSymbol maps a nonzero delta in [-5,5] to its literal symbol.
var literalSymbol = map[int]huffSymbol{
	-5: symNeg5, -4: symNeg4, -3: symNeg3, -2: symNeg2, -1: symNeg1,
	1: symPos1, 2: symPos2, 3: symPos3, 4: symPos4, 5: symPos5,
}

// maxHuffmanBits is the length of the longest fixed code in the table.
const maxHuffmanBits = 9

// decodeLookahead is the accumulator depth the decoder is permitted before
// giving up (one bit beyond the longest code, per spec.md §7).
const decodeLookahead = maxHuffmanBits + 1

// revHuffTable maps (code, len) to symbol for decoding.
type codeKey struct {
	bits uint64
	len  int
}

var revHuffTable = buildRevTable()

func buildRevTable() map[codeKey]huffSymbol {
	m := make(map[codeKey]huffSymbol, len(huffTable))
	for sym, c := range huffTable {
		m[codeKey{c.bits, c.len}] = sym
	}
	return m
}

// quantizedToDelta converts a quantized coefficient array to the delta
// array used for entropy coding: delta[0]=q[0], delta[1]=q[1],
// delta[i>=2] = q[i] - q[i-1].
func quantizedToDelta(q Array64) Array64 {
	var d Array64
	d[0] = q[0]
	d[1] = q[1]
	for i := 2; i < 64; i++ {
		d[i] = q[i] - q[i-1]
	}
	return d
}

// deltaToQuantized inverts quantizedToDelta.
func deltaToQuantized(d Array64) Array64 {
	var q Array64
	q[0] = d[0]
	q[1] = d[1]
	for i := 2; i < 64; i++ {
		q[i] = q[i-1] + d[i]
	}
	return q
}

// literalDeltaBits is the magnitude width used for the two literal deltas
// at the head of each coefficient array (spec.md §4.5).
const literalDeltaBits = 16

func writeUnary(w *bits.Writer, n int) error {
	for i := 0; i < n; i++ {
		if err := w.WriteBit(1); err != nil {
			return err
		}
	}
	return w.WriteBit(0)
}

func readUnary(r *bits.Reader) (int, error) {
	n := 0
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b == 0 {
			return n, nil
		}
		n++
	}
}

func writeHuffSymbol(w *bits.Writer, sym huffSymbol) error {
	c := huffTable[sym]
	return w.WriteBits(c.bits, c.len)
}

// encodeArray writes the entropy-coded form of a quantized coefficient
// array: the first two deltas as signed literals, then the Huffman-coded
// remainder.
func encodeArray(w *bits.Writer, q Array64) error {
	delta := quantizedToDelta(q)
	if err := w.WriteSigned(delta[0], literalDeltaBits); err != nil {
		return err
	}
	if err := w.WriteSigned(delta[1], literalDeltaBits); err != nil {
		return err
	}

	i := 2
	for i < 64 {
		v := delta[i]
		switch {
		case v >= -5 && v <= 5 && v != 0:
			if err := writeHuffSymbol(w, literalSymbol[v]); err != nil {
				return err
			}
			i++
		case v < -5:
			if err := writeHuffSymbol(w, symNegEsc); err != nil {
				return err
			}
			if err := writeUnary(w, -v); err != nil {
				return err
			}
			i++
		case v > 5:
			if err := writeHuffSymbol(w, symPosEsc); err != nil {
				return err
			}
			if err := writeUnary(w, v); err != nil {
				return err
			}
			i++
		default: // v == 0: count the run.
			run := 0
			for i+run < 64 && delta[i+run] == 0 {
				run++
			}
			if i+run == 64 {
				return writeHuffSymbol(w, symEOB)
			}
			for n := 0; n < run/8; n++ {
				if err := writeHuffSymbol(w, symZ8); err != nil {
					return err
				}
			}
			for n := 0; n < run%8; n++ {
				if err := writeHuffSymbol(w, symZero); err != nil {
					return err
				}
			}
			i += run
		}
	}
	return nil
}

// decodeArray reads one entropy-coded coefficient array and returns the
// reconstructed quantized array.
func decodeArray(r *bits.Reader) (Array64, error) {
	var delta Array64
	d0, err := r.ReadSigned(literalDeltaBits)
	if err != nil {
		return Array64{}, err
	}
	d1, err := r.ReadSigned(literalDeltaBits)
	if err != nil {
		return Array64{}, err
	}
	delta[0], delta[1] = d0, d1

	i := 2
	for i < 64 {
		sym, err := readHuffSymbol(r)
		if err != nil {
			return Array64{}, err
		}
		switch sym {
		case symEOB:
			for ; i < 64; i++ {
				delta[i] = 0
			}
		case symZ8:
			for n := 0; n < 8 && i < 64; n++ {
				delta[i] = 0
				i++
			}
		case symZero:
			delta[i] = 0
			i++
		case symNegEsc:
			n, err := readUnary(r)
			if err != nil {
				return Array64{}, err
			}
			delta[i] = -n
			i++
		case symPosEsc:
			n, err := readUnary(r)
			if err != nil {
				return Array64{}, err
			}
			delta[i] = n
			i++
		default:
			v, ok := literalValue(sym)
			if !ok {
				return Array64{}, errors.WithStack(ErrUndecodableSymbol)
			}
			delta[i] = v
			i++
		}
	}
	return deltaToQuantized(delta), nil
}

func literalValue(sym huffSymbol) (int, bool) {
	for v, s := range literalSymbol {
		if s == sym {
			return v, true
		}
	}
	return 0, false
}

// readHuffSymbol shifts bits into an accumulator MSB-first, looking up the
// reverse table after each bit, and fails once decodeLookahead bits have
// been consumed with no match.
func readHuffSymbol(r *bits.Reader) (huffSymbol, error) {
	var acc uint64
	for length := 1; length <= decodeLookahead; length++ {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		acc = acc<<1 | uint64(b)
		if sym, ok := revHuffTable[codeKey{acc, length}]; ok {
			return sym, nil
		}
	}
	return 0, errors.Wrapf(ErrUndecodableSymbol, "after %d bits", decodeLookahead)
}
