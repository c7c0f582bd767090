package vc

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/vidcodec/codec/vc/bits"
)

func TestHuffmanTablePrefixFree(t *testing.T) {
	type entry struct {
		sym huffSymbol
		c   huffCode
	}
	var all []entry
	for s, c := range huffTable {
		all = append(all, entry{s, c})
	}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			if a.c.len > b.c.len {
				continue
			}
			prefix := b.c.bits >> (b.c.len - a.c.len)
			if prefix == a.c.bits {
				t.Fatalf("code for symbol %v (%0*b) is a prefix of symbol %v's code (%0*b)",
					a.sym, a.c.len, a.c.bits, b.sym, b.c.len, b.c.bits)
			}
		}
	}
}

func TestDeltaRoundTrip(t *testing.T) {
	var q Array64
	for i := range q {
		q[i] = (i*37)%41 - 20
	}
	got := deltaToQuantized(quantizedToDelta(q))
	if diff := cmp.Diff(q, got); diff != "" {
		t.Fatalf("delta round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEntropyRoundTrip(t *testing.T) {
	cases := []Array64{
		{}, // all zero -> immediate EOB after the two literals.
	}

	// A case with a run of exactly 8 zeros, then a literal, then escapes.
	// delta[2..9] all zero via equal quantized values, delta[10] = 2,
	// delta[11] = -30 (escape), delta[12] = +29 (escape, back to q[12] = 0),
	// rest zero.
	q := Array64{}
	q[0], q[1] = 3, -1
	for i := 2; i <= 9; i++ {
		q[i] = q[i-1]
	}
	q[10] = q[9] + 2
	q[11] = q[10] - 30
	cases = append(cases, q)

	// A fully dense case with every position a literal in range.
	var dense Array64
	for i := range dense {
		dense[i] = (i % 11) - 5
	}
	var denseQ Array64
	denseQ[0] = dense[0]
	for i := 1; i < 64; i++ {
		denseQ[i] = denseQ[i-1] + dense[i]
	}
	cases = append(cases, denseQ)

	for ci, q := range cases {
		var buf bytes.Buffer
		w := bits.NewWriter(&buf)
		if err := encodeArray(w, q); err != nil {
			t.Fatalf("case %d: encode: %v", ci, err)
		}
		if err := w.FlushToByte(); err != nil {
			t.Fatalf("case %d: flush: %v", ci, err)
		}

		r := bits.NewReader(bytes.NewReader(buf.Bytes()))
		got, err := decodeArray(r)
		if err != nil {
			t.Fatalf("case %d: decode: %v", ci, err)
		}
		if diff := cmp.Diff(q, got); diff != "" {
			t.Fatalf("case %d: round trip mismatch (-want +got):\n%s", ci, diff)
		}
	}
}
