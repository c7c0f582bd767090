package vc

import (
	"bytes"
	"testing"

	"github.com/ausocean/vidcodec/codec/vc/bits"
)

func TestMVListRoundTrip(t *testing.T) {
	cases := [][]MotionVector{
		nil,
		{{3, -4}},
		{{3, -4}, {3, -4}, {5, 0}, {-8, 8}},
	}
	for ci, mvs := range cases {
		var buf bytes.Buffer
		w := bits.NewWriter(&buf)
		if err := writeMVList(w, mvs); err != nil {
			t.Fatalf("case %d: write: %v", ci, err)
		}
		if err := w.FlushToByte(); err != nil {
			t.Fatalf("case %d: flush: %v", ci, err)
		}

		r := bits.NewReader(bytes.NewReader(buf.Bytes()))
		got, err := readMVList(r)
		if err != nil {
			t.Fatalf("case %d: read: %v", ci, err)
		}
		if len(got) != len(mvs) {
			t.Fatalf("case %d: got %d vectors, want %d", ci, len(got), len(mvs))
		}
		for i := range mvs {
			if got[i] != mvs[i] {
				t.Fatalf("case %d: vector %d = %v, want %v", ci, i, got[i], mvs[i])
			}
		}
	}
}
