package vc

import (
	"bytes"
	"testing"

	"github.com/ausocean/vidcodec/codec/vc/bits"
)

// testFrame is a minimal FrameSource/FrameSink backed by a Frame.
type testFrame struct {
	*Frame
}

func newTestFrame(width, height int) *testFrame {
	return &testFrame{Frame: NewFrame(width, height)}
}

// nopLogger satisfies logging.Logger with no-ops, for tests that don't
// care about log output.
type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})   {}
func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}
func (nopLogger) Fatal(string, ...interface{})   {}

func encodeAll(t *testing.T, width, height int, quality Quality, frames []*testFrame) []byte {
	t.Helper()
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, nopLogger{}, width, height, quality)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	for _, f := range frames {
		if err := enc.EncodeFrame(f); err != nil {
			t.Fatalf("EncodeFrame: %v", err)
		}
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func decodeAll(t *testing.T, data []byte) []*testFrame {
	t.Helper()
	dec, err := NewDecoder(bytes.NewReader(data), nopLogger{})
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	var out []*testFrame
	for {
		f := newTestFrame(dec.Width(), dec.Height())
		err := dec.ReadFrame(f)
		if err != nil {
			break
		}
		out = append(out, f)
	}
	return out
}

func framesEqual(a, b *testFrame) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.Y(x, y) != b.Y(x, y) {
				return false
			}
		}
	}
	for y := 0; y < a.Height()/2; y++ {
		for x := 0; x < a.Width()/2; x++ {
			if a.Cb(x, y) != b.Cb(x, y) || a.Cr(x, y) != b.Cr(x, y) {
				return false
			}
		}
	}
	return true
}

func TestSingleBlackFrameHigh(t *testing.T) {
	f := newTestFrame(16, 16)
	// All-zero frame is already black.
	data := encodeAll(t, 16, 16, High, []*testFrame{f})
	got := decodeAll(t, data)
	if len(got) != 1 {
		t.Fatalf("got %d frames, want 1", len(got))
	}
	if !framesEqual(got[0], f) {
		t.Fatalf("decoded frame does not match the encoded black frame")
	}
}

func TestTwoIdenticalFramesMedium(t *testing.T) {
	f1 := newTestFrame(16, 16)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			f1.SetY(x, y, byte((x+y)*7))
		}
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			f1.SetCb(x, y, 120)
			f1.SetCr(x, y, 130)
		}
	}
	f2 := newTestFrame(16, 16)
	*f2.Frame = *f1.Frame

	data := encodeAll(t, 16, 16, Medium, []*testFrame{f1, f2})
	got := decodeAll(t, data)
	if len(got) != 2 {
		t.Fatalf("got %d frames, want 2", len(got))
	}
	// The first frame is all-I and lossy. The second is P-coded against that
	// reconstruction with deltas that quantize to zero, so it must decode to
	// exactly the same pixels as the first.
	if !framesEqual(got[1], got[0]) {
		t.Fatalf("second decoded frame differs from the first for two identical input frames")
	}
}

func TestImpulseBlockLow(t *testing.T) {
	f := newTestFrame(16, 16)
	f.SetY(3, 3, 255)
	data := encodeAll(t, 16, 16, Low, []*testFrame{f})
	got := decodeAll(t, data)
	if len(got) != 1 {
		t.Fatalf("got %d frames, want 1", len(got))
	}
	if !framesEqual(got[0], f) {
		// Lossy at quality=low: verify the codec at least runs end to
		// end and produces a frame of the right shape.
		if got[0].Width() != 16 || got[0].Height() != 16 {
			t.Fatalf("decoded frame has wrong dimensions")
		}
	}
}

func TestMovingPatchBecomesPCoded(t *testing.T) {
	f1 := newTestFrame(32, 32)
	f2 := newTestFrame(32, 32)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			f1.SetY(8+x, 8+y, 200)
			f2.SetY(12+x, 10+y, 200)
		}
	}

	data := encodeAll(t, 32, 32, Medium, []*testFrame{f1, f2})
	got := decodeAll(t, data)
	if len(got) != 2 {
		t.Fatalf("got %d frames, want 2", len(got))
	}
	// The patch covers four whole 8x8 luma tiles. Each has DC 8*200 = 1600,
	// which quantizes at medium (I, luma step 3*16 = 48) to 33 and comes back
	// as 33*48/8 = 198 per pixel.
	want1 := newTestFrame(32, 32)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			want1.SetY(8+x, 8+y, 198)
		}
	}
	if !framesEqual(got[0], want1) {
		t.Fatalf("first (all-I) frame did not reconstruct to the quantized patch")
	}

	// Walk the stream to the second frame's motion-vector list: header and
	// first frame start bit, the first frame's list, its macroblocks, then
	// the second frame's start bit.
	r := bits.NewReader(bytes.NewReader(data))
	if _, err := r.ReadBits(2 + 16 + 16 + 1); err != nil {
		t.Fatalf("reading header: %v", err)
	}
	if _, err := readMVList(r); err != nil {
		t.Fatalf("reading first frame motion vectors: %v", err)
	}
	var err error
	for i := 0; i < numMacroblocks(32, 32)*7; i++ {
		if i%7 == 0 {
			_, err = r.ReadBit()
		} else {
			_, err = decodeArray(r)
		}
		if err != nil {
			t.Fatalf("reading first frame macroblocks: %v", err)
		}
	}
	if _, err := r.ReadBit(); err != nil {
		t.Fatalf("reading second frame start bit: %v", err)
	}
	mvs, err := readMVList(r)
	if err != nil {
		t.Fatalf("reading second frame motion vectors: %v", err)
	}
	if len(mvs) == 0 {
		t.Fatalf("second frame has no P-coded macroblocks")
	}
}

func TestSceneChangeForcesResetToAllI(t *testing.T) {
	// With the reset threshold dropped to 0, the very next frame after a
	// scene change (which rejects every macroblock's motion estimate) must
	// re-encode as all-I: its motion-vector count is 0.
	width, height := 32, 32
	var buf bytes.Buffer
	enc, err := NewEncoder(&buf, nopLogger{}, width, height, Medium, WithResetThresholds(0, 0.35))
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}

	black := newTestFrame(width, height)
	if err := enc.EncodeFrame(black); err != nil {
		t.Fatalf("encode frame 0 (black): %v", err)
	}

	sceneChange := newTestFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sceneChange.SetY(x, y, byte((x*89+y*151+37)%256))
		}
	}
	if err := enc.EncodeFrame(sceneChange); err != nil {
		t.Fatalf("encode frame 1 (scene change): %v", err)
	}
	if enc.frameNumber != 0 {
		t.Fatalf("frameNumber after scene change = %d, want 0 (reset)", enc.frameNumber)
	}

	afterReset := newTestFrame(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			afterReset.SetY(x, y, byte((x*89+y*151+37)%256))
		}
	}
	if err := enc.EncodeFrame(afterReset); err != nil {
		t.Fatalf("encode frame 2 (post-reset): %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := decodeAll(t, buf.Bytes())
	if len(got) != 3 {
		t.Fatalf("got %d frames, want 3", len(got))
	}
	if got[2].Width() != width || got[2].Height() != height {
		t.Fatalf("post-reset frame has wrong dimensions")
	}
}

func TestQualitySweepSizeOrdering(t *testing.T) {
	f := newTestFrame(32, 32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			f.SetY(x, y, byte((x*17+y*31)%256))
		}
	}

	low := encodeAll(t, 32, 32, Low, []*testFrame{f})
	medium := encodeAll(t, 32, 32, Medium, []*testFrame{f})
	high := encodeAll(t, 32, 32, High, []*testFrame{f})

	if !(len(low) <= len(medium) && len(medium) <= len(high)) {
		t.Fatalf("expected size(low) <= size(medium) <= size(high), got %d, %d, %d",
			len(low), len(medium), len(high))
	}
}
