package mvt

import "testing"

func TestZigzagRoundTrip(t *testing.T) {
	values := []int32{0, 1, -1, 2, -2, 127, -128, 1 << 20, -(1 << 20), 1<<31 - 1, -(1 << 31)}
	for _, v := range values {
		got := zigzagDecode(zigzagEncode(v))
		if got != v {
			t.Errorf("zigzag round trip failed for %d: got %d", v, got)
		}
	}
}

func TestZigzagEncodeKnownValues(t *testing.T) {
	cases := []struct {
		in   int32
		want uint32
	}{
		{0, 0},
		{-1, 1},
		{1, 2},
		{-2, 3},
		{2, 4},
	}
	for _, c := range cases {
		if got := zigzagEncode(c.in); got != c.want {
			t.Errorf("zigzagEncode(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestZigzagEncode64RoundTrip(t *testing.T) {
	values := []int64{0, 1, -1, 1 << 40, -(1 << 40)}
	for _, v := range values {
		got := zigzagDecode64(zigzagEncode64(v))
		if got != v {
			t.Errorf("zigzag64 round trip failed for %d: got %d", v, got)
		}
	}
}
