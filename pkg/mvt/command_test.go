package mvt

import "testing"

func TestCommandIntegerRoundTrip(t *testing.T) {
	cases := []struct {
		cmd   Command
		count int
	}{
		{cmdMoveTo, 1},
		{cmdLineTo, 3},
		{cmdClosePath, 1},
		{cmdLineTo, maxCommandRepeat},
	}
	for _, c := range cases {
		header := commandInteger(c.cmd, c.count)
		gotCmd, gotCount := splitCommandInteger(header)
		if gotCmd != c.cmd || gotCount != c.count {
			t.Errorf("commandInteger(%v, %d) round trip = (%v, %d)", c.cmd, c.count, gotCmd, gotCount)
		}
	}
}

func TestCommandIntegerKnownValues(t *testing.T) {
	// MOVE_TO with count 1 packs to (1 & 0x7) | (1 << 3) = 9.
	if got := commandInteger(cmdMoveTo, 1); got != 9 {
		t.Errorf("commandInteger(MoveTo, 1) = %d, want 9", got)
	}
	// CLOSE_PATH with count 1 packs to 7 | (1 << 3) = 15.
	if got := commandInteger(cmdClosePath, 1); got != 15 {
		t.Errorf("commandInteger(ClosePath, 1) = %d, want 15", got)
	}
}
