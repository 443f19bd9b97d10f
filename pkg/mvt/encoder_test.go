package mvt

import (
	"reflect"
	"testing"

	"github.com/paulmach/orb"
)

// unitEncoder returns an Encoder with a 1:1 extent/size ratio so that test
// expectations can be computed directly from input coordinates, without
// folding a scale factor into every hand-traced value.
func unitEncoder() *Encoder {
	return NewEncoderWithExtent(1, 1)
}

func TestEncodePointKnownExample(t *testing.T) {
	e := unitEncoder()
	geom, err := e.Encode(orb.Point{25, 17})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint32{9, 50, 34}
	if !reflect.DeepEqual([]uint32(geom.Commands), want) {
		t.Errorf("got %v, want %v", geom.Commands, want)
	}
}

func TestEncodeLineStringKnownExample(t *testing.T) {
	e := unitEncoder()
	ls := orb.LineString{{2, 2}, {2, 10}, {10, 10}}
	geom, err := e.Encode(ls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []uint32{9, 4, 4, 18, 0, 16, 16, 0}
	if !reflect.DeepEqual([]uint32(geom.Commands), want) {
		t.Errorf("got %v, want %v", geom.Commands, want)
	}
}

func TestEncodePolygonKnownExample(t *testing.T) {
	e := unitEncoder()
	ring := orb.Ring{{3, 6}, {8, 12}, {20, 34}, {3, 6}}
	geom, err := e.Encode(orb.Polygon{ring})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if geom.GeomType != GeomPolygon {
		t.Fatalf("expected GeomPolygon, got %v", geom.GeomType)
	}
	if geom.Commands[len(geom.Commands)-1] != commandInteger(cmdClosePath, 1) {
		t.Errorf("expected trailing CLOSE_PATH command, got %v", geom.Commands)
	}
	// MOVE_TO(1) + pair, LINE_TO(2) + two pairs, CLOSE_PATH(1) = 9 integers
	if len(geom.Commands) != 9 {
		t.Errorf("expected 9 command-stream integers, got %d: %v", len(geom.Commands), geom.Commands)
	}
}

func TestEncodeDropsDuplicatePoints(t *testing.T) {
	e := unitEncoder()
	ls := orb.LineString{{0, 0}, {0, 0}, {5, 5}}
	geom, err := e.Encode(ls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// first point MOVE_TO, then one surviving LINE_TO pair (dup point dropped)
	want := []uint32{9, 0, 0, commandInteger(cmdLineTo, 1), zigzagEncode(5), zigzagEncode(5)}
	if !reflect.DeepEqual([]uint32(geom.Commands), want) {
		t.Errorf("got %v, want %v", geom.Commands, want)
	}
}

func TestEncodeRingDropsExplicitClosingPoint(t *testing.T) {
	e1 := unitEncoder()
	closed := orb.Ring{{0, 0}, {10, 0}, {10, 10}, {0, 0}}
	g1, err := e1.Encode(orb.Polygon{closed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	e2 := unitEncoder()
	implicit := orb.Ring{{0, 0}, {10, 0}, {10, 10}}
	g2, err := e2.Encode(orb.Polygon{implicit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(g1.Commands, g2.Commands) {
		t.Errorf("explicit and implicit ring closing forms diverged: %v vs %v", g1.Commands, g2.Commands)
	}
}

func TestEncodeEmptyGeometryErrors(t *testing.T) {
	e := NewEncoder()
	if _, err := e.Encode(orb.LineString{}); err == nil {
		t.Error("expected error encoding empty LineString")
	}
	if _, err := e.Encode(orb.Polygon{}); err == nil {
		t.Error("expected error encoding empty Polygon")
	}
}

func TestEncodeUnsupportedTypeSkipsWithoutError(t *testing.T) {
	e := NewEncoder()
	geom, err := e.Encode(orb.Bound{})
	if err != nil {
		t.Fatalf("expected no error for unsupported type, got %v", err)
	}
	if !geom.Empty() {
		t.Errorf("expected empty geometry for unsupported type, got %v", geom)
	}
}

func TestEncodeCursorPersistsAcrossCalls(t *testing.T) {
	e := unitEncoder()
	if _, err := e.Encode(orb.Point{10, 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	g2, err := e.Encode(orb.Point{15, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// second point is a delta of (5, 0) from the first, not an absolute move
	wantDX := zigzagEncode(5)
	wantDY := zigzagEncode(0)
	if g2.Commands[1] != wantDX || g2.Commands[2] != wantDY {
		t.Errorf("expected delta (%d, %d) from persisted cursor, got commands %v", wantDX, wantDY, g2.Commands)
	}
}
