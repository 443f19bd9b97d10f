package mvt

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestEncodeDecodeRoundTripPoint(t *testing.T) {
	e := NewEncoder()
	geom, err := e.Encode(orb.Point{12.5, 48.25})
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	got, err := geom.Decode()
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	p, ok := got.(orb.Point)
	if !ok {
		t.Fatalf("expected orb.Point, got %T", got)
	}
	if !almostEqual(p[0], 12.5) || !almostEqual(p[1], 48.25) {
		t.Errorf("round trip mismatch: got %v", p)
	}
}

func TestEncodeDecodeRoundTripLineString(t *testing.T) {
	e := NewEncoder()
	ls := orb.LineString{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	geom, err := e.Encode(ls)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	got, err := geom.Decode()
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	out, ok := got.(orb.LineString)
	if !ok {
		t.Fatalf("expected orb.LineString, got %T", got)
	}
	if len(out) != len(ls) {
		t.Fatalf("expected %d points, got %d", len(ls), len(out))
	}
	for i := range ls {
		if !almostEqual(out[i][0], ls[i][0]) || !almostEqual(out[i][1], ls[i][1]) {
			t.Errorf("point %d mismatch: got %v, want %v", i, out[i], ls[i])
		}
	}
}

func TestEncodeDecodeRoundTripPolygonWithHole(t *testing.T) {
	e := NewEncoder()
	shell := orb.Ring{{0, 0}, {0, 100}, {100, 100}, {100, 0}, {0, 0}}
	hole := orb.Ring{{20, 20}, {40, 20}, {40, 40}, {20, 40}, {20, 20}}
	if shell.Orientation() != orb.CCW {
		shell.Reverse()
	}
	if hole.Orientation() != orb.CW {
		hole.Reverse()
	}
	poly := orb.Polygon{shell, hole}

	geom, err := e.Encode(poly)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	got, err := geom.Decode()
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	out, ok := got.(orb.Polygon)
	if !ok {
		t.Fatalf("expected orb.Polygon, got %T", got)
	}
	if len(out) != 2 {
		t.Fatalf("expected shell + 1 hole, got %d rings", len(out))
	}
}

func TestDecodeTruncatedCommandStreamErrors(t *testing.T) {
	g := VectorGeometry{Commands: []uint32{commandInteger(cmdMoveTo, 1), 4}, GeomType: GeomPoint}
	if _, err := g.Decode(); err == nil {
		t.Error("expected error decoding truncated command stream")
	}
}

func TestDecodeLineToBeforeMoveToErrors(t *testing.T) {
	g := VectorGeometry{Commands: []uint32{commandInteger(cmdLineTo, 1), 2, 2}, GeomType: GeomLine}
	if _, err := g.Decode(); err == nil {
		t.Error("expected error decoding LINE_TO before MOVE_TO")
	}
}

func TestDecodeInvalidCommandIDErrors(t *testing.T) {
	g := VectorGeometry{Commands: []uint32{commandInteger(Command(5), 1)}, GeomType: GeomPoint}
	if _, err := g.Decode(); err == nil {
		t.Error("expected error decoding invalid command id")
	}
}

func TestDecodeEmptyCommandStream(t *testing.T) {
	g := VectorGeometry{GeomType: GeomPoint}
	got, err := g.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := got.(orb.Collection); !ok {
		t.Errorf("expected empty orb.Collection, got %T", got)
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1.0/16.0 // within one default-scale integer unit
}
