// pkg/mvt/encoder.go - geometry encoder: orb.Geometry -> MVT command stream
package mvt

import (
	"log"
	"math"

	"github.com/paulmach/orb"
)

// Default tile geometry constants (spec.md S6/S7): the wire extent is 4096
// integer units per tile side; callers submit coordinates already scaled
// into [0, SIZE] and the encoder rescales them onto the extent.
const (
	DefaultExtent = 4096
	DefaultSize   = 256
)

// Encoder traverses geometries and emits MVT command streams. A single
// Encoder carries a delta-coding cursor that persists across every
// geometry submitted to it - encoding a polygon's rings, or several
// features in sequence on the same Encoder, continues one delta chain.
// An Encoder is not safe for concurrent use; construct one per feature
// or hand each goroutine its own.
type Encoder struct {
	extent int
	size   int
	scale  float64
	cx, cy int32
}

// NewEncoder creates an Encoder using the default extent (4096) and
// coordinate domain size (256).
func NewEncoder() *Encoder {
	return NewEncoderWithExtent(DefaultExtent, DefaultSize)
}

// NewEncoderWithExtent creates an Encoder for a non-default extent/size.
func NewEncoderWithExtent(extent, size int) *Encoder {
	return &Encoder{
		extent: extent,
		size:   size,
		scale:  float64(extent) / float64(size),
	}
}

// Encode traverses geom and returns its MVT command stream. Unknown
// geometry types are logged and skipped, returning an empty VectorGeometry
// with no error, per spec.md S7's log-and-skip policy.
func (e *Encoder) Encode(geom orb.Geometry) (VectorGeometry, error) {
	switch g := geom.(type) {
	case orb.Point:
		return e.encodePoint(g)
	case orb.MultiPoint:
		return e.encodeMultiPoint(g)
	case orb.LineString:
		return e.encodeLineString(g)
	case orb.MultiLineString:
		return e.encodeMultiLineString(g)
	case orb.Ring:
		return e.encodePolygon(orb.Polygon{g})
	case orb.Polygon:
		return e.encodePolygon(g)
	case orb.MultiPolygon:
		return e.encodeMultiPolygon(g)
	default:
		log.Printf("mvt: skipping unsupported geometry type %T", geom)
		return VectorGeometry{GeomType: GeomUnknown}, nil
	}
}

func (e *Encoder) scalePoint(p orb.Point) (int32, int32) {
	x := int32(math.Round(p[0] * e.scale))
	y := int32(math.Round(p[1] * e.scale))
	return x, y
}

// moveTo appends a MOVE_TO(1) command plus one delta pair, advancing the
// cursor.
func (e *Encoder) moveTo(cmds []uint32, p orb.Point) []uint32 {
	x, y := e.scalePoint(p)
	dx, dy := x-e.cx, y-e.cy
	e.cx, e.cy = x, y
	cmds = append(cmds, commandInteger(cmdMoveTo, 1))
	cmds = append(cmds, zigzagEncode(dx), zigzagEncode(dy))
	return cmds
}

func (e *Encoder) encodePoint(p orb.Point) (VectorGeometry, error) {
	cmds := e.moveTo(nil, p)
	return VectorGeometry{Commands: cmds, GeomType: GeomPoint}, nil
}

func (e *Encoder) encodeMultiPoint(mp orb.MultiPoint) (VectorGeometry, error) {
	if len(mp) == 0 {
		return VectorGeometry{}, &EmptyGeometryError{Kind: "MultiPoint"}
	}
	cmds := []uint32{commandInteger(cmdMoveTo, len(mp))}
	for _, p := range mp {
		x, y := e.scalePoint(p)
		dx, dy := x-e.cx, y-e.cy
		e.cx, e.cy = x, y
		cmds = append(cmds, zigzagEncode(dx), zigzagEncode(dy))
	}
	return VectorGeometry{Commands: cmds, GeomType: GeomPoint}, nil
}

// encodeLineLike emits MOVE_TO(1) + one pair, then LINE_TO(n) + n pairs for
// the remaining points, applying the duplicate-point suppression rule and,
// for closed rings, dropping an explicit closing point and appending
// CLOSE_PATH(1).
func (e *Encoder) encodeLineLike(points []orb.Point, closed bool) ([]uint32, error) {
	pts := points
	if closed && len(pts) >= 2 && pts[len(pts)-1] == pts[0] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) == 0 {
		kind := "LineString"
		if closed {
			kind = "LinearRing"
		}
		return nil, &EmptyGeometryError{Kind: kind}
	}

	cmds := e.moveTo(nil, pts[0])

	if len(pts) > 1 {
		lineToIdx := len(cmds)
		cmds = append(cmds, 0) // reserved LINE_TO header, rewritten below
		count := 0
		for _, p := range pts[1:] {
			x, y := e.scalePoint(p)
			dx, dy := x-e.cx, y-e.cy
			if dx == 0 && dy == 0 {
				continue // duplicate-point suppression
			}
			e.cx, e.cy = x, y
			cmds = append(cmds, zigzagEncode(dx), zigzagEncode(dy))
			count++
		}
		if count == 0 {
			cmds = append(cmds[:lineToIdx], cmds[lineToIdx+1:]...)
		} else {
			cmds[lineToIdx] = commandInteger(cmdLineTo, count)
		}
	}

	if closed {
		cmds = append(cmds, commandInteger(cmdClosePath, 1))
	}
	return cmds, nil
}

func (e *Encoder) encodeLineString(ls orb.LineString) (VectorGeometry, error) {
	cmds, err := e.encodeLineLike([]orb.Point(ls), false)
	if err != nil {
		return VectorGeometry{}, err
	}
	return VectorGeometry{Commands: cmds, GeomType: GeomLine}, nil
}

func (e *Encoder) encodeMultiLineString(mls orb.MultiLineString) (VectorGeometry, error) {
	if len(mls) == 0 {
		return VectorGeometry{}, &EmptyGeometryError{Kind: "MultiLineString"}
	}
	var cmds []uint32
	for _, ls := range mls {
		part, err := e.encodeLineLike([]orb.Point(ls), false)
		if err != nil {
			return VectorGeometry{}, err
		}
		cmds = append(cmds, part...)
	}
	return VectorGeometry{Commands: cmds, GeomType: GeomLine}, nil
}

func (e *Encoder) encodeRing(ring orb.Ring) ([]uint32, error) {
	return e.encodeLineLike([]orb.Point(ring), true)
}

func (e *Encoder) encodePolygon(poly orb.Polygon) (VectorGeometry, error) {
	if len(poly) == 0 {
		return VectorGeometry{}, &EmptyGeometryError{Kind: "Polygon"}
	}
	var cmds []uint32
	for _, ring := range poly {
		part, err := e.encodeRing(ring)
		if err != nil {
			return VectorGeometry{}, err
		}
		cmds = append(cmds, part...)
	}
	return VectorGeometry{Commands: cmds, GeomType: GeomPolygon}, nil
}

func (e *Encoder) encodeMultiPolygon(mp orb.MultiPolygon) (VectorGeometry, error) {
	if len(mp) == 0 {
		return VectorGeometry{}, &EmptyGeometryError{Kind: "MultiPolygon"}
	}
	var cmds []uint32
	for _, poly := range mp {
		part, err := e.encodePolygon(poly)
		if err != nil {
			return VectorGeometry{}, err
		}
		cmds = append(cmds, part.Commands...)
	}
	return VectorGeometry{Commands: cmds, GeomType: GeomPolygon}, nil
}
