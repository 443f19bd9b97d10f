// pkg/mvt/geometry_decode.go - MVT command stream -> orb.Geometry
package mvt

import (
	"math"

	"github.com/paulmach/orb"
)

// Decode reconstructs the geometry this command stream encodes, using the
// default extent/size scale factor. It is a pure function of g and may be
// called any number of times; results are not memoized.
func (g VectorGeometry) Decode() (orb.Geometry, error) {
	return g.DecodeWithExtent(DefaultExtent, DefaultSize)
}

// DecodeWithExtent decodes using a non-default extent/size pair.
func (g VectorGeometry) DecodeWithExtent(extent, size int) (orb.Geometry, error) {
	scale := float64(extent) / float64(size)

	if len(g.Commands) == 0 {
		return orb.Collection{}, nil
	}

	sequences, err := readCommandSequences(g.Commands, g.GeomType)
	if err != nil {
		return nil, err
	}

	switch g.GeomType {
	case GeomPoint:
		return assemblePoints(sequences, scale), nil
	case GeomLine:
		return assembleLines(sequences, scale), nil
	case GeomPolygon:
		return assemblePolygons(sequences, scale)
	default:
		return orb.Collection{}, nil
	}
}

// cursorSeq is a sequence of raw (unscaled) integer coordinates produced by
// one MOVE_TO/LINE_TO*/CLOSE_PATH? run.
type cursorSeq [][2]int32

// readCommandSequences replays the command stream against a (0,0) cursor
// and groups coordinates into one sequence per MOVE_TO.
func readCommandSequences(commands []uint32, geomType GeometryType) ([]cursorSeq, error) {
	var sequences []cursorSeq
	var cur *cursorSeq
	var cx, cy int32

	i := 0
	for i < len(commands) {
		cmd, repeat := splitCommandInteger(commands[i])
		i++

		switch cmd {
		case cmdMoveTo:
			for n := 0; n < repeat; n++ {
				if i+1 >= len(commands) {
					return nil, newDecodeError("truncated MOVE_TO delta pair", nil)
				}
				dx := zigzagDecode(commands[i])
				dy := zigzagDecode(commands[i+1])
				i += 2
				cx += dx
				cy += dy
				sequences = append(sequences, cursorSeq{{cx, cy}})
				cur = &sequences[len(sequences)-1]
			}
		case cmdLineTo:
			if cur == nil {
				return nil, newDecodeError("LINE_TO before MOVE_TO", nil)
			}
			for n := 0; n < repeat; n++ {
				if i+1 >= len(commands) {
					return nil, newDecodeError("truncated LINE_TO delta pair", nil)
				}
				dx := zigzagDecode(commands[i])
				dy := zigzagDecode(commands[i+1])
				i += 2
				cx += dx
				cy += dy
				*cur = append(*cur, [2]int32{cx, cy})
			}
		case cmdClosePath:
			if geomType != GeomPoint && cur != nil && len(*cur) > 0 {
				*cur = append(*cur, (*cur)[0])
			}
		default:
			return nil, newDecodeError("invalid command id", nil)
		}
	}

	return sequences, nil
}

func toOrbPoint(c [2]int32, scale float64) orb.Point {
	return orb.Point{float64(c[0]) / scale, float64(c[1]) / scale}
}

func assemblePoints(sequences []cursorSeq, scale float64) orb.Geometry {
	if len(sequences) == 0 {
		return orb.Collection{}
	}
	if len(sequences) == 1 {
		return toOrbPoint(sequences[0][0], scale)
	}
	mp := make(orb.MultiPoint, len(sequences))
	for i, seq := range sequences {
		mp[i] = toOrbPoint(seq[0], scale)
	}
	return mp
}

func assembleLines(sequences []cursorSeq, scale float64) orb.Geometry {
	var lines []orb.LineString
	for _, seq := range sequences {
		if len(seq) < 2 {
			continue
		}
		ls := make(orb.LineString, len(seq))
		for i, c := range seq {
			ls[i] = toOrbPoint(c, scale)
		}
		lines = append(lines, ls)
	}
	switch len(lines) {
	case 0:
		return orb.Collection{}
	case 1:
		return lines[0]
	default:
		return orb.MultiLineString(lines)
	}
}

// ringSignedArea returns twice the signed area of a closed ring in raw
// (unscaled) integer coordinates; its sign determines ring orientation.
func ringSignedArea(seq cursorSeq) float64 {
	var area float64
	for i := 0; i < len(seq); i++ {
		j := (i + 1) % len(seq)
		area += float64(seq[i][0])*float64(seq[j][1]) - float64(seq[j][0])*float64(seq[i][1])
	}
	return area
}

func assemblePolygons(sequences []cursorSeq, scale float64) (orb.Geometry, error) {
	var polygons []orb.Polygon
	var outerSign float64
	haveOuter := false

	for _, seq := range sequences {
		if len(seq) < 2 {
			if len(polygons) > 0 {
				continue // undersized hole candidate, dropped
			}
			continue
		}

		ring := make(orb.Ring, len(seq))
		for i, c := range seq {
			ring[i] = toOrbPoint(c, scale)
		}

		area := ringSignedArea(seq)
		sign := math.Copysign(1, area)
		if area == 0 {
			sign = 0
		}

		if !haveOuter {
			outerSign = sign
			haveOuter = true
			polygons = append(polygons, orb.Polygon{ring})
			continue
		}

		if sign == outerSign {
			polygons = append(polygons, orb.Polygon{ring})
		} else {
			last := len(polygons) - 1
			if last < 0 {
				return nil, newDecodeError("hole ring with no preceding shell", nil)
			}
			polygons[last] = append(polygons[last], ring)
		}
	}

	switch len(polygons) {
	case 0:
		return orb.Collection{}, nil
	case 1:
		return polygons[0], nil
	default:
		return orb.MultiPolygon(polygons), nil
	}
}
