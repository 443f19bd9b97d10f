// pkg/mvt/feature.go - geometry type tags, VectorGeometry and Feature records
package mvt

// GeometryType is the MVT geometry type tag, wire-compatible with the
// protobuf GeomType enum (UNKNOWN=0, POINT=1, LINESTRING=2, POLYGON=3).
type GeometryType uint32

const (
	GeomUnknown GeometryType = 0
	GeomPoint   GeometryType = 1
	GeomLine    GeometryType = 2
	GeomPolygon GeometryType = 3
)

func (t GeometryType) String() string {
	switch t {
	case GeomPoint:
		return "POINT"
	case GeomLine:
		return "LINE"
	case GeomPolygon:
		return "POLYGON"
	default:
		return "UNKNOWN"
	}
}

// VectorGeometry is the immutable pair of an MVT command stream and the
// geometry type tag it was produced for. It is value-semantic: Decode is a
// pure function of Commands and GeomType and may be called any number of
// times. Callers may share a VectorGeometry freely across goroutines.
type VectorGeometry struct {
	Commands []uint32
	GeomType GeometryType
}

// Empty reports whether the command stream carries no drawing commands at
// all - the case for a geometry the encoder skipped (unknown type) or a
// sub-geometry with nothing to emit.
func (g VectorGeometry) Empty() bool {
	return len(g.Commands) == 0
}

// ungroupedSentinel is the Feature.Group value meaning "no caller-assigned
// group" - used for every feature recovered by Parse, since grouping is
// assigned upstream of this codec and never encoded to the wire.
const ungroupedSentinel int64 = -1

// UngroupedSentinel returns the Feature.Group value meaning "no group".
func UngroupedSentinel() int64 { return ungroupedSentinel }

// Attr is a single attribute key/value pair. Feature.Attrs is a slice
// rather than a map so that insertion order - which the layer builder
// must preserve when interning keys and values - survives round trips
// through caller code.
type Attr struct {
	Key   string
	Value interface{}
}

// Feature is a decoded or caller-constructed feature: a named layer, an
// optional numeric id, a geometry (still in command-stream form), typed
// attributes, and an upstream grouping key that this codec never encodes.
type Feature struct {
	LayerName string
	ID        int64
	Geometry  VectorGeometry
	Attrs     []Attr
	Group     int64
}

// NewFeature builds a Feature with no caller-assigned group.
func NewFeature(layerName string, id int64, geom VectorGeometry, attrs []Attr) Feature {
	return Feature{
		LayerName: layerName,
		ID:        id,
		Geometry:  geom,
		Attrs:     attrs,
		Group:     ungroupedSentinel,
	}
}

// encodedFeature is the builder-side representation of a feature once its
// attributes have been interned into a Layer's key/value dictionaries.
type encodedFeature struct {
	tags     []uint32
	id       int64
	geometry VectorGeometry
}
