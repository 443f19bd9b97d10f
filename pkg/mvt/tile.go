// pkg/mvt/tile.go - Tile builder: assembles and serializes an MVT tile
package mvt

import "math"

// Protobuf field numbers for the MVT schema (tile.proto).
const (
	fieldTileLayers = 3

	fieldLayerVersion  = 15
	fieldLayerName     = 1
	fieldLayerFeatures = 2
	fieldLayerKeys     = 3
	fieldLayerValues   = 4
	fieldLayerExtent   = 5

	fieldFeatureID       = 1
	fieldFeatureTags     = 2
	fieldFeatureType     = 3
	fieldFeatureGeometry = 4

	fieldValueString = 1
	fieldValueFloat  = 2
	fieldValueDouble = 3
	fieldValueInt    = 4
	fieldValueUint   = 5
	fieldValueSint   = 6
	fieldValueBool   = 7
)

// layerVersion is the MVT spec version this codec targets.
const layerVersion = 2

// Tile accumulates layers to be serialized into a single MVT protobuf
// message. Zero value is not usable; construct with NewTile.
type Tile struct {
	extent int
	layers []*Layer
	byName map[string]*Layer
}

// NewTile creates an empty Tile using the default extent (4096).
func NewTile() *Tile {
	return NewTileWithExtent(DefaultExtent)
}

// NewTileWithExtent creates an empty Tile with a custom extent.
func NewTileWithExtent(extent int) *Tile {
	return &Tile{extent: extent, byName: make(map[string]*Layer)}
}

// layerFor returns the named layer, creating it (in insertion order) on
// first reference.
func (t *Tile) layerFor(name string) *Layer {
	if l, ok := t.byName[name]; ok {
		return l
	}
	l := newLayer(name, t.extent)
	t.byName[name] = l
	t.layers = append(t.layers, l)
	return l
}

// AddLayerFeatures adds features to the named layer, creating the layer on
// first use. A feature with an empty geometry is dropped - it contributes
// nothing to the wire tile and would otherwise encode to a feature with no
// geometry field at all. Attribute keys and values are interned into the
// layer's dictionaries in the order features and their attrs are supplied;
// an attribute whose value is nil is dropped rather than interned, so the
// builder never writes a Value message with no field set.
func (t *Tile) AddLayerFeatures(layerName string, features []Feature) error {
	layer := t.layerFor(layerName)
	for _, f := range features {
		if f.Geometry.Empty() {
			continue
		}

		var tags []uint32
		for _, a := range f.Attrs {
			if a.Value == nil {
				continue
			}
			kid := layer.keyID(a.Key)
			vid := layer.valueID(valueFromInterface(a.Value))
			tags = append(tags, uint32(kid), uint32(vid))
		}

		layer.features = append(layer.features, encodedFeature{
			tags:     tags,
			id:       f.ID,
			geometry: f.Geometry,
		})
	}
	return nil
}

// Encode serializes the tile to MVT protobuf bytes. Layers are written in
// the order they were first referenced by AddLayerFeatures.
func (t *Tile) Encode() ([]byte, error) {
	w := &wireWriter{}
	for _, layer := range t.layers {
		payload, err := encodeLayer(layer)
		if err != nil {
			return nil, err
		}
		w.putMessageField(fieldTileLayers, payload)
	}
	return w.bytes(), nil
}

func encodeLayer(l *Layer) ([]byte, error) {
	w := &wireWriter{}
	w.putUint32Field(fieldLayerVersion, layerVersion)
	w.putStringField(fieldLayerName, l.Name)

	for _, f := range l.features {
		payload, err := encodeFeature(f)
		if err != nil {
			return nil, err
		}
		w.putMessageField(fieldLayerFeatures, payload)
	}
	for _, k := range l.keys {
		w.putStringField(fieldLayerKeys, k)
	}
	for _, v := range l.values {
		payload := encodeValue(v)
		w.putMessageField(fieldLayerValues, payload)
	}
	w.putUint32Field(fieldLayerExtent, uint32(l.Extent))
	return w.bytes(), nil
}

func encodeFeature(f encodedFeature) ([]byte, error) {
	w := &wireWriter{}
	if f.id >= 0 {
		w.putInt64Field(fieldFeatureID, f.id)
	}
	if len(f.tags) > 0 {
		w.putPackedUint32Field(fieldFeatureTags, f.tags)
	}
	w.putUint32Field(fieldFeatureType, uint32(f.geometry.GeomType))
	w.putPackedUint32Field(fieldFeatureGeometry, f.geometry.Commands)
	return w.bytes(), nil
}

func encodeValue(v TypedValue) []byte {
	w := &wireWriter{}
	switch v.Kind() {
	case KindString:
		w.putStringField(fieldValueString, v.s)
	case KindFloat32:
		w.putFixed32Field(fieldValueFloat, math.Float32bits(v.f32))
	case KindFloat64:
		w.putFixed64Field(fieldValueDouble, math.Float64bits(v.f64))
	case KindInt64:
		w.putInt64Field(fieldValueInt, v.i64)
	case KindUint64:
		w.putVarintField(fieldValueUint, v.u64)
	case KindSint64:
		w.putVarintField(fieldValueSint, zigzagEncode64(v.i64))
	case KindBool:
		w.putBoolField(fieldValueBool, v.b)
	}
	return w.bytes()
}
