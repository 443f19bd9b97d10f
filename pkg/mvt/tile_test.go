package mvt

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileEncodeParseRoundTrip(t *testing.T) {
	enc := NewEncoder()
	pointGeom, err := enc.Encode(point(1, 1))
	require.NoError(t, err)

	tile := NewTile()
	err = tile.AddLayerFeatures("places", []Feature{
		NewFeature("places", 1, pointGeom, []Attr{
			{Key: "name", Value: "Springfield"},
			{Key: "population", Value: int64(32000)},
			{Key: "capital", Value: true},
		}),
	})
	require.NoError(t, err)

	data, err := tile.Encode()
	require.NoError(t, err)
	require.NotEmpty(t, data)

	features, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, features, 1)

	got := features[0]
	assert.Equal(t, "places", got.LayerName)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, UngroupedSentinel(), got.Group)
	require.Len(t, got.Attrs, 3)
	assert.Equal(t, Attr{Key: "name", Value: "Springfield"}, got.Attrs[0])
	assert.Equal(t, Attr{Key: "population", Value: int64(32000)}, got.Attrs[1])
	assert.Equal(t, Attr{Key: "capital", Value: true}, got.Attrs[2])

	decoded, err := got.Geometry.Decode()
	require.NoError(t, err)
	assert.Equal(t, point(1, 1), decoded)
}

func TestTileDropsFeaturesWithEmptyGeometry(t *testing.T) {
	tile := NewTile()
	err := tile.AddLayerFeatures("empty", []Feature{
		NewFeature("empty", 1, VectorGeometry{}, nil),
	})
	require.NoError(t, err)

	data, err := tile.Encode()
	require.NoError(t, err)

	features, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestTileDropsNilAttributeValues(t *testing.T) {
	enc := NewEncoder()
	geom, err := enc.Encode(point(5, 5))
	require.NoError(t, err)

	tile := NewTile()
	err = tile.AddLayerFeatures("layer", []Feature{
		NewFeature("layer", 1, geom, []Attr{
			{Key: "name", Value: "x"},
			{Key: "missing", Value: nil},
		}),
	})
	require.NoError(t, err)

	data, err := tile.Encode()
	require.NoError(t, err)

	features, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Len(t, features[0].Attrs, 1)
	assert.Equal(t, "name", features[0].Attrs[0].Key)
}

func TestTileMultipleLayersPreserveOrder(t *testing.T) {
	enc := NewEncoder()
	g1, err := enc.Encode(point(1, 1))
	require.NoError(t, err)
	g2, err := enc.Encode(point(2, 2))
	require.NoError(t, err)

	tile := NewTile()
	require.NoError(t, tile.AddLayerFeatures("roads", []Feature{NewFeature("roads", 1, g1, nil)}))
	require.NoError(t, tile.AddLayerFeatures("water", []Feature{NewFeature("water", 2, g2, nil)}))

	data, err := tile.Encode()
	require.NoError(t, err)

	features, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, features, 2)
	assert.Equal(t, "roads", features[0].LayerName)
	assert.Equal(t, "water", features[1].LayerName)
}

func TestParseRejectsOddTagLength(t *testing.T) {
	w := &wireWriter{}
	layerW := &wireWriter{}
	layerW.putUint32Field(fieldLayerVersion, layerVersion)
	layerW.putStringField(fieldLayerName, "broken")
	featW := &wireWriter{}
	featW.putPackedUint32Field(fieldFeatureTags, []uint32{0}) // odd length
	featW.putUint32Field(fieldFeatureType, uint32(GeomPoint))
	featW.putPackedUint32Field(fieldFeatureGeometry, []uint32{9, 0, 0})
	layerW.putMessageField(fieldLayerFeatures, featW.bytes())
	layerW.putUint32Field(fieldLayerExtent, DefaultExtent)
	w.putMessageField(fieldTileLayers, layerW.bytes())

	_, err := Parse(w.bytes())
	if err == nil {
		t.Error("expected error parsing feature with odd-length tags")
	}
}

func TestTileOmittedFeatureIDParsesAsZero(t *testing.T) {
	enc := NewEncoder()
	geom, err := enc.Encode(point(3, 3))
	require.NoError(t, err)

	tile := NewTile()
	require.NoError(t, tile.AddLayerFeatures("layer", []Feature{
		NewFeature("layer", UngroupedSentinel(), geom, nil),
	}))

	data, err := tile.Encode()
	require.NoError(t, err)

	features, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, features, 1)
	assert.Equal(t, int64(0), features[0].ID)
}

func TestParseValueWithNoVariantIsNull(t *testing.T) {
	v, err := parseValue(nil)
	require.NoError(t, err)
	assert.Equal(t, KindNull, v.Kind())
	assert.Nil(t, v.Interface())
}

func TestResolveTagsCarriesNullValueThrough(t *testing.T) {
	attrs, err := resolveTags([]uint32{0, 0}, []string{"missing"}, []TypedValue{NullValue()})
	require.NoError(t, err)
	require.Len(t, attrs, 1)
	assert.Equal(t, "missing", attrs[0].Key)
	assert.Nil(t, attrs[0].Value)
}

func TestParseRejectsOutOfRangeValueIndex(t *testing.T) {
	w := &wireWriter{}
	layerW := &wireWriter{}
	layerW.putUint32Field(fieldLayerVersion, layerVersion)
	layerW.putStringField(fieldLayerName, "broken")
	featW := &wireWriter{}
	featW.putPackedUint32Field(fieldFeatureTags, []uint32{0, 9}) // value index 9 out of range
	featW.putUint32Field(fieldFeatureType, uint32(GeomPoint))
	featW.putPackedUint32Field(fieldFeatureGeometry, []uint32{9, 0, 0})
	layerW.putMessageField(fieldLayerFeatures, featW.bytes())
	layerW.putStringField(fieldLayerKeys, "name")
	layerW.putUint32Field(fieldLayerExtent, DefaultExtent)
	w.putMessageField(fieldTileLayers, layerW.bytes())

	_, err := Parse(w.bytes())
	if err == nil {
		t.Error("expected error parsing feature with out-of-range value index")
	}
}

func point(x, y float64) orb.Point {
	return orb.Point{x, y}
}
