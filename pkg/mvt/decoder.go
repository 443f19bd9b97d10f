// pkg/mvt/decoder.go - Mapbox Vector Tile decoding implementation
package mvt

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// Decoder handles decoding of Mapbox Vector Tiles from Protocol Buffer format
type Decoder struct {
	extent int
}

// NewDecoder creates a new MVT decoder with default settings
func NewDecoder() *Decoder {
	return &Decoder{
		extent: DefaultExtent,
	}
}

// NewDecoderWithExtent creates a new MVT decoder with custom extent
func NewDecoderWithExtent(extent int) *Decoder {
	return &Decoder{
		extent: extent,
	}
}

// DecodedTile represents a decoded MVT tile with its layers and metadata
type DecodedTile struct {
	Layers  map[string]*DecodedLayer `json:"layers"`
	Extent  int                      `json:"extent"`
	Version int                      `json:"version"`
	TileID  TileID                   `json:"tile_id"`
}

// DecodedLayer represents a single layer within an MVT tile
type DecodedLayer struct {
	Name     string            `json:"name"`
	Features []*DecodedFeature `json:"features"`
	Extent   int               `json:"extent"`
	Version  int               `json:"version"`
	Keys     []string          `json:"keys,omitempty"`
	Values   []interface{}     `json:"values,omitempty"`
}

// DecodedFeature represents a single feature within a layer
type DecodedFeature struct {
	ID       *uint64                `json:"id,omitempty"`
	Tags     map[string]interface{} `json:"tags"`
	Type     string                 `json:"type"`
	Geometry orb.Geometry           `json:"geometry"`
}

// TileID represents the tile coordinates and zoom level
type TileID struct {
	Z int `json:"z"`
	X int `json:"x"`
	Y int `json:"y"`
}

// Decode decodes a Mapbox Vector Tile from binary Protocol Buffer data.
// Geometry decoding (command stream -> orb.Geometry) happens eagerly here,
// one VectorGeometry.Decode() call per feature, and is transformed into
// Web Mercator coordinates before being attached to the result.
func (d *Decoder) Decode(data []byte, z, x, y int) (*DecodedTile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty tile data")
	}

	rawFeatures, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MVT data: %w", err)
	}

	decodedTile := &DecodedTile{
		Layers:  make(map[string]*DecodedLayer),
		Extent:  d.extent,
		Version: layerVersion,
		TileID: TileID{
			Z: z,
			X: x,
			Y: y,
		},
	}

	for _, rf := range rawFeatures {
		layer, ok := decodedTile.Layers[rf.LayerName]
		if !ok {
			layer = &DecodedLayer{
				Name:    rf.LayerName,
				Extent:  d.extent,
				Version: layerVersion,
			}
			decodedTile.Layers[rf.LayerName] = layer
		}

		decodedFeature, err := d.decodeFeature(rf, z, x, y)
		if err != nil {
			// skip features whose geometry could not be reconstructed,
			// matching the tolerant behavior of the rest of the codec
			continue
		}
		layer.Features = append(layer.Features, decodedFeature)
	}

	return decodedTile, nil
}

// decodeFeature decodes one feature's command stream and transforms it
// into Web Mercator coordinates.
func (d *Decoder) decodeFeature(f Feature, z, x, y int) (*DecodedFeature, error) {
	geometry, err := f.Geometry.DecodeWithExtent(d.extent, d.extent)
	if err != nil {
		return nil, fmt.Errorf("decoding geometry: %w", err)
	}

	transformedGeometry := d.transformGeometry(geometry, z, x, y)

	tags := make(map[string]interface{}, len(f.Attrs))
	for _, a := range f.Attrs {
		tags[a.Key] = a.Value
	}

	decodedFeature := &DecodedFeature{
		Tags:     tags,
		Geometry: transformedGeometry,
	}

	if f.ID >= 0 {
		id := uint64(f.ID)
		decodedFeature.ID = &id
	}

	switch transformedGeometry.(type) {
	case orb.Point, orb.MultiPoint, orb.LineString, orb.MultiLineString, orb.Polygon, orb.MultiPolygon:
		decodedFeature.Type = orb.GeoJSONType(transformedGeometry)
	default:
		return nil, fmt.Errorf("unsupported geometry type: %T", transformedGeometry)
	}

	return decodedFeature, nil
}

// transformGeometry converts tile coordinates to geographic coordinates (Web Mercator).
//
// DecodeWithExtent was called with size == extent above, so geometry
// values here are already in [0, extent] tile pixel units - dividing by
// d.extent (tileSize) yields the fractional tile coordinate this
// transform expects.
func (d *Decoder) transformGeometry(geometry orb.Geometry, z, x, y int) orb.Geometry {
	n := float64(int(1) << uint(z))
	tileSize := float64(d.extent)

	const webMercatorMax = 20037508.342789244

	transform := func(point orb.Point) orb.Point {
		tileX := point[0] / tileSize
		tileY := point[1] / tileSize

		globalX := (float64(x) + tileX) / n
		globalY := (float64(y) + tileY) / n

		mercatorX := (globalX*2.0 - 1.0) * webMercatorMax
		mercatorY := (1.0 - globalY*2.0) * webMercatorMax

		return orb.Point{mercatorX, mercatorY}
	}

	return orb.Transform(geometry, transform)
}

// GetLayerNames returns the names of all layers in the decoded tile
func (dt *DecodedTile) GetLayerNames() []string {
	names := make([]string, 0, len(dt.Layers))
	for name := range dt.Layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetFeatureCount returns the total number of features across all layers
func (dt *DecodedTile) GetFeatureCount() int {
	count := 0
	for _, layer := range dt.Layers {
		count += len(layer.Features)
	}
	return count
}

// GetLayerFeatureCount returns the number of features in a specific layer
func (dt *DecodedTile) GetLayerFeatureCount(layerName string) int {
	if layer, exists := dt.Layers[layerName]; exists {
		return len(layer.Features)
	}
	return 0
}

// HasLayer checks if the tile contains a specific layer
func (dt *DecodedTile) HasLayer(layerName string) bool {
	_, exists := dt.Layers[layerName]
	return exists
}

// IsEmpty returns true if the tile contains no features
func (dt *DecodedTile) IsEmpty() bool {
	return dt.GetFeatureCount() == 0
}

// String returns a string representation of the tile ID
func (tid TileID) String() string {
	return fmt.Sprintf("%d/%d/%d", tid.Z, tid.X, tid.Y)
}

// Validate checks if the tile coordinates are valid
func (tid TileID) Validate() error {
	if tid.Z < 0 || tid.Z > 22 {
		return fmt.Errorf("invalid zoom level %d: must be between 0 and 22", tid.Z)
	}

	maxTile := 1 << uint(tid.Z)
	if tid.X < 0 || tid.X >= maxTile {
		return fmt.Errorf("invalid X coordinate %d for zoom %d: must be between 0 and %d", tid.X, tid.Z, maxTile-1)
	}

	if tid.Y < 0 || tid.Y >= maxTile {
		return fmt.Errorf("invalid Y coordinate %d for zoom %d: must be between 0 and %d", tid.Y, tid.Z, maxTile-1)
	}

	return nil
}
