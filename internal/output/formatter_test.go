// internal/output/formatter_test.go - Formatter behavior tests
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/halcyon-geo/mvtcodec/internal/tile"
)

func sampleTile(z, x, y int) *tile.ProcessedTile {
	return &tile.ProcessedTile{
		Coordinate: tile.NewTileCoordinate(z, x, y),
		Data: map[string]interface{}{
			"type": "FeatureCollection",
			"features": []interface{}{
				map[string]interface{}{
					"type":       "Feature",
					"properties": map[string]interface{}{"name": "test"},
				},
			},
		},
		Metadata: &tile.TileMetadata{
			Layers:       []string{"roads"},
			FeatureCount: 1,
			Version:      2,
			Extent:       4096,
		},
	}
}

func TestGeoJSONFormatterFormat(t *testing.T) {
	f := NewGeoJSONFormatter(false, false)

	data, err := f.Format(sampleTile(14, 8362, 5956))
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Format output is not valid JSON: %v", err)
	}
	if decoded["type"] != "FeatureCollection" {
		t.Errorf("decoded type = %v, want FeatureCollection", decoded["type"])
	}
	if _, hasMetadata := decoded["_metadata"]; hasMetadata {
		t.Error("_metadata should be absent when includeStats is false")
	}
}

func TestGeoJSONFormatterIncludesStats(t *testing.T) {
	f := NewGeoJSONFormatter(false, true)

	data, err := f.Format(sampleTile(14, 8362, 5956))
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Format output is not valid JSON: %v", err)
	}
	metadata, ok := decoded["_metadata"].(map[string]interface{})
	if !ok {
		t.Fatal("_metadata should be present and be an object when includeStats is true")
	}
	if metadata["feature_count"].(float64) != 1 {
		t.Errorf("_metadata.feature_count = %v, want 1", metadata["feature_count"])
	}
}

func TestGeoJSONFormatterPropagatesTileError(t *testing.T) {
	f := NewGeoJSONFormatter(false, false)

	broken := sampleTile(14, 8362, 5956)
	broken.Error = fmt.Errorf("fetch failed")

	if _, err := f.Format(broken); err == nil {
		t.Error("Format should return an error when the tile itself carries one")
	}
}

func TestGeoJSONFormatterFormatBatch(t *testing.T) {
	f := NewGeoJSONFormatter(false, true)

	tiles := []*tile.ProcessedTile{
		sampleTile(14, 0, 0),
		sampleTile(14, 0, 1),
		{Coordinate: tile.NewTileCoordinate(14, 0, 2), Error: fmt.Errorf("boom")},
	}

	data, err := f.FormatBatch(tiles)
	if err != nil {
		t.Fatalf("FormatBatch returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("FormatBatch output is not valid JSON: %v", err)
	}

	features, ok := decoded["features"].([]interface{})
	if !ok || len(features) != 2 {
		t.Errorf("FormatBatch combined features = %v, want 2 features from the 2 successful tiles", decoded["features"])
	}

	metadata := decoded["_metadata"].(map[string]interface{})
	if metadata["failed_tiles"].(float64) != 1 {
		t.Errorf("_metadata.failed_tiles = %v, want 1", metadata["failed_tiles"])
	}
}

func TestJSONFormatterFormat(t *testing.T) {
	f := NewJSONFormatter(false, false)

	data, err := f.Format(sampleTile(14, 8362, 5956))
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if !strings.Contains(string(data), `"coordinate"`) {
		t.Errorf("Format output missing coordinate field: %s", data)
	}
}

func TestJSONFormatterFormatWithTileError(t *testing.T) {
	f := NewJSONFormatter(false, false)

	broken := sampleTile(14, 8362, 5956)
	broken.Error = fmt.Errorf("conversion failed")

	data, err := f.Format(broken)
	if err != nil {
		t.Fatalf("Format should not itself error when the tile carries an error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Format output is not valid JSON: %v", err)
	}
	if decoded["error"] != "conversion failed" {
		t.Errorf("decoded error = %v, want %q", decoded["error"], "conversion failed")
	}
	if decoded["data"] != nil {
		t.Errorf("decoded data = %v, want nil when the tile carries an error", decoded["data"])
	}
}

func TestContentTypes(t *testing.T) {
	if got := (NewGeoJSONFormatter(false, false)).ContentType(); got != "application/geo+json" {
		t.Errorf("GeoJSONFormatter.ContentType() = %q, want application/geo+json", got)
	}
	if got := (NewJSONFormatter(false, false)).ContentType(); got != "application/json" {
		t.Errorf("JSONFormatter.ContentType() = %q, want application/json", got)
	}
}

func TestNewFormatterUnsupportedFormat(t *testing.T) {
	_, err := NewFormatter(&FormatterConfig{Format: Format("bson")})
	if err == nil {
		t.Error("NewFormatter should reject an unsupported format")
	}
}

func TestNewFormatterDispatch(t *testing.T) {
	geo, err := NewFormatter(&FormatterConfig{Format: FormatGeoJSON})
	if err != nil {
		t.Fatalf("NewFormatter(geojson) returned error: %v", err)
	}
	if _, ok := geo.(*GeoJSONFormatter); !ok {
		t.Errorf("NewFormatter(geojson) = %T, want *GeoJSONFormatter", geo)
	}

	js, err := NewFormatter(&FormatterConfig{Format: FormatJSON})
	if err != nil {
		t.Fatalf("NewFormatter(json) returned error: %v", err)
	}
	if _, ok := js.(*JSONFormatter); !ok {
		t.Errorf("NewFormatter(json) = %T, want *JSONFormatter", js)
	}
}
