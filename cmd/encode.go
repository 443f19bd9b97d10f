// cmd/encode.go - GeoJSON -> Mapbox Vector Tile encode command
package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/halcyon-geo/mvtcodec/pkg/mvt"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a GeoJSON FeatureCollection into a Mapbox Vector Tile",
	Long: `Encode reads a GeoJSON FeatureCollection and writes it back out as a
single-layer Mapbox Vector Tile in Protocol Buffer format.

Examples:
  # Encode a file into a tile, naming the layer "places"
  mvtcodec encode --input places.geojson --layer places --output places.mvt

  # Encode from stdin to stdout
  cat places.geojson | mvtcodec encode --layer places > places.mvt`,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)

	encodeCmd.Flags().StringP("input", "i", "", "input GeoJSON file (default: stdin)")
	encodeCmd.Flags().StringP("output", "o", "", "output tile file (default: stdout)")
	encodeCmd.Flags().String("layer", "layer", "name of the layer to encode features into")
	encodeCmd.Flags().Int("extent", mvt.DefaultExtent, "tile extent in integer units")
}

func runEncode(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	layerName, _ := cmd.Flags().GetString("layer")
	extent, _ := cmd.Flags().GetInt("extent")

	raw, err := readAllInput(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read GeoJSON input: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return fmt.Errorf("failed to parse GeoJSON: %w", err)
	}

	if viper.GetBool("logging.verbose") {
		fmt.Fprintf(os.Stderr, "Encoding %d features into layer %q\n", len(fc.Features), layerName)
	}

	encoder := mvt.NewEncoderWithExtent(extent, extent)
	tile := mvt.NewTileWithExtent(extent)

	features := make([]mvt.Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		geom, err := encoder.Encode(f.Geometry)
		if err != nil {
			return fmt.Errorf("failed to encode feature %d: %w", i, err)
		}

		id := mvt.UngroupedSentinel()
		if n, ok := f.ID.(float64); ok {
			id = int64(n)
		}

		features = append(features, mvt.NewFeature(layerName, id, geom, attrsFromProperties(f.Properties)))
	}

	if err := tile.AddLayerFeatures(layerName, features); err != nil {
		return fmt.Errorf("failed to assemble layer %q: %w", layerName, err)
	}

	data, err := tile.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode tile: %w", err)
	}

	if err := writeAllOutput(outputPath, data); err != nil {
		return fmt.Errorf("failed to write tile: %w", err)
	}

	if viper.GetBool("logging.verbose") {
		fmt.Fprintf(os.Stderr, "Wrote %d bytes\n", len(data))
	}

	return nil
}

// attrsFromProperties converts GeoJSON properties into an ordered Attr
// slice. Property order is not preserved by encoding/json's map decoding,
// so keys are sorted for a deterministic, reproducible wire layout.
func attrsFromProperties(props geojson.Properties) []mvt.Attr {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]mvt.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, mvt.Attr{Key: k, Value: props[k]})
	}
	return attrs
}

func readAllInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeAllOutput(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
