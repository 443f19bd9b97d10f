// pkg/mvt/parse.go - Tile parser: MVT protobuf bytes -> []Feature
package mvt

import "math"

// Parse decodes MVT protobuf bytes into a flat slice of Feature records,
// one per wire feature across every layer, in layer-then-feature wire
// order. Geometry is kept in its undecoded command-stream form: call
// Feature.Geometry.Decode() lazily, only for features the caller actually
// needs. Every returned feature has Group set to UngroupedSentinel, since
// grouping is never encoded to the wire.
func Parse(data []byte) ([]Feature, error) {
	r := newWireReader(data)
	var features []Feature

	for !r.done() {
		field, wireType, err := r.readTag()
		if err != nil {
			return nil, newParseError("reading tile field tag", err)
		}
		if field != fieldTileLayers {
			if err := r.skipField(wireType); err != nil {
				return nil, newParseError("skipping unknown tile field", err)
			}
			continue
		}
		payload, err := r.readBytes()
		if err != nil {
			return nil, newParseError("reading layer payload", err)
		}
		layerFeatures, err := parseLayer(payload)
		if err != nil {
			return nil, err
		}
		features = append(features, layerFeatures...)
	}

	return features, nil
}

func parseLayer(data []byte) ([]Feature, error) {
	r := newWireReader(data)

	var name string
	extent := DefaultExtent
	var keys []string
	var values []TypedValue
	var rawFeatures []rawFeature

	for !r.done() {
		field, wireType, err := r.readTag()
		if err != nil {
			return nil, newParseError("reading layer field tag", err)
		}
		switch field {
		case fieldLayerName:
			b, err := r.readBytes()
			if err != nil {
				return nil, newParseError("reading layer name", err)
			}
			name = string(b)
		case fieldLayerExtent:
			v, err := r.readVarint()
			if err != nil {
				return nil, newParseError("reading layer extent", err)
			}
			extent = int(v)
		case fieldLayerKeys:
			b, err := r.readBytes()
			if err != nil {
				return nil, newParseError("reading layer key", err)
			}
			keys = append(keys, string(b))
		case fieldLayerValues:
			payload, err := r.readBytes()
			if err != nil {
				return nil, newParseError("reading layer value", err)
			}
			v, err := parseValue(payload)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case fieldLayerFeatures:
			payload, err := r.readBytes()
			if err != nil {
				return nil, newParseError("reading feature payload", err)
			}
			rf, err := parseRawFeature(payload)
			if err != nil {
				return nil, err
			}
			rawFeatures = append(rawFeatures, rf)
		case fieldLayerVersion:
			if _, err := r.readVarint(); err != nil {
				return nil, newParseError("reading layer version", err)
			}
		default:
			if err := r.skipField(wireType); err != nil {
				return nil, newParseError("skipping unknown layer field", err)
			}
		}
	}

	features := make([]Feature, 0, len(rawFeatures))
	for _, rf := range rawFeatures {
		attrs, err := resolveTags(rf.tags, keys, values)
		if err != nil {
			return nil, err
		}
		features = append(features, NewFeature(name, rf.id, VectorGeometry{
			Commands: rf.geometry,
			GeomType: rf.geomType,
		}, attrs))
	}
	return features, nil
}

// rawFeature is a wire feature before its tags have been resolved against
// the layer's key/value dictionaries.
type rawFeature struct {
	id       int64
	tags     []uint32
	geomType GeometryType
	geometry []uint32
}

func parseRawFeature(data []byte) (rawFeature, error) {
	r := newWireReader(data)
	rf := rawFeature{id: 0, geomType: GeomUnknown}

	for !r.done() {
		field, wireType, err := r.readTag()
		if err != nil {
			return rawFeature{}, newParseError("reading feature field tag", err)
		}
		switch field {
		case fieldFeatureID:
			v, err := r.readVarint()
			if err != nil {
				return rawFeature{}, newParseError("reading feature id", err)
			}
			rf.id = int64(v)
		case fieldFeatureTags:
			tags, err := r.readPackedUint32()
			if err != nil {
				return rawFeature{}, newParseError("reading feature tags", err)
			}
			if len(tags)%2 != 0 {
				return rawFeature{}, newParseError("feature tags has odd length", nil)
			}
			rf.tags = tags
		case fieldFeatureType:
			v, err := r.readVarint()
			if err != nil {
				return rawFeature{}, newParseError("reading feature type", err)
			}
			rf.geomType = GeometryType(v)
		case fieldFeatureGeometry:
			cmds, err := r.readPackedUint32()
			if err != nil {
				return rawFeature{}, newParseError("reading feature geometry", err)
			}
			rf.geometry = cmds
		default:
			if err := r.skipField(wireType); err != nil {
				return rawFeature{}, newParseError("skipping unknown feature field", err)
			}
		}
	}
	return rf, nil
}

func resolveTags(tags []uint32, keys []string, values []TypedValue) ([]Attr, error) {
	if len(tags) == 0 {
		return nil, nil
	}
	attrs := make([]Attr, 0, len(tags)/2)
	for i := 0; i < len(tags); i += 2 {
		kid, vid := int(tags[i]), int(tags[i+1])
		if kid < 0 || kid >= len(keys) {
			return nil, newParseError("tag key index out of range", nil)
		}
		if vid < 0 || vid >= len(values) {
			return nil, newParseError("tag value index out of range", nil)
		}
		attrs = append(attrs, Attr{Key: keys[kid], Value: values[vid].Interface()})
	}
	return attrs, nil
}

func parseValue(data []byte) (TypedValue, error) {
	r := newWireReader(data)

	for !r.done() {
		field, wireType, err := r.readTag()
		if err != nil {
			return TypedValue{}, newParseError("reading value field tag", err)
		}
		switch field {
		case fieldValueString:
			b, err := r.readBytes()
			if err != nil {
				return TypedValue{}, newParseError("reading string value", err)
			}
			return StringValue(string(b)), nil
		case fieldValueFloat:
			v, err := r.readFixed32()
			if err != nil {
				return TypedValue{}, newParseError("reading float value", err)
			}
			return Float32Value(math.Float32frombits(v)), nil
		case fieldValueDouble:
			v, err := r.readFixed64()
			if err != nil {
				return TypedValue{}, newParseError("reading double value", err)
			}
			return Float64Value(math.Float64frombits(v)), nil
		case fieldValueInt:
			v, err := r.readVarint()
			if err != nil {
				return TypedValue{}, newParseError("reading int value", err)
			}
			return Int64Value(int64(v)), nil
		case fieldValueUint:
			v, err := r.readVarint()
			if err != nil {
				return TypedValue{}, newParseError("reading uint value", err)
			}
			return Uint64Value(v), nil
		case fieldValueSint:
			v, err := r.readVarint()
			if err != nil {
				return TypedValue{}, newParseError("reading sint value", err)
			}
			return SintValue(zigzagDecode64(v)), nil
		case fieldValueBool:
			v, err := r.readVarint()
			if err != nil {
				return TypedValue{}, newParseError("reading bool value", err)
			}
			return BoolValue(v != 0), nil
		default:
			if err := r.skipField(wireType); err != nil {
				return TypedValue{}, newParseError("skipping unknown value field", err)
			}
		}
	}
	// A Value message with no oneof field set is the wire encoding of a
	// null attribute value, not a malformed message.
	return NullValue(), nil
}
