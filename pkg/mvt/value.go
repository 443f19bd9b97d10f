// pkg/mvt/value.go - TypedValue: the MVT attribute value tagged union
package mvt

import "fmt"

// ValueKind identifies which wire variant a TypedValue carries.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindString
	KindFloat32
	KindFloat64
	KindInt64
	KindUint64
	KindSint64
	KindBool
)

// TypedValue is a tagged union over the MVT-defined attribute value types.
// It is comparable, so it can be used directly as a map key by the layer's
// value dictionary: two values compare equal only when both kind and
// payload match, so the int64 1 and the bool true are distinct keys even
// though both encode to "truthy" in a loose sense.
type TypedValue struct {
	kind ValueKind
	s    string
	f32  float32
	f64  float64
	i64  int64
	u64  uint64
	b    bool
}

// NullValue represents a Value message with no oneof field set, the wire
// encoding of a missing/null attribute value.
func NullValue() TypedValue             { return TypedValue{kind: KindNull} }
func StringValue(v string) TypedValue   { return TypedValue{kind: KindString, s: v} }
func Float32Value(v float32) TypedValue { return TypedValue{kind: KindFloat32, f32: v} }
func Float64Value(v float64) TypedValue { return TypedValue{kind: KindFloat64, f64: v} }
func Int64Value(v int64) TypedValue     { return TypedValue{kind: KindInt64, i64: v} }
func Uint64Value(v uint64) TypedValue   { return TypedValue{kind: KindUint64, u64: v} }
func SintValue(v int64) TypedValue      { return TypedValue{kind: KindSint64, i64: v} }
func BoolValue(v bool) TypedValue       { return TypedValue{kind: KindBool, b: v} }

// Kind reports which wire variant this value carries.
func (v TypedValue) Kind() ValueKind { return v.kind }

// Interface returns the value as a plain Go interface{}, suitable for
// embedding in a decoded feature's attribute map.
func (v TypedValue) Interface() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindString:
		return v.s
	case KindFloat32:
		return v.f32
	case KindFloat64:
		return v.f64
	case KindInt64, KindSint64:
		return v.i64
	case KindUint64:
		return v.u64
	case KindBool:
		return v.b
	default:
		return nil
	}
}

func (v TypedValue) String() string {
	return fmt.Sprintf("%v", v.Interface())
}

// valueFromInterface implements Rule E1: the encoder accepts a loose input
// domain and chooses the narrowest conformant wire type. Any runtime type
// outside the accepted set is coerced to its string representation.
func valueFromInterface(v interface{}) TypedValue {
	switch t := v.(type) {
	case string:
		return StringValue(t)
	case bool:
		return BoolValue(t)
	case float32:
		return Float32Value(t)
	case float64:
		return Float64Value(t)
	case int:
		return SintValue(int64(t))
	case int8:
		return SintValue(int64(t))
	case int16:
		return SintValue(int64(t))
	case int32:
		return SintValue(int64(t))
	case int64:
		return SintValue(t)
	case uint:
		return SintValue(int64(t))
	case uint8:
		return SintValue(int64(t))
	case uint16:
		return SintValue(int64(t))
	case uint32:
		return SintValue(int64(t))
	case uint64:
		return SintValue(int64(t))
	default:
		return StringValue(fmt.Sprintf("%v", t))
	}
}
