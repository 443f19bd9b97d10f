// pkg/mvt/layer.go - attribute dictionary (keys/values) for one tile layer
package mvt

// Layer interns attribute keys and typed values for the features that have
// been added to it, so each feature's tags reduce to a pair of dense
// 0-based integer indices. Ids are assigned on first insertion and never
// change; iteration order over keys/values matches insertion order.
//
// A Layer exists only during tile assembly; it is owned exclusively by its
// Tile and is not safe to share across goroutines.
type Layer struct {
	Name   string
	Extent int

	keys     []string
	keyIndex map[string]int

	values     []TypedValue
	valueIndex map[TypedValue]int

	features []encodedFeature
}

func newLayer(name string, extent int) *Layer {
	return &Layer{
		Name:       name,
		Extent:     extent,
		keyIndex:   make(map[string]int),
		valueIndex: make(map[TypedValue]int),
	}
}

// Keys returns the interned key dictionary in insertion order.
func (l *Layer) Keys() []string { return l.keys }

// Values returns the interned value dictionary in insertion order.
func (l *Layer) Values() []TypedValue { return l.values }

// keyID interns key, returning its dense id (assigning a new one on first
// use).
func (l *Layer) keyID(key string) int {
	if id, ok := l.keyIndex[key]; ok {
		return id
	}
	id := len(l.keys)
	l.keys = append(l.keys, key)
	l.keyIndex[key] = id
	return id
}

// valueID interns value, returning its dense id. Equality is structural
// over TypedValue, so the type tag participates: the int64 1 and the bool
// true intern to distinct ids even though both are "truthy".
func (l *Layer) valueID(value TypedValue) int {
	if id, ok := l.valueIndex[value]; ok {
		return id
	}
	id := len(l.values)
	l.values = append(l.values, value)
	l.valueIndex[value] = id
	return id
}
