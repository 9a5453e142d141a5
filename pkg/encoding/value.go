package encoding

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindScalar Kind = iota + 1
	KindMap
)

// Value is either a scalar (kept in its string form) or a nested Map
type Value struct {
	kind   Kind
	text   string
	nested *Map
}

// String creates a scalar value
func String(s string) Value {
	return Value{kind: KindScalar, text: s}
}

// Int creates a scalar value from an integer
func Int(i int64) Value {
	return String(strconv.FormatInt(i, 10))
}

// Float creates a scalar value using the shortest decimal representation
func Float(f float64) Value {
	return String(strconv.FormatFloat(f, 'f', -1, 64))
}

// Bool creates a scalar value of "true" or "false"
func Bool(b bool) Value {
	return String(strconv.FormatBool(b))
}

// Decimal creates a scalar value from a decimal amount, always written with
// two decimal places ("10.5" becomes "10.50")
func Decimal(d decimal.Decimal) Value {
	return String(d.StringFixed(2))
}

// Nested wraps m as a value. A nil map is treated as empty.
func Nested(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, nested: m}
}

// Kind returns the variant held by v. The zero Value reports KindScalar.
func (v Value) Kind() Kind {
	if v.kind == 0 {
		return KindScalar
	}
	return v.kind
}

// IsMap reports whether v holds a nested map
func (v Value) IsMap() bool {
	return v.kind == KindMap
}

// Text returns the string form of a scalar, or "" for maps
func (v Value) Text() string {
	if v.kind == KindMap {
		return ""
	}
	return v.text
}

// Map returns the nested map, or nil for scalars
func (v Value) Map() *Map {
	if v.kind != KindMap {
		return nil
	}
	return v.nested
}

// Map is a string-keyed mapping that remembers insertion order.
// Setting an existing key replaces its value in place.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap creates an empty map
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// Set stores v under key and returns m for chaining
func (m *Map) Set(key string, v Value) *Map {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// SetString stores a scalar string under key
func (m *Map) SetString(key, s string) *Map {
	return m.Set(key, String(s))
}

// SetMap stores a nested map under key
func (m *Map) SetMap(key string, child *Map) *Map {
	return m.Set(key, Nested(child))
}

// Get returns the value under key
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// GetString returns the scalar text under key, or "" when missing or nested
func (m *Map) GetString(key string) string {
	v, _ := m.Get(key)
	return v.Text()
}

// Has reports whether key is present
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key, keeping the order of the remaining keys
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of entries
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy of m
func (m *Map) Clone() *Map {
	out := NewMap()
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		v := m.values[k]
		if v.IsMap() {
			v = Nested(v.nested.Clone())
		}
		out.Set(k, v)
	}
	return out
}
