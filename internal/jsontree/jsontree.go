// Package jsontree holds the intermediate JSON document built from shell
// values before it is rendered to text.
package jsontree

// Node is a JSON tree node. The set of implementations is closed: Null,
// Bool, I64, U64, F64, String, Array and *Object.
type Node interface {
	isNode()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// I64 is a signed 64-bit JSON integer.
type I64 int64

// U64 is an unsigned 64-bit JSON integer.
type U64 uint64

// F64 is a 64-bit JSON float.
type F64 float64

// String is a JSON string.
type String string

// Array is an ordered JSON array.
type Array []Node

func (Null) isNode()    {}
func (Bool) isNode()    {}
func (I64) isNode()     {}
func (U64) isNode()     {}
func (F64) isNode()     {}
func (String) isNode()  {}
func (Array) isNode()   {}
func (*Object) isNode() {}

// Object is a JSON object that remembers key order.
//
// Setting a key that is already present replaces its value and moves the key
// to the end, so the order reflects the last write of every key.
type Object struct {
	keys   []string
	values map[string]Node
}

// NewObject creates an empty object with room for size entries.
func NewObject(size int) *Object {
	return &Object{
		keys:   make([]string, 0, size),
		values: make(map[string]Node, size),
	}
}

// Set inserts or replaces the value stored under key.
func (o *Object) Set(key string, n Node) {
	if o.values == nil {
		o.values = make(map[string]Node)
	}
	if _, exists := o.values[key]; exists {
		for i, k := range o.keys {
			if k == key {
				o.keys = append(o.keys[:i], o.keys[i+1:]...)
				break
			}
		}
	}
	o.keys = append(o.keys, key)
	o.values[key] = n
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Node, bool) {
	n, ok := o.values[key]
	return n, ok
}

// Keys returns the keys in order. The returned slice must not be modified.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}
