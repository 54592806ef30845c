// Package value defines the universal data representation that flows between
// pipeline stages.
package value

import (
	"fmt"
	"time"

	"github.com/mcncl/tojson/internal/jsontree"
)

// Span locates a value in the source it was read from.
type Span struct {
	Start int
	End   int
}

// String renders the span as start..end.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Value is one shell value. The set of implementations is closed; types
// defined elsewhere enter through Custom.
type Value interface {
	// Type returns the runtime type name used in diagnostics.
	Type() string
	// GetSpan returns where the value came from.
	GetSpan() Span
	isValue()
}

// CustomValue is implemented by value kinds defined outside this package.
type CustomValue interface {
	TypeName() string
	ToJSON() jsontree.Node
}

// Bool is a boolean.
type Bool struct {
	Val  bool
	Span Span
}

// Int is a signed 64-bit integer.
type Int struct {
	Val  int64
	Span Span
}

// Float is a 64-bit floating point number.
type Float struct {
	Val  float64
	Span Span
}

// String is text.
type String struct {
	Val  string
	Span Span
}

// Filesize is a quantity of bytes.
type Filesize struct {
	Val  int64
	Span Span
}

// Duration is a quantity of nanoseconds.
type Duration struct {
	Val  int64
	Span Span
}

// Date is a point in time with a fixed zone offset.
type Date struct {
	Val  time.Time
	Span Span
}

// List is an ordered sequence of values.
type List struct {
	Vals []Value
	Span Span
}

// Record maps Cols[i] to Vals[i]. Columns are not required to be unique.
type Record struct {
	Cols []string
	Vals []Value
	Span Span
}

// Binary is raw bytes.
type Binary struct {
	Val  []byte
	Span Span
}

// CellPath is a sequence of members selecting into nested data.
type CellPath struct {
	Members []PathMember
	Span    Span
}

// PathMember selects a field by name or an element by index.
type PathMember struct {
	Name  string
	Index int
	// IsIndex reports whether the member is an integer selector.
	IsIndex bool
	Span    Span
}

// Nothing is the absence of a value.
type Nothing struct {
	Span Span
}

// Block is a reference to a parsed code block.
type Block struct {
	ID   int
	Span Span
}

// Range is a lazy integer sequence.
type Range struct {
	From      Value
	Increment Value
	To        Value
	Span      Span
}

// Custom holds a value whose behavior is supplied by its implementation.
type Custom struct {
	Val  CustomValue
	Span Span
}

// Error carries an error as data.
type Error struct {
	Err error
}

func (Bool) Type() string     { return "bool" }
func (Int) Type() string      { return "int" }
func (Float) Type() string    { return "float" }
func (String) Type() string   { return "string" }
func (Filesize) Type() string { return "filesize" }
func (Duration) Type() string { return "duration" }
func (Date) Type() string     { return "date" }
func (List) Type() string     { return "list" }
func (Record) Type() string   { return "record" }
func (Binary) Type() string   { return "binary" }
func (CellPath) Type() string { return "cell path" }
func (Nothing) Type() string  { return "nothing" }
func (Block) Type() string    { return "block" }
func (Range) Type() string    { return "range" }
func (Error) Type() string    { return "error" }

func (c Custom) Type() string {
	if c.Val == nil {
		return "custom"
	}
	return c.Val.TypeName()
}

func (v Bool) GetSpan() Span     { return v.Span }
func (v Int) GetSpan() Span      { return v.Span }
func (v Float) GetSpan() Span    { return v.Span }
func (v String) GetSpan() Span   { return v.Span }
func (v Filesize) GetSpan() Span { return v.Span }
func (v Duration) GetSpan() Span { return v.Span }
func (v Date) GetSpan() Span     { return v.Span }
func (v List) GetSpan() Span     { return v.Span }
func (v Record) GetSpan() Span   { return v.Span }
func (v Binary) GetSpan() Span   { return v.Span }
func (v CellPath) GetSpan() Span { return v.Span }
func (v Nothing) GetSpan() Span  { return v.Span }
func (v Block) GetSpan() Span    { return v.Span }
func (v Range) GetSpan() Span    { return v.Span }
func (v Custom) GetSpan() Span   { return v.Span }

// GetSpan returns the span of the wrapped error when it has one.
func (v Error) GetSpan() Span {
	if s, ok := v.Err.(interface{ GetSpan() Span }); ok {
		return s.GetSpan()
	}
	return Span{}
}

func (Bool) isValue()     {}
func (Int) isValue()      {}
func (Float) isValue()    {}
func (String) isValue()   {}
func (Filesize) isValue() {}
func (Duration) isValue() {}
func (Date) isValue()     {}
func (List) isValue()     {}
func (Record) isValue()   {}
func (Binary) isValue()   {}
func (CellPath) isValue() {}
func (Nothing) isValue()  {}
func (Block) isValue()    {}
func (Range) isValue()    {}
func (Custom) isValue()   {}
func (Error) isValue()    {}
