// Package pipeline carries values between command stages.
package pipeline

import "github.com/mcncl/tojson/internal/value"

// Data is the input or output of a command stage.
type Data interface {
	// IntoValue materializes the data into a single value. span locates the
	// request and is used for values that have no source of their own.
	IntoValue(span value.Span) value.Value
}

// ValueData wraps a single value.
type ValueData struct {
	Value value.Value
}

// FromValue wraps v for the next stage.
func FromValue(v value.Value) *ValueData {
	return &ValueData{Value: v}
}

// IntoValue returns the wrapped value, or nothing at span when there is none.
func (d *ValueData) IntoValue(span value.Span) value.Value {
	if d == nil || d.Value == nil {
		return value.Nothing{Span: span}
	}
	return d.Value
}

// ListStream is an ordered sequence of values produced one at a time.
type ListStream struct {
	vals []value.Value
}

// NewListStream creates a stream over vals.
func NewListStream(vals ...value.Value) *ListStream {
	return &ListStream{vals: vals}
}

// Push appends v to the stream.
func (s *ListStream) Push(v value.Value) {
	s.vals = append(s.vals, v)
}

// Len returns the number of buffered values.
func (s *ListStream) Len() int {
	return len(s.vals)
}

// IntoValue collects the stream into a list spanning the request.
func (s *ListStream) IntoValue(span value.Span) value.Value {
	vals := make([]value.Value, len(s.vals))
	copy(vals, s.vals)
	return value.List{Vals: vals, Span: span}
}

// Empty is the input of a stage that receives nothing.
type Empty struct{}

// IntoValue returns nothing at span.
func (Empty) IntoValue(span value.Span) value.Value {
	return value.Nothing{Span: span}
}
